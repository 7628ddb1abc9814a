package importer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/piwi3910/BarCut/internal/model"
)

// MaxPieces is the largest number of pieces a single list may expand to.
const MaxPieces = 100000

// ParseLengths parses a free-form piece list such as "5, 5, 3.2" or
// "5*2 3.2x4". Entries are separated by commas, semicolons or whitespace;
// "len*qty" and "lenxqty" repeat a length qty times.
func ParseLengths(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})

	var lengths []float64
	for _, field := range fields {
		parsed, err := parseLengthToken(field)
		if err != nil {
			return nil, err
		}
		if len(lengths)+len(parsed) > MaxPieces {
			return nil, fmt.Errorf("piece list exceeds %d pieces", MaxPieces)
		}
		lengths = append(lengths, parsed...)
	}
	return lengths, nil
}

func parseLengthToken(token string) ([]float64, error) {
	lengthStr, qtyStr, repeated := token, "", false
	if i := strings.IndexAny(token, "*xX"); i >= 0 {
		lengthStr, qtyStr, repeated = token[:i], token[i+1:], true
	}

	length, err := strconv.ParseFloat(lengthStr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid length %q", token)
	}
	if !(length > 0) {
		return nil, fmt.Errorf("length %q must be positive", token)
	}

	qty := 1
	if repeated {
		qty, err = strconv.Atoi(qtyStr)
		if err != nil || qty <= 0 {
			return nil, fmt.Errorf("invalid quantity in %q", token)
		}
		if qty > MaxPieces {
			return nil, fmt.Errorf("quantity in %q exceeds %d pieces", token, MaxPieces)
		}
	}

	lengths := make([]float64, qty)
	for i := range lengths {
		lengths[i] = length
	}
	return lengths, nil
}

// SplitOversized separates the pieces that fit on the stock from those that
// are longer than it. Both slices keep the input order.
func SplitOversized(lengths []float64, stockLength float64) (valid, oversized []float64) {
	valid = make([]float64, 0, len(lengths))
	for _, l := range lengths {
		if model.Fits(l, stockLength) {
			valid = append(valid, l)
		} else {
			oversized = append(oversized, l)
		}
	}
	return valid, oversized
}
