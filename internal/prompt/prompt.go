// Package prompt reads a stock length and a piece list from an operator,
// one value per line.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Session is one interactive intake over a line-oriented reader.
type Session struct {
	in   *bufio.Scanner
	out  io.Writer
	unit string
}

// NewSession reads answers from in and writes prompts to out. unit names
// the length unit shown in the prompts.
func NewSession(in io.Reader, out io.Writer, unit string) *Session {
	return &Session{
		in:   bufio.NewScanner(in),
		out:  out,
		unit: unit,
	}
}

// readLine prints the prompt and returns the next trimmed line.
// ok is false once the input is exhausted.
func (s *Session) readLine(prompt string) (line string, ok bool, err error) {
	if _, err := fmt.Fprint(s.out, prompt); err != nil {
		return "", false, err
	}
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", false, err
		}
		return "", false, nil
	}
	return strings.TrimSpace(s.in.Text()), true, nil
}

// parsePositive returns the value of line and a message for the operator
// when it is not a usable length.
func parsePositive(line string) (float64, string) {
	v, err := strconv.ParseFloat(line, 64)
	if err != nil {
		return 0, "Please enter a valid number"
	}
	if !(v > 0) {
		return 0, "Please enter a positive length"
	}
	return v, ""
}

// StockLength asks for the stock length. A blank line or end of input
// selects def; invalid entries are re-prompted.
func (s *Session) StockLength(def float64) (float64, error) {
	prompt := fmt.Sprintf("Enter the stock length (%s%s default): ", strconv.FormatFloat(def, 'f', -1, 64), s.unit)
	for {
		line, ok, err := s.readLine(prompt)
		if err != nil {
			return 0, err
		}
		if !ok || line == "" {
			return def, nil
		}
		v, msg := parsePositive(line)
		if msg == "" {
			return v, nil
		}
		if _, err := fmt.Fprintln(s.out, msg); err != nil {
			return 0, err
		}
	}
}

// Pieces asks for piece lengths one at a time until a blank line or end
// of input. Invalid entries are reported and skipped.
func (s *Session) Pieces() ([]float64, error) {
	intro := fmt.Sprintf("Enter the lengths of required pieces (in %s).\nEnter one value at a time. Press Enter with no input to finish.\n", unitName(s.unit))
	if _, err := fmt.Fprint(s.out, intro); err != nil {
		return nil, err
	}

	var pieces []float64
	for {
		line, ok, err := s.readLine(fmt.Sprintf("Piece %d: ", len(pieces)+1))
		if err != nil {
			return nil, err
		}
		if !ok || line == "" {
			return pieces, nil
		}
		v, msg := parsePositive(line)
		if msg != "" {
			if _, err := fmt.Fprintln(s.out, msg); err != nil {
				return nil, err
			}
			continue
		}
		pieces = append(pieces, v)
	}
}

func unitName(unit string) string {
	switch unit {
	case "m":
		return "meters"
	case "cm":
		return "centimeters"
	case "mm":
		return "millimeters"
	case "in":
		return "inches"
	case "ft":
		return "feet"
	default:
		return unit
	}
}
