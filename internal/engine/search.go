package engine

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/combin"

	"github.com/piwi3910/BarCut/internal/model"
)

// cancelCheckInterval is how many candidate subsets are evaluated between
// context checks.
const cancelCheckInterval = 4096

// search holds the piece pool for one planning run. Pieces live in an
// arena sorted longest first; live holds the arena indices that are not
// yet assigned to a pattern, in arena order. Removing a piece removes its
// index, so duplicate lengths never need to be told apart by value.
type search struct {
	arena     []float64
	live      []int
	stock     float64
	maxSubset int
	evaluated int64
}

func newSearch(pieces []float64, stockLength float64, maxSubset int) *search {
	arena := sortedCopy(pieces)
	live := make([]int, len(arena))
	for i := range live {
		live[i] = i
	}
	return &search{
		arena:     arena,
		live:      live,
		stock:     stockLength,
		maxSubset: maxSubset,
	}
}

// nextPattern picks the pieces for the next bar and removes them from the pool.
func (s *search) nextPattern(ctx context.Context) ([]float64, error) {
	top := len(s.live)
	if s.maxSubset > 0 && s.maxSubset < top {
		top = s.maxSubset
	}

	for k := top; k >= 1; k-- {
		if !s.sizeCanFit(k) {
			continue
		}
		best, err := s.bestSubset(ctx, k)
		if err != nil {
			return nil, err
		}
		if best != nil {
			return s.take(best), nil
		}
	}

	// Only reachable when a piece is longer than the stock, which Validate
	// rejects: cut the longest remaining piece on its own.
	return s.take([]int{0}), nil
}

// sizeCanFit reports whether any k-subset of the pool can fit on a bar.
// The k shortest pieces are the last k live entries.
func (s *search) sizeCanFit(k int) bool {
	var sum float64
	for _, idx := range s.live[len(s.live)-k:] {
		sum += s.arena[idx]
	}
	return model.Fits(sum, s.stock)
}

// bestSubset enumerates every k-subset of pool positions in lexicographic
// order and returns the first one with the least waste, or nil when none fits.
func (s *search) bestSubset(ctx context.Context, k int) ([]int, error) {
	next := combinations(len(s.live), k)
	comb := make([]int, k)
	var best []int
	bestWaste := s.stock

	for next(comb) {
		s.evaluated++
		if s.evaluated%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("planning cancelled: %w", err)
			}
		}

		var sum float64
		for _, pos := range comb {
			sum += s.arena[s.live[pos]]
		}
		if !model.Fits(sum, s.stock) {
			continue
		}

		waste := s.stock - sum
		if best == nil || waste < bestWaste {
			bestWaste = waste
			best = append(best[:0], comb...)
			// Nothing later can beat a perfect fit.
			if waste <= model.Epsilon {
				break
			}
		}
	}
	return best, nil
}

// combinations returns an iterator that writes the k-subsets of 0..n-1 into
// dst in lexicographic order and reports false once they are exhausted.
// The gonum generator counts its combinations up front, so sizes whose count
// could overflow an int are stepped in place instead.
func combinations(n, k int) func(dst []int) bool {
	if combin.GeneralizedBinomial(float64(n), float64(k))*float64(n) < float64(math.MaxInt) {
		gen := combin.NewCombinationGenerator(n, k)
		return func(dst []int) bool {
			if !gen.Next() {
				return false
			}
			gen.Combination(dst)
			return true
		}
	}

	var cur []int
	return func(dst []int) bool {
		if cur == nil {
			cur = make([]int, k)
			for i := range cur {
				cur[i] = i
			}
		} else if !nextCombination(cur, n) {
			return false
		}
		copy(dst, cur)
		return true
	}
}

// nextCombination advances comb to the next k-subset of 0..n-1 in
// lexicographic order. It returns false when comb is the last one.
func nextCombination(comb []int, n int) bool {
	k := len(comb)
	for i := k - 1; i >= 0; i-- {
		if comb[i] < n-k+i {
			comb[i]++
			for j := i + 1; j < k; j++ {
				comb[j] = comb[j-1] + 1
			}
			return true
		}
	}
	return false
}

// take removes the pieces at the given ascending pool positions and
// returns their lengths in the same order.
func (s *search) take(positions []int) []float64 {
	cut := make([]float64, len(positions))
	remove := make(map[int]bool, len(positions))
	for i, pos := range positions {
		cut[i] = s.arena[s.live[pos]]
		remove[pos] = true
	}

	kept := s.live[:0]
	for pos, idx := range s.live {
		if !remove[pos] {
			kept = append(kept, idx)
		}
	}
	s.live = kept
	return cut
}
