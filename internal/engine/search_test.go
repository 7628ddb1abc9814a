package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch_TakeRemovesByPosition(t *testing.T) {
	s := newSearch([]float64{5, 5, 5, 2}, 12, 0)

	cut := s.take([]int{1, 3})

	assert.Equal(t, []float64{5, 2}, cut)
	assert.Equal(t, []int{0, 2}, s.live)
}

func TestSearch_SizeCanFitUsesShortestPieces(t *testing.T) {
	s := newSearch([]float64{7, 5, 4, 3, 1}, 10, 0)

	assert.True(t, s.sizeCanFit(3))  // 4+3+1
	assert.False(t, s.sizeCanFit(4)) // 5+4+3+1
}

func TestSearch_FallbackCutsLongestPieceAlone(t *testing.T) {
	// Validate never lets an oversized piece through; build the pool
	// directly to reach the fallback.
	s := newSearch([]float64{13, 15}, 12, 0)

	cut, err := s.nextPattern(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []float64{15}, cut)
	assert.Equal(t, []int{1}, s.live)
}

func TestSearch_BestSubsetNoFit(t *testing.T) {
	s := newSearch([]float64{8, 7}, 12, 0)

	best, err := s.bestSubset(context.Background(), 2)

	require.NoError(t, err)
	assert.Nil(t, best)
}

func TestSearch_StopsAtFirstPerfectFit(t *testing.T) {
	s := newSearch([]float64{6, 6, 6, 6}, 12, 0)

	best, err := s.bestSubset(context.Background(), 2)

	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, best)
	assert.Equal(t, int64(1), s.evaluated)
}

func TestCombinations_LexicographicOrder(t *testing.T) {
	next := combinations(4, 2)
	comb := make([]int, 2)

	var got [][]int
	for next(comb) {
		got = append(got, append([]int(nil), comb...))
	}

	assert.Equal(t, [][]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}, got)
}

func TestNextCombination_MatchesGenerator(t *testing.T) {
	gen := combinations(6, 3)
	want := make([]int, 3)
	cur := []int{0, 1, 2}

	require.True(t, gen(want))
	assert.Equal(t, want, cur)
	for gen(want) {
		require.True(t, nextCombination(cur, 6))
		assert.Equal(t, want, cur)
	}
	assert.False(t, nextCombination(cur, 6))
	assert.Equal(t, []int{3, 4, 5}, cur)
}

func TestCombinations_UncountableSizeSteppedInPlace(t *testing.T) {
	next := combinations(70, 35)
	comb := make([]int, 35)

	require.True(t, next(comb))
	assert.Equal(t, 0, comb[0])
	assert.Equal(t, 34, comb[34])
	require.True(t, next(comb))
	assert.Equal(t, 33, comb[33])
	assert.Equal(t, 35, comb[34])
}
