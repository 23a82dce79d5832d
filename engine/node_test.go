package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	m1 Move = 1 + iota
	m2
	m3
)

func leafNode(whiteToMove bool, value float64, complete bool) *SearchNode {
	return NewSearchNode(whiteToMove, value, complete)
}

func TestNewNodeValueIsStatic(t *testing.T) {
	n := NewSearchNode(true, 3.5, false)
	assert.Equal(t, 3.5, n.Value())
	assert.False(t, n.Expanded())
	assert.Empty(t, n.BestMoves)
	assert.Equal(t, math.Inf(-1), n.value)
	assert.Equal(t, math.Inf(1), NewSearchNode(false, 0, false).value)
}

func TestFoldMaximizer(t *testing.T) {
	n := NewSearchNode(true, 0, false)

	n.Fold(m1, leafNode(false, 3, true))
	assert.Equal(t, 3.0, n.Value())
	assert.Equal(t, []Move{m1}, n.SortedBestMoves())
	assert.True(t, n.Complete)

	n.Fold(m2, leafNode(false, 3, false))
	assert.Equal(t, []Move{m1, m2}, n.SortedBestMoves())
	assert.False(t, n.Complete)

	n.Fold(m3, leafNode(false, 1, true))
	assert.Equal(t, 3.0, n.Value())
	assert.Equal(t, []Move{m1, m2}, n.SortedBestMoves())

	n.Fold(m3, leafNode(false, 7, true))
	assert.Equal(t, 7.0, n.Value())
	assert.Equal(t, []Move{m3}, n.SortedBestMoves())
	assert.True(t, n.Complete)
}

func TestFoldMinimizer(t *testing.T) {
	n := NewSearchNode(false, 0, false)
	n.Fold(m1, leafNode(true, -2, false))
	n.Fold(m2, leafNode(true, 5, false))
	assert.Equal(t, -2.0, n.Value())
	assert.Equal(t, []Move{m1}, n.SortedBestMoves())

	n.Fold(m3, leafNode(true, -4, false))
	assert.Equal(t, -4.0, n.Value())
	assert.Equal(t, []Move{m3}, n.SortedBestMoves())
}

func TestFoldIsIdempotent(t *testing.T) {
	n := NewSearchNode(true, 0, false)
	child := leafNode(false, 2, true)
	n.Fold(m1, child)
	value, best, complete := n.Value(), n.SortedBestMoves(), n.Complete

	n.Fold(m1, child)
	assert.Equal(t, value, n.Value())
	assert.Equal(t, best, n.SortedBestMoves())
	assert.Equal(t, complete, n.Complete)
}

func TestFoldDropsMoveThatGotWorse(t *testing.T) {
	n := NewSearchNode(true, 0, false)
	n.Fold(m1, leafNode(false, 4, true))
	n.Fold(m2, leafNode(false, 4, true))

	n.Fold(m1, leafNode(false, 1, true))
	assert.Equal(t, []Move{m2}, n.SortedBestMoves())
	assert.True(t, n.Complete)

	n.Fold(m2, leafNode(false, 1, true))
	assert.Empty(t, n.BestMoves)
	assert.False(t, n.Complete)
}

func TestResetKeepsTransitions(t *testing.T) {
	n := NewSearchNode(true, 1.5, false)
	n.AddTransition(m1, 11)
	n.Fold(m1, leafNode(false, 3, true))
	n.Reset()
	assert.Equal(t, 1.5, n.Value())
	assert.Empty(t, n.BestMoves)
	assert.False(t, n.Complete)
	assert.Equal(t, []Move{m1}, n.Moves())
}

func TestReopenOnlyClearsUnexpandedLeaves(t *testing.T) {
	leaf := NewSearchNode(true, 0.75, true)
	leaf.Reopen()
	assert.False(t, leaf.Complete)
	assert.Equal(t, 0.75, leaf.Value())

	n := NewSearchNode(true, 0, false)
	n.AddTransition(m1, 11)
	n.Fold(m1, leafNode(false, 2, true))
	require.True(t, n.Complete)
	n.Reopen()
	assert.True(t, n.Complete)
	assert.Equal(t, 2.0, n.Value())
}

func TestAddTransitionIsIdempotent(t *testing.T) {
	n := NewSearchNode(true, 0, false)
	n.AddTransition(m2, 20)
	n.AddTransition(m1, 10)
	n.AddTransition(m2, 20)
	assert.Equal(t, []Move{m2, m1}, n.Moves())
	assert.Len(t, n.Transitions, 2)
	assert.True(t, n.Expanded())
}

func TestRefoldRebuildsBestMoves(t *testing.T) {
	tt := NewTransTable()
	tt.Set(10, leafNode(false, 2, true))
	tt.Set(20, leafNode(false, 5, true))
	tt.Set(30, leafNode(false, 5, false))

	n := NewSearchNode(true, 0, false)
	n.AddTransition(m1, 10)
	n.AddTransition(m2, 20)
	n.AddTransition(m3, 30)
	n.Refold(tt)

	require.Equal(t, 5.0, n.Value())
	assert.Equal(t, []Move{m2, m3}, n.SortedBestMoves())
	assert.False(t, n.Complete)
}

func TestCuts(t *testing.T) {
	maxNode := NewSearchNode(true, 4, false)
	assert.True(t, maxNode.Cuts(3, math.Inf(-1)))
	assert.False(t, maxNode.Cuts(4, math.Inf(-1)))
	assert.False(t, maxNode.Cuts(math.Inf(1), math.Inf(-1)))

	minNode := NewSearchNode(false, -1, false)
	assert.True(t, minNode.Cuts(math.Inf(1), 0))
	assert.False(t, minNode.Cuts(math.Inf(1), -1))
}

func TestIsQuiescenceChild(t *testing.T) {
	parent := NewSearchNode(true, 1, false)
	assert.False(t, parent.IsQuiescenceChild(leafNode(false, 4, false), 15))
	assert.True(t, parent.IsQuiescenceChild(leafNode(false, 5, false), 15))
	assert.True(t, parent.IsQuiescenceChild(leafNode(false, -8, false), 15))
}
