package engine

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// SearchNode is everything the table remembers about one position.
type SearchNode struct {
	WhiteToMove bool
	// Complete is set once Value and BestMoves can no longer change under
	// further search.
	Complete    bool
	BestMoves   map[Move]struct{}
	Transitions map[Move]uint64

	staticValue float64
	value       float64
	order       []Move
}

func NewSearchNode(whiteToMove bool, staticValue float64, complete bool) *SearchNode {
	n := &SearchNode{
		WhiteToMove: whiteToMove,
		Complete:    complete,
		BestMoves:   make(map[Move]struct{}),
		Transitions: make(map[Move]uint64),
		staticValue: staticValue,
	}
	n.value = n.unset()
	return n
}

func (n *SearchNode) unset() float64 {
	if n.WhiteToMove {
		return math.Inf(-1)
	}
	return math.Inf(1)
}

// Value is the backed-up value, or the static evaluation while no child has
// been folded in.
func (n *SearchNode) Value() float64 {
	if math.IsInf(n.value, 0) {
		return n.staticValue
	}
	return n.value
}

func (n *SearchNode) StaticValue() float64 { return n.staticValue }

// Expanded reports whether any child transition has been recorded.
func (n *SearchNode) Expanded() bool { return len(n.order) > 0 }

// Moves lists the recorded transitions in the order they were discovered.
func (n *SearchNode) Moves() []Move { return n.order }

// AddTransition records that m leads to key. Recording a move twice is a no-op.
func (n *SearchNode) AddTransition(m Move, key uint64) {
	if _, ok := n.Transitions[m]; !ok {
		n.order = append(n.order, m)
	}
	n.Transitions[m] = key
}

func (n *SearchNode) improves(v float64) bool {
	if n.WhiteToMove {
		return n.value < v
	}
	return n.value > v
}

// Fold merges the child reached by m into the node. Apart from Reset and
// Reopen it is the only way Value, BestMoves and Complete change.
func (n *SearchNode) Fold(m Move, child *SearchNode) {
	v := child.Value()
	switch {
	case n.value == v:
		n.BestMoves[m] = struct{}{}
		n.Complete = n.Complete && child.Complete
	case n.improves(v):
		n.value = v
		n.BestMoves = map[Move]struct{}{m: {}}
		n.Complete = child.Complete
	default:
		delete(n.BestMoves, m)
		n.Complete = n.Complete && len(n.BestMoves) > 0
	}
}

// Reset forgets the backed-up value and best moves; transitions are kept.
func (n *SearchNode) Reset() {
	n.value = n.unset()
	n.BestMoves = make(map[Move]struct{})
	n.Complete = false
}

// Reopen clears Complete on a node with no recorded transitions so it can be
// expanded as a search root.
func (n *SearchNode) Reopen() {
	if !n.Expanded() {
		n.Complete = false
	}
}

// Refold resets the node and folds every known child again.
func (n *SearchNode) Refold(table *TransTable) {
	n.Reset()
	for _, m := range n.order {
		if child := table.Get(n.Transitions[m]); child != nil {
			n.Fold(m, child)
		}
	}
}

// Cuts reports whether the node is already worse for the parent than a
// sibling: alpha is the best a minimising parent holds, beta the best of a
// maximising one.
func (n *SearchNode) Cuts(alpha, beta float64) bool {
	if n.WhiteToMove {
		return n.Value() > alpha
	}
	return n.Value() < beta
}

// IsQuiescenceChild reports whether child's value moved far enough from this
// node's static evaluation to need a follow-up ply.
func (n *SearchNode) IsQuiescenceChild(child *SearchNode, threshold float64) bool {
	return math.Pow(n.staticValue-child.Value(), 2) > threshold
}

// SortedBestMoves returns the best moves in ascending move order.
func (n *SearchNode) SortedBestMoves() []Move {
	moves := maps.Keys(n.BestMoves)
	slices.Sort(moves)
	return moves
}

func (n *SearchNode) String() string {
	side := "Black"
	if n.WhiteToMove {
		side = "White"
	}
	best := n.SortedBestMoves()
	names := make([]string, len(best))
	for i := range best {
		names[i] = best[i].String()
	}
	return fmt.Sprintf("SearchNode(%s, [%g (%g)], [%s], %t, %d)",
		side, n.Value(), n.staticValue, strings.Join(names, ", "), n.Complete, len(n.order))
}
