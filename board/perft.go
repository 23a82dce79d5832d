package board

// Perft counts leaf nodes of the legal move tree to the given depth,
// walking it through Apply so the state stack is exercised too.
func Perft(b *Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := b.LegalMoves(false)
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		undo := b.Apply(m)
		nodes += Perft(b, depth-1)
		undo()
	}
	return nodes
}

// PerftDivide reports the perft count below every root move.
func PerftDivide(b *Board, depth int) map[Move]uint64 {
	div := make(map[Move]uint64)
	for _, m := range b.LegalMoves(false) {
		undo := b.Apply(m)
		div[m] = Perft(b, depth-1)
		undo()
	}
	return div
}
