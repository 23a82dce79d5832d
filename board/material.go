package board

import (
	"math/bits"

	"github.com/dylhunn/dragontoothmg"
)

const darkSquares uint64 = 0xAA55AA55AA55AA55

func countPieces(bb *dragontoothmg.Bitboards, p dragontoothmg.Piece) int {
	switch p {
	case dragontoothmg.Pawn:
		return bits.OnesCount64(bb.Pawns)
	case dragontoothmg.Knight:
		return bits.OnesCount64(bb.Knights)
	case dragontoothmg.Bishop:
		return bits.OnesCount64(bb.Bishops)
	case dragontoothmg.Rook:
		return bits.OnesCount64(bb.Rooks)
	case dragontoothmg.Queen:
		return bits.OnesCount64(bb.Queens)
	case dragontoothmg.King:
		return bits.OnesCount64(bb.Kings)
	}
	return 0
}

/*
IsInsufficientMaterial reports positions where neither side can mate:
  - bare kings
  - king and one minor piece against a bare king
  - one bishop each, both on squares of the same colour
*/
func (b *Board) IsInsufficientMaterial() bool {
	w, k := &b.pos.White, &b.pos.Black
	if w.Pawns|k.Pawns|w.Rooks|k.Rooks|w.Queens|k.Queens != 0 {
		return false
	}

	wBishops := bits.OnesCount64(w.Bishops)
	bBishops := bits.OnesCount64(k.Bishops)
	minors := wBishops + bBishops + bits.OnesCount64(w.Knights|k.Knights)
	if minors <= 1 {
		return true
	}
	if minors == 2 && wBishops == 1 && bBishops == 1 {
		return (w.Bishops&darkSquares != 0) == (k.Bishops&darkSquares != 0)
	}
	return false
}
