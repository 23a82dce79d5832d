package engine

import (
	"github.com/dylhunn/dragontoothmg"
)

// =============================================================================
// SCORE CONSTANTS
// =============================================================================
const (
	MateBase  = 500.0
	MateScale = 1000.0
	DrawNudge = 0.75

	// Plies at which the height penalty reaches zero.
	HeightHorizon = 1000.0
	CheckFactor   = 0.1
)

var pieceTypes = [...]dragontoothmg.Piece{
	dragontoothmg.Pawn,
	dragontoothmg.Knight,
	dragontoothmg.Bishop,
	dragontoothmg.Rook,
	dragontoothmg.Queen,
	dragontoothmg.King,
}

/*
Evaluate scores pos from white's point of view, ply half-moves into the game.
Terminal positions (draws and mates) report terminal=true.

  - draw: 0 with insufficient material, otherwise a 0.75 nudge against the
    side that is materially ahead
  - mate: +-(500 + 1000*h) against the side to move, h the height penalty
  - otherwise: material times h, moved 10% towards the side already ahead
    when the side to move is in check
*/
func Evaluate(pos Position, ply int) (value float64, terminal bool) {
	lastMover := 1.0
	if pos.WhiteToMove() {
		lastMover = -1.0
	}
	material := materialBalance(pos)
	heightPenalty := (HeightHorizon - float64(ply)) / HeightHorizon

	if pos.IsDraw() {
		if pos.IsInsufficientMaterial() {
			return 0, true
		}
		return -DrawNudge * sign(sign(material)+lastMover), true
	}
	if pos.IsInCheckmate() {
		return lastMover * (MateBase + MateScale*heightPenalty), true
	}

	value = material * heightPenalty
	if pos.IsInCheck() {
		value *= 1 + sign(value)*lastMover*CheckFactor
	}
	return value, false
}

// materialBalance sums count * type^2 over all pieces, white positive.
func materialBalance(pos Position) (balance float64) {
	for _, p := range pieceTypes {
		weight := float64(p) * float64(p)
		balance += weight * float64(pos.PieceCount(true, p)-pos.PieceCount(false, p))
	}
	return balance
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
