package engine

import (
	"time"

	"github.com/dylhunn/dragontoothmg"
)

type Move = dragontoothmg.Move

// Position is the board the engine searches on. Apply mutates the position
// in place and returns the undo closure; calls must nest. Key must be
// collision-free over the positions of one match.
type Position interface {
	LegalMoves(capturesOnly bool) []Move
	Apply(m Move) func()
	Key() uint64
	WhiteToMove() bool
	Ply() int

	IsDraw() bool
	IsInCheckmate() bool
	IsInCheck() bool
	IsInsufficientMaterial() bool
	PieceCount(white bool, p dragontoothmg.Piece) int
}

// Timer reports how long the current turn has been running.
type Timer interface {
	ElapsedThisTurn() time.Duration
}

// GameClock is a Timer that also knows the mover's remaining game time.
type GameClock interface {
	Timer
	Remaining() time.Duration
	Increment() time.Duration
}

// withLine plays line from the current position, runs f, and takes the moves
// back in reverse order on every exit path.
func withLine(pos Position, line []Move, f func()) {
	undos := make([]func(), 0, len(line))
	defer func() {
		for i := len(undos) - 1; i >= 0; i-- {
			undos[i]()
		}
	}()
	for _, m := range line {
		undos = append(undos, pos.Apply(m))
	}
	f()
}
