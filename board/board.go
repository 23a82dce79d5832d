// Package board wraps the dragontoothmg move generator with the game-level
// rules the search needs: repetition and fifty-move tracking, insufficient
// material, stalemate and checkmate.
package board

import (
	"fmt"

	"github.com/dylhunn/dragontoothmg"
	"github.com/samber/lo"
)

const Startpos = dragontoothmg.Startpos

type Move = dragontoothmg.Move

// Board is a single mutable position shared by the host and the search.
// Apply/undo pairs must nest.
type Board struct {
	pos      dragontoothmg.Board
	states   stateStack
	startPly int
}

// New returns a board set to the standard starting position.
func New() *Board {
	b, err := FromFEN(Startpos)
	if err != nil {
		panic(err)
	}
	return b
}

// FromFEN parses fen. dragontoothmg panics on malformed input, which is
// reported here as an error instead.
func FromFEN(fen string) (b *Board, err error) {
	defer func() {
		if r := recover(); r != nil {
			b, err = nil, fmt.Errorf("parse fen %q: %v", fen, r)
		}
	}()
	b = &Board{pos: dragontoothmg.ParseFen(fen)}
	b.startPly = 2 * (int(b.pos.Fullmoveno) - 1)
	if !b.pos.Wtomove {
		b.startPly++
	}
	if b.startPly < 0 {
		b.startPly = 0
	}
	b.states.reset(b.pos.Hash(), int(b.pos.Halfmoveclock))
	return b, nil
}

// LegalMoves lists the legal moves of the side to move, optionally only
// captures (en passant included).
func (b *Board) LegalMoves(capturesOnly bool) []Move {
	moves := b.pos.GenerateLegalMoves()
	if !capturesOnly {
		return moves
	}
	return lo.Filter(moves, func(m Move, _ int) bool {
		return b.isCapture(m)
	})
}

// Apply plays m and returns the closure that takes it back.
func (b *Board) Apply(m Move) func() {
	irreversible := b.isCapture(m) || b.isPawnMove(m)
	unapply := b.pos.Apply(m)
	b.states.push(b.pos.Hash(), irreversible)
	return func() {
		unapply()
		b.states.pop()
	}
}

// isCapture also catches en passant, where the target square is empty: a
// pawn that changes file always takes something.
func (b *Board) isCapture(m Move) bool {
	if dragontoothmg.IsCapture(m, &b.pos) {
		return true
	}
	return b.isPawnMove(m) && m.From()%8 != m.To()%8
}

func (b *Board) isPawnMove(m Move) bool {
	from := uint64(1) << m.From()
	if b.pos.Wtomove {
		return b.pos.White.Pawns&from != 0
	}
	return b.pos.Black.Pawns&from != 0
}

// Key is the zobrist hash of the position.
func (b *Board) Key() uint64 { return b.pos.Hash() }

func (b *Board) WhiteToMove() bool { return b.pos.Wtomove }

// Ply counts half-moves since the start of the game, including moves
// applied by a search in progress.
func (b *Board) Ply() int { return b.startPly + b.states.depth() }

func (b *Board) FEN() string { return b.pos.ToFen() }

func (b *Board) IsInCheck() bool { return b.pos.OurKingInCheck() }

func (b *Board) HasLegalMoves() bool { return len(b.pos.GenerateLegalMoves()) > 0 }

func (b *Board) IsInCheckmate() bool { return b.IsInCheck() && !b.HasLegalMoves() }

func (b *Board) IsInStalemate() bool { return !b.IsInCheck() && !b.HasLegalMoves() }

func (b *Board) IsDrawBy50() bool { return b.states.top().Rule50 >= fiftyMoveLimit }

// IsRepeatedPosition reports whether the current position already occurred
// since the last irreversible move.
func (b *Board) IsRepeatedPosition() bool { return b.states.repetitions() >= 1 }

// IsThreefold reports a formal threefold repetition.
func (b *Board) IsThreefold() bool { return b.states.repetitions() >= 2 }

// IsDraw is the search-side draw test: any repetition counts.
func (b *Board) IsDraw() bool {
	return b.IsDrawBy50() || b.IsInsufficientMaterial() || b.IsRepeatedPosition() || b.IsInStalemate()
}

// PieceCount returns how many pieces of kind p the given side owns.
func (b *Board) PieceCount(white bool, p dragontoothmg.Piece) int {
	bb := &b.pos.Black
	if white {
		bb = &b.pos.White
	}
	return countPieces(bb, p)
}

// ParseMove resolves a UCI move string against the legal moves.
func (b *Board) ParseMove(uci string) (Move, error) {
	moves := b.pos.GenerateLegalMoves()
	for i := range moves {
		if moves[i].String() == uci {
			return moves[i], nil
		}
	}
	parsed, err := dragontoothmg.ParseMove(uci)
	if err != nil {
		return 0, fmt.Errorf("parse move %q: %w", uci, err)
	}
	for _, m := range moves {
		if m.From() == parsed.From() && m.To() == parsed.To() && m.Promote() == parsed.Promote() {
			return m, nil
		}
	}
	return 0, fmt.Errorf("move %q is not legal in %s", uci, b.FEN())
}
