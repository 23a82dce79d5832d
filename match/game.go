// Package match hosts games between players: clocks, the formal game
// rules and concurrent self-play series.
package match

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"memo-engine/board"
)

type Outcome int

const (
	Draw Outcome = iota
	WhiteWins
	BlackWins
)

func (o Outcome) String() string {
	switch o {
	case WhiteWins:
		return "1-0"
	case BlackWins:
		return "0-1"
	default:
		return "1/2-1/2"
	}
}

type Reason string

const (
	Checkmate            Reason = "checkmate"
	Stalemate            Reason = "stalemate"
	Threefold            Reason = "threefold repetition"
	FiftyMove            Reason = "fifty-move rule"
	InsufficientMaterial Reason = "insufficient material"
	FlagFall             Reason = "flag fall"
	PlyCap               Reason = "ply cap"
)

type Settings struct {
	// StartFEN defaults to the standard starting position.
	StartFEN     string
	GameDuration time.Duration
	Increment    time.Duration
	// MaxPlies adjudicates a draw once reached; zero disables it.
	MaxPlies int
}

type Result struct {
	Outcome  Outcome
	Reason   Reason
	Moves    []string
	FinalFEN string
}

func (r Result) String() string {
	return fmt.Sprintf("%s {%s} after %d plies", r.Outcome, r.Reason, len(r.Moves))
}

// Play runs one game to completion. It fails if a player returns an illegal
// move or ctx is cancelled between moves.
func Play(ctx context.Context, white, black Player, settings Settings) (Result, error) {
	fen := settings.StartFEN
	if fen == "" {
		fen = board.Startpos
	}
	b, err := board.FromFEN(fen)
	if err != nil {
		return Result{}, fmt.Errorf("start position: %w", err)
	}
	clocks := map[bool]*Clock{
		true:  NewClock(settings.GameDuration, settings.Increment),
		false: NewClock(settings.GameDuration, settings.Increment),
	}
	players := map[bool]Player{true: white, false: black}

	log.Info().Str("white", white.Name()).Str("black", black.Name()).Str("fen", fen).Msg("game started")

	var moves []string
	finish := func(outcome Outcome, reason Reason) (Result, error) {
		res := Result{Outcome: outcome, Reason: reason, Moves: moves, FinalFEN: b.FEN()}
		log.Info().
			Str("white", white.Name()).
			Str("black", black.Name()).
			Stringer("outcome", outcome).
			Str("reason", string(reason)).
			Int("plies", len(moves)).
			Msg("game finished")
		return res, nil
	}

	for {
		if outcome, reason, over := adjudicate(b); over {
			return finish(outcome, reason)
		}
		if settings.MaxPlies > 0 && len(moves) >= settings.MaxPlies {
			return finish(Draw, PlyCap)
		}
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		side := b.WhiteToMove()
		player, clock := players[side], clocks[side]

		clock.StartTurn()
		m := player.Think(b, clock)
		inTime := clock.StopTurn()

		if !inTime {
			return finish(winnerIf(!side), FlagFall)
		}
		if !lo.Contains(b.LegalMoves(false), m) {
			return Result{}, fmt.Errorf("%s played illegal move %s in %s", player.Name(), m.String(), b.FEN())
		}
		b.Apply(m)
		moves = append(moves, m.String())
	}
}

// adjudicate applies the formal end-of-game rules to the side to move.
func adjudicate(b *board.Board) (Outcome, Reason, bool) {
	switch {
	case b.IsInCheckmate():
		return winnerIf(!b.WhiteToMove()), Checkmate, true
	case b.IsInStalemate():
		return Draw, Stalemate, true
	case b.IsInsufficientMaterial():
		return Draw, InsufficientMaterial, true
	case b.IsDrawBy50():
		return Draw, FiftyMove, true
	case b.IsThreefold():
		return Draw, Threefold, true
	}
	return Draw, "", false
}

func winnerIf(white bool) Outcome {
	if white {
		return WhiteWins
	}
	return BlackWins
}
