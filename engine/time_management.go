package engine

import (
	"time"

	"github.com/dylhunn/dragontoothmg"
)

// TurnTimer measures wall time since the turn started.
type TurnTimer struct {
	start time.Time
}

func StartTurnTimer() *TurnTimer { return &TurnTimer{start: time.Now()} }

func (t *TurnTimer) ElapsedThisTurn() time.Duration { return time.Since(t.start) }

type TimeHandler struct {
	timer  Timer
	budget time.Duration
}

// StartTurn fixes the budget for the coming search: turnTimeout, tightened
// to the clock allocation when timer also carries the game clock.
func (th *TimeHandler) StartTurn(pos Position, timer Timer, turnTimeout time.Duration) {
	th.timer = timer
	th.budget = turnTimeout
	if clock, ok := timer.(GameClock); ok {
		alloc := allocateMoveTime(clock.Remaining(), clock.Increment(), gamePhase(pos))
		if th.budget <= 0 || alloc < th.budget {
			th.budget = alloc
		}
	}
}

// Budget is the time allowed this turn; zero means unlimited.
func (th *TimeHandler) Budget() time.Duration { return th.budget }

/*
  - True if we're out of time
  - False if we still got time, or searching without a limit
*/
func (th *TimeHandler) TimeStatus() bool {
	if th.budget <= 0 || th.timer == nil {
		return false
	}
	return th.timer.ElapsedThisTurn() >= th.budget
}

func allocateMoveTime(remaining, increment time.Duration, phase int) time.Duration {
	movesLeft := estimateMovesRemaining(phase) // 20..45

	// Engine-side safety knobs
	const overheadMs = 30
	const minMoveMs = 5
	const maxFrac = 0.7
	const panicThreshMs = 1000
	const panicFrac = 0.90

	rem := int(remaining.Milliseconds())
	inc := int(increment.Milliseconds())

	var moveTime int
	if inc > 0 {
		if rem < panicThreshMs {
			moveTime = int(float64(inc) * panicFrac)
		} else {
			moveTime = rem/movesLeft + inc
		}
	} else {
		moveTime = rem / 40
	}

	if moveTime < minMoveMs {
		moveTime = minMoveMs
	}
	if moveTime > int(float64(rem)*maxFrac) {
		moveTime = int(float64(rem) * maxFrac)
	}
	if moveTime > rem-overheadMs {
		moveTime = rem - overheadMs
	}
	if moveTime < minMoveMs {
		moveTime = minMoveMs
	}
	return time.Duration(moveTime) * time.Millisecond
}

// gamePhase is 24 with all minor and major pieces on the board, 0 with none.
func gamePhase(pos Position) int {
	phase := 0
	for _, white := range []bool{true, false} {
		phase += pos.PieceCount(white, dragontoothmg.Knight) + pos.PieceCount(white, dragontoothmg.Bishop)
		phase += 2 * pos.PieceCount(white, dragontoothmg.Rook)
		phase += 4 * pos.PieceCount(white, dragontoothmg.Queen)
	}
	if phase > 24 {
		phase = 24
	}
	return phase
}

func estimateMovesRemaining(phase int) int {
	// Linearly interpolate between 20 (endgame) and 45 (opening/midgame)
	return (phase*25)/24 + 20
}
