package match

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memo-engine/board"
	"memo-engine/config"
	"memo-engine/engine"
)

// scripted plays a fixed list of UCI moves.
type scripted struct {
	t     *testing.T
	moves []string
	think time.Duration
}

func (p *scripted) Name() string { return "scripted" }

func (p *scripted) Think(b *board.Board, _ *Clock) board.Move {
	require.NotEmpty(p.t, p.moves, "script ran out at %s", b.FEN())
	m, err := b.ParseMove(p.moves[0])
	require.NoError(p.t, err)
	p.moves = p.moves[1:]
	if p.think > 0 {
		advance(p.think)
	}
	return m
}

var fakeNow time.Time

func advance(d time.Duration) { fakeNow = fakeNow.Add(d) }

func useFakeClock(t *testing.T) {
	fakeNow = time.Unix(0, 0)
	now = func() time.Time { return fakeNow }
	t.Cleanup(func() { now = time.Now })
}

func script(t *testing.T, moves ...string) *scripted {
	return &scripted{t: t, moves: moves}
}

func TestClock(t *testing.T) {
	useFakeClock(t)
	c := NewClock(time.Second, 100*time.Millisecond)
	require.True(t, c.Limited())
	assert.Zero(t, c.ElapsedThisTurn())

	c.StartTurn()
	advance(300 * time.Millisecond)
	assert.Equal(t, 300*time.Millisecond, c.ElapsedThisTurn())
	assert.Equal(t, 700*time.Millisecond, c.Remaining())
	assert.True(t, c.StopTurn())
	assert.Equal(t, 800*time.Millisecond, c.Remaining())

	c.StartTurn()
	advance(time.Second)
	assert.Zero(t, c.Remaining())
	assert.False(t, c.StopTurn())
}

func TestUnlimitedClockNeverFlags(t *testing.T) {
	useFakeClock(t)
	c := NewClock(0, 0)
	assert.False(t, c.Limited())
	c.StartTurn()
	advance(time.Hour)
	assert.True(t, c.StopTurn())
}

func TestClockIsEngineClock(t *testing.T) {
	var _ engine.GameClock = NewClock(time.Minute, 0)
}

func TestPlayEndings(t *testing.T) {
	cases := []struct {
		name     string
		fen      string
		white    []string
		black    []string
		outcome  Outcome
		reason   Reason
		numMoves int
	}{
		{
			name:  "fool's mate",
			white: []string{"f2f3", "g2g4"}, black: []string{"e7e5", "d8h4"},
			outcome: BlackWins, reason: Checkmate, numMoves: 4,
		},
		{
			name:    "stalemate",
			fen:     "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1",
			outcome: Draw, reason: Stalemate,
		},
		{
			name:    "bare kings",
			fen:     "8/8/4k3/8/8/3K4/8/8 w - - 0 1",
			outcome: Draw, reason: InsufficientMaterial,
		},
		{
			name:    "fifty moves",
			fen:     "8/8/4k3/8/8/3K4/8/R7 w - - 99 80",
			white:   []string{"a1a2"},
			outcome: Draw, reason: FiftyMove, numMoves: 1,
		},
		{
			name:    "knight shuffle",
			white:   []string{"g1f3", "f3g1", "g1f3", "f3g1"},
			black:   []string{"g8f6", "f6g8", "g8f6", "f6g8"},
			outcome: Draw, reason: Threefold, numMoves: 8,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Play(context.Background(), script(t, tc.white...), script(t, tc.black...),
				Settings{StartFEN: tc.fen})
			require.NoError(t, err)
			assert.Equal(t, tc.outcome, res.Outcome)
			assert.Equal(t, tc.reason, res.Reason)
			assert.Len(t, res.Moves, tc.numMoves)
		})
	}
}

func TestPlayFlagFall(t *testing.T) {
	useFakeClock(t)
	white := script(t, "e2e4")
	white.think = 2 * time.Second
	res, err := Play(context.Background(), white, script(t), Settings{GameDuration: time.Second})
	require.NoError(t, err)
	assert.Equal(t, BlackWins, res.Outcome)
	assert.Equal(t, FlagFall, res.Reason)
	assert.Empty(t, res.Moves)
}

func TestPlayPlyCap(t *testing.T) {
	res, err := Play(context.Background(),
		script(t, "g1f3", "b1c3", "e2e4"), script(t, "g8f6", "b8c6", "e7e5"), Settings{MaxPlies: 6})
	require.NoError(t, err)
	assert.Equal(t, Draw, res.Outcome)
	assert.Equal(t, PlyCap, res.Reason)
	assert.Equal(t, []string{"g1f3", "g8f6", "b1c3", "b8c6", "e2e4", "e7e5"}, res.Moves)
}

func TestRandomPlayerPlaysLegalMoves(t *testing.T) {
	p := &RandomPlayer{intn: func(n int) int { return n - 1 }}
	b := board.New()
	legal := b.LegalMoves(false)
	assert.Equal(t, legal[len(legal)-1], p.Think(b, nil))
}

func TestPlayRejectsIllegalMove(t *testing.T) {
	// e7e5 is parsed on the start position, where it is not white's move.
	start := board.New()
	undo := start.Apply(start.LegalMoves(false)[0])
	bad, err := start.ParseMove("e7e5")
	require.NoError(t, err)
	undo()

	_, err = Play(context.Background(), &fixedPlayer{m: bad}, script(t), Settings{})
	assert.ErrorContains(t, err, "illegal move")
}

type fixedPlayer struct{ m board.Move }

func (p *fixedPlayer) Name() string                         { return "fixed" }
func (p *fixedPlayer) Think(*board.Board, *Clock) board.Move { return p.m }

func TestPlayHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Play(ctx, NewRandomPlayer(), NewRandomPlayer(), Settings{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBotPlayerFindsMate(t *testing.T) {
	bot := NewBotPlayer(engine.Config{MaxDepth: 2, QuiescenceDelta: 15, Quiescence: true})
	res, err := Play(context.Background(), bot, script(t),
		Settings{StartFEN: "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", GameDuration: time.Minute})
	require.NoError(t, err)
	assert.Equal(t, WhiteWins, res.Outcome)
	assert.Equal(t, Checkmate, res.Reason)
	assert.Equal(t, []string{"a1a8"}, res.Moves)
}

func TestSeries(t *testing.T) {
	cfg := config.MatchConfig{Games: 4, Concurrency: 2, MaxPlies: 20}
	s, err := Series(context.Background(), cfg,
		func() Player { return NewRandomPlayer() },
		func() Player { return NewRandomPlayer() })
	require.NoError(t, err)
	assert.Equal(t, 4, s.Wins+s.Losses+s.Draws)
	require.Len(t, s.Games, 4)
	for i, g := range s.Games {
		assert.Equal(t, i, g.Number)
		assert.Equal(t, i%2 == 0, g.AIsWhite)
	}
}

func TestSeriesPropagatesErrors(t *testing.T) {
	start := board.New()
	undo := start.Apply(start.LegalMoves(false)[0])
	bad, err := start.ParseMove("e7e5")
	require.NoError(t, err)
	undo()

	cfg := config.MatchConfig{Games: 2, Concurrency: 1}
	_, err = Series(context.Background(), cfg,
		func() Player { return &fixedPlayer{m: bad} },
		func() Player { return &fixedPlayer{m: bad} })
	assert.ErrorContains(t, err, "game 0")
}

func TestSummaryTally(t *testing.T) {
	var s Summary
	s.add(GameRecord{AIsWhite: true, Result: Result{Outcome: WhiteWins}})
	s.add(GameRecord{AIsWhite: false, Result: Result{Outcome: WhiteWins}})
	s.add(GameRecord{AIsWhite: false, Result: Result{Outcome: BlackWins}})
	s.add(GameRecord{AIsWhite: true, Result: Result{Outcome: Draw}})
	assert.Equal(t, 2, s.Wins)
	assert.Equal(t, 1, s.Losses)
	assert.Equal(t, 1, s.Draws)
	assert.InDelta(t, 0.625, s.Score(), 1e-9)
	diff, ok := s.EloDifference()
	require.True(t, ok)
	assert.Greater(t, diff, 0.0)
	assert.Contains(t, s.String(), "Elo +")
}

func TestSummaryEloUndefined(t *testing.T) {
	var empty Summary
	_, ok := empty.EloDifference()
	assert.False(t, ok)
	assert.Equal(t, "0 - 0 - 0 [0.000] Elo n/a", empty.String())

	sweep := Summary{Wins: 3}
	_, ok = sweep.EloDifference()
	assert.False(t, ok)
	assert.Equal(t, "3 - 0 - 0 [1.000] Elo n/a", sweep.String())

	wipeout := Summary{Losses: 2}
	_, ok = wipeout.EloDifference()
	assert.False(t, ok)
	assert.NotContains(t, wipeout.String(), "Inf")
}
