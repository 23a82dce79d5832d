package match

import (
	"lukechampine.com/frand"

	"memo-engine/board"
	"memo-engine/engine"
)

// Player chooses moves for one side. The board must be left as it was
// handed over.
type Player interface {
	Name() string
	Think(b *board.Board, clock *Clock) board.Move
}

// BotPlayer plays with the memoizing search engine.
type BotPlayer struct {
	Bot *engine.Bot
}

func NewBotPlayer(cfg engine.Config) *BotPlayer {
	return &BotPlayer{Bot: engine.NewBot(cfg)}
}

func (p *BotPlayer) Name() string { return "bot" }

func (p *BotPlayer) Think(b *board.Board, clock *Clock) board.Move {
	var timer engine.Timer = clock
	if !clock.Limited() {
		timer = engine.StartTurnTimer()
	}
	return p.Bot.Think(b, timer)
}

// RandomPlayer plays a uniformly random legal move.
type RandomPlayer struct {
	intn func(n int) int
}

func NewRandomPlayer() *RandomPlayer {
	return &RandomPlayer{intn: frand.Intn}
}

func (p *RandomPlayer) Name() string { return "random" }

func (p *RandomPlayer) Think(b *board.Board, _ *Clock) board.Move {
	moves := b.LegalMoves(false)
	return moves[p.intn(len(moves))]
}
