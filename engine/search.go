package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"
)

// Bot picks moves for one match. Its table outlives single turns so later
// searches start from what earlier ones found; call Reset between matches.
// A Bot is not safe for concurrent use.
type Bot struct {
	cfg   Config
	table *TransTable
	time  TimeHandler
	stats SearchStats

	// keys on the current search path
	path map[uint64]struct{}
	intn func(n int) int
}

func NewBot(cfg Config) *Bot {
	return &Bot{
		cfg:   cfg,
		table: NewTransTable(),
		path:  make(map[uint64]struct{}),
		intn:  frand.Intn,
	}
}

func (bot *Bot) Config() Config { return bot.cfg }

// SetConfig replaces every knob; the table is kept.
func (bot *Bot) SetConfig(cfg Config) { bot.cfg = cfg }

// SetLimits replaces the depth and turn limits for the following turns.
func (bot *Bot) SetLimits(maxDepth int, turnTimeout time.Duration) {
	bot.cfg.MaxDepth = maxDepth
	bot.cfg.TurnTimeout = turnTimeout
}

func (bot *Bot) Table() *TransTable { return bot.table }

// Stats describes the most recent Think.
func (bot *Bot) Stats() SearchStats { return bot.stats }

// Reset drops everything learnt during the match.
func (bot *Bot) Reset() {
	bot.table.Clear()
	bot.stats = SearchStats{}
}

// Think searches pos within the turn budget and returns one of the root's
// best moves, chosen uniformly at random. pos must have a legal move.
func (bot *Bot) Think(pos Position, timer Timer) Move {
	bot.stats = SearchStats{}
	bot.time.StartTurn(pos, timer, bot.cfg.TurnTimeout)

	key := pos.Key()
	root := bot.table.Get(key)
	if root != nil && root.Complete && !root.Expanded() {
		// Scored terminal as a leaf below an earlier root, most likely a
		// repetition of that line; the game itself still has moves here.
		root.Reopen()
	}
	if root == nil || !root.Complete {
		bot.explore(key, pos, nil, math.Inf(1), math.Inf(-1))
	}

	root = bot.table.Get(key)
	if len(root.BestMoves) == 0 {
		log.Warn().Uint64("key", key).Int("transitions", len(root.Moves())).Msg("refolding root with no best move")
		root.Refold(bot.table)
	}
	moves := root.SortedBestMoves()
	if len(moves) == 0 {
		panic(fmt.Sprintf("engine: no best move at root %x: %v", key, root))
	}
	move := moves[bot.intn(len(moves))]

	log.Debug().
		Uint64("key", key).
		Dur("budget", bot.time.Budget()).
		Dur("elapsed", timer.ElapsedThisTurn()).
		Object("stats", bot.stats).
		Int("tableSize", bot.table.Len()).
		Float64("hitRate", bot.table.HitRate()).
		Float64("value", root.Value()).
		Int("bestMoves", len(moves)).
		Bool("complete", root.Complete).
		Str("move", move.String()).
		Msg("think")
	return move
}

/*
explore walks the subtree under key to the depth limit. The board stays at
the search root; line is the sequence of moves leading from there to key.

alpha and beta carry the best value the parent has backed up so far (the
parent's minimum and maximum). A node that is already worse than that for
the parent is cut and reported as not completed, so the parent does not fold
it.
*/
func (bot *Bot) explore(key uint64, pos Position, line []Move, alpha, beta float64) bool {
	bot.stats.Nodes++

	// Terminal leaves keep their evaluation and are never expanded.
	node := bot.table.Get(key)
	if node == nil || (!node.Expanded() && !node.Complete) {
		withLine(pos, line, func() {
			node = bot.expand(pos, len(line), false)
		})
	}

	if node.Cuts(alpha, beta) {
		bot.stats.Prunes++
		return false
	}
	if node.Complete || len(line) >= bot.cfg.MaxDepth || bot.time.TimeStatus() {
		return true
	}

	bot.path[key] = struct{}{}
	defer delete(bot.path, key)

	node.Reset()
	alpha, beta = math.Inf(1), math.Inf(-1)
	for _, m := range node.Moves() {
		childKey := node.Transitions[m]
		if _, onPath := bot.path[childKey]; onPath {
			bot.stats.CycleSkips++
			continue
		}
		if !bot.explore(childKey, pos, append(line, m), alpha, beta) {
			continue
		}
		child := bot.table.Get(childKey)
		if child == nil {
			continue
		}
		node.Fold(m, child)
		alpha = math.Min(alpha, node.Value())
		beta = math.Max(beta, node.Value())
	}
	return true
}
