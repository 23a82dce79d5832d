package engine

import "github.com/samber/lo"

// leaf seeds a node for pos from the static evaluator.
func (bot *Bot) leaf(pos Position) *SearchNode {
	value, terminal := Evaluate(pos, pos.Ply())
	return NewSearchNode(pos.WhiteToMove(), value, terminal)
}

// expand generates one ply of children for pos and folds them into its node.
// depth is how many plies pos lies below the search root. An extension call
// is itself a quiescence follow-up and never grants another one.
//
// Past the deadline only the root is still expanded, so the move selector
// always has something to choose from.
func (bot *Bot) expand(pos Position, depth int, extension bool) *SearchNode {
	node := bot.table.GetOrCreate(pos.Key(), func() *SearchNode { return bot.leaf(pos) })
	if depth > 0 && bot.time.TimeStatus() {
		return node
	}
	bot.stats.Expansions++

	// Captures come first so they are looked at before quiet moves.
	moves := lo.Uniq(append(pos.LegalMoves(true), pos.LegalMoves(false)...))
	for _, m := range moves {
		bot.expandMove(pos, node, m, depth, extension)
	}
	return node
}

func (bot *Bot) expandMove(pos Position, node *SearchNode, m Move, depth int, extension bool) {
	undo := pos.Apply(m)
	defer undo()

	key := pos.Key()
	child := bot.table.GetOrCreate(key, func() *SearchNode { return bot.leaf(pos) })

	if !extension && bot.cfg.Quiescence && depth == bot.cfg.MaxDepth &&
		!child.Complete && !child.Expanded() &&
		node.IsQuiescenceChild(child, bot.cfg.QuiescenceDelta) {
		bot.stats.Quiescence++
		child = bot.expand(pos, depth+1, true)
	}

	node.AddTransition(m, key)
	node.Fold(m, child)
}
