package engine

import "github.com/rs/zerolog"

// SearchStats counts what one call to Think did.
type SearchStats struct {
	Nodes      uint64
	Expansions uint64
	Quiescence uint64
	Prunes     uint64
	CycleSkips uint64
}

func (s SearchStats) MarshalZerologObject(e *zerolog.Event) {
	e.Uint64("nodes", s.Nodes).
		Uint64("expansions", s.Expansions).
		Uint64("quiescence", s.Quiescence).
		Uint64("prunes", s.Prunes).
		Uint64("cycleSkips", s.CycleSkips)
}
