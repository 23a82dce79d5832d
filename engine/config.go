package engine

import "time"

// Config holds the search knobs. All of them are tunable; DefaultConfig
// returns the values the engine ships with.
type Config struct {
	// MaxDepth bounds the normal search horizon in plies from the root.
	MaxDepth int
	// TurnTimeout caps the time spent per move. Zero or less means unlimited.
	TurnTimeout time.Duration
	// QuiescenceDelta is the squared value jump that earns a leaf one extra ply.
	QuiescenceDelta float64
	Quiescence      bool
}

func DefaultConfig() Config {
	return Config{
		MaxDepth:        7,
		TurnTimeout:     5000 * time.Millisecond,
		QuiescenceDelta: 15,
		Quiescence:      true,
	}
}
