package match

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"memo-engine/config"
)

// PlayerFactory builds a fresh player for one game, so no state survives
// from one game to the next.
type PlayerFactory func() Player

type GameRecord struct {
	Number   int
	AIsWhite bool
	Result   Result
}

// Summary counts the series from player A's point of view.
type Summary struct {
	Wins, Losses, Draws int
	Games               []GameRecord
}

// Score is A's points per game, a draw counting half.
func (s Summary) Score() float64 {
	n := s.Wins + s.Losses + s.Draws
	if n == 0 {
		return 0
	}
	return (float64(s.Wins) + 0.5*float64(s.Draws)) / float64(n)
}

// EloDifference is the rating gap implied by Score. ok is false when no
// game was played or one side scored every point, where the gap is unbounded.
func (s Summary) EloDifference() (diff float64, ok bool) {
	score := s.Score()
	if s.Wins+s.Losses+s.Draws == 0 || score <= 0 || score >= 1 {
		return 0, false
	}
	return -math.Log(1/score-1) * 400 / math.Ln10, true
}

func (s Summary) String() string {
	elo := "n/a"
	if diff, ok := s.EloDifference(); ok {
		elo = fmt.Sprintf("%+.1f", diff)
	}
	return fmt.Sprintf("%d - %d - %d [%.3f] Elo %s", s.Wins, s.Losses, s.Draws, s.Score(), elo)
}

func (s *Summary) add(g GameRecord) {
	s.Games = append(s.Games, g)
	switch {
	case g.Result.Outcome == Draw:
		s.Draws++
	case (g.Result.Outcome == WhiteWins) == g.AIsWhite:
		s.Wins++
	default:
		s.Losses++
	}
}

// Series plays cfg.Games games between A and B, at most cfg.Concurrency at a
// time, with A taking white in the even-numbered games.
func Series(ctx context.Context, cfg config.MatchConfig, newA, newB PlayerFactory) (Summary, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Concurrency, 1))

	settings := Settings{
		GameDuration: cfg.GameDuration,
		Increment:    cfg.Increment,
		MaxPlies:     cfg.MaxPlies,
	}
	records := make([]GameRecord, cfg.Games)
	for i := range records {
		i := i
		g.Go(func() error {
			a, b := newA(), newB()
			white, black := a, b
			aIsWhite := i%2 == 0
			if !aIsWhite {
				white, black = b, a
			}
			res, err := Play(ctx, white, black, settings)
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			records[i] = GameRecord{Number: i, AIsWhite: aIsWhite, Result: res}
			log.Info().Int("game", i).Bool("aIsWhite", aIsWhite).Str("result", res.String()).Msg("series game done")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	var s Summary
	for _, r := range records {
		s.add(r)
	}
	return s, nil
}
