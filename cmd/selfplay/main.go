package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"memo-engine/config"
	"memo-engine/match"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	games := flag.Int("games", 0, "number of games (overrides config when > 0)")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}
	if err := cfg.Log.Apply(); err != nil {
		log.Fatal().Err(err).Msg("setting log level")
	}
	if *games > 0 {
		cfg.Match.Games = *games
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	newBot := func() match.Player { return match.NewBotPlayer(cfg.Engine) }
	newOpponent := newBot
	if cfg.Match.Opponent == "random" {
		newOpponent = func() match.Player { return match.NewRandomPlayer() }
	}

	log.Info().
		Int("games", cfg.Match.Games).
		Int("concurrency", cfg.Match.Concurrency).
		Str("opponent", cfg.Match.Opponent).
		Dur("gameDuration", cfg.Match.GameDuration).
		Msg("selfplay started")

	summary, err := match.Series(ctx, cfg.Match, newBot, newOpponent)
	if err != nil {
		log.Fatal().Err(err).Msg("selfplay failed")
	}
	fmt.Println(summary)
}
