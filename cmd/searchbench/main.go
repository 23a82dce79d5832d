package main

import (
	"flag"
	"os"
	"runtime/pprof"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"memo-engine/board"
	"memo-engine/engine"
)

func main() {
	depthFlag := flag.Int("depth", 3, "search depth in plies")
	repeatFlag := flag.Int("repeat", 1, "number of searches to run")
	fenFlag := flag.String("fen", board.Startpos, "FEN to search")
	quiescence := flag.Bool("quiescence", true, "enable quiescence extensions")
	warm := flag.Bool("warm", false, "keep the table between runs")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	if *depthFlag < 0 {
		log.Fatal().Int("depth", *depthFlag).Msg("depth must not be negative")
	}
	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create CPU profile")
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer func() {
			pprof.StopCPUProfile()
			f.Close()
		}()
	}

	cfg := engine.DefaultConfig()
	cfg.MaxDepth = *depthFlag
	cfg.TurnTimeout = 0
	cfg.Quiescence = *quiescence
	bot := engine.NewBot(cfg)

	pos, err := board.FromFEN(*fenFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("bad fen")
	}
	log.Info().Str("fen", *fenFlag).Int("depth", *depthFlag).Int("repeat", *repeatFlag).Msg("searchbench")

	startAll := time.Now()
	for i := 0; i < *repeatFlag; i++ {
		if !*warm {
			bot.Reset()
		}
		iterStart := time.Now()
		best := bot.Think(pos, engine.StartTurnTimer())
		log.Info().
			Int("iteration", i+1).
			Str("bestmove", best.String()).
			Dur("time", time.Since(iterStart)).
			Object("stats", bot.Stats()).
			Int("tableSize", bot.Table().Len()).
			Msg("search done")
	}
	log.Info().Dur("total", time.Since(startAll)).Msg("searchbench finished")
}
