package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"memo-engine/board"
	"memo-engine/config"
	"memo-engine/engine"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}
	if err := cfg.Log.Apply(); err != nil {
		log.Fatal().Err(err).Msg("setting log level")
	}
	uciLoop(os.Stdin, os.Stdout, cfg.Engine)
}

// uciClock is the mover's clock as reported by a go command.
type uciClock struct {
	engine.TurnTimer
	remaining, increment time.Duration
}

func (c *uciClock) Remaining() time.Duration { return c.remaining - c.ElapsedThisTurn() }
func (c *uciClock) Increment() time.Duration { return c.increment }

type goParams struct {
	wtime, btime, winc, binc time.Duration
	movetime                 time.Duration
	depth                    int
	infinite                 bool
}

func uciLoop(in io.Reader, out io.Writer, base engine.Config) {
	scanner := bufio.NewScanner(in)
	pos := board.New() // the game board
	bot := engine.NewBot(base)

	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "uci":
			fmt.Fprintln(out, "id name MemoEngine")
			fmt.Fprintln(out, "id author memo-engine authors")
			fmt.Fprintf(out, "option name MaxDepth type spin default %d min 0 max 64\n", base.MaxDepth)
			fmt.Fprintf(out, "option name TurnTimeout type spin default %d min 0 max 3600000\n", base.TurnTimeout.Milliseconds())
			fmt.Fprintf(out, "option name Quiescence type check default %t\n", base.Quiescence)
			fmt.Fprintln(out, "uciok")
		case "isready":
			fmt.Fprintln(out, "readyok")
		case "ucinewgame":
			pos = board.New()
			bot.Reset()
		case "quit":
			return
		case "stop":
			// searches run synchronously, so there is nothing to stop
		case "setoption":
			if err := setOption(&base, tokens[1:]); err != nil {
				fmt.Fprintln(out, "info string", err)
				continue
			}
			bot.SetConfig(base)
		case "position":
			next, err := parsePosition(tokens[1:])
			if err != nil {
				fmt.Fprintln(out, "info string", err)
				continue
			}
			pos = next
		case "go":
			params, err := parseGo(tokens[1:])
			if err != nil {
				fmt.Fprintln(out, "info string", err)
				continue
			}
			if !pos.HasLegalMoves() {
				fmt.Fprintln(out, "bestmove 0000")
				continue
			}
			timer := turnLimits(bot, base, params, pos.WhiteToMove())
			best := bot.Think(pos, timer)
			bot.SetConfig(base)
			fmt.Fprintln(out, "bestmove", best.String())
		case "d":
			fmt.Fprintln(out, pos.FEN())
			if root := bot.Table().Get(pos.Key()); root != nil {
				fmt.Fprintln(out, root)
			}
		default:
			fmt.Fprintln(out, "info string Unknown command:", line)
		}
	}
}

// turnLimits sets the bot's limits for one go command and returns the timer
// to search with.
func turnLimits(bot *engine.Bot, base engine.Config, p goParams, whiteToMove bool) engine.Timer {
	depth, timeout := base.MaxDepth, base.TurnTimeout
	if p.depth > 0 {
		depth = p.depth
	}
	switch {
	case p.infinite:
		timeout = 0
	case p.movetime > 0:
		timeout = p.movetime
	}
	bot.SetLimits(depth, timeout)

	remaining, increment := p.btime, p.binc
	if whiteToMove {
		remaining, increment = p.wtime, p.winc
	}
	if remaining > 0 && !p.infinite && p.movetime == 0 {
		return &uciClock{TurnTimer: *engine.StartTurnTimer(), remaining: remaining, increment: increment}
	}
	return engine.StartTurnTimer()
}

func parseGo(tokens []string) (goParams, error) {
	var p goParams
	for i := 0; i < len(tokens); i++ {
		name := strings.ToLower(tokens[i])
		if name == "infinite" {
			p.infinite = true
			continue
		}
		var target *time.Duration
		switch name {
		case "wtime":
			target = &p.wtime
		case "btime":
			target = &p.btime
		case "winc":
			target = &p.winc
		case "binc":
			target = &p.binc
		case "movetime":
			target = &p.movetime
		case "depth":
		default:
			return p, fmt.Errorf("unknown go subcommand %s", name)
		}
		if i+1 >= len(tokens) {
			return p, fmt.Errorf("malformed go command option %s", name)
		}
		i++
		n, err := strconv.Atoi(tokens[i])
		if err != nil {
			return p, fmt.Errorf("malformed go command option %s: %w", name, err)
		}
		if target == nil {
			p.depth = n
		} else {
			*target = time.Duration(n) * time.Millisecond
		}
	}
	return p, nil
}

func parsePosition(tokens []string) (*board.Board, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("malformed position command")
	}
	rest := tokens[1:]
	var fen string
	switch strings.ToLower(tokens[0]) {
	case "startpos":
		fen = board.Startpos
	case "fen":
		end := len(rest)
		for i, tok := range rest {
			if strings.ToLower(tok) == "moves" {
				end = i
				break
			}
		}
		if end == 0 {
			return nil, fmt.Errorf("invalid fen position")
		}
		fen = strings.Join(rest[:end], " ")
		rest = rest[end:]
	default:
		return nil, fmt.Errorf("invalid position subcommand %s", tokens[0])
	}

	pos, err := board.FromFEN(fen)
	if err != nil {
		return nil, err
	}
	if len(rest) == 0 || strings.ToLower(rest[0]) != "moves" {
		return pos, nil
	}
	for _, moveStr := range rest[1:] {
		m, err := pos.ParseMove(strings.ToLower(moveStr))
		if err != nil {
			return nil, fmt.Errorf("move %s not found for position %s: %w", moveStr, pos.FEN(), err)
		}
		pos.Apply(m)
	}
	return pos, nil
}

func setOption(cfg *engine.Config, tokens []string) error {
	// setoption name <id> value <x>
	if len(tokens) != 4 || strings.ToLower(tokens[0]) != "name" || strings.ToLower(tokens[2]) != "value" {
		return fmt.Errorf("malformed setoption command")
	}
	value := tokens[3]
	switch strings.ToLower(tokens[1]) {
	case "maxdepth":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid MaxDepth %s", value)
		}
		cfg.MaxDepth = n
	case "turntimeout":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid TurnTimeout %s", value)
		}
		cfg.TurnTimeout = time.Duration(n) * time.Millisecond
	case "quiescence":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid Quiescence %s", value)
		}
		cfg.Quiescence = b
	default:
		return fmt.Errorf("unknown option %s", tokens[1])
	}
	return nil
}
