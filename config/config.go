// Package config loads the engine and host settings from defaults, an
// optional YAML file and MEMO_* environment variables, in that order.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"memo-engine/engine"
)

const EnvPrefix = "MEMO"

type Config struct {
	Engine engine.Config
	Match  MatchConfig
	Log    LogConfig
}

type MatchConfig struct {
	// GameDuration is each side's starting clock.
	GameDuration time.Duration
	Increment    time.Duration
	// Opponent is "bot" or "random".
	Opponent    string
	Games       int
	Concurrency int
	// MaxPlies ends a game as a draw once reached; zero disables the cap.
	MaxPlies int
}

type LogConfig struct {
	Level string
}

func setDefaults(v *viper.Viper) {
	d := engine.DefaultConfig()
	v.SetDefault("engine.maxdepth", d.MaxDepth)
	v.SetDefault("engine.turntimeout", d.TurnTimeout)
	v.SetDefault("engine.quiescencedelta", d.QuiescenceDelta)
	v.SetDefault("engine.quiescence", d.Quiescence)

	v.SetDefault("match.gameduration", 60*time.Second)
	v.SetDefault("match.increment", time.Duration(0))
	v.SetDefault("match.opponent", "bot")
	v.SetDefault("match.games", 2)
	v.SetDefault("match.concurrency", 2)
	v.SetDefault("match.maxplies", 600)

	v.SetDefault("log.level", "info")
}

// Load reads the configuration. An empty path skips the file layer.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := Config{
		Engine: engine.Config{
			MaxDepth:        v.GetInt("engine.maxdepth"),
			TurnTimeout:     v.GetDuration("engine.turntimeout"),
			QuiescenceDelta: v.GetFloat64("engine.quiescencedelta"),
			Quiescence:      v.GetBool("engine.quiescence"),
		},
		Match: MatchConfig{
			GameDuration: v.GetDuration("match.gameduration"),
			Increment:    v.GetDuration("match.increment"),
			Opponent:     strings.ToLower(v.GetString("match.opponent")),
			Games:        v.GetInt("match.games"),
			Concurrency:  v.GetInt("match.concurrency"),
			MaxPlies:     v.GetInt("match.maxplies"),
		},
		Log: LogConfig{Level: v.GetString("log.level")},
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Engine.MaxDepth < 0 {
		return fmt.Errorf("engine.maxdepth must not be negative, got %d", c.Engine.MaxDepth)
	}
	if c.Match.Opponent != "bot" && c.Match.Opponent != "random" {
		return fmt.Errorf("match.opponent must be bot or random, got %q", c.Match.Opponent)
	}
	if c.Match.Games < 0 || c.Match.Concurrency < 1 {
		return fmt.Errorf("match needs games >= 0 and concurrency >= 1, got %d and %d",
			c.Match.Games, c.Match.Concurrency)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// Apply sets the global zerolog level.
func (c LogConfig) Apply() error {
	level, err := zerolog.ParseLevel(c.Level)
	if err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	zerolog.SetGlobalLevel(level)
	return nil
}
