// Package config resolves runtime settings from defaults, a .env file, the environment and flags
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/blockfall/constants"
)

// ErrInvalid marks a setting that parsed but is unusable
var ErrInvalid = errors.New("invalid config")

// Environment variable names
const (
	EnvTick     = "BLOCKFALL_TICK"
	EnvAudio    = "BLOCKFALL_AUDIO"
	EnvDebug    = "BLOCKFALL_DEBUG"
	EnvLogFile  = "BLOCKFALL_LOG_FILE"
	EnvLogLevel = "BLOCKFALL_LOG_LEVEL"
	EnvSpectate = "BLOCKFALL_SPECTATE"
	EnvKeys     = "BLOCKFALL_KEYS"
)

// Config holds every runtime setting
type Config struct {
	TickInterval time.Duration
	Audio        bool
	Debug        bool
	LogFile      string
	LogLevel     zerolog.Level
	// SpectateAddr enables the spectator server when non-empty
	SpectateAddr string
	// Keys holds key binding overrides, e.g. "left=h,right=l"
	Keys string
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		TickInterval: constants.TickInterval,
		Audio:        true,
		LogFile:      "logs/blockfall.log",
		LogLevel:     zerolog.InfoLevel,
	}
}

// Load applies, in order: defaults, .env (if present), BLOCKFALL_* variables, then args
func Load(args []string) (Config, error) {
	// Missing .env is the normal case
	_ = godotenv.Load()
	return load(args, os.LookupEnv)
}

func load(args []string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	level := cfg.LogLevel.String()

	if err := applyEnv(&cfg, &level, lookup); err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet("blockfall", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.DurationVar(&cfg.TickInterval, "tick", cfg.TickInterval, "gravity tick interval")
	fs.BoolVar(&cfg.Audio, "audio", cfg.Audio, "play audio cues")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "write logs to the log file")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "log file path")
	fs.StringVar(&level, "log-level", level, "log level (trace, debug, info, warn, error)")
	fs.StringVar(&cfg.SpectateAddr, "spectate", cfg.SpectateAddr, "spectator server listen address, empty to disable")
	fs.StringVar(&cfg.Keys, "keys", cfg.Keys, "key binding overrides, action=key pairs separated by commas")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}

	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return Config{}, fmt.Errorf("%w: log level %q", ErrInvalid, level)
	}
	cfg.LogLevel = parsed

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, level *string, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvTick); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalid, EnvTick, v, err)
		}
		cfg.TickInterval = d
	}
	if v, ok := lookup(EnvAudio); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalid, EnvAudio, v, err)
		}
		cfg.Audio = b
	}
	if v, ok := lookup(EnvDebug); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalid, EnvDebug, v, err)
		}
		cfg.Debug = b
	}
	if v, ok := lookup(EnvLogFile); ok {
		cfg.LogFile = v
	}
	if v, ok := lookup(EnvLogLevel); ok {
		*level = v
	}
	if v, ok := lookup(EnvSpectate); ok {
		cfg.SpectateAddr = v
	}
	if v, ok := lookup(EnvKeys); ok {
		cfg.Keys = v
	}
	return nil
}

// Validate rejects settings the game cannot run with
func (c Config) Validate() error {
	if c.TickInterval <= 0 {
		return fmt.Errorf("%w: tick interval must be positive, got %v", ErrInvalid, c.TickInterval)
	}
	if c.Debug && c.LogFile == "" {
		return fmt.Errorf("%w: debug logging needs a log file", ErrInvalid)
	}
	return nil
}
