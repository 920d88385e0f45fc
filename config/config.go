// Package config loads the runtime parameters of the game: board
// geometry, piece supply, the two decision makers and the per-move
// thinking budget. Values come from an optional quatrain.yaml and
// QUATRAIN_* environment variables; anything missing or malformed
// falls back to the documented default.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Rows      int
	Cols      int
	RunLength int
	// Supply is the per-(player, shape) piece allotment.
	Supply int

	RedPlayer    string
	RedParams    string
	YellowPlayer string
	YellowParams string

	// MoveBudget bounds a single Think call. Zero disables the bound.
	MoveBudget time.Duration

	LogLevel string
}

const (
	DefaultRows       = 6
	DefaultCols       = 7
	DefaultRunLength  = 4
	DefaultSupply     = 11
	DefaultPlayer     = "minimax"
	DefaultMoveBudget = 30 * time.Second
	DefaultLogLevel   = "info"
)

// Load reads quatrain.yaml from the working directory, if present, and
// the environment.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("rows", DefaultRows)
	v.SetDefault("cols", DefaultCols)
	v.SetDefault("run-length", DefaultRunLength)
	v.SetDefault("supply", DefaultSupply)
	v.SetDefault("red-player", DefaultPlayer)
	v.SetDefault("red-params", "")
	v.SetDefault("yellow-player", DefaultPlayer)
	v.SetDefault("yellow-params", "")
	v.SetDefault("move-budget", DefaultMoveBudget)
	v.SetDefault("log-level", DefaultLogLevel)

	v.SetEnvPrefix("quatrain")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("quatrain")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	c := &Config{
		Rows:         intOr(v, "rows", DefaultRows),
		Cols:         intOr(v, "cols", DefaultCols),
		RunLength:    intOr(v, "run-length", DefaultRunLength),
		Supply:       intOr(v, "supply", DefaultSupply),
		RedPlayer:    stringOr(v, "red-player", DefaultPlayer),
		RedParams:    v.GetString("red-params"),
		YellowPlayer: stringOr(v, "yellow-player", DefaultPlayer),
		YellowParams: v.GetString("yellow-params"),
		MoveBudget:   v.GetDuration("move-budget"),
		LogLevel:     stringOr(v, "log-level", DefaultLogLevel),
	}
	if c.MoveBudget < 0 {
		c.MoveBudget = DefaultMoveBudget
	}
	return c, nil
}

func intOr(v *viper.Viper, key string, def int) int {
	if n := v.GetInt(key); n > 0 {
		return n
	}
	return def
}

func stringOr(v *viper.Viper, key string, def string) string {
	if s := v.GetString(key); s != "" {
		return s
	}
	return def
}
