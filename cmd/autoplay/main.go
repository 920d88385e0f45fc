// Command autoplay runs headless games between two named decision
// makers and tallies the results.
package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/quatrain/quatrain/config"
	"github.com/quatrain/quatrain/game"
	"github.com/quatrain/quatrain/player"
	"github.com/quatrain/quatrain/player/minimax"
	"github.com/quatrain/quatrain/player/random"
	"github.com/quatrain/quatrain/runner"
)

var (
	numGames     = flag.Int("games", 10, "number of games to play")
	redName      = flag.String("red", "", "red player (default from config)")
	redParams    = flag.String("redparams", "", "red player parameters")
	yellowName   = flag.String("yellow", "", "yellow player (default from config)")
	yellowParams = flag.String("yellowparams", "", "yellow player parameters")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if *redName == "" {
		*redName = cfg.RedPlayer
		*redParams = cfg.RedParams
	}
	if *yellowName == "" {
		*yellowName = cfg.YellowPlayer
		*yellowParams = cfg.YellowParams
	}

	registry := player.NewRegistry()
	registry.Register("minimax", func() player.Player { return minimax.New() })
	registry.Register("random", func() player.Player { return random.New() })

	var redWins, yellowWins, draws int
	for i := 0; i < *numGames; i++ {
		red, err := registry.New(*redName, *redParams)
		if err != nil {
			log.Fatal().Err(err).Msg("creating red player")
		}
		yellow, err := registry.New(*yellowName, *yellowParams)
		if err != nil {
			log.Fatal().Err(err).Msg("creating yellow player")
		}
		board, err := game.NewBoard(cfg.Rows, cfg.Cols, cfg.RunLength, cfg.Supply)
		if err != nil {
			log.Fatal().Err(err).Msg("creating board")
		}

		r := runner.NewGameRunner(board, red, yellow, cfg.MoveBudget)
		r.SetPlayerNames(*redName, *yellowName)
		out, err := r.Run(context.Background())
		if err != nil {
			log.Fatal().Err(err).Int("game", i).Msg("game aborted")
		}
		switch out {
		case game.RedWins:
			redWins++
		case game.YellowWins:
			yellowWins++
		case game.Draw:
			draws++
		}
		log.Info().Int("game", i).Str("outcome", out.String()).Msg("finished")
	}

	fmt.Printf("%s (red) %d - %d %s (yellow), %d draws\n",
		*redName, redWins, yellowWins, *yellowName, draws)
}
