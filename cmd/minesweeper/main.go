package main

import (
	"context"
	"errors"
	"fmt"
	"hash/maphash"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/console"
	"github.com/vancomm/minesweeper-engine/internal/logging"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

func createRand(seed *uint64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewPCG(*seed, *seed))
	}
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func newRootCmd(gameCfg *config.Game, logCfg *config.Logging) *cobra.Command {
	var (
		tick time.Duration
		seed uint64
	)

	cmd := &cobra.Command{
		Use:   "minesweeper",
		Short: "Play minesweeper in the terminal",
		Long: `minesweeper reads one command per line:

  n [name] [dimensions=N] [mine_count=M]   start a new game
  o X Y                                    open a cell
  f X Y                                    flag or unflag a cell
  p                                        print the board
  t                                        advance the clock by a second
  q                                        quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("seed") {
				gameCfg.Seed = &seed
			}

			log, err := logging.New(logCfg)
			if err != nil {
				return err
			}
			mines.Log = log

			log.WithFields(logrus.Fields{
				"params":   gameCfg.Params.String(),
				"player":   gameCfg.PlayerName,
				"seeded":   gameCfg.Seed != nil,
				"tick":     tick.String(),
				"log_file": logCfg.File,
			}).Debug("config")

			gen := mines.NewRandomGenerator(createRand(gameCfg.Seed))
			game, err := mines.New(gameCfg.Params, gen)
			if err != nil {
				return err
			}
			if err := game.NewGame(gameCfg.PlayerName); err != nil {
				return err
			}

			session := console.New(game, gen, cmd.OutOrStdout(), log, tick)
			err = session.Run(cmd.Context(), cmd.InOrStdin())
			if errors.Is(err, context.Canceled) {
				log.Info("interrupted")
				return nil
			}
			return err
		},
		SilenceUsage: true,
	}

	flags := cmd.Flags()
	flags.IntVarP(&gameCfg.Params.Dimensions, "dimensions", "d", gameCfg.Params.Dimensions, "Board side length (env: MINES_DIMENSIONS)")
	flags.IntVarP(&gameCfg.Params.MineCount, "mines", "m", gameCfg.Params.MineCount, "Number of mines (env: MINES_COUNT)")
	flags.StringVarP(&gameCfg.PlayerName, "name", "n", gameCfg.PlayerName, "Player name (env: MINES_PLAYER)")
	flags.Uint64Var(&seed, "seed", 0, "Fix mine placement (env: MINES_SEED)")
	flags.DurationVar(&tick, "tick", time.Second, "Clock interval, 0 disables the clock")
	flags.StringVar(&logCfg.File, "log-file", logCfg.File, "Rotating JSON log file (env: MINES_LOG_FILE)")
	flags.BoolVar(&logCfg.Development, "dev", logCfg.Development, "Debug logging (env: DEVELOPMENT)")

	return cmd
}

func main() {
	gameCfg, err := config.NewGame()
	if err != nil {
		fmt.Fprintln(os.Stderr, "unable to read game config:", err)
		os.Exit(1)
	}
	logCfg, err := config.NewLogging()
	if err != nil {
		fmt.Fprintln(os.Stderr, "unable to read logging config:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	err = newRootCmd(gameCfg, logCfg).ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
