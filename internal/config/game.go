package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

type Game struct {
	Params     mines.GameParams
	PlayerName string
	// Seed fixes mine placement when set.
	Seed *uint64
}

func NewGame() (*Game, error) {
	params := mines.DefaultGameParams()

	var err error
	params.Dimensions, err = lookupInt("MINES_DIMENSIONS", params.Dimensions)
	if err != nil {
		return nil, err
	}
	params.MineCount, err = lookupInt("MINES_COUNT", params.MineCount)
	if err != nil {
		return nil, err
	}

	cfg := &Game{
		Params:     params,
		PlayerName: lookupString("MINES_PLAYER", ""),
	}

	if seedStr, ok := os.LookupEnv("MINES_SEED"); ok {
		seed, err := strconv.ParseUint(seedStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("unable to convert MINES_SEED to uint: %w", err)
		}
		cfg.Seed = &seed
	}

	return cfg, nil
}
