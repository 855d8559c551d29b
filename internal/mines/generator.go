package mines

import (
	"fmt"

	"github.com/gorilla/schema"
)

const (
	DefaultDimensions = 10
	DefaultMineCount  = 10
)

type GameParams struct {
	Dimensions int `schema:"dimensions" json:"dimensions"`
	MineCount  int `schema:"mine_count" json:"mine_count"`
}

func DefaultGameParams() GameParams {
	return GameParams{Dimensions: DefaultDimensions, MineCount: DefaultMineCount}
}

func (p GameParams) Unpack() (dimensions int, mineCount int) {
	return p.Dimensions, p.MineCount
}

// Cells is the number of cells on a board with these params.
func (p GameParams) Cells() int {
	return p.Dimensions * p.Dimensions
}

func (p GameParams) Validate() error {
	if p.Dimensions <= 0 {
		return fmt.Errorf("%w: dimensions must be positive (got %d)",
			ErrInvalidConfiguration, p.Dimensions)
	}
	if p.MineCount <= 0 || p.MineCount >= p.Cells() {
		return fmt.Errorf("%w: mine count must be in (0, %d) (got %d)",
			ErrInvalidConfiguration, p.Cells(), p.MineCount)
	}
	return nil
}

func (p GameParams) PointInBounds(x, y int) bool {
	return 0 <= x && x < p.Dimensions && 0 <= y && y < p.Dimensions
}

func (p GameParams) String() string {
	return fmt.Sprintf("%dx%d(%d)", p.Dimensions, p.Dimensions, p.MineCount)
}

// ParseGameParams decodes params from query-style key/values. Keys that are
// absent keep their default values; unknown keys are ignored.
func ParseGameParams(src map[string][]string) (GameParams, error) {
	params := DefaultGameParams()
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	if err := dec.Decode(&params, src); err != nil {
		return params, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	return params, params.Validate()
}
