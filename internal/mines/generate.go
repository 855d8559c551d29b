package mines

import "fmt"

// Random is satisfied by *math/rand/v2.Rand.
type Random interface {
	IntN(n int) int
}

type Generator interface {
	// Generate returns a fresh board. When excluded is not nil that cell is
	// guaranteed to be free of mines.
	Generate(params GameParams, excluded *Point) (*Board, error)
}

type RandomGenerator struct {
	rnd Random
}

func NewRandomGenerator(rnd Random) *RandomGenerator {
	return &RandomGenerator{rnd: rnd}
}

// Generate places mines by rejection sampling: a uniformly drawn cell that is
// already mined or excluded is simply drawn again.
func (g *RandomGenerator) Generate(params GameParams, excluded *Point) (*Board, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	board := newBoard(params.Dimensions)
	cells := params.Cells()

	skip := -1
	if excluded != nil && board.InBounds(excluded.X, excluded.Y) {
		skip = board.index(excluded.X, excluded.Y)
	}

	taken := make([]bool, cells)
	mines := make([]Point, 0, params.MineCount)
	for len(mines) < params.MineCount {
		i := g.rnd.IntN(cells)
		if taken[i] || i == skip {
			continue
		}
		taken[i] = true
		mines = append(mines, board.point(i))
	}

	board.placeMines(mines)
	return board, nil
}

// FixedGenerator places mines at exactly the listed points.
type FixedGenerator []Point

func (f FixedGenerator) Generate(params GameParams, excluded *Point) (*Board, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(f) != params.MineCount {
		return nil, fmt.Errorf("%w: %d mine points for mine count %d",
			ErrInvalidConfiguration, len(f), params.MineCount)
	}
	board := newBoard(params.Dimensions)
	seen := make(map[Point]bool, len(f))
	for _, p := range f {
		if !board.InBounds(p.X, p.Y) {
			return nil, fmt.Errorf("%w: mine %s out of bounds", ErrInvalidConfiguration, p)
		}
		if seen[p] {
			return nil, fmt.Errorf("%w: duplicate mine %s", ErrInvalidConfiguration, p)
		}
		if excluded != nil && p == *excluded {
			return nil, fmt.Errorf("%w: mine %s placed on excluded cell", ErrInvalidConfiguration, p)
		}
		seen[p] = true
	}
	board.placeMines(f)
	return board, nil
}
