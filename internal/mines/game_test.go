package mines

import (
	"encoding/json"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type GameSuite struct {
	suite.Suite
	game *Game
}

func TestGameSuite(t *testing.T) {
	suite.Run(t, new(GameSuite))
}

// newFixedGame builds a game on a board with mines at exactly the given points.
func (s *GameSuite) newFixedGame(dimensions int, mines ...Point) *Game {
	params := GameParams{Dimensions: dimensions, MineCount: len(mines)}
	g, err := New(params, FixedGenerator(mines))
	s.Require().NoError(err)
	s.Require().NoError(g.NewGame("tester"))
	return g
}

func (s *GameSuite) view(x, y int) CellView {
	v, err := s.game.CellView(x, y)
	s.Require().NoError(err)
	return v
}

func (s *GameSuite) SetupTest() {
	// 4x4, one mine in the corner:
	// 0 0 0 0
	// 0 0 0 0
	// 0 0 1 1
	// 0 0 1 *
	s.game = s.newFixedGame(4, Point{3, 3})
}

func (s *GameSuite) TestNewGameResets() {
	s.Equal(NotStarted, s.game.State())
	s.Equal("tester", s.game.PlayerName())
	s.Equal(1, s.game.RemainingFlags())
	s.Equal(0, s.game.ElapsedSeconds())
	s.Equal(0, s.game.Score())
	for _, v := range s.game.Grid() {
		s.Equal(Covered, v)
	}
}

func (s *GameSuite) TestCascadeWinsQuadrant() {
	s.Require().NoError(s.game.Reveal(0, 0))

	s.Equal(Won, s.game.State())
	s.Equal(CellView(0), s.view(0, 0))
	s.Equal(CellView(1), s.view(2, 2))
	s.Equal(Covered, s.view(3, 3))
	s.Equal(s.game.ElapsedSeconds(), s.game.Score())
}

func (s *GameSuite) TestScoreCountsElapsedSeconds() {
	// a flag starts the clock, the cascade then clears the wrong flag
	s.Require().NoError(s.game.ToggleFlag(1, 1))
	s.Equal(InProgress, s.game.State())
	for range 3 {
		s.game.Tick()
	}
	s.Require().NoError(s.game.Reveal(0, 0))

	s.Equal(Won, s.game.State())
	s.Equal(1, s.game.RemainingFlags())
	s.Equal(0, s.game.WrongFlagCount())
	s.Equal(3, s.game.Score())
	s.Equal(Summary{PlayerName: "tester", Won: true, Seconds: 3, Score: 3}, s.game.Summary())
}

func (s *GameSuite) TestFlaggedMineDoesNotBlockWin() {
	s.Require().NoError(s.game.ToggleFlag(3, 3))
	s.Equal(0, s.game.RemainingFlags())
	s.Equal(0, s.game.WrongFlagCount())
	s.game.Tick()

	for y := range 4 {
		for x := range 4 {
			if x == 3 && y == 3 {
				continue
			}
			s.Require().NoError(s.game.Reveal(x, y))
		}
	}

	s.Equal(Won, s.game.State())
	s.Equal(FlaggedCell, s.view(3, 3))
	s.Equal(1, s.game.Score())
	s.Equal(s.game.ElapsedSeconds(), s.game.Score())
}

func (s *GameSuite) TestLossDisclosesMinesAndCrossesWrongFlags() {
	// 1 1 1 0 0
	// 1 * 1 0 0
	// 1 1 2 1 1
	// 0 0 1 * 2
	// 0 0 1 2 *
	s.game = s.newFixedGame(5, Point{1, 1}, Point{3, 3}, Point{4, 4})

	s.Require().NoError(s.game.Reveal(0, 0))
	s.Equal(CellView(1), s.view(0, 0))
	s.Require().NoError(s.game.ToggleFlag(2, 0))
	s.Require().NoError(s.game.ToggleFlag(4, 4))
	s.game.Tick()

	s.Require().NoError(s.game.Reveal(3, 3))

	s.Equal(Lost, s.game.State())
	s.Equal(DetonatedMine, s.view(3, 3))
	s.Equal(DisclosedMine, s.view(1, 1))
	s.Equal(FlaggedCell, s.view(4, 4))
	s.Equal(WrongFlag, s.view(2, 0))
	s.Equal(Covered, s.view(4, 0))
	s.Equal(0, s.game.Score())

	summary := s.game.Summary()
	s.False(summary.Won)
	s.Equal(1, summary.WrongFlags)
	s.Equal(1, summary.Seconds)
	s.Equal(0, summary.Score)

	// the flag stays a flag underneath the cross
	s.Equal(Flagged, s.game.board.At(2, 0).Status)
	s.Equal(Revealed, s.game.board.At(1, 1).Status)
}

func (s *GameSuite) TestRevealFlaggedMineDetonates() {
	s.game = s.newFixedGame(5, Point{1, 1}, Point{3, 3}, Point{4, 4})
	s.Require().NoError(s.game.Reveal(0, 0))
	s.Require().NoError(s.game.ToggleFlag(3, 3))
	s.Equal(2, s.game.RemainingFlags())

	s.Require().NoError(s.game.Reveal(3, 3))

	s.Equal(Lost, s.game.State())
	s.Equal(DetonatedMine, s.view(3, 3))
	s.Equal(3, s.game.RemainingFlags())
}

func (s *GameSuite) TestToggleFlagTwiceIsIdentity() {
	before := s.game.RemainingFlags()

	s.Require().NoError(s.game.ToggleFlag(1, 2))
	s.Equal(FlaggedCell, s.view(1, 2))
	s.Equal(before-1, s.game.RemainingFlags())
	s.Equal(1, s.game.WrongFlagCount())

	s.Require().NoError(s.game.ToggleFlag(1, 2))
	s.Equal(Covered, s.view(1, 2))
	s.Equal(before, s.game.RemainingFlags())
	s.Equal(0, s.game.WrongFlagCount())
}

func (s *GameSuite) TestFlagBudgetIsNotClamped() {
	for _, p := range []Point{{0, 0}, {1, 0}, {2, 0}} {
		s.Require().NoError(s.game.ToggleFlag(p.X, p.Y))
	}
	s.Equal(-2, s.game.RemainingFlags())
	s.Equal(3, s.game.WrongFlagCount())
}

func (s *GameSuite) TestRevealFlaggedSafeCellRefundsFlag() {
	s.game = s.newFixedGame(5, Point{1, 1}, Point{3, 3}, Point{4, 4})
	s.Require().NoError(s.game.Reveal(0, 0))
	s.Require().NoError(s.game.ToggleFlag(2, 1))
	s.Equal(2, s.game.RemainingFlags())
	s.Equal(1, s.game.WrongFlagCount())

	s.Require().NoError(s.game.Reveal(2, 1))

	s.Equal(CellView(1), s.view(2, 1))
	s.Equal(3, s.game.RemainingFlags())
	s.Equal(0, s.game.WrongFlagCount())
}

func (s *GameSuite) TestFlagOnRevealedCellIsIgnored() {
	s.game = s.newFixedGame(5, Point{1, 1}, Point{3, 3}, Point{4, 4})
	s.Require().NoError(s.game.Reveal(0, 0))
	s.Require().NoError(s.game.ToggleFlag(0, 0))

	s.Equal(CellView(1), s.view(0, 0))
	s.Equal(3, s.game.RemainingFlags())
}

func (s *GameSuite) TestTickOnlyWhileInProgress() {
	s.game.Tick()
	s.Equal(0, s.game.ElapsedSeconds())

	s.Require().NoError(s.game.ToggleFlag(0, 1))
	s.game.Tick()
	s.game.Tick()
	s.Equal(2, s.game.ElapsedSeconds())

	s.Require().NoError(s.game.Reveal(0, 0))
	s.Equal(Won, s.game.State())
	s.game.Tick()
	s.Equal(2, s.game.ElapsedSeconds())
}

func (s *GameSuite) TestIntentsAfterGameOverAreIgnored() {
	s.Require().NoError(s.game.Reveal(0, 0))
	s.Require().Equal(Won, s.game.State())
	grid := s.game.Grid()

	s.NoError(s.game.ToggleFlag(3, 3))
	s.NoError(s.game.Reveal(3, 3))

	s.True(s.game.Over())
	s.Equal(Won, s.game.State())
	s.Equal(grid, s.game.Grid())
	s.Equal(1, s.game.RemainingFlags())
}

func (s *GameSuite) TestInvalidCoordinates() {
	for _, p := range []Point{{-1, 0}, {0, -1}, {4, 0}, {0, 4}, {10, 10}} {
		s.ErrorIs(s.game.Reveal(p.X, p.Y), ErrInvalidCoordinate)
		s.ErrorIs(s.game.ToggleFlag(p.X, p.Y), ErrInvalidCoordinate)
		_, err := s.game.CellView(p.X, p.Y)
		s.ErrorIs(err, ErrInvalidCoordinate)
	}
	s.Equal(NotStarted, s.game.State())
}

func (s *GameSuite) TestNewGameAfterLoss() {
	s.game = s.newFixedGame(5, Point{1, 1}, Point{3, 3}, Point{4, 4})
	s.Require().NoError(s.game.Reveal(0, 0))
	s.Require().NoError(s.game.Reveal(1, 1))
	s.Require().Equal(Lost, s.game.State())

	s.Require().NoError(s.game.NewGame("again"))

	s.Equal(NotStarted, s.game.State())
	s.Equal("again", s.game.PlayerName())
	s.Equal(3, s.game.RemainingFlags())
	s.Equal(Covered, s.view(1, 1))
	s.Equal(0, s.game.Summary().WrongFlags)
}

func (s *GameSuite) TestSnapshotJSON() {
	s.Require().NoError(s.game.Reveal(0, 0))
	b, err := json.Marshal(s.game.Snapshot())
	s.Require().NoError(err)

	var decoded map[string]any
	s.Require().NoError(json.Unmarshal(b, &decoded))
	s.Equal("won", decoded["state"])
	s.Equal(float64(4), decoded["dimensions"])
	s.Len(decoded["grid"], 16)
}

func TestNewRejectsInvalidConfiguration(t *testing.T) {
	gen := NewRandomGenerator(newQueuedRandom())
	for _, params := range []GameParams{
		{Dimensions: 10, MineCount: 0},
		{Dimensions: 10, MineCount: 100},
		{Dimensions: 3, MineCount: 12},
	} {
		_, err := New(params, gen)
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	}
}

func TestFirstRevealIsNeverAMine(t *testing.T) {
	t.Parallel()

	params := GameParams{Dimensions: 5, MineCount: 20}
	r := rand.New(rand.NewPCG(5, 6))
	g, err := New(params, NewRandomGenerator(r))
	require.NoError(t, err)

	for seed := range 200 {
		require.NoError(t, g.NewGame(""))
		x, y := seed%5, (seed/5)%5

		require.NoError(t, g.Reveal(x, y))

		v, err := g.CellView(x, y)
		require.NoError(t, err)
		assert.True(t, v.Revealed(), "first reveal at %d:%d shows %v", x, y, v)
		assert.NotEqual(t, Lost, g.State())
	}
}

func TestFirstRevealRegeneratesBoard(t *testing.T) {
	// the initial board puts its only mine at 0:0; the retry skips 0:0 and
	// lands on 2:2
	params := GameParams{Dimensions: 3, MineCount: 1}
	g, err := New(params, NewRandomGenerator(newQueuedRandom(0, 0, 8)))
	require.NoError(t, err)
	require.True(t, g.board.At(0, 0).IsMine())

	require.NoError(t, g.Reveal(0, 0))

	assert.Equal(t, []Point{{2, 2}}, g.board.Mines)
	assert.Equal(t, Won, g.State())
	v, _ := g.CellView(0, 0)
	assert.Equal(t, CellView(0), v)
}

func TestFirstRevealKeepsFlags(t *testing.T) {
	params := GameParams{Dimensions: 3, MineCount: 1}
	g, err := New(params, NewRandomGenerator(newQueuedRandom(0, 0, 8)))
	require.NoError(t, err)

	// flags placed before the first reveal survive the reshuffle
	require.NoError(t, g.ToggleFlag(2, 2))
	assert.Equal(t, 1, g.WrongFlagCount())

	require.NoError(t, g.Reveal(0, 0))

	assert.Equal(t, 0, g.WrongFlagCount())
	assert.Equal(t, 0, g.RemainingFlags())
	assert.Equal(t, Won, g.State())
	v, _ := g.CellView(2, 2)
	assert.Equal(t, FlaggedCell, v)
}

func TestFirstRevealOnFixedMineFails(t *testing.T) {
	params := GameParams{Dimensions: 3, MineCount: 1}
	g, err := New(params, FixedGenerator{{1, 1}})
	require.NoError(t, err)

	err = g.Reveal(1, 1)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	assert.Equal(t, NotStarted, g.State())

	v, err := g.CellView(1, 1)
	require.NoError(t, err)
	assert.Equal(t, Covered, v)
}

func TestFirstRevealGivesUpOnStubbornGenerator(t *testing.T) {
	params := GameParams{Dimensions: 3, MineCount: 1}
	g, err := New(params, stubbornGenerator{})
	require.NoError(t, err)

	err = g.Reveal(0, 0)
	var ae AssertionError
	assert.ErrorAs(t, err, &ae)
}

// stubbornGenerator ignores the excluded cell.
type stubbornGenerator struct{}

func (stubbornGenerator) Generate(params GameParams, _ *Point) (*Board, error) {
	return FixedGenerator{{0, 0}}.Generate(params, nil)
}
