package mines

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// maxRegenerations bounds how often the first click may reshuffle the board.
const maxRegenerations = 100

// wrongFlagPenalty is added to the score per wrongly flagged cell.
const wrongFlagPenalty = 10

type GameState int8

const (
	NotStarted GameState = iota
	InProgress
	Won
	Lost
)

func (s GameState) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case InProgress:
		return "in progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

func (s GameState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Game owns a board and every counter of a session. It is not safe for
// concurrent use; callers deliver intents one at a time.
//
// Intents received after the game is won or lost are ignored.
type Game struct {
	params GameParams
	gen    Generator
	board  *Board

	state          GameState
	playerName     string
	remainingFlags int
	elapsedSeconds int
	revealed       int
	firstReveal    bool
	detonated      int

	wronglyFlagged map[Point]struct{}
	wrongAtEnd     int
}

// New validates params and starts an unnamed session.
func New(params GameParams, gen Generator) (*Game, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	g := &Game{params: params, gen: gen}
	if err := g.NewGame(""); err != nil {
		return nil, err
	}
	return g, nil
}

// NewGame discards the current board and starts a fresh session.
func (g *Game) NewGame(playerName string) error {
	board, err := g.gen.Generate(g.params, nil)
	if err != nil {
		return fmt.Errorf("unable to generate board: %w", err)
	}
	g.board = board
	g.state = NotStarted
	g.playerName = playerName
	g.remainingFlags = g.params.MineCount
	g.elapsedSeconds = 0
	g.revealed = 0
	g.firstReveal = true
	g.detonated = -1
	g.wronglyFlagged = make(map[Point]struct{})
	g.wrongAtEnd = 0

	Log.WithFields(logrus.Fields{
		"player": playerName,
		"params": g.params.String(),
	}).Info("new game")
	Log.Debugf("board\n%s", board)
	return nil
}

func (g *Game) Over() bool {
	return g.state == Won || g.state == Lost
}

func (g *Game) checkPoint(x, y int) error {
	if !g.board.InBounds(x, y) {
		Log.WithFields(logrus.Fields{"x": x, "y": y}).Warn("rejected intent")
		return fmt.Errorf("%w: %d:%d outside %dx%d",
			ErrInvalidCoordinate, x, y, g.params.Dimensions, g.params.Dimensions)
	}
	return nil
}

func (g *Game) start() {
	if g.state == NotStarted {
		g.state = InProgress
	}
}

// ToggleFlag flags a hidden cell or unflags a flagged one.
func (g *Game) ToggleFlag(x, y int) error {
	if err := g.checkPoint(x, y); err != nil {
		return err
	}
	if g.Over() {
		return nil
	}
	g.start()

	p := Point{X: x, Y: y}
	c := g.board.At(x, y)
	budget := c.toggleFlag()
	g.remainingFlags += budget
	switch {
	case budget < 0 && !c.IsMine():
		g.wronglyFlagged[p] = struct{}{}
	case budget > 0:
		delete(g.wronglyFlagged, p)
	}
	return nil
}

// Reveal opens a cell. The first reveal of a session never hits a mine.
func (g *Game) Reveal(x, y int) error {
	if err := g.checkPoint(x, y); err != nil {
		return err
	}
	if g.Over() {
		return nil
	}

	p := Point{X: x, Y: y}
	if g.firstReveal {
		if err := g.regenerate(p); err != nil {
			return err
		}
		g.firstReveal = false
	}
	g.start()

	c := g.board.At(x, y)
	if c.Status == Revealed {
		return nil
	}
	if c.IsMine() {
		g.unflag(p, c)
		g.lose(p)
		return nil
	}

	g.open(p, c)
	if c.Value == 0 {
		opened := g.board.cascade(p, g.afterOpen)
		Log.WithFields(logrus.Fields{"cell": p.String(), "opened": opened}).Debug("cascade")
	}
	g.checkWin()
	return nil
}

// regenerate reshuffles the board until p is free of mines. Flags already
// placed stay where they are.
func (g *Game) regenerate(p Point) error {
	for attempt := 0; g.board.At(p.X, p.Y).IsMine(); attempt++ {
		if attempt == maxRegenerations {
			return AssertionError{"mine in starting cell"}
		}
		board, err := g.gen.Generate(g.params, &p)
		if err != nil {
			return fmt.Errorf("unable to regenerate board: %w", err)
		}
		for i, c := range g.board.Cells {
			board.Cells[i].Status = c.Status
		}
		g.board = board
		Log.WithField("cell", p.String()).Debug("first click on a mine, board regenerated")
	}

	clear(g.wronglyFlagged)
	for i, c := range g.board.Cells {
		if c.Status == Flagged && !c.IsMine() {
			g.wronglyFlagged[g.board.point(i)] = struct{}{}
		}
	}
	return nil
}

func (g *Game) unflag(p Point, c *Cell) {
	if c.Status == Flagged {
		g.remainingFlags += c.toggleFlag()
		delete(g.wronglyFlagged, p)
	}
}

func (g *Game) open(p Point, c *Cell) {
	_, unflagged := c.open()
	g.afterOpen(p, unflagged)
}

func (g *Game) afterOpen(p Point, unflagged bool) {
	if unflagged {
		g.remainingFlags++
		delete(g.wronglyFlagged, p)
	}
	g.revealed++
}

func (g *Game) lose(p Point) {
	g.state = Lost
	g.wrongAtEnd = len(g.wronglyFlagged)

	g.detonated = g.board.index(p.X, p.Y)
	g.board.At(p.X, p.Y).Status = Revealed
	for _, m := range g.board.Mines {
		if c := g.board.At(m.X, m.Y); c.Status == Hidden {
			c.Status = Revealed
		}
	}

	Log.WithFields(logrus.Fields{
		"player":     g.playerName,
		"cell":       p.String(),
		"wrongFlags": g.wrongAtEnd,
		"seconds":    g.elapsedSeconds,
	}).Info("game lost")
}

func (g *Game) checkWin() {
	if g.revealed < g.params.Cells()-g.params.MineCount {
		return
	}
	g.state = Won
	g.wrongAtEnd = len(g.wronglyFlagged)

	Log.WithFields(logrus.Fields{
		"player":  g.playerName,
		"seconds": g.elapsedSeconds,
		"score":   g.Score(),
	}).Info("game won")
}

// Tick advances the clock by one second while the game is in progress.
func (g *Game) Tick() {
	if g.state == InProgress {
		g.elapsedSeconds++
	}
}

// Score is zero unless the game has been won.
func (g *Game) Score() int {
	if g.state != Won {
		return 0
	}
	return g.elapsedSeconds + wrongFlagPenalty*g.wrongAtEnd
}

func (g *Game) State() GameState { return g.state }

func (g *Game) PlayerName() string { return g.playerName }

func (g *Game) RemainingFlags() int { return g.remainingFlags }

func (g *Game) ElapsedSeconds() int { return g.elapsedSeconds }

func (g *Game) Params() GameParams { return g.params }

// WrongFlagCount is the number of flags currently standing on safe cells.
func (g *Game) WrongFlagCount() int { return len(g.wronglyFlagged) }

// CellView reports what the player sees at x, y.
func (g *Game) CellView(x, y int) (CellView, error) {
	if err := g.checkPoint(x, y); err != nil {
		return Covered, err
	}
	return g.view(g.board.index(x, y)), nil
}

func (g *Game) view(i int) CellView {
	c := g.board.Cells[i]
	switch c.Status {
	case Hidden:
		return Covered
	case Flagged:
		if _, wrong := g.wronglyFlagged[g.board.point(i)]; wrong && g.state == Lost {
			return WrongFlag
		}
		return FlaggedCell
	}
	if c.IsMine() {
		if i == g.detonated {
			return DetonatedMine
		}
		return DisclosedMine
	}
	return CellView(c.Value)
}

func (g *Game) Grid() Grid {
	grid := make(Grid, len(g.board.Cells))
	for i := range grid {
		grid[i] = g.view(i)
	}
	return grid
}

type Snapshot struct {
	Grid           Grid      `json:"grid"`
	Dimensions     int       `json:"dimensions"`
	MineCount      int       `json:"mine_count"`
	RemainingFlags int       `json:"remaining_flags"`
	ElapsedSeconds int       `json:"elapsed_seconds"`
	State          GameState `json:"state"`
	Score          int       `json:"score"`
	PlayerName     string    `json:"player_name"`
}

func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Grid:           g.Grid(),
		Dimensions:     g.params.Dimensions,
		MineCount:      g.params.MineCount,
		RemainingFlags: g.remainingFlags,
		ElapsedSeconds: g.elapsedSeconds,
		State:          g.state,
		Score:          g.Score(),
		PlayerName:     g.playerName,
	}
}

// Summary is the end-of-game report shown to the player.
type Summary struct {
	PlayerName string `json:"player_name"`
	Won        bool   `json:"won"`
	WrongFlags int    `json:"wrong_flags"`
	Seconds    int    `json:"seconds"`
	Score      int    `json:"score"`
}

func (g *Game) Summary() Summary {
	wrong := len(g.wronglyFlagged)
	if g.Over() {
		wrong = g.wrongAtEnd
	}
	return Summary{
		PlayerName: g.playerName,
		Won:        g.state == Won,
		WrongFlags: wrong,
		Seconds:    g.elapsedSeconds,
		Score:      g.Score(),
	}
}
