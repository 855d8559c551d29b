package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

// Session drives one game from text commands and a clock. All intents are
// applied from a single goroutine.
type Session struct {
	game *mines.Game
	gen  mines.Generator
	out  io.Writer
	log  *logrus.Logger
	tick time.Duration

	announced bool
}

// New creates a session around game. A zero tick disables the clock.
func New(game *mines.Game, gen mines.Generator, out io.Writer, log *logrus.Logger, tick time.Duration) *Session {
	return &Session{game: game, gen: gen, out: out, log: log, tick: tick}
}

// Run reads commands from in until q, end of input or ctx is done.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	intents := make(chan intent)
	s.print()

	g, gCtx := errgroup.WithContext(ctx)

	// not part of the group: a blocked read must not hold up shutdown
	go s.readCommands(gCtx, in, intents)

	if s.tick > 0 {
		g.Go(func() error {
			return s.runClock(gCtx, intents)
		})
	}
	g.Go(func() error {
		return s.dispatch(gCtx, intents)
	})

	err := g.Wait()
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}

func (s *Session) readCommands(ctx context.Context, in io.Reader, intents chan<- intent) {
	send := func(i intent) bool {
		select {
		case intents <- i:
			return true
		case <-ctx.Done():
			return false
		}
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		i := parseIntent(scanner.Text())
		if i.cmd == "" && i.err == nil {
			continue
		}
		if !send(i) {
			return
		}
	}
	if err := scanner.Err(); err != nil {
		s.log.WithError(err).Error("unable to read commands")
	}
	send(intent{cmd: "q"})
}

func (s *Session) runClock(ctx context.Context, intents chan<- intent) error {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			select {
			case intents <- intent{cmd: "t"}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

func (s *Session) dispatch(ctx context.Context, intents <-chan intent) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case i := <-intents:
			err := s.execute(i)
			if errors.Is(err, errQuit) {
				return err
			}
			if err != nil {
				s.log.WithFields(logrus.Fields{
					"command": i.cmd,
					"args":    i.args,
				}).WithError(err).Warn("command failed")
				fmt.Fprintf(s.out, "error: %v\n", err)
			}
		}
	}
}

func (s *Session) execute(i intent) error {
	if i.err != nil {
		return i.err
	}
	switch i.cmd {
	case "q":
		return errQuit
	case "t":
		s.game.Tick()
		return nil
	case "p":
		s.print()
		return nil
	case "n":
		return s.newGame(i.args)
	case "o", "f":
		x, y, err := parseXY(i.args)
		if err != nil {
			return err
		}
		if i.cmd == "o" {
			err = s.game.Reveal(x, y)
		} else {
			err = s.game.ToggleFlag(x, y)
		}
		if err != nil {
			return err
		}
		s.print()
		return nil
	}
	return errUnknownCommand
}

func (s *Session) newGame(args []string) error {
	name, params, err := parseNewGame(args, s.game.Params())
	if err != nil {
		return err
	}
	if params != s.game.Params() {
		game, err := mines.New(params, s.gen)
		if err != nil {
			return err
		}
		s.game = game
	}
	if err := s.game.NewGame(name); err != nil {
		return err
	}
	s.announced = false
	fmt.Fprintf(s.out, "new game: %s %s\n", name, params)
	s.print()
	return nil
}

func (s *Session) print() {
	fmt.Fprint(s.out, s.game.Grid().ToString(s.game.Params().Dimensions))
	fmt.Fprintf(s.out, "Flags remaining: %d     Seconds elapsed: %d\n",
		s.game.RemainingFlags(), s.game.ElapsedSeconds())

	if !s.game.Over() || s.announced {
		return
	}
	s.announced = true

	summary := s.game.Summary()
	if summary.Won {
		fmt.Fprintf(s.out, "Game Won!\nCongrats %s, you won!\n", summary.PlayerName)
	} else {
		fmt.Fprintf(s.out, "Game Lost!\nBetter luck next time, %s\n", summary.PlayerName)
	}
	fmt.Fprintf(s.out, "Wrong flags: %d flag(s)\n", summary.WrongFlags)
	fmt.Fprintf(s.out, "Time taken: %d seconds\n", summary.Seconds)
	fmt.Fprintf(s.out, "Score: %d\n", summary.Score)
}
