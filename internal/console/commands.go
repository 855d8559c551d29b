package console

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

// Maps known commands to number of arguments; -1 means any.
var commandNargs = map[string]int{
	"n": -1, // new game: n [name] [dimensions=N] [mine_count=M]
	"o": 2,  // reveal
	"f": 2,  // toggle flag
	"p": 0,  // print
	"t": 0,  // tick
	"q": 0,  // quit
}

var (
	errQuit           = errors.New("quit")
	errUnknownCommand = errors.New("unknown command")
)

// intent is one parsed command line. A line that failed to parse still
// travels to the dispatcher so the error is reported in order.
type intent struct {
	cmd  string
	args []string
	err  error
}

func parseIntent(line string) intent {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return intent{}
	}
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return intent{err: fmt.Errorf("%w %q", errUnknownCommand, parts[0])}
	}
	if nargs >= 0 && nargs != len(parts)-1 {
		return intent{err: fmt.Errorf("%s takes %d arguments", parts[0], nargs)}
	}
	return intent{cmd: parts[0], args: parts[1:]}
}

func parseXY(twoStrings []string) (x int, y int, err error) {
	if x, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = errors.New("first argument must be an int")
		return
	}
	if y, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = errors.New("second argument must be an int")
		return
	}
	return
}

// parseNewGame splits n's arguments into a player name and game params.
// Params not mentioned are taken from current.
func parseNewGame(args []string, current mines.GameParams) (name string, params mines.GameParams, err error) {
	query := url.Values{
		"dimensions": {strconv.Itoa(current.Dimensions)},
		"mine_count": {strconv.Itoa(current.MineCount)},
	}
	var names []string
	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		if !found {
			names = append(names, arg)
			continue
		}
		query.Set(key, value)
	}
	params, err = mines.ParseGameParams(query)
	return strings.Join(names, " "), params, err
}
