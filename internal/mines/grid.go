package mines

import (
	"fmt"
	"strconv"
	"strings"
)

// CellView is what the player is shown for a cell.
type CellView int8

const (
	Covered     CellView = -2
	FlaggedCell CellView = -1
	// 0-8 for an open cell with the given number of mined neighbours
	DetonatedMine CellView = 65
	WrongFlag     CellView = 66
	DisclosedMine CellView = 67
)

func (v CellView) Revealed() bool {
	return 0 <= v && v <= 8
}

func (v CellView) String() string {
	switch {
	case v == Covered:
		return "#"
	case v == FlaggedCell:
		return "F"
	case v == 0:
		return "."
	case v.Revealed():
		return strconv.Itoa(int(v))
	case v == DetonatedMine:
		return "X"
	case v == WrongFlag:
		return "x"
	case v == DisclosedMine:
		return "*"
	default:
		return "!"
	}
}

type Grid []CellView

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			i := y*width + x
			if i >= len(g) {
				break
			}
			fmt.Fprint(&b, g[i].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}
