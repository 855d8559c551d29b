package mines

import (
	"fmt"
	"iter"
	"strings"
)

// Mine is the value of a cell that holds a mine.
const Mine = -1

type Point struct {
	X, Y int
}

func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.X, p.Y)
}

type CellStatus int8

const (
	Hidden CellStatus = iota
	Flagged
	Revealed
)

func (s CellStatus) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Flagged:
		return "flagged"
	case Revealed:
		return "revealed"
	default:
		return "!"
	}
}

// Value is [Mine] or the number of mined neighbours (0-8).
type Cell struct {
	Value  int
	Status CellStatus
}

func (c Cell) IsMine() bool {
	return c.Value == Mine
}

// Board is a square grid of cells stored row-major.
type Board struct {
	Dimensions int
	Cells      []Cell
	Mines      []Point
}

func newBoard(dimensions int) *Board {
	return &Board{
		Dimensions: dimensions,
		Cells:      make([]Cell, dimensions*dimensions),
	}
}

func (b *Board) InBounds(x, y int) bool {
	return 0 <= x && x < b.Dimensions && 0 <= y && y < b.Dimensions
}

func (b *Board) index(x, y int) int {
	return y*b.Dimensions + x
}

func (b *Board) point(i int) Point {
	return Point{X: i % b.Dimensions, Y: i / b.Dimensions}
}

// At panics if x, y is out of bounds.
func (b *Board) At(x, y int) *Cell {
	return &b.Cells[b.index(x, y)]
}

// Neighbors yields the in-bounds cells of the 8-neighbourhood of x, y.
func (b *Board) Neighbors(x, y int) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				xx, yy := x+dx, y+dy
				if !b.InBounds(xx, yy) {
					continue
				}
				if !yield(Point{X: xx, Y: yy}) {
					return
				}
			}
		}
	}
}

// placeMines marks every point as a mine, then counts mined neighbours.
// Points must be distinct and in bounds.
func (b *Board) placeMines(mines []Point) {
	b.Mines = append(b.Mines[:0], mines...)
	for _, p := range mines {
		b.At(p.X, p.Y).Value = Mine
	}
	for _, p := range mines {
		for n := range b.Neighbors(p.X, p.Y) {
			if c := b.At(n.X, n.Y); !c.IsMine() {
				c.Value++
			}
		}
	}
}

func (b *Board) String() string {
	var sb strings.Builder
	for y := range b.Dimensions {
		for x := range b.Dimensions {
			c := b.At(x, y)
			if c.IsMine() {
				fmt.Fprint(&sb, "* ")
			} else {
				fmt.Fprintf(&sb, "%d ", c.Value)
			}
		}
		fmt.Fprint(&sb, "\n")
	}
	return sb.String()
}
