package mines

import (
	"fmt"
	"strconv"
	"strings"
)

// CellState is what the player sees in a cell.
type CellState int8

const (
	Hidden CellState = -2
	Marked CellState = -1
	Mine   CellState = 64
	/*
	 * Each item in the visible grid is one of the following values:
	 *
	 *  - -2 means the cell has not been opened yet.
	 *
	 *  - -1 means the player marked the cell as a mine.
	 *
	 *  - 0 to 8 mean the cell is open and has a surrounding mine
	 *    count; 0 is drawn as a blank.
	 *
	 *  - 64 means the cell is a revealed mine.
	 */
)

func (s CellState) Revealed() bool {
	return s >= 0
}

func (s CellState) String() string {
	switch s {
	case Hidden:
		return "."
	case Marked:
		return "*"
	case Mine:
		return "X"
	case 0:
		return "/"
	case 1, 2, 3, 4, 5, 6, 7, 8:
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

// Cell is the true content of a cell: a mine or the number of mined
// neighbours.
type Cell int8

const MineCell Cell = -1

func (c Cell) visible() CellState {
	if c == MineCell {
		return Mine
	}
	return CellState(c)
}

type Grid []CellState

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			fmt.Fprint(&b, g[y*width+x].String())
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}
