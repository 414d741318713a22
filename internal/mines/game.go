package mines

import (
	"slices"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

type Phase uint8

const (
	// Unpopulated fields have no mines yet; they are placed on the
	// first tap.
	Unpopulated Phase = iota
	Populated
)

type Outcome uint8

const (
	Safe Outcome = iota + 1
	Exploded
)

func (o Outcome) String() string {
	switch o {
	case Safe:
		return "safe"
	case Exploded:
		return "exploded"
	default:
		return "unknown"
	}
}

// Minefield keeps the true layout of a field next to what the player has
// uncovered so far. It is not safe for concurrent use.
type Minefield struct {
	Params
	phase   Phase
	field   []Cell /* real layout, nil until the first tap */
	visible Grid   /* player knowledge */
	mines   []int
	src     Source
}

// New returns an untouched field. Mines are drawn from src on the first
// tap; a nil src uses a randomly seeded generator.
func New(height, width, mineCount int, src Source) (*Minefield, error) {
	params := Params{Height: height, Width: width, MineCount: mineCount}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		src = newRand()
	}
	visible := make(Grid, height*width)
	for i := range visible {
		visible[i] = Hidden
	}
	return &Minefield{
		Params:  params,
		phase:   Unpopulated,
		visible: visible,
		src:     src,
	}, nil
}

func (f *Minefield) Phase() Phase {
	return f.phase
}

func (f *Minefield) Generated() bool {
	return f.phase == Populated
}

// Grid returns a copy of the visible grid in row-major order.
func (f *Minefield) Grid() Grid {
	return slices.Clone(f.visible)
}

func (f *Minefield) At(row, col int) (CellState, error) {
	if err := f.checkBounds(row, col); err != nil {
		return Hidden, err
	}
	return f.visible[row*f.Width+col], nil
}

// Tap claims (row, col) as free. The first tap places the mines and is
// always safe.
func (f *Minefield) Tap(row, col int) (Outcome, error) {
	if err := f.checkBounds(row, col); err != nil {
		return 0, err
	}
	if f.phase == Unpopulated {
		f.generate(row, col)
	}

	start := row*f.Width + col
	if f.field[start] == MineCell {
		f.RevealMines()
		return Exploded, nil
	}

	queue := []int{start}
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		if f.visible[i].Revealed() {
			continue
		}
		f.visible[i] = f.field[i].visible()
		if f.field[i] != 0 {
			continue
		}
		f.neighbours(i/f.Width, i%f.Width, func(j int) {
			if !f.visible[j].Revealed() {
				queue = append(queue, j)
			}
		})
	}

	return Safe, nil
}

// Mark toggles a flag on a cell that is not revealed yet.
func (f *Minefield) Mark(row, col int) error {
	if err := f.checkBounds(row, col); err != nil {
		return err
	}
	i := row*f.Width + col
	if f.visible[i] == Hidden {
		f.visible[i] = Marked
	} else if f.visible[i] == Marked {
		f.visible[i] = Hidden
	}
	return nil
}

// RevealMines shows every mine location. It does nothing before the mines
// are placed.
func (f *Minefield) RevealMines() {
	for _, i := range f.mines {
		f.visible[i] = Mine
	}
}

// IsSolved reports whether the marks match the mines exactly or every
// safe cell is open. An untapped field is never solved.
func (f *Minefield) IsSolved() bool {
	if f.phase == Unpopulated {
		return false
	}
	return f.solvedByMarks() || f.solvedByReveal()
}

func (f *Minefield) solvedByMarks() bool {
	for i, c := range f.field {
		if (f.visible[i] == Marked) != (c == MineCell) {
			return false
		}
	}
	return true
}

func (f *Minefield) solvedByReveal() bool {
	for i, c := range f.field {
		if c != MineCell && !f.visible[i].Revealed() {
			return false
		}
	}
	return true
}
