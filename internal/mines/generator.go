package mines

import "fmt"

type Params struct {
	Height, Width, MineCount int
}

func (p Params) Unpack() (h int, w int, mc int) {
	return p.Height, p.Width, p.MineCount
}

func (p Params) String() string {
	return fmt.Sprintf("%dx%d(%d)", p.Height, p.Width, p.MineCount)
}

// Validate reports a [ConfigError] unless the field has at least one cell
// and leaves at least one cell free of mines.
func (p Params) Validate() error {
	if p.Height <= 0 || p.Width <= 0 || p.MineCount < 0 ||
		p.MineCount >= p.Height*p.Width {
		return &ConfigError{p}
	}
	return nil
}

func (p Params) Contains(row, col int) bool {
	return 0 <= row && row < p.Height && 0 <= col && col < p.Width
}

func (p Params) checkBounds(row, col int) error {
	if !p.Contains(row, col) {
		return &OutOfBoundsError{
			Row: row, Col: col, Height: p.Height, Width: p.Width,
		}
	}
	return nil
}
