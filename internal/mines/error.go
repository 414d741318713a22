package mines

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfiguration = errors.New("invalid minefield configuration")
	ErrOutOfBounds          = errors.New("cell is out of bounds")
)

type ConfigError struct {
	Params
}

func (e *ConfigError) Error() string {
	switch {
	case e.Height <= 0:
		return fmt.Sprintf("cannot create a field with height %d", e.Height)
	case e.Width <= 0:
		return fmt.Sprintf("cannot create a field with width %d", e.Width)
	case e.MineCount < 0:
		return fmt.Sprintf("cannot create a field with %d mines", e.MineCount)
	default:
		return fmt.Sprintf(
			"not enough space for %d mines on a %dx%d field (at least one cell must stay free)",
			e.MineCount, e.Height, e.Width,
		)
	}
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

type OutOfBoundsError struct {
	Row, Col      int
	Height, Width int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf(
		"cell (%d, %d) is outside of the %dx%d field",
		e.Row, e.Col, e.Height, e.Width,
	)
}

func (e *OutOfBoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}
