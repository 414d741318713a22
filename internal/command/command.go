package command

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"
)

type Kind uint8

const (
	Get Kind = iota + 1
	Tap
	Mark
	Forfeit
)

func (k Kind) String() string {
	switch k {
	case Get:
		return "get"
	case Tap:
		return "tap"
	case Mark:
		return "mark"
	case Forfeit:
		return "forfeit"
	default:
		return "unknown"
	}
}

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrArgCount       = errors.New("invalid number of arguments")
	ErrBadNumber      = errors.New("coordinates must be integers")
	ErrBadCoordinate  = errors.New("coordinates start at 1")
)

// Command is a parsed player move. Row and Col are 0-based.
type Command struct {
	Kind     Kind
	Row, Col int
}

func (c Command) String() string {
	switch c.Kind {
	case Tap, Mark:
		return fmt.Sprintf("%s %d:%d", c.Kind, c.Row, c.Col)
	default:
		return c.Kind.String()
	}
}

// Maps short commands to number of arguments
var commandNargs = map[string]int{
	"g": 0,
	"o": 2,
	"f": 2,
	"r": 0,
}

// Parse reads one command. Coordinates are 1-based, column first:
//
//	3 1 free    tap column 3, row 1
//	3 1 mine    mark column 3, row 1
//	o 3 1       same as "3 1 free"
//	f 3 1       same as "3 1 mine"
//	g           fetch the current state
//	r           resign
func Parse(line string) (Command, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return Command{}, ErrUnknownCommand
	}

	if nargs, ok := commandNargs[parts[0]]; ok {
		if nargs != len(parts)-1 {
			return Command{}, ErrArgCount
		}
		switch parts[0] {
		case "g":
			return Command{Kind: Get}, nil
		case "r":
			return Command{Kind: Forfeit}, nil
		case "o":
			return withXY(Tap, parts[1:])
		case "f":
			return withXY(Mark, parts[1:])
		}
	}

	if len(parts) != 3 {
		if _, err := strconv.Atoi(parts[0]); err == nil {
			return Command{}, ErrArgCount
		}
		return Command{}, ErrUnknownCommand
	}
	switch strings.ToLower(parts[2]) {
	case "free":
		return withXY(Tap, parts[:2])
	case "mine":
		return withXY(Mark, parts[:2])
	default:
		return Command{}, ErrUnknownCommand
	}
}

func withXY(kind Kind, twoStrings []string) (Command, error) {
	x, err := strconv.Atoi(twoStrings[0])
	if err != nil {
		return Command{}, ErrBadNumber
	}
	y, err := strconv.Atoi(twoStrings[1])
	if err != nil {
		return Command{}, ErrBadNumber
	}
	if x < 1 || y < 1 {
		return Command{}, ErrBadCoordinate
	}
	return Command{Kind: kind, Row: y - 1, Col: x - 1}, nil
}

// Lines yields the non-blank lines of a multi-command message.
func Lines(text string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		for _, piece := range byPiece(text, "\n") {
			piece = strings.TrimSpace(piece)
			if piece == "" {
				continue
			}
			if !yield(i, piece) {
				return
			}
			i++
		}
	}
}

func byPiece(s string, sep string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, sep)
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}
