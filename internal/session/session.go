package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vancomm/minefield/internal/command"
	"github.com/vancomm/minefield/internal/mines"
)

type Status uint8

const (
	Playing Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

var ErrFinished = errors.New("game is already over")

type Session struct {
	ID        string
	Field     *mines.Minefield
	Status    Status
	StartedAt time.Time
	EndedAt   time.Time
}

func New(id string, params mines.Params, src mines.Source) (*Session, error) {
	field, err := mines.New(params.Height, params.Width, params.MineCount, src)
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:        id,
		Field:     field,
		Status:    Playing,
		StartedAt: time.Now().UTC(),
	}, nil
}

func (s *Session) Over() bool {
	return s.Status != Playing
}

// Execute applies c to the field and updates the session status.
func (s *Session) Execute(c command.Command) error {
	switch c.Kind {
	case command.Get:
		return nil
	case command.Forfeit:
		if s.Over() {
			return nil
		}
		s.Field.RevealMines()
		s.end(Lost)
		return nil
	case command.Tap, command.Mark:
	default:
		return command.ErrUnknownCommand
	}

	if s.Over() {
		return ErrFinished
	}

	if c.Kind == command.Mark {
		if err := s.Field.Mark(c.Row, c.Col); err != nil {
			return err
		}
	} else {
		outcome, err := s.Field.Tap(c.Row, c.Col)
		if err != nil {
			return err
		}
		if outcome == mines.Exploded {
			s.end(Lost)
			return nil
		}
	}

	if s.Field.IsSolved() {
		s.end(Won)
	}
	return nil
}

func (s *Session) end(status Status) {
	s.Status = status
	s.EndedAt = time.Now().UTC()
}

type sessionJSON struct {
	SessionId string     `json:"session_id"`
	Grid      mines.Grid `json:"grid"`
	Height    int        `json:"height"`
	Width     int        `json:"width"`
	MineCount int        `json:"mine_count"`
	Status    string     `json:"status"`
	Generated bool       `json:"generated"`
	StartedAt int64      `json:"started_at"`
	EndedAt   *int64     `json:"ended_at,omitempty"`
}

func (s *Session) MarshalJSON() ([]byte, error) {
	var endedAt *int64
	if !s.EndedAt.IsZero() {
		e := s.EndedAt.UnixMilli()
		endedAt = &e
	}
	return json.Marshal(sessionJSON{
		SessionId: s.ID,
		Grid:      s.Field.Grid(),
		Height:    s.Field.Height,
		Width:     s.Field.Width,
		MineCount: s.Field.MineCount,
		Status:    s.Status.String(),
		Generated: s.Field.Generated(),
		StartedAt: s.StartedAt.UnixMilli(),
		EndedAt:   endedAt,
	})
}

// Render draws the board with 1-based row and column labels:
//
//	 |123|
//	-|---|
//	1|...|
//	2|.*.|
//	3|...|
//	-|---|
func (s *Session) Render(w io.Writer) error {
	f := s.Field
	grid := f.Grid()

	var b strings.Builder
	rule := "-|" + strings.Repeat("-", f.Width) + "|\n"

	b.WriteString(" |")
	for x := 1; x <= f.Width; x++ {
		fmt.Fprint(&b, x%10)
	}
	b.WriteString("|\n")
	b.WriteString(rule)
	for y := range f.Height {
		fmt.Fprintf(&b, "%d|", (y+1)%10)
		for x := range f.Width {
			b.WriteString(grid[y*f.Width+x].String())
		}
		b.WriteString("|\n")
	}
	b.WriteString(rule)

	_, err := io.WriteString(w, b.String())
	return err
}
