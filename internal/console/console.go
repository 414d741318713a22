package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minefield/internal/command"
	"github.com/vancomm/minefield/internal/mines"
	"github.com/vancomm/minefield/internal/session"
)

const (
	askMines  = "How many mines do you want on the field?"
	askMove   = "Set/unset mines marks or claim a cell as free:"
	wonText   = "Congratulations! You found all the mines!"
	lostText  = "You stepped on a mine and failed!"
	notNumber = "Please enter a whole number."
)

// Game runs a minefield session over line-based text input.
type Game struct {
	in  *bufio.Scanner
	out io.Writer
	log logrus.FieldLogger
	src mines.Source
}

func New(in io.Reader, out io.Writer, log logrus.FieldLogger, src mines.Source) *Game {
	return &Game{
		in:  bufio.NewScanner(in),
		out: out,
		log: log,
		src: src,
	}
}

func (g *Game) readLine() (string, error) {
	if !g.in.Scan() {
		if err := g.in.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("input closed: %w", io.ErrUnexpectedEOF)
	}
	return strings.TrimSpace(g.in.Text()), nil
}

// Setup creates the session. When ask is set the player picks the mine
// count, and is asked again until the field can hold it.
func (g *Game) Setup(params mines.Params, ask bool) (*session.Session, error) {
	for {
		if ask {
			fmt.Fprintln(g.out, askMines)
			line, err := g.readLine()
			if err != nil {
				return nil, err
			}
			n, err := strconv.Atoi(line)
			if err != nil {
				fmt.Fprintln(g.out, notNumber)
				continue
			}
			params.MineCount = n
		}

		s, err := session.New("console", params, g.src)
		if err == nil {
			return s, nil
		}
		if !ask || !errors.Is(err, mines.ErrInvalidConfiguration) {
			return nil, err
		}
		fmt.Fprintln(g.out, err)
	}
}

// Play prompts for moves until the session is over. Bad input is reported
// and the player is asked again.
func (g *Game) Play(s *session.Session) error {
	for !s.Over() {
		if err := s.Render(g.out); err != nil {
			return err
		}
		fmt.Fprintln(g.out, askMove)

		line, err := g.readLine()
		if err != nil {
			return err
		}
		c, err := command.Parse(line)
		if err != nil {
			fmt.Fprintln(g.out, err)
			continue
		}
		if err := s.Execute(c); err != nil {
			fmt.Fprintln(g.out, err)
			continue
		}
		g.log.WithField("status", s.Status.String()).Debug(c.String())
	}

	if err := s.Render(g.out); err != nil {
		return err
	}
	if s.Status == session.Won {
		fmt.Fprintln(g.out, wonText)
	} else {
		fmt.Fprintln(g.out, lostText)
	}
	return nil
}
