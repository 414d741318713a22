package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minefield/internal/command"
	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/middleware"
	"github.com/vancomm/minefield/internal/mines"
	"github.com/vancomm/minefield/internal/session"
	"github.com/vancomm/minefield/internal/store"
)

var errUnauthorized = errors.New("a valid token for this session is required")

type GameHandler struct {
	log      logrus.FieldLogger
	store    *store.Store
	jwt      *config.JWT
	ws       *config.WebSocket
	defaults mines.Params
}

func NewGameHandler(
	log logrus.FieldLogger,
	s *store.Store,
	j *config.JWT,
	ws *config.WebSocket,
	defaults mines.Params,
) *GameHandler {
	return &GameHandler{
		log:      log,
		store:    s,
		jwt:      j,
		ws:       ws,
		defaults: defaults,
	}
}

type newGameResponse struct {
	Session json.RawMessage `json:"session"`
	Token   string          `json:"token"`
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	params, err := ParseNewGameDTO(r.URL.Query(), g.defaults)
	if err != nil {
		SendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}

	id, view, err := g.store.Create(params)
	if err != nil {
		SendErrorOrLog(w, g.log, statusCode(err), err)
		return
	}

	token, err := g.jwt.Sign(id)
	if err != nil {
		g.store.Delete(id)
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to sign session token")
		return
	}

	g.log.WithFields(logrus.Fields{
		"session": id,
		"params":  params.String(),
	}).Debug("created session")

	SendJSONOrLog(w, g.log, http.StatusCreated, newGameResponse{
		Session: view,
		Token:   token,
	})
}

// authorized reports whether the request carries a token for the session in
// its path.
func (g GameHandler) authorized(r *http.Request) (string, bool) {
	id := r.PathValue("id")
	claims, ok := middleware.SessionClaims(r.Context())
	return id, ok && claims.SessionId == id
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	id, ok := g.authorized(r)
	if !ok {
		SendErrorOrLog(w, g.log, http.StatusUnauthorized, errUnauthorized)
		return
	}
	view, err := g.store.Get(id)
	if err != nil {
		SendErrorOrLog(w, g.log, statusCode(err), err)
		return
	}
	if _, err := sendRaw(w, http.StatusOK, view); err != nil {
		g.log.WithError(err).Error("failed to send session")
	}
}

func (g GameHandler) Tap(w http.ResponseWriter, r *http.Request) {
	g.move(w, r, command.Tap)
}

func (g GameHandler) Mark(w http.ResponseWriter, r *http.Request) {
	g.move(w, r, command.Mark)
}

func (g GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	g.execute(w, r, command.Command{Kind: command.Forfeit})
}

func (g GameHandler) move(w http.ResponseWriter, r *http.Request, kind command.Kind) {
	pos, err := ParsePosition(r.URL.Query())
	if err != nil {
		SendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}
	g.execute(w, r, command.Command{Kind: kind, Row: pos.Row, Col: pos.Col})
}

func (g GameHandler) execute(w http.ResponseWriter, r *http.Request, c command.Command) {
	id, ok := g.authorized(r)
	if !ok {
		SendErrorOrLog(w, g.log, http.StatusUnauthorized, errUnauthorized)
		return
	}

	view, err := g.store.Update(id, func(s *session.Session) error {
		if err := s.Execute(c); err != nil {
			return err
		}
		if s.Over() {
			g.log.WithFields(logrus.Fields{
				"session": id,
				"status":  s.Status.String(),
			}).Info("game over")
		}
		return nil
	})
	if err != nil {
		SendErrorOrLog(w, g.log, statusCode(err), err)
		return
	}

	g.log.WithField("session", id).Debug(c.String())

	if _, err := sendRaw(w, http.StatusOK, view); err != nil {
		g.log.WithError(err).Error("failed to send session")
	}
}
