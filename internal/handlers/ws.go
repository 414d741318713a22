package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vancomm/minefield/internal/command"
	"github.com/vancomm/minefield/internal/session"
)

// ConnectWS streams commands for one session. Every text message holds one
// or more command lines; the reply is the session state after the last one,
// or an error object for the first line that failed.
func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	id, ok := g.authorized(r)
	if !ok {
		SendErrorOrLog(w, g.log, http.StatusUnauthorized, errUnauthorized)
		return
	}
	if _, err := g.store.Get(id); err != nil {
		SendErrorOrLog(w, g.log, statusCode(err), err)
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Error("upgrade: ", err)
		return
	}
	defer c.Close()

	log := g.log.WithField("session", id)
	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("read: ", err)
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}

		var (
			view   []byte
			cmdErr error
		)
		for _, line := range command.Lines(string(message)) {
			log.Debug("\t> ", line)
			cmd, err := command.Parse(line)
			if err != nil {
				cmdErr = err
				break
			}
			view, err = g.store.Update(id, func(s *session.Session) error {
				return s.Execute(cmd)
			})
			if err != nil {
				cmdErr = err
				break
			}
		}
		if view == nil && cmdErr == nil {
			view, cmdErr = g.store.Get(id)
		}

		c.SetWriteDeadline(time.Now().Add(g.ws.WriteTimeout))
		if cmdErr != nil {
			err = c.WriteJSON(wrapError(cmdErr))
		} else {
			err = c.WriteMessage(websocket.TextMessage, view)
		}
		if err != nil {
			log.Error("write: ", err)
			break
		}
	}
}
