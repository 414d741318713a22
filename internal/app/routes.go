package app

import (
	"github.com/vancomm/minefield/internal/handlers"
)

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(
		a.log, a.store, a.jwt, a.ws, a.config.Game.Params(),
	)

	a.router.HandleFunc("POST /v1/game", game.NewGame)
	a.router.HandleFunc("GET /v1/game/{id}", game.Fetch)
	a.router.HandleFunc("POST /v1/game/{id}/tap", game.Tap)
	a.router.HandleFunc("POST /v1/game/{id}/mark", game.Mark)
	a.router.HandleFunc("POST /v1/game/{id}/forfeit", game.Forfeit)
	a.router.HandleFunc("GET /v1/game/{id}/connect", game.ConnectWS)
}
