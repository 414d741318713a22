package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/middleware"
	"github.com/vancomm/minefield/internal/mines"
	"github.com/vancomm/minefield/internal/store"
)

type App struct {
	log    *logrus.Logger
	config *config.Config
	router *http.ServeMux
	store  *store.Store
	jwt    *config.JWT
	ws     *config.WebSocket
}

// New wires the session server. src seeds the fields of new sessions; nil
// gives every field its own random generator.
func New(log *logrus.Logger, c *config.Config, src func() mines.Source) (*App, error) {
	j, err := config.NewJWT(c.Jwt)
	if err != nil {
		return nil, err
	}
	if err := c.Game.Params().Validate(); err != nil {
		return nil, err
	}

	a := &App{
		log:    log,
		config: c,
		router: http.NewServeMux(),
		store:  store.New(src),
		jwt:    j,
		ws:     config.NewWebSocket(),
	}
	a.loadRoutes()

	return a, nil
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Auth(a.log, a.jwt),
		middleware.Cors(),
		middleware.Logging(a.log),
	)
}

// Run serves until ctx is cancelled or the listener fails.
func (a *App) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    a.config.Addr,
		Handler: a.Handler(),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	a.log.Infof("ready to serve @ %s", a.config.Addr)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), time.Second*15)
		defer cancel()
		return server.Shutdown(sCtx)
	})

	return g.Wait()
}
