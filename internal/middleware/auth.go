package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minefield/internal/config"
)

type CtxKey int

const (
	CtxSessionClaims CtxKey = iota
)

// Auth parses a session token from the Authorization header ("Bearer ...")
// or, for websocket clients that cannot set headers, the token query
// parameter. Requests without a valid token pass through unauthenticated.
func Auth(log logrus.FieldLogger, j *config.JWT) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.URL.Query().Get("token")
			if header := r.Header.Get("Authorization"); header != "" {
				token, _ = strings.CutPrefix(header, "Bearer ")
			}
			if token == "" {
				h.ServeHTTP(w, r)
				return
			}
			claims, err := j.Parse(token)
			if err != nil {
				log.Debug("rejected session token: ", err)
				h.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), CtxSessionClaims, claims)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func SessionClaims(ctx context.Context) (*config.SessionClaims, bool) {
	claims, ok := ctx.Value(CtxSessionClaims).(*config.SessionClaims)
	return claims, ok
}
