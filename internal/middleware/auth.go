package middleware

import (
	"context"
	"net/http"
	"strings"

	"bugtrack/internal/config"
	"bugtrack/internal/utils"

	"github.com/rs/zerolog"
)

type ctxKey string

const (
	CtxUserID ctxKey = "uid"
	CtxEmail  ctxKey = "email"
	CtxLevel  ctxKey = "lvl"
)

// WithAuth extracts a bearer token when present and stores the claims in
// the request context. It never rejects: RequireAuth decides per route.
func WithAuth(log zerolog.Logger, cfg config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if !strings.HasPrefix(h, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := utils.ParseJWT(cfg.JWTSecret, strings.TrimPrefix(h, "Bearer "))
			if err != nil {
				log.Debug().Err(err).Msg("rejected bearer token")
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), CtxUserID, claims.UserID)
			ctx = context.WithValue(ctx, CtxEmail, claims.Subject)
			ctx = context.WithValue(ctx, CtxLevel, claims.AuthorityLevel)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
