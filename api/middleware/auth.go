package middleware

import (
	"net/http"
	"strings"

	"github.com/sayeedajmal/saudimart-core/api/responses"
	pkgAuth "github.com/sayeedajmal/saudimart-core/pkg/auth"
	"github.com/sayeedajmal/saudimart-core/pkg/config"
	pkgerrors "github.com/sayeedajmal/saudimart-core/pkg/errors"
	"github.com/sayeedajmal/saudimart-core/pkg/logger"
)

// Auth validates a bearer token and seeds the request context with the caller
// identity plus the raw credential, which the backend client forwards on every
// mutating call. Token minting and refresh live with the external session
// collaborator, never here.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			ctx := pkgAuth.WithIdentity(r.Context(), pkgAuth.Identity{
				UserID: claims.UserID,
				Role:   claims.Role,
			})
			ctx = pkgAuth.WithBearer(ctx, token)

			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"user_id":    claims.UserID,
					"actor_role": claims.Role.String(),
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
