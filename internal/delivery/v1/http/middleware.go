package http

import (
	"net/http"

	"github.com/DRSN-tech/pos-terminal/internal/domain"
	"github.com/DRSN-tech/pos-terminal/internal/infrastructure/auth"
	"github.com/DRSN-tech/pos-terminal/pkg/logger"
)

// IdentityDecoder превращает bearer-токен в личность кассира.
type IdentityDecoder interface {
	Decode(token string) (domain.Identity, error)
}

// AuthMiddleware требует bearer-токен. Исходный токен сохраняется в контексте,
// чтобы запросы к бэкенду шли от имени кассира.
func AuthMiddleware(decoder IdentityDecoder, logger logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.BearerToken(r.Header.Get("Authorization"))
			if err != nil {
				logger.Debugf("%s %s: %v", r.Method, r.URL.Path, err)
				WriteError(w, err)
				return
			}

			id, err := decoder.Decode(token)
			if err != nil {
				logger.Warnf("%s %s: %v", r.Method, r.URL.Path, err)
				WriteError(w, err)
				return
			}

			ctx := auth.WithToken(r.Context(), token)
			ctx = auth.WithIdentity(ctx, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
