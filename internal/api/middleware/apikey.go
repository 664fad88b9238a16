package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/follgramer/DiamantesProPlayers/internal/api/apierr"
)

// APIKeyHeader carries the shared key clients authenticate with
const APIKeyHeader = "X-Api-Key"

// APIKey creates middleware requiring a shared API key on every
// request. An empty configured key disables the check (local
// development and tests).
func APIKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key != "" {
				got := r.Header.Get(APIKeyHeader)
				if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
					apierr.WriteError(w, apierr.NewUnauthorizedError())
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
