package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
)

const authPrefix = "Basic "

// RequireToken guards mutating endpoints with the configured shared secret.
// The Authorization header carries the secret after a "Basic " prefix; the
// comparison is constant-time. Reads stay unauthenticated by design.
func RequireToken(secret string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			token := strings.TrimPrefix(header, authPrefix)
			if subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
				slog.Warn("rejected upload with invalid token",
					"path", r.URL.Path,
					"ip", getClientIP(r),
				)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			next(w, r)
		}
	}
}
