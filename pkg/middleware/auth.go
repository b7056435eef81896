package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"roomgrid/pkg/logger"
)

const authenticatedKey contextKey = "authenticated"

// Authenticate marks requests carrying "Authorization: Bearer <token>" with
// the configured token as authenticated. It never rejects a request; handlers
// decide what an anonymous caller may see. An empty token authenticates nobody.
func Authenticate(token string, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented := BearerToken(r)
			if presented == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !TokenMatches(token, presented) {
				log.Warn("Invalid bearer token",
					"request_id", RequestIDFromContext(r.Context()),
					"path", r.URL.Path,
					"remote_addr", r.RemoteAddr,
				)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAuthenticated(r.Context())))
		})
	}
}

// TokenMatches compares a presented token against the configured one in
// constant time.
func TokenMatches(expected, presented string) bool {
	if expected == "" || presented == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(presented)) == 1
}

func WithAuthenticated(ctx context.Context) context.Context {
	return context.WithValue(ctx, authenticatedKey, true)
}

func IsAuthenticated(ctx context.Context) bool {
	ok, _ := ctx.Value(authenticatedKey).(bool)
	return ok
}

// BearerToken returns the token of an "Authorization: Bearer" header, or "".
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return ""
	}
	return strings.TrimSpace(token)
}
