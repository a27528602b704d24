package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"taskboard/internal/auth"
	"taskboard/internal/domain/models"
	"taskboard/internal/domain/repositories"
	"taskboard/internal/httputil"
)

const bearerPrefix = "Bearer "

// Authenticate verifies the bearer token on every non-public request
// and attaches the resolved principal to the request context. Every
// failure surfaces as a bare 401; the distinction between a malformed,
// expired, or orphaned token is only logged.
func Authenticate(tokens *auth.TokenService, users repositories.UserRepository, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublic(r) {
				next.ServeHTTP(w, r)
				return
			}

			tokenString, ok := bearerToken(r)
			if !ok {
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := tokens.Verify(tokenString)
			if err != nil {
				logger.Debug("token rejected",
					"reason", err.Error(),
					"path", r.URL.Path,
					"request_id", httputil.GetRequestID(r),
				)
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			// Re-resolve the stored user on every request: the token
			// outlives account deletion, the account does not.
			user, err := users.GetByEmail(r.Context(), claims.Email)
			if err != nil {
				logger.Debug("token principal not resolvable",
					"email", claims.Email,
					"error", err.Error(),
					"request_id", httputil.GetRequestID(r),
				)
				httputil.RespondError(w, http.StatusUnauthorized, "unknown principal")
				return
			}

			principal := models.Principal{ID: user.ID, Email: user.Email}
			next.ServeHTTP(w, httputil.WithPrincipal(r, principal))
		})
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <t>"
// header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	return token, token != ""
}

// isPublic reports whether the route is reachable without a token.
func isPublic(r *http.Request) bool {
	if r.Method == http.MethodOptions {
		return true
	}
	if strings.HasPrefix(r.URL.Path, "/auth/") {
		return true
	}
	return r.URL.Path == "/health"
}
