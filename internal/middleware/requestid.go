package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"taskboard/internal/httputil"
)

// RequestID assigns each request an id, echoes it in X-Request-ID and
// stores it in the context so log lines from one request correlate.
// An id supplied by the client is kept.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-Request-ID")
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", id)
			next.ServeHTTP(w, httputil.WithRequestID(r, id))
		})
	}
}
