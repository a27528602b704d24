package handler

import (
	"net/http"

	"taskboard/internal/authz"
	"taskboard/internal/domain/models"
	"taskboard/internal/httputil"
)

// Guard wires the ownership resolver in front of protected handlers.
type Guard struct {
	resolver *authz.Resolver
}

func NewGuard(resolver *authz.Resolver) *Guard {
	return &Guard{resolver: resolver}
}

// Own runs the ownership check described by the binding before next.
// The resolver only decides; responding and dispatching happen here.
func (g *Guard) Own(b authz.Binding, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var principal *models.Principal
		if p, ok := httputil.GetPrincipal(r); ok {
			principal = &p
		}

		if err := g.resolver.Resolve(r.Context(), b, r, principal); err != nil {
			handleError(w, err)
			return
		}
		next(w, r)
	}
}
