package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// unmatchedRoute labels requests a chi router matched no route for, so
// arbitrary paths do not create new series.
const unmatchedRoute = "unmatched"

// routePattern returns the matched chi route pattern. Outside a chi router
// it falls back to the request path.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
		return unmatchedRoute
	}
	if r.URL.Path == "" {
		return "/"
	}
	return r.URL.Path
}
