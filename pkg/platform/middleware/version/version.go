// Package version provides middleware for API version extraction.
package version

import (
	"net/http"

	id "noid/pkg/domain"
	"noid/pkg/requestcontext"
)

// ExtractVersion creates middleware that records the API version of a Chi subrouter.
// When using Chi's r.Route("/v1", ...), the version is already determined by the route match.
//
// Usage:
//
//	r.Route("/v1", func(v1 chi.Router) {
//	    v1.Use(version.ExtractVersion(id.APIVersionV1))
//	    // ... routes
//	})
func ExtractVersion(version id.APIVersion) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-API-Version", version.String())
			ctx := requestcontext.WithAPIVersion(r.Context(), version)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
