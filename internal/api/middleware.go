// Package api implements the burnote HTTP API using chi.
package api

import (
	"context"
	"net/http"

	"github.com/starford/burnote/internal/auth"
	"github.com/starford/burnote/internal/metrics"
)

type ctxKey struct{}

// AuthMiddleware resolves the Authorization header to a tenant and stores it
// in the request context. Missing or unknown credentials get a 401 that does
// not say which.
func AuthMiddleware(resolver *auth.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tenant, err := resolver.Resolve(r.Header.Get("Authorization"))
			if err != nil {
				metrics.AuthAttempts.WithLabelValues(metrics.ResultDenied).Inc()
				writeError(w, "auth", err)
				return
			}
			metrics.AuthAttempts.WithLabelValues(metrics.ResultOK).Inc()
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, tenant)))
		})
	}
}

// tenantFrom returns the tenant stored by AuthMiddleware.
func tenantFrom(ctx context.Context) auth.Tenant {
	t, _ := ctx.Value(ctxKey{}).(auth.Tenant)
	return t
}

// CORS sets permissive cross-origin headers on every response and answers
// preflight OPTIONS requests with an empty body.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS, DELETE")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// NotFound answers unknown routes and unsupported methods.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, errorBody("not found"))
}
