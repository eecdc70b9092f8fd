package middleware

import (
	"net/http"
	"strings"
)

const (
	corsAllowMethods = "GET, POST, PUT, OPTIONS"
	corsAllowHeaders = "Content-Type, Accept, " + ClientIDHeader
	corsMaxAge       = "86400"
)

// CORS adds CORS headers for allowed origins and answers OPTIONS preflight
// requests with 204. "*" in allowedOrigins admits any origin.
func CORS(allowedOrigins []string, next http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		o = strings.TrimSuffix(strings.TrimSpace(o), "/")
		if o != "" {
			allowed[o] = struct{}{}
		}
	}
	_, anyOrigin := allowed["*"]

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		_, ok := allowed[origin]
		ok = origin != "" && (ok || anyOrigin)

		if r.Method == http.MethodOptions {
			if ok {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", corsAllowMethods)
				w.Header().Set("Access-Control-Allow-Headers", corsAllowHeaders)
				w.Header().Set("Access-Control-Max-Age", corsMaxAge)
				w.Header().Add("Vary", "Origin")
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}

		if ok {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		}
		next.ServeHTTP(w, r)
	})
}
