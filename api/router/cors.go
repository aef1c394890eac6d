package router

import "net/http"

// corsMiddleware echoes the storefront's CORS policy: requests from a
// configured origin get that origin back, anything else falls back to the
// first configured origin. Preflight OPTIONS requests are answered here with
// an empty 200 and never reach a handler.
func corsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if len(allowedOrigins) > 0 {
				allowOrigin := allowedOrigins[0]
				if origin := req.Header.Get("Origin"); allowed[origin] {
					allowOrigin = origin
				}
				w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
				w.Header().Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				w.Header().Add("Vary", "Origin")
			}

			if req.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}
