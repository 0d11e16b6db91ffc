package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

var corsOptions = cors.Options{
	AllowedOrigins: []string{"*"},
	AllowedMethods: []string{
		http.MethodGet, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions,
	},
	AllowedHeaders: []string{"*"},
	ExposedHeaders: []string{"Location", "X-Request-Id"},
	MaxAge:         86400,
	// El preflight lo cierra preflightNoContent con 204.
	OptionsPassthrough: true,
}

// CORS abre la API a cualquier origen (el SPA se sirve desde otro host).
func CORS(next http.Handler) http.Handler {
	return cors.Handler(corsOptions)(preflightNoContent(next))
}

func preflightNoContent(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
