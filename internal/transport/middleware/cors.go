package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"

	"github.com/heartmarshall/makerlab-backend/internal/config"
)

// CORS returns middleware that handles Cross-Origin Resource Sharing for the
// browser client. Allowed origins are echoed back, "*" included, so
// credentialed requests keep working. Preflight requests are answered
// directly.
func CORS(cfg config.CORSConfig) Middleware {
	origins := splitList(cfg.AllowedOrigins)

	return cors.Handler(cors.Options{
		AllowOriginFunc: func(_ *http.Request, origin string) bool {
			return isAllowedOrigin(origin, origins)
		},
		AllowedMethods:   splitList(cfg.AllowedMethods),
		AllowedHeaders:   append(splitList(cfg.AllowedHeaders), RequestIDHeader),
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func isAllowedOrigin(origin string, allowed []string) bool {
	for _, a := range allowed {
		if a == "*" || strings.EqualFold(a, origin) {
			return true
		}
	}
	return false
}
