package middleware

import (
	"strings"

	"github.com/AdhityaRamadhanus/fasthttpcors"
	"github.com/valyala/fasthttp"
)

// CORS allows credentialed requests from the configured origins. "*" reflects
// any origin, which is only meant for local development.
func CORS(origins ...string) Middleware {
	var allowed []string
	for _, origin := range origins {
		for _, o := range strings.Split(origin, ",") {
			if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
				allowed = append(allowed, o)
			}
		}
	}

	cors := fasthttpcors.NewCorsHandler(fasthttpcors.Options{
		AllowedOrigins:   allowed,
		AllowedHeaders:   []string{"Content-Type", "X-Request-ID", "Apollo-Require-Preflight"},
		AllowedMethods:   []string{fasthttp.MethodGet, fasthttp.MethodPost, fasthttp.MethodOptions},
		AllowCredentials: true,
		AllowMaxAge:      600,
	})
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return cors.CorsMiddleware(next)
	}
}
