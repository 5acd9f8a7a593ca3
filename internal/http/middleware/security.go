package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pbpl/workorder-api/internal/config"
)

type header struct {
	name, value string
}

// documentPathSuffix marks the HTML preview, which must be embeddable by
// the frontend and needs its inline stylesheet.
const documentPathSuffix = "/document"

// SecurityHeaders returns a middleware that adds the configured security
// headers. The header set is computed once.
func SecurityHeaders(cfg *config.SecurityConfig) func(http.Handler) http.Handler {
	headers := securityHeaders(cfg)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			preview := strings.HasSuffix(r.URL.Path, documentPathSuffix)
			for _, h := range headers {
				if preview && (h.name == "X-Frame-Options" || h.name == "Content-Security-Policy") {
					continue
				}
				w.Header().Set(h.name, h.value)
			}
			w.Header().Del("X-Powered-By")
			w.Header().Del("Server")

			next.ServeHTTP(w, r)
		})
	}
}

func securityHeaders(cfg *config.SecurityConfig) []header {
	var headers []header
	add := func(name, value string) {
		if value != "" {
			headers = append(headers, header{name, value})
		}
	}

	if cfg.ContentTypeNosniff {
		add("X-Content-Type-Options", "nosniff")
	}
	add("X-Frame-Options", cfg.FrameOptions)
	add("X-XSS-Protection", cfg.XSSProtection)
	add("Content-Security-Policy", cfg.ContentSecurityPolicy)
	add("Referrer-Policy", cfg.ReferrerPolicy)
	add("Permissions-Policy", cfg.PermissionsPolicy)

	if cfg.EnableHSTS {
		hsts := fmt.Sprintf("max-age=%d", cfg.HSTSMaxAge)
		if cfg.HSTSIncludeSubdomains {
			hsts += "; includeSubDomains"
		}
		if cfg.HSTSPreload {
			hsts += "; preload"
		}
		add("Strict-Transport-Security", hsts)
	}
	return headers
}
