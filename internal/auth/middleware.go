package auth

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pbpl/workorder-api/internal/config"
	"go.uber.org/zap"
)

const systemUserID = "00000000-0000-0000-0000-000000000000"

// Middleware attaches request identities. Anonymous requests are always
// allowed through; they are attributed to the system actor.
type Middleware struct {
	enabled      bool
	jwtValidator *JWTValidator
	apiKey       string
	adminRole    string
	logger       *zap.Logger
}

// NewMiddleware creates a new identity middleware
func NewMiddleware(cfg *config.AuthConfig, logger *zap.Logger) *Middleware {
	return &Middleware{
		enabled:      cfg.Enabled,
		jwtValidator: NewJWTValidator(cfg.JWTSecret),
		apiKey:       cfg.APIKey,
		adminRole:    cfg.AdminRole,
		logger:       logger,
	}
}

// Identify resolves the caller from x-api-key or a Bearer token. Presented
// credentials that fail validation are rejected with 401 when auth is enabled.
func (m *Middleware) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.enabled {
			next.ServeHTTP(w, r)
			return
		}

		if apiKey := r.Header.Get("x-api-key"); apiKey != "" {
			if !m.validateAPIKey(apiKey) {
				m.logger.Warn("invalid API key attempt",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
				)
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			user := &UserContext{
				UserID:      systemUserID,
				DisplayName: SystemUserName,
				Roles:       []string{m.adminRole},
			}
			next.ServeHTTP(w, r.WithContext(WithUserContext(r.Context(), user)))
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			writeError(w, http.StatusUnauthorized, "Unauthorized: invalid authorization header format")
			return
		}

		user, err := m.jwtValidator.ValidateToken(parts[1])
		if err != nil {
			m.logger.Warn("token validation failed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Error(err),
			)
			writeError(w, http.StatusUnauthorized, "Unauthorized: "+err.Error())
			return
		}

		m.logger.Debug("request authenticated",
			zap.String("path", r.URL.Path),
			zap.String("user_email", user.Email),
			zap.Strings("roles", user.Roles),
		)
		next.ServeHTTP(w, r.WithContext(WithUserContext(r.Context(), user)))
	})
}

// RequireAdmin rejects callers without the admin role. It is a no-op when
// auth is disabled.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.enabled {
			next.ServeHTTP(w, r)
			return
		}
		user, ok := FromContext(r.Context())
		if !ok || !user.HasRole(m.adminRole) {
			writeError(w, http.StatusForbidden, "Admin permission required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) validateAPIKey(key string) bool {
	if m.apiKey == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(key), []byte(m.apiKey)) == 1
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   message,
	})
}
