package handler

import (
	"net/http"

	"github.com/pbpl/workorder-api/internal/auth"
	"github.com/pbpl/workorder-api/internal/domain"
	"go.uber.org/zap"
)

type AuthHandler struct {
	adminRole   string
	authEnabled bool
	logger      *zap.Logger
}

func NewAuthHandler(adminRole string, authEnabled bool, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		adminRole:   adminRole,
		authEnabled: authEnabled,
		logger:      logger,
	}
}

// Me godoc
// @Summary Get current caller
// @Description Returns the identity the API will record in activity logs. Anonymous callers are reported with the fallback actor name.
// @Tags Auth
// @Produce json
// @Success 200 {object} domain.AuthUserResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := auth.FromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusOK, domain.AuthUserResponse{
			Success: true,
			User: domain.AuthUserDTO{
				Name:    auth.AdminUserName,
				Roles:   []string{},
				IsAdmin: !h.authEnabled,
			},
		})
		return
	}

	actor := auth.ActorFromContext(r.Context(), auth.AdminUserName)
	roles := userCtx.Roles
	if roles == nil {
		roles = []string{}
	}

	respondJSON(w, http.StatusOK, domain.AuthUserResponse{
		Success: true,
		User: domain.AuthUserDTO{
			ID:            userCtx.UserID,
			Name:          actor.Name,
			Email:         userCtx.Email,
			Roles:         roles,
			IsAdmin:       !h.authEnabled || userCtx.HasRole(h.adminRole),
			Authenticated: true,
		},
	})
}
