package handler

import (
	appidentity "github.com/POGsss/Petrozone-Pulse-System-sub000/internal/application/identity"
	"github.com/gin-gonic/gin"
)

// AuthHandler exposes authentication endpoints
type AuthHandler struct {
	BaseHandler
	authService *appidentity.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *appidentity.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req appidentity.LoginRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	h.Success(c, gin.H{
		"user_id":    actor.UserID,
		"roles":      actor.Roles,
		"branch_ids": actor.BranchIDs,
	})
}
