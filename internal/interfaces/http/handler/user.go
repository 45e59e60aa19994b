package handler

import (
	"context"

	appidentity "github.com/POGsss/Petrozone-Pulse-System-sub000/internal/application/identity"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/identity"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserHandler exposes staff administration endpoints
type UserHandler struct {
	BaseHandler
	userService *appidentity.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *appidentity.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Create handles POST /api/v1/users
func (h *UserHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req appidentity.CreateUserRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.userService.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /api/v1/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	resp, err := h.userService.Get(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /api/v1/users
func (h *UserHandler) List(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	req, ok := h.bindListRequest(c)
	if !ok {
		return
	}

	result, err := h.userService.List(c.Request.Context(), actor, req.Filter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, result)
}

// Update handles PATCH /api/v1/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req appidentity.UpdateUserRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.userService.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

type roleRequest struct {
	Role identity.Role `json:"role" binding:"required,rolecode"`
}

// GrantRole handles POST /api/v1/users/:id/roles
func (h *UserHandler) GrantRole(c *gin.Context) {
	h.mutateRole(c, h.userService.GrantRole)
}

// RevokeRole handles DELETE /api/v1/users/:id/roles
func (h *UserHandler) RevokeRole(c *gin.Context) {
	h.mutateRole(c, h.userService.RevokeRole)
}

func (h *UserHandler) mutateRole(c *gin.Context, mutate func(ctx context.Context, actor identity.Actor, id uuid.UUID, role identity.Role) (*appidentity.UserResponse, error)) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req roleRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := mutate(c.Request.Context(), actor, id, req.Role)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AssignBranch handles POST /api/v1/users/:id/branches/:branchId
func (h *UserHandler) AssignBranch(c *gin.Context) {
	h.mutateAssignment(c, h.userService.AssignBranch)
}

// RevokeBranch handles DELETE /api/v1/users/:id/branches/:branchId
func (h *UserHandler) RevokeBranch(c *gin.Context) {
	h.mutateAssignment(c, h.userService.RevokeBranch)
}

func (h *UserHandler) mutateAssignment(c *gin.Context, mutate func(ctx context.Context, actor identity.Actor, id, branchID uuid.UUID) (*appidentity.UserResponse, error)) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	branchID, ok := h.pathUUID(c, "branchId")
	if !ok {
		return
	}

	resp, err := mutate(c.Request.Context(), actor, id, branchID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /api/v1/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
