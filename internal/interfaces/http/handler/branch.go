package handler

import (
	appidentity "github.com/POGsss/Petrozone-Pulse-System-sub000/internal/application/identity"
	"github.com/gin-gonic/gin"
)

// BranchHandler exposes branch administration endpoints
type BranchHandler struct {
	BaseHandler
	branchService *appidentity.BranchService
}

// NewBranchHandler creates a new BranchHandler
func NewBranchHandler(branchService *appidentity.BranchService) *BranchHandler {
	return &BranchHandler{branchService: branchService}
}

// Create handles POST /api/v1/branches
func (h *BranchHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req appidentity.CreateBranchRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.branchService.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /api/v1/branches/:id
func (h *BranchHandler) Get(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	resp, err := h.branchService.Get(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /api/v1/branches
func (h *BranchHandler) List(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	req, ok := h.bindListRequest(c)
	if !ok {
		return
	}

	result, err := h.branchService.List(c.Request.Context(), actor, req.Filter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, result)
}

// Update handles PATCH /api/v1/branches/:id
func (h *BranchHandler) Update(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req appidentity.UpdateBranchRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.branchService.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /api/v1/branches/:id
func (h *BranchHandler) Delete(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.branchService.Delete(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
