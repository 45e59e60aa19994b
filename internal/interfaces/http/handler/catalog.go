package handler

import (
	"net/http"

	appcatalog "github.com/POGsss/Petrozone-Pulse-System-sub000/internal/application/catalog"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CatalogHandler exposes catalog item, pricing rule and price resolution
// endpoints
type CatalogHandler struct {
	BaseHandler
	catalogService *appcatalog.CatalogService
	pricingService *appcatalog.PricingService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *appcatalog.CatalogService, pricingService *appcatalog.PricingService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		pricingService: pricingService,
	}
}

// CreateItem handles POST /api/v1/catalog/items
func (h *CatalogHandler) CreateItem(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req appcatalog.CreateItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.catalogService.CreateItem(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetItem handles GET /api/v1/catalog/items/:id
func (h *CatalogHandler) GetItem(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	resp, err := h.catalogService.GetItem(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListItems handles GET /api/v1/catalog/items?branch_id=...
func (h *CatalogHandler) ListItems(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	branchID, err := uuid.Parse(c.Query("branch_id"))
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, "branch_id query parameter is required")
		return
	}
	req, ok := h.bindListRequest(c)
	if !ok {
		return
	}

	result, err := h.catalogService.ListItems(c.Request.Context(), actor, branchID, req.Filter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, result)
}

// UpdateItem handles PATCH /api/v1/catalog/items/:id
func (h *CatalogHandler) UpdateItem(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req appcatalog.UpdateItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.catalogService.UpdateItem(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteItem handles DELETE /api/v1/catalog/items/:id
func (h *CatalogHandler) DeleteItem(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.catalogService.DeleteItem(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateRule handles POST /api/v1/catalog/rules
func (h *CatalogHandler) CreateRule(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req appcatalog.CreateRuleRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.catalogService.CreateRule(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListRules handles GET /api/v1/catalog/rules?branch_id=...
func (h *CatalogHandler) ListRules(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	branchID, err := uuid.Parse(c.Query("branch_id"))
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, "branch_id query parameter is required")
		return
	}
	req, ok := h.bindListRequest(c)
	if !ok {
		return
	}

	rules, err := h.catalogService.ListRules(c.Request.Context(), actor, branchID, req.Filter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rules)
}

// UpdateRule handles PATCH /api/v1/catalog/rules/:id
func (h *CatalogHandler) UpdateRule(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req appcatalog.UpdateRuleRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.catalogService.UpdateRule(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteRule handles DELETE /api/v1/catalog/rules/:id
func (h *CatalogHandler) DeleteRule(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.catalogService.DeleteRule(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ResolvePrice handles POST /api/v1/catalog/resolve-price. It previews the
// price triple an order line would snapshot, warnings included.
func (h *CatalogHandler) ResolvePrice(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req appcatalog.ResolvePriceRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if !actor.CanAccessBranch(req.BranchID) {
		h.Error(c, http.StatusForbidden, dto.ErrCodeForbidden, "Branch is outside your scope")
		return
	}

	resp, err := h.pricingService.ResolveForQuantity(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
