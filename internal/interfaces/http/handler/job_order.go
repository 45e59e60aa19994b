package handler

import (
	"net/http"

	appaudit "github.com/POGsss/Petrozone-Pulse-System-sub000/internal/application/audit"
	appworkorder "github.com/POGsss/Petrozone-Pulse-System-sub000/internal/application/workorder"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/workorder"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// JobOrderHandler exposes the job order lifecycle endpoints
type JobOrderHandler struct {
	BaseHandler
	orderService *appworkorder.JobOrderService
	auditQueries *appaudit.QueryService
}

// NewJobOrderHandler creates a new JobOrderHandler
func NewJobOrderHandler(orderService *appworkorder.JobOrderService, auditQueries *appaudit.QueryService) *JobOrderHandler {
	return &JobOrderHandler{
		orderService: orderService,
		auditQueries: auditQueries,
	}
}

// Create handles POST /api/v1/job-orders
func (h *JobOrderHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req appworkorder.CreateOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.orderService.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /api/v1/job-orders/:id
func (h *JobOrderHandler) Get(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	resp, err := h.orderService.Get(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /api/v1/job-orders with optional branch_id and status
// query filters
func (h *JobOrderHandler) List(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	req, ok := h.bindListRequest(c)
	if !ok {
		return
	}

	filter := req.Filter()
	if raw := c.Query("branch_id"); raw != "" {
		branchID, err := uuid.Parse(raw)
		if err != nil {
			h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, "Invalid branch_id parameter")
			return
		}
		filter.Filters["branch_id"] = branchID
	}
	if raw := c.Query("status"); raw != "" {
		status := workorder.OrderStatus(raw)
		if !status.IsValid() {
			h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, "Unknown order status "+raw)
			return
		}
		filter.Filters["status"] = status
	}

	result, err := h.orderService.List(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, result)
}

// Update handles PATCH /api/v1/job-orders/:id (notes only)
func (h *JobOrderHandler) Update(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req appworkorder.UpdateOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.orderService.UpdateNotes(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddItem handles POST /api/v1/job-orders/:id/items
func (h *JobOrderHandler) AddItem(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req appworkorder.OrderItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.orderService.AddItem(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RemoveItem handles DELETE /api/v1/job-orders/:id/items/:itemId
func (h *JobOrderHandler) RemoveItem(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	itemID, ok := h.pathUUID(c, "itemId")
	if !ok {
		return
	}

	resp, err := h.orderService.RemoveItem(c.Request.Context(), actor, id, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RequestApproval handles POST /api/v1/job-orders/:id/request-approval
func (h *JobOrderHandler) RequestApproval(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	resp, err := h.orderService.RequestApproval(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RecordApproval handles POST /api/v1/job-orders/:id/approval
func (h *JobOrderHandler) RecordApproval(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req appworkorder.RecordApprovalRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.orderService.RecordApproval(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Cancel handles POST /api/v1/job-orders/:id/cancel
func (h *JobOrderHandler) Cancel(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	resp, err := h.orderService.Cancel(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /api/v1/job-orders/:id
func (h *JobOrderHandler) Delete(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AddRepair handles POST /api/v1/job-orders/:id/repairs
func (h *JobOrderHandler) AddRepair(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req appworkorder.CreateRepairRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.orderService.AddRepair(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListRepairs handles GET /api/v1/job-orders/:id/repairs
func (h *JobOrderHandler) ListRepairs(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	repairs, err := h.orderService.ListRepairs(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, repairs)
}

// UpdateRepair handles PATCH /api/v1/job-orders/:id/repairs/:repairId
func (h *JobOrderHandler) UpdateRepair(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	repairID, ok := h.pathUUID(c, "repairId")
	if !ok {
		return
	}
	var req appworkorder.CreateRepairRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.orderService.UpdateRepair(c.Request.Context(), actor, id, repairID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RemoveRepair handles DELETE /api/v1/job-orders/:id/repairs/:repairId
func (h *JobOrderHandler) RemoveRepair(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	repairID, ok := h.pathUUID(c, "repairId")
	if !ok {
		return
	}

	if err := h.orderService.RemoveRepair(c.Request.Context(), actor, id, repairID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// History handles GET /api/v1/job-orders/:id/history
func (h *JobOrderHandler) History(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	entries, err := h.auditQueries.OrderHistory(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}
