package handler

import (
	"net/http"
	"time"

	appaudit "github.com/POGsss/Petrozone-Pulse-System-sub000/internal/application/audit"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditHandler exposes the administrative audit trail
type AuditHandler struct {
	BaseHandler
	queries *appaudit.QueryService
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(queries *appaudit.QueryService) *AuditHandler {
	return &AuditHandler{queries: queries}
}

// Trail handles GET /api/v1/audit with optional entity_type, action,
// actor_id and occurred_from/occurred_to (RFC 3339) query filters
func (h *AuditHandler) Trail(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	req, ok := h.bindListRequest(c)
	if !ok {
		return
	}

	filter := req.Filter()
	if entityType := c.Query("entity_type"); entityType != "" {
		filter.Filters["entity_type"] = entityType
	}
	if action := c.Query("action"); action != "" {
		filter.Filters["action"] = action
	}
	if raw := c.Query("actor_id"); raw != "" {
		actorID, err := uuid.Parse(raw)
		if err != nil {
			h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, "Invalid actor_id parameter")
			return
		}
		filter.Filters["actor_id"] = actorID
	}
	if raw := c.Query("occurred_from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, "Invalid occurred_from parameter")
			return
		}
		filter.Filters["occurred_from"] = from
	}
	if raw := c.Query("occurred_to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, "Invalid occurred_to parameter")
			return
		}
		filter.Filters["occurred_to"] = to
	}

	result, err := h.queries.AuditTrail(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, result)
}

// Entity handles GET /api/v1/audit/:entityType/:id
func (h *AuditHandler) Entity(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	entityType := c.Param("entityType")
	if entityType == "" {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, "entityType parameter is required")
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	entries, err := h.queries.EntityAudit(c.Request.Context(), actor, entityType, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}
