package handler

import (
	apppartner "github.com/POGsss/Petrozone-Pulse-System-sub000/internal/application/partner"
	"github.com/gin-gonic/gin"
)

// VehicleHandler exposes vehicle record endpoints
type VehicleHandler struct {
	BaseHandler
	vehicleService *apppartner.VehicleService
}

// NewVehicleHandler creates a new VehicleHandler
func NewVehicleHandler(vehicleService *apppartner.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

// Create handles POST /api/v1/vehicles
func (h *VehicleHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	var req apppartner.CreateVehicleRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.vehicleService.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /api/v1/vehicles/:id
func (h *VehicleHandler) Get(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	resp, err := h.vehicleService.Get(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListByCustomer handles GET /api/v1/customers/:id/vehicles
func (h *VehicleHandler) ListByCustomer(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	customerID, ok := h.pathID(c)
	if !ok {
		return
	}

	vehicles, err := h.vehicleService.ListByCustomer(c.Request.Context(), actor, customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, vehicles)
}

// Update handles PATCH /api/v1/vehicles/:id
func (h *VehicleHandler) Update(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req apppartner.UpdateVehicleRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.vehicleService.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /api/v1/vehicles/:id
func (h *VehicleHandler) Delete(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.vehicleService.Delete(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
