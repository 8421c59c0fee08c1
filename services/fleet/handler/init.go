package handler

import (
	"github.com/dimasp/angkut/services/fleet"
	"github.com/labstack/echo/v4"
)

// FleetHandler exposes the driver-facing fleet endpoints
type FleetHandler struct {
	fleetUC fleet.FleetUC
}

// NewFleetHandler creates a new fleet handler
func NewFleetHandler(fleetUC fleet.FleetUC) *FleetHandler {
	return &FleetHandler{fleetUC: fleetUC}
}

// RegisterRoutes registers the fleet HTTP routes
func (h *FleetHandler) RegisterRoutes(e *echo.Echo) {
	drivers := e.Group("/drivers")
	drivers.POST("/login", h.Login)
	drivers.POST("/:id/logout", h.Logout)
	drivers.PUT("/:id/availability", h.SetAvailability)
	drivers.PUT("/:id/location", h.UpdateLocation)
	drivers.GET("/:id/stats", h.GetStats)
}
