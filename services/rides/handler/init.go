package handler

import (
	"github.com/dimasp/angkut/services/rides"
	"github.com/labstack/echo/v4"
)

// RidesHandler exposes the rider-facing ride endpoints
type RidesHandler struct {
	rideUC rides.RideUC
}

// NewRidesHandler creates a new rides handler
func NewRidesHandler(rideUC rides.RideUC) *RidesHandler {
	return &RidesHandler{rideUC: rideUC}
}

// RegisterRoutes registers the ride HTTP routes
func (h *RidesHandler) RegisterRoutes(e *echo.Echo) {
	ride := e.Group("/rides")
	ride.POST("/request", h.RequestRide)
	ride.GET("", h.ListRides)
	ride.GET("/:id", h.GetRide)
	ride.POST("/:id/cancel", h.CancelRide)

	e.PUT("/drivers/:id/rides/:rideID/status", h.ReportDriverStatus)
}
