package handler

import (
	"github.com/dimasp/angkut/services/match"
	"github.com/labstack/echo/v4"
)

// MatchHandler exposes the driver-facing offer endpoints
type MatchHandler struct {
	matchUC match.MatchUC
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(matchUC match.MatchUC) *MatchHandler {
	return &MatchHandler{matchUC: matchUC}
}

// RegisterRoutes registers the offer HTTP routes
func (h *MatchHandler) RegisterRoutes(e *echo.Echo) {
	drivers := e.Group("/drivers")
	drivers.GET("/:id/offers", h.GetOffer)
	drivers.POST("/:id/rides/:rideID/accept", h.AcceptOffer)
	drivers.POST("/:id/rides/:rideID/reject", h.RejectOffer)
}
