package handler

import (
	"errors"
	"net/http"

	"github.com/dimasp/angkut/internal/utils"
	"github.com/dimasp/angkut/services/match"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// GetOffer returns the driver's pending offer, if any
func (h *MatchHandler) GetOffer(c echo.Context) error {
	driverID := c.Param("id")
	if driverID == "" {
		return utils.BadRequestResponse(c, "Driver ID is required")
	}

	offer, hasOffer := h.matchUC.GetOfferForDriver(driverID)

	body := map[string]interface{}{
		"has_offer": hasOffer,
	}
	if hasOffer {
		body["offer"] = offer
	}

	return utils.SuccessResponse(c, http.StatusOK, "Offer lookup complete", body)
}

// AcceptOffer handles offer acceptance by a driver
func (h *MatchHandler) AcceptOffer(c echo.Context) error {
	driverID := c.Param("id")
	rideID, err := uuid.Parse(c.Param("rideID"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid ride ID")
	}

	if err := h.matchUC.AcceptOffer(driverID, rideID); err != nil {
		if errors.Is(err, match.ErrOfferNotFound) {
			return utils.NotFoundResponse(c, "No pending offer for this ride")
		}
		return utils.InternalServerErrorResponse(c, "Failed to accept offer")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Offer accepted", nil)
}

// RejectOffer handles offer rejection by a driver
func (h *MatchHandler) RejectOffer(c echo.Context) error {
	driverID := c.Param("id")
	rideID, err := uuid.Parse(c.Param("rideID"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid ride ID")
	}

	if err := h.matchUC.RejectOffer(driverID, rideID); err != nil {
		if errors.Is(err, match.ErrOfferNotFound) {
			return utils.NotFoundResponse(c, "No pending offer for this ride")
		}
		return utils.InternalServerErrorResponse(c, "Failed to reject offer")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Offer rejected", nil)
}
