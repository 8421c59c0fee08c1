package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dimasp/angkut/internal/pkg/models"
	"github.com/dimasp/angkut/internal/utils"
	"github.com/dimasp/angkut/services/rides"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestRide handles a rider asking for a ride
func (h *RidesHandler) RequestRide(c echo.Context) error {
	var request models.RideRequest
	if err := c.Bind(&request); err != nil {
		return utils.BadRequestResponse(c, "Invalid request format")
	}

	ride, err := h.rideUC.RequestRide(c.Request().Context(), &request)
	if err != nil {
		if strings.Contains(err.Error(), "invalid") {
			return utils.BadRequestResponse(c, err.Error())
		}
		return utils.InternalServerErrorResponse(c, "Failed to request ride")
	}
	return utils.SuccessResponse(c, http.StatusCreated, "Ride requested", map[string]interface{}{
		"ride": ride,
	})
}

// GetRide returns one ride
func (h *RidesHandler) GetRide(c echo.Context) error {
	rideID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid ride ID")
	}

	ride, err := h.rideUC.GetRide(rideID)
	if err != nil {
		if errors.Is(err, rides.ErrRideNotFound) {
			return utils.NotFoundResponse(c, "Unknown ride")
		}
		return utils.InternalServerErrorResponse(c, "Failed to get ride")
	}
	return utils.SuccessResponse(c, http.StatusOK, "Ride retrieved", map[string]interface{}{
		"ride": ride,
	})
}

// ListRides returns every ride, for dashboards and debugging
func (h *RidesHandler) ListRides(c echo.Context) error {
	return utils.SuccessResponse(c, http.StatusOK, "Rides retrieved", map[string]interface{}{
		"rides": h.rideUC.ListRides(),
	})
}

// CancelRide handles a rider cancelling an in-flight ride
func (h *RidesHandler) CancelRide(c echo.Context) error {
	rideID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid ride ID")
	}

	ride, err := h.rideUC.CancelRide(rideID)
	if err != nil {
		switch {
		case errors.Is(err, rides.ErrRideNotFound):
			return utils.NotFoundResponse(c, "Unknown ride")
		case errors.Is(err, rides.ErrRideNotActive):
			return utils.ConflictResponse(c, "Ride is no longer active")
		}
		return utils.InternalServerErrorResponse(c, "Failed to cancel ride")
	}
	return utils.SuccessResponse(c, http.StatusOK, "Ride cancelled", map[string]interface{}{
		"ride": ride,
	})
}

// ReportDriverStatus applies a driver-reported ride progress update
func (h *RidesHandler) ReportDriverStatus(c echo.Context) error {
	driverID := c.Param("id")
	if driverID == "" {
		return utils.BadRequestResponse(c, "Driver ID is required")
	}
	rideID, err := uuid.Parse(c.Param("rideID"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid ride ID")
	}

	var request struct {
		Status rides.DriverRideStatus `json:"status"`
	}
	if err := c.Bind(&request); err != nil {
		return utils.BadRequestResponse(c, "Invalid request format")
	}

	ride, err := h.rideUC.ReportDriverStatus(driverID, rideID, request.Status)
	if err != nil {
		switch {
		case errors.Is(err, rides.ErrRideNotFound):
			return utils.NotFoundResponse(c, "Unknown ride")
		case errors.Is(err, rides.ErrRideNotActive):
			return utils.ConflictResponse(c, "Ride is no longer active")
		case errors.Is(err, rides.ErrNotRideDriver):
			return utils.BadRequestResponse(c, "Driver is not assigned to this ride")
		}
		return utils.BadRequestResponse(c, err.Error())
	}
	return utils.SuccessResponse(c, http.StatusOK, "Ride status updated", map[string]interface{}{
		"ride": ride,
	})
}
