package handler

import (
	"errors"
	"net/http"

	"github.com/dimasp/angkut/internal/pkg/models"
	"github.com/dimasp/angkut/internal/utils"
	"github.com/dimasp/angkut/services/fleet"
	"github.com/labstack/echo/v4"
)

// Login handles driver login
func (h *FleetHandler) Login(c echo.Context) error {
	var request struct {
		DriverID string          `json:"driver_id"`
		Location models.Location `json:"location"`
	}

	if err := c.Bind(&request); err != nil {
		return utils.BadRequestResponse(c, "Invalid request format")
	}
	if request.DriverID == "" {
		return utils.BadRequestResponse(c, "Driver ID is required")
	}

	result, err := h.fleetUC.Login(request.DriverID, request.Location)
	if err != nil {
		switch {
		case errors.Is(err, fleet.ErrDriverNotFound):
			return utils.NotFoundResponse(c, "Unknown driver")
		case errors.Is(err, fleet.ErrAlreadyOnline):
			return utils.ConflictResponse(c, "Driver already online")
		}
		return utils.InternalServerErrorResponse(c, "Failed to log in driver")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Driver logged in", result)
}

// Logout handles driver logout
func (h *FleetHandler) Logout(c echo.Context) error {
	driverID := c.Param("id")
	if driverID == "" {
		return utils.BadRequestResponse(c, "Driver ID is required")
	}

	summary, err := h.fleetUC.Logout(driverID)
	if err != nil {
		if errors.Is(err, fleet.ErrDriverNotFound) || errors.Is(err, fleet.ErrNotOnline) {
			return utils.NotFoundResponse(c, "No active session for driver")
		}
		return utils.InternalServerErrorResponse(c, "Failed to log out driver")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Driver logged out", map[string]interface{}{
		"session_summary": summary,
	})
}

// SetAvailability toggles whether the driver accepts new assignments
func (h *FleetHandler) SetAvailability(c echo.Context) error {
	driverID := c.Param("id")
	if driverID == "" {
		return utils.BadRequestResponse(c, "Driver ID is required")
	}

	var request struct {
		Available bool `json:"available"`
	}
	if err := c.Bind(&request); err != nil {
		return utils.BadRequestResponse(c, "Invalid request format")
	}

	driver, err := h.fleetUC.SetAvailability(driverID, request.Available)
	if err != nil {
		switch {
		case errors.Is(err, fleet.ErrDriverNotFound):
			return utils.NotFoundResponse(c, "Unknown driver")
		case errors.Is(err, fleet.ErrDriverBusy):
			return utils.BadRequestResponse(c, "Driver has an active ride")
		}
		return utils.InternalServerErrorResponse(c, "Failed to update availability")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Availability updated", map[string]interface{}{
		"driver": driver,
	})
}

// UpdateLocation handles driver location reports
func (h *FleetHandler) UpdateLocation(c echo.Context) error {
	driverID := c.Param("id")
	if driverID == "" {
		return utils.BadRequestResponse(c, "Driver ID is required")
	}

	var request models.Location
	if err := c.Bind(&request); err != nil {
		return utils.BadRequestResponse(c, "Invalid request format")
	}
	if !request.Valid() {
		return utils.BadRequestResponse(c, "Invalid coordinates")
	}

	location, err := h.fleetUC.UpdateDriverLocation(driverID, request)
	if err != nil {
		if errors.Is(err, fleet.ErrDriverNotFound) {
			return utils.NotFoundResponse(c, "Unknown driver")
		}
		return utils.InternalServerErrorResponse(c, "Failed to update location")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Location updated", map[string]interface{}{
		"location": location,
	})
}

// GetStats returns the driver's aggregate stats
func (h *FleetHandler) GetStats(c echo.Context) error {
	driverID := c.Param("id")
	if driverID == "" {
		return utils.BadRequestResponse(c, "Driver ID is required")
	}

	driver, err := h.fleetUC.GetDriver(driverID)
	if err != nil {
		if errors.Is(err, fleet.ErrDriverNotFound) {
			return utils.NotFoundResponse(c, "Unknown driver")
		}
		return utils.InternalServerErrorResponse(c, "Failed to get driver")
	}

	stats, err := h.fleetUC.GetStats(driverID)
	if err != nil {
		return utils.InternalServerErrorResponse(c, "Failed to get driver stats")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Driver stats retrieved", map[string]interface{}{
		"driver": driver,
		"stats":  stats,
	})
}
