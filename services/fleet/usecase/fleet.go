package usecase

import (
	"fmt"

	"github.com/dimasp/angkut/internal/pkg/logger"
	"github.com/dimasp/angkut/internal/pkg/models"
	"github.com/dimasp/angkut/services/fleet"
)

// Login opens a session for the driver, seeding its location when the
// client provides one.
func (uc *FleetUC) Login(driverID string, location models.Location) (*fleet.LoginResult, error) {
	if err := uc.fleetRepo.MarkOnline(driverID); err != nil {
		return nil, err
	}

	if location.Valid() && (location.Latitude != 0 || location.Longitude != 0) {
		if err := uc.fleetRepo.UpdateLocation(driverID, location); err != nil {
			// session is already open; roll it back rather than leak it
			_, _ = uc.fleetRepo.MarkOffline(driverID)
			return nil, fmt.Errorf("failed to seed driver location: %w", err)
		}
	}

	driver, err := uc.fleetRepo.Get(driverID)
	if err != nil {
		return nil, err
	}
	stats, err := uc.fleetRepo.GetStats(driverID)
	if err != nil {
		return nil, err
	}

	logger.Info("Driver logged in",
		logger.String("driver_id", driverID),
		logger.Float64("lat", driver.Location.Latitude),
		logger.Float64("lng", driver.Location.Longitude))

	return &fleet.LoginResult{Driver: driver, Session: stats}, nil
}

// Logout closes the driver's session and returns its summary
func (uc *FleetUC) Logout(driverID string) (*models.SessionSummary, error) {
	summary, err := uc.fleetRepo.MarkOffline(driverID)
	if err != nil {
		return nil, err
	}

	logger.Info("Driver logged out",
		logger.String("driver_id", driverID),
		logger.Duration("session_duration", summary.Duration),
		logger.Int("rides_completed", summary.RidesCompleted))

	return summary, nil
}

// SetAvailability toggles the driver's availability flag
func (uc *FleetUC) SetAvailability(driverID string, available bool) (*models.Driver, error) {
	if err := uc.fleetRepo.SetAvailability(driverID, available); err != nil {
		return nil, err
	}
	return uc.fleetRepo.Get(driverID)
}

// UpdateDriverLocation moves the driver
func (uc *FleetUC) UpdateDriverLocation(driverID string, location models.Location) (models.Location, error) {
	if !location.Valid() {
		return models.Location{}, fmt.Errorf("invalid coordinates: %v", location)
	}
	if err := uc.fleetRepo.UpdateLocation(driverID, location); err != nil {
		return models.Location{}, err
	}
	return location, nil
}

// GetStats returns the driver's aggregate stats
func (uc *FleetUC) GetStats(driverID string) (*models.DriverStats, error) {
	return uc.fleetRepo.GetStats(driverID)
}

// GetDriver returns a snapshot of the driver
func (uc *FleetUC) GetDriver(driverID string) (*models.Driver, error) {
	return uc.fleetRepo.Get(driverID)
}
