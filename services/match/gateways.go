package match

import (
	"github.com/dimasp/angkut/internal/pkg/models"
	"github.com/google/uuid"
)

// FleetProvider is the slice of the fleet repository the matcher needs.
// Satisfied by services/fleet.FleetRepo.
type FleetProvider interface {
	ListAvailable() []*models.Driver
	ListOnlineAvailable() []*models.Driver
	ListAvailableNear(loc models.Location) []*models.Driver
	Assign(driverID string, rideID uuid.UUID) error
	Release(driverID string) error
}

// RideService is how dispatch outcomes reach the ride lifecycle.
// Satisfied by services/rides.RideUC.
type RideService interface {
	// MarkSearching moves the ride into the searching status
	MarkSearching(rideID uuid.UUID) error
	// ConfirmAssignment sets the assigned driver, moves the ride to the
	// assigned status and starts the movement simulation
	ConfirmAssignment(rideID uuid.UUID, driverID string) error
	// MarkNoDrivers terminates the ride with no_drivers_available
	MarkNoDrivers(rideID uuid.UUID) error
}
