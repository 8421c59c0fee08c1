package rides

import (
	"errors"

	"github.com/dimasp/angkut/internal/pkg/models"
	"github.com/google/uuid"
)

var (
	// ErrRideNotFound is returned for unknown ride ids
	ErrRideNotFound = errors.New("ride not found")
	// ErrRideNotActive is returned when an operation needs an in-flight ride
	ErrRideNotActive = errors.New("ride is not active")
	// ErrNotRideDriver is returned when a driver reports on a ride that is
	// not theirs
	ErrNotRideDriver = errors.New("driver is not assigned to this ride")
)

// RideRepo owns the ride table. Status changes are the only mutation path;
// the assigned-driver reference follows the status (set exactly while the
// status implies a driver).
type RideRepo interface {
	// Create stores a new ride in the requested status
	Create(ride *models.Ride) error
	// Get returns a snapshot of one ride
	Get(rideID uuid.UUID) (*models.Ride, error)
	// List returns a snapshot of every ride
	List() []*models.Ride
	// SetStatus transitions the ride, clearing the driver reference when
	// the new status carries none
	SetStatus(rideID uuid.UUID, status models.RideStatus) (*models.Ride, error)
	// Assign binds a driver and moves the ride to the assigned status
	Assign(rideID uuid.UUID, driverID string) (*models.Ride, error)
}
