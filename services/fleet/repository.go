package fleet

import (
	"errors"

	"github.com/dimasp/angkut/internal/pkg/models"
	"github.com/google/uuid"
)

var (
	// ErrDriverNotFound is returned for unknown driver ids
	ErrDriverNotFound = errors.New("driver not found")
	// ErrDriverUnavailable is returned when an assignment races a driver
	// that is already on a ride
	ErrDriverUnavailable = errors.New("driver unavailable")
	// ErrDriverBusy is returned when availability cannot be withdrawn
	// because the driver has an active ride
	ErrDriverBusy = errors.New("driver has an active ride")
	// ErrAlreadyOnline is returned on a duplicate login
	ErrAlreadyOnline = errors.New("driver already online")
	// ErrNotOnline is returned when a session operation has no session
	ErrNotOnline = errors.New("driver not online")
)

// FleetRepo owns the driver roster. All mutations go through it so the
// single-assignment invariant (CurrentRideID set exactly when unavailable)
// cannot be broken from outside.
type FleetRepo interface {
	// List returns a snapshot of every driver
	List() []*models.Driver
	// ListAvailable returns a snapshot of drivers open for assignment
	ListAvailable() []*models.Driver
	// ListOnlineAvailable returns available drivers with an active session
	ListOnlineAvailable() []*models.Driver
	// ListAvailableNear returns available drivers in the geohash cell of
	// loc and its neighbors, falling back to the full pool when the cells
	// are empty
	ListAvailableNear(loc models.Location) []*models.Driver
	// Get returns a snapshot of one driver
	Get(driverID string) (*models.Driver, error)

	// UpdateLocation moves a driver and refreshes the cell index
	UpdateLocation(driverID string, loc models.Location) error
	// Assign atomically checks availability and binds the driver to the
	// ride; ErrDriverUnavailable if it lost the race
	Assign(driverID string, rideID uuid.UUID) error
	// Release clears an assignment without relocating (cancellations)
	Release(driverID string) error
	// Complete clears the assignment, records earnings and relocates the
	// driver to a freshly sampled zone; returns the new location
	Complete(driverID string, earnings float64) (models.Location, error)

	// Session operations
	MarkOnline(driverID string) error
	MarkOffline(driverID string) (*models.SessionSummary, error)
	IsOnline(driverID string) bool

	// SetAvailability toggles the availability flag; ErrDriverBusy when
	// withdrawing availability with an active ride
	SetAvailability(driverID string, available bool) error

	// GetStats returns the driver's aggregate stats
	GetStats(driverID string) (*models.DriverStats, error)
}
