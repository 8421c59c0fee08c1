package rides

import (
	"context"

	"github.com/dimasp/angkut/internal/pkg/models"
	"github.com/google/uuid"
)

// DriverRideStatus is a driver-reported progress update
type DriverRideStatus string

const (
	DriverStatusArrived     DriverRideStatus = "arrived"
	DriverStatusPickedUp    DriverRideStatus = "pickedUp"
	DriverStatusApproaching DriverRideStatus = "approaching"
	DriverStatusCompleted   DriverRideStatus = "completed"
)

// RideUC defines the ride lifecycle business logic
type RideUC interface {
	// RequestRide validates the request, creates the ride and hands it to
	// the dispatcher
	RequestRide(ctx context.Context, req *models.RideRequest) (*models.Ride, error)
	// GetRide returns a snapshot of one ride
	GetRide(rideID uuid.UUID) (*models.Ride, error)
	// ListRides returns a snapshot of every ride
	ListRides() []*models.Ride
	// CancelRide stops any simulation and pending offer and releases the
	// driver
	CancelRide(rideID uuid.UUID) (*models.Ride, error)
	// ReportDriverStatus applies a driver-reported progress update
	ReportDriverStatus(driverID string, rideID uuid.UUID, status DriverRideStatus) (*models.Ride, error)

	// Dispatch outcomes (see services/match.RideService)
	MarkSearching(rideID uuid.UUID) error
	ConfirmAssignment(rideID uuid.UUID, driverID string) error
	MarkNoDrivers(rideID uuid.UUID) error
}
