package driverapp

import (
	"context"

	"github.com/dimasp/angkut/internal/pkg/models"
	"github.com/dimasp/angkut/services/rides"
	"github.com/google/uuid"
)

// LoginResponse is what the backend returns on a successful login
type LoginResponse struct {
	Driver  models.Driver      `json:"driver"`
	Session models.DriverStats `json:"session"`
}

// StatsResponse pairs the roster record with the aggregate stats
type StatsResponse struct {
	Driver models.Driver      `json:"driver"`
	Stats  models.DriverStats `json:"stats"`
}

// DriverGateway is the driver app's view of the backend. Implementations
// handle transport, retries and decoding; callers see domain values and
// plain errors.
type DriverGateway interface {
	Login(ctx context.Context, driverID string, loc models.Location) (*LoginResponse, error)
	Logout(ctx context.Context, driverID string) (*models.SessionSummary, error)
	UpdateLocation(ctx context.Context, driverID string, loc models.Location) error
	GetOffer(ctx context.Context, driverID string) (*models.PendingOffer, bool, error)
	AcceptOffer(ctx context.Context, driverID string, rideID uuid.UUID) error
	RejectOffer(ctx context.Context, driverID string, rideID uuid.UUID) error
	ReportRideStatus(ctx context.Context, driverID string, rideID uuid.UUID, status rides.DriverRideStatus) error
	GetStats(ctx context.Context, driverID string) (*StatsResponse, error)
}
