package fleet

import "github.com/dimasp/angkut/internal/pkg/models"

// LoginResult is returned by a successful driver login
type LoginResult struct {
	Driver  *models.Driver     `json:"driver"`
	Session *models.DriverStats `json:"session"`
}

// FleetUC defines the driver-facing fleet business logic
type FleetUC interface {
	Login(driverID string, location models.Location) (*LoginResult, error)
	Logout(driverID string) (*models.SessionSummary, error)
	SetAvailability(driverID string, available bool) (*models.Driver, error)
	UpdateDriverLocation(driverID string, location models.Location) (models.Location, error)
	GetStats(driverID string) (*models.DriverStats, error)
	GetDriver(driverID string) (*models.Driver, error)
}
