package rides

import (
	"context"

	"github.com/dimasp/angkut/internal/pkg/models"
	"github.com/google/uuid"
)

// RidesGW publishes realtime ride events on the push channel
type RidesGW interface {
	PublishPositionUpdate(update models.PositionUpdate)
	PublishRideStatus(event models.RideStatusEvent)
	PublishRoute(rideID uuid.UUID, phase models.RidePhase, polyline []models.Location)
}

// FleetProvider is the slice of the fleet repository the ride lifecycle
// needs. Satisfied by services/fleet.FleetRepo.
type FleetProvider interface {
	Get(driverID string) (*models.Driver, error)
	UpdateLocation(driverID string, loc models.Location) error
	Release(driverID string) error
	Complete(driverID string, earnings float64) (models.Location, error)
}

// Dispatcher starts and cancels the offer/fallback flow for a ride.
// Satisfied by services/match.MatchUC.
type Dispatcher interface {
	DispatchRide(ctx context.Context, ride *models.Ride) error
	CancelDispatch(rideID uuid.UUID)
}
