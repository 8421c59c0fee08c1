package usecase

import (
	"github.com/dimasp/angkut/internal/pkg/models"
	"github.com/dimasp/angkut/services/rides"
)

// RideUC implements the ride lifecycle use case interface
type RideUC struct {
	cfg        *models.Config
	rideRepo   rides.RideRepo
	fleet      rides.FleetProvider
	gw         rides.RidesGW
	dispatcher rides.Dispatcher
	sim        *Simulator
}

// NewRideUC creates a new ride use case. The dispatcher is injected
// separately because rides and match reference each other.
func NewRideUC(
	cfg *models.Config,
	rideRepo rides.RideRepo,
	fleet rides.FleetProvider,
	gw rides.RidesGW,
) *RideUC {
	uc := &RideUC{
		cfg:      cfg,
		rideRepo: rideRepo,
		fleet:    fleet,
		gw:       gw,
	}
	uc.sim = NewSimulator(cfg, uc, fleet, gw)
	return uc
}

// SetDispatcher wires the match engine in after construction
func (uc *RideUC) SetDispatcher(d rides.Dispatcher) {
	uc.dispatcher = d
}
