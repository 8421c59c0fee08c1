package usecase

import (
	"github.com/dimasp/angkut/services/fleet"
)

// FleetUC implements the fleet use case interface
type FleetUC struct {
	fleetRepo fleet.FleetRepo
}

// NewFleetUC creates a new fleet use case
func NewFleetUC(fleetRepo fleet.FleetRepo) *FleetUC {
	return &FleetUC{
		fleetRepo: fleetRepo,
	}
}
