package usecase

import (
	"sync"

	"github.com/dimasp/angkut/internal/pkg/models"
	"github.com/dimasp/angkut/services/match"
	"github.com/google/uuid"
)

// MatchUC implements the match use case interface
type MatchUC struct {
	cfg       *models.Config
	offerRepo match.OfferRepo
	fleet     match.FleetProvider
	rideSvc   match.RideService

	mu     sync.Mutex
	timers map[uuid.UUID]*dispatchState
}

// NewMatchUC creates a new match use case. The ride service is injected
// separately because rides and match reference each other.
func NewMatchUC(
	cfg *models.Config,
	offerRepo match.OfferRepo,
	fleet match.FleetProvider,
) *MatchUC {
	return &MatchUC{
		cfg:       cfg,
		offerRepo: offerRepo,
		fleet:     fleet,
		timers:    make(map[uuid.UUID]*dispatchState),
	}
}

// SetRideService wires the ride lifecycle in after construction
func (uc *MatchUC) SetRideService(rideSvc match.RideService) {
	uc.rideSvc = rideSvc
}
