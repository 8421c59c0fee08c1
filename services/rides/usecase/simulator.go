package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dimasp/angkut/internal/pkg/geo"
	"github.com/dimasp/angkut/internal/pkg/logger"
	"github.com/dimasp/angkut/internal/pkg/models"
	"github.com/dimasp/angkut/services/rides"
	"github.com/google/uuid"
)

// ErrSimulationExists is returned when a ride already has a simulation
var ErrSimulationExists = errors.New("simulation already running for ride")

// simulation is the cancellation handle for one ride's movement goroutine
type simulation struct {
	driverID string
	cancel   context.CancelFunc
}

// Simulator drives assigned rides through their two movement phases,
// pickup leg then trip leg, one goroutine per ride.
type Simulator struct {
	cfg       *models.Config
	lifecycle *RideUC
	fleet     rides.FleetProvider
	gw        rides.RidesGW

	mu     sync.Mutex
	active map[uuid.UUID]*simulation
}

// NewSimulator creates a new movement simulator
func NewSimulator(cfg *models.Config, lifecycle *RideUC, fleet rides.FleetProvider, gw rides.RidesGW) *Simulator {
	return &Simulator{
		cfg:       cfg,
		lifecycle: lifecycle,
		fleet:     fleet,
		gw:        gw,
		active:    make(map[uuid.UUID]*simulation),
	}
}

// Start launches the movement goroutine for a freshly assigned ride,
// beginning at the driver's current position.
func (s *Simulator) Start(ride *models.Ride, driverLoc models.Location) error {
	ctx, cancel := context.WithCancel(context.Background())

	s.mu.Lock()
	if _, ok := s.active[ride.ID]; ok {
		s.mu.Unlock()
		cancel()
		return ErrSimulationExists
	}
	s.active[ride.ID] = &simulation{driverID: ride.DriverID, cancel: cancel}
	s.mu.Unlock()

	go s.run(ctx, ride, driverLoc)
	return nil
}

// Stop cancels a ride's simulation; unknown rides are a no-op
func (s *Simulator) Stop(rideID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sim, ok := s.active[rideID]; ok {
		sim.cancel()
		delete(s.active, rideID)
	}
}

// Running reports whether a ride currently has a movement goroutine
func (s *Simulator) Running(rideID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.active[rideID]
	return ok
}

func (s *Simulator) deregister(rideID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.active, rideID)
}

func (s *Simulator) run(ctx context.Context, ride *models.Ride, driverLoc models.Location) {
	defer s.deregister(ride.ID)

	logger.Info("Movement simulation started",
		logger.String("ride_id", ride.ID.String()),
		logger.String("driver_id", ride.DriverID),
		logger.Float64("pickup_m", geo.Distance(driverLoc, ride.Pickup)))

	if !s.runPhase(ctx, ride, models.PhaseToPickup, driverLoc, ride.Pickup,
		s.cfg.Dispatch.PickupPhaseDuration, models.RideStatusArriving) {
		return
	}

	// the driver is at the pickup point; signal the arrival moment,
	// then hold stationary before the trip leg
	s.gw.PublishRideStatus(models.RideStatusEvent{
		RideID:    ride.ID,
		DriverID:  ride.DriverID,
		Status:    models.RideStatusArrived,
		Timestamp: models.Now(),
	})

	select {
	case <-ctx.Done():
		return
	case <-time.After(s.cfg.Dispatch.DeparturePause):
	}
	s.lifecycle.transitionFromSimulation(ride.ID, models.RideStatusInProgress)

	if !s.runPhase(ctx, ride, models.PhaseToDestination, ride.Pickup, ride.Destination,
		s.cfg.Dispatch.TripPhaseDuration, models.RideStatusApproachingDest) {
		return
	}

	s.lifecycle.transitionFromSimulation(ride.ID, models.RideStatusCompleted)
}

// runPhase ticks one movement leg to completion. Progress advances by a
// fixed fraction per tick so it is monotonic and ends exactly at the phase
// endpoint. Returns false when the context was cancelled mid-leg.
func (s *Simulator) runPhase(
	ctx context.Context,
	ride *models.Ride,
	phase models.RidePhase,
	from, to models.Location,
	duration time.Duration,
	nearStatus models.RideStatus,
) bool {
	s.gw.PublishRoute(ride.ID, phase, geo.RoutePolyline(from, to, s.cfg.Dispatch.PolylinePoints))

	totalTicks := int(duration / s.cfg.Dispatch.TickInterval)
	if totalTicks < 1 {
		totalTicks = 1
	}

	ticker := time.NewTicker(s.cfg.Dispatch.TickInterval)
	defer ticker.Stop()

	signalled := false
	for tick := 1; tick <= totalTicks; tick++ {
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
		}

		progress := float64(tick) / float64(totalTicks)
		pos := geo.Interpolate(from, to, progress)
		remaining := geo.Distance(pos, to)

		if err := s.fleet.UpdateLocation(ride.DriverID, pos); err != nil {
			logger.Warn("Failed to move driver",
				logger.String("driver_id", ride.DriverID),
				logger.Err(err))
		}
		if !signalled && remaining <= s.cfg.Dispatch.ArrivalThresholdM {
			signalled = true
			s.lifecycle.transitionFromSimulation(ride.ID, nearStatus)
		}

		s.gw.PublishPositionUpdate(models.PositionUpdate{
			RideID:     ride.ID,
			DriverID:   ride.DriverID,
			Location:   pos,
			Bearing:    geo.Bearing(pos, to),
			Phase:      phase,
			RemainingM: remaining,
			Progress:   progress,
			Timestamp:  models.Now(),
		})
	}
	return true
}
