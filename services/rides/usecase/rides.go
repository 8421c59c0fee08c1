package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/dimasp/angkut/internal/pkg/geo"
	"github.com/dimasp/angkut/internal/pkg/logger"
	"github.com/dimasp/angkut/internal/pkg/models"
	"github.com/dimasp/angkut/services/rides"
	"github.com/google/uuid"
)

// RequestRide validates the request, creates the ride and hands it to the
// dispatcher, which takes it from requested to searching.
func (uc *RideUC) RequestRide(ctx context.Context, req *models.RideRequest) (*models.Ride, error) {
	if !req.Pickup.Valid() {
		return nil, fmt.Errorf("invalid pickup coordinates")
	}
	if !req.Destination.Valid() {
		return nil, fmt.Errorf("invalid destination coordinates")
	}

	ride := &models.Ride{
		Pickup:      req.Pickup,
		Destination: req.Destination,
	}
	if err := uc.rideRepo.Create(ride); err != nil {
		return nil, err
	}
	uc.publishStatus(ride)
	logger.Info("Ride requested",
		logger.String("ride_id", ride.ID.String()),
		logger.Float64("trip_m", geo.Distance(ride.Pickup, ride.Destination)))

	if err := uc.dispatcher.DispatchRide(ctx, ride); err != nil {
		logger.Error("Dispatch failed",
			logger.String("ride_id", ride.ID.String()),
			logger.Err(err))
		return nil, err
	}
	return uc.rideRepo.Get(ride.ID)
}

// GetRide returns a snapshot of one ride
func (uc *RideUC) GetRide(rideID uuid.UUID) (*models.Ride, error) {
	return uc.rideRepo.Get(rideID)
}

// ListRides returns a snapshot of every ride
func (uc *RideUC) ListRides() []*models.Ride {
	return uc.rideRepo.List()
}

// CancelRide tears a ride down from any in-flight status: the simulation
// stops, any pending offer is withdrawn and the driver goes back to the
// available pool at their current position.
func (uc *RideUC) CancelRide(rideID uuid.UUID) (*models.Ride, error) {
	ride, err := uc.rideRepo.Get(rideID)
	if err != nil {
		return nil, err
	}
	if !ride.Status.Active() {
		return nil, rides.ErrRideNotActive
	}

	uc.dispatcher.CancelDispatch(rideID)
	uc.sim.Stop(rideID)
	if ride.DriverID != "" {
		if err := uc.fleet.Release(ride.DriverID); err != nil {
			logger.Warn("Failed to release driver on cancel",
				logger.String("ride_id", rideID.String()),
				logger.String("driver_id", ride.DriverID),
				logger.Err(err))
		}
	}

	cancelled, err := uc.rideRepo.SetStatus(rideID, models.RideStatusCancelled)
	if err != nil {
		return nil, err
	}
	uc.publishStatus(cancelled)
	logger.Info("Ride cancelled",
		logger.String("ride_id", rideID.String()),
		logger.String("previous_status", string(ride.Status)))
	return cancelled, nil
}

// driverStatusMap maps driver-reported progress onto ride statuses
var driverStatusMap = map[rides.DriverRideStatus]models.RideStatus{
	rides.DriverStatusArrived:     models.RideStatusArriving,
	rides.DriverStatusPickedUp:    models.RideStatusInProgress,
	rides.DriverStatusApproaching: models.RideStatusApproachingDest,
	rides.DriverStatusCompleted:   models.RideStatusCompleted,
}

// ReportDriverStatus applies a driver-reported progress update after
// checking the reporting driver actually owns the ride.
func (uc *RideUC) ReportDriverStatus(driverID string, rideID uuid.UUID, status rides.DriverRideStatus) (*models.Ride, error) {
	target, ok := driverStatusMap[status]
	if !ok {
		return nil, fmt.Errorf("unknown driver ride status %q", status)
	}

	ride, err := uc.rideRepo.Get(rideID)
	if err != nil {
		return nil, err
	}
	if !ride.Status.Active() {
		return nil, rides.ErrRideNotActive
	}
	if ride.DriverID != driverID {
		return nil, rides.ErrNotRideDriver
	}

	if target == models.RideStatusCompleted {
		// a driver completing their own ride preempts the simulation
		uc.sim.Stop(rideID)
		return uc.completeRide(ride)
	}

	updated, err := uc.rideRepo.SetStatus(rideID, target)
	if err != nil {
		return nil, err
	}
	uc.publishStatus(updated)
	return updated, nil
}

// MarkSearching moves a freshly requested ride into the searching status
func (uc *RideUC) MarkSearching(rideID uuid.UUID) error {
	ride, err := uc.rideRepo.SetStatus(rideID, models.RideStatusSearching)
	if err != nil {
		return err
	}
	uc.publishStatus(ride)
	return nil
}

// ConfirmAssignment records the winning driver and starts the movement
// simulation for the ride.
func (uc *RideUC) ConfirmAssignment(rideID uuid.UUID, driverID string) error {
	ride, err := uc.rideRepo.Assign(rideID, driverID)
	if err != nil {
		return err
	}
	uc.publishStatus(ride)
	logger.Info("Driver assigned to ride",
		logger.String("ride_id", rideID.String()),
		logger.String("driver_id", driverID))

	driver, err := uc.fleet.Get(driverID)
	if err != nil {
		return err
	}
	return uc.sim.Start(ride, driver.Location)
}

// MarkNoDrivers terminates a ride nobody could serve
func (uc *RideUC) MarkNoDrivers(rideID uuid.UUID) error {
	ride, err := uc.rideRepo.SetStatus(rideID, models.RideStatusNoDrivers)
	if err != nil {
		return err
	}
	uc.publishStatus(ride)
	logger.Info("No drivers available for ride",
		logger.String("ride_id", rideID.String()))
	return nil
}

// completeRide finishes the trip: terminal status, driver relocation and
// earnings credit, completion event.
func (uc *RideUC) completeRide(ride *models.Ride) (*models.Ride, error) {
	earnings := uc.cfg.Fleet.BaseFare +
		uc.cfg.Fleet.RatePerKm*geo.Distance(ride.Pickup, ride.Destination)/1000.0

	if _, err := uc.fleet.Complete(ride.DriverID, earnings); err != nil {
		logger.Warn("Failed to complete driver session leg",
			logger.String("ride_id", ride.ID.String()),
			logger.String("driver_id", ride.DriverID),
			logger.Err(err))
	}

	completed, err := uc.rideRepo.SetStatus(ride.ID, models.RideStatusCompleted)
	if err != nil {
		return nil, err
	}
	// the event keeps the driver reference even though the record drops it
	uc.gw.PublishRideStatus(models.RideStatusEvent{
		RideID:    ride.ID,
		DriverID:  ride.DriverID,
		Status:    models.RideStatusCompleted,
		Timestamp: models.Now(),
	})
	logger.Info("Ride completed",
		logger.String("ride_id", ride.ID.String()),
		logger.String("driver_id", ride.DriverID),
		logger.Float64("earnings", earnings))
	return completed, nil
}

func (uc *RideUC) publishStatus(ride *models.Ride) {
	uc.gw.PublishRideStatus(models.RideStatusEvent{
		RideID:    ride.ID,
		DriverID:  ride.DriverID,
		Status:    ride.Status,
		Timestamp: models.Now(),
	})
}

// transitionFromSimulation is the simulator's path into the ride table.
// A ride the user cancelled mid-tick is left alone.
func (uc *RideUC) transitionFromSimulation(rideID uuid.UUID, status models.RideStatus) {
	ride, err := uc.rideRepo.Get(rideID)
	if err != nil || !ride.Status.Active() {
		return
	}
	if status == models.RideStatusCompleted {
		if _, err := uc.completeRide(ride); err != nil {
			logger.Error("Failed to complete simulated ride",
				logger.String("ride_id", rideID.String()),
				logger.Err(err))
		}
		return
	}
	updated, err := uc.rideRepo.SetStatus(rideID, status)
	if err != nil {
		if !errors.Is(err, rides.ErrRideNotFound) {
			logger.Error("Failed to apply simulated transition",
				logger.String("ride_id", rideID.String()),
				logger.Err(err))
		}
		return
	}
	uc.publishStatus(updated)
}
