package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/dimasp/angkut/internal/pkg/geo"
	"github.com/dimasp/angkut/internal/pkg/logger"
	"github.com/dimasp/angkut/internal/pkg/models"
	"github.com/dimasp/angkut/services/fleet"
	"github.com/dimasp/angkut/services/match"
	"github.com/google/uuid"
)

// dispatchState holds the cancellation handles for one ride's dispatch
// phase: the offer-expiry timer and the context covering any fallback
// search.
type dispatchState struct {
	timer  *time.Timer
	ctx    context.Context
	cancel context.CancelFunc
}

// DispatchRide runs the offer/fallback flow for a freshly requested ride.
// An online driver near the pickup gets a time-boxed offer; otherwise the
// ride goes straight to the simulated-pool fallback.
func (uc *MatchUC) DispatchRide(ctx context.Context, ride *models.Ride) error {
	if err := uc.rideSvc.MarkSearching(ride.ID); err != nil {
		return err
	}

	dispatchCtx, cancel := context.WithCancel(context.Background())
	uc.mu.Lock()
	uc.timers[ride.ID] = &dispatchState{ctx: dispatchCtx, cancel: cancel}
	uc.mu.Unlock()

	for _, candidate := range uc.findNearestOnline(ride.Pickup) {
		offer := uc.buildOffer(ride, candidate)
		if err := uc.offerRepo.Create(offer); err != nil {
			if errors.Is(err, match.ErrOfferExists) {
				// this driver is already spoken for, try the next one
				continue
			}
			uc.clearDispatch(ride.ID)
			return err
		}

		uc.startExpiryTimer(ride.ID)

		logger.Info("Offer created",
			logger.String("ride_id", ride.ID.String()),
			logger.String("driver_id", candidate.Driver.ID),
			logger.Float64("distance_m", candidate.DistanceM),
			logger.Duration("expiry", uc.cfg.Dispatch.OfferExpiry))
		return nil
	}

	logger.Info("No online driver for ride, falling back to pool",
		logger.String("ride_id", ride.ID.String()))
	uc.fallback(ride.ID, ride.Pickup)
	return nil
}

func (uc *MatchUC) buildOffer(ride *models.Ride, candidate match.Result) *models.PendingOffer {
	now := models.Now()
	tripKm := geo.Distance(ride.Pickup, ride.Destination) / 1000.0
	return &models.PendingOffer{
		RideID:            ride.ID,
		DriverID:          candidate.Driver.ID,
		Pickup:            ride.Pickup,
		Destination:       ride.Destination,
		DistanceM:         candidate.DistanceM,
		EstimatedEarnings: uc.cfg.Fleet.BaseFare + uc.cfg.Fleet.RatePerKm*tripKm,
		OfferedAt:         now,
		ExpiresAt:         now.Add(uc.cfg.Dispatch.OfferExpiry),
	}
}

// startExpiryTimer arms the expiry side of the offer race
func (uc *MatchUC) startExpiryTimer(rideID uuid.UUID) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if st, ok := uc.timers[rideID]; ok {
		st.timer = time.AfterFunc(uc.cfg.Dispatch.OfferExpiry, func() {
			uc.expireOffer(rideID)
		})
	}
}

// stopTimer stops the expiry timer without tearing down the dispatch state
func (uc *MatchUC) stopTimer(rideID uuid.UUID) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if st, ok := uc.timers[rideID]; ok && st.timer != nil {
		st.timer.Stop()
		st.timer = nil
	}
}

// clearDispatch removes the ride's dispatch state entirely
func (uc *MatchUC) clearDispatch(rideID uuid.UUID) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if st, ok := uc.timers[rideID]; ok {
		if st.timer != nil {
			st.timer.Stop()
		}
		st.cancel()
		delete(uc.timers, rideID)
	}
}

// dispatchContext returns the context covering the ride's fallback search
func (uc *MatchUC) dispatchContext(rideID uuid.UUID) context.Context {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if st, ok := uc.timers[rideID]; ok {
		return st.ctx
	}
	return context.Background()
}

// AcceptOffer resolves the ride's offer in the driver's favor. The take on
// the offer store is the race's single decision point.
func (uc *MatchUC) AcceptOffer(driverID string, rideID uuid.UUID) error {
	offer, ok := uc.offerRepo.Take(rideID, driverID)
	if !ok {
		return match.ErrOfferNotFound
	}
	uc.stopTimer(rideID)

	if err := uc.fleet.Assign(offer.DriverID, rideID); err != nil {
		if errors.Is(err, fleet.ErrDriverUnavailable) {
			// the driver accepted but got bound elsewhere in between;
			// treat like an expired offer
			logger.Warn("Accepting driver no longer assignable, falling back",
				logger.String("ride_id", rideID.String()),
				logger.String("driver_id", driverID))
			uc.fallback(rideID, offer.Pickup)
			return match.ErrOfferNotFound
		}
		return err
	}

	uc.clearDispatch(rideID)

	if err := uc.rideSvc.ConfirmAssignment(rideID, offer.DriverID); err != nil {
		// the ride died between the take and the confirmation, most
		// likely a cancellation; unbind the driver or it stays lost
		logger.Error("Failed to confirm assignment, releasing driver",
			logger.String("ride_id", rideID.String()),
			logger.String("driver_id", offer.DriverID),
			logger.Err(err))
		if rerr := uc.fleet.Release(offer.DriverID); rerr != nil {
			logger.Error("Failed to release driver",
				logger.String("driver_id", offer.DriverID),
				logger.Err(rerr))
		}
		return err
	}

	logger.Info("Offer accepted",
		logger.String("ride_id", rideID.String()),
		logger.String("driver_id", driverID))
	return nil
}

// RejectOffer resolves the offer as rejected and falls back immediately,
// without waiting for the expiry timer.
func (uc *MatchUC) RejectOffer(driverID string, rideID uuid.UUID) error {
	offer, ok := uc.offerRepo.Take(rideID, driverID)
	if !ok {
		return match.ErrOfferNotFound
	}
	uc.stopTimer(rideID)

	logger.Info("Offer rejected",
		logger.String("ride_id", rideID.String()),
		logger.String("driver_id", driverID))

	uc.fallback(rideID, offer.Pickup)
	return nil
}

// expireOffer fires from the expiry timer. Losing the take means the offer
// was already resolved and the timer is a no-op.
func (uc *MatchUC) expireOffer(rideID uuid.UUID) {
	offer, ok := uc.offerRepo.Take(rideID, "")
	if !ok {
		return
	}

	logger.Info("Offer expired",
		logger.String("ride_id", rideID.String()),
		logger.String("driver_id", offer.DriverID))

	uc.fallback(rideID, offer.Pickup)
}

// GetOfferForDriver returns the driver's pending offer, if any
func (uc *MatchUC) GetOfferForDriver(driverID string) (*models.PendingOffer, bool) {
	return uc.offerRepo.GetByDriver(driverID)
}

// CancelDispatch withdraws any pending offer and stops the expiry timer
// and fallback search (ride cancellation).
func (uc *MatchUC) CancelDispatch(rideID uuid.UUID) {
	if offer, ok := uc.offerRepo.Take(rideID, ""); ok {
		logger.Info("Pending offer withdrawn",
			logger.String("ride_id", rideID.String()),
			logger.String("driver_id", offer.DriverID))
	}
	uc.clearDispatch(rideID)
}

// fallback matches the ride against the full simulated pool after the
// artificial search delay. A rejected or expired offer always ends here or
// in no_drivers_available - never in a stuck ride.
func (uc *MatchUC) fallback(rideID uuid.UUID, pickup models.Location) {
	ctx := uc.dispatchContext(rideID)
	uc.matchWithDelay(ctx, pickup, func(ranked []match.Result) {
		for _, candidate := range ranked {
			err := uc.fleet.Assign(candidate.Driver.ID, rideID)
			if err == nil {
				uc.clearDispatch(rideID)
				if err := uc.rideSvc.ConfirmAssignment(rideID, candidate.Driver.ID); err != nil {
					logger.Error("Failed to confirm fallback assignment, releasing driver",
						logger.String("ride_id", rideID.String()),
						logger.String("driver_id", candidate.Driver.ID),
						logger.Err(err))
					if rerr := uc.fleet.Release(candidate.Driver.ID); rerr != nil {
						logger.Error("Failed to release driver",
							logger.String("driver_id", candidate.Driver.ID),
							logger.Err(rerr))
					}
				}
				return
			}
			if errors.Is(err, fleet.ErrDriverUnavailable) {
				continue
			}
			logger.Error("Fallback assignment failed",
				logger.String("ride_id", rideID.String()),
				logger.String("driver_id", candidate.Driver.ID),
				logger.Err(err))
		}

		uc.clearDispatch(rideID)
		if err := uc.rideSvc.MarkNoDrivers(rideID); err != nil {
			logger.Error("Failed to mark ride as no drivers available",
				logger.String("ride_id", rideID.String()),
				logger.Err(err))
		}
	})
}
