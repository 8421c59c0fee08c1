package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/dimasp/angkut/internal/pkg/logger"
	"github.com/dimasp/angkut/internal/pkg/models"
	"github.com/dimasp/angkut/services/driverapp"
	"github.com/dimasp/angkut/services/rides"
	"github.com/google/uuid"
)

// transitionLocked applies one state machine step. Invalid transitions are
// logged and leave the state untouched. Callers hold f.mu.
func (f *FlowController) transitionLocked(next driverapp.DriverState) error {
	applied, err := driverapp.Transition(f.state, next)
	if err != nil {
		logger.Warn("Rejected driver state transition",
			logger.String("from", string(f.state.Kind())),
			logger.String("to", string(next.Kind())))
		return err
	}
	f.state = applied
	return nil
}

func (f *FlowController) transition(next driverapp.DriverState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.transitionLocked(next)
}

// Login starts a driver session and the background activities
func (f *FlowController) Login(ctx context.Context, driverID string, loc models.Location) error {
	if err := f.transition(driverapp.LoggingIn{DriverID: driverID}); err != nil {
		return err
	}

	resp, err := f.gw.Login(ctx, driverID, loc)
	if err != nil {
		f.transition(driverapp.ErrorState{
			Message:  fmt.Sprintf("login failed: %v", err),
			Previous: driverapp.Offline{},
		})
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.transitionLocked(driverapp.Online{Driver: resp.Driver, Stats: resp.Session}); err != nil {
		return err
	}
	f.driverID = driverID
	gen := f.generation

	sessionCtx, cancel := context.WithCancel(context.Background())
	f.cancelFns = append(f.cancelFns, cancel)
	go f.statsLoop(sessionCtx, gen, driverID)
	go f.offerLoop(sessionCtx, gen, driverID)

	logger.Info("Driver session started",
		logger.String("driver_id", driverID))
	return nil
}

// Logout cancels every background activity, then ends the session. The
// cancellation comes first so nothing fires against the cleared session.
// Logging out mid-ride is rejected; the trip has to finish or fail first.
func (f *FlowController) Logout(ctx context.Context) (*models.SessionSummary, error) {
	f.mu.Lock()
	if f.state.Kind() == driverapp.KindOffline {
		f.mu.Unlock()
		return nil, fmt.Errorf("not logged in")
	}
	if !driverapp.CanTransition(f.state.Kind(), driverapp.KindOffline) {
		kind := f.state.Kind()
		f.mu.Unlock()
		return nil, fmt.Errorf("cannot log out while %s: %w", kind, driverapp.ErrInvalidTransition)
	}
	driverID := f.driverID
	f.cancelSessionLocked()
	f.mu.Unlock()

	summary, err := f.gw.Logout(ctx, driverID)
	if err != nil {
		logger.Warn("Logout call failed, going offline anyway",
			logger.String("driver_id", driverID),
			logger.Err(err))
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if terr := f.transitionLocked(driverapp.Offline{}); terr != nil {
		return summary, terr
	}
	f.driverID = ""
	logger.Info("Driver session ended",
		logger.String("driver_id", driverID))
	return summary, err
}

// cancelSessionLocked stops all three activities and bumps the session
// generation so anything already in flight no-ops.
func (f *FlowController) cancelSessionLocked() {
	f.generation++
	for _, cancel := range f.cancelFns {
		cancel()
	}
	f.cancelFns = nil
	if f.expiry != nil {
		f.expiry.Stop()
		f.expiry = nil
	}
}

// sameSessionLocked reports whether a captured generation still matches
func (f *FlowController) sameSessionLocked(gen uint64) bool {
	return f.generation == gen
}

// statsLoop periodically refreshes aggregate stats, merging them into the
// current state without changing its variant.
func (f *FlowController) statsLoop(ctx context.Context, gen uint64, driverID string) {
	ticker := time.NewTicker(f.cfg.DriverApp.StatsRefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		resp, err := f.gw.GetStats(ctx, driverID)
		if err != nil {
			logger.Debug("Stats refresh failed",
				logger.Err(err))
			continue
		}

		f.mu.Lock()
		if f.sameSessionLocked(gen) {
			f.state = withStats(f.state, resp.Stats)
		}
		f.mu.Unlock()
	}
}

// withStats rebuilds the state with a fresh stats payload, same variant
func withStats(state driverapp.DriverState, stats models.DriverStats) driverapp.DriverState {
	switch s := state.(type) {
	case driverapp.Online:
		s.Stats = stats
		return s
	case driverapp.RideOffered:
		s.Stats = stats
		return s
	case driverapp.HeadingToPickup:
		s.Stats = stats
		return s
	case driverapp.ArrivedAtPickup:
		s.Stats = stats
		return s
	case driverapp.RideInProgress:
		s.Stats = stats
		return s
	case driverapp.ApproachingDestination:
		s.Stats = stats
		return s
	case driverapp.RideCompleted:
		s.Stats = stats
		return s
	}
	return state
}

// offerLoop polls for a pending offer while the driver is idle online.
// Polling pauses implicitly in every other state.
func (f *FlowController) offerLoop(ctx context.Context, gen uint64, driverID string) {
	ticker := time.NewTicker(f.cfg.DriverApp.OfferPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if f.State().Kind() != driverapp.KindOnline {
			continue
		}

		offer, ok, err := f.gw.GetOffer(ctx, driverID)
		if err != nil {
			logger.Debug("Offer poll failed",
				logger.Err(err))
			continue
		}
		if !ok {
			continue
		}

		f.mu.Lock()
		if !f.sameSessionLocked(gen) || f.state.Kind() != driverapp.KindOnline {
			f.mu.Unlock()
			continue
		}
		online := f.state.(driverapp.Online)
		if err := f.transitionLocked(driverapp.RideOffered{
			Driver: online.Driver,
			Stats:  online.Stats,
			Offer:  *offer,
		}); err == nil {
			f.armExpiryLocked(gen, *offer)
			logger.Info("Offer received",
				logger.String("ride_id", offer.RideID.String()),
				logger.Float64("estimated_earnings", offer.EstimatedEarnings))
		}
		f.mu.Unlock()
	}
}

// armExpiryLocked starts the one-shot countdown for the offer on display
func (f *FlowController) armExpiryLocked(gen uint64, offer models.PendingOffer) {
	remaining := offer.RemainingTime(models.Now())
	f.expiry = time.AfterFunc(remaining, func() {
		f.expireOffer(gen, offer)
	})
}

// expireOffer fires when the driver let the offer run out. The backend is
// notified best-effort; the local transition back to online never waits on
// that call succeeding.
func (f *FlowController) expireOffer(gen uint64, offer models.PendingOffer) {
	f.mu.Lock()
	if !f.sameSessionLocked(gen) || f.state.Kind() != driverapp.KindRideOffered {
		f.mu.Unlock()
		return
	}
	offered := f.state.(driverapp.RideOffered)
	f.transitionLocked(driverapp.Online{Driver: offered.Driver, Stats: offered.Stats})
	f.expiry = nil
	driverID := f.driverID
	f.mu.Unlock()

	logger.Info("Offer expired locally",
		logger.String("ride_id", offer.RideID.String()))

	ctx, cancel := context.WithTimeout(context.Background(), f.cfg.DriverApp.HTTPTimeout)
	defer cancel()
	if err := f.gw.RejectOffer(ctx, driverID, offer.RideID); err != nil {
		logger.Warn("Failed to notify backend of offer expiry",
			logger.String("ride_id", offer.RideID.String()),
			logger.Err(err))
	}
}

// AcceptOffer accepts the offer on display and starts the pickup leg
func (f *FlowController) AcceptOffer(ctx context.Context) error {
	f.mu.Lock()
	offered, ok := f.state.(driverapp.RideOffered)
	if !ok {
		f.mu.Unlock()
		return fmt.Errorf("no offer on display")
	}
	f.stopExpiryLocked()
	driverID := f.driverID
	f.mu.Unlock()

	if err := f.gw.AcceptOffer(ctx, driverID, offered.Offer.RideID); err != nil {
		// the offer may have expired server-side while the driver decided
		f.transition(driverapp.Online{Driver: offered.Driver, Stats: offered.Stats})
		return err
	}
	return f.transition(driverapp.HeadingToPickup{ActiveRide: driverapp.ActiveRide{
		Driver: offered.Driver,
		Stats:  offered.Stats,
		Offer:  offered.Offer,
	}})
}

// RejectOffer declines the offer on display. A failed backend call is
// logged; the driver still goes back to polling.
func (f *FlowController) RejectOffer(ctx context.Context) error {
	f.mu.Lock()
	offered, ok := f.state.(driverapp.RideOffered)
	if !ok {
		f.mu.Unlock()
		return fmt.Errorf("no offer on display")
	}
	f.stopExpiryLocked()
	driverID := f.driverID
	f.mu.Unlock()

	if err := f.gw.RejectOffer(ctx, driverID, offered.Offer.RideID); err != nil {
		logger.Warn("Failed to notify backend of rejection",
			logger.String("ride_id", offered.Offer.RideID.String()),
			logger.Err(err))
	}
	return f.transition(driverapp.Online{Driver: offered.Driver, Stats: offered.Stats})
}

func (f *FlowController) stopExpiryLocked() {
	if f.expiry != nil {
		f.expiry.Stop()
		f.expiry = nil
	}
}

// ReportRideStatus reports progress to the backend and advances the local
// state accordingly.
func (f *FlowController) ReportRideStatus(ctx context.Context, rideID uuid.UUID, status rides.DriverRideStatus) error {
	f.mu.Lock()
	driverID := f.driverID
	f.mu.Unlock()

	if err := f.gw.ReportRideStatus(ctx, driverID, rideID, status); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	ride, ok := carriedRide(f.state)
	if !ok {
		return fmt.Errorf("no active ride in state %s", f.state.Kind())
	}
	switch status {
	case rides.DriverStatusArrived:
		return f.transitionLocked(driverapp.ArrivedAtPickup{ActiveRide: ride})
	case rides.DriverStatusPickedUp:
		return f.transitionLocked(driverapp.RideInProgress{ActiveRide: ride})
	case rides.DriverStatusApproaching:
		return f.transitionLocked(driverapp.ApproachingDestination{ActiveRide: ride})
	case rides.DriverStatusCompleted:
		return f.transitionLocked(driverapp.RideCompleted{
			Driver:   ride.Driver,
			Stats:    ride.Stats,
			Earnings: ride.Offer.EstimatedEarnings,
		})
	}
	return fmt.Errorf("unknown ride status %q", status)
}

// carriedRide extracts the shared ride payload from any on-ride state
func carriedRide(state driverapp.DriverState) (driverapp.ActiveRide, bool) {
	switch s := state.(type) {
	case driverapp.HeadingToPickup:
		return s.ActiveRide, true
	case driverapp.ArrivedAtPickup:
		return s.ActiveRide, true
	case driverapp.RideInProgress:
		return s.ActiveRide, true
	case driverapp.ApproachingDestination:
		return s.ActiveRide, true
	}
	return driverapp.ActiveRide{}, false
}

// Resume dismisses the trip summary and goes back to idle polling
func (f *FlowController) Resume() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	done, ok := f.state.(driverapp.RideCompleted)
	if !ok {
		return fmt.Errorf("no trip summary on display")
	}
	return f.transitionLocked(driverapp.Online{Driver: done.Driver, Stats: done.Stats})
}

// ReportLocation pushes the driver's position. Transient failures are
// swallowed after logging, this path is never critical.
func (f *FlowController) ReportLocation(ctx context.Context, loc models.Location) {
	f.mu.Lock()
	driverID := f.driverID
	f.mu.Unlock()
	if driverID == "" {
		return
	}
	if err := f.gw.UpdateLocation(ctx, driverID, loc); err != nil {
		logger.Debug("Location report failed",
			logger.Err(err))
	}
}
