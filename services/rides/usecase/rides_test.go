package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dimasp/angkut/internal/pkg/models"
	"github.com/dimasp/angkut/services/rides"
	"github.com/dimasp/angkut/services/rides/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGW records every published event
type fakeGW struct {
	mu        sync.Mutex
	positions []models.PositionUpdate
	statuses  []models.RideStatusEvent
	routes    []models.RidePhase
}

func (g *fakeGW) PublishPositionUpdate(update models.PositionUpdate) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.positions = append(g.positions, update)
}

func (g *fakeGW) PublishRideStatus(event models.RideStatusEvent) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.statuses = append(g.statuses, event)
}

func (g *fakeGW) PublishRoute(_ uuid.UUID, phase models.RidePhase, _ []models.Location) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.routes = append(g.routes, phase)
}

func (g *fakeGW) positionSnapshot() []models.PositionUpdate {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]models.PositionUpdate, len(g.positions))
	copy(out, g.positions)
	return out
}

func indexOf(seq []models.RideStatus, status models.RideStatus) int {
	for i, s := range seq {
		if s == status {
			return i
		}
	}
	return -1
}

func (g *fakeGW) statusSequence() []models.RideStatus {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]models.RideStatus, 0, len(g.statuses))
	for _, ev := range g.statuses {
		out = append(out, ev.Status)
	}
	return out
}

func (g *fakeGW) statusCount(status models.RideStatus) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, ev := range g.statuses {
		if ev.Status == status {
			n++
		}
	}
	return n
}

// fakeFleet is a single-driver fleet provider
type fakeFleet struct {
	mu        sync.Mutex
	driver    models.Driver
	released  bool
	completed bool
	earnings  float64
}

func (f *fakeFleet) Get(driverID string) (*models.Driver, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d := f.driver
	return &d, nil
}

func (f *fakeFleet) UpdateLocation(driverID string, loc models.Location) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.driver.Location = loc
	return nil
}

func (f *fakeFleet) Release(driverID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.released = true
	return nil
}

func (f *fakeFleet) Complete(driverID string, earnings float64) (models.Location, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.completed = true
	f.earnings = earnings
	return f.driver.Location, nil
}

func (f *fakeFleet) wasCompleted() (bool, float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.completed, f.earnings
}

func (f *fakeFleet) wasReleased() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.released
}

// fakeDispatcher records dispatch and cancel calls
type fakeDispatcher struct {
	mu         sync.Mutex
	dispatched []uuid.UUID
	cancelled  []uuid.UUID
}

func (d *fakeDispatcher) DispatchRide(_ context.Context, ride *models.Ride) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dispatched = append(d.dispatched, ride.ID)
	return nil
}

func (d *fakeDispatcher) CancelDispatch(rideID uuid.UUID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelled = append(d.cancelled, rideID)
}

func testConfig() *models.Config {
	return &models.Config{
		Dispatch: models.DispatchConfig{
			TickInterval:        5 * time.Millisecond,
			PickupPhaseDuration: 50 * time.Millisecond,
			TripPhaseDuration:   50 * time.Millisecond,
			DeparturePause:      10 * time.Millisecond,
			ArrivalThresholdM:   100,
			PolylinePoints:      20,
		},
		Fleet: models.FleetConfig{
			BaseFare:  2.5,
			RatePerKm: 1.75,
		},
	}
}

func newTestRideUC(t *testing.T) (*RideUC, *repository.RideRepository, *fakeFleet, *fakeGW, *fakeDispatcher) {
	t.Helper()
	repo := repository.NewRideRepository()
	fleet := &fakeFleet{driver: models.Driver{
		ID:       "driver-001",
		Location: models.Location{Latitude: 37.7700, Longitude: -122.4300},
	}}
	gw := &fakeGW{}
	uc := NewRideUC(testConfig(), repo, fleet, gw)
	dispatcher := &fakeDispatcher{}
	uc.SetDispatcher(dispatcher)
	return uc, repo, fleet, gw, dispatcher
}

func startAssignedRide(t *testing.T, uc *RideUC, repo *repository.RideRepository) *models.Ride {
	t.Helper()
	ride := &models.Ride{
		Pickup:      models.Location{Latitude: 37.7749, Longitude: -122.4194},
		Destination: models.Location{Latitude: 37.7849, Longitude: -122.4094},
	}
	require.NoError(t, repo.Create(ride))
	require.NoError(t, uc.ConfirmAssignment(ride.ID, "driver-001"))
	got, err := repo.Get(ride.ID)
	require.NoError(t, err)
	return got
}

func waitForStatus(t *testing.T, repo *repository.RideRepository, rideID uuid.UUID, status models.RideStatus) *models.Ride {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		ride, err := repo.Get(rideID)
		require.NoError(t, err)
		if ride.Status == status {
			return ride
		}
		time.Sleep(5 * time.Millisecond)
	}
	ride, _ := repo.Get(rideID)
	t.Fatalf("ride never reached %s, stuck at %s", status, ride.Status)
	return nil
}

func TestRequestRideValidatesCoordinates(t *testing.T) {
	uc, _, _, _, dispatcher := newTestRideUC(t)

	_, err := uc.RequestRide(context.Background(), &models.RideRequest{
		Pickup:      models.Location{Latitude: 91, Longitude: 0},
		Destination: models.Location{Latitude: 37.78, Longitude: -122.41},
	})
	assert.Error(t, err)
	assert.Empty(t, dispatcher.dispatched)
}

func TestRequestRideHandsToDispatcher(t *testing.T) {
	uc, _, _, gw, dispatcher := newTestRideUC(t)

	ride, err := uc.RequestRide(context.Background(), &models.RideRequest{
		Pickup:      models.Location{Latitude: 37.7749, Longitude: -122.4194},
		Destination: models.Location{Latitude: 37.7849, Longitude: -122.4094},
	})
	require.NoError(t, err)
	require.Len(t, dispatcher.dispatched, 1)
	assert.Equal(t, ride.ID, dispatcher.dispatched[0])
	assert.Equal(t, 1, gw.statusCount(models.RideStatusRequested))
}

func TestSimulatedRideRunsToCompletion(t *testing.T) {
	uc, repo, fleet, gw, _ := newTestRideUC(t)

	ride := startAssignedRide(t, uc, repo)
	assert.Equal(t, models.RideStatusAssigned, ride.Status)

	final := waitForStatus(t, repo, ride.ID, models.RideStatusCompleted)
	assert.Empty(t, final.DriverID)

	completed, earnings := fleet.wasCompleted()
	assert.True(t, completed)
	assert.Greater(t, earnings, 2.5) // base fare plus a nonzero per-km part

	// one near-arrival signal per phase, plus the single arrival moment
	// at the pickup point before the departure pause
	assert.Equal(t, 1, gw.statusCount(models.RideStatusArriving))
	assert.Equal(t, 1, gw.statusCount(models.RideStatusArrived))
	assert.Equal(t, 1, gw.statusCount(models.RideStatusApproachingDest))
	assert.Equal(t, 1, gw.statusCount(models.RideStatusInProgress))
	assert.Equal(t, 1, gw.statusCount(models.RideStatusCompleted))

	// arrival fires between the near-pickup signal and departure
	seq := gw.statusSequence()
	assert.Greater(t,
		indexOf(seq, models.RideStatusArrived),
		indexOf(seq, models.RideStatusArriving))
	assert.Less(t,
		indexOf(seq, models.RideStatusArrived),
		indexOf(seq, models.RideStatusInProgress))

	assert.False(t, uc.sim.Running(ride.ID))
}

func TestSimulationProgressMonotonicPerPhase(t *testing.T) {
	uc, repo, _, gw, _ := newTestRideUC(t)

	ride := startAssignedRide(t, uc, repo)
	waitForStatus(t, repo, ride.ID, models.RideStatusCompleted)

	positions := gw.positionSnapshot()
	require.NotEmpty(t, positions)

	last := map[models.RidePhase]float64{}
	for _, p := range positions {
		assert.GreaterOrEqual(t, p.Progress, last[p.Phase],
			"progress went backwards within phase %s", p.Phase)
		last[p.Phase] = p.Progress
	}
	assert.InDelta(t, 1.0, last[models.PhaseToPickup], 1e-9)
	assert.InDelta(t, 1.0, last[models.PhaseToDestination], 1e-9)

	// the final tick of each phase lands exactly on the phase endpoint
	for _, p := range positions {
		if p.Progress == 1.0 && p.Phase == models.PhaseToPickup {
			assert.InDelta(t, ride.Pickup.Latitude, p.Location.Latitude, 1e-9)
			assert.InDelta(t, ride.Pickup.Longitude, p.Location.Longitude, 1e-9)
		}
		if p.Progress == 1.0 && p.Phase == models.PhaseToDestination {
			assert.InDelta(t, ride.Destination.Latitude, p.Location.Latitude, 1e-9)
			assert.InDelta(t, ride.Destination.Longitude, p.Location.Longitude, 1e-9)
		}
	}
}

func TestSimulationPublishesRoutePerPhase(t *testing.T) {
	uc, repo, _, gw, _ := newTestRideUC(t)

	ride := startAssignedRide(t, uc, repo)
	waitForStatus(t, repo, ride.ID, models.RideStatusCompleted)

	gw.mu.Lock()
	defer gw.mu.Unlock()
	require.Len(t, gw.routes, 2)
	assert.Equal(t, models.PhaseToPickup, gw.routes[0])
	assert.Equal(t, models.PhaseToDestination, gw.routes[1])
}

func TestCancelMidSimulation(t *testing.T) {
	uc, repo, fleet, gw, dispatcher := newTestRideUC(t)
	uc.cfg.Dispatch.TripPhaseDuration = 10 * time.Second
	uc.cfg.Dispatch.PickupPhaseDuration = 10 * time.Second

	ride := startAssignedRide(t, uc, repo)

	// let a few ticks land first
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && len(gw.positionSnapshot()) < 3 {
		time.Sleep(5 * time.Millisecond)
	}
	require.GreaterOrEqual(t, len(gw.positionSnapshot()), 3)

	cancelled, err := uc.CancelRide(ride.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RideStatusCancelled, cancelled.Status)
	assert.Empty(t, cancelled.DriverID)
	assert.True(t, fleet.wasReleased())
	assert.Contains(t, dispatcher.cancelled, ride.ID)
	assert.False(t, uc.sim.Running(ride.ID))

	// no completion, and no more movement after the goroutine winds down
	time.Sleep(30 * time.Millisecond)
	n := len(gw.positionSnapshot())
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, n, len(gw.positionSnapshot()))
	done, _ := fleet.wasCompleted()
	assert.False(t, done)
}

func TestCancelTerminalRideFails(t *testing.T) {
	uc, repo, _, _, _ := newTestRideUC(t)

	ride := startAssignedRide(t, uc, repo)
	waitForStatus(t, repo, ride.ID, models.RideStatusCompleted)

	_, err := uc.CancelRide(ride.ID)
	assert.ErrorIs(t, err, rides.ErrRideNotActive)
}

func TestDuplicateSimulationRejected(t *testing.T) {
	uc, repo, _, _, _ := newTestRideUC(t)
	uc.cfg.Dispatch.PickupPhaseDuration = 10 * time.Second

	ride := startAssignedRide(t, uc, repo)
	defer uc.sim.Stop(ride.ID)

	err := uc.sim.Start(ride, models.Location{Latitude: 37.77, Longitude: -122.43})
	assert.ErrorIs(t, err, ErrSimulationExists)
}

func TestReportDriverStatusMapping(t *testing.T) {
	uc, repo, _, _, _ := newTestRideUC(t)
	uc.cfg.Dispatch.PickupPhaseDuration = 10 * time.Second

	ride := startAssignedRide(t, uc, repo)
	defer uc.sim.Stop(ride.ID)

	got, err := uc.ReportDriverStatus("driver-001", ride.ID, rides.DriverStatusArrived)
	require.NoError(t, err)
	assert.Equal(t, models.RideStatusArriving, got.Status)

	got, err = uc.ReportDriverStatus("driver-001", ride.ID, rides.DriverStatusPickedUp)
	require.NoError(t, err)
	assert.Equal(t, models.RideStatusInProgress, got.Status)
}

func TestReportDriverStatusWrongDriver(t *testing.T) {
	uc, repo, _, _, _ := newTestRideUC(t)
	uc.cfg.Dispatch.PickupPhaseDuration = 10 * time.Second

	ride := startAssignedRide(t, uc, repo)
	defer uc.sim.Stop(ride.ID)

	_, err := uc.ReportDriverStatus("driver-002", ride.ID, rides.DriverStatusArrived)
	assert.ErrorIs(t, err, rides.ErrNotRideDriver)
}

func TestDriverReportedCompletionStopsSimulation(t *testing.T) {
	uc, repo, fleet, _, _ := newTestRideUC(t)
	uc.cfg.Dispatch.PickupPhaseDuration = 10 * time.Second

	ride := startAssignedRide(t, uc, repo)

	got, err := uc.ReportDriverStatus("driver-001", ride.ID, rides.DriverStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.RideStatusCompleted, got.Status)
	assert.False(t, uc.sim.Running(ride.ID))

	done, earnings := fleet.wasCompleted()
	assert.True(t, done)
	assert.Greater(t, earnings, 0.0)
}
