package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dimasp/angkut/internal/pkg/models"
	"github.com/dimasp/angkut/services/driverapp"
	"github.com/dimasp/angkut/services/driverapp/mocks"
	"github.com/dimasp/angkut/services/rides"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flowTestConfig() *models.Config {
	return &models.Config{
		DriverApp: models.DriverAppConfig{
			OfferPollInterval:    10 * time.Millisecond,
			StatsRefreshInterval: time.Hour, // keep stats quiet unless a test wants them
			HTTPTimeout:          100 * time.Millisecond,
		},
	}
}

func testLoginResponse() *driverapp.LoginResponse {
	return &driverapp.LoginResponse{
		Driver:  models.Driver{ID: "driver-001", Name: "Budi"},
		Session: models.DriverStats{DriverID: "driver-001", RidesCompleted: 3},
	}
}

func offerExpiring(in time.Duration) *models.PendingOffer {
	now := models.Now()
	return &models.PendingOffer{
		RideID:            uuid.New(),
		DriverID:          "driver-001",
		EstimatedEarnings: 5.25,
		OfferedAt:         now,
		ExpiresAt:         now.Add(in),
	}
}

// stopSession tears the background activities down between tests
func stopSession(f *FlowController) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelSessionLocked()
}

func waitForKind(t *testing.T, f *FlowController, kind driverapp.StateKind) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if f.State().Kind() == kind {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("state never reached %s, stuck at %s", kind, f.State().Kind())
}

func TestLoginGoesOnline(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	gw := mocks.NewMockDriverGateway(ctrl)
	f := NewFlowController(flowTestConfig(), gw)

	gw.EXPECT().Login(gomock.Any(), "driver-001", gomock.Any()).Return(testLoginResponse(), nil)
	gw.EXPECT().GetOffer(gomock.Any(), "driver-001").Return(nil, false, nil).AnyTimes()
	gw.EXPECT().Logout(gomock.Any(), "driver-001").Return(&models.SessionSummary{DriverID: "driver-001"}, nil)

	require.NoError(t, f.Login(context.Background(), "driver-001", models.Location{Latitude: 37.77, Longitude: -122.42}))
	state := f.State()
	require.Equal(t, driverapp.KindOnline, state.Kind())
	assert.Equal(t, 3, state.(driverapp.Online).Stats.RidesCompleted)

	summary, err := f.Logout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "driver-001", summary.DriverID)
	assert.Equal(t, driverapp.KindOffline, f.State().Kind())
}

func TestLoginFailureEntersErrorState(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	gw := mocks.NewMockDriverGateway(ctrl)
	f := NewFlowController(flowTestConfig(), gw)

	gw.EXPECT().Login(gomock.Any(), "driver-999", gomock.Any()).Return(nil, errors.New("request failed: Unknown driver"))

	err := f.Login(context.Background(), "driver-999", models.Location{})
	require.Error(t, err)
	assert.Equal(t, driverapp.KindError, f.State().Kind())
}

func TestOfferPollingShowsOffer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	gw := mocks.NewMockDriverGateway(ctrl)
	f := NewFlowController(flowTestConfig(), gw)

	offer := offerExpiring(time.Hour)
	gw.EXPECT().Login(gomock.Any(), "driver-001", gomock.Any()).Return(testLoginResponse(), nil)
	gw.EXPECT().GetOffer(gomock.Any(), "driver-001").Return(offer, true, nil).AnyTimes()

	require.NoError(t, f.Login(context.Background(), "driver-001", models.Location{}))
	waitForKind(t, f, driverapp.KindRideOffered)

	state := f.State().(driverapp.RideOffered)
	assert.Equal(t, offer.RideID, state.Offer.RideID)

	// polling is paused while the offer is on display: even though the
	// gateway keeps returning an offer, the state holds steady
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, driverapp.KindRideOffered, f.State().Kind())

	stopSession(f)
}

func TestAcceptOfferStartsRide(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	gw := mocks.NewMockDriverGateway(ctrl)
	f := NewFlowController(flowTestConfig(), gw)

	offer := offerExpiring(time.Hour)
	gw.EXPECT().Login(gomock.Any(), "driver-001", gomock.Any()).Return(testLoginResponse(), nil)
	gw.EXPECT().GetOffer(gomock.Any(), "driver-001").Return(offer, true, nil).AnyTimes()
	gw.EXPECT().AcceptOffer(gomock.Any(), "driver-001", offer.RideID).Return(nil)

	require.NoError(t, f.Login(context.Background(), "driver-001", models.Location{}))
	waitForKind(t, f, driverapp.KindRideOffered)

	require.NoError(t, f.AcceptOffer(context.Background()))
	state := f.State()
	require.Equal(t, driverapp.KindHeadingToPickup, state.Kind())
	assert.Equal(t, offer.RideID, state.(driverapp.HeadingToPickup).Offer.RideID)

	stopSession(f)
}

func TestAcceptFailureFallsBackOnline(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	gw := mocks.NewMockDriverGateway(ctrl)
	f := NewFlowController(flowTestConfig(), gw)

	offer := offerExpiring(time.Hour)
	gw.EXPECT().Login(gomock.Any(), "driver-001", gomock.Any()).Return(testLoginResponse(), nil)
	gw.EXPECT().GetOffer(gomock.Any(), "driver-001").Return(offer, true, nil).AnyTimes()
	gw.EXPECT().AcceptOffer(gomock.Any(), "driver-001", offer.RideID).
		Return(errors.New("request failed: No pending offer for this ride"))

	require.NoError(t, f.Login(context.Background(), "driver-001", models.Location{}))
	waitForKind(t, f, driverapp.KindRideOffered)

	assert.Error(t, f.AcceptOffer(context.Background()))
	assert.Equal(t, driverapp.KindOnline, f.State().Kind())

	stopSession(f)
}

func TestOfferExpiryReturnsOnlineAndNotifies(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	gw := mocks.NewMockDriverGateway(ctrl)
	f := NewFlowController(flowTestConfig(), gw)

	var notified atomic.Bool
	offer := offerExpiring(30 * time.Millisecond)
	gw.EXPECT().Login(gomock.Any(), "driver-001", gomock.Any()).Return(testLoginResponse(), nil)
	gw.EXPECT().GetOffer(gomock.Any(), "driver-001").Return(offer, true, nil).AnyTimes()
	gw.EXPECT().RejectOffer(gomock.Any(), "driver-001", offer.RideID).
		DoAndReturn(func(context.Context, string, uuid.UUID) error {
			notified.Store(true)
			return nil
		}).AnyTimes()

	require.NoError(t, f.Login(context.Background(), "driver-001", models.Location{}))
	waitForKind(t, f, driverapp.KindRideOffered)
	waitForKind(t, f, driverapp.KindOnline)

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) && !notified.Load() {
		time.Sleep(2 * time.Millisecond)
	}
	assert.True(t, notified.Load())

	stopSession(f)
}

func TestExpiryNotifyFailureDoesNotBlockTransition(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	gw := mocks.NewMockDriverGateway(ctrl)
	f := NewFlowController(flowTestConfig(), gw)

	offer := offerExpiring(20 * time.Millisecond)
	gw.EXPECT().Login(gomock.Any(), "driver-001", gomock.Any()).Return(testLoginResponse(), nil)
	gw.EXPECT().GetOffer(gomock.Any(), "driver-001").Return(offer, true, nil).AnyTimes()
	gw.EXPECT().RejectOffer(gomock.Any(), "driver-001", offer.RideID).
		Return(errors.New("connection refused")).AnyTimes()

	require.NoError(t, f.Login(context.Background(), "driver-001", models.Location{}))
	waitForKind(t, f, driverapp.KindRideOffered)
	waitForKind(t, f, driverapp.KindOnline)

	stopSession(f)
}

func TestLogoutCancelsPendingExpiry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	gw := mocks.NewMockDriverGateway(ctrl)
	f := NewFlowController(flowTestConfig(), gw)

	offer := offerExpiring(60 * time.Millisecond)
	gw.EXPECT().Login(gomock.Any(), "driver-001", gomock.Any()).Return(testLoginResponse(), nil)
	gw.EXPECT().GetOffer(gomock.Any(), "driver-001").Return(offer, true, nil).AnyTimes()
	gw.EXPECT().Logout(gomock.Any(), "driver-001").Return(&models.SessionSummary{}, nil)
	// the countdown must not notify after logout killed the session

	require.NoError(t, f.Login(context.Background(), "driver-001", models.Location{}))
	waitForKind(t, f, driverapp.KindRideOffered)

	_, err := f.Logout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, driverapp.KindOffline, f.State().Kind())

	// a late firing, were one to slip through, must leave offline alone
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, driverapp.KindOffline, f.State().Kind())
}

func TestRideProgressTransitions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	gw := mocks.NewMockDriverGateway(ctrl)
	f := NewFlowController(flowTestConfig(), gw)

	offer := offerExpiring(time.Hour)
	gw.EXPECT().Login(gomock.Any(), "driver-001", gomock.Any()).Return(testLoginResponse(), nil)
	gw.EXPECT().GetOffer(gomock.Any(), "driver-001").Return(offer, true, nil).AnyTimes()
	gw.EXPECT().AcceptOffer(gomock.Any(), "driver-001", offer.RideID).Return(nil)
	gw.EXPECT().ReportRideStatus(gomock.Any(), "driver-001", offer.RideID, gomock.Any()).Return(nil).Times(4)

	require.NoError(t, f.Login(context.Background(), "driver-001", models.Location{}))
	waitForKind(t, f, driverapp.KindRideOffered)
	require.NoError(t, f.AcceptOffer(context.Background()))

	ctx := context.Background()
	require.NoError(t, f.ReportRideStatus(ctx, offer.RideID, rides.DriverStatusArrived))
	assert.Equal(t, driverapp.KindArrivedAtPickup, f.State().Kind())

	require.NoError(t, f.ReportRideStatus(ctx, offer.RideID, rides.DriverStatusPickedUp))
	assert.Equal(t, driverapp.KindRideInProgress, f.State().Kind())

	require.NoError(t, f.ReportRideStatus(ctx, offer.RideID, rides.DriverStatusApproaching))
	assert.Equal(t, driverapp.KindApproachingDestination, f.State().Kind())

	require.NoError(t, f.ReportRideStatus(ctx, offer.RideID, rides.DriverStatusCompleted))
	state := f.State()
	require.Equal(t, driverapp.KindRideCompleted, state.Kind())
	assert.InDelta(t, offer.EstimatedEarnings, state.(driverapp.RideCompleted).Earnings, 1e-9)

	require.NoError(t, f.Resume())
	assert.Equal(t, driverapp.KindOnline, f.State().Kind())

	stopSession(f)
}

func TestLogoutRejectedMidRide(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	gw := mocks.NewMockDriverGateway(ctrl)
	f := NewFlowController(flowTestConfig(), gw)

	offer := offerExpiring(time.Hour)
	gw.EXPECT().Login(gomock.Any(), "driver-001", gomock.Any()).Return(testLoginResponse(), nil)
	gw.EXPECT().GetOffer(gomock.Any(), "driver-001").Return(offer, true, nil).AnyTimes()
	gw.EXPECT().AcceptOffer(gomock.Any(), "driver-001", offer.RideID).Return(nil)

	require.NoError(t, f.Login(context.Background(), "driver-001", models.Location{}))
	waitForKind(t, f, driverapp.KindRideOffered)
	require.NoError(t, f.AcceptOffer(context.Background()))
	require.Equal(t, driverapp.KindHeadingToPickup, f.State().Kind())

	// no Logout expectation on the gateway: the call must never go out
	_, err := f.Logout(context.Background())
	require.ErrorIs(t, err, driverapp.ErrInvalidTransition)
	assert.Equal(t, driverapp.KindHeadingToPickup, f.State().Kind())

	stopSession(f)
}

func TestStatsRefreshKeepsVariant(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	gw := mocks.NewMockDriverGateway(ctrl)
	cfg := flowTestConfig()
	cfg.DriverApp.StatsRefreshInterval = 10 * time.Millisecond
	f := NewFlowController(cfg, gw)

	gw.EXPECT().Login(gomock.Any(), "driver-001", gomock.Any()).Return(testLoginResponse(), nil)
	gw.EXPECT().GetOffer(gomock.Any(), "driver-001").Return(nil, false, nil).AnyTimes()
	gw.EXPECT().GetStats(gomock.Any(), "driver-001").Return(&driverapp.StatsResponse{
		Stats: models.DriverStats{DriverID: "driver-001", RidesCompleted: 42},
	}, nil).AnyTimes()

	require.NoError(t, f.Login(context.Background(), "driver-001", models.Location{}))

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		state := f.State()
		require.Equal(t, driverapp.KindOnline, state.Kind())
		if state.(driverapp.Online).Stats.RidesCompleted == 42 {
			break
		}
		time.Sleep(2 * time.Millisecond)
	}
	assert.Equal(t, 42, f.State().(driverapp.Online).Stats.RidesCompleted)

	stopSession(f)
}
