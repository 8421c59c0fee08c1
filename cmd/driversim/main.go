package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dimasp/angkut/internal/pkg/config"
	"github.com/dimasp/angkut/internal/pkg/logger"
	"github.com/dimasp/angkut/internal/pkg/models"
	"github.com/dimasp/angkut/internal/pkg/retry"
	"github.com/dimasp/angkut/services/driverapp"
	"github.com/dimasp/angkut/services/driverapp/gateway"
	"github.com/dimasp/angkut/services/driverapp/usecase"
	"github.com/dimasp/angkut/services/rides"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	driverID := flag.String("driver", "driver-001", "driver id to run")
	acceptRate := flag.Float64("accept-rate", 0.8, "probability of accepting an offer")
	flag.Parse()

	configs := config.InitConfig(config.GetEnv("CONFIG_PATH", "config/driversim.env"))

	zapLogger, err := logger.InitZapLoggerFromConfig(configs)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	zapLogger.Info("Starting driver simulator",
		zap.String("driver_id", *driverID),
		zap.String("server_url", configs.DriverApp.ServerURL),
	)

	retrier := retry.New(retry.Config{
		MaxRetries:    configs.DriverApp.RetryMaxAttempts,
		BaseDelay:     configs.DriverApp.RetryBaseDelay,
		MaxDelay:      30 * time.Second,
		Multiplier:    2.0,
		Jitter:        true,
		RetryableFunc: retry.NetworkRetryable,
	}, zapLogger)
	gw := gateway.NewHTTPGateway(configs.DriverApp.ServerURL, configs.DriverApp.HTTPTimeout, retrier)
	flow := usecase.NewFlowController(configs, gw)

	ctx := context.Background()
	loc := models.Location{Latitude: 37.7749, Longitude: -122.4194}
	if err := flow.Login(ctx, *driverID, loc); err != nil {
		zapLogger.Fatal("Login failed", zap.Error(err))
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			summary, err := flow.Logout(ctx)
			if err != nil {
				zapLogger.Warn("Logout failed", zap.Error(err))
			} else {
				zapLogger.Info("Session finished",
					zap.Int("rides_completed", summary.RidesCompleted),
					zap.Float64("earnings", summary.Earnings),
				)
			}
			return
		case <-ticker.C:
			drive(ctx, flow, *acceptRate)
		}
	}
}

// drive reacts to the current state once per tick, playing the part of a
// human driver tapping through the app.
func drive(ctx context.Context, flow *usecase.FlowController, acceptRate float64) {
	switch state := flow.State().(type) {
	case driverapp.RideOffered:
		if rand.Float64() < acceptRate {
			if err := flow.AcceptOffer(ctx); err != nil {
				logger.Warn("Accept failed", logger.Err(err))
			}
		} else {
			if err := flow.RejectOffer(ctx); err != nil {
				logger.Warn("Reject failed", logger.Err(err))
			}
		}
	case driverapp.HeadingToPickup:
		report(ctx, flow, state.Offer.RideID, rides.DriverStatusArrived)
	case driverapp.ArrivedAtPickup:
		report(ctx, flow, state.Offer.RideID, rides.DriverStatusPickedUp)
	case driverapp.RideInProgress:
		report(ctx, flow, state.Offer.RideID, rides.DriverStatusApproaching)
	case driverapp.ApproachingDestination:
		report(ctx, flow, state.Offer.RideID, rides.DriverStatusCompleted)
	case driverapp.RideCompleted:
		logger.Info("Trip done",
			logger.Float64("earnings", state.Earnings))
		if err := flow.Resume(); err != nil {
			logger.Warn("Resume failed", logger.Err(err))
		}
	}
}

func report(ctx context.Context, flow *usecase.FlowController, rideID uuid.UUID, status rides.DriverRideStatus) {
	if err := flow.ReportRideStatus(ctx, rideID, status); err != nil {
		logger.Warn("Status report failed",
			logger.String("status", string(status)),
			logger.Err(err))
	}
}
