package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/dimasp/angkut/internal/pkg/config"
	"github.com/dimasp/angkut/internal/pkg/health"
	"github.com/dimasp/angkut/internal/pkg/logger"
	"github.com/dimasp/angkut/internal/pkg/server"
	wspkg "github.com/dimasp/angkut/internal/pkg/websocket"
	fleethandler "github.com/dimasp/angkut/services/fleet/handler"
	fleetrepo "github.com/dimasp/angkut/services/fleet/repository"
	fleetuc "github.com/dimasp/angkut/services/fleet/usecase"
	matchhandler "github.com/dimasp/angkut/services/match/handler"
	matchrepo "github.com/dimasp/angkut/services/match/repository"
	matchuc "github.com/dimasp/angkut/services/match/usecase"
	ridesgw "github.com/dimasp/angkut/services/rides/gateway"
	rideshandler "github.com/dimasp/angkut/services/rides/handler"
	ridesrepo "github.com/dimasp/angkut/services/rides/repository"
	ridesuc "github.com/dimasp/angkut/services/rides/usecase"
	"go.uber.org/zap"
)

func main() {
	appName := "dispatch-service"
	configs := config.InitConfig(config.GetEnv("CONFIG_PATH", "config/dispatch.env"))

	zapLogger, err := logger.InitZapLoggerFromConfig(configs)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	zapLogger.Info("Starting application",
		zap.String("app", appName),
		zap.String("environment", configs.App.Environment),
		zap.Int("fleet_size", configs.Fleet.Size),
	)

	// Repositories
	fleetRepository := fleetrepo.NewFleetRepository(configs.Fleet.Size, fleetrepo.DefaultZones())
	rideRepository := ridesrepo.NewRideRepository()
	offerRepository := matchrepo.NewOfferRepository()

	// Push channel
	wsManager := wspkg.NewManager()
	rideGateway := ridesgw.NewRidesGW(wsManager)

	// Use cases; rides and match are wired to each other after construction
	fleetUC := fleetuc.NewFleetUC(fleetRepository)
	matchUC := matchuc.NewMatchUC(configs, offerRepository, fleetRepository)
	rideUC := ridesuc.NewRideUC(configs, rideRepository, fleetRepository, rideGateway)
	matchUC.SetRideService(rideUC)
	rideUC.SetDispatcher(matchUC)

	// HTTP surface
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())

	health.RegisterHealthEndpoints(e, appName)
	fleethandler.NewFleetHandler(fleetUC).RegisterRoutes(e)
	matchhandler.NewMatchHandler(matchUC).RegisterRoutes(e)
	rideshandler.NewRidesHandler(rideUC).RegisterRoutes(e)
	e.GET("/ws", wsManager.HandleConnection)

	shutdown := server.NewShutdownManager(zapLogger)
	shutdown.Register(func(context.Context) error {
		wsManager.Close()
		return nil
	})

	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Port)
	if err := srv.Start(); err != nil {
		zapLogger.Fatal("Server terminated", zap.Error(err))
	}
	if err := shutdown.Shutdown(context.Background()); err != nil {
		zapLogger.Error("Component shutdown failed", zap.Error(err))
	}
}
