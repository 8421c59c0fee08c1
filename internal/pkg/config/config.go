package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/dimasp/angkut/internal/pkg/models"
	"github.com/joho/godotenv"
)

func InitConfig(configPath string) *models.Config {
	local := GetEnv("APP_ENV", "local")
	if local == "local" {
		// Load config from file
		err := godotenv.Load(configPath)
		if err != nil {
			log.Println("error loading config from file", err)
		}
	}
	// Create config from environment variables
	return loadConfigFromEnv()
}

func loadConfigFromEnv() *models.Config {
	configs := &models.Config{}

	// App config
	configs.App.Name = GetEnv("APP_NAME", "angkut-dispatch")
	configs.App.Environment = GetEnv("APP_ENV", "local")
	configs.App.Debug = GetEnvAsBool("APP_DEBUG", true)
	configs.App.Version = GetEnv("APP_VERSION", "")

	// Server config
	configs.Server.Host = GetEnv("SERVER_HOST", "")
	configs.Server.Port = GetEnvAsInt("SERVER_PORT", 9990)
	configs.Server.ReadTimeout = GetEnvAsInt("SERVER_READ_TIMEOUT", 0)
	configs.Server.WriteTimeout = GetEnvAsInt("SERVER_WRITE_TIMEOUT", 0)
	configs.Server.ShutdownTimeout = GetEnvAsInt("SERVER_SHUTDOWN_TIMEOUT", 30)

	// Logger config
	configs.Logger.Level = GetEnv("LOG_LEVEL", "info")

	// Dispatch config
	configs.Dispatch.OfferExpiry = GetEnvAsDuration("DISPATCH_OFFER_EXPIRY", 5*time.Second)
	configs.Dispatch.SearchDelayMin = GetEnvAsDuration("DISPATCH_SEARCH_DELAY_MIN", 2*time.Second)
	configs.Dispatch.SearchDelayMax = GetEnvAsDuration("DISPATCH_SEARCH_DELAY_MAX", 4*time.Second)
	configs.Dispatch.TickInterval = GetEnvAsDuration("DISPATCH_TICK_INTERVAL", 500*time.Millisecond)
	configs.Dispatch.PickupPhaseDuration = GetEnvAsDuration("DISPATCH_PICKUP_PHASE_DURATION", 90*time.Second)
	configs.Dispatch.TripPhaseDuration = GetEnvAsDuration("DISPATCH_TRIP_PHASE_DURATION", 150*time.Second)
	configs.Dispatch.DeparturePause = GetEnvAsDuration("DISPATCH_DEPARTURE_PAUSE", 3*time.Second)
	configs.Dispatch.ArrivalThresholdM = GetEnvAsFloat("DISPATCH_ARRIVAL_THRESHOLD_M", 100.0)
	configs.Dispatch.PolylinePoints = GetEnvAsInt("DISPATCH_POLYLINE_POINTS", 20)

	// Fleet config
	configs.Fleet.Size = GetEnvAsInt("FLEET_SIZE", 20)
	configs.Fleet.BaseFare = GetEnvAsFloat("FLEET_BASE_FARE", 2.5)
	configs.Fleet.RatePerKm = GetEnvAsFloat("FLEET_RATE_PER_KM", 1.75)

	// Driver app config
	configs.DriverApp.ServerURL = GetEnv("DRIVERAPP_SERVER_URL", "http://localhost:9990")
	configs.DriverApp.OfferPollInterval = GetEnvAsDuration("DRIVERAPP_OFFER_POLL_INTERVAL", 3*time.Second)
	configs.DriverApp.StatsRefreshInterval = GetEnvAsDuration("DRIVERAPP_STATS_REFRESH_INTERVAL", 10*time.Second)
	configs.DriverApp.HTTPTimeout = GetEnvAsDuration("DRIVERAPP_HTTP_TIMEOUT", 10*time.Second)
	configs.DriverApp.RetryBaseDelay = GetEnvAsDuration("DRIVERAPP_RETRY_BASE_DELAY", 100*time.Millisecond)
	configs.DriverApp.RetryMaxAttempts = GetEnvAsInt("DRIVERAPP_RETRY_MAX_ATTEMPTS", 3)

	return configs
}

// Helper functions to get environment variables with different types
func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean value for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration value for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}
