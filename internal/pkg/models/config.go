package models

import "time"

// Config represents application configuration
type Config struct {
	App       AppConfig
	Server    ServerConfig
	Logger    LoggerConfig
	Dispatch  DispatchConfig
	Fleet     FleetConfig
	DriverApp DriverAppConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// LoggerConfig contains logger configuration
type LoggerConfig struct {
	Level string
}

// DispatchConfig tunes the offer race and the movement simulation.
// The reference values are deliberately short so a full ride plays out in
// a couple of minutes.
type DispatchConfig struct {
	OfferExpiry         time.Duration `json:"offer_expiry"`
	SearchDelayMin      time.Duration `json:"search_delay_min"`
	SearchDelayMax      time.Duration `json:"search_delay_max"`
	TickInterval        time.Duration `json:"tick_interval"`
	PickupPhaseDuration time.Duration `json:"pickup_phase_duration"`
	TripPhaseDuration   time.Duration `json:"trip_phase_duration"`
	DeparturePause      time.Duration `json:"departure_pause"`
	ArrivalThresholdM   float64       `json:"arrival_threshold_m"`
	PolylinePoints      int           `json:"polyline_points"`
}

// FleetConfig contains driver roster and pricing configuration
type FleetConfig struct {
	Size      int     `json:"size"`
	BaseFare  float64 `json:"base_fare"`
	RatePerKm float64 `json:"rate_per_km"`
}

// DriverAppConfig contains the driver-side client configuration
type DriverAppConfig struct {
	ServerURL            string        `json:"server_url"`
	OfferPollInterval    time.Duration `json:"offer_poll_interval"`
	StatsRefreshInterval time.Duration `json:"stats_refresh_interval"`
	HTTPTimeout          time.Duration `json:"http_timeout"`
	RetryBaseDelay       time.Duration `json:"retry_base_delay"`
	RetryMaxAttempts     int           `json:"retry_max_attempts"`
}
