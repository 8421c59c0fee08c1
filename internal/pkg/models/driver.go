package models

import "time"

// VehicleClass categorizes a driver's vehicle
type VehicleClass string

const (
	VehicleClassEconomy VehicleClass = "economy"
	VehicleClassComfort VehicleClass = "comfort"
	VehicleClassPremium VehicleClass = "premium"
)

// Location represents a geographical location with latitude and longitude
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the location is within valid coordinate ranges.
func (l Location) Valid() bool {
	return l.Latitude >= -90 && l.Latitude <= 90 &&
		l.Longitude >= -180 && l.Longitude <= 180
}

// Driver represents a driver in the roster. The fleet repository owns every
// mutation; CurrentRideID is non-empty exactly when Available is false.
type Driver struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Location      Location     `json:"location"`
	Available     bool         `json:"available"`
	CurrentRideID string       `json:"current_ride_id,omitempty"`
	Rating        float64      `json:"rating"`
	VehicleClass  VehicleClass `json:"vehicle_class"`
}

// DriverStats aggregates a driver's activity for the stats endpoint
type DriverStats struct {
	DriverID       string    `json:"driver_id"`
	RidesCompleted int       `json:"rides_completed"`
	TotalEarnings  float64   `json:"total_earnings"`
	Rating         float64   `json:"rating"`
	OnlineSince    time.Time `json:"online_since,omitempty"`
}

// SessionSummary is returned on logout
type SessionSummary struct {
	DriverID       string        `json:"driver_id"`
	LoginAt        time.Time     `json:"login_at"`
	Duration       time.Duration `json:"duration_seconds"`
	RidesCompleted int           `json:"rides_completed"`
	Earnings       float64       `json:"earnings"`
}
