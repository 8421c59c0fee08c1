package models

import (
	"time"

	"github.com/google/uuid"
)

// RidePhase is one leg of a ride's movement simulation
type RidePhase string

const (
	PhaseToPickup      RidePhase = "to_pickup"
	PhaseToDestination RidePhase = "to_destination"
)

// PositionUpdate is emitted on every simulation tick
type PositionUpdate struct {
	RideID     uuid.UUID `json:"ride_id"`
	DriverID   string    `json:"driver_id"`
	Location   Location  `json:"location"`
	Bearing    float64   `json:"bearing"`
	Phase      RidePhase `json:"phase"`
	RemainingM float64   `json:"remaining_m"`
	Progress   float64   `json:"progress"`
	Timestamp  time.Time `json:"timestamp"`
}

// RideStatusEvent is emitted on every ride status transition
type RideStatusEvent struct {
	RideID    uuid.UUID  `json:"ride_id"`
	DriverID  string     `json:"driver_id,omitempty"`
	Status    RideStatus `json:"status"`
	Timestamp time.Time  `json:"timestamp"`
}
