package models

import (
	"time"

	"github.com/google/uuid"
)

// RideStatus represents the status of a ride
type RideStatus string

const (
	RideStatusRequested        RideStatus = "requested"
	RideStatusSearching        RideStatus = "searching"
	RideStatusAssigned         RideStatus = "assigned"
	RideStatusArriving         RideStatus = "arriving"
	RideStatusInProgress       RideStatus = "in_progress"
	RideStatusApproachingDest  RideStatus = "approaching_destination"
	RideStatusCompleted        RideStatus = "completed"
	RideStatusCancelled        RideStatus = "cancelled"
	RideStatusNoDrivers        RideStatus = "no_drivers_available"

	// RideStatusArrived marks the moment the driver reaches the pickup
	// point. It travels on the event stream only and is never stored on
	// the ride record, which stays at arriving until the trip departs.
	RideStatusArrived RideStatus = "arrived"
)

// Active reports whether the ride still has work in flight.
func (s RideStatus) Active() bool {
	switch s {
	case RideStatusRequested, RideStatusSearching, RideStatusAssigned,
		RideStatusArriving, RideStatusInProgress, RideStatusApproachingDest:
		return true
	}
	return false
}

// HasDriver reports whether the status implies an assigned driver.
func (s RideStatus) HasDriver() bool {
	switch s {
	case RideStatusAssigned, RideStatusArriving, RideStatusInProgress,
		RideStatusApproachingDest:
		return true
	}
	return false
}

// Ride represents a ride record. Status transitions are the only mutation
// path; the assigned driver reference is non-empty exactly for the statuses
// reported by HasDriver.
type Ride struct {
	ID          uuid.UUID  `json:"ride_id"`
	Pickup      Location   `json:"pickup"`
	Destination Location   `json:"destination"`
	Status      RideStatus `json:"status"`
	DriverID    string     `json:"driver_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// RideRequest is the body of POST /rides/request
type RideRequest struct {
	Pickup      Location `json:"pickup"`
	Destination Location `json:"destination"`
}
