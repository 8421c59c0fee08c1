package driverapp

import "github.com/dimasp/angkut/internal/pkg/models"

// StateKind identifies a driver state variant
type StateKind string

const (
	KindOffline                StateKind = "offline"
	KindLoggingIn              StateKind = "logging_in"
	KindOnline                 StateKind = "online"
	KindRideOffered            StateKind = "ride_offered"
	KindHeadingToPickup        StateKind = "heading_to_pickup"
	KindArrivedAtPickup        StateKind = "arrived_at_pickup"
	KindRideInProgress         StateKind = "ride_in_progress"
	KindApproachingDestination StateKind = "approaching_destination"
	KindRideCompleted          StateKind = "ride_completed"
	KindError                  StateKind = "error"
)

// DriverState is the client-local driver state. Each variant carries the
// payload that screen of the app needs; transitions between variants go
// through the state machine only.
type DriverState interface {
	Kind() StateKind
}

// Offline is the initial and final state
type Offline struct{}

func (Offline) Kind() StateKind { return KindOffline }

// LoggingIn covers the login round trip
type LoggingIn struct {
	DriverID string
}

func (LoggingIn) Kind() StateKind { return KindLoggingIn }

// Online is the idle on-duty state
type Online struct {
	Driver models.Driver
	Stats  models.DriverStats
}

func (Online) Kind() StateKind { return KindOnline }

// RideOffered shows a pending offer awaiting the driver's decision
type RideOffered struct {
	Driver models.Driver
	Stats  models.DriverStats
	Offer  models.PendingOffer
}

func (RideOffered) Kind() StateKind { return KindRideOffered }

// ActiveRide is the payload shared by the on-ride states
type ActiveRide struct {
	Driver models.Driver
	Stats  models.DriverStats
	Offer  models.PendingOffer
}

// HeadingToPickup is the pickup leg of an accepted ride
type HeadingToPickup struct{ ActiveRide }

func (HeadingToPickup) Kind() StateKind { return KindHeadingToPickup }

// ArrivedAtPickup is the stationary wait at the pickup point
type ArrivedAtPickup struct{ ActiveRide }

func (ArrivedAtPickup) Kind() StateKind { return KindArrivedAtPickup }

// RideInProgress is the trip leg
type RideInProgress struct{ ActiveRide }

func (RideInProgress) Kind() StateKind { return KindRideInProgress }

// ApproachingDestination is the tail of the trip leg
type ApproachingDestination struct{ ActiveRide }

func (ApproachingDestination) Kind() StateKind { return KindApproachingDestination }

// RideCompleted shows the trip summary before going back online
type RideCompleted struct {
	Driver   models.Driver
	Stats    models.DriverStats
	Earnings float64
}

func (RideCompleted) Kind() StateKind { return KindRideCompleted }

// ErrorState wraps a failure, keeping the state it interrupted so the app
// can recover to it.
type ErrorState struct {
	Message  string
	Previous DriverState
}

func (ErrorState) Kind() StateKind { return KindError }
