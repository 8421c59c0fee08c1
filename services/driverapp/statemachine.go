package driverapp

import "errors"

// ErrInvalidTransition is returned for any transition not in the allow-list
var ErrInvalidTransition = errors.New("invalid driver state transition")

// allowedTransitions is the complete transition table. Anything absent is
// rejected. Offline is reachable from online, from a displayed offer
// (logout discards the popup) and from the terminal states, but never
// mid-ride.
var allowedTransitions = map[StateKind][]StateKind{
	KindOffline:                {KindLoggingIn},
	KindLoggingIn:              {KindOnline, KindError},
	KindOnline:                 {KindRideOffered, KindOffline, KindError},
	KindRideOffered:            {KindHeadingToPickup, KindOnline, KindOffline, KindError},
	KindHeadingToPickup:        {KindArrivedAtPickup, KindOnline, KindError},
	KindArrivedAtPickup:        {KindRideInProgress, KindOnline, KindError},
	KindRideInProgress:         {KindApproachingDestination, KindRideCompleted, KindError},
	KindApproachingDestination: {KindRideCompleted, KindError},
	KindRideCompleted:          {KindOnline, KindOffline},
	KindError:                  {KindOffline, KindOnline},
}

// CanTransition reports whether the transition table allows from→to
func CanTransition(from, to StateKind) bool {
	for _, k := range allowedTransitions[from] {
		if k == to {
			return true
		}
	}
	return false
}

// Transition validates current→next against the table and returns the new
// state. On rejection the current state comes back untouched alongside
// ErrInvalidTransition, so callers can keep holding the exact same value.
func Transition(current, next DriverState) (DriverState, error) {
	if !CanTransition(current.Kind(), next.Kind()) {
		return current, ErrInvalidTransition
	}
	// an error state with no history can only be abandoned, not resumed
	if es, ok := current.(ErrorState); ok && es.Previous == nil && next.Kind() == KindOnline {
		return current, ErrInvalidTransition
	}
	return next, nil
}
