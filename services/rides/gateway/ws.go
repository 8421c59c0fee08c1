package gateway

import (
	"github.com/dimasp/angkut/internal/pkg/models"
	"github.com/dimasp/angkut/internal/pkg/websocket"
	"github.com/google/uuid"
)

// Event names on the push channel
const (
	EventRidePosition = "ride.position"
	EventRideStatus   = "ride.status"
	EventRideRoute    = "ride.route"
)

// RidesGW broadcasts ride events to every websocket subscriber
type RidesGW struct {
	ws *websocket.Manager
}

// NewRidesGW creates a new rides gateway
func NewRidesGW(ws *websocket.Manager) *RidesGW {
	return &RidesGW{ws: ws}
}

// PublishPositionUpdate pushes a simulation tick to subscribers
func (g *RidesGW) PublishPositionUpdate(update models.PositionUpdate) {
	g.ws.Broadcast(EventRidePosition, update)
}

// PublishRideStatus pushes a ride status transition to subscribers
func (g *RidesGW) PublishRideStatus(event models.RideStatusEvent) {
	g.ws.Broadcast(EventRideStatus, event)
}

// routePayload is the body of a ride.route frame
type routePayload struct {
	RideID   uuid.UUID         `json:"ride_id"`
	Phase    models.RidePhase  `json:"phase"`
	Polyline []models.Location `json:"polyline"`
}

// PublishRoute pushes the upcoming leg's polyline to subscribers
func (g *RidesGW) PublishRoute(rideID uuid.UUID, phase models.RidePhase, polyline []models.Location) {
	g.ws.Broadcast(EventRideRoute, routePayload{RideID: rideID, Phase: phase, Polyline: polyline})
}
