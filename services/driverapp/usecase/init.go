package usecase

import (
	"sync"
	"time"

	"github.com/dimasp/angkut/internal/pkg/models"
	"github.com/dimasp/angkut/services/driverapp"
)

// FlowController owns the driver's client-local state and the background
// activities that keep it fresh while online. All state mutation funnels
// through one mutex and the transition table; each activity callback
// performs at most one transition attempt.
type FlowController struct {
	cfg *models.Config
	gw  driverapp.DriverGateway

	mu         sync.Mutex
	state      driverapp.DriverState
	driverID   string
	generation uint64
	cancelFns  []func()
	expiry     *time.Timer
}

// NewFlowController creates a new flow controller in the offline state
func NewFlowController(cfg *models.Config, gw driverapp.DriverGateway) *FlowController {
	return &FlowController{
		cfg:   cfg,
		gw:    gw,
		state: driverapp.Offline{},
	}
}

// State returns the current driver state
func (f *FlowController) State() driverapp.DriverState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}
