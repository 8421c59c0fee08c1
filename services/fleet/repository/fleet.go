package repository

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/dimasp/angkut/internal/pkg/logger"
	"github.com/dimasp/angkut/internal/pkg/models"
	"github.com/dimasp/angkut/internal/utils"
	"github.com/dimasp/angkut/services/fleet"
	"github.com/google/uuid"
)

var driverNames = []string{
	"Budi", "Siti", "Agus", "Dewi", "Eko", "Rina", "Joko", "Lina",
	"Hendra", "Maya", "Rudi", "Ayu", "Tono", "Fitri", "Wawan", "Indah",
	"Dedi", "Sari", "Bambang", "Nita", "Yusuf", "Ratna", "Andi", "Wulan",
}

var vehicleClasses = []models.VehicleClass{
	models.VehicleClassEconomy,
	models.VehicleClassEconomy,
	models.VehicleClassComfort,
	models.VehicleClassPremium,
}

// session tracks one active login
type session struct {
	loginAt        time.Time
	ridesCompleted int
	earnings       float64
}

// FleetRepository is the in-memory driver roster with a geohash cell index
// for candidate lookup.
type FleetRepository struct {
	mu       sync.RWMutex
	drivers  map[string]*models.Driver
	cells    map[string]map[string]struct{} // geohash cell -> driver ids
	sessions map[string]*session
	stats    map[string]*models.DriverStats
	zones    []Zone
}

// NewFleetRepository seeds size drivers across the weighted zones.
func NewFleetRepository(size int, zones []Zone) *FleetRepository {
	if len(zones) == 0 {
		zones = DefaultZones()
	}

	r := &FleetRepository{
		drivers:  make(map[string]*models.Driver),
		cells:    make(map[string]map[string]struct{}),
		sessions: make(map[string]*session),
		stats:    make(map[string]*models.DriverStats),
		zones:    zones,
	}

	for i := 0; i < size; i++ {
		id := fmt.Sprintf("driver-%03d", i+1)
		d := &models.Driver{
			ID:           id,
			Name:         driverNames[i%len(driverNames)],
			Location:     SampleZoneLocation(zones),
			Available:    true,
			Rating:       4.2 + rand.Float64()*0.8,
			VehicleClass: vehicleClasses[i%len(vehicleClasses)],
		}
		r.drivers[id] = d
		r.indexDriver(d)
		r.stats[id] = &models.DriverStats{DriverID: id, Rating: d.Rating}
	}

	logger.Info("Fleet seeded",
		logger.Int("drivers", size),
		logger.Int("zones", len(zones)))

	return r
}

// indexDriver adds the driver to its geohash cell. Caller holds the lock.
func (r *FleetRepository) indexDriver(d *models.Driver) {
	cell := utils.EncodeLocation(d.Location, utils.CellPrecision)
	if r.cells[cell] == nil {
		r.cells[cell] = make(map[string]struct{})
	}
	r.cells[cell][d.ID] = struct{}{}
}

// unindexDriver removes the driver from its geohash cell. Caller holds the lock.
func (r *FleetRepository) unindexDriver(d *models.Driver) {
	cell := utils.EncodeLocation(d.Location, utils.CellPrecision)
	if ids, ok := r.cells[cell]; ok {
		delete(ids, d.ID)
		if len(ids) == 0 {
			delete(r.cells, cell)
		}
	}
}

func snapshot(d *models.Driver) *models.Driver {
	cp := *d
	return &cp
}

// List returns a snapshot of every driver
func (r *FleetRepository) List() []*models.Driver {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Driver, 0, len(r.drivers))
	for _, d := range r.drivers {
		out = append(out, snapshot(d))
	}
	return out
}

// ListAvailable returns a snapshot of drivers open for assignment
func (r *FleetRepository) ListAvailable() []*models.Driver {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Driver, 0, len(r.drivers))
	for _, d := range r.drivers {
		if d.Available {
			out = append(out, snapshot(d))
		}
	}
	return out
}

// ListOnlineAvailable returns available drivers with an active session
func (r *FleetRepository) ListOnlineAvailable() []*models.Driver {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Driver, 0, len(r.sessions))
	for id := range r.sessions {
		d := r.drivers[id]
		if d != nil && d.Available {
			out = append(out, snapshot(d))
		}
	}
	return out
}

// ListAvailableNear returns available drivers in the cell of loc and its
// neighbors. When the cells hold no available driver it falls back to the
// full pool so a sparse fleet still matches.
func (r *FleetRepository) ListAvailableNear(loc models.Location) []*models.Driver {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Driver, 0)
	for _, cell := range utils.CellAndNeighbors(loc, utils.CellPrecision) {
		for id := range r.cells[cell] {
			d := r.drivers[id]
			if d != nil && d.Available {
				out = append(out, snapshot(d))
			}
		}
	}
	if len(out) > 0 {
		return out
	}

	for _, d := range r.drivers {
		if d.Available {
			out = append(out, snapshot(d))
		}
	}
	return out
}

// Get returns a snapshot of one driver
func (r *FleetRepository) Get(driverID string) (*models.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.drivers[driverID]
	if !ok {
		return nil, fleet.ErrDriverNotFound
	}
	return snapshot(d), nil
}

// UpdateLocation moves a driver and refreshes the cell index
func (r *FleetRepository) UpdateLocation(driverID string, loc models.Location) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.drivers[driverID]
	if !ok {
		return fleet.ErrDriverNotFound
	}

	r.unindexDriver(d)
	d.Location = loc
	r.indexDriver(d)
	return nil
}

// Assign atomically checks availability and binds the driver to the ride
func (r *FleetRepository) Assign(driverID string, rideID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.drivers[driverID]
	if !ok {
		return fleet.ErrDriverNotFound
	}
	if !d.Available || d.CurrentRideID != "" {
		return fleet.ErrDriverUnavailable
	}

	d.Available = false
	d.CurrentRideID = rideID.String()
	return nil
}

// Release clears an assignment without relocating the driver
func (r *FleetRepository) Release(driverID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.drivers[driverID]
	if !ok {
		return fleet.ErrDriverNotFound
	}

	d.CurrentRideID = ""
	d.Available = true
	return nil
}

// Complete clears the assignment, records earnings and relocates the driver
// to a freshly sampled zone.
func (r *FleetRepository) Complete(driverID string, earnings float64) (models.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.drivers[driverID]
	if !ok {
		return models.Location{}, fleet.ErrDriverNotFound
	}

	d.CurrentRideID = ""
	d.Available = true

	r.unindexDriver(d)
	d.Location = SampleZoneLocation(r.zones)
	r.indexDriver(d)

	if st := r.stats[driverID]; st != nil {
		st.RidesCompleted++
		st.TotalEarnings += earnings
	}
	if s := r.sessions[driverID]; s != nil {
		s.ridesCompleted++
		s.earnings += earnings
	}

	return d.Location, nil
}

// MarkOnline opens a session for the driver
func (r *FleetRepository) MarkOnline(driverID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.drivers[driverID]; !ok {
		return fleet.ErrDriverNotFound
	}
	if _, ok := r.sessions[driverID]; ok {
		return fleet.ErrAlreadyOnline
	}

	r.sessions[driverID] = &session{loginAt: models.Now()}
	return nil
}

// MarkOffline closes the driver's session and returns its summary
func (r *FleetRepository) MarkOffline(driverID string) (*models.SessionSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.drivers[driverID]; !ok {
		return nil, fleet.ErrDriverNotFound
	}
	s, ok := r.sessions[driverID]
	if !ok {
		return nil, fleet.ErrNotOnline
	}
	delete(r.sessions, driverID)

	return &models.SessionSummary{
		DriverID:       driverID,
		LoginAt:        s.loginAt,
		Duration:       models.Now().Sub(s.loginAt),
		RidesCompleted: s.ridesCompleted,
		Earnings:       s.earnings,
	}, nil
}

// IsOnline reports whether the driver has an active session
func (r *FleetRepository) IsOnline(driverID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.sessions[driverID]
	return ok
}

// SetAvailability toggles the availability flag
func (r *FleetRepository) SetAvailability(driverID string, available bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.drivers[driverID]
	if !ok {
		return fleet.ErrDriverNotFound
	}
	if d.CurrentRideID != "" {
		// a driver on a ride stays unavailable until the ride resolves
		return fleet.ErrDriverBusy
	}

	d.Available = available
	return nil
}

// GetStats returns the driver's aggregate stats
func (r *FleetRepository) GetStats(driverID string) (*models.DriverStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	st, ok := r.stats[driverID]
	if !ok {
		return nil, fleet.ErrDriverNotFound
	}

	cp := *st
	if s := r.sessions[driverID]; s != nil {
		cp.OnlineSince = s.loginAt
	}
	return &cp, nil
}
