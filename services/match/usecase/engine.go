package usecase

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"github.com/dimasp/angkut/internal/pkg/geo"
	"github.com/dimasp/angkut/internal/pkg/models"
	"github.com/dimasp/angkut/services/match"
)

// rankByDistance sorts candidates by haversine distance to the pickup,
// nearest first. Equal distances keep their incoming order, which itself
// comes from map iteration; ties are acceptable nondeterminism.
func rankByDistance(pickup models.Location, candidates []*models.Driver) []match.Result {
	ranked := make([]match.Result, 0, len(candidates))
	for _, d := range candidates {
		dist := geo.Distance(pickup, d.Location)
		ranked = append(ranked, match.Result{
			Driver:     d,
			DistanceM:  dist,
			ETASeconds: geo.ETASeconds(dist),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceM < ranked[j].DistanceM
	})
	return ranked
}

// FindNearest returns the available driver closest to the pickup, or false
// when the pool is empty.
func (uc *MatchUC) FindNearest(pickup models.Location) (match.Result, bool) {
	ranked := rankByDistance(pickup, uc.fleet.ListAvailableNear(pickup))
	if len(ranked) == 0 {
		return match.Result{}, false
	}
	return ranked[0], true
}

// findNearestOnline ranks only drivers with an active session
func (uc *MatchUC) findNearestOnline(pickup models.Location) []match.Result {
	return rankByDistance(pickup, uc.fleet.ListOnlineAvailable())
}

// searchDelay samples the artificial matching latency, modelling the round
// trip to a real matching service.
func (uc *MatchUC) searchDelay() time.Duration {
	min := uc.cfg.Dispatch.SearchDelayMin
	max := uc.cfg.Dispatch.SearchDelayMax
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int63n(int64(max-min)))
}

// matchWithDelay waits the sampled search latency and then invokes cb with
// the ranked full pool (nil when no drivers exist). It never blocks the
// caller; cancelling ctx drops the callback entirely.
func (uc *MatchUC) matchWithDelay(ctx context.Context, pickup models.Location, cb func([]match.Result)) {
	delay := uc.searchDelay()
	go func() {
		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
		cb(rankByDistance(pickup, uc.fleet.ListAvailable()))
	}()
}
