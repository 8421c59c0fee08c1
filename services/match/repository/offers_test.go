package repository

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dimasp/angkut/internal/pkg/models"
	"github.com/dimasp/angkut/services/match"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOffer(rideID uuid.UUID, driverID string) *models.PendingOffer {
	now := time.Now()
	return &models.PendingOffer{
		RideID:    rideID,
		DriverID:  driverID,
		OfferedAt: now,
		ExpiresAt: now.Add(5 * time.Second),
	}
}

func TestCreateAndGet(t *testing.T) {
	repo := NewOfferRepository()
	rideID := uuid.New()

	require.NoError(t, repo.Create(newOffer(rideID, "driver-001")))

	byRide, ok := repo.GetByRide(rideID)
	require.True(t, ok)
	assert.Equal(t, "driver-001", byRide.DriverID)

	byDriver, ok := repo.GetByDriver("driver-001")
	require.True(t, ok)
	assert.Equal(t, rideID, byDriver.RideID)

	assert.Equal(t, 1, repo.Count())
}

func TestCreateConflicts(t *testing.T) {
	repo := NewOfferRepository()
	rideID := uuid.New()

	require.NoError(t, repo.Create(newOffer(rideID, "driver-001")))

	// same ride, different driver
	err := repo.Create(newOffer(rideID, "driver-002"))
	assert.ErrorIs(t, err, match.ErrOfferExists)

	// different ride, same driver
	err = repo.Create(newOffer(uuid.New(), "driver-001"))
	assert.ErrorIs(t, err, match.ErrOfferExists)

	assert.Equal(t, 1, repo.Count())
}

func TestTakeRemovesBothIndexes(t *testing.T) {
	repo := NewOfferRepository()
	rideID := uuid.New()
	require.NoError(t, repo.Create(newOffer(rideID, "driver-001")))

	o, ok := repo.Take(rideID, "")
	require.True(t, ok)
	assert.Equal(t, "driver-001", o.DriverID)

	_, ok = repo.GetByRide(rideID)
	assert.False(t, ok)
	_, ok = repo.GetByDriver("driver-001")
	assert.False(t, ok)
	assert.Equal(t, 0, repo.Count())

	// driver is free for a new offer again
	assert.NoError(t, repo.Create(newOffer(uuid.New(), "driver-001")))
}

func TestTakeValidatesDriver(t *testing.T) {
	repo := NewOfferRepository()
	rideID := uuid.New()
	require.NoError(t, repo.Create(newOffer(rideID, "driver-001")))

	// wrong driver cannot steal the offer
	_, ok := repo.Take(rideID, "driver-002")
	assert.False(t, ok)
	assert.Equal(t, 1, repo.Count())

	_, ok = repo.Take(rideID, "driver-001")
	assert.True(t, ok)
}

func TestTakeHasExactlyOneWinner(t *testing.T) {
	repo := NewOfferRepository()
	rideID := uuid.New()
	require.NoError(t, repo.Create(newOffer(rideID, "driver-001")))

	const racers = 32
	var wins int64
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := repo.Take(rideID, ""); ok {
				atomic.AddInt64(&wins, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), wins)
	assert.Equal(t, 0, repo.Count())
}
