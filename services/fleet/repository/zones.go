package repository

import (
	"math/rand"

	"github.com/dimasp/angkut/internal/pkg/geo"
	"github.com/dimasp/angkut/internal/pkg/models"
)

// Zone is a weighted spawn area. Drivers are seeded and relocated into
// zones instead of a single point so matches stay geographically varied.
type Zone struct {
	Name    string
	Center  models.Location
	RadiusM float64
	Weight  float64
}

// DefaultZones covers central San Francisco, the reference scenario city.
func DefaultZones() []Zone {
	return []Zone{
		{Name: "downtown", Center: models.Location{Latitude: 37.7793, Longitude: -122.4193}, RadiusM: 1500, Weight: 0.30},
		{Name: "mission", Center: models.Location{Latitude: 37.7599, Longitude: -122.4148}, RadiusM: 1200, Weight: 0.20},
		{Name: "soma", Center: models.Location{Latitude: 37.7785, Longitude: -122.3950}, RadiusM: 1000, Weight: 0.20},
		{Name: "richmond", Center: models.Location{Latitude: 37.7800, Longitude: -122.4650}, RadiusM: 1500, Weight: 0.15},
		{Name: "sunset", Center: models.Location{Latitude: 37.7530, Longitude: -122.4860}, RadiusM: 1800, Weight: 0.15},
	}
}

// SampleZoneLocation picks a zone by weight and samples a uniform point
// inside it.
func SampleZoneLocation(zones []Zone) models.Location {
	total := 0.0
	for _, z := range zones {
		total += z.Weight
	}

	pick := rand.Float64() * total
	for _, z := range zones {
		pick -= z.Weight
		if pick <= 0 {
			return geo.RandomPointInRadius(z.Center, z.RadiusM)
		}
	}

	last := zones[len(zones)-1]
	return geo.RandomPointInRadius(last.Center, last.RadiusM)
}
