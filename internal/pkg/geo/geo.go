package geo

import (
	"math"
	"math/rand"

	"github.com/dimasp/angkut/internal/pkg/models"
)

const (
	// earthRadiusM is the mean Earth radius in meters
	earthRadiusM = 6371000.0

	// citySpeedKmh is the assumed average city driving speed for ETAs
	citySpeedKmh = 40.0

	metersPerDegreeLat = 111320.0
)

// Distance calculates the great-circle distance in meters between two
// points using the Haversine formula.
func Distance(a, b models.Location) float64 {
	lat1 := a.Latitude * math.Pi / 180.0
	lon1 := a.Longitude * math.Pi / 180.0
	lat2 := b.Latitude * math.Pi / 180.0
	lon2 := b.Longitude * math.Pi / 180.0

	dLat := lat2 - lat1
	dLon := lon2 - lon1
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusM * c
}

// Interpolate returns the point a fraction t of the way from start to end,
// linearly in lat/lng space. t is clamped to [0, 1].
func Interpolate(start, end models.Location, t float64) models.Location {
	if t <= 0 {
		return start
	}
	if t >= 1 {
		return end
	}
	return models.Location{
		Latitude:  start.Latitude + (end.Latitude-start.Latitude)*t,
		Longitude: start.Longitude + (end.Longitude-start.Longitude)*t,
	}
}

// Bearing returns the initial bearing in degrees [0, 360) along the great
// circle from one point toward another.
func Bearing(from, to models.Location) float64 {
	lat1 := from.Latitude * math.Pi / 180.0
	lat2 := to.Latitude * math.Pi / 180.0
	dLon := (to.Longitude - from.Longitude) * math.Pi / 180.0

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)

	deg := math.Atan2(y, x) * 180.0 / math.Pi
	return math.Mod(deg+360.0, 360.0)
}

// ETASeconds estimates travel time in seconds for a distance in meters at
// the assumed average city speed.
func ETASeconds(distanceM float64) int {
	speedMs := citySpeedKmh * 1000.0 / 3600.0
	return int(math.Round(distanceM / speedMs))
}

// RandomPointInRadius samples a uniformly distributed point within
// radiusM meters of center. The square root on the radial fraction keeps
// the sampling uniform by area rather than clustered at the center, and the
// longitude offset is corrected by the latitude cosine.
func RandomPointInRadius(center models.Location, radiusM float64) models.Location {
	return RandomPointInDonut(center, 0, radiusM)
}

// RandomPointInDonut samples a uniformly distributed point in the annulus
// between minRadiusM and maxRadiusM meters of center. The returned point is
// never closer than minRadiusM beyond floating-point rounding.
func RandomPointInDonut(center models.Location, minRadiusM, maxRadiusM float64) models.Location {
	angle := rand.Float64() * 2 * math.Pi
	// uniform by area: r^2 uniform between the squared bounds
	r := math.Sqrt(minRadiusM*minRadiusM + rand.Float64()*(maxRadiusM*maxRadiusM-minRadiusM*minRadiusM))

	dLat := (r * math.Cos(angle)) / metersPerDegreeLat
	latScale := math.Cos(center.Latitude * math.Pi / 180.0)
	if latScale < 1e-6 {
		latScale = 1e-6
	}
	dLon := (r * math.Sin(angle)) / (metersPerDegreeLat * latScale)

	return models.Location{
		Latitude:  center.Latitude + dLat,
		Longitude: center.Longitude + dLon,
	}
}

// RoutePolyline returns n+1 evenly spaced points from start to end
// inclusive. The first element is exactly start and the last exactly end.
func RoutePolyline(start, end models.Location, n int) []models.Location {
	if n < 1 {
		n = 1
	}
	points := make([]models.Location, 0, n+1)
	points = append(points, start)
	for i := 1; i < n; i++ {
		points = append(points, Interpolate(start, end, float64(i)/float64(n)))
	}
	points = append(points, end)
	return points
}
