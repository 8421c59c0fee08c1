package utils

import (
	"github.com/dimasp/angkut/internal/pkg/models"
	"github.com/mmcloughlin/geohash"
)

// CellPrecision is the geohash precision used for the fleet cell index.
// Precision 5 cells are roughly 5km x 5km, a good fit for city dispatch.
const CellPrecision uint = 5

// EncodeLocation converts a location to a geohash string
func EncodeLocation(location models.Location, precision uint) string {
	return geohash.EncodeWithPrecision(location.Latitude, location.Longitude, precision)
}

// DecodeGeohash converts a geohash string to latitude and longitude
func DecodeGeohash(hash string) (latitude, longitude float64) {
	return geohash.Decode(hash)
}

// CellAndNeighbors returns the cell containing location plus its eight
// neighbors, the candidate set for a nearest-driver search.
func CellAndNeighbors(location models.Location, precision uint) []string {
	cell := EncodeLocation(location, precision)
	return append([]string{cell}, geohash.Neighbors(cell)...)
}
