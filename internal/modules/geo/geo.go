// Package geo contains pure geographic computation helpers.
package geo

import (
	"math"

	"glazovcab/internal/types"
)

const earthRadiusKm = 6371.0

// averageSpeedKmPerMin models city traffic at 30 km/h.
const averageSpeedKmPerMin = 0.5

// minDurationMin covers dispatch and boarding time.
const minDurationMin = 5

// DistanceKm returns the great-circle distance in kilometres between two
// points specified in decimal degrees.
func DistanceKm(a, b types.Point) float64 {
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLng := degreesToRadians(b.Lng - a.Lng)

	rLat1 := degreesToRadians(a.Lat)
	rLat2 := degreesToRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// EstimateDurationMin returns the estimated trip duration in minutes for the
// given distance, never less than the boarding floor.
func EstimateDurationMin(distanceKm float64) int {
	min := int(distanceKm / averageSpeedKmPerMin)
	if min < minDurationMin {
		return minDurationMin
	}
	return min
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
