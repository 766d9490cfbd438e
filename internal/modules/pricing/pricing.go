// README: Fare estimation from distance and tariff.
package pricing

// EstimatePrice computes the fare for a trip of the given length. The
// per-kilometre product is truncated toward zero before adding, and the
// result is never below the tariff's base fare.
func EstimatePrice(distanceKm float64, t Tariff) int64 {
	r := RateFor(t)
	calculated := r.BaseFare + int64(distanceKm*float64(r.PerKm))
	if calculated < r.BaseFare {
		return r.BaseFare
	}
	return calculated
}
