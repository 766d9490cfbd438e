// README: Nearby driver snapshot used for map display only.
package drivers

import "glazovcab/internal/types"

// Driver is an ephemeral projection pushed by the remote channel; never
// owned or persisted by the core.
type Driver struct {
	ID          types.ID `firestore:"id" json:"id"`
	Name        string   `firestore:"name" json:"name"`
	CarModel    string   `firestore:"carModel" json:"car_model"`
	CarPlate    string   `firestore:"carPlate" json:"car_plate"`
	Lat         float64  `firestore:"lat" json:"lat"`
	Lng         float64  `firestore:"lng" json:"lng"`
	Tariff      string   `firestore:"tariff" json:"tariff"`
	Rating      float64  `firestore:"rating" json:"rating"`
	IsAvailable bool     `firestore:"isAvailable" json:"is_available"`
}

// Marker is a driver with the distance from a queried origin, for rendering.
type Marker struct {
	Driver
	DistanceKm float64 `json:"distance_km"`
}
