// README: Archived copy of a terminated ride kept for local display.
package history

import "time"

// Record is immutable once written; re-saving the same id replaces the row.
type Record struct {
	ID            string    `json:"id"`
	FromAddress   string    `json:"from_address"`
	ToAddress     string    `json:"to_address"`
	FromLat       float64   `json:"from_lat"`
	FromLng       float64   `json:"from_lng"`
	ToLat         float64   `json:"to_lat"`
	ToLng         float64   `json:"to_lng"`
	Tariff        string    `json:"tariff"`
	PaymentMethod string    `json:"payment_method"`
	Price         int64     `json:"price"`
	DistanceKm    float64   `json:"distance_km"`
	DurationMin   int       `json:"duration_min"`
	Status        string    `json:"status"`
	Rating        int       `json:"rating"`
	DriverName    string    `json:"driver_name"`
	DriverPhone   string    `json:"driver_phone"`
	CarModel      string    `json:"car_model"`
	CarPlate      string    `json:"car_plate"`
	CreatedAt     time.Time `json:"created_at"`
}
