// README: Order record and remote status definitions.
package ride

import (
	"time"

	"glazovcab/internal/modules/pricing"
	"glazovcab/internal/types"
)

// Status is the authoritative order status kept by the remote order channel.
type Status string

const (
	StatusSearching  Status = "SEARCHING"
	StatusAccepted   Status = "ACCEPTED"
	StatusArriving   Status = "ARRIVING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

// Order mirrors a single order document in the remote channel. The client
// holds a read-mostly copy; only status, rating and tip are ever written back.
type Order struct {
	ID             types.ID              `firestore:"id" json:"id"`
	UserID         types.ID              `firestore:"userId" json:"user_id"`
	FromAddress    string                `firestore:"fromAddress" json:"from_address"`
	ToAddress      string                `firestore:"toAddress" json:"to_address"`
	FromLat        float64               `firestore:"fromLat" json:"from_lat"`
	FromLng        float64               `firestore:"fromLng" json:"from_lng"`
	ToLat          float64               `firestore:"toLat" json:"to_lat"`
	ToLng          float64               `firestore:"toLng" json:"to_lng"`
	Tariff         pricing.Tariff        `firestore:"tariff" json:"tariff"`
	PaymentMethod  pricing.PaymentMethod `firestore:"paymentMethod" json:"payment_method"`
	EstimatedPrice int64                 `firestore:"estimatedPrice" json:"estimated_price"`
	DistanceKm     float64               `firestore:"distanceKm" json:"distance_km"`
	Status         Status                `firestore:"status" json:"status"`
	DriverID       types.ID              `firestore:"driverId" json:"driver_id"`
	DriverName     string                `firestore:"driverName" json:"driver_name"`
	DriverPhone    string                `firestore:"driverPhone" json:"driver_phone"`
	CarModel       string                `firestore:"carModel" json:"car_model"`
	CarPlate       string                `firestore:"carPlate" json:"car_plate"`
	Rating         int                   `firestore:"rating" json:"rating"`
	Tip            int64                 `firestore:"tip" json:"tip"`
	CreatedAt      time.Time             `firestore:"timestamp" json:"created_at"`
}

func (o *Order) From() types.Point { return types.Point{Lat: o.FromLat, Lng: o.FromLng} }
func (o *Order) To() types.Point   { return types.Point{Lat: o.ToLat, Lng: o.ToLng} }

// Phase is the local lifecycle state derived from remote status updates.
type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhaseSubmitting  Phase = "submitting"
	PhaseSearching   Phase = "searching"
	PhaseDriverFound Phase = "driver_found"
	PhaseInProgress  Phase = "in_progress"
	PhaseCompleted   Phase = "completed"
	PhaseError       Phase = "error"
)

// phaseFor maps a remote order status onto the local lifecycle phase.
// Transitions are level-triggered on the status value, so a skipped
// intermediate status still lands in the right phase.
func phaseFor(s Status) (Phase, bool) {
	switch s {
	case StatusSearching:
		return PhaseSearching, true
	case StatusAccepted, StatusArriving:
		return PhaseDriverFound, true
	case StatusInProgress:
		return PhaseInProgress, true
	case StatusCompleted:
		return PhaseCompleted, true
	case StatusCancelled:
		return PhaseIdle, true
	}
	return "", false
}
