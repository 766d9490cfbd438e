// README: Order draft state; accumulates input and keeps derived fields fresh.
package draft

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"glazovcab/internal/modules/geo"
	"glazovcab/internal/modules/pricing"
	"glazovcab/internal/modules/ride"
	"glazovcab/internal/types"
)

var ErrIncompleteAddress = errors.New("origin and destination addresses are required")

// Snapshot is a read-only view of the draft for handlers and UI bindings.
type Snapshot struct {
	FromAddress string
	ToAddress   string
	From        *types.Point
	To          *types.Point
	Tariff      pricing.Tariff
	Payment     pricing.PaymentMethod
	DistanceKm  float64
	DurationMin int
	Price       int64
}

// Draft holds one in-progress order composition. Derived fields always equal
// the recomputation from the current coordinates and tariff; when either
// coordinate is missing they are zero, never stale.
type Draft struct {
	defaultCenter types.Point

	mu          sync.Mutex
	fromAddress string
	toAddress   string
	from        *types.Point
	to          *types.Point
	tariff      pricing.Tariff
	payment     pricing.PaymentMethod
	distanceKm  float64
	durationMin int
	price       int64
}

func New(defaultCenter types.Point) *Draft {
	return &Draft{
		defaultCenter: defaultCenter,
		tariff:        pricing.TariffEconomy,
		payment:       pricing.PaymentCash,
	}
}

// SetOrigin replaces the origin address text and, when pt is non-nil, the
// origin coordinate. A nil pt leaves a previously resolved coordinate in
// place; use ClearOrigin to drop it.
func (d *Draft) SetOrigin(address string, pt *types.Point) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fromAddress = address
	if pt != nil {
		p := *pt
		d.from = &p
	}
	d.recomputeLocked()
}

// SetDestination mirrors SetOrigin for the destination.
func (d *Draft) SetDestination(address string, pt *types.Point) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.toAddress = address
	if pt != nil {
		p := *pt
		d.to = &p
	}
	d.recomputeLocked()
}

func (d *Draft) ClearOrigin() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.from = nil
	d.recomputeLocked()
}

func (d *Draft) ClearDestination() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.to = nil
	d.recomputeLocked()
}

func (d *Draft) SetTariff(t pricing.Tariff) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tariff = t
	d.recomputeLocked()
}

// SetPaymentMethod replaces the payment selection. Price does not depend on
// it, so no recomputation happens.
func (d *Draft) SetPaymentMethod(m pricing.PaymentMethod) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.payment = m
}

// Reset clears all fields to the initial empty state.
func (d *Draft) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fromAddress = ""
	d.toAddress = ""
	d.from = nil
	d.to = nil
	d.tariff = pricing.TariffEconomy
	d.payment = pricing.PaymentCash
	d.distanceKm = 0
	d.durationMin = 0
	d.price = 0
}

func (d *Draft) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	snap := Snapshot{
		FromAddress: d.fromAddress,
		ToAddress:   d.toAddress,
		Tariff:      d.tariff,
		Payment:     d.payment,
		DistanceKm:  d.distanceKm,
		DurationMin: d.durationMin,
		Price:       d.price,
	}
	if d.from != nil {
		p := *d.from
		snap.From = &p
	}
	if d.to != nil {
		p := *d.to
		snap.To = &p
	}
	return snap
}

// DurationMin returns the last derived duration estimate.
func (d *Draft) DurationMin() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.durationMin
}

// BuildOrder turns the draft into a submittable order record. Blank address
// text fails; a missing coordinate falls back to the configured default
// center (an explicit, documented fallback).
func (d *Draft) BuildOrder(userID types.ID) (*ride.Order, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if strings.TrimSpace(d.fromAddress) == "" || strings.TrimSpace(d.toAddress) == "" {
		return nil, ErrIncompleteAddress
	}
	from := d.defaultCenter
	if d.from != nil {
		from = *d.from
	}
	to := d.defaultCenter
	if d.to != nil {
		to = *d.to
	}
	return &ride.Order{
		ID:             types.ID(uuid.NewString()),
		UserID:         userID,
		FromAddress:    d.fromAddress,
		ToAddress:      d.toAddress,
		FromLat:        from.Lat,
		FromLng:        from.Lng,
		ToLat:          to.Lat,
		ToLng:          to.Lng,
		Tariff:         d.tariff,
		PaymentMethod:  d.payment,
		EstimatedPrice: d.price,
		DistanceKm:     d.distanceKm,
		Status:         ride.StatusSearching,
		CreatedAt:      time.Now(),
	}, nil
}

// recomputeLocked rederives distance, duration and price. Both coordinates
// must be present; otherwise all three reset to zero so no stale price is
// ever displayed.
func (d *Draft) recomputeLocked() {
	if d.from == nil || d.to == nil {
		d.distanceKm = 0
		d.durationMin = 0
		d.price = 0
		return
	}
	d.distanceKm = geo.DistanceKm(*d.from, *d.to)
	d.durationMin = geo.EstimateDurationMin(d.distanceKm)
	d.price = pricing.EstimatePrice(d.distanceKm, d.tariff)
}
