// README: Remote order channel contract consumed by the lifecycle session.
package ride

import (
	"context"

	"glazovcab/internal/types"
)

// Update is one delivery from a subscription. Exactly one of Order or Err is
// set; an Err delivery terminates the stream.
type Update struct {
	Order *Order
	Err   error
}

// Channel is the remote order store. Delivery is at-least-once per status
// change; consumers must tolerate duplicate deliveries of the same status.
type Channel interface {
	// Create persists a new order document and returns its identifier.
	Create(ctx context.Context, o *Order) (types.ID, error)
	// Subscribe streams order snapshots until the release func is called.
	Subscribe(ctx context.Context, id types.ID) (<-chan Update, func(), error)
	// PatchStatus writes a status back to the remote document (best effort).
	PatchStatus(ctx context.Context, id types.ID, s Status) error
	// PatchRating writes the rating and optional tip (best effort).
	PatchRating(ctx context.Context, id types.ID, rating int, tip int64) error
}
