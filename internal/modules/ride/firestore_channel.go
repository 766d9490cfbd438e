// README: Firestore implementation of the remote order channel.
package ride

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"glazovcab/internal/types"
)

// FirestoreChannel keeps order documents in a Firestore collection and turns
// document snapshot listeners into update streams.
type FirestoreChannel struct {
	client     *firestore.Client
	collection string
}

func NewFirestoreChannel(client *firestore.Client, collection string) *FirestoreChannel {
	return &FirestoreChannel{client: client, collection: collection}
}

func (c *FirestoreChannel) Create(ctx context.Context, o *Order) (types.ID, error) {
	doc := c.client.Collection(c.collection).Doc(string(o.ID))
	if _, err := doc.Set(ctx, o); err != nil {
		return "", fmt.Errorf("creating order document: %w", err)
	}
	return o.ID, nil
}

// Subscribe opens a snapshot listener on the order document. The returned
// channel is closed when the listener ends; calling release stops it.
func (c *FirestoreChannel) Subscribe(ctx context.Context, id types.ID) (<-chan Update, func(), error) {
	ctx, cancel := context.WithCancel(ctx)
	iter := c.client.Collection(c.collection).Doc(string(id)).Snapshots(ctx)

	updates := make(chan Update)
	go func() {
		defer close(updates)
		for {
			snap, err := iter.Next()
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				select {
				case updates <- Update{Err: fmt.Errorf("order snapshot listener: %w", err)}:
				case <-ctx.Done():
				}
				return
			}
			if !snap.Exists() {
				continue
			}
			var o Order
			if err := snap.DataTo(&o); err != nil {
				select {
				case updates <- Update{Err: fmt.Errorf("decoding order document: %w", err)}:
				case <-ctx.Done():
				}
				return
			}
			select {
			case updates <- Update{Order: &o}:
			case <-ctx.Done():
				return
			}
		}
	}()

	release := func() {
		cancel()
		iter.Stop()
	}
	return updates, release, nil
}

func (c *FirestoreChannel) PatchStatus(ctx context.Context, id types.ID, s Status) error {
	_, err := c.client.Collection(c.collection).Doc(string(id)).Update(ctx, []firestore.Update{
		{Path: "status", Value: string(s)},
	})
	if err != nil {
		return fmt.Errorf("patching order status: %w", err)
	}
	return nil
}

func (c *FirestoreChannel) PatchRating(ctx context.Context, id types.ID, rating int, tip int64) error {
	_, err := c.client.Collection(c.collection).Doc(string(id)).Update(ctx, []firestore.Update{
		{Path: "rating", Value: rating},
		{Path: "tip", Value: tip},
	})
	if err != nil {
		return fmt.Errorf("patching order rating: %w", err)
	}
	return nil
}
