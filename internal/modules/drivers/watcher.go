// README: Firestore watcher; mirrors available drivers into the local cache.
package drivers

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// reconnectDelay paces retries after a broken snapshot listener.
const reconnectDelay = 5 * time.Second

// Broadcaster pushes fresh marker sets to connected map surfaces.
type Broadcaster interface {
	Broadcast(msg any)
}

// Watcher listens to the remote drivers collection (available drivers only)
// and keeps the redis cache and map surfaces in sync.
type Watcher struct {
	client     *firestore.Client
	collection string
	store      *Store
	broadcast  Broadcaster
	log        *slog.Logger
}

func NewWatcher(client *firestore.Client, collection string, store *Store, broadcast Broadcaster, log *slog.Logger) *Watcher {
	return &Watcher{
		client:     client,
		collection: collection,
		store:      store,
		broadcast:  broadcast,
		log:        log,
	}
}

// Run blocks until ctx is cancelled, reconnecting the listener on failure.
func (w *Watcher) Run(ctx context.Context) {
	for {
		if err := w.listen(ctx); err != nil {
			w.log.Error("driver listener failed", "err", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

func (w *Watcher) listen(ctx context.Context) error {
	iter := w.client.Collection(w.collection).
		Where("isAvailable", "==", true).
		Snapshots(ctx)
	defer iter.Stop()

	for {
		snap, err := iter.Next()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		ds, err := decodeDrivers(snap)
		if err != nil {
			w.log.Error("decoding driver snapshot", "err", err)
			continue
		}
		if err := w.store.ReplaceAll(ctx, ds); err != nil {
			w.log.Error("caching driver snapshot", "err", err)
		}
		if w.broadcast != nil {
			w.broadcast.Broadcast(map[string]any{"type": "drivers", "drivers": ds})
		}
	}
}

func decodeDrivers(snap *firestore.QuerySnapshot) ([]Driver, error) {
	var ds []Driver
	for {
		doc, err := snap.Documents.Next()
		if err == iterator.Done {
			return ds, nil
		}
		if err != nil {
			return nil, err
		}
		var d Driver
		if err := doc.DataTo(&d); err != nil {
			return nil, err
		}
		ds = append(ds, d)
	}
}
