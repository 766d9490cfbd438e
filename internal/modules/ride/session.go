// README: Lifecycle session; owns the local state of one active order.
package ride

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"glazovcab/internal/modules/history"
	"glazovcab/internal/types"
)

var (
	ErrRideActive   = errors.New("ride already in progress")
	ErrNoActiveRide = errors.New("no active ride")
	ErrNotCompleted = errors.New("no completed ride awaiting rating")
	ErrBadRating    = errors.New("rating must be between 1 and 5")
)

// remoteWriteTimeout bounds best-effort patches issued outside a request.
const remoteWriteTimeout = 10 * time.Second

// State is the observable lifecycle state handed to UI bindings.
type State struct {
	Phase   Phase
	OrderID types.ID
	Order   *Order
	Message string // set when Phase == PhaseError
}

// DraftSource is the order draft the session submits from. Implemented by
// the draft module; declared here so the dependency points one way.
type DraftSource interface {
	BuildOrder(userID types.ID) (*Order, error)
	DurationMin() int
	Reset()
}

// Archiver persists completed rides. Implemented by the history store.
type Archiver interface {
	InsertOrReplace(ctx context.Context, r history.Record) error
}

// Session is the single mutation point for one client's order lifecycle.
// Every operation and every remote update is serialized through s.mu, and
// remote updates are applied in arrival order by the subscription pump.
type Session struct {
	channel       Channel
	archive       Archiver
	draft         DraftSource
	searchTimeout time.Duration
	log           *slog.Logger

	mu          sync.Mutex
	state       State
	gen         int         // submission generation; guards stale create results
	abort       bool        // cancel was requested while Submitting
	watching    types.ID    // order id of the active subscription, "" when none
	release     func()      // releases the active subscription
	timer       *time.Timer // driver search timeout, nil when disabled
	durationMin int         // duration estimate captured at submit, for archival

	subs    map[int]func(State)
	nextSub int
}

func NewSession(channel Channel, archive Archiver, draft DraftSource, searchTimeout time.Duration, log *slog.Logger) *Session {
	return &Session{
		channel:       channel,
		archive:       archive,
		draft:         draft,
		searchTimeout: searchTimeout,
		log:           log,
		state:         State{Phase: PhaseIdle},
		subs:          make(map[int]func(State)),
	}
}

// Subscribe registers an observer for state changes and returns an
// unsubscribe func. Callbacks run with the session lock held; they must
// return quickly and must not call back into the session.
func (s *Session) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// State returns a copy of the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Submit builds an order from the draft and sends it to the remote channel.
// Draft validation errors leave the lifecycle untouched; a create failure
// lands in PhaseError. On success the session subscribes to the new order.
func (s *Session) Submit(ctx context.Context, userID types.ID) (State, error) {
	s.mu.Lock()
	if s.state.Phase != PhaseIdle && s.state.Phase != PhaseError {
		st := s.state
		s.mu.Unlock()
		return st, ErrRideActive
	}
	o, err := s.draft.BuildOrder(userID)
	if err != nil {
		st := s.state
		s.mu.Unlock()
		return st, err
	}
	dur := s.draft.DurationMin()
	s.gen++
	gen := s.gen
	s.abort = false
	s.setStateLocked(State{Phase: PhaseSubmitting})
	s.mu.Unlock()

	// The create call is a suspension point; the lock is not held so the
	// draft stays editable and cancel stays responsive.
	id, createErr := s.channel.Create(ctx, o)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return s.state, nil
	}
	if createErr != nil {
		s.setStateLocked(State{Phase: PhaseError, Message: "order submission failed: " + createErr.Error()})
		return s.state, fmt.Errorf("submitting order: %w", createErr)
	}
	if s.abort {
		// Cancel arrived while the create was in flight: never enter
		// Searching, cancel the freshly created order remotely.
		s.abort = false
		s.draft.Reset()
		s.setStateLocked(State{Phase: PhaseIdle})
		go s.requestRemoteCancel(id)
		return s.state, nil
	}
	o.ID = id
	// The order is on its way; the draft is free for the next composition.
	// The duration estimate is kept here for archival on completion.
	s.durationMin = dur
	s.draft.Reset()
	s.setStateLocked(State{Phase: PhaseSearching, OrderID: id, Order: o})
	s.watchLocked(id)
	return s.state, nil
}

// Cancel aborts the active order. The local transition is immediate and
// optimistic; the remote cancel is requested in the background and a failure
// there never reverts the local state.
func (s *Session) Cancel(ctx context.Context) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state.Phase {
	case PhaseSubmitting:
		s.abort = true
		return s.state, nil
	case PhaseSearching, PhaseDriverFound:
		id := s.state.OrderID
		s.dropSubscriptionLocked()
		s.draft.Reset()
		s.setStateLocked(State{Phase: PhaseIdle})
		go s.requestRemoteCancel(id)
		return s.state, nil
	default:
		return s.state, ErrNoActiveRide
	}
}

// Rate records the user rating for the completed ride and returns the
// session to Idle. The remote write is best effort; the archived history
// record already exists by the time rating is possible.
func (s *Session) Rate(ctx context.Context, rating int, tip int64) (State, error) {
	if rating < 1 || rating > 5 {
		return s.State(), ErrBadRating
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Phase != PhaseCompleted {
		return s.state, ErrNotCompleted
	}
	id := s.state.OrderID
	s.draft.Reset()
	s.setStateLocked(State{Phase: PhaseIdle})
	go s.requestRemoteRating(id, rating, tip)
	return s.state, nil
}

// ClearError acknowledges a surfaced error and rests the session at Idle so
// the user can retry.
func (s *Session) ClearError() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Phase == PhaseError {
		s.setStateLocked(State{Phase: PhaseIdle})
	}
	return s.state
}

// watchLocked establishes the one subscription for this order id. Called
// exactly once per Searching entry, with s.mu held.
func (s *Session) watchLocked(id types.ID) {
	updates, release, err := s.channel.Subscribe(context.Background(), id)
	if err != nil {
		s.setStateLocked(State{Phase: PhaseError, Message: "order subscription failed: " + err.Error()})
		return
	}
	s.watching = id
	s.release = release
	if s.searchTimeout > 0 {
		s.timer = time.AfterFunc(s.searchTimeout, func() { s.onSearchTimeout(id) })
	}
	go s.pump(id, updates)
}

// pump applies remote updates one at a time, preserving arrival order.
func (s *Session) pump(id types.ID, updates <-chan Update) {
	for u := range updates {
		s.apply(id, u)
	}
}

func (s *Session) apply(id types.ID, u Update) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Events are keyed by order id: once the local state has left the chain
	// for this id a stale delivery must not resurrect the order.
	if s.watching != id {
		return
	}
	if u.Err != nil {
		s.dropSubscriptionLocked()
		s.setStateLocked(State{Phase: PhaseError, Message: "order channel failed: " + u.Err.Error()})
		return
	}

	o := u.Order
	next, ok := phaseFor(o.Status)
	if !ok {
		s.log.Warn("ignoring unknown order status", "order_id", string(id), "status", string(o.Status))
		return
	}

	switch next {
	case PhaseSearching:
		// Still waiting; refresh the local mirror.
		s.state.Order = o
		s.notifyLocked()
	case PhaseDriverFound, PhaseInProgress:
		if s.state.Phase == next {
			// Duplicate delivery of the same status: refresh only.
			s.state.Order = o
			s.notifyLocked()
			return
		}
		s.setStateLocked(State{Phase: next, OrderID: id, Order: o})
	case PhaseCompleted:
		// Archive before the transition yields control; rating is a
		// best-effort addendum, not a precondition for archiving.
		s.archiveLocked(o)
		s.dropSubscriptionLocked()
		s.setStateLocked(State{Phase: PhaseCompleted, OrderID: id, Order: o})
	case PhaseIdle:
		// Remote cancellation.
		s.dropSubscriptionLocked()
		s.setStateLocked(State{Phase: PhaseIdle})
	}
}

func (s *Session) onSearchTimeout(id types.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.watching != id || s.state.Phase != PhaseSearching {
		return
	}
	s.dropSubscriptionLocked()
	s.setStateLocked(State{Phase: PhaseError, Message: "driver search timed out"})
	go s.requestRemoteCancel(id)
}

func (s *Session) archiveLocked(o *Order) {
	rec := history.Record{
		ID:            string(o.ID),
		FromAddress:   o.FromAddress,
		ToAddress:     o.ToAddress,
		FromLat:       o.FromLat,
		FromLng:       o.FromLng,
		ToLat:         o.ToLat,
		ToLng:         o.ToLng,
		Tariff:        string(o.Tariff),
		PaymentMethod: string(o.PaymentMethod),
		Price:         o.EstimatedPrice,
		DistanceKm:    o.DistanceKm,
		DurationMin:   s.durationMin,
		Status:        string(StatusCompleted),
		Rating:        o.Rating,
		DriverName:    o.DriverName,
		DriverPhone:   o.DriverPhone,
		CarModel:      o.CarModel,
		CarPlate:      o.CarPlate,
		CreatedAt:     o.CreatedAt,
	}
	ctx, cancel := context.WithTimeout(context.Background(), remoteWriteTimeout)
	defer cancel()
	if err := s.archive.InsertOrReplace(ctx, rec); err != nil {
		s.log.Error("archiving completed ride", "order_id", rec.ID, "err", err)
	}
}

// dropSubscriptionLocked releases the active subscription and stops the
// search timer. No subscription may outlive its owning order's lifecycle.
func (s *Session) dropSubscriptionLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.release != nil {
		s.release()
		s.release = nil
	}
	s.watching = ""
}

func (s *Session) setStateLocked(st State) {
	s.state = st
	s.notifyLocked()
}

func (s *Session) notifyLocked() {
	for _, fn := range s.subs {
		fn(s.state)
	}
}

func (s *Session) requestRemoteCancel(id types.ID) {
	ctx, cancel := context.WithTimeout(context.Background(), remoteWriteTimeout)
	defer cancel()
	if err := s.channel.PatchStatus(ctx, id, StatusCancelled); err != nil {
		s.log.Error("remote cancel failed", "order_id", string(id), "err", err)
	}
}

func (s *Session) requestRemoteRating(id types.ID, rating int, tip int64) {
	ctx, cancel := context.WithTimeout(context.Background(), remoteWriteTimeout)
	defer cancel()
	if err := s.channel.PatchRating(ctx, id, rating, tip); err != nil {
		s.log.Error("remote rating failed", "order_id", string(id), "err", err)
	}
}
