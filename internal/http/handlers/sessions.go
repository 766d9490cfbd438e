// README: Per-user session registry; one draft and one lifecycle per user.
package handlers

import (
	"log/slog"
	"sync"

	"glazovcab/internal/config"
	"glazovcab/internal/modules/draft"
	"glazovcab/internal/modules/ride"
	"glazovcab/internal/types"
)

// UserSession bundles the draft and lifecycle owned by one user.
type UserSession struct {
	Draft *draft.Draft
	Ride  *ride.Session
}

// Sessions creates user sessions on demand and hands back the same instance
// for the lifetime of the process. The dev build has one real user, but the
// registry keeps the handlers user-count agnostic.
type Sessions struct {
	channel ride.Channel
	archive ride.Archiver
	cfg     config.RideConfig
	log     *slog.Logger

	mu     sync.Mutex
	byUser map[types.ID]*UserSession
}

func NewSessions(channel ride.Channel, archive ride.Archiver, cfg config.RideConfig, log *slog.Logger) *Sessions {
	return &Sessions{
		channel: channel,
		archive: archive,
		cfg:     cfg,
		log:     log,
		byUser:  make(map[types.ID]*UserSession),
	}
}

func (s *Sessions) For(userID types.ID) *UserSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	if us, ok := s.byUser[userID]; ok {
		return us
	}
	d := draft.New(s.cfg.DefaultCenter)
	us := &UserSession{
		Draft: d,
		Ride:  ride.NewSession(s.channel, s.archive, d, s.cfg.SearchTimeout, s.log.With("user_id", string(userID))),
	}
	s.byUser[userID] = us
	return us
}
