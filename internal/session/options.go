package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/pixil98/go-pymon/internal/combat"
	"github.com/pixil98/go-pymon/internal/game"
)

type SessionOpt func(*Session)

// WithRand sets the random source for starting placement, opponent hands and
// releases.
func WithRand(r combat.Rand) SessionOpt {
	return func(s *Session) {
		s.rand = r
	}
}

// WithEffects replaces the item effect table.
func WithEffects(e game.EffectTable) SessionOpt {
	return func(s *Session) {
		s.effects = e
	}
}

// WithPlayerPresence sets whether the active creature is listed among the
// creatures of the location it stands in.
func WithPlayerPresence(present bool) SessionOpt {
	return func(s *Session) {
		s.presence = present
	}
}

// WithPublisher delivers every report to p.
func WithPublisher(p Publisher) SessionOpt {
	return func(s *Session) {
		s.publisher = p
	}
}

// WithClock sets the time source used to stamp battle records.
func WithClock(now func() time.Time) SessionOpt {
	return func(s *Session) {
		s.now = now
	}
}

// WithID fixes the session id instead of generating one.
func WithID(id uuid.UUID) SessionOpt {
	return func(s *Session) {
		s.id = id
	}
}
