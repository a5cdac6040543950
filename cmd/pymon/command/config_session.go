package command

import (
	"fmt"
	"sync/atomic"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-pymon/internal/combat"
	"github.com/pixil98/go-pymon/internal/display"
	"github.com/pixil98/go-pymon/internal/game"
	"github.com/pixil98/go-pymon/internal/session"
)

// SessionConfig holds the game rules and presentation shared by every
// session.
type SessionConfig struct {
	InventoryCapacity int              `json:"inventory_capacity"`
	Effects           game.EffectTable `json:"effects"`
	// PlayerPresence places the active pymon at the player's location.
	PlayerPresence *bool `json:"player_presence"`
	// Seed makes sessions reproducible. Session n uses Seed+n.
	Seed      *uint64           `json:"seed"`
	Width     int               `json:"width"`
	Templates map[string]string `json:"templates"`
}

func (c *SessionConfig) validate() error {
	el := errors.NewErrorList()

	if c.InventoryCapacity < 0 {
		el.Add(fmt.Errorf("inventory_capacity must not be negative"))
	}
	if c.Width < 0 {
		el.Add(fmt.Errorf("width must not be negative"))
	}

	return el.Err()
}

func (c *SessionConfig) capacity() int {
	if c.InventoryCapacity == 0 {
		return game.DefaultInventoryCapacity
	}
	return c.InventoryCapacity
}

func (c *SessionConfig) BuildRenderer() (*display.Renderer, error) {
	return display.NewRenderer(c.Width, c.Templates)
}

// SessionOpts returns a factory producing the options of each new session.
func (c *SessionConfig) SessionOpts(pub session.Publisher) func() []session.SessionOpt {
	var started atomic.Uint64

	return func() []session.SessionOpt {
		var opts []session.SessionOpt
		if c.Effects != nil {
			opts = append(opts, session.WithEffects(c.Effects))
		}
		if c.PlayerPresence != nil {
			opts = append(opts, session.WithPlayerPresence(*c.PlayerPresence))
		}
		if c.Seed != nil {
			n := started.Add(1) - 1
			opts = append(opts, session.WithRand(combat.NewRand(*c.Seed+n)))
		}
		if pub != nil {
			opts = append(opts, session.WithPublisher(pub))
		}
		return opts
	}
}
