package session

import (
	"context"

	"github.com/google/uuid"
	"github.com/pixil98/go-pymon/internal/combat"
	"github.com/pixil98/go-pymon/internal/game"
)

// Report is the observable outcome of one action. Fields not touched by the
// action are left empty.
type Report struct {
	SessionID uuid.UUID  `json:"session_id"`
	Action    ActionKind `json:"action"`

	Creature  *game.CreatureView `json:"creature,omitempty"`
	Location  *game.LocationView `json:"location,omitempty"`
	Moved     string             `json:"moved,omitempty"`
	Item      *game.ItemView     `json:"item,omitempty"`
	Effect    game.EffectKind    `json:"effect,omitempty"`
	Inventory []game.ItemView    `json:"inventory,omitempty"`
	Scouted   []ScoutView        `json:"scouted,omitempty"`

	Duel       *combat.Result `json:"duel,omitempty"`
	Captured   string         `json:"captured,omitempty"`
	Released   string         `json:"released,omitempty"`
	ReleasedTo string         `json:"released_to,omitempty"`
	Promoted   string         `json:"promoted,omitempty"`
	Benched    string         `json:"benched,omitempty"`

	Bench   []game.CreatureView `json:"bench,omitempty"`
	History []game.BattleRecord `json:"history,omitempty"`
	Totals  *Totals             `json:"totals,omitempty"`

	GameOver bool `json:"game_over,omitempty"`
	Closed   bool `json:"closed,omitempty"`
}

// ScoutView is what can be seen through one door.
type ScoutView struct {
	Direction game.Direction    `json:"direction"`
	Location  game.LocationView `json:"location"`
}

// Totals sums the battle history.
type Totals struct {
	Battles int `json:"battles"`
	Wins    int `json:"wins"`
	Draws   int `json:"draws"`
	Losses  int `json:"losses"`
}

// Publisher receives every report a session produces.
type Publisher interface {
	Publish(ctx context.Context, r *Report) error
}
