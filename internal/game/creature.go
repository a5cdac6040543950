package game

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-errors"
)

// CreatureSpec defines a creature loaded from asset files.
type CreatureSpec struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	// Adoptable creatures are pymons: they can battle, be captured and be played.
	Adoptable bool `json:"adoptable"`
}

// Validate satisfies storage.ValidatingSpec
func (s *CreatureSpec) Validate() error {
	el := errors.NewErrorList()
	if s.Name == "" {
		el.Add(fmt.Errorf("creature name is required"))
	}
	return el.Err()
}

// Creature is a single creature in the world. Adoptable creatures carry a
// PlayerState payload which makes them battle capable and playable.
type Creature struct {
	name        string
	description string
	adoptable   bool

	pymon *PlayerState
}

// NewCreature creates a creature. Adoptable creatures get a fresh PlayerState
// with the given inventory capacity.
func NewCreature(name, description string, adoptable bool, capacity int) *Creature {
	c := &Creature{
		name:        name,
		description: description,
		adoptable:   adoptable,
	}
	if adoptable {
		c.pymon = NewPlayerState(capacity)
	}
	return c
}

// NewCreatureFromSpec creates a creature from its asset definition.
func NewCreatureFromSpec(s *CreatureSpec, capacity int) *Creature {
	return NewCreature(s.Name, s.Description, s.Adoptable, capacity)
}

func (c *Creature) Name() string        { return c.name }
func (c *Creature) Description() string { return c.description }
func (c *Creature) Adoptable() bool     { return c.adoptable }

// Pymon returns the player payload, or nil for creatures that cannot be played.
func (c *Creature) Pymon() *PlayerState {
	return c.pymon
}

// CanBattle reports whether the creature can take part in a duel.
func (c *Creature) CanBattle() bool {
	return c.pymon != nil
}

// MatchName returns true if name matches this creature's name (case-insensitive).
func (c *Creature) MatchName(name string) bool {
	return strings.EqualFold(c.name, strings.TrimSpace(name))
}

// View returns a read-only copy for presentation.
func (c *Creature) View() CreatureView {
	v := CreatureView{
		Name:        c.name,
		Description: c.description,
		Adoptable:   c.adoptable,
	}
	if c.pymon != nil {
		v.Energy = c.pymon.Energy()
		v.MaxEnergy = MaxEnergy
		v.Carrying = c.pymon.Inventory().Len()
	}
	return v
}

// CreatureView is the read-only snapshot of a creature.
type CreatureView struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Adoptable   bool   `json:"adoptable"`
	Energy      int    `json:"energy,omitempty"`
	MaxEnergy   int    `json:"max_energy,omitempty"`
	Carrying    int    `json:"carrying,omitempty"`
}
