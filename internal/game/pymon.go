package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	// MaxEnergy is both the starting energy of a pymon and its ceiling.
	MaxEnergy = 3
	MinEnergy = 0
)

// PlayerState holds everything that makes a creature playable: energy,
// inventory and battle history. Bench and location are owned by the session.
type PlayerState struct {
	energy    int
	inventory *Inventory
	history   []BattleRecord
}

// NewPlayerState creates a fully rested pymon payload.
func NewPlayerState(capacity int) *PlayerState {
	return &PlayerState{
		energy:    MaxEnergy,
		inventory: NewInventory(capacity),
	}
}

// Energy returns the current energy, always within [MinEnergy, MaxEnergy].
func (p *PlayerState) Energy() int {
	return p.energy
}

// RestoreEnergy adds one energy. Returns false if energy was already at the cap.
func (p *PlayerState) RestoreEnergy() bool {
	if p.energy >= MaxEnergy {
		return false
	}
	p.energy++
	return true
}

// DrainEnergy removes one energy, never going below MinEnergy.
func (p *PlayerState) DrainEnergy() {
	if p.energy > MinEnergy {
		p.energy--
	}
}

// Inventory returns the carried items.
func (p *PlayerState) Inventory() *Inventory {
	return p.inventory
}

// PickUp moves the named item from the location into the inventory.
// Nothing changes unless the pickup succeeds.
func (p *PlayerState) PickUp(w *World, loc LocationID, name string) (*Item, error) {
	item, err := w.FindItem(loc, name)
	if err != nil {
		return nil, err
	}
	if !item.Pickable() {
		return nil, fmt.Errorf("%s: %w", name, ErrNotPickable)
	}
	if p.inventory.Full() {
		return nil, fmt.Errorf("%s: %w", name, ErrInventoryFull)
	}

	if err := w.removeItem(loc, item); err != nil {
		return nil, err
	}
	if err := p.inventory.Add(item); err != nil {
		// Put it back where it was so the item is never lost.
		w.restoreItem(loc, item)
		return nil, err
	}
	return item, nil
}

// UseItem applies the effect of a carried item. Effects are looked up by item
// name in the table; the item's consumable flag gates whether it can be used.
func (p *PlayerState) UseItem(name string, effects EffectTable) (EffectKind, error) {
	item := p.inventory.Find(name)
	if item == nil {
		return EffectNone, fmt.Errorf("%s: %w", name, ErrItemNotFound)
	}
	if !item.Consumable() {
		return EffectNone, fmt.Errorf("%s: %w", name, ErrNotConsumable)
	}

	switch kind := effects.Lookup(name); kind {
	case EffectRestore:
		if !p.RestoreEnergy() {
			return kind, fmt.Errorf("%s: %w", name, ErrAlreadyFull)
		}
		p.inventory.Remove(item)
		return kind, nil
	case EffectSingleUse:
		p.inventory.Remove(item)
		return kind, nil
	default:
		return kind, fmt.Errorf("%s: %w", name, ErrNotUsable)
	}
}

// HasEffect reports whether any carried item has the given effect.
func (p *PlayerState) HasEffect(kind EffectKind, effects EffectTable) bool {
	for _, it := range p.inventory.items {
		if effects.Lookup(it.name) == kind {
			return true
		}
	}
	return false
}

// RecordBattle appends a duel to the history.
func (p *PlayerState) RecordBattle(rec BattleRecord) {
	p.history = append(p.history, rec)
}

// History returns a copy of the battle history, oldest first.
func (p *PlayerState) History() []BattleRecord {
	out := make([]BattleRecord, len(p.history))
	copy(out, p.history)
	return out
}

// BattleRecord summarises one finished duel.
type BattleRecord struct {
	ID       uuid.UUID `json:"id"`
	Time     time.Time `json:"time"`
	Opponent string    `json:"opponent"`
	Wins     int       `json:"wins"`
	Draws    int       `json:"draws"`
	Losses   int       `json:"losses"`
	Outcome  string    `json:"outcome"`
}

// NewBattleRecord stamps a record with a fresh id.
func NewBattleRecord(at time.Time, opponent string, wins, draws, losses int, outcome string) BattleRecord {
	return BattleRecord{
		ID:       uuid.New(),
		Time:     at,
		Opponent: opponent,
		Wins:     wins,
		Draws:    draws,
		Losses:   losses,
		Outcome:  outcome,
	}
}

// BattleTotals sums wins, draws and losses across records.
func BattleTotals(records []BattleRecord) (wins, draws, losses int) {
	for _, r := range records {
		wins += r.Wins
		draws += r.Draws
		losses += r.Losses
	}
	return wins, draws, losses
}
