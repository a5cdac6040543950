package combat

import "github.com/pixil98/go-pymon/internal/game"

// PymonFighter adapts a playable creature for the duel engine.
type PymonFighter struct {
	Creature *game.Creature
}

func (f *PymonFighter) CombatName() string { return f.Creature.Name() }

func (f *PymonFighter) Energy() int {
	if p := f.Creature.Pymon(); p != nil {
		return p.Energy()
	}
	return 0
}

func (f *PymonFighter) DrainEnergy() {
	if p := f.Creature.Pymon(); p != nil {
		p.DrainEnergy()
	}
}
