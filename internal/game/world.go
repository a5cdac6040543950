package game

import (
	"fmt"
	"slices"
)

// World is the loaded graph of locations together with the items and
// creatures placed in them. Locations live in an arena and refer to each
// other by LocationID, so door cycles never form pointer cycles.
//
// World is not safe for concurrent use; a session serializes all access.
type World struct {
	locations []*Location
	byName    map[string]LocationID

	// Where each placed instance currently lives. An instance is held by at
	// most one location.
	itemAt     map[*Item]LocationID
	creatureAt map[*Creature]LocationID

	// Items picked up from a location. They stay out of the world for good.
	carried map[*Item]struct{}

	// Every creature loaded with the world, placed or not.
	roster []*Creature

	sealed bool
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		byName:     make(map[string]LocationID),
		itemAt:     make(map[*Item]LocationID),
		creatureAt: make(map[*Creature]LocationID),
		carried:    make(map[*Item]struct{}),
	}
}

// AddLocation adds a location and returns its handle.
func (w *World) AddLocation(name, description string) (LocationID, error) {
	if w.sealed {
		return NoLocation, ErrWorldSealed
	}
	if name == "" {
		return NoLocation, fmt.Errorf("location name is required")
	}
	if _, exists := w.byName[name]; exists {
		return NoLocation, fmt.Errorf("%q: %w", name, ErrDuplicateLocation)
	}

	id := LocationID(len(w.locations))
	w.locations = append(w.locations, newLocation(name, description))
	w.byName[name] = id
	return id, nil
}

// Connect links a to b through the door dir, and b back to a through the
// opposite door. Doors previously occupying either slot are unlinked on both
// ends first, so the graph stays symmetric. A location may be connected to
// itself.
func (w *World) Connect(a LocationID, dir Direction, b LocationID) error {
	if w.sealed {
		return ErrWorldSealed
	}
	if !dir.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidDirection, int(dir))
	}
	if !w.valid(a) {
		return fmt.Errorf("%w: %d", ErrUnknownLocation, a)
	}
	if !w.valid(b) {
		return fmt.Errorf("%w: %d", ErrUnknownLocation, b)
	}

	opp := dir.Opposite()
	w.unlink(a, dir)
	w.unlink(b, opp)
	w.locations[a].doors[dir] = b
	w.locations[b].doors[opp] = a
	return nil
}

// doorTaken reports whether connecting a to b through dir would replace a
// door one of them already has.
func (w *World) doorTaken(a LocationID, dir Direction, b LocationID) error {
	if n, ok := w.DoorTo(a, dir); ok && n != b {
		return fmt.Errorf("%s door already leads to %q", dir, w.Name(n))
	}
	if n, ok := w.DoorTo(b, dir.Opposite()); ok && n != a {
		return fmt.Errorf("leads to %q whose %s door already leads to %q", w.Name(b), dir.Opposite(), w.Name(n))
	}
	return nil
}

func (w *World) unlink(id LocationID, dir Direction) {
	n := w.locations[id].doors[dir]
	if n == NoLocation {
		return
	}
	w.locations[id].doors[dir] = NoLocation
	if w.locations[n].doors[dir.Opposite()] == id {
		w.locations[n].doors[dir.Opposite()] = NoLocation
	}
}

// Seal fixes the doors. It is called once loading completes.
func (w *World) Seal() {
	w.sealed = true
}

// DoorTo returns the neighbour behind a door.
func (w *World) DoorTo(id LocationID, dir Direction) (LocationID, bool) {
	if !w.valid(id) || !dir.Valid() {
		return NoLocation, false
	}
	n := w.locations[id].doors[dir]
	return n, n != NoLocation
}

// Find returns the handle of the named location.
func (w *World) Find(name string) (LocationID, bool) {
	id, ok := w.byName[name]
	return id, ok
}

// Len returns the number of locations.
func (w *World) Len() int {
	return len(w.locations)
}

// Locations returns all handles in load order.
func (w *World) Locations() []LocationID {
	ids := make([]LocationID, len(w.locations))
	for i := range ids {
		ids[i] = LocationID(i)
	}
	return ids
}

// Name returns the name of a location, or "" for an unknown handle.
func (w *World) Name(id LocationID) string {
	if !w.valid(id) {
		return ""
	}
	return w.locations[id].name
}

// Location returns a snapshot of a location.
func (w *World) Location(id LocationID) LocationView {
	if !w.valid(id) {
		return LocationView{}
	}
	l := w.locations[id]
	v := LocationView{
		Name:        l.name,
		Description: l.description,
	}
	for _, dir := range Directions() {
		if n := l.doors[dir]; n != NoLocation {
			v.Doors = append(v.Doors, DoorView{Direction: dir, Location: w.locations[n].name})
		}
	}
	for _, c := range l.creatures {
		v.Creatures = append(v.Creatures, c.View())
	}
	for _, it := range l.items {
		v.Items = append(v.Items, it.View())
	}
	return v
}

// PlaceItem puts an item instance in a location.
func (w *World) PlaceItem(id LocationID, item *Item) error {
	if !w.valid(id) {
		return fmt.Errorf("%w: %d", ErrUnknownLocation, id)
	}
	if at, held := w.itemAt[item]; held {
		return fmt.Errorf("item %q in %q: %w", item.Name(), w.Name(at), ErrDuplicatePlacement)
	}
	if _, taken := w.carried[item]; taken {
		return fmt.Errorf("item %q is carried: %w", item.Name(), ErrDuplicatePlacement)
	}
	w.locations[id].items = append(w.locations[id].items, item)
	w.itemAt[item] = id
	return nil
}

// FindItem returns the first item with the given name in a location.
func (w *World) FindItem(id LocationID, name string) (*Item, error) {
	if !w.valid(id) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLocation, id)
	}
	for _, it := range w.locations[id].items {
		if it.Name() == name {
			return it, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", name, ErrItemNotFound)
}

func (w *World) removeItem(id LocationID, item *Item) error {
	l := w.locations[id]
	idx := slices.Index(l.items, item)
	if idx < 0 {
		return fmt.Errorf("%s: %w", item.Name(), ErrItemNotFound)
	}
	l.items = slices.Delete(l.items, idx, idx+1)
	delete(w.itemAt, item)
	w.carried[item] = struct{}{}
	return nil
}

func (w *World) restoreItem(id LocationID, item *Item) {
	delete(w.carried, item)
	w.locations[id].items = append(w.locations[id].items, item)
	w.itemAt[item] = id
}

// PlaceCreature puts a creature in a location.
func (w *World) PlaceCreature(id LocationID, c *Creature) error {
	if !w.valid(id) {
		return fmt.Errorf("%w: %d", ErrUnknownLocation, id)
	}
	if at, held := w.creatureAt[c]; held {
		return fmt.Errorf("creature %q in %q: %w", c.Name(), w.Name(at), ErrDuplicatePlacement)
	}
	w.locations[id].creatures = append(w.locations[id].creatures, c)
	w.creatureAt[c] = id
	return nil
}

// RemoveCreature takes a creature out of whichever location holds it.
// Returns ErrCreatureNotFound if it is not placed anywhere.
func (w *World) RemoveCreature(c *Creature) error {
	id, held := w.creatureAt[c]
	if !held {
		return fmt.Errorf("%s: %w", c.Name(), ErrCreatureNotFound)
	}
	l := w.locations[id]
	if idx := slices.Index(l.creatures, c); idx >= 0 {
		l.creatures = slices.Delete(l.creatures, idx, idx+1)
	}
	delete(w.creatureAt, c)
	return nil
}

// MoveCreature relocates a creature, placing it if it was not held anywhere.
func (w *World) MoveCreature(c *Creature, to LocationID) error {
	if !w.valid(to) {
		return fmt.Errorf("%w: %d", ErrUnknownLocation, to)
	}
	if _, held := w.creatureAt[c]; held {
		if err := w.RemoveCreature(c); err != nil {
			return err
		}
	}
	return w.PlaceCreature(to, c)
}

// CreatureLocation returns where a creature is placed.
func (w *World) CreatureLocation(c *Creature) (LocationID, bool) {
	id, ok := w.creatureAt[c]
	return id, ok
}

// Creatures returns the creatures in a location, in placement order.
func (w *World) Creatures(id LocationID) []*Creature {
	if !w.valid(id) {
		return nil
	}
	return slices.Clone(w.locations[id].creatures)
}

// AddToRoster registers a loaded creature. Placement is separate.
func (w *World) AddToRoster(c *Creature) {
	if !slices.Contains(w.roster, c) {
		w.roster = append(w.roster, c)
	}
}

// Roster returns every creature loaded with the world, in load order.
func (w *World) Roster() []*Creature {
	return slices.Clone(w.roster)
}

// Adoptable returns the creatures in the roster that can be played.
func (w *World) Adoptable() []*Creature {
	var out []*Creature
	for _, c := range w.roster {
		if c.CanBattle() {
			out = append(out, c)
		}
	}
	return out
}

// AllCreatures returns every placed creature, by location then placement order.
func (w *World) AllCreatures() []*Creature {
	var out []*Creature
	for _, l := range w.locations {
		out = append(out, l.creatures...)
	}
	return out
}

func (w *World) valid(id LocationID) bool {
	return id >= 0 && int(id) < len(w.locations)
}
