package game

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// LocationSpec defines a location loaded from asset files, along with what
// is placed there at load time.
type LocationSpec struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Doors       map[Direction]string `json:"doors,omitempty"`     // direction -> neighbour name
	Items       []string             `json:"items,omitempty"`     // item names placed here
	Creatures   []string             `json:"creatures,omitempty"` // creature names placed here
}

// Validate satisfies storage.ValidatingSpec.
// Cross references (neighbours, items, creatures) are checked when the world is built.
func (s *LocationSpec) Validate() error {
	el := errors.NewErrorList()

	if s.Name == "" {
		el.Add(fmt.Errorf("location name is required"))
	}
	for dir, name := range s.Doors {
		if !dir.Valid() {
			el.Add(fmt.Errorf("door %d: %w", int(dir), ErrInvalidDirection))
		}
		if name == "" {
			el.Add(fmt.Errorf("door %s: location name is required", dir))
		}
	}

	return el.Err()
}

// LocationID is a stable handle into a World's location arena.
type LocationID int

// NoLocation marks a missing door.
const NoLocation LocationID = -1

// Location is a node in the world graph. Doors hold handles, not pointers.
type Location struct {
	name        string
	description string
	doors       [numDirections]LocationID
	creatures   []*Creature
	items       []*Item
}

func newLocation(name, description string) *Location {
	l := &Location{
		name:        name,
		description: description,
	}
	for i := range l.doors {
		l.doors[i] = NoLocation
	}
	return l
}

// LocationView is the read-only snapshot of a location.
type LocationView struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Doors       []DoorView     `json:"doors,omitempty"`
	Creatures   []CreatureView `json:"creatures,omitempty"`
	Items       []ItemView     `json:"items,omitempty"`
}

// DoorView names the neighbour behind one door.
type DoorView struct {
	Direction Direction `json:"direction"`
	Location  string    `json:"location"`
}

// Door returns the neighbour name in a direction, or "" if there is no door.
func (v LocationView) Door(dir Direction) string {
	for _, d := range v.Doors {
		if d.Direction == dir {
			return d.Location
		}
	}
	return ""
}

// HasItem reports whether an item with the given name is listed.
func (v LocationView) HasItem(name string) bool {
	for _, it := range v.Items {
		if it.Name == name {
			return true
		}
	}
	return false
}

// HasCreature reports whether a creature with the given name is listed.
func (v LocationView) HasCreature(name string) bool {
	for _, c := range v.Creatures {
		if c.Name == name {
			return true
		}
	}
	return false
}
