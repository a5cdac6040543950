package game

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// ItemSpec defines an item loaded from asset files.
type ItemSpec struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Pickable    bool   `json:"pickable"`
	Consumable  bool   `json:"consumable"`
}

// Validate satisfies storage.ValidatingSpec
func (s *ItemSpec) Validate() error {
	el := errors.NewErrorList()
	if s.Name == "" {
		el.Add(fmt.Errorf("item name is required"))
	}
	return el.Err()
}

// Item is a single item instance in the world. Its fields never change after
// construction; ownership moves between a location and an inventory.
type Item struct {
	name        string
	description string
	pickable    bool
	consumable  bool
}

// NewItem creates an item instance.
func NewItem(name, description string, pickable, consumable bool) *Item {
	return &Item{
		name:        name,
		description: description,
		pickable:    pickable,
		consumable:  consumable,
	}
}

// NewItemFromSpec creates an item instance from its asset definition.
func NewItemFromSpec(s *ItemSpec) *Item {
	return NewItem(s.Name, s.Description, s.Pickable, s.Consumable)
}

func (i *Item) Name() string        { return i.name }
func (i *Item) Description() string { return i.description }
func (i *Item) Pickable() bool      { return i.pickable }
func (i *Item) Consumable() bool    { return i.consumable }

// View returns a read-only copy for presentation.
func (i *Item) View() ItemView {
	return ItemView{
		Name:        i.name,
		Description: i.description,
		Pickable:    i.pickable,
		Consumable:  i.consumable,
	}
}

// ItemView is the read-only snapshot of an item.
type ItemView struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Pickable    bool   `json:"pickable"`
	Consumable  bool   `json:"consumable"`
}
