package commands

import (
	"github.com/pixil98/go-pymon/internal/storage"
)

// DefaultCommands returns the built-in command set: the nine numbered menu
// entries plus scout and help.
func DefaultCommands() (*storage.MemoryStore[*Command], error) {
	store := storage.NewMemoryStore[*Command]()
	defs := []struct {
		id  string
		cmd *Command
	}{
		{"inspect", &Command{
			Handler: "inspect", Menu: 1, Category: "look",
			Description: "Inspect your current pymon",
			Aliases:     []string{"me", "status"},
		}},
		{"look", &Command{
			Handler: "inspect_location", Menu: 2, Category: "look",
			Description: "Inspect the current location",
			Aliases:     []string{"l", "where"},
		}},
		{"move", &Command{
			Handler: "move", Menu: 3, Category: "explore",
			Description: "Move through a door",
			Aliases:     []string{"go", "walk"},
			Inputs:      []InputSpec{{Name: "direction", Type: InputTypeString, Required: true}},
		}},
		{"pick", &Command{
			Handler: "pick_item", Menu: 4, Category: "items",
			Description: "Pick up an item at the current location",
			Aliases:     []string{"get", "take"},
			Inputs:      []InputSpec{{Name: "item", Type: InputTypeString, Rest: true}},
		}},
		{"inventory", &Command{
			Handler: "view_inventory", Menu: 5, Category: "items",
			Description: "View the inventory of your pymon",
			Aliases:     []string{"i", "inv"},
		}},
		{"use", &Command{
			Handler: "use_item", Menu: 6, Category: "items",
			Description: "Use a carried item",
			Aliases:     []string{"eat", "drink"},
			Inputs:      []InputSpec{{Name: "item", Type: InputTypeString, Rest: true}},
		}},
		{"challenge", &Command{
			Handler: "challenge", Menu: 7, Category: "battle",
			Description: "Challenge a creature at the current location",
			Aliases:     []string{"fight", "battle"},
			Inputs:      []InputSpec{{Name: "creature", Type: InputTypeString, Rest: true}},
		}},
		{"stats", &Command{
			Handler: "show_stats", Menu: 8, Category: "battle",
			Description: "Show the battle history",
			Aliases:     []string{"history"},
		}},
		{"exit", &Command{
			Handler: "exit", Menu: 9, Category: "other",
			Description: "Leave the game",
			Aliases:     []string{"quit", "q"},
		}},
		{"swap", &Command{
			Handler: "swap_bench", Category: "battle",
			Description: "Swap your pymon with one from the bench",
			Aliases:     []string{"bench"},
			Inputs:      []InputSpec{{Name: "position", Type: InputTypeNumber}},
		}},
		{"scout", &Command{
			Handler: "scout", Category: "explore",
			Description: "Look through a door with binoculars",
			Aliases:     []string{"peek"},
			Inputs:      []InputSpec{{Name: "direction", Type: InputTypeString}},
		}},
		{"help", &Command{
			Handler: "help", Category: "other",
			Description: "List commands, or describe one",
			Aliases:     []string{"?", "menu"},
			Inputs:      []InputSpec{{Name: "command", Type: InputTypeString}},
		}},
	}

	for _, d := range defs {
		if err := store.Save(d.id, d.cmd); err != nil {
			return nil, err
		}
	}
	return store, nil
}
