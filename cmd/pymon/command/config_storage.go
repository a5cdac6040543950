package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-pymon/internal/commands"
	"github.com/pixil98/go-pymon/internal/game"
	"github.com/pixil98/go-pymon/internal/storage"
)

// StorageConfig points at the world data. Either the three asset directories
// or the three CSV files must be set.
type StorageConfig struct {
	Locations AssetConfig[*game.LocationSpec] `json:"locations"`
	Items     AssetConfig[*game.ItemSpec]     `json:"items"`
	Creatures AssetConfig[*game.CreatureSpec] `json:"creatures"`
	CSV       *CSVConfig                      `json:"csv,omitempty"`

	// Commands replaces the built in command set when set.
	Commands AssetConfig[*commands.Command] `json:"commands"`
}

type CSVConfig struct {
	Creatures string `json:"creatures"`
	Items     string `json:"items"`
	Locations string `json:"locations"`
}

func (c *StorageConfig) BuildDictionary() (*game.Dictionary, error) {
	if c.CSV != nil {
		dict, err := game.LoadCSVDictionary(c.CSV.Creatures, c.CSV.Items, c.CSV.Locations)
		if err != nil {
			return nil, fmt.Errorf("loading csv world: %w", err)
		}
		return dict, nil
	}

	locs, err := c.Locations.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating location store: %w", err)
	}
	items, err := c.Items.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating item store: %w", err)
	}
	creatures, err := c.Creatures.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating creature store: %w", err)
	}

	return &game.Dictionary{
		Locations: locs,
		Items:     items,
		Creatures: creatures,
	}, nil
}

func (c *StorageConfig) BuildCommands() (storage.Storer[*commands.Command], error) {
	if c.Commands.Path == "" {
		return commands.DefaultCommands()
	}
	store, err := c.Commands.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating command store: %w", err)
	}
	return store, nil
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()

	if c.CSV != nil {
		el.Add(validatePath("csv.creatures", c.CSV.Creatures))
		el.Add(validatePath("csv.items", c.CSV.Items))
		el.Add(validatePath("csv.locations", c.CSV.Locations))
	} else {
		el.Add(c.Locations.Validate("locations"))
		el.Add(c.Items.Validate("items"))
		el.Add(c.Creatures.Validate("creatures"))
	}
	if c.Commands.Path != "" {
		el.Add(c.Commands.Validate("commands"))
	}

	return el.Err()
}

type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path"`
}

func (c *AssetConfig[T]) Validate(name string) error {
	return validatePath(name, c.Path)
}

func (c *AssetConfig[T]) BuildFileStore() (*storage.FileStore[T], error) {
	return storage.NewFileStore[T](c.Path)
}

func validatePath(name, path string) error {
	if path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	_, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, path, err)
	}
	return nil
}
