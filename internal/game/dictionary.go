package game

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-pymon/internal/storage"
)

// Dictionary holds the stores a world is built from. It is the boundary
// between loaders (asset files, CSV) and the world graph.
type Dictionary struct {
	Locations storage.Storer[*LocationSpec]
	Items     storage.Storer[*ItemSpec]
	Creatures storage.Storer[*CreatureSpec]
}

// BuildWorld resolves every cross reference and returns a sealed world.
// Adoptable creatures get inventories of the given capacity.
func (d *Dictionary) BuildWorld(capacity int) (*World, error) {
	w := NewWorld()
	el := errors.NewErrorList()

	items := map[string]*Item{}
	for _, key := range d.Items.Keys() {
		spec := d.Items.Get(key)
		if _, dup := items[spec.Name]; dup {
			el.Add(fmt.Errorf("item %s: duplicate name %q", key, spec.Name))
			continue
		}
		items[spec.Name] = NewItemFromSpec(spec)
	}

	creatures := map[string]*Creature{}
	for _, key := range d.Creatures.Keys() {
		spec := d.Creatures.Get(key)
		if _, dup := creatures[spec.Name]; dup {
			el.Add(fmt.Errorf("creature %s: duplicate name %q", key, spec.Name))
			continue
		}
		c := NewCreatureFromSpec(spec, capacity)
		creatures[spec.Name] = c
		w.AddToRoster(c)
	}

	var specs []*LocationSpec
	for _, key := range d.Locations.Keys() {
		spec := d.Locations.Get(key)
		if _, err := w.AddLocation(spec.Name, spec.Description); err != nil {
			el.Add(fmt.Errorf("location %s: %w", key, err))
			continue
		}
		specs = append(specs, spec)
	}
	if err := el.Err(); err != nil {
		return nil, err
	}

	byName := make(map[string]*LocationSpec, len(specs))
	for _, spec := range specs {
		byName[spec.Name] = spec
	}

	for _, spec := range specs {
		from, _ := w.Find(spec.Name)
		for _, dir := range Directions() {
			target, ok := spec.Doors[dir]
			if !ok || target == "" {
				continue
			}
			to, found := w.Find(target)
			if !found {
				el.Add(fmt.Errorf("location %q door %s: %w: %q", spec.Name, dir, ErrUnknownLocation, target))
				continue
			}
			if back := byName[target].Doors[dir.Opposite()]; back != "" && back != spec.Name {
				el.Add(fmt.Errorf("location %q door %s leads to %q whose %s door leads to %q",
					spec.Name, dir, target, dir.Opposite(), back))
				continue
			}
			if err := w.doorTaken(from, dir, to); err != nil {
				el.Add(fmt.Errorf("location %q door %s: %w", spec.Name, dir, err))
				continue
			}
			el.Add(w.Connect(from, dir, to))
		}

		for _, name := range spec.Items {
			item, ok := items[name]
			if !ok {
				el.Add(fmt.Errorf("location %q: %w: %q", spec.Name, ErrItemNotFound, name))
				continue
			}
			if err := w.PlaceItem(from, item); err != nil {
				el.Add(fmt.Errorf("location %q: %w", spec.Name, err))
			}
		}

		for _, name := range spec.Creatures {
			c, ok := creatures[name]
			if !ok {
				el.Add(fmt.Errorf("location %q: %w: %q", spec.Name, ErrCreatureNotFound, name))
				continue
			}
			if err := w.PlaceCreature(from, c); err != nil {
				el.Add(fmt.Errorf("location %q: %w", spec.Name, err))
			}
		}
	}
	if err := el.Err(); err != nil {
		return nil, err
	}

	w.Seal()
	return w, nil
}

// LoadCSVDictionary reads the flat tabular world format: a creatures file
// (name, description, adoptable), an items file (name, description, pickable,
// consumable) and a locations file (name, description, west, north, east,
// south, plus optional ';' separated items and creatures columns).
func LoadCSVDictionary(creaturesPath, itemsPath, locationsPath string) (*Dictionary, error) {
	d := &Dictionary{
		Locations: storage.NewMemoryStore[*LocationSpec](),
		Items:     storage.NewMemoryStore[*ItemSpec](),
		Creatures: storage.NewMemoryStore[*CreatureSpec](),
	}

	rows, err := storage.ReadCSVFile(creaturesPath)
	if err != nil {
		return nil, fmt.Errorf("reading creatures: %w", err)
	}
	el := errors.NewErrorList()
	for i, row := range rows {
		spec := &CreatureSpec{
			Name:        row["name"],
			Description: row["description"],
			Adoptable:   row.Flag("adoptable"),
		}
		if d.Creatures.Get(spec.Name) != nil {
			el.Add(fmt.Errorf("creatures row %d: duplicate name %q", i+1, spec.Name))
			continue
		}
		if err := d.Creatures.Save(spec.Name, spec); err != nil {
			el.Add(fmt.Errorf("creatures row %d: %w", i+1, err))
		}
	}

	rows, err = storage.ReadCSVFile(itemsPath)
	if err != nil {
		return nil, fmt.Errorf("reading items: %w", err)
	}
	for i, row := range rows {
		spec := &ItemSpec{
			Name:        row["name"],
			Description: row["description"],
			Pickable:    row.Flag("pickable"),
			Consumable:  row.Flag("consumable"),
		}
		if d.Items.Get(spec.Name) != nil {
			el.Add(fmt.Errorf("items row %d: duplicate name %q", i+1, spec.Name))
			continue
		}
		if err := d.Items.Save(spec.Name, spec); err != nil {
			el.Add(fmt.Errorf("items row %d: %w", i+1, err))
		}
	}

	rows, err = storage.ReadCSVFile(locationsPath)
	if err != nil {
		return nil, fmt.Errorf("reading locations: %w", err)
	}
	for i, row := range rows {
		spec := &LocationSpec{
			Name:        row["name"],
			Description: row["description"],
			Doors:       map[Direction]string{},
			Items:       row.List("items"),
			Creatures:   row.List("creatures"),
		}
		for _, dir := range Directions() {
			if ref := row.Ref(dir.String()); ref != "" {
				spec.Doors[dir] = ref
			}
		}
		if d.Locations.Get(spec.Name) != nil {
			el.Add(fmt.Errorf("locations row %d: duplicate name %q", i+1, spec.Name))
			continue
		}
		if err := d.Locations.Save(spec.Name, spec); err != nil {
			el.Add(fmt.Errorf("locations row %d: %w", i+1, err))
		}
	}

	if err := el.Err(); err != nil {
		return nil, err
	}
	return d, nil
}
