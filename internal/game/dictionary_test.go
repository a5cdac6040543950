package game

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pixil98/go-pymon/internal/storage"
	"github.com/pixil98/go-testutil"
)

type dictFixture struct {
	locations []*LocationSpec
	items     []*ItemSpec
	creatures []*CreatureSpec
}

func (f dictFixture) build(t *testing.T) *Dictionary {
	t.Helper()
	d := &Dictionary{
		Locations: storage.NewMemoryStore[*LocationSpec](),
		Items:     storage.NewMemoryStore[*ItemSpec](),
		Creatures: storage.NewMemoryStore[*CreatureSpec](),
	}
	for i, s := range f.locations {
		if err := d.Locations.Save(s.Name+string(rune('a'+i)), s); err != nil {
			t.Fatalf("saving location: %v", err)
		}
	}
	for i, s := range f.items {
		if err := d.Items.Save(s.Name+string(rune('a'+i)), s); err != nil {
			t.Fatalf("saving item: %v", err)
		}
	}
	for i, s := range f.creatures {
		if err := d.Creatures.Save(s.Name+string(rune('a'+i)), s); err != nil {
			t.Fatalf("saving creature: %v", err)
		}
	}
	return d
}

func TestDictionary_BuildWorld(t *testing.T) {
	tests := map[string]struct {
		fixture dictFixture
		expErr  string
		check   func(t *testing.T, w *World)
	}{
		"one sided door is mirrored": {
			fixture: dictFixture{
				locations: []*LocationSpec{
					{Name: "A", Doors: map[Direction]string{East: "B"}, Items: []string{"apple"}, Creatures: []string{"Sheep"}},
					{Name: "B"},
				},
				items:     []*ItemSpec{{Name: "apple", Pickable: true, Consumable: true}},
				creatures: []*CreatureSpec{{Name: "Sheep"}, {Name: "Pika", Adoptable: true}},
			},
			check: func(t *testing.T, w *World) {
				a, _ := w.Find("A")
				b, _ := w.Find("B")
				testutil.AssertEqual(t, "east", door(w, a, East), "B")
				testutil.AssertEqual(t, "west", door(w, b, West), "A")
				testutil.AssertEqual(t, "items", len(w.Location(a).Items), 1)
				testutil.AssertEqual(t, "creatures", len(w.Creatures(a)), 1)
				testutil.AssertEqual(t, "roster", len(w.Roster()), 2)
				testutil.AssertEqual(t, "adoptable", len(w.Adoptable()), 1)

				err := w.Connect(a, North, b)
				testutil.AssertEqual(t, "sealed", errors.Is(err, ErrWorldSealed), true)
			},
		},
		"unknown neighbour": {
			fixture: dictFixture{
				locations: []*LocationSpec{{Name: "A", Doors: map[Direction]string{East: "Nowhere"}}},
			},
			expErr: `location "A" door east: unknown location: "Nowhere"`,
		},
		"asymmetric doors": {
			fixture: dictFixture{
				locations: []*LocationSpec{
					{Name: "A", Doors: map[Direction]string{East: "B"}},
					{Name: "B", Doors: map[Direction]string{West: "C"}},
					{Name: "C"},
				},
			},
			expErr: `location "A" door east leads to "B" whose west door leads to "C"`,
		},
		"two locations claim the same back door": {
			fixture: dictFixture{
				locations: []*LocationSpec{
					{Name: "A", Doors: map[Direction]string{East: "B"}},
					{Name: "B"},
					{Name: "C", Doors: map[Direction]string{East: "B"}},
				},
			},
			expErr: `location "C" door east: leads to "B" whose west door already leads to "A"`,
		},
		"self loop declared from both sides": {
			fixture: dictFixture{
				locations: []*LocationSpec{
					{Name: "A", Doors: map[Direction]string{East: "A", West: "A"}},
				},
			},
			check: func(t *testing.T, w *World) {
				a, _ := w.Find("A")
				testutil.AssertEqual(t, "east", door(w, a, East), "A")
				testutil.AssertEqual(t, "west", door(w, a, West), "A")
			},
		},
		"unknown item": {
			fixture: dictFixture{
				locations: []*LocationSpec{{Name: "A", Items: []string{"cake"}}},
			},
			expErr: `location "A": item not found: "cake"`,
		},
		"creature placed twice": {
			fixture: dictFixture{
				locations: []*LocationSpec{
					{Name: "A", Creatures: []string{"Sheep"}},
					{Name: "B", Creatures: []string{"Sheep"}},
				},
				creatures: []*CreatureSpec{{Name: "Sheep"}},
			},
			expErr: "instance is already placed",
		},
		"duplicate names": {
			fixture: dictFixture{
				locations: []*LocationSpec{{Name: "A"}, {Name: "A"}},
				items:     []*ItemSpec{{Name: "apple"}, {Name: "apple"}},
			},
			expErr: `duplicate name "apple"`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w, err := tt.fixture.build(t).BuildWorld(0)
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, w)
		})
	}
}

func TestDictionary_BuildWorld_Fresh(t *testing.T) {
	d := dictFixture{
		locations: []*LocationSpec{{Name: "A", Items: []string{"apple"}}},
		items:     []*ItemSpec{{Name: "apple", Pickable: true}},
	}.build(t)

	first, err := d.BuildWorld(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := d.BuildWorld(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a, _ := first.Find("A")
	p := NewPlayerState(0)
	if _, err := p.PickUp(first, a, "apple"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "first emptied", len(first.Location(a).Items), 0)
	testutil.AssertEqual(t, "second untouched", len(second.Location(a).Items), 1)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoadCSVDictionary(t *testing.T) {
	tests := map[string]struct {
		creatures string
		items     string
		locations string
		expErr    string
	}{
		"unknown item in list": {
			creatures: "name,description,adoptable\nKimimon,white and yellow,yes\nSheep,fluffy,no\n",
			items:     "name, description, pickable, consumable\napple, red, yes, yes\ntree, tall, no, no\n",
			locations: "name,description,west,north,east,south,items,creatures\n" +
				"Playground,a park,None,School,Beach,None,tree,Sheep\n" +
				"Beach,sandy,Playground,None,None,None,apple;apple2,\n" +
				"School,old,,,,Playground,,\n",
			expErr: `item not found: "apple2"`,
		},
		"duplicate creature": {
			creatures: "name,description,adoptable\nSheep,a,no\nSheep,b,no\n",
			items:     "name,description,pickable,consumable\n",
			locations: "name,description\n",
			expErr:    `creatures row 2: duplicate name "Sheep"`,
		},
		"missing name": {
			creatures: "name,description,adoptable\n,nameless,yes\n",
			items:     "name,description,pickable,consumable\n",
			locations: "name,description\n",
			expErr:    "creature name is required",
		},
		"empty items file": {
			creatures: "name,description,adoptable\n",
			items:     "",
			locations: "name,description\n",
			expErr:    "reading items",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			d, err := LoadCSVDictionary(
				writeFile(t, dir, "creatures.csv", tt.creatures),
				writeFile(t, dir, "items.csv", tt.items),
				writeFile(t, dir, "locations.csv", tt.locations),
			)
			if err == nil {
				_, err = d.BuildWorld(0)
			}
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}
}

func TestLoadCSVDictionary_World(t *testing.T) {
	dir := t.TempDir()
	d, err := LoadCSVDictionary(
		writeFile(t, dir, "creatures.csv", "name,description,adoptable\nKimimon,white and yellow,yes\nSheep,fluffy,no\n"),
		writeFile(t, dir, "items.csv", "name,description,pickable,consumable\napple,red,yes,yes\ntree,tall,no,no\n"),
		writeFile(t, dir, "locations.csv", "name,description,west,north,east,south,items,creatures\n"+
			"Playground,a park,None,School,Beach,None,tree,Sheep\n"+
			"Beach,sandy,Playground,None,None,None,apple,\n"+
			"School,old,,,,Playground,,\n"),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w, err := d.BuildWorld(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pg, _ := w.Find("Playground")
	testutil.AssertEqual(t, "north", door(w, pg, North), "School")
	testutil.AssertEqual(t, "east", door(w, pg, East), "Beach")
	testutil.AssertEqual(t, "west", door(w, pg, West), "")
	testutil.AssertEqual(t, "locations", w.Len(), 3)
	testutil.AssertEqual(t, "adoptable", len(w.Adoptable()), 1)
	testutil.AssertEqual(t, "capacity", w.Adoptable()[0].Pymon().Inventory().Capacity(), 3)
	testutil.AssertEqual(t, "sheep placed", w.Location(pg).Creatures[0].Name, "Sheep")
}
