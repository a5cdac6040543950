package game

import (
	"errors"
	"testing"

	"github.com/pixil98/go-testutil"
)

func newTestWorld(t *testing.T, names ...string) (*World, []LocationID) {
	t.Helper()
	w := NewWorld()
	ids := make([]LocationID, 0, len(names))
	for _, n := range names {
		id, err := w.AddLocation(n, n+" description")
		if err != nil {
			t.Fatalf("adding %s: %v", n, err)
		}
		ids = append(ids, id)
	}
	return w, ids
}

func door(w *World, id LocationID, dir Direction) string {
	n, ok := w.DoorTo(id, dir)
	if !ok {
		return ""
	}
	return w.Name(n)
}

func TestWorld_AddLocation(t *testing.T) {
	w, _ := newTestWorld(t, "A")

	_, err := w.AddLocation("A", "again")
	testutil.AssertEqual(t, "duplicate", errors.Is(err, ErrDuplicateLocation), true)

	_, err = w.AddLocation("", "nameless")
	testutil.AssertErrorContains(t, err, "location name is required")

	w.Seal()
	_, err = w.AddLocation("B", "late")
	testutil.AssertEqual(t, "sealed", errors.Is(err, ErrWorldSealed), true)
	testutil.AssertEqual(t, "len", w.Len(), 1)
}

func TestWorld_Connect(t *testing.T) {
	tests := map[string]struct {
		connect func(w *World, ids []LocationID) error
		expErr  error
		exp     map[string]string // "<location> <direction>" -> neighbour
	}{
		"symmetric": {
			connect: func(w *World, ids []LocationID) error {
				return w.Connect(ids[0], East, ids[1])
			},
			exp: map[string]string{"A east": "B", "B west": "A", "A west": "", "B east": ""},
		},
		"reconnect unlinks old neighbours": {
			connect: func(w *World, ids []LocationID) error {
				if err := w.Connect(ids[0], East, ids[1]); err != nil {
					return err
				}
				return w.Connect(ids[0], East, ids[2])
			},
			exp: map[string]string{"A east": "C", "C west": "A", "B west": ""},
		},
		"taking the far slot unlinks its owner": {
			connect: func(w *World, ids []LocationID) error {
				if err := w.Connect(ids[0], East, ids[1]); err != nil {
					return err
				}
				return w.Connect(ids[2], East, ids[1])
			},
			exp: map[string]string{"C east": "B", "B west": "C", "A east": ""},
		},
		"self loop": {
			connect: func(w *World, ids []LocationID) error {
				return w.Connect(ids[0], North, ids[0])
			},
			exp: map[string]string{"A north": "A", "A south": "A"},
		},
		"invalid direction": {
			connect: func(w *World, ids []LocationID) error {
				return w.Connect(ids[0], Direction(7), ids[1])
			},
			expErr: ErrInvalidDirection,
		},
		"unknown location": {
			connect: func(w *World, ids []LocationID) error {
				return w.Connect(ids[0], East, LocationID(42))
			},
			expErr: ErrUnknownLocation,
		},
		"sealed": {
			connect: func(w *World, ids []LocationID) error {
				w.Seal()
				return w.Connect(ids[0], East, ids[1])
			},
			expErr: ErrWorldSealed,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w, ids := newTestWorld(t, "A", "B", "C")
			err := tt.connect(w, ids)
			if tt.expErr != nil {
				testutil.AssertEqual(t, "error", errors.Is(err, tt.expErr), true)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			for key, exp := range tt.exp {
				var loc, dir string
				for i := range key {
					if key[i] == ' ' {
						loc, dir = key[:i], key[i+1:]
						break
					}
				}
				id, _ := w.Find(loc)
				d, err := ParseDirection(dir)
				if err != nil {
					t.Fatalf("bad direction %q", dir)
				}
				testutil.AssertEqual(t, key, door(w, id, d), exp)
			}
		})
	}
}

func TestWorld_Location(t *testing.T) {
	w, ids := newTestWorld(t, "A", "B")
	if err := w.Connect(ids[0], South, ids[1]); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.PlaceItem(ids[0], NewItem("apple", "red", true, true)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.PlaceCreature(ids[0], NewCreature("Sheep", "fluffy", false, 0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v := w.Location(ids[0])
	testutil.AssertEqual(t, "name", v.Name, "A")
	testutil.AssertEqual(t, "doors", v.Doors, []DoorView{{Direction: South, Location: "B"}})
	testutil.AssertEqual(t, "items", v.Items, []ItemView{{Name: "apple", Description: "red", Pickable: true, Consumable: true}})
	testutil.AssertEqual(t, "creatures", v.Creatures, []CreatureView{{Name: "Sheep", Description: "fluffy"}})

	testutil.AssertEqual(t, "unknown", w.Location(LocationID(9)).Name, "")
}

func TestWorld_Placement(t *testing.T) {
	w, ids := newTestWorld(t, "A", "B")
	apple := NewItem("apple", "red", true, true)
	pika := NewCreature("Pika", "yellow", true, 0)

	if err := w.PlaceItem(ids[0], apple); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := w.PlaceItem(ids[1], apple)
	testutil.AssertEqual(t, "item twice", errors.Is(err, ErrDuplicatePlacement), true)

	if err := w.PlaceCreature(ids[0], pika); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = w.PlaceCreature(ids[1], pika)
	testutil.AssertEqual(t, "creature twice", errors.Is(err, ErrDuplicatePlacement), true)

	if err := w.MoveCreature(pika, ids[1]); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	at, ok := w.CreatureLocation(pika)
	testutil.AssertEqual(t, "placed", ok, true)
	testutil.AssertEqual(t, "moved", at, ids[1])
	testutil.AssertEqual(t, "left A", len(w.Creatures(ids[0])), 0)

	if err := w.RemoveCreature(pika); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = w.RemoveCreature(pika)
	testutil.AssertEqual(t, "not placed", errors.Is(err, ErrCreatureNotFound), true)
	testutil.AssertEqual(t, "none placed", len(w.AllCreatures()), 0)

	if err := w.MoveCreature(pika, ids[0]); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "placed again", len(w.Creatures(ids[0])), 1)
}

func TestWorld_Roster(t *testing.T) {
	w := NewWorld()
	pika := NewCreature("Pika", "yellow", true, 0)
	sheep := NewCreature("Sheep", "fluffy", false, 0)

	w.AddToRoster(pika)
	w.AddToRoster(sheep)
	w.AddToRoster(pika)

	testutil.AssertEqual(t, "roster", len(w.Roster()), 2)
	testutil.AssertEqual(t, "adoptable", w.Adoptable(), []*Creature{pika})
}
