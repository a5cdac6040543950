package command

import (
	"encoding/json"
	"testing"

	"github.com/pixil98/go-pymon/internal/game"
	"github.com/pixil98/go-testutil"
)

const csvDir = "../../../data/csv/"

func csvStorage() StorageConfig {
	return StorageConfig{
		CSV: &CSVConfig{
			Creatures: csvDir + "creatures.csv",
			Items:     csvDir + "items.csv",
			Locations: csvDir + "locations.csv",
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := map[string]struct {
		config *Config
		expErr string
	}{
		"valid console config": {
			config: &Config{
				Listeners: []ListenerConfig{{Protocol: ListenerTypeConsole}},
				Storage:   csvStorage(),
			},
		},
		"no listeners": {
			config: &Config{Storage: csvStorage()},
			expErr: "at least one listener is required",
		},
		"telnet without port": {
			config: &Config{
				Listeners: []ListenerConfig{{Protocol: ListenerTypeTelnet}},
				Storage:   csvStorage(),
			},
			expErr: "listener 0: port must be set",
		},
		"host key on telnet": {
			config: &Config{
				Listeners: []ListenerConfig{{Protocol: ListenerTypeTelnet, Port: 4000, HostKeyPath: "key"}},
				Storage:   csvStorage(),
			},
			expErr: "host_key_path only applies to ssh listeners",
		},
		"missing asset paths": {
			config: &Config{
				Listeners: []ListenerConfig{{Protocol: ListenerTypeConsole}},
			},
			expErr: "locations: path is required",
		},
		"missing csv file": {
			config: &Config{
				Listeners: []ListenerConfig{{Protocol: ListenerTypeConsole}},
				Storage: StorageConfig{CSV: &CSVConfig{
					Creatures: csvDir + "creatures.csv",
					Items:     csvDir + "items.csv",
					Locations: csvDir + "nowhere.csv",
				}},
			},
			expErr: "csv.locations: invalid path",
		},
		"negative capacity": {
			config: &Config{
				Listeners: []ListenerConfig{{Protocol: ListenerTypeConsole}},
				Storage:   csvStorage(),
				Session:   SessionConfig{InventoryCapacity: -1},
			},
			expErr: "inventory_capacity must not be negative",
		},
		"bad nats timeout": {
			config: &Config{
				Listeners: []ListenerConfig{{Protocol: ListenerTypeConsole}},
				Storage:   csvStorage(),
				Nats:      NatsConfig{StartTimeout: "soon"},
			},
			expErr: "parsing start_timeout",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Unmarshal(t *testing.T) {
	raw := `{
		"listeners": [{"protocol": "ssh", "port": 4022}, {"protocol": "console"}],
		"session": {"effects": {"apple": "restore", "potion": "scout"}, "seed": 7},
		"nats": {"disabled": true}
	}`

	var cfg Config
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "ssh", cfg.Listeners[0].Protocol, ListenerTypeSSH)
	testutil.AssertEqual(t, "console", cfg.Listeners[1].Protocol, ListenerTypeConsole)
	testutil.AssertEqual(t, "apple", cfg.Session.Effects.Lookup("apple"), game.EffectRestore)
	testutil.AssertEqual(t, "potion", cfg.Session.Effects.Lookup("potion"), game.EffectScout)
	testutil.AssertEqual(t, "seed", *cfg.Session.Seed, uint64(7))
	testutil.AssertEqual(t, "nats", cfg.Nats.Disabled, true)

	err := json.Unmarshal([]byte(`{"listeners": [{"protocol": "carrier-pigeon"}]}`), &cfg)
	testutil.AssertErrorContains(t, err, "unknown listener type")
}

func TestSessionConfig_SessionOpts(t *testing.T) {
	seed := uint64(1)
	present := false
	cfg := SessionConfig{Seed: &seed, PlayerPresence: &present, Effects: game.DefaultEffects()}

	opts := cfg.SessionOpts(nil)
	testutil.AssertEqual(t, "first session", len(opts()), 3)
	testutil.AssertEqual(t, "second session", len(opts()), 3)

	testutil.AssertEqual(t, "defaults", len((&SessionConfig{}).SessionOpts(nil)()), 0)
	testutil.AssertEqual(t, "default capacity", (&SessionConfig{}).capacity(), game.DefaultInventoryCapacity)
}

func TestBuildWorkers(t *testing.T) {
	cfg := &Config{
		Listeners: []ListenerConfig{{Protocol: ListenerTypeConsole}},
		Storage:   csvStorage(),
		Nats:      NatsConfig{Disabled: true},
	}

	workers, err := BuildWorkers(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "workers", len(workers), 2)

	_, err = BuildWorkers("not a config")
	testutil.AssertErrorContains(t, err, "unable to cast config")
}

func TestStorageConfig_BuildDictionary(t *testing.T) {
	tests := map[string]struct {
		storage StorageConfig
	}{
		"csv": {storage: csvStorage()},
		"assets": {storage: StorageConfig{
			Locations: AssetConfig[*game.LocationSpec]{Path: "../../../data/assets/locations"},
			Items:     AssetConfig[*game.ItemSpec]{Path: "../../../data/assets/items"},
			Creatures: AssetConfig[*game.CreatureSpec]{Path: "../../../data/assets/creatures"},
		}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dict, err := tt.storage.BuildDictionary()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			w, err := dict.BuildWorld(game.DefaultInventoryCapacity)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "locations", w.Len(), 3)
			testutil.AssertEqual(t, "adoptable", len(w.Adoptable()), 3)

			beach, ok := w.Find("Beach")
			testutil.AssertEqual(t, "found", ok, true)
			playground, _ := w.Find("Playground")
			door, ok := w.DoorTo(beach, game.West)
			testutil.AssertEqual(t, "door", ok, true)
			testutil.AssertEqual(t, "west of beach", door, playground)
		})
	}
}
