package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pixil98/go-testutil"
)

type mockStoreSpec struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

func (s *mockStoreSpec) Validate() error {
	return nil
}

func writeAsset(t *testing.T, dir, file string, asset Asset[*mockStoreSpec]) {
	t.Helper()
	data, err := json.Marshal(asset)
	if err != nil {
		t.Fatalf("failed to marshal test asset: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, file), data, 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
}

func asset(id, name string, value int) Asset[*mockStoreSpec] {
	return Asset[*mockStoreSpec]{
		Version:    1,
		Identifier: Identifier(id),
		Spec:       &mockStoreSpec{Name: name, Value: value},
	}
}

func TestNewFileStore(t *testing.T) {
	tests := map[string]struct {
		setup    func(t *testing.T, dir string)
		expCount int
		expErr   string
	}{
		"empty directory": {
			setup: func(t *testing.T, dir string) {},
		},
		"loads assets": {
			setup: func(t *testing.T, dir string) {
				writeAsset(t, dir, "beach.json", asset("beach", "Beach", 1))
				writeAsset(t, dir, "school.json", asset("school", "School", 2))
			},
			expCount: 2,
		},
		"ignores other files": {
			setup: func(t *testing.T, dir string) {
				writeAsset(t, dir, "beach.json", asset("beach", "Beach", 1))
				_ = os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("ignore me"), 0644)
				_ = os.WriteFile(filepath.Join(dir, "data.csv"), []byte("name\nx\n"), 0644)
			},
			expCount: 1,
		},
		"walks subdirectories": {
			setup: func(t *testing.T, dir string) {
				sub := filepath.Join(dir, "coast")
				if err := os.Mkdir(sub, 0755); err != nil {
					t.Fatalf("failed to create subdir: %v", err)
				}
				writeAsset(t, sub, "beach.json", asset("beach", "Beach", 1))
			},
			expCount: 1,
		},
		"invalid json": {
			setup: func(t *testing.T, dir string) {
				_ = os.WriteFile(filepath.Join(dir, "bad.json"), []byte(`{invalid json`), 0644)
			},
			expErr: "bad.json: unmarshalling asset",
		},
		"missing version": {
			setup: func(t *testing.T, dir string) {
				a := asset("beach", "Beach", 1)
				a.Version = 0
				writeAsset(t, dir, "beach.json", a)
			},
			expErr: "validating beach.json: version must be set",
		},
		"duplicate id": {
			setup: func(t *testing.T, dir string) {
				writeAsset(t, dir, "one.json", asset("beach", "Beach", 1))
				writeAsset(t, dir, "two.json", asset("beach", "Beach", 2))
			},
			expErr: "duplicate key detected: beach",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			tt.setup(t, dir)

			store, err := NewFileStore[*mockStoreSpec](dir)
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "record count", len(store.GetAll()), tt.expCount)
		})
	}
}

func TestNewFileStore_NonExistentDirectory(t *testing.T) {
	_, err := NewFileStore[*mockStoreSpec]("/nonexistent/path/that/does/not/exist")
	testutil.AssertErrorContains(t, err, "loading assets from /nonexistent/path/that/does/not/exist")
}

func TestFileStore_GetAndKeys(t *testing.T) {
	dir := t.TempDir()
	writeAsset(t, dir, "school.json", asset("school", "School", 2))
	writeAsset(t, dir, "beach.json", asset("beach", "Beach", 1))

	store, err := NewFileStore[*mockStoreSpec](dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	beach := store.Get("beach")
	if beach == nil {
		t.Fatal("expected beach to be loaded")
	}
	testutil.AssertEqual(t, "name", beach.Name, "Beach")
	testutil.AssertEqual(t, "missing", store.Get("cave") == nil, true)
	testutil.AssertEqual(t, "keys", store.Keys(), []string{"beach", "school"})

	all := store.GetAll()
	delete(all, "beach")
	testutil.AssertEqual(t, "copy", store.Get("beach") != nil, true)
}

func TestFileStore_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore[*mockStoreSpec](dir)
	if err != nil {
		t.Fatalf("unexpected error creating store: %v", err)
	}

	if err := store.Save("test-id", &mockStoreSpec{Name: "Initial", Value: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Save("test-id", &mockStoreSpec{Name: "Updated", Value: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "cached", store.Get("test-id").Name, "Updated")

	data, err := os.ReadFile(store.filePath("test-id"))
	if err != nil {
		t.Fatalf("failed to read saved file: %v", err)
	}
	var saved Asset[*mockStoreSpec]
	if err := json.Unmarshal(data, &saved); err != nil {
		t.Fatalf("failed to unmarshal saved data: %v", err)
	}
	testutil.AssertEqual(t, "asset version", saved.Version, uint(1))
	testutil.AssertEqual(t, "asset id", saved.Identifier, Identifier("test-id"))
	testutil.AssertEqual(t, "spec value", saved.Spec.Value, 2)

	reloaded, err := NewFileStore[*mockStoreSpec](dir)
	if err != nil {
		t.Fatalf("unexpected error reloading: %v", err)
	}
	testutil.AssertEqual(t, "reloaded", reloaded.Get("test-id").Name, "Updated")

	err = store.Save("bad id", &mockStoreSpec{})
	testutil.AssertErrorContains(t, err, `id "bad id" must be alphanumeric`)
}
