package storage

import (
	"fmt"
	"regexp"

	"github.com/pixil98/go-errors"
)

var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)

// ValidatingSpec is implemented by every asset payload.
type ValidatingSpec interface {
	Validate() error
}

// Identifier is the key of an asset within its store.
type Identifier string

func (id Identifier) String() string {
	return string(id)
}

// Valid reports whether id is a non-empty run of letters, digits and dashes.
func (id Identifier) Valid() bool {
	return identifierPattern.MatchString(string(id))
}

// Asset is the on-disk envelope around a spec:
//
//	{"version": 1, "id": "beach", "spec": {...}}
type Asset[T ValidatingSpec] struct {
	Version    uint       `json:"version"`
	Identifier Identifier `json:"id"`
	Spec       T          `json:"spec"`
}

func (a *Asset[T]) Id() Identifier {
	return a.Identifier
}

func (a *Asset[T]) Validate() error {
	el := errors.NewErrorList()

	if a.Version == 0 {
		el.Add(fmt.Errorf("version must be set"))
	}

	if a.Identifier == "" {
		el.Add(fmt.Errorf("id must be set"))
	} else if !a.Identifier.Valid() {
		el.Add(fmt.Errorf("id %q must be alphanumeric", a.Identifier))
	}

	if isNil(a.Spec) {
		el.Add(fmt.Errorf("spec must be set"))
	} else {
		el.Add(a.Spec.Validate())
	}

	return el.Err()
}

func isNil[T ValidatingSpec](v T) bool {
	var zero T
	return any(v) == any(zero)
}
