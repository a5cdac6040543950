package game

import (
	"fmt"
	"strings"
)

// EffectKind is what using an item does. Effects are keyed by item name.
type EffectKind int

const (
	EffectNone EffectKind = iota
	// EffectRestore gives back one energy and is consumed only when it did so.
	EffectRestore
	// EffectSingleUse is consumed on use with no other effect.
	EffectSingleUse
	// EffectScout lets the carrier look through a door without moving.
	EffectScout
)

var effectNames = map[EffectKind]string{
	EffectNone:      "none",
	EffectRestore:   "restore",
	EffectSingleUse: "single_use",
	EffectScout:     "scout",
}

func (k EffectKind) String() string {
	if s, ok := effectNames[k]; ok {
		return s
	}
	return fmt.Sprintf("effect(%d)", int(k))
}

func (k *EffectKind) UnmarshalText(text []byte) error {
	s := strings.ToLower(string(text))
	for kind, name := range effectNames {
		if name == s {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown effect kind: %s", text)
}

func (k EffectKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// EffectTable maps item names to their effect.
type EffectTable map[string]EffectKind

// DefaultEffects returns the stock table: apples restore energy, potions are
// single use and binoculars let the carrier scout.
func DefaultEffects() EffectTable {
	return EffectTable{
		"apple":     EffectRestore,
		"potion":    EffectSingleUse,
		"binocular": EffectScout,
	}
}

// Lookup returns the effect for an item name.
func (t EffectTable) Lookup(name string) EffectKind {
	if t == nil {
		return EffectNone
	}
	return t[name]
}
