package session

import (
	"fmt"

	"github.com/pixil98/go-pymon/internal/combat"
)

// ActionKind names a player request.
type ActionKind int

const (
	ActionInspect ActionKind = iota
	ActionInspectLocation
	ActionMove
	ActionPickItem
	ActionUseItem
	ActionViewInventory
	ActionChallenge
	ActionShowStats
	ActionSwapBench
	ActionScout
	ActionExit
)

var actionNames = map[ActionKind]string{
	ActionInspect:         "inspect",
	ActionInspectLocation: "inspect_location",
	ActionMove:            "move",
	ActionPickItem:        "pick_item",
	ActionUseItem:         "use_item",
	ActionViewInventory:   "view_inventory",
	ActionChallenge:       "challenge",
	ActionShowStats:       "show_stats",
	ActionSwapBench:       "swap_bench",
	ActionScout:           "scout",
	ActionExit:            "exit",
}

func (k ActionKind) String() string {
	if name, ok := actionNames[k]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(k))
}

func (k ActionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// readOnly reports whether the action is still accepted once the game is over.
func (k ActionKind) readOnly() bool {
	switch k {
	case ActionInspect, ActionInspectLocation, ActionViewInventory, ActionShowStats, ActionExit:
		return true
	}
	return false
}

// Action is one player request. Only the fields relevant to Kind are read.
type Action struct {
	Kind ActionKind

	// Arg is the direction token for Move and Scout, the item name for
	// PickItem and UseItem, and the optional opponent name for Challenge.
	Arg string
	// Index is the bench position for SwapBench.
	Index int
	// Moves supplies the challenger's hands for Challenge.
	Moves combat.MoveSource
}

func Inspect() Action         { return Action{Kind: ActionInspect} }
func InspectLocation() Action { return Action{Kind: ActionInspectLocation} }
func ViewInventory() Action   { return Action{Kind: ActionViewInventory} }
func ShowStats() Action       { return Action{Kind: ActionShowStats} }
func Exit() Action            { return Action{Kind: ActionExit} }

func Move(direction string) Action { return Action{Kind: ActionMove, Arg: direction} }
func PickItem(name string) Action  { return Action{Kind: ActionPickItem, Arg: name} }
func UseItem(name string) Action   { return Action{Kind: ActionUseItem, Arg: name} }
func SwapBench(index int) Action   { return Action{Kind: ActionSwapBench, Index: index} }

// Scout looks through one door, or through every door when direction is empty.
func Scout(direction string) Action { return Action{Kind: ActionScout, Arg: direction} }

// Challenge duels a creature at the current location. An empty opponent picks
// the first eligible one.
func Challenge(opponent string, moves combat.MoveSource) Action {
	return Action{Kind: ActionChallenge, Arg: opponent, Moves: moves}
}
