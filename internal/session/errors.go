package session

import "errors"

var (
	ErrNoPymon       = errors.New("no adoptable creature in the world")
	ErrNoLocations   = errors.New("world has no locations")
	ErrBenchIndex    = errors.New("no creature at that bench position")
	ErrBenchEmpty    = errors.New("bench is empty")
	ErrGameOver      = errors.New("game over: no creatures left to play")
	ErrSessionClosed = errors.New("session closed")
	ErrUnknownAction = errors.New("unknown action")
	ErrNoMoveSource  = errors.New("challenge needs a move source")
)
