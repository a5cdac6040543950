package game

import "errors"

var (
	ErrInvalidDirection   = errors.New("invalid direction")
	ErrNoDoor             = errors.New("no door in that direction")
	ErrNotPickable        = errors.New("item cannot be picked up")
	ErrInventoryFull      = errors.New("inventory is full")
	ErrItemNotFound       = errors.New("item not found")
	ErrNotConsumable      = errors.New("item is not consumable")
	ErrNotUsable          = errors.New("item cannot be used")
	ErrAlreadyFull        = errors.New("energy is already full")
	ErrNoOpponent         = errors.New("no opponent to challenge")
	ErrDuplicatePlacement = errors.New("instance is already placed")

	ErrUnknownLocation   = errors.New("unknown location")
	ErrDuplicateLocation = errors.New("location already exists")
	ErrWorldSealed       = errors.New("world doors are fixed after load")
	ErrCreatureNotFound  = errors.New("creature not found")
)
