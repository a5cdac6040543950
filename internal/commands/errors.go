package commands

import (
	"errors"
	"fmt"

	"github.com/pixil98/go-pymon/internal/game"
	"github.com/pixil98/go-pymon/internal/session"
)

// UserError represents an error that should be displayed to the user.
// These are not system failures - just invalid input or usage.
type UserError struct {
	Message string
	Err     error
}

func (e *UserError) Error() string {
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a user-facing error.
func NewUserError(msg string) *UserError {
	return &UserError{Message: msg}
}

var userMessages = []struct {
	err error
	msg string
}{
	{game.ErrInvalidDirection, "That is not a direction. Try west, north, east or south."},
	{game.ErrNoDoor, "There is no door in that direction."},
	{game.ErrNotPickable, "That cannot be picked up."},
	{game.ErrInventoryFull, "Your inventory is full."},
	{game.ErrItemNotFound, "There is no such item."},
	{game.ErrNotConsumable, "That item is not consumable."},
	{game.ErrNotUsable, "That item can't be used."},
	{game.ErrAlreadyFull, "Your pymon already has full energy."},
	{game.ErrNoOpponent, "There is no one here to challenge."},
	{session.ErrBenchEmpty, "Your bench is empty."},
	{session.ErrBenchIndex, "There is no pymon at that bench position."},
	{session.ErrGameOver, "Game over. You have no pymon left to play."},
	{session.ErrSessionClosed, "The game has ended."},
}

// AsUserError translates a domain error from the session into a message for
// the player. Errors that are not the player's doing are returned unchanged.
func AsUserError(err error) error {
	if err == nil {
		return nil
	}
	var ue *UserError
	if errors.As(err, &ue) {
		return ue
	}
	for _, m := range userMessages {
		if errors.Is(err, m.err) {
			return &UserError{Message: m.msg, Err: err}
		}
	}
	return fmt.Errorf("unexpected session error: %w", err)
}
