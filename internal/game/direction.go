package game

import (
	"fmt"
	"strings"
)

// Direction is one of the four cardinal doors a location can have.
type Direction int

const (
	West Direction = iota
	North
	East
	South

	numDirections = 4
)

var directionNames = [numDirections]string{"west", "north", "east", "south"}

// Directions lists every direction in door order.
func Directions() []Direction {
	return []Direction{West, North, East, South}
}

// ParseDirection converts user input such as "East" or " north" into a Direction.
func ParseDirection(token string) (Direction, error) {
	t := strings.ToLower(strings.TrimSpace(token))
	for i, name := range directionNames {
		if t == name {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, token)
}

// Valid reports whether d is one of the four cardinal values.
func (d Direction) Valid() bool {
	return d >= 0 && d < numDirections
}

// Opposite returns the door on the neighbouring location that pairs with d.
func (d Direction) Opposite() Direction {
	return (d + 2) % numDirections
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("direction(%d)", int(d))
	}
	return directionNames[d]
}

func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDirection, int(d))
	}
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	v, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
