package combat

import (
	"fmt"
	"strings"
)

// Move is a rock-paper-scissors hand.
type Move int

const (
	Rock Move = iota
	Paper
	Scissors

	numMoves = 3
)

var moveNames = [numMoves]string{"rock", "paper", "scissors"}

// Moves lists every hand, in the order a random source indexes them.
func Moves() []Move {
	return []Move{Rock, Paper, Scissors}
}

// ParseMove accepts a hand name or its first letter, case-insensitively.
func ParseMove(s string) (Move, error) {
	t := strings.ToLower(strings.TrimSpace(s))
	for i, name := range moveNames {
		if t == name || (len(t) == 1 && t[0] == name[0]) {
			return Move(i), nil
		}
	}
	return 0, fmt.Errorf("unknown move %q (rock, paper or scissors)", s)
}

func (m Move) Valid() bool {
	return m >= 0 && m < numMoves
}

// Beats reports whether m wins against other: rock beats scissors, scissors
// beats paper and paper beats rock.
func (m Move) Beats(other Move) bool {
	return (m == Rock && other == Scissors) ||
		(m == Scissors && other == Paper) ||
		(m == Paper && other == Rock)
}

func (m Move) String() string {
	if !m.Valid() {
		return fmt.Sprintf("move(%d)", int(m))
	}
	return moveNames[m]
}

func (m Move) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}
