package combat

import (
	"context"
	"fmt"
)

const (
	// MaxRounds caps a duel; fewer are played when the challenger is tired.
	MaxRounds = 3
	// WinsNeeded ends a duel as soon as either side reaches it.
	WinsNeeded = 2
)

// Outcome is the terminal state of a duel.
type Outcome int

const (
	Drawn Outcome = iota
	PlayerWins
	OpponentWins
)

func (o Outcome) String() string {
	switch o {
	case PlayerWins:
		return "win"
	case OpponentWins:
		return "loss"
	default:
		return "draw"
	}
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Fighter is the challenger side of a duel. Only the challenger spends energy.
type Fighter interface {
	CombatName() string
	Energy() int
	DrainEnergy()
}

// Round is one resolved hand.
type Round struct {
	Number   int     `json:"number"`
	Player   Move    `json:"player"`
	Opponent Move    `json:"opponent"`
	Result   Outcome `json:"result"`
}

// Result is a finished duel.
type Result struct {
	Challenger string  `json:"challenger"`
	Opponent   string  `json:"opponent"`
	Outcome    Outcome `json:"outcome"`
	Rounds     []Round `json:"rounds"`
	Wins       int     `json:"wins"`
	Draws      int     `json:"draws"`
	Losses     int     `json:"losses"`
}

// Engine resolves duels. The random source decides the opponent's hands.
type Engine struct {
	rand Rand
}

// NewEngine creates an Engine drawing opponent hands from r.
func NewEngine(r Rand) *Engine {
	return &Engine{rand: r}
}

// Duel plays up to min(MaxRounds, challenger energy) rounds. Every round the
// challenger loses costs one energy. The first side to WinsNeeded wins; if the
// budget runs out first the duel is drawn. A challenger with no energy draws
// without playing.
//
// If the move source fails the duel is abandoned and the error returned;
// energy already lost stays lost.
func (e *Engine) Duel(ctx context.Context, challenger Fighter, opponent string, moves MoveSource) (*Result, error) {
	res := &Result{
		Challenger: challenger.CombatName(),
		Opponent:   opponent,
		Outcome:    Drawn,
	}

	budget := min(MaxRounds, challenger.Energy())
	for n := 1; n <= budget; n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		mine, err := moves.NextMove(ctx, n)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", n, err)
		}
		if !mine.Valid() {
			return nil, fmt.Errorf("round %d: invalid move %d", n, int(mine))
		}
		theirs := Move(e.rand.IntN(numMoves))

		round := Round{Number: n, Player: mine, Opponent: theirs}
		switch {
		case mine == theirs:
			round.Result = Drawn
			res.Draws++
		case mine.Beats(theirs):
			round.Result = PlayerWins
			res.Wins++
		default:
			round.Result = OpponentWins
			res.Losses++
			challenger.DrainEnergy()
		}
		res.Rounds = append(res.Rounds, round)

		if res.Wins >= WinsNeeded {
			res.Outcome = PlayerWins
			break
		}
		if res.Losses >= WinsNeeded {
			res.Outcome = OpponentWins
			break
		}
	}

	return res, nil
}
