package session

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pixil98/go-pymon/internal/combat"
	"github.com/pixil98/go-pymon/internal/game"
)

// State is the lifecycle of a session.
type State int

const (
	Playing State = iota
	// Over means no playable creature is left. Only read actions and Exit
	// are accepted.
	Over
	Closed
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Over:
		return "over"
	default:
		return "closed"
	}
}

// Session drives one game over a world. It holds a single cursor: the
// location the player stands in and the creature they play.
type Session struct {
	id        uuid.UUID
	world     *game.World
	rand      combat.Rand
	engine    *combat.Engine
	effects   game.EffectTable
	presence  bool
	publisher Publisher
	now       func() time.Time

	mu       sync.Mutex
	state    State
	location game.LocationID
	active   *game.Creature
	bench    []*game.Creature
	history  []game.BattleRecord
}

// New starts a session on a random adoptable creature at a random location.
func New(world *game.World, opts ...SessionOpt) (*Session, error) {
	s := &Session{
		id:       uuid.New(),
		world:    world,
		effects:  game.DefaultEffects(),
		presence: true,
		now:      time.Now,
		location: game.NoLocation,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rand == nil {
		s.rand = combat.NewRand(0)
	}
	s.engine = combat.NewEngine(s.rand)

	pymons := world.Adoptable()
	if len(pymons) == 0 {
		return nil, ErrNoPymon
	}
	locs := world.Locations()
	if len(locs) == 0 {
		return nil, ErrNoLocations
	}

	s.active = pymons[s.rand.IntN(len(pymons))]
	s.location = locs[s.rand.IntN(len(locs))]
	if err := s.settleActive(); err != nil {
		return nil, err
	}

	slog.Info("session started",
		"session", s.id,
		"pymon", s.active.Name(),
		"location", world.Name(s.location),
		"presence", s.presence)
	return s, nil
}

// settleActive puts the active creature where the player presence setting
// says it belongs.
func (s *Session) settleActive() error {
	if s.active == nil {
		return nil
	}
	if s.presence {
		return s.world.MoveCreature(s.active, s.location)
	}
	if _, placed := s.world.CreatureLocation(s.active); placed {
		return s.world.RemoveCreature(s.active)
	}
	return nil
}

func (s *Session) ID() uuid.UUID { return s.id }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Location returns a snapshot of where the player stands.
func (s *Session) Location() game.LocationView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.world.Location(s.location)
}

// Active returns the played creature, or false once none is left.
func (s *Session) Active() (game.CreatureView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return game.CreatureView{}, false
	}
	return s.active.View(), true
}

// Inventory returns the items carried by the active creature.
func (s *Session) Inventory() []game.ItemView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inventory()
}

func (s *Session) inventory() []game.ItemView {
	if s.active == nil {
		return nil
	}
	return s.active.Pymon().Inventory().Items()
}

// Bench returns the captured creatures in promotion order.
func (s *Session) Bench() []game.CreatureView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.benchViews()
}

func (s *Session) benchViews() []game.CreatureView {
	out := make([]game.CreatureView, 0, len(s.bench))
	for _, c := range s.bench {
		out = append(out, c.View())
	}
	return out
}

// History returns every duel fought in this session, oldest first.
func (s *Session) History() []game.BattleRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.history)
}

// Submit applies one action. Errors from the action leave the session as it
// was, except that energy lost in the resolved rounds of an aborted duel
// stays lost.
func (s *Session) Submit(ctx context.Context, a Action) (*Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.state == Closed:
		return nil, ErrSessionClosed
	case s.state == Over && !a.Kind.readOnly():
		return nil, fmt.Errorf("%s: %w", a.Kind, ErrGameOver)
	}

	r := &Report{SessionID: s.id, Action: a.Kind}
	var err error
	switch a.Kind {
	case ActionInspect:
		s.inspect(r)
	case ActionInspectLocation:
		loc := s.world.Location(s.location)
		r.Location = &loc
	case ActionMove:
		err = s.move(a.Arg, r)
	case ActionPickItem:
		err = s.pickItem(a.Arg, r)
	case ActionUseItem:
		err = s.useItem(a.Arg, r)
	case ActionViewInventory:
		r.Inventory = s.inventory()
	case ActionChallenge:
		err = s.challenge(ctx, a, r)
	case ActionShowStats:
		s.stats(r)
	case ActionSwapBench:
		err = s.swapBench(a.Index, r)
	case ActionScout:
		err = s.scout(a.Arg, r)
	case ActionExit:
		s.state = Closed
		r.Closed = true
		slog.InfoContext(ctx, "session closed", "session", s.id, "battles", len(s.history))
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownAction, a.Kind)
	}
	if err != nil {
		return nil, err
	}

	r.GameOver = s.state == Over
	s.publish(ctx, r)
	return r, nil
}

func (s *Session) publish(ctx context.Context, r *Report) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, r); err != nil {
		slog.WarnContext(ctx, "publishing report", "session", s.id, "action", r.Action, "error", err)
	}
}

func (s *Session) inspect(r *Report) {
	if s.active != nil {
		v := s.active.View()
		r.Creature = &v
	}
	loc := s.world.Location(s.location)
	r.Location = &loc
}

func (s *Session) move(token string, r *Report) error {
	dir, err := game.ParseDirection(token)
	if err != nil {
		return err
	}
	to, ok := s.world.DoorTo(s.location, dir)
	if !ok {
		return fmt.Errorf("%s: %w", dir, game.ErrNoDoor)
	}

	from := s.location
	s.location = to
	if err := s.settleActive(); err != nil {
		s.location = from
		return err
	}

	r.Moved = dir.String()
	loc := s.world.Location(to)
	r.Location = &loc
	return nil
}

func (s *Session) pickItem(name string, r *Report) error {
	item, err := s.active.Pymon().PickUp(s.world, s.location, name)
	if err != nil {
		return err
	}
	v := item.View()
	r.Item = &v
	r.Inventory = s.inventory()
	return nil
}

func (s *Session) useItem(name string, r *Report) error {
	var used game.ItemView
	if it := s.active.Pymon().Inventory().Find(name); it != nil {
		used = it.View()
	}
	kind, err := s.active.Pymon().UseItem(name, s.effects)
	if err != nil {
		return err
	}
	r.Item = &used
	r.Effect = kind
	v := s.active.View()
	r.Creature = &v
	r.Inventory = s.inventory()
	return nil
}

func (s *Session) scout(token string, r *Report) error {
	if !s.active.Pymon().HasEffect(game.EffectScout, s.effects) {
		return fmt.Errorf("nothing to scout with: %w", game.ErrItemNotFound)
	}

	dirs := game.Directions()
	if token != "" {
		dir, err := game.ParseDirection(token)
		if err != nil {
			return err
		}
		if _, ok := s.world.DoorTo(s.location, dir); !ok {
			return fmt.Errorf("%s: %w", dir, game.ErrNoDoor)
		}
		dirs = []game.Direction{dir}
	}

	for _, dir := range dirs {
		if to, ok := s.world.DoorTo(s.location, dir); ok {
			r.Scouted = append(r.Scouted, ScoutView{Direction: dir, Location: s.world.Location(to)})
		}
	}
	loc := s.world.Location(s.location)
	r.Location = &loc
	return nil
}

func (s *Session) opponent(name string) (*game.Creature, error) {
	for _, c := range s.world.Creatures(s.location) {
		if c == s.active || !c.CanBattle() {
			continue
		}
		if name == "" || c.MatchName(name) {
			return c, nil
		}
	}
	if name != "" {
		return nil, fmt.Errorf("%s: %w", name, game.ErrNoOpponent)
	}
	return nil, game.ErrNoOpponent
}

func (s *Session) challenge(ctx context.Context, a Action, r *Report) error {
	opp, err := s.opponent(a.Arg)
	if err != nil {
		return err
	}
	if a.Moves == nil {
		return ErrNoMoveSource
	}

	challenger := s.active
	res, err := s.engine.Duel(ctx, &combat.PymonFighter{Creature: challenger}, opp.Name(), a.Moves)
	if err != nil {
		return fmt.Errorf("duel with %s: %w", opp.Name(), err)
	}
	r.Duel = res

	rec := game.NewBattleRecord(s.now(), opp.Name(), res.Wins, res.Draws, res.Losses, res.Outcome.String())
	challenger.Pymon().RecordBattle(rec)
	s.history = append(s.history, rec)

	slog.InfoContext(ctx, "duel finished",
		"session", s.id,
		"challenger", challenger.Name(),
		"opponent", opp.Name(),
		"outcome", res.Outcome,
		"rounds", len(res.Rounds))

	switch res.Outcome {
	case combat.PlayerWins:
		return s.capture(opp, r)
	case combat.OpponentWins:
		return s.release(ctx, r)
	}
	return nil
}

func (s *Session) capture(opp *game.Creature, r *Report) error {
	if err := s.world.RemoveCreature(opp); err != nil {
		return err
	}
	if !slices.Contains(s.bench, opp) {
		s.bench = append(s.bench, opp)
	}
	r.Captured = opp.Name()
	r.Bench = s.benchViews()
	return nil
}

// release sets the beaten active creature loose somewhere in the world and
// promotes the head of the bench. With an empty bench the game is over.
func (s *Session) release(ctx context.Context, r *Report) error {
	locs := s.world.Locations()
	dest := locs[s.rand.IntN(len(locs))]
	lost := s.active
	if err := s.world.MoveCreature(lost, dest); err != nil {
		return err
	}
	r.Released = lost.Name()
	r.ReleasedTo = s.world.Name(dest)

	if len(s.bench) == 0 {
		s.active = nil
		s.state = Over
		slog.InfoContext(ctx, "game over", "session", s.id, "battles", len(s.history))
		return nil
	}

	s.active = s.bench[0]
	s.bench = slices.Delete(s.bench, 0, 1)
	if err := s.settleActive(); err != nil {
		return err
	}
	r.Promoted = s.active.Name()
	v := s.active.View()
	r.Creature = &v
	r.Bench = s.benchViews()
	return nil
}

func (s *Session) swapBench(index int, r *Report) error {
	if len(s.bench) == 0 {
		return ErrBenchEmpty
	}
	if index < 0 || index >= len(s.bench) {
		return fmt.Errorf("%d: %w", index, ErrBenchIndex)
	}

	prev := s.active
	next := s.bench[index]
	if s.presence {
		if err := s.world.RemoveCreature(prev); err != nil {
			return err
		}
	}
	s.bench = slices.Delete(s.bench, index, index+1)
	s.bench = append(s.bench, prev)
	s.active = next
	if err := s.settleActive(); err != nil {
		return err
	}

	r.Benched = prev.Name()
	v := next.View()
	r.Creature = &v
	r.Bench = s.benchViews()
	return nil
}

func (s *Session) stats(r *Report) {
	r.History = slices.Clone(s.history)
	w, d, l := game.BattleTotals(s.history)
	r.Totals = &Totals{Battles: len(s.history), Wins: w, Draws: d, Losses: l}
}
