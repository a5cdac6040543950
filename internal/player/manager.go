package player

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/pixil98/go-pymon/internal/commands"
	"github.com/pixil98/go-pymon/internal/display"
	"github.com/pixil98/go-pymon/internal/game"
	"github.com/pixil98/go-pymon/internal/session"
)

// WorldBuilder produces a fresh world for every session.
type WorldBuilder interface {
	BuildWorld(capacity int) (*game.World, error)
}

// PlayerManager starts an independent game for every connection.
type PlayerManager struct {
	worlds     WorldBuilder
	capacity   int
	cmdHandler *commands.Handler
	renderer   *display.Renderer
	// sessionOpts is called once per session so stateful options such as
	// random sources are never shared.
	sessionOpts func() []session.SessionOpt

	mu     sync.Mutex
	active map[string]*session.Session
}

func NewPlayerManager(worlds WorldBuilder, capacity int, cmd *commands.Handler, r *display.Renderer, opts func() []session.SessionOpt) *PlayerManager {
	if opts == nil {
		opts = func() []session.SessionOpt { return nil }
	}
	return &PlayerManager{
		worlds:      worlds,
		capacity:    capacity,
		cmdHandler:  cmd,
		renderer:    r,
		sessionOpts: opts,
		active:      map[string]*session.Session{},
	}
}

// Start blocks until ctx is done. Sessions end with their connections.
func (m *PlayerManager) Start(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

// RunSession plays one game over conn.
func (m *PlayerManager) RunSession(ctx context.Context, conn io.ReadWriter) error {
	world, err := m.worlds.BuildWorld(m.capacity)
	if err != nil {
		return fmt.Errorf("building world: %w", err)
	}

	s, err := session.New(world, m.sessionOpts()...)
	if err != nil {
		return fmt.Errorf("starting session: %w", err)
	}

	id := s.ID().String()
	m.mu.Lock()
	m.active[id] = s
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		delete(m.active, id)
		m.mu.Unlock()
	}()

	err = NewPlayer(conn, s, m.cmdHandler, m.renderer).Play(ctx)
	slog.InfoContext(ctx, "session ended", "session", id, "state", s.State(), "battles", len(s.History()))
	return err
}

// Active returns the number of sessions in progress.
func (m *PlayerManager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.active)
}
