package listener

import (
	"context"
	"io"
	"log/slog"
)

// SessionRunner plays one game over a connection.
type SessionRunner interface {
	RunSession(ctx context.Context, conn io.ReadWriter) error
}

type ConnectionManager struct {
	runner SessionRunner
}

func NewConnectionManager(r SessionRunner) *ConnectionManager {
	return &ConnectionManager{
		runner: r,
	}
}

// AcceptConnection runs a session to completion. Every connection gets its
// own world and session.
func (m *ConnectionManager) AcceptConnection(ctx context.Context, conn io.ReadWriter) {
	if err := m.runner.RunSession(ctx, conn); err != nil {
		slog.WarnContext(ctx, "player session", "error", err)
	}
}
