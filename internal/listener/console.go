package listener

import (
	"context"
	"io"
	"log/slog"
)

// readWriter joins a separate input and output into one connection.
type readWriter struct {
	io.Reader
	io.Writer
}

// ConsoleListener plays a single local game over the given input and output,
// normally stdin and stdout.
type ConsoleListener struct {
	cm  *ConnectionManager
	in  io.Reader
	out io.Writer
}

func NewConsoleListener(cm *ConnectionManager, in io.Reader, out io.Writer) *ConsoleListener {
	return &ConsoleListener{
		cm:  cm,
		in:  in,
		out: out,
	}
}

// Start runs the console game, then waits for shutdown.
func (l *ConsoleListener) Start(ctx context.Context) error {
	l.cm.AcceptConnection(ctx, &readWriter{Reader: l.in, Writer: l.out})
	slog.InfoContext(ctx, "console game finished")

	<-ctx.Done()
	return nil
}
