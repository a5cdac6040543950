package listener

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"syscall"
)

// connGroup tracks the live connections of one listener. Connections get a
// context of their own so that shutdown can end every game at once and then
// wait for them to finish.
type connGroup struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newConnGroup() *connGroup {
	ctx, cancel := context.WithCancel(context.Background())
	return &connGroup{ctx: ctx, cancel: cancel}
}

// run serves one connection on the calling goroutine.
func (g *connGroup) run(serve func(ctx context.Context)) {
	g.wg.Add(1)
	defer g.wg.Done()
	serve(g.ctx)
}

// spawn serves one connection on a new goroutine.
func (g *connGroup) spawn(serve func(ctx context.Context)) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		serve(g.ctx)
	}()
}

// shutdown cancels every connection and waits for them to return.
func (g *connGroup) shutdown() {
	g.cancel()
	g.wg.Wait()
}

func listenError(protocol string, port uint16, err error) error {
	if errors.Is(err, syscall.EADDRINUSE) {
		return fmt.Errorf("port %d is already in use (another server running?)", port)
	}
	return fmt.Errorf("serving %s on port %d: %w", protocol, port, err)
}
