package messaging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
)

// ErrBusNotStarted is returned by Publish and Subscribe before the broker
// accepts clients.
var ErrBusNotStarted = errors.New("report bus not started")

// NatsServer is the report bus: an embedded NATS broker and the single
// in-process client that sessions publish through.
type NatsServer struct {
	broker *server.Server
	client *nats.Conn
	ready  chan struct{}

	bootTimeout time.Duration
	host        string
	port        int
}

// NatsServerOpt configures a NatsServer.
type NatsServerOpt func(*NatsServer)

// WithStartTimeout bounds how long Start waits for the broker to accept
// clients.
func WithStartTimeout(d time.Duration) NatsServerOpt {
	return func(n *NatsServer) {
		n.bootTimeout = d
	}
}

// WithHost sets the interface the broker binds. Loopback unless set.
func WithHost(host string) NatsServerOpt {
	return func(n *NatsServer) {
		n.host = host
	}
}

// WithPort sets the client port. Zero uses the NATS default and -1 picks a
// free port.
func WithPort(port int) NatsServerOpt {
	return func(n *NatsServer) {
		n.port = port
	}
}

func NewNatsServer(opts ...NatsServerOpt) (*NatsServer, error) {
	n := &NatsServer{
		bootTimeout: 10 * time.Second,
		host:        "127.0.0.1",
		ready:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(n)
	}

	broker, err := server.NewServer(&server.Options{
		ServerName: "pymon-reports",
		Host:       n.host,
		Port:       n.port,
		NoSigs:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}
	n.broker = broker
	return n, nil
}

// Start runs the broker until ctx is done.
func (n *NatsServer) Start(ctx context.Context) error {
	if err := n.boot(); err != nil {
		return err
	}
	slog.InfoContext(ctx, "report bus listening", "addr", n.broker.Addr())

	<-ctx.Done()
	n.stop(ctx)
	return nil
}

func (n *NatsServer) boot() error {
	n.broker.Start()
	if !n.broker.ReadyForConnections(n.bootTimeout) {
		n.broker.Shutdown()
		return fmt.Errorf("report bus not accepting clients after %s", n.bootTimeout)
	}

	client, err := nats.Connect(n.broker.ClientURL(), nats.Name("pymon-reports"), nats.NoReconnect())
	if err != nil {
		n.broker.Shutdown()
		return fmt.Errorf("connecting to report bus: %w", err)
	}
	n.client = client
	close(n.ready)
	return nil
}

// stop sends whatever is still buffered before the broker goes away.
func (n *NatsServer) stop(ctx context.Context) {
	if err := n.client.FlushTimeout(time.Second); err != nil {
		slog.WarnContext(ctx, "flushing report bus", "error", err)
	}
	n.client.Close()
	n.broker.Shutdown()
	n.broker.WaitForShutdown()
}

// Ready is closed once Publish and Subscribe can be used.
func (n *NatsServer) Ready() <-chan struct{} {
	return n.ready
}

// Subscribe delivers every message matching subject to handler. Call the
// returned function to stop.
func (n *NatsServer) Subscribe(subject string, handler func(subject string, data []byte)) (func(), error) {
	if !n.started() {
		return nil, ErrBusNotStarted
	}
	sub, err := n.client.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Subject, msg.Data)
	})
	if err != nil {
		return nil, fmt.Errorf("subscribing to %s: %w", subject, err)
	}
	return func() { _ = sub.Unsubscribe() }, nil
}

func (n *NatsServer) Publish(subject string, data []byte) error {
	if !n.started() {
		return ErrBusNotStarted
	}
	return n.client.Publish(subject, data)
}

func (n *NatsServer) started() bool {
	select {
	case <-n.ready:
		return true
	default:
		return false
	}
}
