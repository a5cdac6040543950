package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-pymon/internal/session"
)

// SubjectPrefix starts the subject of every session report. The session id
// follows it.
const SubjectPrefix = "pymon.session."

// Broker delivers raw messages. NatsServer is the production broker.
type Broker interface {
	Publish(subject string, data []byte) error
}

// ReportPublisher sends every session report to the broker as JSON.
type ReportPublisher struct {
	broker Broker
}

func NewReportPublisher(b Broker) *ReportPublisher {
	return &ReportPublisher{broker: b}
}

// Subject returns the subject reports of the given session are published on.
func Subject(r *session.Report) string {
	return SubjectPrefix + r.SessionID.String()
}

func (p *ReportPublisher) Publish(_ context.Context, r *session.Report) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if err := p.broker.Publish(Subject(r), data); err != nil {
		return fmt.Errorf("publishing report: %w", err)
	}
	return nil
}

// Subscriber registers a handler for a subject pattern once it is ready.
type Subscriber interface {
	Ready() <-chan struct{}
	Subscribe(subject string, handler func(subject string, data []byte)) (func(), error)
}

// reportSummary is the part of a published report the logger reads.
type reportSummary struct {
	SessionID string `json:"session_id"`
	Action    string `json:"action"`
	GameOver  bool   `json:"game_over"`
	Duel      *struct {
		Challenger string `json:"challenger"`
		Opponent   string `json:"opponent"`
		Outcome    string `json:"outcome"`
	} `json:"duel"`
}

// ReportLogger follows every session on the broker and logs each finished
// duel and game over.
type ReportLogger struct {
	sub Subscriber
}

func NewReportLogger(s Subscriber) *ReportLogger {
	return &ReportLogger{sub: s}
}

// Start subscribes once the broker is up and blocks until ctx is done.
func (l *ReportLogger) Start(ctx context.Context) error {
	select {
	case <-l.sub.Ready():
	case <-ctx.Done():
		return nil
	}

	unsubscribe, err := l.sub.Subscribe(SubjectPrefix+">", l.handle)
	if err != nil {
		return fmt.Errorf("subscribing to session reports: %w", err)
	}
	defer unsubscribe()

	<-ctx.Done()
	return nil
}

func (l *ReportLogger) handle(subject string, data []byte) {
	var r reportSummary
	if err := json.Unmarshal(data, &r); err != nil {
		slog.Warn("undecodable session report", "subject", subject, "error", err)
		return
	}

	if r.Duel != nil {
		slog.Info("duel report",
			"session", r.SessionID,
			"challenger", r.Duel.Challenger,
			"opponent", r.Duel.Opponent,
			"outcome", r.Duel.Outcome,
		)
	}
	if r.GameOver && r.Action == session.ActionChallenge.String() {
		slog.Info("session lost its last pymon", "session", r.SessionID)
	}
}
