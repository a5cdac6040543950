package command

import (
	"fmt"

	"github.com/pixil98/go-pymon/internal/commands"
	"github.com/pixil98/go-pymon/internal/listener"
	"github.com/pixil98/go-pymon/internal/messaging"
	"github.com/pixil98/go-pymon/internal/player"
	"github.com/pixil98/go-pymon/internal/session"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	dict, err := cfg.Storage.BuildDictionary()
	if err != nil {
		return nil, fmt.Errorf("building dictionary: %w", err)
	}
	// Fail at startup rather than on the first connection.
	if _, err := dict.BuildWorld(cfg.Session.capacity()); err != nil {
		return nil, fmt.Errorf("building world: %w", err)
	}

	cmdStore, err := cfg.Storage.BuildCommands()
	if err != nil {
		return nil, fmt.Errorf("building commands: %w", err)
	}
	cmdHandler, err := commands.NewHandler(cmdStore)
	if err != nil {
		return nil, fmt.Errorf("creating command handler: %w", err)
	}

	renderer, err := cfg.Session.BuildRenderer()
	if err != nil {
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	workers := service.WorkerList{}

	var pub session.Publisher
	if !cfg.Nats.Disabled {
		natsServer, err := cfg.Nats.buildNatsServer()
		if err != nil {
			return nil, fmt.Errorf("creating nats server: %w", err)
		}
		pub = messaging.NewReportPublisher(natsServer)
		workers["nats"] = natsServer
		workers["reports"] = messaging.NewReportLogger(natsServer)
	}

	pm := player.NewPlayerManager(dict, cfg.Session.capacity(), cmdHandler, renderer, cfg.Session.SessionOpts(pub))
	cm := listener.NewConnectionManager(pm)

	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		w, err := l.BuildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d", i)] = w
	}

	workers["players"] = pm
	workers["listeners"] = &listeners

	return workers, nil
}
