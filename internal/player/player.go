package player

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pixil98/go-pymon/internal/combat"
	"github.com/pixil98/go-pymon/internal/commands"
	"github.com/pixil98/go-pymon/internal/display"
	"github.com/pixil98/go-pymon/internal/game"
	"github.com/pixil98/go-pymon/internal/session"
)

var errTooManyTries = commands.NewUserError("Too many tries.")

// Player drives one session from a line-oriented connection.
type Player struct {
	conn       io.ReadWriter
	session    *session.Session
	cmdHandler *commands.Handler
	renderer   *display.Renderer

	lines   chan string
	readErr error
	done    chan struct{}
}

// NewPlayer binds a session to a connection.
func NewPlayer(conn io.ReadWriter, s *session.Session, cmd *commands.Handler, r *display.Renderer) *Player {
	return &Player{
		conn:       conn,
		session:    s,
		cmdHandler: cmd,
		renderer:   r,
	}
}

// Play runs the command loop until the player exits, the connection drops or
// ctx is cancelled. Leaving through the exit command returns nil.
func (p *Player) Play(ctx context.Context) error {
	p.startReader()
	defer close(p.done)

	if err := p.writeLine("Welcome to Pymon World\nIt's a game about collecting creatures and having duels."); err != nil {
		return err
	}
	if err := p.showHelp(""); err != nil {
		return err
	}
	if _, err := p.submit(ctx, session.Inspect()); err != nil {
		return err
	}

	for {
		if err := p.prompt(); err != nil {
			return err
		}

		line, err := p.readLine(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		closed, err := p.exec(ctx, line)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			var userErr *commands.UserError
			if errors.As(err, &userErr) {
				if err := p.writeLine(userErr.Message); err != nil {
					return err
				}
				continue
			}
			return fmt.Errorf("command execution failed: %w", err)
		}
		if closed {
			return nil
		}
	}
}

// exec handles one line of input and reports whether the session closed.
func (p *Player) exec(ctx context.Context, line string) (bool, error) {
	req, err := p.cmdHandler.Parse(line)
	if err != nil {
		return false, err
	}
	if req.Help {
		return false, p.showHelp(req.Args.String("command"))
	}

	action := req.Action
	playing := p.session.State() == session.Playing
	switch action.Kind {
	case session.ActionPickItem:
		if action.Arg == "" && playing {
			if action.Arg, err = p.chooseItem(ctx, "Select an item to pick:", p.session.Location().Items); err != nil {
				return false, err
			}
		}
	case session.ActionUseItem:
		if action.Arg == "" && playing {
			if action.Arg, err = p.chooseItem(ctx, "Select an item to use:", p.session.Inventory()); err != nil {
				return false, err
			}
		}
	case session.ActionChallenge:
		action.Moves = combat.MoveSourceFunc(p.nextMove)
	}

	rep, err := p.submit(ctx, action)
	if err != nil {
		return false, err
	}
	return rep.Closed, nil
}

func (p *Player) submit(ctx context.Context, a session.Action) (*session.Report, error) {
	rep, err := p.session.Submit(ctx, a)
	if err != nil {
		return nil, commands.AsUserError(err)
	}

	text, err := p.renderer.Report(rep)
	if err != nil {
		return nil, err
	}
	return rep, p.writeLine(text)
}

func (p *Player) chooseItem(ctx context.Context, header string, items []game.ItemView) (string, error) {
	if len(items) == 0 {
		return "", commands.NewUserError("There is nothing to choose from.")
	}
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}
	i, err := p.PromptSelect(ctx, header, names)
	if err != nil {
		return "", err
	}
	return names[i], nil
}

// nextMove asks the player for a hand each round of a duel.
func (p *Player) nextMove(ctx context.Context, round int) (combat.Move, error) {
	answer, err := p.Prompt(ctx, fmt.Sprintf("Round %d - rock, paper or scissors? ", round), WithValidator(
		func(str string) (bool, string) {
			if _, err := combat.ParseMove(str); err != nil {
				return false, "Choose r, p or s.\n"
			}
			return true, ""
		},
	))
	if err != nil {
		return 0, err
	}
	return combat.ParseMove(answer)
}

func (p *Player) showHelp(topic string) error {
	text, err := p.cmdHandler.Help(topic)
	if err != nil {
		return err
	}
	return p.writeLine(text)
}

func (p *Player) prompt() error {
	active, ok := p.session.Active()
	return p.write(p.renderer.Prompt(active, ok))
}

// startReader feeds input lines into a channel so reads can be abandoned
// when ctx is cancelled.
func (p *Player) startReader() {
	p.lines = make(chan string)
	p.done = make(chan struct{})
	go func() {
		defer close(p.lines)
		scanner := bufio.NewScanner(p.conn)
		for scanner.Scan() {
			select {
			case p.lines <- scanner.Text():
			case <-p.done:
				return
			}
		}
		p.readErr = scanner.Err()
		if p.readErr == nil {
			p.readErr = io.EOF
		}
	}()
}

func (p *Player) readLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-p.lines:
		if !ok {
			if p.readErr == nil {
				return "", io.EOF
			}
			return "", p.readErr
		}
		return line, nil
	}
}

func (p *Player) write(s string) error {
	_, err := p.conn.Write([]byte(s))
	return err
}

func (p *Player) writeLine(msg string) error {
	if err := p.write(msg + "\n\n"); err != nil {
		slog.Warn("failed to write to player", "error", err)
		return err
	}
	return nil
}
