package commands

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/pixil98/go-pymon/internal/session"
	"github.com/pixil98/go-pymon/internal/storage"
)

// ParsedArg represents a validated and parsed command argument.
type ParsedArg struct {
	Spec  *InputSpec
	Raw   string // Original player input
	Value any    // int for number inputs, string otherwise
}

// Args holds parsed arguments by input name.
type Args map[string]ParsedArg

// String returns the raw text of a string input, or "" when it was omitted.
func (a Args) String(name string) string {
	if arg, ok := a[name]; ok {
		if s, ok := arg.Value.(string); ok {
			return s
		}
	}
	return ""
}

// Number returns a number input, or def when it was omitted.
func (a Args) Number(name string, def int) int {
	if arg, ok := a[name]; ok {
		if n, ok := arg.Value.(int); ok {
			return n
		}
	}
	return def
}

// ActionFactory turns parsed arguments into a session action.
type ActionFactory func(args Args) (session.Action, error)

// Request is a parsed line of player input.
type Request struct {
	Command string
	Action  session.Action
	Args    Args
	// Help requests are answered by the handler and never reach the session.
	Help bool
}

type compiledCommand struct {
	id      string
	cmd     *Command
	factory ActionFactory
}

// Handler resolves player input against a command store.
type Handler struct {
	store     storage.Storer[*Command]
	factories map[string]ActionFactory
	byWord    map[string]*compiledCommand
	byMenu    map[int]*compiledCommand
}

// NewHandler compiles every command in the store. Unknown handlers and
// clashing names, aliases or menu numbers are errors.
func NewHandler(store storage.Storer[*Command]) (*Handler, error) {
	h := &Handler{
		store:     store,
		factories: builtinFactories(),
		byWord:    map[string]*compiledCommand{},
		byMenu:    map[int]*compiledCommand{},
	}
	if err := h.compileAll(); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *Handler) compileAll() error {
	for _, id := range h.store.Keys() {
		cmd := h.store.Get(id)
		if err := h.compile(id, cmd); err != nil {
			return fmt.Errorf("compiling command %q: %w", id, err)
		}
	}
	return nil
}

func (h *Handler) compile(id string, cmd *Command) error {
	cc := &compiledCommand{id: id, cmd: cmd}
	if cmd.Handler != "help" {
		factory, ok := h.factories[cmd.Handler]
		if !ok {
			return fmt.Errorf("unknown handler %q", cmd.Handler)
		}
		cc.factory = factory
	}

	for _, word := range append([]string{id}, cmd.Aliases...) {
		word = strings.ToLower(word)
		if other, exists := h.byWord[word]; exists {
			return fmt.Errorf("%q is already used by command %q", word, other.id)
		}
		h.byWord[word] = cc
	}
	if cmd.Menu > 0 {
		if other, exists := h.byMenu[cmd.Menu]; exists {
			return fmt.Errorf("menu %d is already used by command %q", cmd.Menu, other.id)
		}
		h.byMenu[cmd.Menu] = cc
	}
	return nil
}

// Parse resolves one line of input: a command name, alias or menu number
// followed by its arguments.
func (h *Handler) Parse(line string) (*Request, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, NewUserError("Enter a command, or type help for the menu.")
	}

	cc, err := h.lookup(fields[0])
	if err != nil {
		return nil, err
	}

	args, err := h.parseArgs(cc.cmd.Inputs, fields[1:])
	if err != nil {
		return nil, err
	}

	req := &Request{Command: cc.id, Args: args}
	if cc.factory == nil {
		req.Help = true
		return req, nil
	}

	req.Action, err = cc.factory(args)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (h *Handler) lookup(word string) (*compiledCommand, error) {
	if n, err := strconv.Atoi(word); err == nil {
		if cc, ok := h.byMenu[n]; ok {
			return cc, nil
		}
		return nil, NewUserError(fmt.Sprintf("There is no menu option %d.", n))
	}
	if cc, ok := h.byWord[strings.ToLower(word)]; ok {
		return cc, nil
	}
	return nil, NewUserError(fmt.Sprintf("Unknown command: %s", word))
}

// parseArgs validates raw string arguments against input specs.
func (h *Handler) parseArgs(specs []InputSpec, rawArgs []string) (Args, error) {
	requiredCount := 0
	for _, spec := range specs {
		if spec.Required {
			requiredCount++
		}
	}
	if len(rawArgs) < requiredCount {
		return nil, NewUserError(fmt.Sprintf("Expected at least %d argument(s), got %d", requiredCount, len(rawArgs)))
	}

	hasRest := len(specs) > 0 && specs[len(specs)-1].Rest
	if !hasRest && len(rawArgs) > len(specs) {
		return nil, NewUserError(fmt.Sprintf("Expected at most %d argument(s), got %d", len(specs), len(rawArgs)))
	}

	args := Args{}
	argIndex := 0
	for i := range specs {
		spec := &specs[i]
		if argIndex >= len(rawArgs) {
			if spec.Required {
				return nil, NewUserError(fmt.Sprintf("Missing required parameter: %s", spec.Name))
			}
			continue
		}

		var raw string
		if spec.Rest {
			raw = strings.Join(rawArgs[argIndex:], " ")
			argIndex = len(rawArgs)
		} else {
			raw = rawArgs[argIndex]
			argIndex++
		}

		value, err := h.parseValue(spec.Type, raw)
		if err != nil {
			return nil, err
		}
		args[spec.Name] = ParsedArg{Spec: spec, Raw: raw, Value: value}
	}
	return args, nil
}

// parseValue parses a raw string into the appropriate type.
func (h *Handler) parseValue(inputType InputType, raw string) (any, error) {
	switch inputType {
	case InputTypeString:
		return raw, nil
	case InputTypeNumber:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, NewUserError(fmt.Sprintf("%q is not a valid number.", raw))
		}
		return n, nil
	default:
		return nil, fmt.Errorf("unknown parameter type %q", inputType)
	}
}

// Help lists the menu and the other commands, or describes one command.
func (h *Handler) Help(topic string) (string, error) {
	if topic != "" {
		cc, err := h.lookup(topic)
		if err != nil {
			return "", NewUserError(fmt.Sprintf("Command %q is unknown.", topic))
		}
		lines := []string{
			fmt.Sprintf("%s: %s", cc.id, cc.cmd.Description),
			fmt.Sprintf("Usage: %s", cc.cmd.Usage(cc.id)),
		}
		if len(cc.cmd.Aliases) > 0 {
			lines = append(lines, fmt.Sprintf("Aliases: %s", strings.Join(cc.cmd.Aliases, ", ")))
		}
		return strings.Join(lines, "\n"), nil
	}

	lines := []string{"Please issue a command to your pymon:"}
	menu := make([]int, 0, len(h.byMenu))
	for n := range h.byMenu {
		menu = append(menu, n)
	}
	slices.Sort(menu)
	for _, n := range menu {
		cc := h.byMenu[n]
		lines = append(lines, fmt.Sprintf("%d) %s", n, cc.cmd.Description))
	}

	var others []string
	for _, id := range h.store.Keys() {
		if h.store.Get(id).Menu == 0 {
			others = append(others, id)
		}
	}
	if len(others) > 0 {
		lines = append(lines, fmt.Sprintf("Also: %s", strings.Join(others, ", ")))
	}
	return strings.Join(lines, "\n"), nil
}

func builtinFactories() map[string]ActionFactory {
	return map[string]ActionFactory{
		"inspect":          func(Args) (session.Action, error) { return session.Inspect(), nil },
		"inspect_location": func(Args) (session.Action, error) { return session.InspectLocation(), nil },
		"view_inventory":   func(Args) (session.Action, error) { return session.ViewInventory(), nil },
		"show_stats":       func(Args) (session.Action, error) { return session.ShowStats(), nil },
		"exit":             func(Args) (session.Action, error) { return session.Exit(), nil },
		"move": func(a Args) (session.Action, error) {
			return session.Move(a.String("direction")), nil
		},
		"scout": func(a Args) (session.Action, error) {
			return session.Scout(a.String("direction")), nil
		},
		"pick_item": func(a Args) (session.Action, error) {
			return session.PickItem(a.String("item")), nil
		},
		"use_item": func(a Args) (session.Action, error) {
			return session.UseItem(a.String("item")), nil
		},
		// Moves are supplied by whoever drives the session.
		"challenge": func(a Args) (session.Action, error) {
			return session.Challenge(a.String("creature"), nil), nil
		},
		// Bench positions are shown to players counting from 1.
		"swap_bench": func(a Args) (session.Action, error) {
			pos := a.Number("position", 1)
			if pos < 1 {
				return session.Action{}, NewUserError("Bench positions start at 1.")
			}
			return session.SwapBench(pos - 1), nil
		},
	}
}
