package commands

import (
	"fmt"
	"strings"
)

// InputType represents the type of a command input parameter.
type InputType string

const (
	InputTypeString InputType = "string" // Single word, or the rest of the line when rest=true
	InputTypeNumber InputType = "number" // Integer
)

// InputSpec defines an input parameter that a command accepts from user input.
type InputSpec struct {
	Name     string    `json:"name"`
	Type     InputType `json:"type"`
	Required bool      `json:"required"`
	Rest     bool      `json:"rest"` // If true, captures all remaining input
}

// Command defines a player command. Commands are data: the handler names the
// session action they produce and the inputs say how to read its arguments.
type Command struct {
	Handler     string      `json:"handler"`
	Description string      `json:"description"`
	Category    string      `json:"category,omitempty"`
	Menu        int         `json:"menu,omitempty"` // Position in the numbered menu, 0 for none
	Aliases     []string    `json:"aliases,omitempty"`
	Inputs      []InputSpec `json:"inputs,omitempty"`
}

func (c *Command) Validate() error {
	if c.Handler == "" {
		return fmt.Errorf("command handler not set")
	}
	if c.Menu < 0 {
		return fmt.Errorf("menu position must not be negative")
	}

	for i, input := range c.Inputs {
		if input.Name == "" {
			return fmt.Errorf("input %d: name is required", i)
		}
		if input.Type == "" {
			return fmt.Errorf("input %q: type is required", input.Name)
		}
		switch input.Type {
		case InputTypeString, InputTypeNumber:
		default:
			return fmt.Errorf("input %q: unknown type %q", input.Name, input.Type)
		}
		if input.Rest && i != len(c.Inputs)-1 {
			return fmt.Errorf("input %q: only the last input can have rest=true", input.Name)
		}
	}

	for _, alias := range c.Aliases {
		if strings.TrimSpace(alias) == "" || strings.ContainsAny(alias, " \t") {
			return fmt.Errorf("alias %q must be a single word", alias)
		}
	}

	return nil
}

// Usage renders the argument synopsis, e.g. "move <direction>".
func (c *Command) Usage(name string) string {
	parts := []string{name}
	for _, input := range c.Inputs {
		if input.Required {
			parts = append(parts, fmt.Sprintf("<%s>", input.Name))
		} else {
			parts = append(parts, fmt.Sprintf("[%s]", input.Name))
		}
	}
	return strings.Join(parts, " ")
}
