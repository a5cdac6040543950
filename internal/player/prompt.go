package player

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

type promptValidator func(string) (bool, string)

type promptConfig struct {
	tries     int
	validator promptValidator
}

type promptOption func(*promptConfig)

func WithValidator(v promptValidator) promptOption {
	return func(cfg *promptConfig) {
		cfg.validator = v
	}
}

func WithMaxTries(i int) promptOption {
	return func(cfg *promptConfig) {
		cfg.tries = i
	}
}

// Prompt writes prompt and reads one line, repeating until the validator
// accepts it or the tries run out.
func (p *Player) Prompt(ctx context.Context, prompt string, opts ...promptOption) (string, error) {
	config := &promptConfig{}
	for _, opt := range opts {
		opt(config)
	}

	tries := 0
	for {
		if err := p.write(prompt); err != nil {
			return "", err
		}

		input, err := p.readLine(ctx)
		if err != nil {
			return "", err
		}
		input = strings.TrimSpace(input)

		if config.validator != nil {
			ok, msg := config.validator(input)
			if !ok {
				if err := p.write(msg); err != nil {
					return "", err
				}

				tries++
				if config.tries > 0 && config.tries == tries {
					return "", errTooManyTries
				}
				continue
			}
		}

		return input, nil
	}
}

// PromptSelect shows a numbered list and returns the chosen index.
func (p *Player) PromptSelect(ctx context.Context, header string, options []string) (int, error) {
	lines := make([]string, 0, len(options)+1)
	lines = append(lines, header)
	for i, opt := range options {
		lines = append(lines, fmt.Sprintf("%d) %s", i+1, opt))
	}
	if err := p.writeLine(strings.Join(lines, "\n")); err != nil {
		return 0, err
	}

	selection, err := p.Prompt(ctx, "Make your selection: ", WithMaxTries(3), WithValidator(
		func(str string) (bool, string) {
			i, err := strconv.Atoi(str)
			if err != nil || i < 1 || i > len(options) {
				return false, "Invalid selection!\n"
			}
			return true, ""
		},
	))
	if err != nil {
		return 0, err
	}

	i, err := strconv.Atoi(selection)
	if err != nil {
		return 0, err
	}
	return i - 1, nil
}
