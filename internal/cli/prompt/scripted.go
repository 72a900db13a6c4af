package prompt

import (
	"context"
	"fmt"
)

// Scripted is a Driver that replays canned answers in order. It records the
// messages it was asked.
type Scripted struct {
	Inputs   []string
	Confirms []bool
	Asked    []string
}

// Input returns the next canned input.
func (s *Scripted) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.Asked = append(s.Asked, cfg.Message)
	if len(s.Inputs) == 0 {
		return "", fmt.Errorf("unexpected input prompt %q", cfg.Message)
	}
	answer := s.Inputs[0]
	s.Inputs = s.Inputs[1:]
	if cfg.Validator != nil {
		if err := cfg.Validator(answer); err != nil {
			return "", err
		}
	}
	return answer, nil
}

// Confirm returns the next canned confirmation.
func (s *Scripted) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.Asked = append(s.Asked, cfg.Message)
	if len(s.Confirms) == 0 {
		return false, fmt.Errorf("unexpected confirm prompt %q", cfg.Message)
	}
	answer := s.Confirms[0]
	s.Confirms = s.Confirms[1:]
	return answer, nil
}
