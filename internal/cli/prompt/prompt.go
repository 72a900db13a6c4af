// Package prompt asks the user for missing input during interactive generation.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted is returned when the user interrupts a prompt.
var ErrAborted = errors.New("prompt aborted")

// InputConfig configures a single-line or multi-line text prompt.
type InputConfig struct {
	Message   string
	Help      string
	Default   string
	Multiline bool
	Validator func(string) error
}

// ConfirmConfig configures a yes/no prompt.
type ConfirmConfig struct {
	Message string
	Help    string
	Default bool
}

// Driver abstracts the terminal prompts so commands can be tested without a
// real terminal.
type Driver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
}

// NewSurvey returns a Driver backed by survey prompts on the process terminal.
func NewSurvey() Driver {
	return &surveyDriver{}
}

type surveyDriver struct{}

func (d *surveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var prompt survey.Prompt = &survey.Input{
		Message: cfg.Message,
		Help:    cfg.Help,
		Default: cfg.Default,
	}
	if cfg.Multiline {
		prompt = &survey.Multiline{
			Message: cfg.Message,
			Help:    cfg.Help,
			Default: cfg.Default,
		}
	}

	var opts []survey.AskOpt
	if cfg.Validator != nil {
		validator := cfg.Validator
		opts = append(opts, survey.WithValidator(func(ans interface{}) error {
			s, ok := ans.(string)
			if !ok {
				return fmt.Errorf("unexpected answer type %T", ans)
			}
			return validator(s)
		}))
	}

	var out string
	if err := survey.AskOne(prompt, &out, opts...); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (d *surveyDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var out bool
	prompt := &survey.Confirm{
		Message: cfg.Message,
		Help:    cfg.Help,
		Default: cfg.Default,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return false, translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

// NotBlank rejects answers that are empty or whitespace-only.
func NotBlank(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("a value is required")
	}
	return nil
}
