package designer

import (
	"context"
	"errors"
	"io"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted signals the user aborted input (e.g., Ctrl+C).
var ErrAborted = errors.New("design aborted")

// InputConfig configures a text prompt.
type InputConfig struct {
	Message  string
	Default  string
	Help     string
	Validate func(string) error
}

// ConfirmConfig configures a yes/no prompt.
type ConfirmConfig struct {
	Message string
	Default bool
}

// SelectConfig configures a single choice prompt. Default must be one of
// Options.
type SelectConfig struct {
	Message string
	Options []string
	Default string
}

// Prompter asks the questions. The designer only talks to this interface so
// sessions can be scripted in tests.
type Prompter interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
	Select(ctx context.Context, cfg SelectConfig) (string, error)
}

type surveyPrompter struct {
	opts []survey.AskOpt
}

// NewSurveyPrompter returns a terminal Prompter reading from in and
// drawing on out.
func NewSurveyPrompter(in terminal.FileReader, out terminal.FileWriter, errOut io.Writer) Prompter {
	return &surveyPrompter{
		opts: []survey.AskOpt{survey.WithStdio(in, out, errOut)},
	}
}

func (p *surveyPrompter) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	prompt := &survey.Input{
		Message: cfg.Message,
		Default: cfg.Default,
		Help:    cfg.Help,
	}
	opts := p.opts
	if cfg.Validate != nil {
		opts = append(opts[:len(opts):len(opts)], survey.WithValidator(func(ans interface{}) error {
			s, _ := ans.(string)
			return cfg.Validate(s)
		}))
	}
	if err := survey.AskOne(prompt, &out, opts...); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (p *surveyPrompter) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var out bool
	prompt := &survey.Confirm{
		Message: cfg.Message,
		Default: cfg.Default,
	}
	if err := survey.AskOne(prompt, &out, p.opts...); err != nil {
		return false, translateSurveyErr(err)
	}
	return out, nil
}

func (p *surveyPrompter) Select(ctx context.Context, cfg SelectConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	prompt := &survey.Select{
		Message:  cfg.Message,
		Options:  cfg.Options,
		Default:  cfg.Default,
		PageSize: 10,
	}
	if err := survey.AskOne(prompt, &out, p.opts...); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}
