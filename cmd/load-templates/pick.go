package main

import (
	"context"
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted is returned when the user interrupts the picker.
var ErrAborted = errors.New("selection aborted")

// picker selects a subset of template keys. It abstracts the terminal so the
// command can be tested without one.
type picker interface {
	Pick(ctx context.Context, message string, keys []string) ([]string, error)
}

type surveyPicker struct{}

func newSurveyPicker() picker {
	return surveyPicker{}
}

func (surveyPicker) Pick(ctx context.Context, message string, keys []string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []string
	prompt := &survey.MultiSelect{
		Message:  message,
		Options:  keys,
		PageSize: 15,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return nil, ErrAborted
		}
		return nil, err
	}
	return out, nil
}
