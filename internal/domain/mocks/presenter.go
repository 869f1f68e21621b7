package mocks

import (
	"context"

	"github.com/magic-finder/magic-finder/internal/domain/ports"
)

// Presenter is a scripted mock implementation of ports.Presenter.
// Inputs are consumed in order by RenderSingleChoice; Selections by RenderList.
// Running out of script behaves like the user closing the prompt.
type Presenter struct {
	Inputs     []string
	Selections []string
	Err        error

	// Call tracking
	Prompts []string
	Lists   [][]string
	Errors  []string
	Shown   []string
}

// RenderSingleChoice returns the next scripted input.
func (m *Presenter) RenderSingleChoice(_ context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Inputs) == 0 {
		return "", ports.ErrSelectionCancelled
	}
	next := m.Inputs[0]
	m.Inputs = m.Inputs[1:]
	return next, nil
}

// RenderList records the items and returns the next scripted selection.
func (m *Presenter) RenderList(_ context.Context, prompt string, items []string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	m.Lists = append(m.Lists, items)
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Selections) == 0 {
		return "", ports.ErrSelectionCancelled
	}
	next := m.Selections[0]
	m.Selections = m.Selections[1:]
	return next, nil
}

// ShowError records the message.
func (m *Presenter) ShowError(_ context.Context, message string) error {
	m.Errors = append(m.Errors, message)
	return m.Err
}

// ShowCard records the text.
func (m *Presenter) ShowCard(_ context.Context, text string) error {
	m.Shown = append(m.Shown, text)
	return m.Err
}
