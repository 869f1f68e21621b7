package ports

import (
	"context"
	"errors"
)

// ErrSelectionCancelled is returned by a Presenter when the user closes a
// prompt without choosing anything.
var ErrSelectionCancelled = errors.New("selection cancelled")

// Presenter is an interactive front-end (rofi, a terminal, ...).
type Presenter interface {
	// RenderSingleChoice asks for free text.
	RenderSingleChoice(ctx context.Context, prompt string) (string, error)

	// RenderList asks the user to pick one of items.
	RenderList(ctx context.Context, prompt string, items []string) (string, error)

	// ShowError reports a message the user must acknowledge.
	ShowError(ctx context.Context, message string) error

	// ShowCard displays a composed card description.
	ShowCard(ctx context.Context, text string) error
}
