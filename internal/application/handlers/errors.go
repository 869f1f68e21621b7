package handlers

import (
	"errors"

	"github.com/magic-finder/magic-finder/internal/domain/ports"
)

// ErrNothingFound is returned by the interactive flow when no card could be
// shown; the user has already been told why.
var ErrNothingFound = errors.New("no card found")

// StoreErrorMessage returns the user-facing message for a store population
// error, or "" when err is not one.
func StoreErrorMessage(err error) string {
	switch {
	case errors.Is(err, ports.ErrStoreMissing):
		return "Database doesn't exist - did you run update?"
	case errors.Is(err, ports.ErrStoreEmptyOfCards):
		return "Database doesn't have any cards - try updating maybe?"
	case errors.Is(err, ports.ErrStoreEmptyOfWords):
		return "Database doesn't have any words (but has cards) - try updating again?"
	default:
		return ""
	}
}
