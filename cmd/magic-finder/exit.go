package main

import (
	"errors"

	"github.com/magic-finder/magic-finder/internal/application/handlers"
	"github.com/magic-finder/magic-finder/internal/domain/ports"
	"github.com/magic-finder/magic-finder/internal/domain/services"
)

// Process exit codes.
const (
	ExitSuccess            = 0
	ExitFailure            = 1
	ExitNoExactMatch       = 102
	ExitDidYouMean         = 105
	ExitMultipleCardsMatch = 106
	ExitExactCardFound     = 110
	ExitUpdateSuccess      = 120
	ExitPrintedDataFolder  = 150
	ExitStoreMissing       = 201
	ExitEmptySearchString  = 202
	ExitStoreEmptyOfCards  = 203
	ExitStoreEmptyOfWords  = 204
)

// exitError carries a non-zero exit code for an outcome that is not a failure.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return "exit status"
}

func exitWith(code int) error {
	if code == ExitSuccess {
		return nil
	}
	return &exitError{code: code}
}

// exitStatus maps a command error to an exit code and the message to print.
func exitStatus(err error) (int, string) {
	if err == nil {
		return ExitSuccess, ""
	}

	var exit *exitError
	if errors.As(err, &exit) {
		return exit.code, ""
	}

	switch {
	case errors.Is(err, ports.ErrStoreMissing):
		return ExitStoreMissing, handlers.StoreErrorMessage(err)
	case errors.Is(err, ports.ErrStoreEmptyOfCards):
		return ExitStoreEmptyOfCards, handlers.StoreErrorMessage(err)
	case errors.Is(err, ports.ErrStoreEmptyOfWords):
		return ExitStoreEmptyOfWords, handlers.StoreErrorMessage(err)
	case errors.Is(err, services.ErrEmptyQuery):
		return ExitEmptySearchString, "You need to put some card text to search"
	}
	return ExitFailure, "error: " + err.Error()
}
