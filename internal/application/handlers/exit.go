package handlers

import (
	"errors"

	"github.com/ersonp/onebox-embed/internal/domain/entities"
)

// Process exit codes shared by the command-line tools.
const (
	ExitOK                  = 0
	ExitFailure             = 1
	ExitInvalidInput        = 2
	ExitProviderUnavailable = 3
	ExitProviderInference   = 4
)

// ExitCode maps an error chain to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, entities.ErrInvalidInput):
		return ExitInvalidInput
	case errors.Is(err, entities.ErrProviderUnavailable):
		return ExitProviderUnavailable
	case errors.Is(err, entities.ErrProviderInference):
		return ExitProviderInference
	default:
		return ExitFailure
	}
}
