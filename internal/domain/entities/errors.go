package entities

import "errors"

// Error taxonomy shared by every model provider, embedding or chat.
// Adapters wrap their own errors with one of these so callers can classify
// with errors.Is.
var (
	// ErrInvalidInput means the caller supplied a missing or malformed argument.
	ErrInvalidInput = errors.New("invalid input")

	// ErrProviderUnavailable means the model could not be loaded or reached.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrProviderInference means the provider was reached but failed to
	// process the text.
	ErrProviderInference = errors.New("provider inference error")
)

// IsProviderError reports whether err already carries a provider
// classification.
func IsProviderError(err error) bool {
	return errors.Is(err, ErrProviderUnavailable) || errors.Is(err, ErrProviderInference)
}
