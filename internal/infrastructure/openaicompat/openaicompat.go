// Package openaicompat holds the pieces shared by every adapter that talks
// to an OpenAI-compatible HTTP API through go-openai.
package openaicompat

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sashabaranov/go-openai"

	"github.com/ersonp/onebox-embed/internal/domain/entities"
)

// ClientConfig returns a go-openai client configuration for apiKey, pointed
// at baseURL when one is given.
func ClientConfig(apiKey, baseURL string) (openai.ClientConfig, error) {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL == "" {
		return cfg, nil
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return cfg, fmt.Errorf("%w: invalid base URL %q: %w", entities.ErrProviderUnavailable, baseURL, err)
	}
	cfg.BaseURL = baseURL
	return cfg, nil
}

// ClassifyError maps go-openai and transport errors onto the domain
// taxonomy. Context errors are returned untouched.
func ClassifyError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: %w", StatusClass(apiErr.HTTPStatusCode), err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("%w: %w", StatusClass(reqErr.HTTPStatusCode), err)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%w: %w", entities.ErrProviderUnavailable, err)
	}

	return fmt.Errorf("%w: %w", entities.ErrProviderInference, err)
}

// StatusClass decides whether an HTTP status means the model cannot be
// reached at all or that this particular request failed.
func StatusClass(status int) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound,
		http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return entities.ErrProviderUnavailable
	default:
		return entities.ErrProviderInference
	}
}
