// Package handlers contains application use case handlers.
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ersonp/onebox-embed/internal/domain/entities"
	"github.com/ersonp/onebox-embed/internal/domain/ports"
)

// EmbedHandler turns the command-line arguments into one line of JSON.
type EmbedHandler struct {
	embedder ports.Embedder
}

// NewEmbedHandler creates a new embed handler.
func NewEmbedHandler(embedder ports.Embedder) *EmbedHandler {
	return &EmbedHandler{
		embedder: embedder,
	}
}

// TextFromArgs returns the single positional argument. The empty string is
// a valid text; a missing or extra argument is not.
func TextFromArgs(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", fmt.Errorf("%w: missing text argument", entities.ErrInvalidInput)
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("%w: expected exactly one text argument, got %d (quote text that contains spaces)", entities.ErrInvalidInput, len(args))
	}
}

// Handle embeds the text given in args and writes the vector to w. Nothing
// is written unless the whole line was produced.
func (h *EmbedHandler) Handle(ctx context.Context, args []string, w io.Writer) error {
	text, err := TextFromArgs(args)
	if err != nil {
		return err
	}

	vector, err := h.embedder.Embed(ctx, text)
	if err != nil {
		return err
	}

	line, err := MarshalVector(vector)
	if err != nil {
		return err
	}

	if _, err := w.Write(line); err != nil {
		return fmt.Errorf("writing embedding: %w", err)
	}

	return nil
}

// MarshalVector encodes vector as a JSON array of numbers terminated by a
// newline.
func MarshalVector(vector []float32) ([]byte, error) {
	if vector == nil {
		vector = []float32{}
	}

	data, err := json.Marshal(vector)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding embedding: %w", entities.ErrProviderInference, err)
	}

	return append(data, '\n'), nil
}
