package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/ersonp/onebox-embed/internal/domain/entities"
	"github.com/ersonp/onebox-embed/internal/domain/services"
	"github.com/ersonp/onebox-embed/internal/infrastructure/parsers"
)

// ImportHandler handles importing knowledge from files.
type ImportHandler struct {
	service *services.ImportService
}

// NewImportHandler creates a new import handler.
func NewImportHandler(service *services.ImportService) *ImportHandler {
	return &ImportHandler{
		service: service,
	}
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	Format string // "json", "csv", "text", or "auto"
	DryRun bool   // Validate without saving
}

// Handle imports knowledge from a file. On failure the partial result is
// returned together with the error.
func (h *ImportHandler) Handle(ctx context.Context, filePath string, opts ImportOptions) (*services.ImportResult, error) {
	var parser parsers.Parser
	if opts.Format == "" || opts.Format == "auto" {
		parser = parsers.ForFile(filePath)
	} else {
		parser = parsers.ForFormat(opts.Format)
	}

	if parser == nil {
		return nil, fmt.Errorf("%w: unsupported format for file %s (use --format %v)", entities.ErrInvalidInput, filePath, parsers.Formats)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	rawEntries, err := parser.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %w", entities.ErrInvalidInput, filePath, err)
	}

	result, err := h.service.Import(ctx, rawEntries, services.ImportOptions{DryRun: opts.DryRun})
	if err != nil {
		return result, fmt.Errorf("importing %s: %w", filePath, err)
	}

	return result, nil
}
