package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/onebox-embed/internal/domain/ports"
)

// InitHandler prepares the knowledge base stores.
type InitHandler struct {
	collectionManager ports.CollectionManager
	ledger            ports.KnowledgeLedger
}

// NewInitHandler creates a new init handler.
func NewInitHandler(collectionManager ports.CollectionManager, ledger ports.KnowledgeLedger) *InitHandler {
	return &InitHandler{
		collectionManager: collectionManager,
		ledger:            ledger,
	}
}

// InitOptions controls initialization.
type InitOptions struct {
	VectorSize uint64
	// Reset drops the collection and empties the ledger before recreating
	// them, for example after switching to a model with other dimensions.
	Reset bool
}

// InitResult contains the result of initialization.
type InitResult struct {
	VectorSize uint64
	Reset      bool
}

// Handle creates the vector collection and the ledger schema. Without Reset
// both steps are idempotent and existing entries are kept.
func (h *InitHandler) Handle(ctx context.Context, opts InitOptions) (*InitResult, error) {
	if opts.VectorSize == 0 {
		return nil, fmt.Errorf("vector size must be positive (set embedder.dimensions)")
	}

	if h.collectionManager != nil {
		if opts.Reset {
			if err := h.collectionManager.DeleteCollection(ctx); err != nil {
				return nil, fmt.Errorf("deleting collection: %w", err)
			}
		}
		if err := h.collectionManager.EnsureCollection(ctx, opts.VectorSize); err != nil {
			return nil, fmt.Errorf("creating collection: %w", err)
		}
	}

	if err := h.ledger.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("creating ledger schema: %w", err)
	}

	if opts.Reset {
		if err := h.ledger.DeleteAllEntries(ctx); err != nil {
			return nil, fmt.Errorf("clearing ledger: %w", err)
		}
	}

	return &InitResult{VectorSize: opts.VectorSize, Reset: opts.Reset}, nil
}
