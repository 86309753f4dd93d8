package ports

import (
	"context"

	"github.com/ersonp/onebox-embed/internal/domain/entities"
)

// LLMClient defines the interface for chat model operations on emails.
type LLMClient interface {
	// GenerateReply drafts a reply to email, informed by the knowledge
	// texts.
	GenerateReply(ctx context.Context, email string, knowledge []string) (string, error)

	// Categorize assigns email one of entities.EmailCategories.
	Categorize(ctx context.Context, email string) (entities.EmailCategory, error)
}
