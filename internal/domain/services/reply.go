package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ersonp/onebox-embed/internal/domain/entities"
	"github.com/ersonp/onebox-embed/internal/domain/ports"
)

// DefaultReplyContextLimit is how many knowledge entries inform a reply.
const DefaultReplyContextLimit = 1

// Draft is a generated reply together with the knowledge it was based on.
type Draft struct {
	Reply   string
	Context []entities.KnowledgeEntry
}

// ReplyService drafts and categorizes emails with a chat model, using the
// knowledge base as retrieval context.
type ReplyService struct {
	knowledge *KnowledgeService
	llm       ports.LLMClient
}

// NewReplyService creates a new reply service.
func NewReplyService(knowledge *KnowledgeService, llm ports.LLMClient) *ReplyService {
	return &ReplyService{
		knowledge: knowledge,
		llm:       llm,
	}
}

// Draft searches the knowledge base for the entries closest to email and
// asks the chat model for a reply informed by them.
func (s *ReplyService) Draft(ctx context.Context, email string, contextLimit int) (*Draft, error) {
	if strings.TrimSpace(email) == "" {
		return nil, fmt.Errorf("%w: email text is empty", entities.ErrInvalidInput)
	}
	if contextLimit <= 0 {
		contextLimit = DefaultReplyContextLimit
	}

	entries, err := s.knowledge.Search(ctx, email, contextLimit)
	if err != nil {
		return nil, fmt.Errorf("retrieving reply context: %w", err)
	}

	texts := make([]string, len(entries))
	for i, e := range entries {
		texts[i] = e.Text
	}

	reply, err := s.llm.GenerateReply(ctx, email, texts)
	if err != nil {
		return nil, err
	}

	return &Draft{Reply: reply, Context: entries}, nil
}

// Categorize labels email with one of entities.EmailCategories.
func (s *ReplyService) Categorize(ctx context.Context, email string) (entities.EmailCategory, error) {
	if strings.TrimSpace(email) == "" {
		return "", fmt.Errorf("%w: email text is empty", entities.ErrInvalidInput)
	}
	return s.llm.Categorize(ctx, email)
}
