package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/onebox-embed/internal/domain/entities"
	"github.com/ersonp/onebox-embed/internal/domain/services"
)

// ReplyHandler handles the email reply and categorize commands.
type ReplyHandler struct {
	replyService *services.ReplyService
}

// NewReplyHandler creates a new reply handler.
func NewReplyHandler(replyService *services.ReplyService) *ReplyHandler {
	return &ReplyHandler{
		replyService: replyService,
	}
}

// ReplyResult contains a drafted reply and the knowledge search behind it.
type ReplyResult struct {
	Reply   string
	Context *SearchResult
}

// HandleReply drafts a reply to email using up to contextLimit knowledge
// entries.
func (h *ReplyHandler) HandleReply(ctx context.Context, email string, contextLimit int) (*ReplyResult, error) {
	draft, err := h.replyService.Draft(ctx, email, contextLimit)
	if err != nil {
		return nil, fmt.Errorf("drafting reply: %w", err)
	}

	return &ReplyResult{
		Reply: draft.Reply,
		Context: &SearchResult{
			Query:   email,
			Entries: draft.Context,
		},
	}, nil
}

// HandleCategorize labels email with one of the known categories.
func (h *ReplyHandler) HandleCategorize(ctx context.Context, email string) (entities.EmailCategory, error) {
	category, err := h.replyService.Categorize(ctx, email)
	if err != nil {
		return "", fmt.Errorf("categorizing email: %w", err)
	}
	return category, nil
}
