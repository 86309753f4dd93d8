package mocks

import (
	"context"

	"github.com/ersonp/onebox-embed/internal/domain/entities"
)

// LLM is a mock implementation of ports.LLMClient.
type LLM struct {
	Reply    string
	Category entities.EmailCategory
	Err      error

	ReplyCallCount      int
	CategorizeCallCount int
	LastEmail           string
	LastKnowledge       []string
}

// GenerateReply records the call and returns the configured reply.
func (m *LLM) GenerateReply(ctx context.Context, email string, knowledge []string) (string, error) {
	m.ReplyCallCount++
	m.LastEmail = email
	m.LastKnowledge = knowledge
	if m.Err != nil {
		return "", m.Err
	}
	return m.Reply, nil
}

// Categorize records the call and returns the configured category.
func (m *LLM) Categorize(ctx context.Context, email string) (entities.EmailCategory, error) {
	m.CategorizeCallCount++
	m.LastEmail = email
	if m.Err != nil {
		return "", m.Err
	}
	return m.Category, nil
}
