// Package openai provides an LLMClient over OpenAI-compatible chat
// completion endpoints (Groq by default, OpenAI, Ollama).
package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/ersonp/onebox-embed/internal/domain/entities"
	"github.com/ersonp/onebox-embed/internal/infrastructure/config"
	"github.com/ersonp/onebox-embed/internal/infrastructure/openaicompat"
)

const replyPrompt = `You are an expert email assistant. Your task is to draft a helpful and concise reply to an incoming email.
Use the following context to inform your reply.
---
CONTEXT:
%s
---
Now, draft a reply for the following email. Be professional and friendly. Do not mention that you used context to generate the reply. Just provide the reply itself.`

const categorizePrompt = `You are an email categorization assistant. Categorize the following email into one of these categories: %s. Only respond with the category name.`

// noKnowledge stands in for the context when the knowledge base has no match.
const noKnowledge = "No specific instructions found."

// Client implements the LLMClient interface over the chat completions API.
type Client struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewClient creates a new chat client. Like the embedder it does no
// network I/O until the first request.
func NewClient(cfg config.LLMConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: LLM API key is required (set llm.api_key or %s)", entities.ErrProviderUnavailable, config.LLMAPIKeyEnv)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultLLMBaseURL
	}
	clientCfg, err := openaicompat.ClientConfig(cfg.APIKey, baseURL)
	if err != nil {
		return nil, err
	}

	model := config.DefaultLLMModel
	if cfg.Model != "" {
		model = cfg.Model
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}

	return &Client{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   model,
		timeout: timeout,
	}, nil
}

// Model returns the chat model name.
func (c *Client) Model() string {
	return c.model
}

// GenerateReply drafts a reply to email using the knowledge texts as context.
func (c *Client) GenerateReply(ctx context.Context, email string, knowledge []string) (string, error) {
	retrieved := strings.Join(knowledge, "\n")
	if strings.TrimSpace(retrieved) == "" {
		retrieved = noKnowledge
	}

	reply, err := c.complete(ctx, fmt.Sprintf(replyPrompt, retrieved), email, 0.7)
	if err != nil {
		return "", fmt.Errorf("generating reply: %w", err)
	}
	if reply == "" {
		return "", fmt.Errorf("generating reply: %w: empty reply", entities.ErrProviderInference)
	}
	return reply, nil
}

// Categorize labels email with one of the known categories. Answers outside
// the list become CategoryNone.
func (c *Client) Categorize(ctx context.Context, email string) (entities.EmailCategory, error) {
	names := make([]string, len(entities.EmailCategories))
	for i, cat := range entities.EmailCategories {
		names[i] = string(cat)
	}

	answer, err := c.complete(ctx, fmt.Sprintf(categorizePrompt, strings.Join(names, ", ")), email, 0.1)
	if err != nil {
		return "", fmt.Errorf("categorizing email: %w", err)
	}
	return entities.ParseEmailCategory(answer), nil
}

// complete sends one system and one user message and returns the cleaned
// content of the first choice.
func (c *Client) complete(ctx context.Context, system, user string, temperature float32) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: system,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: user,
			},
		},
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("calling chat model: %w", openaicompat.ClassifyError(err))
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no response from chat model", entities.ErrProviderInference)
	}

	return cleanResponse(resp.Choices[0].Message.Content), nil
}

// cleanResponse removes a markdown code fence wrapping the whole answer.
func cleanResponse(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") && strings.HasSuffix(content, "```") && len(content) >= 6 {
		content = strings.TrimSuffix(strings.TrimPrefix(content, "```"), "```")
		if i := strings.IndexByte(content, '\n'); i >= 0 && !strings.ContainsAny(content[:i], " \t") {
			// Drop a language tag such as ```text.
			content = content[i+1:]
		}
	}

	return strings.TrimSpace(content)
}
