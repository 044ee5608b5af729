package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/evalix/ai-readiness/internal/domain/evaluation"
	"github.com/evalix/ai-readiness/internal/infra/ai/prompt"
)

const (
	maxTokens   = 256
	maxAttempts = 3
	baseBackoff = 500 * time.Millisecond
)

// Client generates evaluation texts via the OpenAI chat API. Transient
// provider errors (429/5xx) are retried with doubling backoff before the
// caller falls back to the canned table.
type Client struct {
	*openai.Client
	Model string
}

func NewClient(apiKey, model string) *Client {
	return &Client{Client: openai.NewClient(apiKey), Model: model}
}

func (c *Client) Generate(ctx context.Context, category string, average float64) (string, error) {
	model := c.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	req := openai.ChatCompletionRequest{
		Model:     model,
		MaxTokens: maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.GetSystemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: prompt.GetUserPrompt(category, average)},
		},
	}

	backoff := baseBackoff
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		resp, err := c.CreateChatCompletion(ctx, req)
		if err != nil {
			lastErr = err
			if transient(err) {
				continue
			}
			return "", fmt.Errorf("chat completion: %w", err)
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("chat completion returned no choices")
			continue
		}
		return strings.TrimSpace(resp.Choices[0].Message.Content), nil
	}
	return "", fmt.Errorf("%w: %v", evaluation.ErrUnavailable, lastErr)
}

// transient reports whether the provider error is worth another attempt.
func transient(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == 429 || apiErr.HTTPStatusCode >= 500
	}
	// network-level failures have no status; retry those too
	var reqErr *openai.RequestError
	return errors.As(err, &reqErr)
}
