// Package assistant produces conversational replies for the chatbot surface.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dan9191/finance-assistant/internal/config"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/sirupsen/logrus"
)

const (
	maxReplyTokens = 1024

	systemPrompt = "You are a personal finance assistant. Answer the user's question in plain language. " +
		"Ground every figure you mention in the financial context provided; never invent numbers. " +
		"Keep answers short and actionable."
)

// ErrNotConfigured is returned when no model credentials are available.
var ErrNotConfigured = errors.New("assistant is not configured")

// Assistant answers a user message given a rendered financial context.
type Assistant interface {
	Reply(ctx context.Context, message, financialContext string) (string, error)
}

// Claude is an Assistant backed by the Anthropic Messages API.
type Claude struct {
	client anthropic.Client
	model  string
	log    *logrus.Entry
}

// New returns a Claude assistant, or ErrNotConfigured when the API key is empty.
func New(cfg *config.Config, log *logrus.Logger) (*Claude, error) {
	if cfg.AnthropicAPIKey == "" {
		return nil, ErrNotConfigured
	}
	return &Claude{
		client: anthropic.NewClient(option.WithAPIKey(cfg.AnthropicAPIKey)),
		model:  cfg.AnthropicModel,
		log:    log.WithField("component", "assistant"),
	}, nil
}

// Reply sends the message along with the financial context and returns the model's text.
func (c *Claude) Reply(ctx context.Context, message, financialContext string) (string, error) {
	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: maxReplyTokens,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
			{Text: "Financial context:\n" + financialContext},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(message)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("assistant request failed: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	c.log.WithField("output_tokens", msg.Usage.OutputTokens).Debug("Assistant replied")
	return sb.String(), nil
}

// Offline is the fallback used when no model is configured: it echoes the computed context.
type Offline struct{}

func (Offline) Reply(_ context.Context, _ string, financialContext string) (string, error) {
	return "Here is what I can tell from your data:\n" + financialContext, nil
}
