// Package openai probes the AI completion API with a minimal chat
// request and verifies that generated text comes back.
package openai

import (
	"context"
	"net/http"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/jhouston2019/auditresponse.ai/internal/core/check"
)

type Probe struct {
	NameValue string
	APIKey    string
	Model     string
	Timeout   time.Duration
	// BaseURL overrides the API endpoint, used by tests.
	BaseURL string
}

func (p *Probe) Name() string {
	return p.NameValue
}

func (p *Probe) Probe(ctx context.Context) check.Result {
	if strings.TrimSpace(p.APIKey) == "" {
		return check.Fail(p.NameValue, check.KindConfigMissing, "OPENAI_API_KEY not set")
	}

	cfg := goopenai.DefaultConfig(p.APIKey)
	if p.BaseURL != "" {
		cfg.BaseURL = p.BaseURL
	}
	if p.Timeout > 0 {
		cfg.HTTPClient = &http.Client{Timeout: p.Timeout}
	}
	client := goopenai.NewClientWithConfig(cfg)

	resp, err := client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:     p.Model,
		MaxTokens: 5,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleUser, Content: "ping"},
		},
	})
	if err != nil {
		return check.Fail(p.NameValue, check.KindNetworkError, err.Error())
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return check.Fail(p.NameValue, check.KindBadResponse, "empty response")
	}
	return check.Pass(p.NameValue, "model "+p.Model+" responded")
}
