// Package ai proxies chat requests to an external text-generation
// provider, walking an ordered list of candidate models until one
// answers.
package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"socialsync/internal/middleware"
	"socialsync/internal/models"

	openai "github.com/sashabaranov/go-openai"
)

// maxHistoryTurns caps how much prior conversation is forwarded upstream.
const maxHistoryTurns = 10

// defaultFallbackModels are tried, in order, after the configured
// primary model reports not-found.
var defaultFallbackModels = []string{
	"gpt-4o-mini",
	"gpt-4o",
	"gpt-4.1-mini",
	"gpt-3.5-turbo",
}

// Client is the subset of the OpenAI client the proxy uses.
type Client interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
	ListModels(ctx context.Context) (openai.ModelsList, error)
}

// Turn is one prior exchange of the conversation.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Reply is a successful completion and the model that produced it.
type Reply struct {
	Model   string `json:"model"`
	Content string `json:"content"`
}

// attemptOutcome classifies a single model attempt.
type attemptOutcome int

const (
	outcomeOK attemptOutcome = iota
	// outcomeTryNext: the model does not exist for this account; the next
	// candidate may.
	outcomeTryNext
	// outcomeFatal: quota exhaustion or any other provider error; further
	// candidates would fail the same way, so surface immediately.
	outcomeFatal
)

// Proxy forwards chat messages to the provider with model fallback.
type Proxy struct {
	client    Client
	primary   string
	maxTokens int
}

// New returns a Proxy using the given API key and primary model.
func New(apiKey, primaryModel string, maxTokens int) *Proxy {
	return &Proxy{
		client:    openai.NewClient(apiKey),
		primary:   primaryModel,
		maxTokens: maxTokens,
	}
}

// NewWithClient returns a Proxy with an injected client, used in tests.
func NewWithClient(client Client, primaryModel string, maxTokens int) *Proxy {
	return &Proxy{client: client, primary: primaryModel, maxTokens: maxTokens}
}

// Chat forwards the message plus trimmed history, trying the primary
// model, then the fixed fallback list, then any chat model discovered
// via the provider's model listing. It stops at the first success or
// the first fatal outcome.
func (p *Proxy) Chat(ctx context.Context, message string, history []Turn) (*Reply, error) {
	candidates := p.candidateModels()

	var lastErr error
	tried := make(map[string]bool)
	for _, model := range candidates {
		if model == "" || tried[model] {
			continue
		}
		tried[model] = true

		reply, outcome, err := p.attempt(ctx, model, message, history)
		switch outcome {
		case outcomeOK:
			return reply, nil
		case outcomeTryNext:
			middleware.Logger.Info("model unavailable, trying next candidate",
				slog.String("model", model))
			lastErr = err
		case outcomeFatal:
			middleware.UpstreamFailures.WithLabelValues("openai").Inc()
			return nil, err
		}
	}

	// Every explicit candidate was unknown; ask the provider what it has.
	discovered, derr := p.discoverModels(ctx)
	if derr == nil {
		for _, model := range discovered {
			if tried[model] {
				continue
			}
			tried[model] = true
			reply, outcome, err := p.attempt(ctx, model, message, history)
			switch outcome {
			case outcomeOK:
				return reply, nil
			case outcomeTryNext:
				lastErr = err
			case outcomeFatal:
				middleware.UpstreamFailures.WithLabelValues("openai").Inc()
				return nil, err
			}
		}
	}

	middleware.UpstreamFailures.WithLabelValues("openai").Inc()
	if lastErr == nil {
		lastErr = fmt.Errorf("no usable model found")
	}
	return nil, models.NewUpstreamError("OpenAI", lastErr)
}

func (p *Proxy) candidateModels() []string {
	candidates := make([]string, 0, 1+len(defaultFallbackModels))
	candidates = append(candidates, p.primary)
	candidates = append(candidates, defaultFallbackModels...)
	return candidates
}

func (p *Proxy) attempt(ctx context.Context, model, message string, history []Turn) (*Reply, attemptOutcome, error) {
	msgs := make([]openai.ChatCompletionMessage, 0, maxHistoryTurns+1)
	start := 0
	if len(history) > maxHistoryTurns {
		start = len(history) - maxHistoryTurns
	}
	for _, turn := range history[start:] {
		role := turn.Role
		if role != openai.ChatMessageRoleAssistant {
			role = openai.ChatMessageRoleUser
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: turn.Content})
	}
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     model,
		Messages:  msgs,
		MaxTokens: p.maxTokens,
	})
	if err != nil {
		return nil, classifyError(err), wrapProviderError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, outcomeFatal, models.NewUpstreamError("OpenAI", fmt.Errorf("empty completion from model %s", model))
	}

	return &Reply{Model: model, Content: resp.Choices[0].Message.Content}, outcomeOK, nil
}

// classifyError maps a provider error to the per-attempt outcome:
// unknown model means try the next candidate, everything else stops the
// walk.
func classifyError(err error) attemptOutcome {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == 404 {
			return outcomeTryNext
		}
		if code, ok := apiErr.Code.(string); ok && code == "model_not_found" {
			return outcomeTryNext
		}
	}
	return outcomeFatal
}

func wrapProviderError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == 429 {
			return models.NewRateLimitedError("OpenAI", 30, err)
		}
		if code, ok := apiErr.Code.(string); ok && code == "insufficient_quota" {
			return models.NewRateLimitedError("OpenAI", 30, err)
		}
	}
	return models.NewUpstreamError("OpenAI", err)
}

// discoverModels lists the provider's models and keeps the chat-capable
// ones, so a stale fallback list still finds something usable.
func (p *Proxy) discoverModels(ctx context.Context) ([]string, error) {
	list, err := p.client.ListModels(ctx)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, m := range list.Models {
		if strings.HasPrefix(m.ID, "gpt-") && !strings.Contains(m.ID, "instruct") {
			ids = append(ids, m.ID)
		}
	}
	return ids, nil
}
