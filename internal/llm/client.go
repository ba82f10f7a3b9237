// Package llm wraps the language model used for structured extraction and
// free-form JSON generation.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/frahmantamala/talent-intake/internal"
)

var ErrEmptyResponse = errors.New("model returned no choices")

// Schema describes the object the model is asked to fill. It is offered to
// the model as a single function tool.
type Schema struct {
	Name        string
	Description string
	Parameters  map[string]any
}

type Client struct {
	model   llms.Model
	name    string
	timeout time.Duration
	logger  *slog.Logger
}

// New builds a client for the configured provider.
func New(ctx context.Context, cfg internal.LLMConfig, logger *slog.Logger) (*Client, error) {
	var (
		model llms.Model
		err   error
	)
	switch cfg.Provider {
	case "", "googleai":
		model, err = googleai.New(ctx,
			googleai.WithAPIKey(cfg.APIKey),
			googleai.WithDefaultModel(cfg.Model),
		)
	case "openai":
		model, err = openai.New(
			openai.WithToken(cfg.APIKey),
			openai.WithModel(cfg.Model),
		)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s client: %w", cfg.Provider, err)
	}

	c := NewClient(model, cfg.Timeout, logger)
	c.name = cfg.Provider + "/" + cfg.Model
	return c, nil
}

func NewClient(model llms.Model, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		model:   model,
		name:    "custom",
		timeout: timeout,
		logger:  logger,
	}
}

// Extract sends text with instruction as system prompt and asks the model
// to answer through the schema tool.
func (c *Client) Extract(ctx context.Context, instruction, text string, schema Schema) (Reply, error) {
	tool := llms.Tool{
		Type: "function",
		Function: &llms.FunctionDefinition{
			Name:        schema.Name,
			Description: schema.Description,
			Parameters:  schema.Parameters,
		},
	}
	return c.generate(ctx, "extract", instruction, text, llms.WithTools([]llms.Tool{tool}))
}

// Generate asks for a JSON answer to prompt.
func (c *Client) Generate(ctx context.Context, instruction, prompt string) (Reply, error) {
	return c.generate(ctx, "generate", instruction, prompt, llms.WithJSONMode())
}

func (c *Client) generate(ctx context.Context, op, instruction, content string, opts ...llms.CallOption) (Reply, error) {
	ctx, cancel := internal.WithTimeout(ctx, c.timeout)
	defer cancel()

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, instruction),
		llms.TextParts(llms.ChatMessageTypeHuman, content),
	}

	started := time.Now()
	resp, err := c.model.GenerateContent(ctx, messages, opts...)
	elapsed := time.Since(started)
	if err != nil {
		c.logger.ErrorContext(ctx, "llm call failed", "op", op, "model", c.name, "elapsed", elapsed, "error", err)
		return Reply{}, fmt.Errorf("%s: %w", op, err)
	}

	reply, err := replyFrom(resp)
	if err != nil {
		c.logger.ErrorContext(ctx, "llm returned nothing", "op", op, "model", c.name, "elapsed", elapsed)
		return Reply{}, fmt.Errorf("%s: %w", op, err)
	}

	c.logger.InfoContext(ctx, "llm call finished",
		"op", op,
		"model", c.name,
		"elapsed", elapsed,
		"reply_kind", reply.Kind.String(),
		"reply_bytes", len(reply.Payload),
	)
	return reply, nil
}

func replyFrom(resp *llms.ContentResponse) (Reply, error) {
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return Reply{}, ErrEmptyResponse
	}
	choice := resp.Choices[0]

	for _, call := range choice.ToolCalls {
		if call.FunctionCall != nil {
			return Reply{Kind: ReplyStructured, Payload: call.FunctionCall.Arguments}, nil
		}
	}
	if choice.FuncCall != nil {
		return Reply{Kind: ReplyStructured, Payload: choice.FuncCall.Arguments}, nil
	}
	return Reply{Kind: ReplyRawText, Payload: choice.Content}, nil
}
