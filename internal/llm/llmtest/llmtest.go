// Package llmtest provides a scripted llms.Model for tests.
package llmtest

import (
	"context"
	"errors"
	"sync"

	"github.com/tmc/langchaingo/llms"
)

// Call is one recorded GenerateContent invocation.
type Call struct {
	Messages []llms.MessageContent
	Options  llms.CallOptions
}

// Text returns the concatenated text parts sent with role.
func (c Call) Text(role llms.ChatMessageType) string {
	var out string
	for _, m := range c.Messages {
		if m.Role != role {
			continue
		}
		for _, p := range m.Parts {
			if t, ok := p.(llms.TextContent); ok {
				out += t.Text
			}
		}
	}
	return out
}

var _ llms.Model = (*FakeModel)(nil)

// FakeModel answers with the queued responses in order and repeats the last
// one once the queue is drained.
type FakeModel struct {
	mu        sync.Mutex
	responses []*llms.ContentResponse
	err       error
	calls     []Call
}

func NewFakeModel(responses ...*llms.ContentResponse) *FakeModel {
	return &FakeModel{responses: responses}
}

// Failing returns a model whose every call fails with err.
func Failing(err error) *FakeModel {
	return &FakeModel{err: err}
}

func (f *FakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	var opts llms.CallOptions
	for _, o := range options {
		o(&opts)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Messages: messages, Options: opts})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	if len(f.responses) == 0 {
		return nil, errors.New("llmtest: no scripted response")
	}
	resp := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return resp, nil
}

func (f *FakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

// Script replaces the pending responses.
func (f *FakeModel) Script(responses ...*llms.ContentResponse) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = responses
}

func (f *FakeModel) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *FakeModel) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// ToolCall builds a response that answers through a function call.
func ToolCall(name, arguments string) *llms.ContentResponse {
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{
			ToolCalls: []llms.ToolCall{{
				ID:   "call-1",
				Type: "function",
				FunctionCall: &llms.FunctionCall{
					Name:      name,
					Arguments: arguments,
				},
			}},
		}},
	}
}

// Text builds a plain text response.
func Text(content string) *llms.ContentResponse {
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: content}},
	}
}
