// Package llmtest provides a scripted completion client for tests.
package llmtest

import (
	"context"
	"sync"

	"github.com/alexanderramin/stride/internal/llm"
)

// Response is one scripted reply: either Text or Err is returned.
type Response struct {
	Text string
	Err  error
}

// StubClient replays scripted responses in order. When the script is
// exhausted it repeats the last entry, so a single-entry script acts as a
// constant responder. The zero value returns empty text forever.
type StubClient struct {
	mu     sync.Mutex
	Script []Response
	next   int

	// Calls records every request received, in order.
	Calls []llm.GenerateRequest
}

// RespondWith creates a StubClient that always returns the given text.
func RespondWith(text string) *StubClient {
	return &StubClient{Script: []Response{{Text: text}}}
}

// FailWith creates a StubClient that always returns the given error.
func FailWith(err error) *StubClient {
	return &StubClient{Script: []Response{{Err: err}}}
}

func (c *StubClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Calls = append(c.Calls, req)

	if len(c.Script) == 0 {
		return &llm.GenerateResponse{Text: "", Model: "stub"}, nil
	}

	idx := c.next
	if idx >= len(c.Script) {
		idx = len(c.Script) - 1
	}
	c.next++

	r := c.Script[idx]
	if r.Err != nil {
		return nil, r.Err
	}
	return &llm.GenerateResponse{Text: r.Text, Model: "stub"}, nil
}

func (c *StubClient) Available(context.Context) bool { return true }

// CallCount returns the number of Generate calls received.
func (c *StubClient) CallCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.Calls)
}
