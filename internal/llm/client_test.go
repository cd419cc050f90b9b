package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(endpoint string) Config {
	cfg := DefaultConfig()
	cfg.Endpoint = endpoint
	cfg.MaxRetries = 1
	return cfg
}

func TestOllamaGenerateRoundTrip(t *testing.T) {
	var gotReq ollamaRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(ollamaResponse{
			Model:    gotReq.Model,
			Response: `{"Monday": {"type": "Strength"}}`,
		})
	}))
	defer server.Close()

	client := NewOllamaClient(testConfig(server.URL), nil)
	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:         TaskMicroPlan,
		SystemPrompt: "you are a coach",
		UserPrompt:   "plan my week",
	})
	require.NoError(t, err)

	assert.Contains(t, resp.Text, "Strength")
	assert.False(t, gotReq.Stream)
	assert.Equal(t, "you are a coach", gotReq.System)
	assert.Equal(t, "plan my week", gotReq.Prompt)
	assert.InDelta(t, 0.2, gotReq.Options.Temperature, 1e-9, "micro plan task default")
}

func TestOllamaGenerateRetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "model loading", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(ollamaResponse{Model: "llama3.2", Response: "ok"})
	}))
	defer server.Close()

	client := NewOllamaClient(testConfig(server.URL), nil)
	resp, err := client.Generate(context.Background(), GenerateRequest{Task: TaskProfile, UserPrompt: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
	assert.Equal(t, int32(2), calls.Load())
}

func TestOllamaGenerateRetryExhausted(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.MaxRetries = 2
	client := NewOllamaClient(cfg, nil)

	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskProfile, UserPrompt: "hi"})
	require.ErrorIs(t, err, ErrRetryExhausted)
	assert.Equal(t, int32(3), calls.Load(), "one attempt plus two retries")
}

func TestOllamaGenerateConnectionRefused(t *testing.T) {
	// Reserve a port and close it so nothing is listening.
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	endpoint := server.URL
	server.Close()

	client := NewOllamaClient(testConfig(endpoint), nil)
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskProfile, UserPrompt: "hi"})
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestOllamaGenerateTimeout(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer func() {
		close(block)
		server.Close()
	}()

	cfg := testConfig(server.URL)
	cfg.Tasks[TaskProfile] = TaskConfig{TimeoutMs: 50}
	client := NewOllamaClient(cfg, nil)

	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskProfile, UserPrompt: "hi"})
	require.ErrorIs(t, err, ErrTimeout)
}

func TestOllamaGenerateRequestOverrides(t *testing.T) {
	var gotReq ollamaRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(ollamaResponse{Response: "ok"})
	}))
	defer server.Close()

	temp := 0.9
	maxTok := 64
	client := NewOllamaClient(testConfig(server.URL), nil)
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:        TaskMacroPlan,
		UserPrompt:  "hi",
		Temperature: &temp,
		MaxTokens:   &maxTok,
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.9, gotReq.Options.Temperature, 1e-9)
	assert.Equal(t, 64, gotReq.Options.NumPredict)
}

func TestOllamaAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tags", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewOllamaClient(testConfig(server.URL), nil)
	assert.True(t, client.Available(context.Background()))

	down := NewOllamaClient(testConfig("http://127.0.0.1:1"), nil)
	assert.False(t, down.Available(context.Background()))
}

func TestOllamaObserverReceivesEvents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollamaResponse{Model: "llama3.2", Response: "ok"})
	}))
	defer server.Close()

	var buf strings.Builder
	client := NewOllamaClient(testConfig(server.URL), NewLogObserver(&buf))
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskFeedback, UserPrompt: "hi"})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "task=feedback")
	assert.Contains(t, buf.String(), "status=ok")
}

func TestOpenAIGenerateRoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "user", req.Messages[1].Role)

		json.NewEncoder(w).Encode(chatResponse{
			Model: req.Model,
			Choices: []chatChoice{
				{Message: chatMessage{Role: "assistant", Content: "twelve week plan"}},
			},
		})
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.Provider = ProviderOpenAI
	cfg.APIKey = "secret"
	client := NewClient(cfg, nil)

	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:         TaskMacroPlan,
		SystemPrompt: "coach",
		UserPrompt:   "plan",
	})
	require.NoError(t, err)
	assert.Equal(t, "twelve week plan", resp.Text)
}

func TestNewClientDispatch(t *testing.T) {
	cfg := DefaultConfig()
	_, ok := NewClient(cfg, nil).(*ollamaClient)
	assert.True(t, ok)

	cfg.Provider = ProviderOpenAI
	_, ok = NewClient(cfg, nil).(*openaiClient)
	assert.True(t, ok)
}
