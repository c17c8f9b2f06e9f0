package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) ChatConfig {
	return ChatConfig{
		BaseURL:     baseURL,
		APIKey:      "test-key",
		Model:       "test-model",
		MaxTokens:   1000,
		Temperature: 0.7,
	}
}

func TestCompleteSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"hello from the model"}}]}`))
	}))
	defer server.Close()

	client := NewClient(5 * time.Second)
	answer, err := client.Complete(context.Background(), testConfig(server.URL), []ChatMessage{
		{Role: "user", Content: "say hello"},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello from the model", answer)
}

func TestCompleteRateLimitedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"resource exhausted"}`))
	}))
	defer server.Close()

	client := NewClient(5 * time.Second)
	_, err := client.Complete(context.Background(), testConfig(server.URL), nil)
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestCompleteQuotaBodyClassifiedAsRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"daily quota exceeded"}`))
	}))
	defer server.Close()

	client := NewClient(5 * time.Second)
	_, err := client.Complete(context.Background(), testConfig(server.URL), nil)
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestCompleteTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(5 * time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Complete(ctx, testConfig(server.URL), nil)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestCompleteEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewClient(5 * time.Second)
	_, err := client.Complete(context.Background(), testConfig(server.URL), nil)
	assert.Error(t, err)
}
