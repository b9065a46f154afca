package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func completionHandler(t *testing.T, content string, capture *chatRequest) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		if capture != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(capture))
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": content}},
			},
			"usage": map[string]int{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}
}

func TestGenerate(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(completionHandler(t, "NEW: hello", &got))
	defer srv.Close()

	c := New(Config{Endpoint: srv.URL, Model: "test-model"})
	out, err := c.Generate(context.Background(), "be brief", "say hello")
	require.NoError(t, err)
	require.Equal(t, "NEW: hello", out)

	require.Equal(t, "test-model", got.Model)
	require.Len(t, got.Messages, 2)
	require.Equal(t, "system", got.Messages[0].Role)
	require.Equal(t, "be brief", got.Messages[0].Content)
	require.Equal(t, "user", got.Messages[1].Role)
	require.Equal(t, "say hello", got.Messages[1].Content)
	require.Equal(t, defaultMaxTokens, got.MaxTokens)
	require.InDelta(t, defaultTemperature, got.Temperature, 0.001)
}

func TestGenerateHonorsZeroTemperature(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(completionHandler(t, "ok", &got))
	defer srv.Close()

	zero := float32(0)
	c := New(Config{Endpoint: srv.URL, Temperature: &zero})
	_, err := c.Generate(context.Background(), "s", "u")
	require.NoError(t, err)
	require.Zero(t, got.Temperature)
}

func TestGenerateSendsBearerToken(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		completionHandler(t, "ok", nil)(w, r)
	}))
	defer srv.Close()

	c := New(Config{Endpoint: srv.URL, APIKey: "sk-test"})
	_, err := c.Generate(context.Background(), "s", "u")
	require.NoError(t, err)
	require.Equal(t, "Bearer sk-test", auth)
}

func TestGenerateOmitsAuthWithoutKey(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		completionHandler(t, "ok", nil)(w, r)
	}))
	defer srv.Close()

	c := New(Config{Endpoint: srv.URL})
	_, err := c.Generate(context.Background(), "s", "u")
	require.NoError(t, err)
	require.Empty(t, auth)
}

func TestGenerateTrimsTrailingSlash(t *testing.T) {
	srv := httptest.NewServer(completionHandler(t, "ok", nil))
	defer srv.Close()

	c := New(Config{Endpoint: srv.URL + "/"})
	out, err := c.Generate(context.Background(), "s", "u")
	require.NoError(t, err)
	require.Equal(t, "ok", out)
}

func TestGenerateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(Config{Endpoint: srv.URL})
	_, err := c.Generate(context.Background(), "s", "u")
	require.Error(t, err)
	require.Contains(t, err.Error(), "503")
	require.Contains(t, err.Error(), "model overloaded")
}

func TestGenerateEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := New(Config{Endpoint: srv.URL})
	_, err := c.Generate(context.Background(), "s", "u")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no choices")
}

func TestGenerateContextCancelled(t *testing.T) {
	srv := httptest.NewServer(completionHandler(t, "ok", nil))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(Config{Endpoint: srv.URL})
	_, err := c.Generate(ctx, "s", "u")
	require.Error(t, err)
}
