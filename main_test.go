package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/achimstruve/chatGPTWebsearchserver/backend"
	"github.com/achimstruve/chatGPTWebsearchserver/config"
	"github.com/achimstruve/chatGPTWebsearchserver/handler"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range []string{
		"OPENAI_API_KEY", "RUN_API", "OPENAI_MODEL", "OPENAI_BASE_URL",
		"LISTEN_ADDRESS", "UPSTREAM_TIMEOUT", "LOG_LEVEL",
	} {
		t.Setenv(env, "")
	}
}

func TestRun_DisabledDoesNotServe(t *testing.T) {
	for _, value := range []string{"", "false", "no", "1"} {
		clearEnv(t)
		t.Setenv("RUN_API", value)
		// An address that cannot be bound proves nothing tries to listen.
		t.Setenv("LISTEN_ADDRESS", "127.0.0.1:-1")

		assert.NoError(t, run(nil), "RUN_API=%q", value)
	}
}

func TestRun_FlagsAndConfigErrors(t *testing.T) {
	clearEnv(t)
	assert.NoError(t, run([]string{"--version"}))
	assert.NoError(t, run([]string{"--help"}))
	assert.Error(t, run([]string{"--nope"}))

	t.Setenv("UPSTREAM_TIMEOUT", "soon")
	assert.Error(t, run(nil))

	clearEnv(t)
	t.Setenv("LOG_LEVEL", "loud")
	assert.ErrorContains(t, run(nil), "invalid log_level")
}

func TestServe_StopsOnCancel(t *testing.T) {
	cfg := &config.Config{
		RunAPI:          "true",
		Model:           config.DefaultModel,
		APIRoot:         "http://127.0.0.1:1",
		ListenAddress:   "127.0.0.1:0",
		UpstreamTimeout: time.Second,
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, cfg) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}

func TestServe_ListenFailure(t *testing.T) {
	cfg := &config.Config{
		Model:         config.DefaultModel,
		APIRoot:       "http://127.0.0.1:1",
		ListenAddress: "127.0.0.1:-1",
	}
	assert.ErrorContains(t, serve(context.Background(), cfg), "server failed")
}

// TestRelayEndToEnd wires the real handler to the real backend against a fake
// completion API.
func TestRelayEndToEnd(t *testing.T) {
	gin.SetMode(gin.TestMode)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Header.Get("Authorization") != "Bearer sk-good" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"c","object":"chat.completion","created":1,"model":"m",` +
			`"choices":[{"index":0,"message":{"role":"assistant","content":"4"},"finish_reason":"stop"}]}`))
	}))
	defer upstream.Close()

	ask := func(apiKey string) (int, map[string]string) {
		client := backend.NewBackendClient(backend.Options{
			APIKey:  apiKey,
			BaseURL: upstream.URL,
			Model:   config.DefaultModel,
			Timeout: 2 * time.Second,
		})
		relay := httptest.NewServer(handler.NewHTTPHandler(client))
		defer relay.Close()

		resp, err := http.Post(relay.URL+handler.EndPointAsk, "application/json", strings.NewReader(`{"prompt":"2+2"}`))
		require.NoError(t, err)
		defer resp.Body.Close()

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		return resp.StatusCode, body
	}

	code, body := ask("sk-good")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]string{"response": "4"}, body)

	code, body = ask("sk-bad")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, strings.HasPrefix(body["response"], "Error: "), body["response"])
	assert.Contains(t, body["response"], "401")
}
