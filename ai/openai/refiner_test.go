package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/poiesic/granttag/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chatServer answers every chat completion request with content.
func chatServer(t *testing.T, status int, content string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"), r.URL.Path)

		var req map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1,
			"model":   "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func testConfig(host string) *ai.Config {
	return ai.NewConfig(
		ai.WithEnabled(true),
		ai.WithHost(host),
		ai.WithAPIKey("sk-test"),
	)
}

var available = []string{"agriculture", "education", "water", "youth"}

func TestNewRefiner(t *testing.T) {
	t.Run("requires tags", func(t *testing.T) {
		_, err := NewRefiner(testConfig("http://localhost:1"), nil)
		assert.ErrorIs(t, err, ErrNoAvailableTags)
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := testConfig("http://localhost:1")
		cfg.Model = ""
		_, err := NewRefiner(cfg, available)
		assert.Error(t, err)
	})
}

func TestRefiner_Refine(t *testing.T) {
	ctx := context.Background()

	t.Run("filters out of vocabulary tags", func(t *testing.T) {
		srv, calls := chatServer(t, http.StatusOK, "Water, agriculture, fake-tag, water, another-invalid")

		r, err := NewRefiner(testConfig(srv.URL), available)
		require.NoError(t, err)

		tags, err := r.Refine(ctx, "Irrigation Grant", "Water for farms", []string{"agriculture"})
		require.NoError(t, err)
		assert.Equal(t, []string{"water", "agriculture"}, tags)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("no usable tags", func(t *testing.T) {
		srv, _ := chatServer(t, http.StatusOK, "fake-tag, nonsense")

		r, err := NewRefiner(testConfig(srv.URL), available)
		require.NoError(t, err)

		_, err = r.Refine(ctx, "n", "d", []string{"agriculture"})
		assert.ErrorIs(t, err, ai.ErrEmptyResponse)
	})

	t.Run("server error", func(t *testing.T) {
		srv, _ := chatServer(t, http.StatusInternalServerError, "")

		r, err := NewRefiner(testConfig(srv.URL), available)
		require.NoError(t, err)

		_, err = r.Refine(ctx, "n", "d", []string{"agriculture"})
		assert.Error(t, err)
	})
}
