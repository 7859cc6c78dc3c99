package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/curblens/curbsign/internal/curberr"
)

func TestGPT4Provider_AnalyzeSign(t *testing.T) {
	t.Run("successful analysis", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
				t.Errorf("unexpected authorization: %s", auth)
			}

			var req map[string]any
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Fatalf("failed to decode request: %v", err)
			}
			if req["model"] != gpt4DefaultModel {
				t.Errorf("model = %v", req["model"])
			}
			msgs, ok := req["messages"].([]any)
			if !ok || len(msgs) != 1 {
				t.Fatalf("unexpected messages: %v", req["messages"])
			}
			parts, ok := msgs[0].(map[string]any)["content"].([]any)
			if !ok || len(parts) != 2 {
				t.Fatalf("expected two content parts, got %v", msgs[0])
			}
			if parts[0].(map[string]any)["type"] != "text" {
				t.Errorf("first part should be text: %v", parts[0])
			}
			img := parts[1].(map[string]any)
			if img["type"] != "image_url" {
				t.Errorf("second part should be image_url: %v", img)
			}
			url := img["image_url"].(map[string]any)["url"].(string)
			if !strings.HasPrefix(url, "data:image/jpeg;base64,") {
				t.Errorf("image url is not a JPEG data URI: %.40s", url)
			}

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"id":     "chatcmpl-123",
				"object": "chat.completion",
				"model":  gpt4DefaultModel,
				"choices": []any{
					map[string]any{
						"index": 0,
						"message": map[string]any{
							"role":    "assistant",
							"content": `{"regulations":[]}`,
						},
						"finish_reason": "stop",
					},
				},
			})
		}))
		defer server.Close()

		p, err := New(GPT4Name, "test-key", WithBaseURL(server.URL))
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}

		text, err := p.AnalyzeSign(context.Background(), []byte("fake image data"))
		if err != nil {
			t.Fatalf("AnalyzeSign() error = %v", err)
		}
		if text != `{"regulations":[]}` {
			t.Errorf("unexpected response text: %q", text)
		}
	})

	t.Run("API error propagates as provider error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"message": "invalid api key", "type": "invalid_request_error"},
			})
		}))
		defer server.Close()

		p, err := New(GPT4Name, "bad-key", WithBaseURL(server.URL))
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}

		_, err = p.AnalyzeSign(context.Background(), []byte("img"))
		if !curberr.IsKind(err, curberr.KindProvider) {
			t.Errorf("expected provider error, got %v", err)
		}
	})

	t.Run("max image size", func(t *testing.T) {
		p, err := New(GPT4Name, "test-key")
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if p.MaxImageSize() != 20*1024*1024 {
			t.Errorf("MaxImageSize() = %d, want 20MiB", p.MaxImageSize())
		}
	})
}
