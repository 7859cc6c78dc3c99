package providers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/curblens/curbsign/internal/curberr"
)

const (
	ClaudeName           = "claude"
	claudeBaseURL        = "https://api.anthropic.com/v1"
	claudeDefaultModel   = "claude-3-opus-20240229"
	claudeAPIVersion     = "2023-06-01"
	claudeMaxTokens      = 1024
	claudeMaxImageSize   = 5 * 1024 * 1024
	claudeDefaultTimeout = 120 * time.Second
	claudeImageMediaType = "image/jpeg"
)

// claudeProvider talks to the Anthropic messages API directly over HTTP.
type claudeProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func newClaudeProvider(apiKey string, o options) *claudeProvider {
	if o.model == "" {
		o.model = claudeDefaultModel
	}
	if o.baseURL == "" {
		o.baseURL = claudeBaseURL
	}
	if o.timeout == 0 {
		o.timeout = claudeDefaultTimeout
	}
	client := o.httpClient
	if client == nil {
		client = &http.Client{Timeout: o.timeout}
	}
	return &claudeProvider{
		apiKey:  apiKey,
		baseURL: o.baseURL,
		model:   o.model,
		client:  client,
	}
}

// Name returns the provider identifier.
func (p *claudeProvider) Name() string {
	return ClaudeName
}

// MaxImageSize returns the Anthropic per-image input limit.
func (p *claudeProvider) MaxImageSize() int {
	return claudeMaxImageSize
}

// AnalyzeSign sends the image plus the fixed system prompt to the messages
// endpoint and returns the first text block of the response.
func (p *claudeProvider) AnalyzeSign(ctx context.Context, image []byte) (string, error) {
	reqBody := claudeRequest{
		Model:     p.model,
		MaxTokens: claudeMaxTokens,
		System:    systemPrompt,
		Messages: []claudeMessage{
			{
				Role: "user",
				Content: []claudeContentBlock{
					{
						Type: "image",
						Source: &claudeImageSource{
							Type:      "base64",
							MediaType: claudeImageMediaType,
							Data:      base64.StdEncoding.EncodeToString(image),
						},
					},
					{
						Type: "text",
						Text: userPrompt,
					},
				},
			},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", curberr.Wrap(curberr.KindProvider, err, "failed to marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/messages", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", curberr.Wrap(curberr.KindProvider, err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", p.apiKey)
	req.Header.Set("anthropic-version", claudeAPIVersion)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", curberr.Wrap(curberr.KindProvider, err, "request failed")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", curberr.Wrap(curberr.KindProvider, err, "failed to read response")
	}

	if resp.StatusCode != http.StatusOK {
		var errResp claudeErrorResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error.Message != "" {
			return "", curberr.New(curberr.KindProvider,
				"Claude API error (status %d): %s", resp.StatusCode, errResp.Error.Message)
		}
		return "", curberr.New(curberr.KindProvider,
			"Claude API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var msg claudeResponse
	if err := json.Unmarshal(respBody, &msg); err != nil {
		return "", curberr.Wrap(curberr.KindProvider, err, "failed to unmarshal response")
	}

	for _, block := range msg.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", curberr.New(curberr.KindProvider, "no text content in Claude response")
}

// Anthropic messages API types

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	System    string          `json:"system,omitempty"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string               `json:"role"`
	Content []claudeContentBlock `json:"content"`
}

type claudeContentBlock struct {
	Type   string             `json:"type"`
	Text   string             `json:"text,omitempty"`
	Source *claudeImageSource `json:"source,omitempty"`
}

type claudeImageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type claudeResponse struct {
	ID      string               `json:"id"`
	Model   string               `json:"model"`
	Content []claudeContentBlock `json:"content"`
}

type claudeErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Verify interface
var _ Provider = (*claudeProvider)(nil)
