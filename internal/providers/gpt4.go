package providers

import (
	"context"
	"encoding/base64"
	"net/http"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/curblens/curbsign/internal/curberr"
)

const (
	GPT4Name           = "gpt4"
	gpt4DefaultModel   = "gpt-4-vision-preview"
	gpt4MaxTokens      = 1024
	gpt4MaxImageSize   = 20 * 1024 * 1024
	gpt4DefaultTimeout = 30 * time.Second
)

// gpt4Provider talks to the OpenAI chat completions API through the
// official SDK. SDK-level retries are disabled: a backend failure
// propagates to the caller unchanged.
type gpt4Provider struct {
	model  string
	client openai.Client
}

func newGPT4Provider(apiKey string, o options) *gpt4Provider {
	if o.model == "" {
		o.model = gpt4DefaultModel
	}
	if o.timeout == 0 {
		o.timeout = gpt4DefaultTimeout
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: o.timeout}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	}
	if o.baseURL != "" {
		opts = append(opts, option.WithBaseURL(o.baseURL))
	}

	return &gpt4Provider{
		model:  o.model,
		client: openai.NewClient(opts...),
	}
}

// Name returns the provider identifier.
func (p *gpt4Provider) Name() string {
	return GPT4Name
}

// MaxImageSize returns the OpenAI vision input limit.
func (p *gpt4Provider) MaxImageSize() int {
	return gpt4MaxImageSize
}

// AnalyzeSign sends the prompt and the image as a base64 data URI and
// returns the first choice's message content.
func (p *gpt4Provider) AnalyzeSign(ctx context.Context, image []byte) (string, error) {
	dataURI := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(image)

	completion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(systemPrompt),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: dataURI,
				}),
			}),
		},
		MaxTokens: openai.Int(gpt4MaxTokens),
	})
	if err != nil {
		return "", curberr.Wrap(curberr.KindProvider, err, "GPT-4 Vision API error")
	}

	if len(completion.Choices) == 0 {
		return "", curberr.New(curberr.KindProvider, "no choices in GPT-4 response")
	}
	return completion.Choices[0].Message.Content, nil
}

// Verify interface
var _ Provider = (*gpt4Provider)(nil)
