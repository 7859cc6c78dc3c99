// Package providers holds the vision-model backends that turn a sign
// photograph into raw regulation text. Backends are interchangeable behind
// the Provider interface and selected by name at construction time.
package providers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/curblens/curbsign/internal/curberr"
)

// Provider is a multi-modal model backend. Implementations accept prepared
// JPEG bytes and return the model's raw text response, which is expected to
// be a JSON object but is not guaranteed to be one.
type Provider interface {
	// Name returns the provider identifier (e.g. "claude").
	Name() string

	// MaxImageSize returns the largest input image, in bytes, the backend
	// accepts.
	MaxImageSize() int

	// AnalyzeSign sends the image plus the fixed system prompt to the
	// backend and returns the raw response text.
	AnalyzeSign(ctx context.Context, image []byte) (string, error)
}

// Option adjusts provider construction.
type Option func(*options)

type options struct {
	model      string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// WithModel overrides the backend's default model name.
func WithModel(model string) Option {
	return func(o *options) { o.model = model }
}

// WithBaseURL overrides the backend's API endpoint (tests).
func WithBaseURL(url string) Option {
	return func(o *options) { o.baseURL = url }
}

// WithTimeout overrides the backend's HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithHTTPClient overrides the backend's HTTP client (tests).
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// factories maps provider names to constructors. Adding a backend means
// adding one entry here.
var factories = map[string]func(apiKey string, o options) Provider{
	ClaudeName: func(apiKey string, o options) Provider { return newClaudeProvider(apiKey, o) },
	GPT4Name:   func(apiKey string, o options) Provider { return newGPT4Provider(apiKey, o) },
}

// New builds the named provider. An unrecognized name is a configuration
// error raised here, before any image or network I/O can happen.
func New(name, apiKey string, opts ...Option) (Provider, error) {
	factory, ok := factories[name]
	if !ok {
		return nil, curberr.New(curberr.KindConfiguration,
			"unsupported provider %q, supported providers: %v", name, Supported())
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return factory(apiKey, o), nil
}

// Supported returns the recognized provider names, sorted.
func Supported() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
