// Package parser sequences one sign parse end to end: image preparation,
// model invocation, normalization. Calls are synchronous, carry no retries,
// and share no mutable state; every call allocates a fresh record tree.
package parser

import (
	"context"
	"log/slog"

	"github.com/curblens/curbsign/internal/cds"
	"github.com/curblens/curbsign/internal/curberr"
	"github.com/curblens/curbsign/internal/imageproc"
	"github.com/curblens/curbsign/internal/normalize"
	"github.com/curblens/curbsign/internal/providers"
)

// DefaultProvider is used when no provider name is configured.
const DefaultProvider = providers.ClaudeName

// Config configures a Parser.
type Config struct {
	APIKey   string
	Provider string // "claude" or "gpt4"; defaults to claude
	Model    string // optional model override for the chosen backend
	Logger   *slog.Logger
}

// Parser converts sign photographs into CDS sign data.
type Parser struct {
	provider   providers.Provider
	processor  *imageproc.Processor
	normalizer *normalize.Normalizer
	logger     *slog.Logger
}

// New builds a Parser. An unrecognized provider name fails here, before any
// image or network I/O occurs.
func New(cfg Config) (*Parser, error) {
	if cfg.APIKey == "" {
		return nil, curberr.New(curberr.KindConfiguration, "api key is required")
	}
	name := cfg.Provider
	if name == "" {
		name = DefaultProvider
	}

	var opts []providers.Option
	if cfg.Model != "" {
		opts = append(opts, providers.WithModel(cfg.Model))
	}
	provider, err := providers.New(name, cfg.APIKey, opts...)
	if err != nil {
		return nil, err
	}

	return NewWithProvider(provider, cfg.Logger), nil
}

// NewWithProvider builds a Parser around an existing provider. The image
// processor enforces the provider's declared input limit.
func NewWithProvider(provider providers.Provider, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{
		provider:   provider,
		processor:  imageproc.New(provider.MaxImageSize(), logger),
		normalizer: normalize.New(logger),
		logger:     logger,
	}
}

// Provider returns the name of the selected backend.
func (p *Parser) Provider() string {
	return p.provider.Name()
}

// ParseSign processes the image at imagePath and returns the extracted
// regulations. Image-preparation and backend failures are fatal for the
// call; a model response that fails to parse as JSON yields a valid record
// with zero policies instead.
func (p *Parser) ParseSign(ctx context.Context, imagePath string) (*cds.SignData, error) {
	p.logger.Info("parsing sign", "path", imagePath, "provider", p.provider.Name())

	image, loc, err := p.processor.Process(imagePath)
	if err != nil {
		return nil, err
	}

	raw, err := p.provider.AnalyzeSign(ctx, image)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("received model response", "chars", len(raw))

	data, err := p.normalizer.Normalize(raw, loc)
	if err != nil {
		return nil, err
	}

	p.logger.Info("parsed sign", "path", imagePath, "policies", len(data.Policies))
	return data, nil
}
