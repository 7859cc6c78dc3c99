// Package curbsign parses photographs of parking-regulation signs into
// structured, CDS-compliant curb policy records using a multi-modal vision
// backend.
//
// Basic usage:
//
//	p, err := curbsign.New("sk-ant-...", "claude")
//	if err != nil {
//		log.Fatal(err)
//	}
//	data, err := p.ParseSign(ctx, "sign.jpg")
package curbsign

import (
	"context"
	"log/slog"

	"github.com/curblens/curbsign/internal/cds"
	"github.com/curblens/curbsign/internal/parser"
)

// Record types re-exported for library consumers.
type (
	SignData   = cds.SignData
	CurbPolicy = cds.CurbPolicy
	Rule       = cds.Rule
	TimeSpan   = cds.TimeSpan
	Rate       = cds.Rate
	Location   = cds.Location
)

// Parser extracts curb regulations from sign images.
type Parser struct {
	inner *parser.Parser
}

// New creates a Parser for the named provider ("claude" or "gpt4"). An
// unrecognized provider name fails immediately, before any image or network
// I/O occurs.
func New(apiKey, provider string) (*Parser, error) {
	return NewWithLogger(apiKey, provider, nil)
}

// NewWithLogger is New with an explicit logger.
func NewWithLogger(apiKey, provider string, logger *slog.Logger) (*Parser, error) {
	inner, err := parser.New(parser.Config{
		APIKey:   apiKey,
		Provider: provider,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}
	return &Parser{inner: inner}, nil
}

// ParseSign processes the image at imagePath and returns the extracted
// regulations. The returned record is always fully valid; a model response
// that could not be parsed yields a record with zero policies.
func (p *Parser) ParseSign(ctx context.Context, imagePath string) (*SignData, error) {
	return p.inner.ParseSign(ctx, imagePath)
}
