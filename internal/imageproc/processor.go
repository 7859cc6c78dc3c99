// Package imageproc prepares sign photographs for the vision backends: it
// re-encodes any supported input format to bounded-size JPEG and pulls GPS
// coordinates out of EXIF metadata when present.
package imageproc

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/curblens/curbsign/internal/cds"
	"github.com/curblens/curbsign/internal/curberr"

	// Decoder registrations beyond imaging's built-ins (jpeg, png, tiff, bmp).
	_ "github.com/adrium/goheif"
	_ "golang.org/x/image/webp"
)

const (
	// MaxDimension bounds the longest side after resizing.
	MaxDimension = 2048

	jpegQuality = 95

	// DefaultMaxBytes applies when the caller does not supply a backend limit.
	DefaultMaxBytes = 5 * 1024 * 1024
)

var supportedExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".heic": {}, ".heif": {},
	".webp": {}, ".tiff": {}, ".bmp": {},
}

// Processor converts sign images into the JPEG transport format the model
// backends accept.
type Processor struct {
	maxBytes int
	logger   *slog.Logger
}

// New creates a Processor enforcing maxBytes on the encoded output. A
// non-positive limit falls back to DefaultMaxBytes.
func New(maxBytes int, logger *slog.Logger) *Processor {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{maxBytes: maxBytes, logger: logger}
}

// Process reads the image at path, re-encodes it as an aspect-preserving
// JPEG no larger than MaxDimension on its longest side, and extracts a GPS
// point from EXIF metadata. The location is best-effort: extraction
// failures yield a nil location, never an error.
func (p *Processor) Process(path string) ([]byte, *cds.Location, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := supportedExtensions[ext]; !ok {
		return nil, nil, curberr.New(curberr.KindUnsupportedFormat, "unsupported image extension %q", ext)
	}

	if _, err := os.Stat(path); err != nil {
		return nil, nil, curberr.Wrap(curberr.KindImageProcessing, err, "image file not found: %s", path)
	}

	loc := p.extractLocation(path)

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, nil, curberr.Wrap(curberr.KindImageProcessing, err, "failed to decode image %s", path)
	}

	bounds := img.Bounds()
	if bounds.Dx() > MaxDimension || bounds.Dy() > MaxDimension {
		img = imaging.Fit(img, MaxDimension, MaxDimension, imaging.Lanczos)
		p.logger.Debug("resized image",
			"path", path,
			"width", img.Bounds().Dx(),
			"height", img.Bounds().Dy())
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, nil, curberr.Wrap(curberr.KindImageProcessing, err, "failed to encode image %s", path)
	}

	if buf.Len() > p.maxBytes {
		return nil, nil, curberr.New(curberr.KindImageProcessing,
			"processed image size %s exceeds maximum allowed size %s",
			formatBytes(buf.Len()), formatBytes(p.maxBytes))
	}

	p.logger.Info("processed image",
		"path", path,
		"bytes", buf.Len(),
		"has_location", loc != nil)

	return buf.Bytes(), loc, nil
}

func formatBytes(n int) string {
	return fmt.Sprintf("%.2fMB", float64(n)/1024/1024)
}
