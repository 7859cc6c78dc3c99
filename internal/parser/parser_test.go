package parser

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/curblens/curbsign/internal/curberr"
	"github.com/curblens/curbsign/internal/providers"
)

func writeTestPNG(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	path := filepath.Join(dir, "sign.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return path
}

func TestNew(t *testing.T) {
	t.Run("claude by default", func(t *testing.T) {
		p, err := New(Config{APIKey: "test-key"})
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if p.Provider() != providers.ClaudeName {
			t.Errorf("Provider() = %q", p.Provider())
		}
	})

	t.Run("gpt4 by name", func(t *testing.T) {
		p, err := New(Config{APIKey: "test-key", Provider: "gpt4"})
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if p.Provider() != providers.GPT4Name {
			t.Errorf("Provider() = %q", p.Provider())
		}
	})

	t.Run("unrecognized provider fails before any I/O", func(t *testing.T) {
		_, err := New(Config{APIKey: "test-key", Provider: "invalid"})
		if !curberr.IsKind(err, curberr.KindConfiguration) {
			t.Errorf("expected configuration error, got %v", err)
		}
	})

	t.Run("missing api key fails", func(t *testing.T) {
		_, err := New(Config{Provider: "claude"})
		if !curberr.IsKind(err, curberr.KindConfiguration) {
			t.Errorf("expected configuration error, got %v", err)
		}
	})
}

func TestParseSign(t *testing.T) {
	t.Run("full pipeline", func(t *testing.T) {
		path := writeTestPNG(t, t.TempDir())
		mock := providers.NewMockProvider(`{"policies":[{"rules":[{"activity":"parking","max_stay":120}],` +
			`"time_spans":[{"days_of_week":["mon","tue"],"time_of_day_start":"09:00","time_of_day_end":"17:00"}]}]}`)

		p := NewWithProvider(mock, nil)
		data, err := p.ParseSign(context.Background(), path)
		if err != nil {
			t.Fatalf("ParseSign() error = %v", err)
		}

		if mock.Calls != 1 {
			t.Errorf("provider calls = %d, want 1", mock.Calls)
		}
		if len(mock.LastImage) == 0 {
			t.Error("provider received no image bytes")
		}
		if len(data.Policies) != 1 {
			t.Fatalf("policies = %d, want 1", len(data.Policies))
		}
		rule := data.Policies[0].Rules[0]
		if rule.Activity != "parking" || rule.MaxStay == nil || *rule.MaxStay != 120 {
			t.Errorf("unexpected rule: %+v", rule)
		}
	})

	t.Run("non-JSON model response succeeds with zero policies", func(t *testing.T) {
		path := writeTestPNG(t, t.TempDir())
		mock := providers.NewMockProvider("not json")

		p := NewWithProvider(mock, nil)
		data, err := p.ParseSign(context.Background(), path)
		if err != nil {
			t.Fatalf("ParseSign() error = %v", err)
		}
		if len(data.Policies) != 0 {
			t.Errorf("policies = %d, want 0", len(data.Policies))
		}
		if data.Version != "1.0" {
			t.Errorf("version = %q", data.Version)
		}
	})

	t.Run("provider failure is fatal", func(t *testing.T) {
		path := writeTestPNG(t, t.TempDir())
		mock := providers.NewMockProvider("")
		mock.Err = curberr.New(curberr.KindProvider, "backend unavailable")

		p := NewWithProvider(mock, nil)
		_, err := p.ParseSign(context.Background(), path)
		if !curberr.IsKind(err, curberr.KindProvider) {
			t.Errorf("expected provider error, got %v", err)
		}
	})

	t.Run("image failure is fatal and provider is never called", func(t *testing.T) {
		mock := providers.NewMockProvider(`{}`)
		p := NewWithProvider(mock, nil)

		_, err := p.ParseSign(context.Background(), filepath.Join(t.TempDir(), "missing.jpg"))
		if !curberr.IsKind(err, curberr.KindImageProcessing) {
			t.Errorf("expected image processing error, got %v", err)
		}
		if mock.Calls != 0 {
			t.Errorf("provider calls = %d, want 0", mock.Calls)
		}
	})

	t.Run("invalid record from model output is a validation error", func(t *testing.T) {
		path := writeTestPNG(t, t.TempDir())
		mock := providers.NewMockProvider(`{"policies":[{"rules":[{"activity":"parking"}],` +
			`"time_spans":[{"time_of_day_start":"9:00 AM"}]}]}`)

		p := NewWithProvider(mock, nil)
		_, err := p.ParseSign(context.Background(), path)
		if !curberr.IsKind(err, curberr.KindValidation) {
			t.Errorf("expected validation error, got %v", err)
		}
		var classified *curberr.Error
		if !errors.As(err, &classified) {
			t.Error("expected classified error")
		}
	})
}
