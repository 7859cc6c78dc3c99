package providers

import "context"

// MockProvider is a configurable Provider for tests.
type MockProvider struct {
	ProviderName string
	MaxSize      int
	Response     string
	Err          error

	// Captured from the last AnalyzeSign call.
	LastImage []byte
	Calls     int
}

// NewMockProvider creates a mock that answers with the given response text.
func NewMockProvider(response string) *MockProvider {
	return &MockProvider{
		ProviderName: "mock",
		MaxSize:      5 * 1024 * 1024,
		Response:     response,
	}
}

func (m *MockProvider) Name() string {
	return m.ProviderName
}

func (m *MockProvider) MaxImageSize() int {
	return m.MaxSize
}

func (m *MockProvider) AnalyzeSign(_ context.Context, image []byte) (string, error) {
	m.Calls++
	m.LastImage = image
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

// Verify interface
var _ Provider = (*MockProvider)(nil)
