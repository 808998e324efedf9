package mocks

// MockTokenGenerator implements domain.TokenGenerator interface for testing
type MockTokenGenerator struct {
	GenerateFunc func() (string, error)
}

// NewMockTokenGenerator creates a new MockTokenGenerator with default behaviors
func NewMockTokenGenerator() *MockTokenGenerator {
	return &MockTokenGenerator{}
}

// Generate issues an opaque token
func (m *MockTokenGenerator) Generate() (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	return "mock_session_token_0123456789abcd", nil
}
