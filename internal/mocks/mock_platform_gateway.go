package mocks

import (
	"context"

	"github.com/you/noticehub/domain"
)

// MockPlatformGateway implements domain.PlatformGateway interface for testing
type MockPlatformGateway struct {
	CodeToSessionFunc func(ctx context.Context, code string) (*domain.PlatformSession, error)
	PhoneNumberFunc   func(ctx context.Context, openID, encryptedData, iv string) (*domain.PlatformPhone, error)
}

// NewMockPlatformGateway creates a new MockPlatformGateway with default behaviors
func NewMockPlatformGateway() *MockPlatformGateway {
	return &MockPlatformGateway{}
}

// CodeToSession exchanges a login code for a platform identity
func (m *MockPlatformGateway) CodeToSession(ctx context.Context, code string) (*domain.PlatformSession, error) {
	if m.CodeToSessionFunc != nil {
		return m.CodeToSessionFunc(ctx, code)
	}
	// Default behavior: deterministic identity derived from the code
	return &domain.PlatformSession{
		OpenID:     "openid_" + code,
		SessionKey: "mock_session_key",
	}, nil
}

// PhoneNumber resolves an encrypted payload to a phone number
func (m *MockPlatformGateway) PhoneNumber(ctx context.Context, openID, encryptedData, iv string) (*domain.PlatformPhone, error) {
	if m.PhoneNumberFunc != nil {
		return m.PhoneNumberFunc(ctx, openID, encryptedData, iv)
	}
	return &domain.PlatformPhone{
		PhoneNumber:     "+8613800000000",
		PurePhoneNumber: "13800000000",
		CountryCode:     "86",
	}, nil
}
