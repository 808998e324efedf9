package mocks

import (
	"context"

	"github.com/you/noticehub/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	LoginFunc       func(ctx context.Context, code string) (*domain.LoginResult, error)
	CheckStatusFunc func(ctx context.Context, token string) (*domain.StatusResult, error)
	BindPhoneFunc   func(ctx context.Context, token, encryptedData, iv string) (*domain.BindPhoneResult, error)
	LogoutFunc      func(ctx context.Context, token string) error
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// Login exchanges a one-time code for a session
func (m *MockAuthService) Login(ctx context.Context, code string) (*domain.LoginResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, code)
	}
	// Default behavior: return a successful login result
	return &domain.LoginResult{
		Token:         "mock_session_token_0123456789abcd",
		NeedPhoneBind: false,
		Profile: &domain.ProfileView{
			OpenID:      "mock_openid",
			Nickname:    "mock_user",
			PhoneNumber: "13800000000",
			Department:  "***",
			Role:        "student",
			GroupName:   "***",
		},
	}, nil
}

// CheckStatus validates a session token
func (m *MockAuthService) CheckStatus(ctx context.Context, token string) (*domain.StatusResult, error) {
	if m.CheckStatusFunc != nil {
		return m.CheckStatusFunc(ctx, token)
	}
	return &domain.StatusResult{
		NeedPhoneBind: false,
		Profile: &domain.ProfileView{
			OpenID:      "mock_openid",
			Nickname:    "mock_user",
			PhoneNumber: "13800000000",
		},
	}, nil
}

// BindPhone completes phone binding for a session
func (m *MockAuthService) BindPhone(ctx context.Context, token, encryptedData, iv string) (*domain.BindPhoneResult, error) {
	if m.BindPhoneFunc != nil {
		return m.BindPhoneFunc(ctx, token, encryptedData, iv)
	}
	return &domain.BindPhoneResult{
		PhoneNumber: "13800000000",
		Profile: &domain.ProfileView{
			OpenID:      "mock_openid",
			Nickname:    "mock_user",
			PhoneNumber: "13800000000",
		},
	}, nil
}

// Logout invalidates a session
func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, token)
	}
	return nil
}
