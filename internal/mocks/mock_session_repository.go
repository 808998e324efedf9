package mocks

import (
	"context"
	"time"
)

// MockSessionRepository implements domain.SessionRepository interface for testing
type MockSessionRepository struct {
	CreateOrRefreshFunc func(ctx context.Context, openID string) (string, error)
	ValidateFunc        func(ctx context.Context, token string) (string, error)
	DeleteFunc          func(ctx context.Context, token string) (bool, error)
	SweepFunc           func(ctx context.Context, maxAge time.Duration) (int, error)
}

// NewMockSessionRepository creates a new MockSessionRepository with default behaviors
func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{}
}

// CreateOrRefresh issues a token for the user
func (m *MockSessionRepository) CreateOrRefresh(ctx context.Context, openID string) (string, error) {
	if m.CreateOrRefreshFunc != nil {
		return m.CreateOrRefreshFunc(ctx, openID)
	}
	// Default behavior: return a fixed mock token
	return "mock_session_token_0123456789abcd", nil
}

// Validate resolves a token to its user
func (m *MockSessionRepository) Validate(ctx context.Context, token string) (string, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(ctx, token)
	}
	return "mock_openid", nil
}

// Delete removes a session
func (m *MockSessionRepository) Delete(ctx context.Context, token string) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, token)
	}
	return true, nil
}

// Sweep removes idle sessions
func (m *MockSessionRepository) Sweep(ctx context.Context, maxAge time.Duration) (int, error) {
	if m.SweepFunc != nil {
		return m.SweepFunc(ctx, maxAge)
	}
	return 0, nil
}
