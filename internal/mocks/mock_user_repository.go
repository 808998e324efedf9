package mocks

import (
	"context"
	"time"

	"github.com/you/noticehub/domain"
)

// MockUserRepository implements domain.UserRepository interface for testing
type MockUserRepository struct {
	UpsertFunc         func(ctx context.Context, user *domain.User) error
	FindByOpenIDFunc   func(ctx context.Context, openID string) (*domain.User, error)
	SetPhoneNumberFunc func(ctx context.Context, openID, phoneNumber string) error
	ProfileFunc        func(ctx context.Context, openID string) (*domain.ProfileView, error)
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

// Upsert inserts or overwrites a user row
func (m *MockUserRepository) Upsert(ctx context.Context, user *domain.User) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, user)
	}
	return nil
}

// FindByOpenID looks up a user by open id
func (m *MockUserRepository) FindByOpenID(ctx context.Context, openID string) (*domain.User, error) {
	if m.FindByOpenIDFunc != nil {
		return m.FindByOpenIDFunc(ctx, openID)
	}
	// Default behavior: return a mock user
	return &domain.User{
		OpenID:      openID,
		Nickname:    "mock_user",
		Department:  "***",
		Role:        "student",
		GroupName:   "***",
		PhoneNumber: "13800000000",
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}, nil
}

// SetPhoneNumber records a verified phone number
func (m *MockUserRepository) SetPhoneNumber(ctx context.Context, openID, phoneNumber string) error {
	if m.SetPhoneNumberFunc != nil {
		return m.SetPhoneNumberFunc(ctx, openID, phoneNumber)
	}
	return nil
}

// Profile returns the external projection of a user
func (m *MockUserRepository) Profile(ctx context.Context, openID string) (*domain.ProfileView, error) {
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx, openID)
	}
	// Default behavior: return a mock profile
	return &domain.ProfileView{
		OpenID:      openID,
		Nickname:    "mock_user",
		Department:  "***",
		Role:        "student",
		GroupName:   "***",
		PhoneNumber: "13800000000",
	}, nil
}
