package mocks

import (
	"context"
	"time"
)

// MockReadStateRepository implements domain.ReadStateRepository interface for testing
type MockReadStateRepository struct {
	IsReadFunc   func(ctx context.Context, openID, notificationID string) (bool, error)
	MarkReadFunc func(ctx context.Context, openID, notificationID string) (bool, error)
	ReadSetFunc  func(ctx context.Context, openID string) (map[string]time.Time, error)
}

// NewMockReadStateRepository creates a new MockReadStateRepository with default behaviors
func NewMockReadStateRepository() *MockReadStateRepository {
	return &MockReadStateRepository{}
}

// IsRead reports whether the user has read the notification
func (m *MockReadStateRepository) IsRead(ctx context.Context, openID, notificationID string) (bool, error) {
	if m.IsReadFunc != nil {
		return m.IsReadFunc(ctx, openID, notificationID)
	}
	return false, nil
}

// MarkRead records a read acknowledgement
func (m *MockReadStateRepository) MarkRead(ctx context.Context, openID, notificationID string) (bool, error) {
	if m.MarkReadFunc != nil {
		return m.MarkReadFunc(ctx, openID, notificationID)
	}
	return true, nil
}

// ReadSet returns the ids the user has read
func (m *MockReadStateRepository) ReadSet(ctx context.Context, openID string) (map[string]time.Time, error) {
	if m.ReadSetFunc != nil {
		return m.ReadSetFunc(ctx, openID)
	}
	return map[string]time.Time{}, nil
}
