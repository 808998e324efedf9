package mocks

import (
	"context"
	"time"

	"github.com/you/noticehub/domain"
)

// MockNotificationRepository implements domain.NotificationRepository interface for testing
type MockNotificationRepository struct {
	CreateFunc    func(ctx context.Context, typ domain.NotificationType, title, content string, targetUsers []string) (*domain.Notification, error)
	ListAllFunc   func(ctx context.Context) ([]domain.Notification, error)
	DeleteOneFunc func(ctx context.Context, id string) (bool, error)
	DeleteAllFunc func(ctx context.Context) error
}

// NewMockNotificationRepository creates a new MockNotificationRepository with default behaviors
func NewMockNotificationRepository() *MockNotificationRepository {
	return &MockNotificationRepository{}
}

// Create stores a new notification
func (m *MockNotificationRepository) Create(ctx context.Context, typ domain.NotificationType, title, content string, targetUsers []string) (*domain.Notification, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, typ, title, content, targetUsers)
	}
	// Default behavior: echo the request with a mock id
	return &domain.Notification{
		ID:          "17000000001234",
		Type:        typ,
		Title:       title,
		Content:     content,
		CreatedAt:   time.Now(),
		TargetUsers: targetUsers,
	}, nil
}

// ListAll returns every stored notification
func (m *MockNotificationRepository) ListAll(ctx context.Context) ([]domain.Notification, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return []domain.Notification{}, nil
}

// DeleteOne removes a notification by id
func (m *MockNotificationRepository) DeleteOne(ctx context.Context, id string) (bool, error) {
	if m.DeleteOneFunc != nil {
		return m.DeleteOneFunc(ctx, id)
	}
	return true, nil
}

// DeleteAll removes every notification
func (m *MockNotificationRepository) DeleteAll(ctx context.Context) error {
	if m.DeleteAllFunc != nil {
		return m.DeleteAllFunc(ctx)
	}
	return nil
}
