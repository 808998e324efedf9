package mocks

import (
	"context"
	"time"

	"github.com/you/noticehub/domain"
)

// MockNotificationService implements domain.NotificationService interface for testing
type MockNotificationService struct {
	VisibleForFunc  func(ctx context.Context, openID string, isLoggedIn bool) (*domain.NotificationFeed, error)
	MarkReadFunc    func(ctx context.Context, openID, notificationID string) error
	MarkAllReadFunc func(ctx context.Context, openID string, typeFilter domain.NotificationType) (bool, error)
	CreateFunc      func(ctx context.Context, typ domain.NotificationType, title, content string, targetUsers []string) (*domain.Notification, error)
	ListAllFunc     func(ctx context.Context) ([]domain.Notification, error)
	DeleteOneFunc   func(ctx context.Context, id string) (bool, error)
	DeleteAllFunc   func(ctx context.Context) error
}

// NewMockNotificationService creates a new MockNotificationService with default behaviors
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

// VisibleFor computes the caller's notification feed
func (m *MockNotificationService) VisibleFor(ctx context.Context, openID string, isLoggedIn bool) (*domain.NotificationFeed, error) {
	if m.VisibleForFunc != nil {
		return m.VisibleForFunc(ctx, openID, isLoggedIn)
	}
	// Default behavior: empty feed reflecting the caller's login state
	return &domain.NotificationFeed{
		Notifications: []domain.NotificationView{},
		UnreadCount:   0,
		IsLoggedIn:    isLoggedIn,
	}, nil
}

// MarkRead records a read acknowledgement
func (m *MockNotificationService) MarkRead(ctx context.Context, openID, notificationID string) error {
	if m.MarkReadFunc != nil {
		return m.MarkReadFunc(ctx, openID, notificationID)
	}
	return nil
}

// MarkAllRead marks every visible notification read
func (m *MockNotificationService) MarkAllRead(ctx context.Context, openID string, typeFilter domain.NotificationType) (bool, error) {
	if m.MarkAllReadFunc != nil {
		return m.MarkAllReadFunc(ctx, openID, typeFilter)
	}
	return true, nil
}

// Create stores a new notification
func (m *MockNotificationService) Create(ctx context.Context, typ domain.NotificationType, title, content string, targetUsers []string) (*domain.Notification, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, typ, title, content, targetUsers)
	}
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
func (m *MockNotificationService) ListAll(ctx context.Context) ([]domain.Notification, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return []domain.Notification{}, nil
}

// DeleteOne removes a notification by id
func (m *MockNotificationService) DeleteOne(ctx context.Context, id string) (bool, error) {
	if m.DeleteOneFunc != nil {
		return m.DeleteOneFunc(ctx, id)
	}
	return true, nil
}

// DeleteAll removes every notification
func (m *MockNotificationService) DeleteAll(ctx context.Context) error {
	if m.DeleteAllFunc != nil {
		return m.DeleteAllFunc(ctx)
	}
	return nil
}
