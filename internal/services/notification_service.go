package services

import (
	"context"
	"slices"

	"github.com/you/noticehub/domain"
)

// NotificationServiceImpl implements domain.NotificationService. It owns
// the delivery filter: the one piece of logic in the system where getting
// the three-way visibility rule wrong silently leaks or hides notices.
type NotificationServiceImpl struct {
	notifRepo domain.NotificationRepository
	readRepo  domain.ReadStateRepository
}

// NewNotificationService creates a new notification service
func NewNotificationService(notifRepo domain.NotificationRepository, readRepo domain.ReadStateRepository) domain.NotificationService {
	return &NotificationServiceImpl{
		notifRepo: notifRepo,
		readRepo:  readRepo,
	}
}

// visibleTo decides whether one notification may be delivered to one caller.
//
// Anonymous callers see system notices only. Authenticated callers see
// system notices, broadcasts (empty target list), and notices targeted at
// them. An activity notice with an empty target list is a broadcast to
// authenticated users, never to anonymous ones.
func visibleTo(n *domain.Notification, openID string, isLoggedIn bool) bool {
	if n.Type == domain.NotificationSystem {
		return true
	}
	if !isLoggedIn {
		return false
	}
	if len(n.TargetUsers) == 0 {
		return true
	}
	return slices.Contains(n.TargetUsers, openID)
}

// VisibleFor implements domain.NotificationService
func (s *NotificationServiceImpl) VisibleFor(ctx context.Context, openID string, isLoggedIn bool) (*domain.NotificationFeed, error) {
	all, err := s.notifRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	// Anonymous callers have no read-state; every visible entry is unread.
	readSet := map[string]struct{}{}
	if isLoggedIn {
		marks, err := s.readRepo.ReadSet(ctx, openID)
		if err != nil {
			return nil, err
		}
		for id := range marks {
			readSet[id] = struct{}{}
		}
	}

	feed := &domain.NotificationFeed{
		Notifications: make([]domain.NotificationView, 0, len(all)),
		IsLoggedIn:    isLoggedIn,
	}

	// ListAll is already newest-first; filtering preserves the order.
	for i := range all {
		n := &all[i]
		if !visibleTo(n, openID, isLoggedIn) {
			continue
		}

		_, isRead := readSet[n.ID]
		if !isRead {
			feed.UnreadCount++
		}

		feed.Notifications = append(feed.Notifications, domain.NotificationView{
			ID:      n.ID,
			Type:    n.Type,
			Title:   n.Title,
			Content: n.Content,
			Time:    n.CreatedAt.Format(domain.TimeLayout),
			IsRead:  isRead,
		})
	}

	return feed, nil
}

// MarkRead implements domain.NotificationService. Unknown ids are absorbed
// as an idempotent no-op: the client may hold a notice the admin has since
// deleted, and re-marking must not surface an error.
func (s *NotificationServiceImpl) MarkRead(ctx context.Context, openID, notificationID string) error {
	if openID == "" || notificationID == "" {
		return domain.ErrInvalidParams
	}
	_, err := s.readRepo.MarkRead(ctx, openID, notificationID)
	return err
}

// MarkAllRead implements domain.NotificationService. Only the caller's
// currently-visible set is eligible; the return value reports whether
// anything was newly marked so the client can tell "done" from "nothing
// to do".
func (s *NotificationServiceImpl) MarkAllRead(ctx context.Context, openID string, typeFilter domain.NotificationType) (bool, error) {
	if openID == "" {
		return false, domain.ErrInvalidParams
	}

	feed, err := s.VisibleFor(ctx, openID, true)
	if err != nil {
		return false, err
	}

	updated := false
	for _, view := range feed.Notifications {
		if view.IsRead {
			continue
		}
		if typeFilter != "" && view.Type != typeFilter {
			continue
		}
		wrote, err := s.readRepo.MarkRead(ctx, openID, view.ID)
		if err != nil {
			return updated, err
		}
		if wrote {
			updated = true
		}
	}

	return updated, nil
}

// Create implements domain.NotificationService
func (s *NotificationServiceImpl) Create(ctx context.Context, typ domain.NotificationType, title, content string, targetUsers []string) (*domain.Notification, error) {
	if typ != domain.NotificationSystem && typ != domain.NotificationActivity {
		return nil, domain.ErrInvalidParams
	}
	if title == "" {
		return nil, domain.ErrInvalidParams
	}
	return s.notifRepo.Create(ctx, typ, title, content, targetUsers)
}

// ListAll implements domain.NotificationService
func (s *NotificationServiceImpl) ListAll(ctx context.Context) ([]domain.Notification, error) {
	return s.notifRepo.ListAll(ctx)
}

// DeleteOne implements domain.NotificationService
func (s *NotificationServiceImpl) DeleteOne(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, domain.ErrInvalidParams
	}
	return s.notifRepo.DeleteOne(ctx, id)
}

// DeleteAll implements domain.NotificationService
func (s *NotificationServiceImpl) DeleteAll(ctx context.Context) error {
	return s.notifRepo.DeleteAll(ctx)
}
