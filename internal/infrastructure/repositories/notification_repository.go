package repositories

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"gorm.io/gorm"

	"github.com/you/noticehub/domain"
)

// NotificationRepositoryImpl implements domain.NotificationRepository using GORM
type NotificationRepositoryImpl struct {
	db *gorm.DB
}

// DBNotification represents the database model for Notification
type DBNotification struct {
	ID          string    `gorm:"primaryKey;size:32"`
	Type        string    `gorm:"index;size:32"`
	Title       string    `gorm:"size:255"`
	Content     string
	TargetUsers []string  `gorm:"serializer:json"`
	CreatedAt   time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBNotification) TableName() string {
	return "notifications"
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) domain.NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

// newNotificationID builds a unix-time id with a random 4-digit suffix,
// matching the historical wire format. Collisions within one second are
// negligible at this system's write rate.
func newNotificationID(now time.Time) string {
	return fmt.Sprintf("%d%04d", now.Unix(), 1000+rand.Intn(9000))
}

// Create implements domain.NotificationRepository
func (r *NotificationRepositoryImpl) Create(ctx context.Context, typ domain.NotificationType, title, content string, targetUsers []string) (*domain.Notification, error) {
	now := time.Now()
	if targetUsers == nil {
		targetUsers = []string{}
	}

	row := &DBNotification{
		ID:          newNotificationID(now),
		Type:        string(typ),
		Title:       title,
		Content:     content,
		TargetUsers: targetUsers,
		CreatedAt:   now,
	}

	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}

	return r.dbToDomain(row), nil
}

// ListAll implements domain.NotificationRepository
func (r *NotificationRepositoryImpl) ListAll(ctx context.Context) ([]domain.Notification, error) {
	var rows []DBNotification
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}

	out := make([]domain.Notification, 0, len(rows))
	for i := range rows {
		out = append(out, *r.dbToDomain(&rows[i]))
	}
	return out, nil
}

// DeleteOne implements domain.NotificationRepository
func (r *NotificationRepositoryImpl) DeleteOne(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&DBNotification{})
	if res.Error != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrStorage, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// DeleteAll implements domain.NotificationRepository
func (r *NotificationRepositoryImpl) DeleteAll(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Where("1 = 1").Delete(&DBNotification{}).Error; err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}
	return nil
}

func (r *NotificationRepositoryImpl) dbToDomain(row *DBNotification) *domain.Notification {
	return &domain.Notification{
		ID:          row.ID,
		Type:        domain.NotificationType(row.Type),
		Title:       row.Title,
		Content:     row.Content,
		CreatedAt:   row.CreatedAt,
		TargetUsers: row.TargetUsers,
	}
}
