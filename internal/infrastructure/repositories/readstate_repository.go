package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/you/noticehub/domain"
)

// ReadStateRepositoryImpl implements domain.ReadStateRepository using GORM
type ReadStateRepositoryImpl struct {
	db *gorm.DB
}

// DBReadState records one user's acknowledgement of one notification.
// Rows are insert-only; read-state never reverts server-side.
type DBReadState struct {
	OpenID         string    `gorm:"primaryKey;size:128"`
	NotificationID string    `gorm:"primaryKey;size:32"`
	ReadAt         time.Time
}

// TableName returns the table name for GORM
func (DBReadState) TableName() string {
	return "notification_read_states"
}

// NewReadStateRepository creates a new read-state repository
func NewReadStateRepository(db *gorm.DB) domain.ReadStateRepository {
	return &ReadStateRepositoryImpl{db: db}
}

// IsRead implements domain.ReadStateRepository
func (r *ReadStateRepositoryImpl) IsRead(ctx context.Context, openID, notificationID string) (bool, error) {
	var row DBReadState
	err := r.db.WithContext(ctx).
		Where("open_id = ? AND notification_id = ?", openID, notificationID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}
	return true, nil
}

// MarkRead implements domain.ReadStateRepository. Marking an already-read
// notification is a no-op that still reports success; the boolean says
// whether this call wrote the entry.
func (r *ReadStateRepositoryImpl) MarkRead(ctx context.Context, openID, notificationID string) (bool, error) {
	row := DBReadState{
		OpenID:         openID,
		NotificationID: notificationID,
		ReadAt:         time.Now(),
	}

	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	if res.Error != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrStorage, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// ReadSet implements domain.ReadStateRepository
func (r *ReadStateRepositoryImpl) ReadSet(ctx context.Context, openID string) (map[string]time.Time, error) {
	var rows []DBReadState
	if err := r.db.WithContext(ctx).Where("open_id = ?", openID).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}

	out := make(map[string]time.Time, len(rows))
	for _, row := range rows {
		out[row.NotificationID] = row.ReadAt
	}
	return out, nil
}
