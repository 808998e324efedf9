package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/you/noticehub/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID          uint      `gorm:"primaryKey"`
	OpenID      string    `gorm:"uniqueIndex;size:128"`
	UnionID     string    `gorm:"index;size:128"`
	Nickname    string    `gorm:"size:255"`
	AvatarURL   string    `gorm:"size:512"`
	Gender      int
	Country     string    `gorm:"size:64"`
	Province    string    `gorm:"size:64"`
	City        string    `gorm:"size:64"`
	Language    string    `gorm:"size:32"`
	PhoneNumber string    `gorm:"index;size:32"`
	Department  string    `gorm:"size:128"`
	Role        string    `gorm:"index;size:64"`
	GroupName   string    `gorm:"size:128"`
	IsVerified  bool
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Upsert implements domain.UserRepository. Profile fields are a full
// overwrite: fields the caller did not resend go to their zero value.
// OpenID, PhoneNumber and IsVerified are owned by other operations.
func (r *UserRepositoryImpl) Upsert(ctx context.Context, user *domain.User) error {
	var existing DBUser
	err := r.db.WithContext(ctx).Where("open_id = ?", user.OpenID).First(&existing).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		row := r.domainToDB(user)
		if row.Department == "" {
			row.Department = "***"
		}
		if row.Role == "" {
			row.Role = "student"
		}
		if row.GroupName == "" {
			row.GroupName = "***"
		}
		return r.db.WithContext(ctx).Create(row).Error
	}

	updates := map[string]interface{}{
		"union_id":   user.UnionID,
		"nickname":   user.Nickname,
		"avatar_url": user.AvatarURL,
		"gender":     user.Gender,
		"country":    user.Country,
		"province":   user.Province,
		"city":       user.City,
		"language":   user.Language,
		"updated_at": time.Now(),
	}
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("open_id = ?", user.OpenID).Updates(updates).Error
}

// FindByOpenID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByOpenID(ctx context.Context, openID string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("open_id = ?", openID).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// SetPhoneNumber implements domain.UserRepository
func (r *UserRepositoryImpl) SetPhoneNumber(ctx context.Context, openID, phoneNumber string) error {
	res := r.db.WithContext(ctx).Model(&DBUser{}).Where("open_id = ?", openID).Updates(map[string]interface{}{
		"phone_number": phoneNumber,
		"updated_at":   time.Now(),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Profile implements domain.UserRepository
func (r *UserRepositoryImpl) Profile(ctx context.Context, openID string) (*domain.ProfileView, error) {
	user, err := r.FindByOpenID(ctx, openID)
	if err != nil {
		return nil, err
	}
	return &domain.ProfileView{
		OpenID:      user.OpenID,
		Nickname:    user.Nickname,
		AvatarURL:   user.AvatarURL,
		Gender:      user.Gender,
		Country:     user.Country,
		Province:    user.Province,
		City:        user.City,
		Language:    user.Language,
		PhoneNumber: user.PhoneNumber,
		Department:  user.Department,
		Role:        user.Role,
		GroupName:   user.GroupName,
		IsVerified:  user.IsVerified,
	}, nil
}

// domainToDB converts domain user to database user
func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	return &DBUser{
		OpenID:      user.OpenID,
		UnionID:     user.UnionID,
		Nickname:    user.Nickname,
		AvatarURL:   user.AvatarURL,
		Gender:      user.Gender,
		Country:     user.Country,
		Province:    user.Province,
		City:        user.City,
		Language:    user.Language,
		PhoneNumber: user.PhoneNumber,
		Department:  user.Department,
		Role:        user.Role,
		GroupName:   user.GroupName,
		IsVerified:  user.IsVerified,
	}
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		OpenID:      dbUser.OpenID,
		UnionID:     dbUser.UnionID,
		Nickname:    dbUser.Nickname,
		AvatarURL:   dbUser.AvatarURL,
		Gender:      dbUser.Gender,
		Country:     dbUser.Country,
		Province:    dbUser.Province,
		City:        dbUser.City,
		Language:    dbUser.Language,
		PhoneNumber: dbUser.PhoneNumber,
		Department:  dbUser.Department,
		Role:        dbUser.Role,
		GroupName:   dbUser.GroupName,
		IsVerified:  dbUser.IsVerified,
		CreatedAt:   dbUser.CreatedAt,
		UpdatedAt:   dbUser.UpdatedAt,
	}
}
