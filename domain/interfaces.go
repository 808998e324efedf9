package domain

import (
	"context"
	"time"
)

// UserRepository defines user directory data access operations
type UserRepository interface {
	// Upsert inserts a new user or overwrites the profile fields of an
	// existing one. OpenID, PhoneNumber and IsVerified are never touched
	// by Upsert; missing profile fields overwrite with zero values.
	Upsert(ctx context.Context, user *User) error
	FindByOpenID(ctx context.Context, openID string) (*User, error)
	SetPhoneNumber(ctx context.Context, openID, phoneNumber string) error
	Profile(ctx context.Context, openID string) (*ProfileView, error)
}

// SessionRepository defines session data access operations
type SessionRepository interface {
	// CreateOrRefresh issues a fresh token for the user, invalidating any
	// prior token. A user has at most one live session.
	CreateOrRefresh(ctx context.Context, openID string) (string, error)
	// Validate resolves a token to its user. Unknown or expired tokens
	// return ErrSessionNotFound, never a transport error.
	Validate(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) (bool, error)
	// Sweep removes sessions idle longer than maxAge and reports how many
	// it removed. Called on an operational cadence, not per request.
	Sweep(ctx context.Context, maxAge time.Duration) (int, error)
}

// NotificationRepository defines notification store operations
type NotificationRepository interface {
	Create(ctx context.Context, typ NotificationType, title, content string, targetUsers []string) (*Notification, error)
	// ListAll returns every stored notification, newest first.
	ListAll(ctx context.Context) ([]Notification, error)
	DeleteOne(ctx context.Context, id string) (bool, error)
	DeleteAll(ctx context.Context) error
}

// ReadStateRepository tracks per-user read acknowledgements
type ReadStateRepository interface {
	IsRead(ctx context.Context, openID, notificationID string) (bool, error)
	// MarkRead is idempotent; it reports whether the entry was newly written.
	MarkRead(ctx context.Context, openID, notificationID string) (bool, error)
	// ReadSet returns the ids the user has read, for bulk merge.
	ReadSet(ctx context.Context, openID string) (map[string]time.Time, error)
}

// AuthService defines the login/session business logic
type AuthService interface {
	Login(ctx context.Context, code string) (*LoginResult, error)
	CheckStatus(ctx context.Context, token string) (*StatusResult, error)
	BindPhone(ctx context.Context, token, encryptedData, iv string) (*BindPhoneResult, error)
	Logout(ctx context.Context, token string) error
}

// NotificationService owns the delivery filter and read-state reconciliation
type NotificationService interface {
	// VisibleFor computes the notification subset a caller may see, merged
	// with the caller's read-state, newest first.
	VisibleFor(ctx context.Context, openID string, isLoggedIn bool) (*NotificationFeed, error)
	MarkRead(ctx context.Context, openID, notificationID string) error
	// MarkAllRead reports whether any entry was newly marked.
	MarkAllRead(ctx context.Context, openID string, typeFilter NotificationType) (bool, error)
	Create(ctx context.Context, typ NotificationType, title, content string, targetUsers []string) (*Notification, error)
	ListAll(ctx context.Context) ([]Notification, error)
	DeleteOne(ctx context.Context, id string) (bool, error)
	DeleteAll(ctx context.Context) error
}

// PlatformGateway abstracts the WeChat server API
type PlatformGateway interface {
	// CodeToSession exchanges a one-time login code for the caller identity.
	CodeToSession(ctx context.Context, code string) (*PlatformSession, error)
	// PhoneNumber resolves a platform-encrypted payload to a phone number.
	PhoneNumber(ctx context.Context, openID, encryptedData, iv string) (*PlatformPhone, error)
}

// TokenGenerator issues opaque session tokens
type TokenGenerator interface {
	Generate() (string, error)
}

// SMSSender delivers transactional SMS messages
type SMSSender interface {
	SendSMS(to, message string) error
}

// CasbinEnforcer is the subset of the Casbin enforcer the middleware needs
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}
