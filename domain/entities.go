package domain

import "time"

// NotificationType discriminates system notices from activity (todo) notices.
type NotificationType string

const (
	// NotificationSystem is visible to every caller, logged in or not.
	NotificationSystem NotificationType = "system"
	// NotificationActivity is visible to authenticated callers only.
	NotificationActivity NotificationType = "activity"
)

// User represents a WeChat identity known to the system
type User struct {
	OpenID      string
	UnionID     string
	Nickname    string
	AvatarURL   string
	Gender      int
	Country     string
	Province    string
	City        string
	Language    string
	PhoneNumber string
	Department  string
	Role        string
	GroupName   string
	IsVerified  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProfileView is the externally visible projection of a User.
// Internal row ID and UnionID never leave the server.
type ProfileView struct {
	OpenID      string `json:"openid"`
	Nickname    string `json:"nickName"`
	AvatarURL   string `json:"avatarUrl"`
	Gender      int    `json:"gender"`
	Country     string `json:"country"`
	Province    string `json:"province"`
	City        string `json:"city"`
	Language    string `json:"language"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Department  string `json:"department"`
	Role        string `json:"role"`
	GroupName   string `json:"groupName"`
	IsVerified  bool   `json:"isVerified"`
}

// Session maps an opaque token to a user. At most one live session per user.
type Session struct {
	Token     string    `json:"token"`
	OpenID    string    `json:"openid"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Notification is an immutable notice record. An empty TargetUsers list
// means broadcast to all eligible users.
type Notification struct {
	ID          string
	Type        NotificationType
	Title       string
	Content     string
	CreatedAt   time.Time
	TargetUsers []string
}

// NotificationView is a Notification as delivered to a caller: the
// target list is stripped and the caller's read-state is attached.
type NotificationView struct {
	ID      string           `json:"id"`
	Type    NotificationType `json:"type"`
	Title   string           `json:"title"`
	Content string           `json:"content"`
	Time    string           `json:"time"`
	IsRead  bool             `json:"isRead"`
}

// NotificationFeed is the result of a delivery-filter pass for one caller.
type NotificationFeed struct {
	Notifications []NotificationView `json:"notifications"`
	UnreadCount   int                `json:"unreadCount"`
	IsLoggedIn    bool               `json:"isLoggedIn"`
}

// LoginResult is the outcome of a successful code exchange.
type LoginResult struct {
	Token         string
	NeedPhoneBind bool
	Profile       *ProfileView
}

// StatusResult is the outcome of a session status check.
type StatusResult struct {
	NeedPhoneBind bool
	Profile       *ProfileView
}

// BindPhoneResult is the outcome of a phone-binding exchange.
type BindPhoneResult struct {
	PhoneNumber string
	Profile     *ProfileView
}

// PlatformSession is what the WeChat code2session endpoint returns.
type PlatformSession struct {
	OpenID     string
	UnionID    string
	SessionKey string
}

// PlatformPhone is a platform-verified phone number.
type PlatformPhone struct {
	PhoneNumber     string
	PurePhoneNumber string
	CountryCode     string
}

// TimeLayout is the wire format for notification timestamps, kept
// compatible with the historical backend ("2006-01-02 15:04:05").
const TimeLayout = "2006-01-02 15:04:05"
