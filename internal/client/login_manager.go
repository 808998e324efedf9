package client

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/you/noticehub/domain"
)

// ErrLoginInProgress rejects a login started while another is in flight
var ErrLoginInProgress = errors.New("login already in progress")

// LoginStatus is the client's view of the session lifecycle
type LoginStatus int

const (
	StatusLoggedOut LoginStatus = iota
	StatusLoggingIn
	StatusNeedsPhoneBind
	StatusLoggedIn
)

func (s LoginStatus) String() string {
	switch s {
	case StatusLoggingIn:
		return "logging_in"
	case StatusNeedsPhoneBind:
		return "needs_phone_bind"
	case StatusLoggedIn:
		return "logged_in"
	default:
		return "logged_out"
	}
}

// CodeProvider obtains a fresh one-time login code from the host platform
type CodeProvider interface {
	LoginCode(ctx context.Context) (string, error)
}

// PhoneCredentialProvider obtains the encrypted phone payload from the
// host platform's phone-number picker
type PhoneCredentialProvider interface {
	PhoneCredential(ctx context.Context) (encryptedData, iv string, err error)
}

const (
	keyToken         = "token"
	keyUserInfo      = "userInfo"
	keyNeedPhoneBind = "needPhoneBind"
)

// LoginManager owns the client-side session: the token, the cached
// profile, and the phone-bind flag. Local state is committed only after
// the whole server exchange succeeds, so a crash mid-login never leaves
// a token without its profile.
type LoginManager struct {
	api    AuthAPI
	codes  CodeProvider
	store  Store
	logger *zap.Logger

	mu       sync.Mutex
	status   LoginStatus
	token    string
	userInfo *domain.ProfileView

	StatusChanged *Emitter[LoginStatus]
}

// NewLoginManager restores any persisted session from the store. The
// restored session is provisional until CheckStatus confirms it.
func NewLoginManager(api AuthAPI, codes CodeProvider, store Store, logger *zap.Logger) *LoginManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &LoginManager{
		api:           api,
		codes:         codes,
		store:         store,
		logger:        logger,
		status:        StatusLoggedOut,
		StatusChanged: NewEmitter[LoginStatus](logger),
	}

	var token string
	if store.Get(keyToken, &token) && token != "" {
		m.token = token
		var info domain.ProfileView
		if store.Get(keyUserInfo, &info) {
			m.userInfo = &info
		}
		var needBind bool
		store.Get(keyNeedPhoneBind, &needBind)
		if needBind {
			m.status = StatusNeedsPhoneBind
		} else {
			m.status = StatusLoggedIn
		}
	}
	return m
}

// Status returns the current login status
func (m *LoginManager) Status() LoginStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Token returns the current session token, or "" when logged out
func (m *LoginManager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// UserInfo returns the cached profile, or nil when logged out
func (m *LoginManager) UserInfo() *domain.ProfileView {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.userInfo
}

// Login runs the full code-to-token exchange. On any failure the local
// state is left exactly as it was before the call.
func (m *LoginManager) Login(ctx context.Context) error {
	m.mu.Lock()
	if m.status == StatusLoggingIn {
		m.mu.Unlock()
		return ErrLoginInProgress
	}
	prev := m.status
	m.status = StatusLoggingIn
	m.mu.Unlock()
	m.StatusChanged.Emit(StatusLoggingIn)

	code, err := m.codes.LoginCode(ctx)
	if err != nil {
		m.setStatus(prev)
		return err
	}

	data, err := m.api.Login(ctx, code)
	if err != nil {
		m.logger.Warn("login exchange failed", zap.Error(err))
		m.setStatus(prev)
		return err
	}

	m.mu.Lock()
	m.token = data.Token
	m.userInfo = data.UserInfo
	if data.NeedPhoneBind {
		m.status = StatusNeedsPhoneBind
	} else {
		m.status = StatusLoggedIn
	}
	next := m.status
	m.mu.Unlock()

	m.store.Set(keyToken, data.Token)
	if data.UserInfo != nil {
		m.store.Set(keyUserInfo, data.UserInfo)
	}
	m.store.Set(keyNeedPhoneBind, data.NeedPhoneBind)

	m.StatusChanged.Emit(next)
	return nil
}

// CheckStatus validates a restored session against the server. A server
// rejection clears the local session instead of surfacing an error, so
// callers fall back to a fresh Login.
func (m *LoginManager) CheckStatus(ctx context.Context) (LoginStatus, error) {
	m.mu.Lock()
	token := m.token
	m.mu.Unlock()
	if token == "" {
		return StatusLoggedOut, nil
	}

	data, err := m.api.Status(ctx, token)
	if err != nil {
		if apiErr, ok := err.(*APIError); ok && apiErr.Code == -2 {
			m.clearLocal()
			m.StatusChanged.Emit(StatusLoggedOut)
			return StatusLoggedOut, nil
		}
		return m.Status(), err
	}

	m.mu.Lock()
	m.userInfo = data.UserInfo
	if data.NeedPhoneBind {
		m.status = StatusNeedsPhoneBind
	} else {
		m.status = StatusLoggedIn
	}
	next := m.status
	m.mu.Unlock()

	if data.UserInfo != nil {
		m.store.Set(keyUserInfo, data.UserInfo)
	}
	m.store.Set(keyNeedPhoneBind, data.NeedPhoneBind)

	m.StatusChanged.Emit(next)
	return next, nil
}

// BindPhone completes the phone-bind step using the platform's
// encrypted phone credential
func (m *LoginManager) BindPhone(ctx context.Context, creds PhoneCredentialProvider) error {
	m.mu.Lock()
	token := m.token
	m.mu.Unlock()
	if token == "" {
		return domain.ErrNotLoggedIn
	}

	encrypted, iv, err := creds.PhoneCredential(ctx)
	if err != nil {
		return err
	}

	data, err := m.api.BindPhone(ctx, token, encrypted, iv)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.userInfo = data.UserInfo
	m.status = StatusLoggedIn
	m.mu.Unlock()

	if data.UserInfo != nil {
		m.store.Set(keyUserInfo, data.UserInfo)
	}
	m.store.Set(keyNeedPhoneBind, false)

	m.StatusChanged.Emit(StatusLoggedIn)
	return nil
}

// Logout clears the local session. The server call is best effort; a
// dead session on the server expires on its own.
func (m *LoginManager) Logout(ctx context.Context) {
	m.mu.Lock()
	token := m.token
	m.mu.Unlock()

	if token != "" {
		if err := m.api.Logout(ctx, token); err != nil {
			m.logger.Debug("server logout failed", zap.Error(err))
		}
	}
	m.clearLocal()
	m.StatusChanged.Emit(StatusLoggedOut)
}

func (m *LoginManager) setStatus(s LoginStatus) {
	m.mu.Lock()
	m.status = s
	m.mu.Unlock()
	m.StatusChanged.Emit(s)
}

func (m *LoginManager) clearLocal() {
	m.mu.Lock()
	m.token = ""
	m.userInfo = nil
	m.status = StatusLoggedOut
	m.mu.Unlock()

	m.store.Delete(keyToken)
	m.store.Delete(keyUserInfo)
	m.store.Delete(keyNeedPhoneBind)
}
