package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/you/noticehub/domain"
)

// AuthAPI is the server's login/session surface as seen by the client
type AuthAPI interface {
	Login(ctx context.Context, code string) (*LoginData, error)
	Status(ctx context.Context, token string) (*StatusData, error)
	BindPhone(ctx context.Context, token, encryptedData, iv string) (*BindData, error)
	Logout(ctx context.Context, token string) error
}

// NotificationAPI is the server's notification surface as seen by the client
type NotificationAPI interface {
	Fetch(ctx context.Context, token string) (*domain.NotificationFeed, error)
	MarkRead(ctx context.Context, token, id string) error
	MarkAllRead(ctx context.Context, token string, typeFilter domain.NotificationType) (bool, error)
}

// LoginData is the payload of a successful login exchange
type LoginData struct {
	Token         string              `json:"token"`
	NeedPhoneBind bool                `json:"needPhoneBind"`
	UserInfo      *domain.ProfileView `json:"userInfo"`
}

// StatusData is the payload of a session status check
type StatusData struct {
	NeedPhoneBind bool                `json:"needPhoneBind"`
	UserInfo      *domain.ProfileView `json:"userInfo"`
}

// BindData is the payload of a phone-bind exchange
type BindData struct {
	PhoneNumber string              `json:"phoneNumber"`
	UserInfo    *domain.ProfileView `json:"userInfo"`
}

// APIError is a server-reported failure (non-zero envelope code)
type APIError struct {
	Code int
	Msg  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server error %d: %s", e.Code, e.Msg)
}

// envelope mirrors the server's uniform response shape
type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// APIClient speaks the envelope protocol over HTTP. It implements both
// AuthAPI and NotificationAPI.
type APIClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewAPIClient creates an API client for the given server base URL
func NewAPIClient(baseURL string, logger *zap.Logger) *APIClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &APIClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
	}
}

// Login implements AuthAPI
func (a *APIClient) Login(ctx context.Context, code string) (*LoginData, error) {
	var data LoginData
	if err := a.call(ctx, http.MethodPost, "/login", "", map[string]string{"code": code}, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Status implements AuthAPI
func (a *APIClient) Status(ctx context.Context, token string) (*StatusData, error) {
	var data StatusData
	if err := a.call(ctx, http.MethodGet, "/session/status", token, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// BindPhone implements AuthAPI
func (a *APIClient) BindPhone(ctx context.Context, token, encryptedData, iv string) (*BindData, error) {
	var data BindData
	body := map[string]string{"encryptedData": encryptedData, "iv": iv}
	if err := a.call(ctx, http.MethodPost, "/phone/bind", token, body, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Logout implements AuthAPI
func (a *APIClient) Logout(ctx context.Context, token string) error {
	return a.call(ctx, http.MethodPost, "/logout", token, nil, nil)
}

// Fetch implements NotificationAPI
func (a *APIClient) Fetch(ctx context.Context, token string) (*domain.NotificationFeed, error) {
	var feed domain.NotificationFeed
	if err := a.call(ctx, http.MethodGet, "/notifications", token, nil, &feed); err != nil {
		return nil, err
	}
	return &feed, nil
}

// MarkRead implements NotificationAPI
func (a *APIClient) MarkRead(ctx context.Context, token, id string) error {
	return a.call(ctx, http.MethodPost, "/notifications/mark_read", token, map[string]string{"id": id}, nil)
}

// MarkAllRead implements NotificationAPI
func (a *APIClient) MarkAllRead(ctx context.Context, token string, typeFilter domain.NotificationType) (bool, error) {
	body := map[string]string{}
	if typeFilter != "" {
		body["type"] = string(typeFilter)
	}
	var data struct {
		Updated bool `json:"updated"`
	}
	if err := a.call(ctx, http.MethodPost, "/notifications/mark_all_read", token, body, &data); err != nil {
		return false, err
	}
	return data.Updated, nil
}

// call performs one request/response round trip. A non-2xx status or a
// non-zero envelope code becomes an *APIError; transport failures pass
// through for the caller's cool-down logic.
func (a *APIClient) call(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("token", token)
	}

	res, err := a.client.Do(req)
	if err != nil {
		a.logger.Debug("request failed", zap.String("path", path), zap.Error(err))
		return err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("malformed server response: %w", err)
	}
	if env.Code != 0 {
		return &APIError{Code: env.Code, Msg: env.Msg}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("malformed server payload: %w", err)
		}
	}
	return nil
}
