package wechat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/you/noticehub/domain"
)

const defaultAPIBase = "https://api.weixin.qq.com"

// GatewayImpl implements domain.PlatformGateway against the WeChat server
// API. Decryption of platform-encrypted payloads happens upstream; this
// gateway only shuttles codes and payloads.
type GatewayImpl struct {
	appID     string
	appSecret string
	apiBase   string
	client    *http.Client
}

// NewGateway creates a WeChat platform gateway. An empty apiBase selects
// the production WeChat endpoint.
func NewGateway(appID, appSecret, apiBase string) domain.PlatformGateway {
	if apiBase == "" {
		apiBase = defaultAPIBase
	}
	return &GatewayImpl{
		appID:     appID,
		appSecret: appSecret,
		apiBase:   apiBase,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

type codeSessionResponse struct {
	OpenID     string `json:"openid"`
	UnionID    string `json:"unionid"`
	SessionKey string `json:"session_key"`
	ErrCode    int    `json:"errcode"`
	ErrMsg     string `json:"errmsg"`
}

// CodeToSession implements domain.PlatformGateway
func (g *GatewayImpl) CodeToSession(ctx context.Context, code string) (*domain.PlatformSession, error) {
	// Unconfigured credentials short-circuit to a deterministic fake
	// identity, mirroring how the SMS sender degrades in development.
	if g.appID == "" {
		return &domain.PlatformSession{OpenID: "dev_" + code, SessionKey: "dev_session_key"}, nil
	}

	q := url.Values{}
	q.Set("appid", g.appID)
	q.Set("secret", g.appSecret)
	q.Set("js_code", code)
	q.Set("grant_type", "authorization_code")

	endpoint := g.apiBase + "/sns/jscode2session?" + q.Encode()
	body, err := g.get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPlatformExchange, err)
	}

	var resp codeSessionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: malformed code2session response", domain.ErrPlatformExchange)
	}
	if resp.ErrCode != 0 || resp.OpenID == "" {
		return nil, fmt.Errorf("%w: errcode=%d %s", domain.ErrPlatformExchange, resp.ErrCode, resp.ErrMsg)
	}

	return &domain.PlatformSession{
		OpenID:     resp.OpenID,
		UnionID:    resp.UnionID,
		SessionKey: resp.SessionKey,
	}, nil
}

type phoneResponse struct {
	PhoneNumber     string `json:"phoneNumber"`
	PurePhoneNumber string `json:"purePhoneNumber"`
	CountryCode     string `json:"countryCode"`
	ErrCode         int    `json:"errcode"`
	ErrMsg          string `json:"errmsg"`
}

// PhoneNumber implements domain.PlatformGateway
func (g *GatewayImpl) PhoneNumber(ctx context.Context, openID, encryptedData, iv string) (*domain.PlatformPhone, error) {
	if g.appID == "" {
		return &domain.PlatformPhone{PhoneNumber: "13800000000", PurePhoneNumber: "13800000000", CountryCode: "86"}, nil
	}

	payload, err := json.Marshal(map[string]string{
		"openid":         openID,
		"encrypted_data": encryptedData,
		"iv":             iv,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPlatformExchange, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.apiBase+"/wxa/business/getuserphonenumber", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPlatformExchange, err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPlatformExchange, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPlatformExchange, err)
	}

	var resp phoneResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: malformed phone response", domain.ErrPlatformExchange)
	}
	if resp.ErrCode != 0 || resp.PhoneNumber == "" {
		return nil, fmt.Errorf("%w: errcode=%d %s", domain.ErrPlatformExchange, resp.ErrCode, resp.ErrMsg)
	}

	return &domain.PlatformPhone{
		PhoneNumber:     resp.PhoneNumber,
		PurePhoneNumber: resp.PurePhoneNumber,
		CountryCode:     resp.CountryCode,
	}, nil
}

func (g *GatewayImpl) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	res, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	return io.ReadAll(res.Body)
}
