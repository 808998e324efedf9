package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func envelopeServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(handler))
	t.Cleanup(srv.Close)
	return srv
}

func TestAPIClient_LoginDecodesEnvelope(t *testing.T) {
	srv := envelopeServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["code"] != "code_abc" {
			t.Errorf("expected code in body, got %v", body)
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"code": 0,
			"msg":  "login successful",
			"data": map[string]interface{}{
				"token":         "tok_1",
				"needPhoneBind": true,
			},
		})
	})

	api := NewAPIClient(srv.URL, nil)
	data, err := api.Login(context.Background(), "code_abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.Token != "tok_1" || !data.NeedPhoneBind {
		t.Errorf("unexpected login data: %+v", data)
	}
}

func TestAPIClient_NonZeroCodeBecomesAPIError(t *testing.T) {
	srv := envelopeServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"code": -2,
			"msg":  "not logged in or session expired",
		})
	})

	api := NewAPIClient(srv.URL, nil)
	_, err := api.Status(context.Background(), "tok_dead")
	if err == nil {
		t.Fatal("expected an error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Code != -2 {
		t.Errorf("expected code -2, got %d", apiErr.Code)
	}
}

func TestAPIClient_TokenHeaderIsSent(t *testing.T) {
	srv := envelopeServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("token") != "tok_1" {
			t.Errorf("expected token header, got %q", r.Header.Get("token"))
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"code": 0,
			"msg":  "notifications fetched",
			"data": map[string]interface{}{
				"notifications": []interface{}{},
				"unreadCount":   0,
				"isLoggedIn":    true,
			},
		})
	})

	api := NewAPIClient(srv.URL, nil)
	feed, err := api.Fetch(context.Background(), "tok_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !feed.IsLoggedIn {
		t.Error("expected isLoggedIn flag decoded")
	}
}

func TestAPIClient_MarkAllReadDecodesUpdated(t *testing.T) {
	srv := envelopeServer(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["type"] != "system" {
			t.Errorf("expected type filter in body, got %v", body)
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"code": 0,
			"msg":  "all marked read",
			"data": map[string]interface{}{"updated": true},
		})
	})

	api := NewAPIClient(srv.URL, nil)
	updated, err := api.MarkAllRead(context.Background(), "tok_1", "system")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated {
		t.Error("expected updated true")
	}
}

func TestAPIClient_MalformedResponse(t *testing.T) {
	srv := envelopeServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>gateway error</html>"))
	})

	api := NewAPIClient(srv.URL, nil)
	_, err := api.Fetch(context.Background(), "tok_1")
	if err == nil {
		t.Fatal("expected an error for a non-envelope response")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Error("malformed responses are transport failures, not server rejections")
	}
}
