package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/you/noticehub/domain"
	"github.com/you/noticehub/internal/http/middleware"
	"github.com/you/noticehub/internal/mocks"
)

// asUser simulates the token middleware for handlers that read its keys
func asUser(openID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if openID != "" {
			c.Set(middleware.CtxOpenID, openID)
			c.Set(middleware.CtxIsLoggedIn, true)
		}
		c.Next()
	}
}

func TestNotificationHandlers_List(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name         string
		openID       string
		setupMocks   func(*mocks.MockNotificationService)
		validateData func(t *testing.T, data map[string]interface{})
	}{
		{
			name:   "anonymous caller gets the anonymous feed",
			openID: "",
			setupMocks: func(notifSvc *mocks.MockNotificationService) {
				notifSvc.VisibleForFunc = func(ctx context.Context, openID string, isLoggedIn bool) (*domain.NotificationFeed, error) {
					if openID != "" || isLoggedIn {
						t.Errorf("expected anonymous call, got openid=%q isLoggedIn=%v", openID, isLoggedIn)
					}
					return &domain.NotificationFeed{
						Notifications: []domain.NotificationView{{ID: "n_system", Type: domain.NotificationSystem}},
						UnreadCount:   1,
					}, nil
				}
			},
			validateData: func(t *testing.T, data map[string]interface{}) {
				if data["isLoggedIn"] != false {
					t.Errorf("expected isLoggedIn false, got %v", data["isLoggedIn"])
				}
				if data["unreadCount"] != float64(1) {
					t.Errorf("expected unreadCount 1, got %v", data["unreadCount"])
				}
			},
		},
		{
			name:   "authenticated caller is passed through",
			openID: "oid_alice",
			setupMocks: func(notifSvc *mocks.MockNotificationService) {
				notifSvc.VisibleForFunc = func(ctx context.Context, openID string, isLoggedIn bool) (*domain.NotificationFeed, error) {
					if openID != "oid_alice" || !isLoggedIn {
						t.Errorf("expected authenticated call, got openid=%q isLoggedIn=%v", openID, isLoggedIn)
					}
					return &domain.NotificationFeed{Notifications: []domain.NotificationView{}, IsLoggedIn: true}, nil
				}
			},
			validateData: func(t *testing.T, data map[string]interface{}) {
				if data["isLoggedIn"] != true {
					t.Errorf("expected isLoggedIn true, got %v", data["isLoggedIn"])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifSvc := mocks.NewMockNotificationService()
			tt.setupMocks(notifSvc)

			r := gin.New()
			r.GET("/notifications", asUser(tt.openID), NewNotificationHandlers(notifSvc).List)

			w := performJSON(t, r, http.MethodGet, "/notifications", "", nil)
			if w.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", w.Code)
			}

			env := decodeEnvelope(t, w)
			data, ok := env["data"].(map[string]interface{})
			if !ok {
				t.Fatalf("expected data object, got %v", env["data"])
			}
			tt.validateData(t, data)
		})
	}
}

func TestNotificationHandlers_MarkRead(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
		expectedCode   float64
	}{
		{
			name:           "successful mark",
			body:           MarkReadRequest{ID: "n_1"},
			expectedStatus: http.StatusOK,
			expectedCode:   0,
		},
		{
			name:           "missing id",
			body:           map[string]string{},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifSvc := mocks.NewMockNotificationService()

			r := gin.New()
			r.POST("/notifications/mark_read", asUser("oid_alice"), NewNotificationHandlers(notifSvc).MarkRead)

			w := performJSON(t, r, http.MethodPost, "/notifications/mark_read", "tok_1", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			env := decodeEnvelope(t, w)
			if env["code"] != tt.expectedCode {
				t.Errorf("expected envelope code %v, got %v", tt.expectedCode, env["code"])
			}
		})
	}
}

func TestNotificationHandlers_MarkAllRead(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		body           interface{}
		setupMocks     func(*mocks.MockNotificationService)
		expectedStatus int
		expectedCode   float64
		validateData   func(t *testing.T, data map[string]interface{})
	}{
		{
			name: "marks all and reports updated",
			body: nil,
			setupMocks: func(notifSvc *mocks.MockNotificationService) {
				notifSvc.MarkAllReadFunc = func(ctx context.Context, openID string, typeFilter domain.NotificationType) (bool, error) {
					if typeFilter != "" {
						t.Errorf("expected no type filter, got %q", typeFilter)
					}
					return true, nil
				}
			},
			expectedStatus: http.StatusOK,
			expectedCode:   0,
			validateData: func(t *testing.T, data map[string]interface{}) {
				if data["updated"] != true {
					t.Errorf("expected updated true, got %v", data["updated"])
				}
			},
		},
		{
			name: "type filter is forwarded",
			body: MarkAllReadRequest{Type: "system"},
			setupMocks: func(notifSvc *mocks.MockNotificationService) {
				notifSvc.MarkAllReadFunc = func(ctx context.Context, openID string, typeFilter domain.NotificationType) (bool, error) {
					if typeFilter != domain.NotificationSystem {
						t.Errorf("expected system filter, got %q", typeFilter)
					}
					return false, nil
				}
			},
			expectedStatus: http.StatusOK,
			expectedCode:   0,
			validateData: func(t *testing.T, data map[string]interface{}) {
				if data["updated"] != false {
					t.Errorf("expected updated false, got %v", data["updated"])
				}
			},
		},
		{
			name:           "unknown type is rejected",
			body:           MarkAllReadRequest{Type: "marketing"},
			setupMocks:     func(*mocks.MockNotificationService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifSvc := mocks.NewMockNotificationService()
			tt.setupMocks(notifSvc)

			r := gin.New()
			r.POST("/notifications/mark_all_read", asUser("oid_alice"), NewNotificationHandlers(notifSvc).MarkAllRead)

			w := performJSON(t, r, http.MethodPost, "/notifications/mark_all_read", "tok_1", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			env := decodeEnvelope(t, w)
			if env["code"] != tt.expectedCode {
				t.Errorf("expected envelope code %v, got %v", tt.expectedCode, env["code"])
			}
			if tt.validateData != nil {
				data, ok := env["data"].(map[string]interface{})
				if !ok {
					t.Fatalf("expected data object, got %v", env["data"])
				}
				tt.validateData(t, data)
			}
		})
	}
}
