package services

import (
	"context"
	"errors"
	"testing"

	"github.com/you/noticehub/domain"
	"github.com/you/noticehub/internal/mocks"
)

func TestAuthServiceImpl_Login(t *testing.T) {
	tests := []struct {
		name           string
		code           string
		setupMocks     func(*mocks.MockUserRepository, *mocks.MockSessionRepository, *mocks.MockPlatformGateway)
		expectedError  error
		validateResult func(t *testing.T, result *domain.LoginResult)
	}{
		{
			name: "successful login with bound phone",
			code: "code_abc",
			setupMocks: func(userRepo *mocks.MockUserRepository, sessionRepo *mocks.MockSessionRepository, platform *mocks.MockPlatformGateway) {
				sessionRepo.CreateOrRefreshFunc = func(ctx context.Context, openID string) (string, error) {
					if openID != "openid_code_abc" {
						t.Errorf("expected session for platform openid, got %s", openID)
					}
					return "tok_1", nil
				}
			},
			validateResult: func(t *testing.T, result *domain.LoginResult) {
				if result.Token != "tok_1" {
					t.Errorf("expected token tok_1, got %s", result.Token)
				}
				if result.NeedPhoneBind {
					t.Error("expected no phone bind for a user with a phone")
				}
				if result.Profile == nil {
					t.Fatal("expected profile in result")
				}
			},
		},
		{
			name: "first login needs phone bind",
			code: "code_new",
			setupMocks: func(userRepo *mocks.MockUserRepository, sessionRepo *mocks.MockSessionRepository, platform *mocks.MockPlatformGateway) {
				userRepo.FindByOpenIDFunc = func(ctx context.Context, openID string) (*domain.User, error) {
					return &domain.User{OpenID: openID}, nil
				}
				userRepo.ProfileFunc = func(ctx context.Context, openID string) (*domain.ProfileView, error) {
					return &domain.ProfileView{OpenID: openID}, nil
				}
			},
			validateResult: func(t *testing.T, result *domain.LoginResult) {
				if !result.NeedPhoneBind {
					t.Error("expected phone bind flag for a phoneless user")
				}
			},
		},
		{
			name:          "empty code",
			code:          "",
			setupMocks:    func(*mocks.MockUserRepository, *mocks.MockSessionRepository, *mocks.MockPlatformGateway) {},
			expectedError: domain.ErrInvalidParams,
		},
		{
			name: "platform rejects the code",
			code: "code_bad",
			setupMocks: func(userRepo *mocks.MockUserRepository, sessionRepo *mocks.MockSessionRepository, platform *mocks.MockPlatformGateway) {
				platform.CodeToSessionFunc = func(ctx context.Context, code string) (*domain.PlatformSession, error) {
					return nil, domain.ErrPlatformExchange
				}
			},
			expectedError: domain.ErrPlatformExchange,
		},
		{
			name: "upsert failure aborts before a session is issued",
			code: "code_abc",
			setupMocks: func(userRepo *mocks.MockUserRepository, sessionRepo *mocks.MockSessionRepository, platform *mocks.MockPlatformGateway) {
				userRepo.UpsertFunc = func(ctx context.Context, user *domain.User) error {
					return domain.ErrStorage
				}
				sessionRepo.CreateOrRefreshFunc = func(ctx context.Context, openID string) (string, error) {
					t.Error("session must not be created when upsert fails")
					return "", nil
				}
			},
			expectedError: domain.ErrStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := mocks.NewMockUserRepository()
			sessionRepo := mocks.NewMockSessionRepository()
			platform := mocks.NewMockPlatformGateway()
			sms := mocks.NewMockSMSSender()
			tt.setupMocks(userRepo, sessionRepo, platform)

			svc := NewAuthService(userRepo, sessionRepo, platform, sms)
			result, err := svc.Login(context.Background(), tt.code)

			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Errorf("expected error %v, got %v", tt.expectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.validateResult(t, result)
		})
	}
}

func TestAuthServiceImpl_CheckStatus(t *testing.T) {
	tests := []struct {
		name          string
		setupMocks    func(*mocks.MockUserRepository, *mocks.MockSessionRepository)
		expectedError error
	}{
		{
			name:       "valid session",
			setupMocks: func(*mocks.MockUserRepository, *mocks.MockSessionRepository) {},
		},
		{
			name: "unknown token",
			setupMocks: func(userRepo *mocks.MockUserRepository, sessionRepo *mocks.MockSessionRepository) {
				sessionRepo.ValidateFunc = func(ctx context.Context, token string) (string, error) {
					return "", domain.ErrSessionNotFound
				}
			},
			expectedError: domain.ErrSessionNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := mocks.NewMockUserRepository()
			sessionRepo := mocks.NewMockSessionRepository()
			tt.setupMocks(userRepo, sessionRepo)

			svc := NewAuthService(userRepo, sessionRepo, mocks.NewMockPlatformGateway(), mocks.NewMockSMSSender())
			result, err := svc.CheckStatus(context.Background(), "some_token")

			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Errorf("expected error %v, got %v", tt.expectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Profile == nil {
				t.Fatal("expected profile in result")
			}
		})
	}
}

func TestAuthServiceImpl_BindPhone(t *testing.T) {
	tests := []struct {
		name          string
		encrypted     string
		iv            string
		setupMocks    func(*mocks.MockUserRepository, *mocks.MockSessionRepository, *mocks.MockPlatformGateway, *mocks.MockSMSSender)
		expectedError error
		validate      func(t *testing.T, result *domain.BindPhoneResult, sms *mocks.MockSMSSender)
	}{
		{
			name:      "successful bind sends a confirmation",
			encrypted: "payload",
			iv:        "iv",
			setupMocks: func(userRepo *mocks.MockUserRepository, sessionRepo *mocks.MockSessionRepository, platform *mocks.MockPlatformGateway, sms *mocks.MockSMSSender) {
			},
			validate: func(t *testing.T, result *domain.BindPhoneResult, sms *mocks.MockSMSSender) {
				if result.PhoneNumber != "+8613800000000" {
					t.Errorf("expected platform phone, got %s", result.PhoneNumber)
				}
				if len(sms.Sent()) != 1 {
					t.Errorf("expected 1 confirmation SMS, got %d", len(sms.Sent()))
				}
			},
		},
		{
			name:      "SMS failure does not fail the bind",
			encrypted: "payload",
			iv:        "iv",
			setupMocks: func(userRepo *mocks.MockUserRepository, sessionRepo *mocks.MockSessionRepository, platform *mocks.MockPlatformGateway, sms *mocks.MockSMSSender) {
				sms.SendSMSFunc = func(to, message string) error {
					return errors.New("carrier unavailable")
				}
			},
			validate: func(t *testing.T, result *domain.BindPhoneResult, sms *mocks.MockSMSSender) {
				if result.PhoneNumber == "" {
					t.Error("expected bind to succeed despite SMS failure")
				}
			},
		},
		{
			name:          "missing payload",
			encrypted:     "",
			iv:            "iv",
			setupMocks:    func(*mocks.MockUserRepository, *mocks.MockSessionRepository, *mocks.MockPlatformGateway, *mocks.MockSMSSender) {},
			expectedError: domain.ErrInvalidParams,
		},
		{
			name:      "invalid session",
			encrypted: "payload",
			iv:        "iv",
			setupMocks: func(userRepo *mocks.MockUserRepository, sessionRepo *mocks.MockSessionRepository, platform *mocks.MockPlatformGateway, sms *mocks.MockSMSSender) {
				sessionRepo.ValidateFunc = func(ctx context.Context, token string) (string, error) {
					return "", domain.ErrSessionNotFound
				}
			},
			expectedError: domain.ErrSessionNotFound,
		},
		{
			name:      "unknown user cannot bind",
			encrypted: "payload",
			iv:        "iv",
			setupMocks: func(userRepo *mocks.MockUserRepository, sessionRepo *mocks.MockSessionRepository, platform *mocks.MockPlatformGateway, sms *mocks.MockSMSSender) {
				userRepo.SetPhoneNumberFunc = func(ctx context.Context, openID, phoneNumber string) error {
					return domain.ErrUserNotFound
				}
			},
			expectedError: domain.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := mocks.NewMockUserRepository()
			sessionRepo := mocks.NewMockSessionRepository()
			platform := mocks.NewMockPlatformGateway()
			sms := mocks.NewMockSMSSender()
			tt.setupMocks(userRepo, sessionRepo, platform, sms)

			svc := NewAuthService(userRepo, sessionRepo, platform, sms)
			result, err := svc.BindPhone(context.Background(), "some_token", tt.encrypted, tt.iv)

			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Errorf("expected error %v, got %v", tt.expectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.validate(t, result, sms)
		})
	}
}

func TestAuthServiceImpl_Logout(t *testing.T) {
	sessionRepo := mocks.NewMockSessionRepository()
	sessionRepo.DeleteFunc = func(ctx context.Context, token string) (bool, error) {
		return false, nil
	}

	svc := NewAuthService(mocks.NewMockUserRepository(), sessionRepo, mocks.NewMockPlatformGateway(), mocks.NewMockSMSSender())

	// Logging out an unknown token is still a success.
	if err := svc.Logout(context.Background(), "unknown_token"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
