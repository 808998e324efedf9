package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/you/noticehub/domain"
)

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	sessionRepo domain.SessionRepository
	platform    domain.PlatformGateway
	sms         domain.SMSSender
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	sessionRepo domain.SessionRepository,
	platform domain.PlatformGateway,
	sms domain.SMSSender,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		platform:    platform,
		sms:         sms,
	}
}

// Login implements domain.AuthService. The one-time code is exchanged with
// the platform, the user row is created or overwritten, and a session is
// issued. Repeat logins refresh the token in place.
func (s *AuthServiceImpl) Login(ctx context.Context, code string) (*domain.LoginResult, error) {
	if code == "" {
		return nil, domain.ErrInvalidParams
	}

	platformSession, err := s.platform.CodeToSession(ctx, code)
	if err != nil {
		return nil, err
	}

	openID := platformSession.OpenID
	if err := s.userRepo.Upsert(ctx, &domain.User{
		OpenID:  openID,
		UnionID: platformSession.UnionID,
	}); err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	token, err := s.sessionRepo.CreateOrRefresh(ctx, openID)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	user, err := s.userRepo.FindByOpenID(ctx, openID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	profile, err := s.userRepo.Profile(ctx, openID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	log.Printf("USER_LOGIN: openid=%s timestamp=%s", openID, time.Now().UTC().Format(time.RFC3339))

	return &domain.LoginResult{
		Token:         token,
		NeedPhoneBind: user.PhoneNumber == "",
		Profile:       profile,
	}, nil
}

// CheckStatus implements domain.AuthService
func (s *AuthServiceImpl) CheckStatus(ctx context.Context, token string) (*domain.StatusResult, error) {
	openID, err := s.sessionRepo.Validate(ctx, token)
	if err != nil {
		return nil, domain.ErrSessionNotFound
	}

	user, err := s.userRepo.FindByOpenID(ctx, openID)
	if err != nil {
		return nil, err
	}

	profile, err := s.userRepo.Profile(ctx, openID)
	if err != nil {
		return nil, err
	}

	return &domain.StatusResult{
		NeedPhoneBind: user.PhoneNumber == "",
		Profile:       profile,
	}, nil
}

// BindPhone implements domain.AuthService. The encrypted payload is
// resolved by the platform gateway; the confirmation SMS is best-effort
// and never fails the binding.
func (s *AuthServiceImpl) BindPhone(ctx context.Context, token, encryptedData, iv string) (*domain.BindPhoneResult, error) {
	if encryptedData == "" || iv == "" {
		return nil, domain.ErrInvalidParams
	}

	openID, err := s.sessionRepo.Validate(ctx, token)
	if err != nil {
		return nil, domain.ErrSessionNotFound
	}

	phone, err := s.platform.PhoneNumber(ctx, openID, encryptedData, iv)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.SetPhoneNumber(ctx, openID, phone.PhoneNumber); err != nil {
		return nil, fmt.Errorf("failed to save phone number: %w", err)
	}

	if err := s.sms.SendSMS(phone.PhoneNumber, "Your phone number has been bound to your account."); err != nil {
		log.Printf("PHONE_BIND_SMS_FAILED: openid=%s error=%v", openID, err)
	}

	log.Printf("PHONE_BOUND: openid=%s timestamp=%s", openID, time.Now().UTC().Format(time.RFC3339))

	profile, err := s.userRepo.Profile(ctx, openID)
	if err != nil {
		return nil, err
	}

	return &domain.BindPhoneResult{
		PhoneNumber: phone.PhoneNumber,
		Profile:     profile,
	}, nil
}

// Logout implements domain.AuthService. Deleting an unknown token is not
// an error; logout is idempotent.
func (s *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	_, err := s.sessionRepo.Delete(ctx, token)
	return err
}
