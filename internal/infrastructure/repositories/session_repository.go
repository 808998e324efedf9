package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/you/noticehub/domain"
)

// SessionRepositoryImpl implements domain.SessionRepository using Redis.
// Two keys per session: sessionPrefix+token holds the row, userPrefix+openID
// holds the live token so a user never has more than one session.
type SessionRepositoryImpl struct {
	client *redis.Client
	tokens domain.TokenGenerator
	prefix string
	byUser string
	ttl    time.Duration
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(client *redis.Client, tokens domain.TokenGenerator, ttl time.Duration) domain.SessionRepository {
	return &SessionRepositoryImpl{
		client: client,
		tokens: tokens,
		prefix: "session:",
		byUser: "usersession:",
		ttl:    ttl,
	}
}

// CreateOrRefresh implements domain.SessionRepository
func (r *SessionRepositoryImpl) CreateOrRefresh(ctx context.Context, openID string) (string, error) {
	token, err := r.tokens.Generate()
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}

	now := time.Now()
	session := domain.Session{
		Token:     token,
		OpenID:    openID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Invalidate the prior token, carrying its creation time forward so a
	// refresh reads as the same logical session.
	oldToken, err := r.client.Get(ctx, r.byUser+openID).Result()
	if err == nil && oldToken != "" {
		if data, gerr := r.client.Get(ctx, r.prefix+oldToken).Result(); gerr == nil {
			var old domain.Session
			if json.Unmarshal([]byte(data), &old) == nil && !old.CreatedAt.IsZero() {
				session.CreatedAt = old.CreatedAt
			}
		}
		if derr := r.client.Del(ctx, r.prefix+oldToken).Err(); derr != nil {
			return "", fmt.Errorf("failed to invalidate prior session: %w", derr)
		}
	} else if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}

	data, err := json.Marshal(session)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := r.client.Set(ctx, r.prefix+token, data, r.ttl).Err(); err != nil {
		return "", err
	}
	if err := r.client.Set(ctx, r.byUser+openID, token, r.ttl).Err(); err != nil {
		return "", err
	}

	return token, nil
}

// Validate implements domain.SessionRepository
func (r *SessionRepositoryImpl) Validate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", domain.ErrSessionNotFound
	}

	data, err := r.client.Get(ctx, r.prefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrSessionNotFound
		}
		return "", err
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return "", fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return session.OpenID, nil
}

// Delete implements domain.SessionRepository
func (r *SessionRepositoryImpl) Delete(ctx context.Context, token string) (bool, error) {
	data, err := r.client.Get(ctx, r.prefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(data), &session); err == nil && session.OpenID != "" {
		r.client.Del(ctx, r.byUser+session.OpenID)
	}

	removed, err := r.client.Del(ctx, r.prefix+token).Result()
	if err != nil {
		return false, err
	}
	return removed > 0, nil
}

// Sweep implements domain.SessionRepository. Redis TTL already expires
// sessions on its own; the sweep is the countable safety net the
// operational contract asks for.
func (r *SessionRepositoryImpl) Sweep(ctx context.Context, maxAge time.Duration) (int, error) {
	cutoff := time.Now().Add(-maxAge)
	count := 0

	iter := r.client.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		data, err := r.client.Get(ctx, key).Result()
		if err != nil {
			continue // expired between SCAN and GET
		}

		var session domain.Session
		if err := json.Unmarshal([]byte(data), &session); err != nil {
			continue
		}
		if session.UpdatedAt.After(cutoff) {
			continue
		}

		if err := r.client.Del(ctx, key).Err(); err != nil {
			return count, err
		}
		r.client.Del(ctx, r.byUser+session.OpenID)
		count++
	}
	if err := iter.Err(); err != nil {
		return count, err
	}

	return count, nil
}
