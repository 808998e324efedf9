package domain

import "errors"

// Authentication errors
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrSessionNotFound  = errors.New("session not found")
	ErrUserNotFound     = errors.New("user not found")
)

// Request errors
var (
	ErrInvalidParams = errors.New("invalid parameters")
	ErrNotFound      = errors.New("resource not found")
	ErrForbidden     = errors.New("forbidden")
)

// Upstream / persistence errors
var (
	ErrPlatformExchange = errors.New("platform exchange failed")
	ErrStorage          = errors.New("storage failure")
)

// Client runtime errors
var (
	ErrNotLoggedIn = errors.New("not logged in")
)
