package auth

import (
	"crypto/rand"
	"fmt"

	"github.com/you/noticehub/domain"
)

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// TokenServiceImpl issues opaque session tokens. Tokens carry no claims;
// they are validated only by store lookup.
type TokenServiceImpl struct {
	length int
}

// NewTokenService creates a token generator. Lengths below 32 are raised
// to 32 so tokens stay unguessable.
func NewTokenService(length int) domain.TokenGenerator {
	if length < 32 {
		length = 32
	}
	return &TokenServiceImpl{length: length}
}

// Generate implements domain.TokenGenerator
func (t *TokenServiceImpl) Generate() (string, error) {
	buf := make([]byte, t.length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = tokenAlphabet[int(b)%len(tokenAlphabet)]
	}
	return string(buf), nil
}
