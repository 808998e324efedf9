package auth

import (
	"strings"
	"testing"
)

func TestTokenService_Generate(t *testing.T) {
	svc := NewTokenService(32)

	token, err := svc.Generate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(token) != 32 {
		t.Errorf("expected 32-character token, got %d", len(token))
	}
	for _, r := range token {
		if !strings.ContainsRune(tokenAlphabet, r) {
			t.Errorf("unexpected character %q in token", r)
		}
	}
}

func TestTokenService_MinimumLength(t *testing.T) {
	// Shorter tokens would be guessable; the floor is enforced.
	svc := NewTokenService(8)

	token, err := svc.Generate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(token) != 32 {
		t.Errorf("expected floor of 32 characters, got %d", len(token))
	}
}

func TestTokenService_TokensDiffer(t *testing.T) {
	svc := NewTokenService(32)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := svc.Generate()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen[token] {
			t.Fatalf("duplicate token generated: %s", token)
		}
		seen[token] = true
	}
}
