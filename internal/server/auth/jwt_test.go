package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/velmarq/walletd/internal/common"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	tok, err := GenerateToken("acc-123", "a@x.com", "pubkey58", secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	claims, err := ParseClaims(tok, secret)
	if err != nil {
		t.Fatalf("ParseClaims error: %v", err)
	}
	if claims.AccountID != "acc-123" {
		t.Fatalf("accountID mismatch: got %q", claims.AccountID)
	}
	if claims.Email != "a@x.com" || claims.PublicKey != "pubkey58" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestParseClaims_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := GenerateToken("acc-1", "a@x.com", "pk", secret, -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = ParseClaims(tok, secret)
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
}

func TestParseClaims_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("acc-2", "a@x.com", "pk", []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = ParseClaims(tok, []byte("wrong-secret"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestParseClaims_TamperedSignature(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	tok, err := GenerateToken("acc-3", "a@x.com", "pk", secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	tampered := tok[:len(tok)-2] + "xx"
	if _, err := ParseClaims(tampered, secret); err == nil {
		t.Fatalf("expected error for tampered token, got nil")
	}
}

func TestParseClaims_Malformed(t *testing.T) {
	t.Parallel()

	if _, err := ParseClaims("not.a.jwt", []byte("k")); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}
