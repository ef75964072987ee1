package token

import (
	"errors"
	"strings"
	"testing"
	"time"

	"go.classcore.tech/internal/platform/authorization"
)

const (
	testIssuer = "classcore-test"
	testTenant = "c0ffee00-1234-4abc-9def-000000000001"
	testEmail  = "maria@school.example"
)

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	keys := NewKeyManager()
	if err := keys.Initialize("", ""); err != nil {
		t.Fatalf("KeyManager.Initialize() failed: %v", err)
	}
	return NewCodec(keys, testIssuer, 0)
}

func TestGenerateVerifyRoundTrip(t *testing.T) {
	codec := newTestCodec(t)

	tok, err := codec.Generate(testEmail, testTenant, authorization.RoleTeacher)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	claim, err := codec.Verify(tok)
	if err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}

	if claim.SubjectEmail != testEmail {
		t.Errorf("SubjectEmail = %q, want %q", claim.SubjectEmail, testEmail)
	}
	if claim.Role != authorization.RoleTeacher {
		t.Errorf("Role = %q, want teacher", claim.Role)
	}
	if claim.TenantID != testTenant {
		t.Errorf("TenantID = %q, want %q", claim.TenantID, testTenant)
	}

	ttl := claim.ExpiresAt.Sub(claim.IssuedAt)
	if ttl != DefaultTTL {
		t.Errorf("token lifetime = %v, want %v", ttl, DefaultTTL)
	}
}

func TestVerifyExpired(t *testing.T) {
	codec := newTestCodec(t)

	issued := time.Now()
	codec.now = func() time.Time { return issued }

	tok, err := codec.Generate(testEmail, testTenant, authorization.RoleStudent)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	// Still valid one minute before expiry.
	codec.now = func() time.Time { return issued.Add(DefaultTTL - time.Minute) }
	if _, err := codec.Verify(tok); err != nil {
		t.Fatalf("Verify() before expiry failed: %v", err)
	}

	// Invalid one minute after expiry.
	codec.now = func() time.Time { return issued.Add(DefaultTTL + time.Minute) }
	if _, err := codec.Verify(tok); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("Verify() after expiry: err = %v, want ErrExpiredToken", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	codec := newTestCodec(t)

	for _, tok := range []string{"", "garbage", "a.b.c", strings.Repeat("x", 500)} {
		if _, err := codec.Verify(tok); err == nil {
			t.Errorf("Verify(%q) accepted a malformed token", tok)
		}
	}
}

func TestVerifyRejectsTampered(t *testing.T) {
	codec := newTestCodec(t)

	tok, err := codec.Generate(testEmail, testTenant, authorization.RoleStudent)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	// Flip a character in the payload segment.
	parts := strings.Split(tok, ".")
	payload := []byte(parts[1])
	if payload[10] == 'A' {
		payload[10] = 'B'
	} else {
		payload[10] = 'A'
	}
	parts[1] = string(payload)

	if _, err := codec.Verify(strings.Join(parts, ".")); err == nil {
		t.Error("Verify() accepted a tampered token")
	}
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	keys := NewKeyManager()
	if err := keys.Initialize("", ""); err != nil {
		t.Fatalf("KeyManager.Initialize() failed: %v", err)
	}

	issuing := NewCodec(keys, "other-issuer", 0)
	verifying := NewCodec(keys, testIssuer, 0)

	tok, err := issuing.Generate(testEmail, testTenant, authorization.RoleWorker)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	if _, err := verifying.Verify(tok); !errors.Is(err, ErrInvalidIssuer) {
		t.Errorf("Verify() err = %v, want ErrInvalidIssuer", err)
	}
}

func TestGenerateRejectsUnknownRole(t *testing.T) {
	codec := newTestCodec(t)
	if _, err := codec.Generate(testEmail, testTenant, authorization.Role("janitor")); !errors.Is(err, ErrInvalidRole) {
		t.Errorf("Generate() err = %v, want ErrInvalidRole", err)
	}
}

func TestRefresh(t *testing.T) {
	codec := newTestCodec(t)

	issued := time.Now()
	codec.now = func() time.Time { return issued }

	tok, err := codec.GenerateWithTTL(testEmail, testTenant, authorization.RoleTeacher, 5*time.Minute)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	// Refresh three minutes in: new token must carry a fresh 30m expiry.
	codec.now = func() time.Time { return issued.Add(3 * time.Minute) }
	refreshed, err := codec.Refresh(tok)
	if err != nil {
		t.Fatalf("Refresh() failed: %v", err)
	}

	claim, err := codec.Verify(refreshed)
	if err != nil {
		t.Fatalf("Verify(refreshed) failed: %v", err)
	}
	if got := claim.ExpiresAt.Sub(claim.IssuedAt); got != DefaultTTL {
		t.Errorf("refreshed lifetime = %v, want %v", got, DefaultTTL)
	}
	if claim.SubjectEmail != testEmail || claim.TenantID != testTenant {
		t.Error("refreshed claim lost identity fields")
	}
}

func TestRefreshFailsOnInvalidInput(t *testing.T) {
	codec := newTestCodec(t)

	if _, err := codec.Refresh("not-a-token"); err == nil {
		t.Fatal("Refresh() accepted a malformed token")
	}

	issued := time.Now()
	codec.now = func() time.Time { return issued }
	tok, err := codec.Generate(testEmail, testTenant, authorization.RoleStudent)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	codec.now = func() time.Time { return issued.Add(DefaultTTL + time.Minute) }
	if _, err := codec.Refresh(tok); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("Refresh(expired) err = %v, want ErrExpiredToken", err)
	}
}
