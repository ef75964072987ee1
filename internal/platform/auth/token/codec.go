// Package token signs and verifies the tenant-scoped claim set carried by
// every request credential. The codec is pure and stateless: no I/O beyond
// the cryptographic signature.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"go.classcore.tech/internal/platform/authorization"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token expired")
	ErrInvalidIssuer = errors.New("invalid issuer")
	ErrInvalidRole   = errors.New("invalid role in token")
)

// DefaultTTL is the default claim lifetime.
const DefaultTTL = 30 * time.Minute

// tenantClaims is the wire representation of a Claim.
type tenantClaims struct {
	jwt.RegisteredClaims
	Role     string `json:"role"`
	TenantID string `json:"tenantId"`
}

// Codec signs and verifies tenant-scoped claims.
//
// Verify returns its failures as explicit error values so callers can map
// a bad credential to 401 without exception-style control flow. Refresh
// fails the same way on input that does not verify: the two operations
// share one contract (see Refresh).
type Codec struct {
	keys   *KeyManager
	issuer string
	ttl    time.Duration

	// now is injectable for expiry tests.
	now func() time.Time
}

// NewCodec creates a codec. A non-positive ttl falls back to DefaultTTL.
func NewCodec(keys *KeyManager, issuer string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Codec{
		keys:   keys,
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Generate issues a signed token for the given identity using the codec's
// configured lifetime.
func (c *Codec) Generate(subjectEmail, tenantID string, role authorization.Role) (string, error) {
	return c.GenerateWithTTL(subjectEmail, tenantID, role, c.ttl)
}

// GenerateWithTTL issues a signed token with an explicit lifetime.
func (c *Codec) GenerateWithTTL(subjectEmail, tenantID string, role authorization.Role, ttl time.Duration) (string, error) {
	if !role.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	now := c.now()
	claims := tenantClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   subjectEmail,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role:     string(role),
		TenantID: tenantID,
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tok.Header["kid"] = c.keys.KeyID()

	return tok.SignedString(c.keys.PrivateKey())
}

// Verify checks signature, expiry and issuer, and returns the decoded
// claim. Failures are sentinel errors, never panics: a malformed or
// expired token is an expected condition at the perimeter.
func (c *Codec) Verify(tokenString string) (*authorization.Claim, error) {
	var claims tenantClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, ErrInvalidToken
			}
			return c.keys.PublicKey(), nil
		},
		jwt.WithTimeFunc(func() time.Time { return c.now() }),
		jwt.WithIssuer(c.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenInvalidIssuer):
			return nil, ErrInvalidIssuer
		default:
			return nil, ErrInvalidToken
		}
	}

	role, err := authorization.ParseRole(claims.Role)
	if err != nil {
		return nil, ErrInvalidRole
	}
	if claims.Subject == "" || claims.TenantID == "" {
		return nil, ErrInvalidToken
	}

	claim := &authorization.Claim{
		SubjectEmail: claims.Subject,
		Role:         role,
		TenantID:     claims.TenantID,
	}
	if claims.IssuedAt != nil {
		claim.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		claim.ExpiresAt = claims.ExpiresAt.Time
	}
	return claim, nil
}

// Refresh re-signs the claim carried by a verified token with a fresh
// default lifetime. It fails with the verification error when the input
// does not verify; it is never a way to launder an invalid credential.
func (c *Codec) Refresh(tokenString string) (string, error) {
	claim, err := c.Verify(tokenString)
	if err != nil {
		return "", fmt.Errorf("refresh: %w", err)
	}
	return c.GenerateWithTTL(claim.SubjectEmail, claim.TenantID, claim.Role, DefaultTTL)
}
