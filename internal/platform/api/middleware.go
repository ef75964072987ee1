package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"go.classcore.tech/internal/platform/auth/token"
	"go.classcore.tech/internal/platform/authorization"
)

// Verifier decodes and checks a request credential.
type Verifier interface {
	Verify(tokenString string) (*authorization.Claim, error)
}

// Authorizer evaluates access decisions. Satisfied by the policy engine;
// tests substitute a fake.
type Authorizer interface {
	Decide(module authorization.Module, action authorization.Action,
		claim *authorization.Claim, dctx *authorization.Context) authorization.Decision
}

type claimContextKey struct{}

// AuthGate is the authorization perimeter for every protected route:
// credential verification first, then a policy decision. Denials are
// opaque; the reason goes to the debug log, not the response.
type AuthGate struct {
	tokens Verifier
	policy Authorizer
	logger *slog.Logger
}

func NewAuthGate(tokens Verifier, policy Authorizer, logger *slog.Logger) *AuthGate {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthGate{tokens: tokens, policy: policy, logger: logger}
}

// RequireClaim rejects requests without a valid bearer credential and
// stashes the verified claim in the request context.
func (g *AuthGate) RequireClaim(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			writeStatusError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			return
		}

		claim, err := g.tokens.Verify(raw)
		if err != nil {
			g.writeVerifyError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(withClaim(r.Context(), claim)))
	})
}

// OptionalClaim stashes a claim when a valid credential is present and
// lets anonymous requests through. The bootstrap registration of a new
// school is the only operation that relies on this.
func (g *AuthGate) OptionalClaim(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if raw := bearerToken(r); raw != "" {
			claim, err := g.tokens.Verify(raw)
			if err != nil {
				// A presented-but-bad credential is rejected, not ignored.
				g.writeVerifyError(w, err)
				return
			}
			r = r.WithContext(withClaim(r.Context(), claim))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole narrows a route to an allow-list of roles, independent of
// the policy matrix. Runs after RequireClaim.
func (g *AuthGate) RequireRole(roles ...authorization.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claim := ClaimFrom(r.Context())
			if claim == nil {
				writeStatusError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
				return
			}
			for _, role := range roles {
				if claim.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			g.logger.Debug("role not in allow-list",
				"role", claim.Role, "subject", claim.SubjectEmail)
			writeStatusError(w, http.StatusForbidden, "ACCESS_DENIED", "Access denied")
		})
	}
}

// Require guards a route with a policy decision that needs no target
// identity. Operations whose permission may be Self or ExceptTenantOwner
// must use Check in the handler instead, with the target filled in.
func (g *AuthGate) Require(module authorization.Module, action authorization.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !g.Check(w, r, module, action, nil) {
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Check evaluates a policy decision and writes the denial response when
// access is refused. Returns true when the request may proceed.
func (g *AuthGate) Check(w http.ResponseWriter, r *http.Request,
	module authorization.Module, action authorization.Action, dctx *authorization.Context) bool {

	claim := ClaimFrom(r.Context())
	decision := g.policy.Decide(module, action, claim, dctx)
	if decision.Allowed {
		return true
	}

	if claim == nil {
		writeStatusError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return false
	}
	writeStatusError(w, http.StatusForbidden, "ACCESS_DENIED", "Access denied")
	return false
}

func (g *AuthGate) writeVerifyError(w http.ResponseWriter, err error) {
	code := "INVALID_TOKEN"
	if errors.Is(err, token.ErrExpiredToken) {
		code = "TOKEN_EXPIRED"
	}
	g.logger.Debug("credential rejected", "error", err)
	writeStatusError(w, http.StatusUnauthorized, code, "Invalid or expired credential")
}

// ClaimFrom returns the verified claim stashed by the gate, or nil for
// an anonymous request.
func ClaimFrom(ctx context.Context) *authorization.Claim {
	claim, _ := ctx.Value(claimContextKey{}).(*authorization.Claim)
	return claim
}

func withClaim(ctx context.Context, claim *authorization.Claim) context.Context {
	return context.WithValue(ctx, claimContextKey{}, claim)
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
