package authorization

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Denial reasons. These are surfaced to logs and, as an opaque message, to
// callers. They never enumerate the permission matrix itself.
const (
	ReasonAuthenticationRequired = "authentication required"
	ReasonModuleNotAccessible    = "module not accessible for role"
	ReasonActionNotPermitted     = "action not permitted for role in module"
	ReasonExplicitlyDenied       = "explicitly denied for role"
	ReasonSelfOnly               = "self-only permission"
	ReasonTargetIsTenantOwner    = "target is tenant-owner"
	ReasonUnknownPermission      = "unknown permission type"
)

var decisionTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "classcore",
		Subsystem: "authz",
		Name:      "decisions_total",
		Help:      "Authorization decisions by role, module, action and outcome",
	},
	[]string{"role", "module", "action", "outcome"},
)

// Decision is the outcome of a policy evaluation. Expected denials are
// values, not errors: callers branch on Allowed instead of catching.
type Decision struct {
	Allowed bool
	Reason  string
}

// Allowed is the positive decision.
func Allowed() Decision {
	return Decision{Allowed: true}
}

// Denied creates a negative decision with a reason.
func Denied(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Context carries the contextual target data some permission variants need:
// Self compares TargetEmail against the caller, ExceptTenantOwner inspects
// TargetRole. It may be nil when the operation has no target identity.
type Context struct {
	TargetEmail string
	TargetRole  Role
}

// Engine evaluates access decisions against an immutable policy matrix.
// Decide is a pure function of (claim, module, action, context): two
// concurrent calls with the same inputs always produce the same decision.
type Engine struct {
	matrix Matrix
	logger *slog.Logger
}

// NewEngine validates the matrix and returns an engine sharing it by
// reference. The matrix must not be modified after this call.
func NewEngine(matrix Matrix, logger *slog.Logger) (*Engine, error) {
	if err := matrix.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{matrix: matrix, logger: logger}, nil
}

// Decide evaluates whether the caller may perform action on module.
//
// The order is fixed:
//  1. No claim: only the bootstrap registration of a first tenant-owner
//     (authentication/create with target role tenant-owner) passes.
//  2. Tenant-owner bypasses the matrix inside its own tenant.
//  3. Matrix lookup by (role, module), then action.
//  4. Dispatch on the permission variant.
func (e *Engine) Decide(module Module, action Action, claim *Claim, dctx *Context) Decision {
	d := e.decide(module, action, claim, dctx)
	e.observe(module, action, claim, d)
	return d
}

func (e *Engine) decide(module Module, action Action, claim *Claim, dctx *Context) Decision {
	if claim == nil {
		if module == ModuleAuthentication && action == ActionCreate &&
			dctx != nil && dctx.TargetRole == RoleTenantOwner {
			return Allowed()
		}
		return Denied(ReasonAuthenticationRequired)
	}

	if claim.Role == RoleTenantOwner {
		return Allowed()
	}

	perm, moduleKnown, actionKnown := e.matrix.lookup(claim.Role, module, action)
	if !moduleKnown {
		return Denied(ReasonModuleNotAccessible)
	}
	if !actionKnown {
		return Denied(ReasonActionNotPermitted)
	}

	switch perm.(type) {
	case allowPermission:
		return Allowed()
	case denyPermission:
		return Denied(ReasonExplicitlyDenied)
	case selfPermission:
		if dctx != nil && dctx.TargetEmail == claim.SubjectEmail {
			return Allowed()
		}
		return Denied(ReasonSelfOnly)
	case exceptTenantOwnerPermission:
		if dctx != nil && dctx.TargetRole == RoleTenantOwner {
			return Denied(ReasonTargetIsTenantOwner)
		}
		return Allowed()
	default:
		// Unreachable while Permission stays sealed. Deny anyway.
		return Denied(ReasonUnknownPermission)
	}
}

func (e *Engine) observe(module Module, action Action, claim *Claim, d Decision) {
	role := "anonymous"
	if claim != nil {
		role = string(claim.Role)
	}
	outcome := "deny"
	if d.Allowed {
		outcome = "allow"
	}
	decisionTotal.WithLabelValues(role, string(module), string(action), outcome).Inc()

	if !d.Allowed {
		e.logger.Debug("access denied",
			"role", role,
			"module", module,
			"action", action,
			"reason", d.Reason)
	}
}
