package common

import (
	"context"
	"net/http"
	"time"

	"go.classcore.tech/internal/common/tsid"
)

type contextKey string

const (
	correlationIDKey contextKey = "correlationID"
	executionCtxKey  contextKey = "executionContext"
)

// HTTP header names for request tracing.
const (
	HeaderCorrelationID = "X-Correlation-ID"
	HeaderRequestID     = "X-Request-ID"
)

// ExecutionContext carries the identity and tracing metadata for one use
// case execution. It is built by the gate after the credential has been
// verified; downstream code treats it as the only source of the acting
// principal and tenant.
type ExecutionContext struct {
	// ExecutionID is generated fresh per invocation.
	ExecutionID string

	// CorrelationID ties together every record produced for one request,
	// propagated from the client header when present.
	CorrelationID string

	// PrincipalEmail is the verified subject of the acting credential.
	// Empty for unauthenticated bootstrap operations.
	PrincipalEmail string

	// TenantID is the school the execution is scoped to, taken from the
	// verified claim, never from the request payload.
	TenantID string

	InitiatedAt time.Time
}

// NewExecutionContext creates an execution context for a fresh invocation
// with no incoming trace headers.
func NewExecutionContext(principalEmail, tenantID string) *ExecutionContext {
	execID := "exec-" + tsid.Generate()
	return &ExecutionContext{
		ExecutionID:    execID,
		CorrelationID:  execID,
		PrincipalEmail: principalEmail,
		TenantID:       tenantID,
		InitiatedAt:    time.Now(),
	}
}

// ExecutionContextFromRequest builds an execution context from an HTTP
// request, honoring incoming correlation headers.
func ExecutionContextFromRequest(r *http.Request, principalEmail, tenantID string) *ExecutionContext {
	execID := "exec-" + tsid.Generate()

	correlationID := r.Header.Get(HeaderCorrelationID)
	if correlationID == "" {
		correlationID = r.Header.Get(HeaderRequestID)
	}
	if correlationID == "" {
		correlationID = execID
	}

	return &ExecutionContext{
		ExecutionID:    execID,
		CorrelationID:  correlationID,
		PrincipalEmail: principalEmail,
		TenantID:       tenantID,
		InitiatedAt:    time.Now(),
	}
}

// ToContext stores the execution context in a Go context.
func (ec *ExecutionContext) ToContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, executionCtxKey, ec)
}

// ExecutionContextFromContext extracts the execution context, or nil.
func ExecutionContextFromContext(ctx context.Context) *ExecutionContext {
	if ec, ok := ctx.Value(executionCtxKey).(*ExecutionContext); ok {
		return ec
	}
	return nil
}

// WithCorrelationID adds a bare correlation ID to a context, for paths
// that have no full execution context (health checks, startup probes).
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, correlationIDKey, correlationID)
}

// CorrelationIDFromContext extracts the correlation ID from a context,
// falling back to the execution context when present.
func CorrelationIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(correlationIDKey).(string); ok {
		return id
	}
	if ec := ExecutionContextFromContext(ctx); ec != nil {
		return ec.CorrelationID
	}
	return ""
}
