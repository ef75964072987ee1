package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"go.classcore.tech/internal/common/repository"
)

func TestErrorKindHTTPStatus(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want int
	}{
		{ErrorKindBadRequest, http.StatusBadRequest},
		{ErrorKindValidation, http.StatusUnprocessableEntity},
		{ErrorKindNotFound, http.StatusNotFound},
		{ErrorKindConflict, http.StatusConflict},
		{ErrorKindUnauthorized, http.StatusUnauthorized},
		{ErrorKindForbidden, http.StatusForbidden},
		{ErrorKindIntegration, http.StatusServiceUnavailable},
		{ErrorKindInternal, http.StatusInternalServerError},
		{ErrorKind(99), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := tt.kind.HTTPStatus(); got != tt.want {
			t.Errorf("%s.HTTPStatus() = %d, want %d", tt.kind, got, tt.want)
		}
	}
}

func TestUseCaseErrorError(t *testing.T) {
	err := ValidationError(ErrCodeInvalidEmail, "Email is malformed", nil)
	want := "[VALIDATION] INVALID_EMAIL: Email is malformed"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if err.HTTPStatus() != http.StatusUnprocessableEntity {
		t.Errorf("HTTPStatus() = %d, want 422", err.HTTPStatus())
	}
}

func TestWithDetail(t *testing.T) {
	err := BadRequestError(ErrCodeRequired, "Field is required", nil).
		WithDetail("field", "email")
	if err.Details["field"] != "email" {
		t.Errorf("Details[field] = %v, want email", err.Details["field"])
	}
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"tagged passes through", ForbiddenError(ErrCodeAccessDenied, "denied", nil), ErrorKindForbidden},
		{"wrapped tagged", fmt.Errorf("commit: %w", ConflictError(ErrCodeAlreadyExists, "dup", nil)), ErrorKindConflict},
		{"repo not found", repository.ErrNotFound, ErrorKindNotFound},
		{"repo duplicate", fmt.Errorf("insert: %w", repository.ErrDuplicateKey), ErrorKindConflict},
		{"repo optimistic lock", repository.ErrOptimisticLock, ErrorKindConflict},
		{"json syntax", &json.SyntaxError{}, ErrorKindBadRequest},
		{"unknown", errors.New("boom"), ErrorKindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromError(tt.err)
			if got.Kind != tt.want {
				t.Errorf("FromError() kind = %s, want %s", got.Kind, tt.want)
			}
		})
	}

	if FromError(nil) != nil {
		t.Error("FromError(nil) != nil")
	}
}
