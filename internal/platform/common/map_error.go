package common

import (
	"encoding/json"
	"errors"
	"strconv"

	"go.classcore.tech/internal/common/repository"
)

// FromError normalizes any error into a tagged UseCaseError.
//
// Tagged errors pass through unchanged. Recognized infrastructure
// sentinels are mapped to their kind; recognized parse failures become
// bad requests; everything else is an internal error. Use cases below the
// perimeter may return raw repository errors and still reach the client
// with a uniform HTTP surface.
func FromError(err error) *UseCaseError {
	if err == nil {
		return nil
	}

	if uce, ok := AsUseCaseError(err); ok {
		return uce
	}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		return NotFoundError(ErrCodeEntityNotFound, "Entity not found", nil)
	case errors.Is(err, repository.ErrDuplicateKey):
		return ConflictError(ErrCodeAlreadyExists, "Entity already exists", nil)
	case errors.Is(err, repository.ErrOptimisticLock):
		return ConflictError(ErrCodeInvalidState, "Entity was modified concurrently", nil)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var numErr *strconv.NumError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.As(err, &numErr) {
		return BadRequestError(ErrCodeBadRequest, "Malformed request", nil)
	}

	return InternalError("INTERNAL_ERROR", "Internal error", nil)
}
