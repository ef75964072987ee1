// Package validation provides the declarative structural request validator
// that gates use cases before any business logic runs.
//
// One Schema value is declared per entity module, carrying its per-action
// field lists. The per-operation-kind behavior lives here once, so the
// CRUD modules never duplicate validation branches.
//
// The 400-versus-422 split is owned by this package: presence and
// shape-of-request problems are bad requests, field-level format
// violations (id, email, number) are validation errors.
package validation

import (
	"fmt"
	"net/mail"
	"strconv"

	"github.com/google/uuid"

	"go.classcore.tech/internal/platform/authorization"
	"go.classcore.tech/internal/platform/common"
)

// Schema declares the structural rules for one entity module.
type Schema struct {
	// Module the schema belongs to, for error details and logging.
	Module authorization.Module

	// Fields lists, per action, the declared field names:
	// required fields for create/add/remove, updatable fields for update.
	Fields map[authorization.Action][]string

	// UpdateObject optionally names a nested object whose members count
	// as updatable fields (the authentication module wraps them in
	// "dataToUpdate").
	UpdateObject string
}

// Validate checks the structural shape of a payload for one operation
// kind. It returns nil when the payload passes, or a tagged error naming
// the offending field.
func (s Schema) Validate(action authorization.Action, payload map[string]any) *common.UseCaseError {
	switch action {
	case authorization.ActionFindAll:
		return s.validateFindAll(payload)
	case authorization.ActionFind, authorization.ActionDelete:
		return s.validateIdentity(payload)
	case authorization.ActionCreate:
		return s.validateRequired(action, payload)
	case authorization.ActionUpdate:
		return s.validateUpdate(payload)
	case authorization.ActionAdd, authorization.ActionRemove:
		return s.validateMembership(action, payload)
	default:
		return common.BadRequestError(common.ErrCodeBadRequest,
			fmt.Sprintf("Unsupported operation kind: %s", action), nil)
	}
}

// validateFindAll accepts optional offset/quantity paging parameters,
// which must parse as numbers when present.
func (s Schema) validateFindAll(payload map[string]any) *common.UseCaseError {
	for _, field := range []string{"offset", "quantity"} {
		v, ok := payload[field]
		if !ok || v == nil {
			continue
		}
		if !isNumeric(v) {
			return common.ValidationError(common.ErrCodeNotNumeric,
				fmt.Sprintf("Field %q must be a number", field),
				map[string]any{"field": field})
		}
	}
	return nil
}

// validateIdentity requires exactly one identity parameter among id and
// email, and checks the format of whichever is present.
func (s Schema) validateIdentity(payload map[string]any) *common.UseCaseError {
	hasID := isPresent(payload, "id")
	hasEmail := isPresent(payload, "email")

	if !hasID && !hasEmail {
		return common.BadRequestError(common.ErrCodeRequired,
			"Either id or email is required",
			map[string]any{"fields": []string{"id", "email"}})
	}
	if hasID && hasEmail {
		return common.BadRequestError(common.ErrCodeBadRequest,
			"Provide exactly one of id or email",
			map[string]any{"fields": []string{"id", "email"}})
	}

	if hasID {
		return checkID(payload["id"])
	}
	return checkEmail(payload["email"])
}

// validateRequired checks that every declared field is present. Deeper
// type validation is delegated to entity construction.
func (s Schema) validateRequired(action authorization.Action, payload map[string]any) *common.UseCaseError {
	for _, field := range s.Fields[action] {
		if !isPresent(payload, field) {
			return common.BadRequestError(common.ErrCodeRequired,
				fmt.Sprintf("Field %q is required", field),
				map[string]any{"field": field})
		}
	}
	return nil
}

// validateUpdate requires a well-formed target identity plus at least one
// updatable field, either top-level or inside the nested update object.
func (s Schema) validateUpdate(payload map[string]any) *common.UseCaseError {
	hasID := isPresent(payload, "id")
	hasEmail := isPresent(payload, "email")

	if !hasID && !hasEmail {
		return common.BadRequestError(common.ErrCodeRequired,
			"Either id or email is required",
			map[string]any{"fields": []string{"id", "email"}})
	}
	if hasID {
		if err := checkID(payload["id"]); err != nil {
			return err
		}
	} else if err := checkEmail(payload["email"]); err != nil {
		return err
	}

	updatable := payload
	if s.UpdateObject != "" {
		nested, ok := payload[s.UpdateObject].(map[string]any)
		if !ok {
			return common.BadRequestError(common.ErrCodeNoUpdatable,
				"no updatable field provided",
				map[string]any{"field": s.UpdateObject})
		}
		updatable = nested
	}

	for _, field := range s.Fields[authorization.ActionUpdate] {
		if isPresent(updatable, field) {
			return nil
		}
	}
	return common.BadRequestError(common.ErrCodeNoUpdatable,
		"no updatable field provided",
		map[string]any{"updatable": s.Fields[authorization.ActionUpdate]})
}

// validateMembership checks add/remove payloads: every declared field is
// present, an id field is well-formed, every other declared field is an
// array of members.
func (s Schema) validateMembership(action authorization.Action, payload map[string]any) *common.UseCaseError {
	for _, field := range s.Fields[action] {
		if !isPresent(payload, field) {
			return common.BadRequestError(common.ErrCodeRequired,
				fmt.Sprintf("Field %q is required", field),
				map[string]any{"field": field})
		}
		if field == "id" {
			if err := checkID(payload["id"]); err != nil {
				return err
			}
			continue
		}
		if !isArray(payload[field]) {
			return common.BadRequestError(common.ErrCodeNotArray,
				fmt.Sprintf("Field %q must be an array", field),
				map[string]any{"field": field})
		}
	}
	return nil
}

func checkID(v any) *common.UseCaseError {
	s, ok := v.(string)
	if !ok {
		return common.ValidationError(common.ErrCodeInvalidID,
			"Field \"id\" must be a UUID string",
			map[string]any{"field": "id"})
	}
	if _, err := uuid.Parse(s); err != nil {
		return common.ValidationError(common.ErrCodeInvalidID,
			"Field \"id\" is not a well-formed UUID",
			map[string]any{"field": "id"})
	}
	return nil
}

func checkEmail(v any) *common.UseCaseError {
	s, ok := v.(string)
	if !ok {
		return common.ValidationError(common.ErrCodeInvalidEmail,
			"Field \"email\" must be a string",
			map[string]any{"field": "email"})
	}
	if _, err := mail.ParseAddress(s); err != nil {
		return common.ValidationError(common.ErrCodeInvalidEmail,
			"Field \"email\" is not a well-formed address",
			map[string]any{"field": "email"})
	}
	return nil
}

// isPresent reports whether a field exists with a usable value. An empty
// string counts as absent: form-style clients send "" for blank inputs.
func isPresent(payload map[string]any, field string) bool {
	v, ok := payload[field]
	if !ok || v == nil {
		return false
	}
	if s, ok := v.(string); ok && s == "" {
		return false
	}
	return true
}

// isNumeric accepts JSON numbers and numeric strings (query parameters
// arrive as strings).
func isNumeric(v any) bool {
	switch n := v.(type) {
	case float64, float32, int, int32, int64, uint, uint32, uint64:
		return true
	case string:
		_, err := strconv.ParseFloat(n, 64)
		return err == nil
	default:
		return false
	}
}

// isArray accepts JSON arrays and typed slices.
func isArray(v any) bool {
	switch v.(type) {
	case []any, []string:
		return true
	default:
		return false
	}
}
