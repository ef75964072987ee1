// Package api is the HTTP perimeter: chi handlers, the authorization
// gate and the response envelope shared by every endpoint.
package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"go.classcore.tech/internal/platform/authorization"
	"go.classcore.tech/internal/platform/common"
	"go.classcore.tech/internal/platform/validation"
)

// maxBodyBytes caps request bodies. School payloads are small.
const maxBodyBytes = 1 << 20

// ErrorResponse is the error envelope returned by every endpoint.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// WriteJSON writes a JSON response.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// WriteError maps a tagged use case error onto its HTTP status.
func WriteError(w http.ResponseWriter, uce *common.UseCaseError) {
	WriteJSON(w, uce.HTTPStatus(), ErrorResponse{
		Code:    uce.Code,
		Message: uce.Message,
		Details: uce.Details,
	})
}

// writeStatusError writes an error envelope with an explicit status.
func writeStatusError(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// WriteResult writes the committed event on success or the mapped error.
func WriteResult[T any](w http.ResponseWriter, result common.Result[T], successStatus int) {
	if result.IsFailure() {
		WriteError(w, result.Error())
		return
	}
	WriteJSON(w, successStatus, result.Value())
}

// decodeValidated reads the request body once, checks it against the
// module schema for the given operation kind, and unmarshals it into
// the command. Validation runs on the raw payload so missing and
// malformed fields are caught before any typed decoding.
func decodeValidated(r *http.Request, schema validation.Schema, action authorization.Action, cmd any) *common.UseCaseError {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return common.BadRequestError(common.ErrCodeBadRequest, "Failed to read request body", nil)
	}

	payload := map[string]any{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &payload); err != nil {
			return common.BadRequestError(common.ErrCodeBadRequest, "Invalid JSON body", nil)
		}
	}

	if uce := schema.Validate(action, payload); uce != nil {
		return uce
	}

	if cmd != nil && len(body) > 0 {
		if err := json.Unmarshal(body, cmd); err != nil {
			return common.BadRequestError(common.ErrCodeBadRequest, "Invalid request body", nil)
		}
	}
	return nil
}

// decodeValidatedWithID behaves like decodeValidated but merges the
// path id into the payload first, for operations that identify their
// aggregate through the URL.
func decodeValidatedWithID(r *http.Request, schema validation.Schema, action authorization.Action, id string, cmd any) *common.UseCaseError {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return common.BadRequestError(common.ErrCodeBadRequest, "Failed to read request body", nil)
	}

	payload := map[string]any{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &payload); err != nil {
			return common.BadRequestError(common.ErrCodeBadRequest, "Invalid JSON body", nil)
		}
	}
	payload["id"] = id

	if uce := schema.Validate(action, payload); uce != nil {
		return uce
	}

	if cmd != nil && len(body) > 0 {
		if err := json.Unmarshal(body, cmd); err != nil {
			return common.BadRequestError(common.ErrCodeBadRequest, "Invalid request body", nil)
		}
	}
	return nil
}

// decodePayload reads and validates the body, returning the raw
// payload map for handlers that work on untyped documents.
func decodePayload(r *http.Request, schema validation.Schema, action authorization.Action) (map[string]any, *common.UseCaseError) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, common.BadRequestError(common.ErrCodeBadRequest, "Failed to read request body", nil)
	}

	payload := map[string]any{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, common.BadRequestError(common.ErrCodeBadRequest, "Invalid JSON body", nil)
		}
	}

	if uce := schema.Validate(action, payload); uce != nil {
		return nil, uce
	}
	return payload, nil
}

// decodePayloadWithID is decodePayload with the path id merged in.
func decodePayloadWithID(r *http.Request, schema validation.Schema, action authorization.Action, id string) (map[string]any, *common.UseCaseError) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, common.BadRequestError(common.ErrCodeBadRequest, "Failed to read request body", nil)
	}

	payload := map[string]any{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, common.BadRequestError(common.ErrCodeBadRequest, "Invalid JSON body", nil)
		}
	}
	payload["id"] = id

	if uce := schema.Validate(action, payload); uce != nil {
		return nil, uce
	}
	return payload, nil
}

// queryPayload lifts query parameters into a validation payload for the
// body-less operation kinds (find, findAll, delete).
func queryPayload(r *http.Request, keys ...string) map[string]any {
	payload := map[string]any{}
	for _, key := range keys {
		if value := r.URL.Query().Get(key); value != "" {
			payload[key] = value
		}
	}
	return payload
}

// pagination extracts the offset/quantity window, defaulting to the
// first 50 entries.
func pagination(r *http.Request) (offset, quantity int64) {
	offset, quantity = 0, 50
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n >= 0 {
			offset = n
		}
	}
	if raw := r.URL.Query().Get("quantity"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 && n <= 500 {
			quantity = n
		}
	}
	return offset, quantity
}
