package validation

import (
	"testing"

	"go.classcore.tech/internal/platform/authorization"
	"go.classcore.tech/internal/platform/common"
)

func studentSchema() Schema {
	return Schema{
		Module: authorization.ModuleStudent,
		Fields: map[authorization.Action][]string{
			authorization.ActionCreate: {"name", "email", "password", "classroom"},
			authorization.ActionUpdate: {"name", "classroom", "guardianPhone"},
		},
	}
}

func lessonSchema() Schema {
	return Schema{
		Module: authorization.ModuleLesson,
		Fields: map[authorization.Action][]string{
			authorization.ActionAdd:    {"id", "students"},
			authorization.ActionRemove: {"id", "students"},
		},
	}
}

func authSchema() Schema {
	return Schema{
		Module:       authorization.ModuleAuthentication,
		UpdateObject: "dataToUpdate",
		Fields: map[authorization.Action][]string{
			authorization.ActionUpdate: {"name", "password"},
		},
	}
}

const wellFormedID = "5f9b2c4e-8a1d-4f3b-9c6e-7d2a8b4f1e3c"

func TestValidateFindAll(t *testing.T) {
	schema := studentSchema()

	cases := []struct {
		name     string
		payload  map[string]any
		wantKind common.ErrorKind
		wantOK   bool
	}{
		{"no paging params", map[string]any{}, 0, true},
		{"numeric strings", map[string]any{"offset": "5", "quantity": "20"}, 0, true},
		{"json numbers", map[string]any{"offset": float64(5), "quantity": float64(20)}, 0, true},
		{"non-numeric offset", map[string]any{"offset": "abc"}, common.ErrorKindValidation, false},
		{"non-numeric quantity", map[string]any{"quantity": "many"}, common.ErrorKindValidation, false},
		{"boolean offset", map[string]any{"offset": true}, common.ErrorKindValidation, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := schema.Validate(authorization.ActionFindAll, tc.payload)
			if tc.wantOK {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if err.Kind != tc.wantKind {
				t.Errorf("Kind = %v, want %v", err.Kind, tc.wantKind)
			}
			if err.Code != common.ErrCodeNotNumeric {
				t.Errorf("Code = %q, want %q", err.Code, common.ErrCodeNotNumeric)
			}
		})
	}
}

func TestValidateIdentity(t *testing.T) {
	schema := studentSchema()

	for _, action := range []authorization.Action{authorization.ActionFind, authorization.ActionDelete} {
		t.Run(string(action), func(t *testing.T) {
			cases := []struct {
				name     string
				payload  map[string]any
				wantKind common.ErrorKind
				wantCode string
				wantOK   bool
			}{
				{"by id", map[string]any{"id": wellFormedID}, 0, "", true},
				{"by email", map[string]any{"email": "ana@school.example"}, 0, "", true},
				{"neither", map[string]any{}, common.ErrorKindBadRequest, common.ErrCodeRequired, false},
				{"both", map[string]any{"id": wellFormedID, "email": "ana@school.example"}, common.ErrorKindBadRequest, common.ErrCodeBadRequest, false},
				{"malformed id", map[string]any{"id": "not-a-uuid"}, common.ErrorKindValidation, common.ErrCodeInvalidID, false},
				{"malformed email", map[string]any{"email": "not an address"}, common.ErrorKindValidation, common.ErrCodeInvalidEmail, false},
				{"non-string id", map[string]any{"id": float64(12)}, common.ErrorKindValidation, common.ErrCodeInvalidID, false},
			}

			for _, tc := range cases {
				t.Run(tc.name, func(t *testing.T) {
					err := schema.Validate(action, tc.payload)
					if tc.wantOK {
						if err != nil {
							t.Fatalf("Validate() = %v, want nil", err)
						}
						return
					}
					if err == nil {
						t.Fatal("Validate() = nil, want error")
					}
					if err.Kind != tc.wantKind || err.Code != tc.wantCode {
						t.Errorf("got (%v, %q), want (%v, %q)", err.Kind, err.Code, tc.wantKind, tc.wantCode)
					}
				})
			}
		})
	}
}

func TestValidateCreate(t *testing.T) {
	schema := studentSchema()

	full := map[string]any{
		"name": "Ana", "email": "ana@school.example",
		"password": "s3cret", "classroom": "5B",
	}
	if err := schema.Validate(authorization.ActionCreate, full); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	for _, missing := range []string{"name", "email", "password", "classroom"} {
		t.Run("missing "+missing, func(t *testing.T) {
			payload := map[string]any{}
			for k, v := range full {
				if k != missing {
					payload[k] = v
				}
			}
			err := schema.Validate(authorization.ActionCreate, payload)
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if err.Kind != common.ErrorKindBadRequest || err.Code != common.ErrCodeRequired {
				t.Errorf("got (%v, %q), want (BadRequest, %q)", err.Kind, err.Code, common.ErrCodeRequired)
			}
		})
	}

	t.Run("empty string counts as absent", func(t *testing.T) {
		payload := map[string]any{
			"name": "", "email": "ana@school.example",
			"password": "s3cret", "classroom": "5B",
		}
		if err := schema.Validate(authorization.ActionCreate, payload); err == nil {
			t.Fatal("Validate() = nil, want error")
		}
	})
}

func TestValidateUpdate(t *testing.T) {
	schema := studentSchema()

	cases := []struct {
		name     string
		payload  map[string]any
		wantKind common.ErrorKind
		wantCode string
		wantOK   bool
	}{
		{"id plus one field", map[string]any{"id": wellFormedID, "classroom": "6A"}, 0, "", true},
		{"email plus one field", map[string]any{"email": "ana@school.example", "name": "Ana Maria"}, 0, "", true},
		{"no identity", map[string]any{"name": "Ana"}, common.ErrorKindBadRequest, common.ErrCodeRequired, false},
		{"well-formed id, nothing updatable", map[string]any{"id": wellFormedID}, common.ErrorKindBadRequest, common.ErrCodeNoUpdatable, false},
		{"undeclared field only", map[string]any{"id": wellFormedID, "shoeSize": 42}, common.ErrorKindBadRequest, common.ErrCodeNoUpdatable, false},
		{"malformed id", map[string]any{"id": "nope", "name": "Ana"}, common.ErrorKindValidation, common.ErrCodeInvalidID, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := schema.Validate(authorization.ActionUpdate, tc.payload)
			if tc.wantOK {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if err.Kind != tc.wantKind || err.Code != tc.wantCode {
				t.Errorf("got (%v, %q), want (%v, %q)", err.Kind, err.Code, tc.wantKind, tc.wantCode)
			}
		})
	}
}

func TestValidateUpdateNestedObject(t *testing.T) {
	schema := authSchema()

	ok := map[string]any{
		"email":        "ana@school.example",
		"dataToUpdate": map[string]any{"name": "Ana Maria"},
	}
	if err := schema.Validate(authorization.ActionUpdate, ok); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	empty := map[string]any{
		"email":        "ana@school.example",
		"dataToUpdate": map[string]any{},
	}
	if err := schema.Validate(authorization.ActionUpdate, empty); err == nil {
		t.Fatal("Validate() accepted an empty update object")
	}

	missing := map[string]any{"email": "ana@school.example"}
	err := schema.Validate(authorization.ActionUpdate, missing)
	if err == nil {
		t.Fatal("Validate() accepted a payload without the update object")
	}
	if err.Code != common.ErrCodeNoUpdatable {
		t.Errorf("Code = %q, want %q", err.Code, common.ErrCodeNoUpdatable)
	}
}

func TestValidateMembership(t *testing.T) {
	schema := lessonSchema()

	for _, action := range []authorization.Action{authorization.ActionAdd, authorization.ActionRemove} {
		t.Run(string(action), func(t *testing.T) {
			cases := []struct {
				name     string
				payload  map[string]any
				wantKind common.ErrorKind
				wantCode string
				wantOK   bool
			}{
				{"well-formed", map[string]any{"id": wellFormedID, "students": []any{"a", "b"}}, 0, "", true},
				{"typed slice", map[string]any{"id": wellFormedID, "students": []string{"a"}}, 0, "", true},
				{"missing id", map[string]any{"students": []any{"a"}}, common.ErrorKindBadRequest, common.ErrCodeRequired, false},
				{"missing members", map[string]any{"id": wellFormedID}, common.ErrorKindBadRequest, common.ErrCodeRequired, false},
				{"malformed id", map[string]any{"id": "nope", "students": []any{"a"}}, common.ErrorKindValidation, common.ErrCodeInvalidID, false},
				{"members not an array", map[string]any{"id": wellFormedID, "students": "a"}, common.ErrorKindBadRequest, common.ErrCodeNotArray, false},
			}

			for _, tc := range cases {
				t.Run(tc.name, func(t *testing.T) {
					err := schema.Validate(action, tc.payload)
					if tc.wantOK {
						if err != nil {
							t.Fatalf("Validate() = %v, want nil", err)
						}
						return
					}
					if err == nil {
						t.Fatal("Validate() = nil, want error")
					}
					if err.Kind != tc.wantKind || err.Code != tc.wantCode {
						t.Errorf("got (%v, %q), want (%v, %q)", err.Kind, err.Code, tc.wantKind, tc.wantCode)
					}
				})
			}
		})
	}
}
