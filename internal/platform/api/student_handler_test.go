package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.classcore.tech/internal/common/repository"
	"go.classcore.tech/internal/platform/authorization"
	"go.classcore.tech/internal/platform/common"
	"go.classcore.tech/internal/school/student"
)

type fakeStudentRepo struct {
	students map[string]*student.Student
}

func newFakeStudentRepo(students ...*student.Student) *fakeStudentRepo {
	repo := &fakeStudentRepo{students: map[string]*student.Student{}}
	for _, s := range students {
		repo.students[s.ID] = s
	}
	return repo
}

func (r *fakeStudentRepo) FindAll(_ context.Context, tenantID string, _, _ int64) ([]*student.Student, error) {
	var out []*student.Student
	for _, s := range r.students {
		if s.TenantID == tenantID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeStudentRepo) FindByID(_ context.Context, tenantID, id string) (*student.Student, error) {
	s, ok := r.students[id]
	if !ok || s.TenantID != tenantID {
		return nil, repository.ErrNotFound
	}
	return s, nil
}

func (r *fakeStudentRepo) FindByEmail(_ context.Context, tenantID, email string) (*student.Student, error) {
	for _, s := range r.students {
		if s.TenantID == tenantID && s.Email == email {
			return s, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeStudentRepo) Insert(_ context.Context, s *student.Student) error {
	r.students[s.ID] = s
	return nil
}

func (r *fakeStudentRepo) Update(_ context.Context, s *student.Student) error {
	r.students[s.ID] = s
	return nil
}

func (r *fakeStudentRepo) Delete(_ context.Context, tenantID, id string) error {
	delete(r.students, id)
	return nil
}

// failingUnitOfWork rejects every commit. Successful commits require the
// MongoDB-backed unit of work, so handler tests cover the paths around it.
type failingUnitOfWork struct{}

func (failingUnitOfWork) Commit(context.Context, common.Aggregate, common.DomainEvent, any) common.Result[common.DomainEvent] {
	return common.Failure[common.DomainEvent](common.InternalError(common.ErrCodeCommitFailed, "no store in test", nil))
}

func (failingUnitOfWork) CommitDelete(context.Context, common.Aggregate, common.DomainEvent, any) common.Result[common.DomainEvent] {
	return common.Failure[common.DomainEvent](common.InternalError(common.ErrCodeCommitFailed, "no store in test", nil))
}

func (failingUnitOfWork) CommitAll(context.Context, []common.Aggregate, common.DomainEvent, any) common.Result[common.DomainEvent] {
	return common.Failure[common.DomainEvent](common.InternalError(common.ErrCodeCommitFailed, "no store in test", nil))
}

// selfOnlyAuthorizer allows a decision only when the target email matches
// the claim subject, mirroring the Self permission shape.
type selfOnlyAuthorizer struct{}

func (selfOnlyAuthorizer) Decide(_ authorization.Module, _ authorization.Action,
	claim *authorization.Claim, dctx *authorization.Context) authorization.Decision {
	if claim != nil && dctx != nil && dctx.TargetEmail == claim.SubjectEmail {
		return authorization.Decision{Allowed: true}
	}
	return authorization.Decision{Allowed: false, Reason: "not self"}
}

func studentTestServer(t *testing.T, policy Authorizer, claim *authorization.Claim, students ...*student.Student) *httptest.Server {
	t.Helper()
	gate := NewAuthGate(&fakeVerifier{claim: claim}, policy, nil)
	handler := NewStudentHandler(newFakeStudentRepo(students...), gate, failingUnitOfWork{})

	srv := httptest.NewServer(handler.Routes())
	t.Cleanup(srv.Close)
	return srv
}

func doRequest(t *testing.T, method, url string, body string) *http.Response {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer test")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

const (
	anaID   = "0c4b1c3e-9a6b-4c7d-8f2e-1a5b6c7d8e9f"
	brunoID = "7d2e9f1a-3b4c-4d5e-8a6b-0c1d2e3f4a5b"
)

func TestStudentListScopedToTenant(t *testing.T) {
	claim := &authorization.Claim{SubjectEmail: "admin@school.example", Role: authorization.RoleAdministrator, TenantID: "tenant-1"}
	srv := studentTestServer(t, &fakeAuthorizer{allowed: true}, claim,
		&student.Student{ID: anaID, TenantID: "tenant-1", Name: "Ana", Email: "ana@school.example"},
		&student.Student{ID: brunoID, TenantID: "tenant-2", Name: "Bruno", Email: "bruno@other.example"},
	)

	resp := doRequest(t, http.MethodGet, srv.URL+"/", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var listed []*student.Student
	if err := json.NewDecoder(resp.Body).Decode(&listed); err != nil {
		t.Fatal(err)
	}
	if len(listed) != 1 || listed[0].ID != anaID {
		t.Fatalf("expected only tenant-1 students, got %+v", listed)
	}
}

func TestStudentFindChecksTargetIdentity(t *testing.T) {
	claim := &authorization.Claim{SubjectEmail: "ana@school.example", Role: authorization.RoleStudent, TenantID: "tenant-1"}
	srv := studentTestServer(t, selfOnlyAuthorizer{}, claim,
		&student.Student{ID: anaID, TenantID: "tenant-1", Name: "Ana", Email: "ana@school.example"},
		&student.Student{ID: brunoID, TenantID: "tenant-1", Name: "Bruno", Email: "bruno@school.example"},
	)

	// Own record is readable.
	resp := doRequest(t, http.MethodGet, srv.URL+"/find?email=Ana@School.Example", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for own record, got %d", resp.StatusCode)
	}

	// A classmate's record is not.
	resp = doRequest(t, http.MethodGet, srv.URL+"/find?id="+brunoID, "")
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for foreign record, got %d", resp.StatusCode)
	}
}

func TestStudentFindUnknownReturnsNotFound(t *testing.T) {
	claim := &authorization.Claim{SubjectEmail: "admin@school.example", Role: authorization.RoleAdministrator, TenantID: "tenant-1"}
	srv := studentTestServer(t, &fakeAuthorizer{allowed: true}, claim)

	resp := doRequest(t, http.MethodGet, srv.URL+"/find?id="+anaID, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestStudentFindRejectsMalformedID(t *testing.T) {
	claim := &authorization.Claim{SubjectEmail: "admin@school.example", Role: authorization.RoleAdministrator, TenantID: "tenant-1"}
	srv := studentTestServer(t, &fakeAuthorizer{allowed: true}, claim)

	resp := doRequest(t, http.MethodGet, srv.URL+"/find?id=not-a-uuid", "")
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}

	var errResp ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		t.Fatal(err)
	}
	if errResp.Code != common.ErrCodeInvalidID {
		t.Errorf("expected code %s, got %s", common.ErrCodeInvalidID, errResp.Code)
	}
}

func TestStudentEnrollRejectsMissingField(t *testing.T) {
	claim := &authorization.Claim{SubjectEmail: "admin@school.example", Role: authorization.RoleAdministrator, TenantID: "tenant-1"}
	srv := studentTestServer(t, &fakeAuthorizer{allowed: true}, claim)

	resp := doRequest(t, http.MethodPost, srv.URL+"/", `{"name":"Ana"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var errResp ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		t.Fatal(err)
	}
	if errResp.Code != common.ErrCodeRequired {
		t.Errorf("expected code %s, got %s", common.ErrCodeRequired, errResp.Code)
	}
}

func TestStudentRoutesRequireCredential(t *testing.T) {
	gate := NewAuthGate(&fakeVerifier{}, &fakeAuthorizer{allowed: true}, nil)
	handler := NewStudentHandler(newFakeStudentRepo(), gate, failingUnitOfWork{})
	srv := httptest.NewServer(handler.Routes())
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without credential, got %d", resp.StatusCode)
	}
}
