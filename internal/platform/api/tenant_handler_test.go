package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.classcore.tech/internal/common/repository"
	"go.classcore.tech/internal/platform/authorization"
	"go.classcore.tech/internal/platform/common"
	"go.classcore.tech/internal/school/tenant"
)

const testTenantID = "3f8a5c2d-6b1e-4f7a-9c0d-2e4b6a8c1d3f"

type fakeTenantRepo struct {
	tenants map[string]*tenant.Tenant
}

func newFakeTenantRepo(tenants ...*tenant.Tenant) *fakeTenantRepo {
	repo := &fakeTenantRepo{tenants: map[string]*tenant.Tenant{}}
	for _, t := range tenants {
		repo.tenants[t.ID] = t
	}
	return repo
}

func (r *fakeTenantRepo) FindByID(_ context.Context, id string) (*tenant.Tenant, error) {
	t, ok := r.tenants[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return t, nil
}

func (r *fakeTenantRepo) Insert(_ context.Context, t *tenant.Tenant) error {
	r.tenants[t.ID] = t
	return nil
}

func (r *fakeTenantRepo) Update(_ context.Context, t *tenant.Tenant) error {
	r.tenants[t.ID] = t
	return nil
}

func (r *fakeTenantRepo) Delete(_ context.Context, id string) error {
	delete(r.tenants, id)
	return nil
}

func tenantTestServer(t *testing.T, claim *authorization.Claim) *httptest.Server {
	t.Helper()
	gate := NewAuthGate(&fakeVerifier{claim: claim}, &fakeAuthorizer{allowed: true}, nil)
	handler := NewTenantHandler(newFakeTenantRepo(
		&tenant.Tenant{ID: testTenantID, Name: "Springfield Elementary", OwnerEmail: "owner@school.example"},
	), gate, failingUnitOfWork{})

	srv := httptest.NewServer(handler.Routes())
	t.Cleanup(srv.Close)
	return srv
}

func ownerClaim() *authorization.Claim {
	return &authorization.Claim{
		SubjectEmail: "owner@school.example",
		Role:         authorization.RoleTenantOwner,
		TenantID:     testTenantID,
	}
}

func TestTenantShowReturnsOwnSchool(t *testing.T) {
	srv := tenantTestServer(t, ownerClaim())

	resp := doRequest(t, http.MethodGet, srv.URL+"/", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var got tenant.Tenant
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.ID != testTenantID || got.Name != "Springfield Elementary" {
		t.Fatalf("unexpected tenant %+v", got)
	}
}

func TestTenantRoutesRejectNonOwnerRoles(t *testing.T) {
	claim := &authorization.Claim{
		SubjectEmail: "admin@school.example",
		Role:         authorization.RoleAdministrator,
		TenantID:     testTenantID,
	}
	srv := tenantTestServer(t, claim)

	resp := doRequest(t, http.MethodGet, srv.URL+"/", "")
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for non-owner, got %d", resp.StatusCode)
	}
}

func TestTenantUpdateRejectsEmptyChange(t *testing.T) {
	srv := tenantTestServer(t, ownerClaim())

	resp := doRequest(t, http.MethodPut, srv.URL+"/", `{"dataToUpdate":{}}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var errResp ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		t.Fatal(err)
	}
	if errResp.Code != common.ErrCodeNoUpdatable {
		t.Errorf("expected code %s, got %s", common.ErrCodeNoUpdatable, errResp.Code)
	}
}

func TestTenantUpdateAppliesDeclaredFields(t *testing.T) {
	srv := tenantTestServer(t, ownerClaim())

	// The commit fails in tests, which proves the request passed
	// validation and reached the unit of work.
	resp := doRequest(t, http.MethodPut, srv.URL+"/", `{"dataToUpdate":{"name":"Shelbyville Elementary"}}`)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected commit failure status 500, got %d", resp.StatusCode)
	}

	var errResp ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		t.Fatal(err)
	}
	if errResp.Code != common.ErrCodeCommitFailed {
		t.Errorf("expected code %s, got %s", common.ErrCodeCommitFailed, errResp.Code)
	}
}
