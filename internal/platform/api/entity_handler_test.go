package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.classcore.tech/internal/platform/authorization"
	"go.classcore.tech/internal/platform/common"
)

const testEntityID = "9b2d4f6a-1c3e-4a5b-8d7c-0e1f2a3b4c5d"

type fakeCatalogEntity struct {
	ID       string `json:"id"`
	TenantID string `json:"tenantId"`
	Name     string `json:"name"`
}

func (e *fakeCatalogEntity) AggregateID() string { return e.ID }

func (e *fakeCatalogEntity) CollectionName() string { return "workers" }

func entityTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	claim := &authorization.Claim{
		SubjectEmail: "admin@school.example",
		Role:         authorization.RoleAdministrator,
		TenantID:     "tenant-1",
	}
	gate := NewAuthGate(&fakeVerifier{claim: claim}, &fakeAuthorizer{allowed: true}, nil)

	handler := &EntityHandler{
		module: authorization.ModuleWorker,
		schema: workerSchema,
		gate:   gate,
		uow:    failingUnitOfWork{},
		logger: slog.Default(),
		get: func(_ context.Context, tenantID, id string) (common.Aggregate, error) {
			return &fakeCatalogEntity{ID: id, TenantID: tenantID, Name: "Willie"}, nil
		},
		apply: func(aggregate common.Aggregate, data map[string]any) []string {
			e := aggregate.(*fakeCatalogEntity)
			var updated []string
			if name, ok := data["name"].(string); ok && name != "" {
				e.Name = name
				updated = append(updated, "name")
			}
			return updated
		},
	}

	srv := httptest.NewServer(handler.Routes())
	t.Cleanup(srv.Close)
	return srv
}

// A payload that passes the structural schema but changes nothing is a
// bad request, matching the validator's own empty-update rule.
func TestEntityUpdateWithNoEffectiveChangeReturnsBadRequest(t *testing.T) {
	srv := entityTestServer(t)

	resp := doRequest(t, http.MethodPut, srv.URL+"/"+testEntityID,
		`{"dataToUpdate":{"name":123}}`)
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

func TestEntityUpdateWithDeclaredFieldReachesCommit(t *testing.T) {
	srv := entityTestServer(t)

	resp := doRequest(t, http.MethodPut, srv.URL+"/"+testEntityID,
		`{"dataToUpdate":{"name":"Groundskeeper Willie"}}`)
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
