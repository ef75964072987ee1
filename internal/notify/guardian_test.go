package notify

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go.classcore.tech/internal/platform/common"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNotifyDeliversMessage(t *testing.T) {
	var gotAuth atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth.Store(r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	n := NewNotifier(server.URL, "sekrit", time.Second, discardLogger())

	err := n.Notify(context.Background(), Message{
		StudentEmail: "ana@school.example",
		Kind:         KindAbsence,
		Body:         "Ana was absent today",
		TenantID:     "t1",
	})
	if err != nil {
		t.Fatalf("Notify() failed: %v", err)
	}
	if gotAuth.Load() != "Bearer sekrit" {
		t.Errorf("Authorization = %v, want bearer token", gotAuth.Load())
	}
}

func TestNotifyMapsFailureToIntegrationError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	n := NewNotifier(server.URL, "", time.Second, discardLogger())

	err := n.Notify(context.Background(), Message{Kind: KindNote})
	if err == nil {
		t.Fatal("Notify() = nil, want integration error")
	}
	if err.Kind != common.ErrorKindIntegration {
		t.Errorf("Kind = %v, want Integration", err.Kind)
	}
	if err.HTTPStatus() != http.StatusServiceUnavailable {
		t.Errorf("HTTPStatus() = %d, want 503", err.HTTPStatus())
	}
}

func TestNotifyBreakerOpensAfterRepeatedFailures(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	n := NewNotifier(server.URL, "", time.Second, discardLogger())

	for i := 0; i < 10; i++ {
		if err := n.Notify(context.Background(), Message{Kind: KindAbsence}); err == nil {
			t.Fatal("Notify() succeeded against a failing endpoint")
		}
	}

	// The breaker trips at 5 requests with a majority failing; later
	// calls must not reach the endpoint.
	if got := calls.Load(); got >= 10 {
		t.Errorf("endpoint saw %d calls, breaker never opened", got)
	}
}
