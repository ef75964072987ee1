// Package notify delivers guardian notifications over an outbound
// webhook. The school is the system of record; the webhook endpoint is an
// external collaborator that may be down, so calls go through a circuit
// breaker and failures surface as integration errors.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"go.classcore.tech/internal/platform/common"
)

// Message is one guardian notification.
type Message struct {
	StudentEmail  string `json:"studentEmail"`
	GuardianPhone string `json:"guardianPhone,omitempty"`
	Kind          string `json:"kind"`
	Body          string `json:"body"`
	TenantID      string `json:"tenantId"`
}

// Notification kinds.
const (
	KindAbsence    = "absence"
	KindEvaluation = "evaluation"
	KindNote       = "note"
)

// Notifier posts guardian messages to the configured webhook.
type Notifier struct {
	url     string
	token   string
	client  *common.TracingHTTPClient
	breaker *gobreaker.CircuitBreaker
	logger  *slog.Logger
}

// NewNotifier creates a notifier for the given webhook URL. The token is
// sent as a bearer credential and may be empty.
func NewNotifier(url, token string, timeout time.Duration, logger *slog.Logger) *Notifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	settings := gobreaker.Settings{
		Name:     "guardian-webhook",
		Interval: time.Minute,
		Timeout:  30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Guardian webhook breaker state change",
				"name", name, "from", from.String(), "to", to.String())
		},
	}

	return &Notifier{
		url:     url,
		token:   token,
		client:  common.NewTracingHTTPClient(&http.Client{Timeout: timeout}),
		breaker: gobreaker.NewCircuitBreaker(settings),
		logger:  logger,
	}
}

// Notify delivers one message. A transport failure, non-2xx response, or
// open breaker returns an integration error so the perimeter answers 503
// rather than pretending the notification went out.
func (n *Notifier) Notify(ctx context.Context, msg Message) *common.UseCaseError {
	_, err := n.breaker.Execute(func() (any, error) {
		return nil, n.post(ctx, msg)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			n.logger.Warn("Guardian webhook breaker open, dropping notification",
				"kind", msg.Kind, "student", msg.StudentEmail)
			return common.IntegrationError(common.ErrCodeIntegrationFailure,
				"Guardian notification service unavailable", nil)
		}
		n.logger.Error("Guardian notification failed",
			"kind", msg.Kind, "student", msg.StudentEmail, "error", err)
		return common.IntegrationError(common.ErrCodeIntegrationFailure,
			"Guardian notification failed", map[string]any{"kind": msg.Kind})
	}
	return nil
}

func (n *Notifier) post(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if n.token != "" {
		req.Header.Set("Authorization", "Bearer "+n.token)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("post notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
