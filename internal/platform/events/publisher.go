package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"go.classcore.tech/internal/platform/common"
)

// Publisher forwards committed domain events to NATS. Publishing is best
// effort: the event is already durable in the store, so a broker outage
// logs a warning and moves on.
type Publisher struct {
	conn   *nats.Conn
	logger *slog.Logger
}

// Connect dials the broker with unlimited reconnects.
func Connect(url string, logger *slog.Logger) (*Publisher, error) {
	if url == "" {
		url = nats.DefaultURL
	}

	conn, err := nats.Connect(url,
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("NATS reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &Publisher{conn: conn, logger: logger}, nil
}

// Publish sends one event to its subject, derived from the event type.
func (p *Publisher) Publish(event common.DomainEvent) {
	data, err := json.Marshal(common.ToPersistedEvent(event))
	if err != nil {
		p.logger.Warn("Failed to encode domain event",
			"eventId", event.EventID(), "type", event.EventType(), "error", err)
		return
	}

	msg := &nats.Msg{
		Subject: event.EventType(),
		Data:    data,
		Header:  nats.Header{},
	}
	// Dedup key for consumers that track message IDs.
	msg.Header.Set("Nats-Msg-Id", event.EventID())
	msg.Header.Set("X-Tenant-Id", event.TenantID())

	if err := p.conn.PublishMsg(msg); err != nil {
		p.logger.Warn("Failed to publish domain event",
			"eventId", event.EventID(), "type", event.EventType(), "error", err)
		return
	}

	p.logger.Debug("Published domain event",
		"eventId", event.EventID(), "type", event.EventType())
}

// IsConnected reports whether the broker connection is currently up.
func (p *Publisher) IsConnected() bool {
	return p.conn.IsConnected()
}

// Close drains the connection, letting buffered messages flush.
func (p *Publisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.logger.Warn("Failed to drain NATS connection", "error", err)
	}
}
