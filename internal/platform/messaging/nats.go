package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"criadores/contexts/campaign-ops/slot-service/ports"
)

// NATSPublisher publishes outbox envelopes to a NATS subject per event type.
// This is the broker-backed counterpart of Bus.
type NATSPublisher struct {
	conn   *nats.Conn
	logger *slog.Logger
}

func ConnectNATS(url string, serviceName string, logger *slog.Logger) (*NATSPublisher, error) {
	conn, err := nats.Connect(url, nats.Name(serviceName))
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return &NATSPublisher{conn: conn, logger: logger}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, topic string, event ports.EventEnvelope) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", event.EventID, err)
	}
	if err := p.conn.Publish(topic, payload); err != nil {
		return fmt.Errorf("publish event %s to %s: %w", event.EventID, topic, err)
	}
	if p.logger != nil {
		p.logger.Info("event published",
			"event", "nats_publish",
			"module", "internal/platform/messaging",
			"layer", "platform",
			"topic", topic,
			"event_id", event.EventID,
			"event_type", event.EventType,
		)
	}
	return nil
}

func (p *NATSPublisher) Close() {
	if p != nil && p.conn != nil {
		p.conn.Close()
	}
}
