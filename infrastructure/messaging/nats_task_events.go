package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"

	"tasktracker/domain/ports"
	natspkg "tasktracker/infrastructure/nats"
	"tasktracker/pkg/logger"
)

// EventStream ส่วนของ NATS client ที่ publisher ใช้ (*nats.Client implement)
type EventStream interface {
	Subject(eventType string) string
	Publish(ctx context.Context, subject string, data []byte) (*jetstream.PubAck, error)
}

// NATSTaskEventPublisher ส่ง task events เข้า JetStream
// Subject: <prefix>.<event type>
type NATSTaskEventPublisher struct {
	client EventStream
}

func NewNATSTaskEventPublisher(client EventStream) *NATSTaskEventPublisher {
	return &NATSTaskEventPublisher{client: client}
}

func (p *NATSTaskEventPublisher) PublishTaskEvent(ctx context.Context, event *ports.TaskEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal task event: %w", err)
	}

	subject := p.client.Subject(event.Type)
	ack, err := p.client.Publish(ctx, subject, data)
	if err != nil {
		return fmt.Errorf("failed to publish task event: %w", err)
	}

	logger.DebugContext(ctx, "Task event published",
		"subject", subject,
		"task_id", event.TaskID,
		"stream", ack.Stream,
		"sequence", ack.Sequence,
	)
	return nil
}

// Verify interface implementation
var (
	_ ports.TaskEventPublisher = (*NATSTaskEventPublisher)(nil)
	_ EventStream              = (*natspkg.Client)(nil)
)
