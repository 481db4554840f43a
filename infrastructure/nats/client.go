package nats

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"tasktracker/pkg/logger"
)

const (
	DefaultStreamName    = "TASK_EVENTS"
	DefaultSubjectPrefix = "tasks"
)

// Client wraps NATS connection with JetStream context
type Client struct {
	conn          *nats.Conn
	js            jetstream.JetStream
	subjectPrefix string
}

// ClientConfig configuration สำหรับ NATS Client
type ClientConfig struct {
	URL           string // nats://localhost:4222
	StreamName    string
	SubjectPrefix string
	MaxAge        time.Duration
}

// NewClient เชื่อมต่อ NATS และเตรียม stream สำหรับ task events
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.StreamName == "" {
		cfg.StreamName = DefaultStreamName
	}
	if cfg.SubjectPrefix == "" {
		cfg.SubjectPrefix = DefaultSubjectPrefix
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = 7 * 24 * time.Hour
	}

	nc, err := nats.Connect(cfg.URL,
		nats.Name("tasktracker"),
		nats.MaxReconnects(-1), // Reconnect forever
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	client := &Client{
		conn:          nc,
		js:            js,
		subjectPrefix: cfg.SubjectPrefix,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.setupStream(ctx, cfg); err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to setup stream: %w", err)
	}

	logger.Info("NATS client initialized", "url", cfg.URL, "stream", cfg.StreamName)
	return client, nil
}

// setupStream สร้างหรืออัปเดต stream ที่รับทุก subject ใต้ prefix
func (c *Client) setupStream(ctx context.Context, cfg ClientConfig) error {
	streamCfg := jetstream.StreamConfig{
		Name:        cfg.StreamName,
		Subjects:    []string{cfg.SubjectPrefix + ".>"},
		Storage:     jetstream.FileStorage,
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      cfg.MaxAge,
		Replicas:    1,
		Description: "Task lifecycle events",
	}

	if _, err := c.js.CreateOrUpdateStream(ctx, streamCfg); err != nil {
		return fmt.Errorf("failed to create/update %s stream: %w", cfg.StreamName, err)
	}
	logger.Info("JetStream stream ready", "name", cfg.StreamName)
	return nil
}

// Subject คืน subject เต็มของ event type เช่น tasks.task.created
func (c *Client) Subject(eventType string) string {
	return c.subjectPrefix + "." + eventType
}

// Publish ส่ง message เข้า JetStream และรอ ack
func (c *Client) Publish(ctx context.Context, subject string, data []byte) (*jetstream.PubAck, error) {
	return c.js.Publish(ctx, subject, data)
}

// Close drains และปิด connection
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Drain()
}
