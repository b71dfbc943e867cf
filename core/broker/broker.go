package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"castle-admin/core/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher emits domain events. Failures never block the request that
// produced the event; callers log and continue.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, event any) error
	Close() error
}

type Envelope struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

type AMQPPublisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &AMQPPublisher{conn: conn, ch: ch, exchange: exchange}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, routingKey string, event any) error {
	body, err := json.Marshal(Envelope{Type: routingKey, OccurredAt: time.Now().UTC(), Data: event})
	if err != nil {
		return err
	}

	// amqp channels are not safe for concurrent publishes.
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// LogPublisher is used when no broker URL is configured.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, routingKey string, event any) error {
	logger.Debug("Broker:LogPublisher:Publish", "routing_key", routingKey, "event", event)
	return nil
}

func (LogPublisher) Close() error { return nil }

// Connect returns an AMQP publisher, or a LogPublisher when url is empty or
// the broker is unreachable.
func Connect(url, exchange string) Publisher {
	if url == "" {
		return LogPublisher{}
	}
	p, err := NewAMQPPublisher(url, exchange)
	if err != nil {
		logger.Warn("Broker:Connect:Unavailable", "error", err)
		return LogPublisher{}
	}
	logger.Info("Broker:Connect:Connected", "exchange", exchange)
	return p
}
