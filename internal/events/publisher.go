package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"emedica-be/internal/logger"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const publishTimeout = 3 * time.Second

// Publisher sends domain events. Publish must be called after the
// originating transaction has committed.
type Publisher interface {
	Publish(ctx context.Context, eventName, partitionKey string, payload any) error
	Close() error
}

type channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type rabbitPublisher struct {
	ch  channel
	now func() time.Time
}

// Connect dials RabbitMQ and returns a publisher with every queue declared.
func Connect(url string) (*amqp.Connection, Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	pub, err := NewPublisher(conn)
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return conn, pub, nil
}

func NewPublisher(conn *amqp.Connection) (Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	return newPublisherWithChannel(ch)
}

func newPublisherWithChannel(ch channel) (*rabbitPublisher, error) {
	for _, q := range Queues {
		if _, err := ch.QueueDeclare(q, true, false, false, false, nil); err != nil {
			return nil, fmt.Errorf("declare %s: %w", q, err)
		}
	}
	return &rabbitPublisher{ch: ch, now: time.Now}, nil
}

func (p *rabbitPublisher) Publish(ctx context.Context, eventName, partitionKey string, payload any) error {
	env := Envelope{
		EventName:     eventName,
		EventVersion:  eventVersion,
		EventID:       uuid.NewString(),
		CorrelationID: logger.RequestIDFrom(ctx),
		Producer:      producerName,
		PartitionKey:  partitionKey,
		OccurredAt:    p.now().UTC(),
		Payload:       payload,
	}

	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", eventName, err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.ch.PublishWithContext(
		pubCtx,
		"",        // default exchange
		eventName, // queue name as routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    env.EventID,
			Timestamp:    env.OccurredAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", eventName, err)
	}

	logger.FromCtx(ctx).Debug("event published",
		zap.String("event", eventName),
		zap.String("event_id", env.EventID),
	)
	return nil
}

func (p *rabbitPublisher) Close() error {
	return p.ch.Close()
}

type nopPublisher struct{}

// NewNopPublisher drops every event. Used when no broker is configured.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(context.Context, string, string, any) error { return nil }

func (nopPublisher) Close() error { return nil }
