package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher hands events to the subscriber pipeline.
type Publisher interface {
	Publish(ctx context.Context, events ...any) error
}

// New returns an AMQP publisher when cfg is enabled and a no-op otherwise.
func New(cfg Config, logger *zap.Logger) Publisher {
	if !cfg.Enabled {
		return Nop{}
	}
	return NewAMQPPublisher(cfg, logger)
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, ...any) error { return nil }

// channel is the subset of *amqp.Channel used for publishing.
type channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type dialFunc func(url string) (channel, func(), error)

// AMQPPublisher publishes JSON events as persistent messages to a durable queue.
// It opens one connection per Publish call.
type AMQPPublisher struct {
	cfg    Config
	logger *zap.Logger
	dial   dialFunc
}

// NewAMQPPublisher creates a publisher for cfg.
func NewAMQPPublisher(cfg Config, logger *zap.Logger) *AMQPPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AMQPPublisher{cfg: cfg, logger: logger, dial: dialAMQP}
}

func dialAMQP(url string) (channel, func(), error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return ch, func() {
		_ = ch.Close()
		_ = conn.Close()
	}, nil
}

// Publish sends every event. It stops at the first failure.
func (p *AMQPPublisher) Publish(ctx context.Context, events ...any) error {
	if len(events) == 0 {
		return nil
	}

	ch, closeFn, err := p.dial(p.cfg.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to broker: %w", err)
	}
	defer closeFn()

	if _, err := ch.QueueDeclare(p.cfg.Queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", p.cfg.Queue, err)
	}

	for _, ev := range events {
		body, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("failed to marshal event: %w", err)
		}

		err = ch.PublishWithContext(ctx, "", p.cfg.Queue, false, false, amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		})
		if err != nil {
			return fmt.Errorf("failed to publish to %s: %w", p.cfg.Queue, err)
		}
	}

	p.logger.Debug("Published events", zap.String("queue", p.cfg.Queue), zap.Int("count", len(events)))
	return nil
}
