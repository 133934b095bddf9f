package push

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/SscSPs/kewat_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/kewat_ledger/internal/core/ports/services"
	amqp "github.com/rabbitmq/amqp091-go"
)

// publisher is the part of *amqp.Channel the queue sender uses.
type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// QueueSender hands deliveries to a durable RabbitMQ queue drained by the push relay.
// A successful Send means the broker accepted the message, not that the device got it.
type QueueSender struct {
	conn  *amqp.Connection
	ch    publisher
	queue string
}

var _ portssvc.PushSender = (*QueueSender)(nil)

// NewQueueSender dials url and declares queue.
func NewQueueSender(url, queue string) (*QueueSender, error) {
	conn, ch, err := DialQueue(url, queue)
	if err != nil {
		return nil, err
	}
	return &QueueSender{conn: conn, ch: ch, queue: queue}, nil
}

// NewQueueSenderWithChannel allows injecting a test channel.
func NewQueueSenderWithChannel(ch publisher, queue string) *QueueSender {
	return &QueueSender{ch: ch, queue: queue}
}

// DialQueue opens a connection and channel and declares the durable queue.
func DialQueue(url, queue string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("failed to open channel: %w", err)
	}
	_, err = ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}
	return conn, ch, nil
}

func (s *QueueSender) Send(ctx context.Context, msg domain.PushMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode push message: %w", err)
	}
	err = s.ch.PublishWithContext(ctx,
		"",      // default exchange
		s.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue push message: %w", err)
	}
	return nil
}

// Close releases the channel and connection.
func (s *QueueSender) Close() error {
	if err := s.ch.Close(); err != nil {
		return err
	}
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// Relay drains queued deliveries into a direct sender.
type Relay struct {
	sender portssvc.PushSender
	logger *slog.Logger
}

// NewRelay creates a Relay that delivers through sender.
func NewRelay(sender portssvc.PushSender, logger *slog.Logger) *Relay {
	if logger == nil {
		logger = slog.Default()
	}
	return &Relay{sender: sender, logger: logger}
}

// Run processes deliveries until ctx is done or the channel closes.
// Deliveries are acknowledged after one attempt; failures are dropped, not requeued.
func (r *Relay) Run(ctx context.Context, deliveries <-chan amqp.Delivery) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return nil
			}
			r.handle(ctx, d)
		}
	}
}

func (r *Relay) handle(ctx context.Context, d amqp.Delivery) {
	var msg domain.PushMessage
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		r.logger.Error("Dropping malformed push message", slog.String("error", err.Error()))
		_ = d.Nack(false, false)
		return
	}
	if err := r.sender.Send(ctx, msg); err != nil {
		r.logger.Warn("Push relay delivery failed", slog.String("token", maskToken(msg.Token)), slog.String("error", err.Error()))
		_ = d.Nack(false, false)
		return
	}
	_ = d.Ack(false)
}
