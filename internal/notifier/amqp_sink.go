package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"auction-engine/internal/models"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AMQPSink hands notifications to the delivery collaborator over a durable
// RabbitMQ queue.
type AMQPSink struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

// NewAMQPSink dials the broker and declares the queue.
func NewAMQPSink(url, queue string) (*AMQPSink, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp sink: dial %s: %w", url, err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("amqp sink: open channel: %w", err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("amqp sink: declare queue %s: %w", queue, err)
	}
	return &AMQPSink{conn: conn, ch: ch, queue: queue}, nil
}

// Enqueue publishes one notification as persistent JSON.
func (s *AMQPSink) Enqueue(n models.Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("amqp sink: marshal notification %s: %w", n.NotificationID, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = s.ch.PublishWithContext(ctx, "", s.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    n.NotificationID,
		Timestamp:    n.CreatedAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("amqp sink: publish to %s: %w", s.queue, err)
	}
	return nil
}

// Close releases the channel and connection.
func (s *AMQPSink) Close() error {
	if err := s.ch.Close(); err != nil {
		s.conn.Close()
		return fmt.Errorf("amqp sink: close channel: %w", err)
	}
	return s.conn.Close()
}
