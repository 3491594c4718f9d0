package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// dialTimeout bounds connection setup when the caller's context has no
// earlier deadline.
const dialTimeout = 3 * time.Second

// Publisher delivers subscription events.  Callers treat delivery as best
// effort: a failed publish is logged and never fails the request.
type Publisher interface {
	Publish(ctx context.Context, ev SubscriptionEvent) error
}

// NewPublisher returns an AMQP publisher for url, or a no-op publisher when
// url is empty so the API runs without a broker.
func NewPublisher(url string) Publisher {
	if url == "" {
		return NopPublisher{}
	}
	return &AMQPPublisher{url: url}
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, SubscriptionEvent) error { return nil }

// AMQPPublisher publishes to SubscriptionQueue through the default exchange.
// It dials per publish; signups are rare enough that a pooled connection is
// not worth its reconnect handling.
type AMQPPublisher struct {
	url string
}

// Publish declares the durable queue and publishes ev as a persistent JSON
// message.
func (p *AMQPPublisher) Publish(ctx context.Context, ev SubscriptionEvent) error {
	msg, err := encode(ev)
	if err != nil {
		return err
	}

	timeout := dialTimeout
	if dl, ok := ctx.Deadline(); ok && time.Until(dl) < timeout {
		timeout = time.Until(dl)
	}
	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Dial:      amqp.DefaultDial(timeout),
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
	})
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(SubscriptionQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	// default exchange, routing key = queue name
	if err := ch.PublishWithContext(ctx, "", SubscriptionQueue, false, false, msg); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

func encode(ev SubscriptionEvent) (amqp.Publishing, error) {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal event: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         string(ev.Type),
		Timestamp:    ev.OccurredAt,
		Body:         body,
	}, nil
}
