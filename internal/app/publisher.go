package app

import (
	"context"
	"encoding/json"
	"log"

	"github.com/fcg/payments-worker/internal/domain"
)

// EventPublisher delivers typed domain events with at-least-once semantics.
// A failed publish is a propagated error, never silently swallowed. Whether
// a given event ends up externally visible or merely recorded is a
// deployment-time transport choice; the orchestration logic treats every
// publisher the same.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

// MessageProducer is the transport-level producer the broker publisher
// wraps. Satisfied by rabbitmq.EventProducer.
type MessageProducer interface {
	Publish(ctx context.Context, exchange, routingKey string, body interface{}) error
}

// BrokerPublisher publishes events to a topic exchange. The routing key is
// a static property of the event type, resolved by the event itself, so the
// destination mapping is fixed at startup.
type BrokerPublisher struct {
	producer MessageProducer
	exchange string
}

func NewBrokerPublisher(producer MessageProducer, exchange string) *BrokerPublisher {
	return &BrokerPublisher{producer: producer, exchange: exchange}
}

func (p *BrokerPublisher) Publish(ctx context.Context, event domain.Event) error {
	return p.producer.Publish(ctx, p.exchange, event.RoutingKey(), event)
}

// LogPublisher records events in the process log instead of transporting
// them. Used by deployments that keep status events local, and as the
// bootstrap fallback when the broker producer is unavailable.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, event domain.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	log.Printf("level=info component=event_publisher msg=\"event recorded\" event_type=%s routing_key=%s payload=%s",
		event.EventType(), event.RoutingKey(), payload)
	return nil
}
