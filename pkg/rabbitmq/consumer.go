package rabbitmq

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Handler processes one delivery body. It returns true when the message is
// finished (acknowledge, no redelivery) and false when handling failed and
// the broker should redeliver it.
type Handler func(ctx context.Context, body []byte) bool

// Consumer wraps a RabbitMQ connection for queue consumption. Each consumed
// queue gets its own channel so prefetch limits stay per-queue.
type Consumer struct {
	conn     *amqp.Connection
	channels []*amqp.Channel
}

func sanitizeURL(raw string) (string, error) {
	clean := strings.TrimSpace(raw)
	clean = strings.Trim(clean, "\"'")
	if !strings.HasSuffix(clean, "/") {
		clean += "/"
	}
	parsed, err := url.Parse(clean)
	if err != nil {
		return "", err
	}
	if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
		return "", fmt.Errorf("invalid AMQP scheme: %s", parsed.Scheme)
	}
	return clean, nil
}

// NewConsumer connects to RabbitMQ.
func NewConsumer(amqpURL string) (*Consumer, error) {
	cleanURL, err := sanitizeURL(amqpURL)
	if err != nil {
		return nil, err
	}

	conn, err := amqp.Dial(cleanURL)
	if err != nil {
		return nil, err
	}

	return &Consumer{conn: conn}, nil
}

// ConsumeQueue declares the queue and consumes it with manual
// acknowledgement. At most prefetch messages are handled concurrently; each
// handler invocation receives ctx so in-flight work aborts on shutdown.
// Deliveries whose handler returns false are negatively acknowledged with
// requeue, leaving the retry policy to the broker.
func (c *Consumer) ConsumeQueue(ctx context.Context, queueName string, prefetch int, handler Handler) error {
	if handler == nil {
		return fmt.Errorf("no handler provided for queue %s", queueName)
	}
	if prefetch <= 0 {
		prefetch = 10
	}

	ch, err := c.conn.Channel()
	if err != nil {
		return err
	}
	c.channels = append(c.channels, ch)

	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		return err
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return err
	}

	msgs, err := ch.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	sem := make(chan struct{}, prefetch)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case d, ok := <-msgs:
				if !ok {
					return
				}
				sem <- struct{}{}
				go func(d amqp.Delivery) {
					defer func() { <-sem }()
					if handler(ctx, d.Body) {
						if err := d.Ack(false); err != nil {
							log.Printf("level=warn component=rabbitmq_consumer queue=%s msg=\"ack failed\" err=%v", queueName, err)
						}
						return
					}
					log.Printf("level=warn component=rabbitmq_consumer queue=%s msg=\"handler failed; re-queuing\"", queueName)
					if err := d.Nack(false, true); err != nil {
						log.Printf("level=warn component=rabbitmq_consumer queue=%s msg=\"nack failed\" err=%v", queueName, err)
					}
				}(d)
			}
		}
	}()

	return nil
}

// Close releases all channels and the connection.
func (c *Consumer) Close() {
	for _, ch := range c.channels {
		if ch != nil {
			ch.Close()
		}
	}
	if c.conn != nil {
		c.conn.Close()
	}
}
