/**
 * @description
 * Outbound domain events published to the message broker. Each event type
 * maps to a fixed routing key, resolved here rather than at publish call
 * sites, so destination wiring stays a startup-time concern.
 *
 * @notes
 * - Having a clear, versioned contract for events is crucial for maintaining
 *   a stable event stream across services.
 */
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Terminal payment outcomes carried on the completion event.
const (
	StatusApproved = "approved"
	StatusDeclined = "declined"
	StatusFailed   = "failed"
)

// Event is implemented by every payload the worker publishes. The routing
// key is a static property of the event type.
type Event interface {
	EventType() string
	RoutingKey() string
}

// PaymentStatusEvent is an informational event marking an intermediate
// lifecycle transition.
type PaymentStatusEvent struct {
	Type          string    `json:"event_type"`
	PaymentID     uuid.UUID `json:"payment_id"`
	CorrelationID uuid.UUID `json:"correlation_id"`
	OccurredAt    time.Time `json:"occurred_at"`
	Detail        string    `json:"detail,omitempty"`

	routingKey string
}

func (e PaymentStatusEvent) EventType() string  { return e.Type }
func (e PaymentStatusEvent) RoutingKey() string { return e.routingKey }

func newStatusEvent(eventType, routingKey string, paymentID, correlationID uuid.UUID, detail string) PaymentStatusEvent {
	return PaymentStatusEvent{
		Type:          eventType,
		PaymentID:     paymentID,
		CorrelationID: correlationID,
		OccurredAt:    time.Now().UTC(),
		Detail:        detail,
		routingKey:    routingKey,
	}
}

// NewPaymentProcessingEvent marks the start of payment processing.
func NewPaymentProcessingEvent(paymentID, correlationID uuid.UUID) PaymentStatusEvent {
	return newStatusEvent("PaymentProcessing", "payment.status.processing", paymentID, correlationID, "")
}

// NewPaymentApprovedEvent carries the provider response for an approval.
func NewPaymentApprovedEvent(paymentID, correlationID uuid.UUID, providerResponse string) PaymentStatusEvent {
	return newStatusEvent("PaymentApproved", "payment.status.approved", paymentID, correlationID, providerResponse)
}

// NewPaymentDeclinedEvent carries the decline reason.
func NewPaymentDeclinedEvent(paymentID, correlationID uuid.UUID, reason string) PaymentStatusEvent {
	return newStatusEvent("PaymentDeclined", "payment.status.declined", paymentID, correlationID, reason)
}

// NewPaymentFailedEvent carries the failure reason.
func NewPaymentFailedEvent(paymentID, correlationID uuid.UUID, reason string) PaymentStatusEvent {
	return newStatusEvent("PaymentFailed", "payment.status.failed", paymentID, correlationID, reason)
}

// GamePurchaseCompletedEvent is the single terminal event summarizing the
// final outcome of a payment request, published on every processed message
// whether it was approved, declined, or failed.
type GamePurchaseCompletedEvent struct {
	PaymentID     uuid.UUID `json:"payment_id"`
	UserID        uuid.UUID `json:"user_id"`
	GameID        string    `json:"game_id"`
	Amount        Amount    `json:"amount"`
	Currency      string    `json:"currency"`
	PaymentMethod string    `json:"payment_method"`
	Status        string    `json:"status"`
	Reason        string    `json:"reason"`
	CorrelationID uuid.UUID `json:"correlation_id"`
	CompletedAt   time.Time `json:"completed_at"`
}

func (GamePurchaseCompletedEvent) EventType() string  { return "GamePurchaseCompleted" }
func (GamePurchaseCompletedEvent) RoutingKey() string { return "game.purchase.completed" }

// NewGamePurchaseCompletedEvent builds the terminal event for a processed
// payment-requested message.
func NewGamePurchaseCompletedEvent(msg PaymentRequestedMessage, status, reason string) GamePurchaseCompletedEvent {
	return GamePurchaseCompletedEvent{
		PaymentID:     msg.PaymentID,
		UserID:        msg.UserID,
		GameID:        msg.GameID,
		Amount:        msg.Amount,
		Currency:      msg.Currency,
		PaymentMethod: msg.PaymentMethod,
		Status:        status,
		Reason:        reason,
		CorrelationID: msg.CorrelationID,
		CompletedAt:   time.Now().UTC(),
	}
}
