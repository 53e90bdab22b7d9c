/**
 * @description
 * Inbound message contracts consumed from the message broker. These structs
 * mirror the payloads published by the game service and the payments API;
 * field names are part of the platform wire contract and must not change.
 *
 * @notes
 * - PaymentRequestedWire is the exact shape the payments API enqueues; its
 *   identifier fields arrive as strings that are not guaranteed to be
 *   well-formed UUIDs, and its amount may be a string or a number.
 */
package domain

import (
	"time"

	"github.com/google/uuid"
)

// PurchaseRequestedMessage is published by the game service when a buyer
// starts a purchase. Consumed from the game-purchase-requested queue.
type PurchaseRequestedMessage struct {
	PaymentID     uuid.UUID `json:"paymentId"`
	UserID        string    `json:"userId"`
	GameID        string    `json:"gameId"`
	Amount        Amount    `json:"amount"`
	Currency      string    `json:"currency"`
	PaymentMethod string    `json:"paymentMethod"`
	CorrelationID uuid.UUID `json:"correlationId"`
}

// PaymentRequestedWire is the broker payload enqueued by the payments API
// after a payment record has been created. Consumed from the
// payments-to-process queue.
type PaymentRequestedWire struct {
	PaymentID     string    `json:"paymentId"`
	CorrelationID string    `json:"correlationId"`
	UserID        string    `json:"userId"`
	GameID        string    `json:"gameId"`
	Amount        Amount    `json:"amount"`
	Currency      string    `json:"currency"`
	PaymentMethod string    `json:"paymentMethod"`
	OccurredAt    time.Time `json:"occurredAt"`
	Version       string    `json:"version"`
}

// PaymentRequestedMessage is the normalized form the orchestration works
// with: identifiers resolved to UUIDs and the amount held as an exact
// decimal.
type PaymentRequestedMessage struct {
	PaymentID     uuid.UUID
	CorrelationID uuid.UUID
	UserID        uuid.UUID
	GameID        string
	Amount        Amount
	Currency      string
	PaymentMethod string
	OccurredAt    time.Time
	Version       string
}

// ToMessage normalizes the wire payload. Identifier fields that are blank
// resolve to uuid.Nil and are rejected by validation; non-UUID values are
// derived deterministically.
func (w PaymentRequestedWire) ToMessage() PaymentRequestedMessage {
	return PaymentRequestedMessage{
		PaymentID:     ParseID(w.PaymentID),
		CorrelationID: ParseID(w.CorrelationID),
		UserID:        ParseID(w.UserID),
		GameID:        w.GameID,
		Amount:        w.Amount,
		Currency:      w.Currency,
		PaymentMethod: w.PaymentMethod,
		OccurredAt:    w.OccurredAt,
		Version:       w.Version,
	}
}
