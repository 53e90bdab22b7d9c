package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestPaymentRequestedWire_DecodeWithStringAmount(t *testing.T) {
	raw := `{
		"paymentId": "3b1f8c9e-5a2d-4e7b-8c1f-9d0a6b4e2c13",
		"correlationId": "9d0a6b4e-2c13-4e7b-8c1f-3b1f8c9e5a2d",
		"userId": "user-7",
		"gameId": "game-1",
		"amount": "19.9",
		"currency": "BRL",
		"paymentMethod": "card",
		"occurredAt": "2025-06-01T12:00:00Z",
		"version": "1.0"
	}`

	var wire PaymentRequestedWire
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		t.Fatalf("unmarshal returned error: %v", err)
	}

	msg := wire.ToMessage()

	if msg.PaymentID != uuid.MustParse("3b1f8c9e-5a2d-4e7b-8c1f-9d0a6b4e2c13") {
		t.Fatalf("unexpected payment id %s", msg.PaymentID)
	}
	if msg.UserID != DeriveID("user-7") {
		t.Fatal("expected non-uuid user id to be derived deterministically")
	}
	if !msg.Amount.Equal(decimal.RequireFromString("19.90")) {
		t.Fatalf("expected amount 19.90, got %s", msg.Amount)
	}
	if msg.Version != "1.0" {
		t.Fatalf("expected version to pass through, got %q", msg.Version)
	}
}

func TestPaymentRequestedWire_DecodeWithNumericAmount(t *testing.T) {
	raw := `{"paymentId": "p-1", "correlationId": "c-1", "userId": "u-1", "gameId": "g-1", "amount": 5.00, "currency": "USD", "paymentMethod": "pix"}`

	var wire PaymentRequestedWire
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		t.Fatalf("unmarshal returned error: %v", err)
	}

	msg := wire.ToMessage()
	if msg.Amount.Cents() != 500 {
		t.Fatalf("expected 500 cents, got %d", msg.Amount.Cents())
	}
	if msg.PaymentID == uuid.Nil || msg.CorrelationID == uuid.Nil || msg.UserID == uuid.Nil {
		t.Fatal("expected non-blank identifiers to derive to non-nil uuids")
	}
}

func TestPaymentRequestedWire_BlankIdentifiersResolveToNil(t *testing.T) {
	wire := PaymentRequestedWire{
		PaymentID:     "",
		CorrelationID: "  ",
		UserID:        "user-1",
	}

	msg := wire.ToMessage()

	if msg.PaymentID != uuid.Nil {
		t.Fatalf("expected blank payment id to resolve to uuid.Nil, got %s", msg.PaymentID)
	}
	if msg.CorrelationID != uuid.Nil {
		t.Fatalf("expected blank correlation id to resolve to uuid.Nil, got %s", msg.CorrelationID)
	}
	if msg.UserID == uuid.Nil {
		t.Fatal("expected non-blank user id to resolve to a derived uuid")
	}
}
