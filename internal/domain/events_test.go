package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestStatusEvents_RoutingKeysAreStaticPerType(t *testing.T) {
	paymentID := uuid.New()
	correlationID := uuid.New()

	tests := []struct {
		event       PaymentStatusEvent
		wantType    string
		wantRouting string
	}{
		{NewPaymentProcessingEvent(paymentID, correlationID), "PaymentProcessing", "payment.status.processing"},
		{NewPaymentApprovedEvent(paymentID, correlationID, "approved"), "PaymentApproved", "payment.status.approved"},
		{NewPaymentDeclinedEvent(paymentID, correlationID, "odd cents"), "PaymentDeclined", "payment.status.declined"},
		{NewPaymentFailedEvent(paymentID, correlationID, "timeout"), "PaymentFailed", "payment.status.failed"},
	}

	for _, tt := range tests {
		t.Run(tt.wantType, func(t *testing.T) {
			if tt.event.EventType() != tt.wantType {
				t.Fatalf("expected event type %q, got %q", tt.wantType, tt.event.EventType())
			}
			if tt.event.RoutingKey() != tt.wantRouting {
				t.Fatalf("expected routing key %q, got %q", tt.wantRouting, tt.event.RoutingKey())
			}
			if tt.event.PaymentID != paymentID || tt.event.CorrelationID != correlationID {
				t.Fatal("status event must carry the source identifiers")
			}
			if tt.event.OccurredAt.IsZero() {
				t.Fatal("status event must carry a timestamp")
			}
		})
	}
}

func TestGamePurchaseCompletedEvent_CarriesSourceFields(t *testing.T) {
	amount, err := AmountFromString("19.9")
	if err != nil {
		t.Fatalf("AmountFromString returned error: %v", err)
	}
	msg := PaymentRequestedMessage{
		PaymentID:     uuid.New(),
		CorrelationID: uuid.New(),
		UserID:        uuid.New(),
		GameID:        "game-9",
		Amount:        amount,
		Currency:      "BRL",
		PaymentMethod: "card",
	}

	evt := NewGamePurchaseCompletedEvent(msg, StatusDeclined, "payment declined by provider")

	if evt.PaymentID != msg.PaymentID || evt.CorrelationID != msg.CorrelationID {
		t.Fatal("completion event must carry the source identifiers")
	}
	if evt.Status != StatusDeclined || evt.Reason != "payment declined by provider" {
		t.Fatalf("unexpected status/reason: %s/%s", evt.Status, evt.Reason)
	}
	if evt.RoutingKey() != "game.purchase.completed" {
		t.Fatalf("unexpected routing key %q", evt.RoutingKey())
	}
	if evt.CompletedAt.IsZero() {
		t.Fatal("completion event must carry a timestamp")
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("marshal returned error: %v", err)
	}
	if !strings.Contains(string(payload), `"amount":19.90`) {
		t.Fatalf("expected two-fractional-digit amount on the wire, got %s", payload)
	}
}
