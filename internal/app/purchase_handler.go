/**
 * @description
 * Handler for the purchase-requested workflow: validate the inbound message
 * and create the payment record through the payments API. The API itself
 * announces creation downstream (it enqueues the payment-requested message),
 * so this handler publishes no event of its own.
 */
package app

import (
	"context"
	"encoding/json"
	"log"

	"github.com/fcg/payments-worker/internal/domain"
	"github.com/fcg/payments-worker/pkg/paymentsclient"
)

// PurchaseHandler consumes purchase-requested messages.
type PurchaseHandler struct {
	gateway Gateway
}

func NewPurchaseHandler(gateway Gateway) *PurchaseHandler {
	return &PurchaseHandler{gateway: gateway}
}

// HandleDelivery is the broker adapter: it decodes one delivery body and
// maps the handler outcome to the ack/requeue primitive.
func (h *PurchaseHandler) HandleDelivery(ctx context.Context, body []byte) bool {
	var msg domain.PurchaseRequestedMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		log.Printf("level=error component=purchase_handler msg=\"malformed purchase message; dropping\" err=%v", err)
		return true
	}
	return h.Handle(ctx, msg).Ack()
}

// Handle validates the message and creates the payment record.
// Validation failure is terminal: no gateway call, no redelivery. A
// creation the API rejected, or a transport failure reaching it, escalates
// so the broker redelivers.
func (h *PurchaseHandler) Handle(ctx context.Context, msg domain.PurchaseRequestedMessage) Outcome {
	if reason := validatePurchaseRequested(msg); reason != "" {
		log.Printf("level=warn component=purchase_handler msg=\"purchase rejected\" payment_id=%s correlation_id=%s reason=%q",
			msg.PaymentID, msg.CorrelationID, reason)
		return OutcomeRejected
	}

	req := paymentsclient.CreatePaymentRequest{
		PaymentID:     msg.PaymentID,
		UserID:        domain.DeriveID(msg.UserID),
		GameID:        msg.GameID,
		Amount:        msg.Amount,
		Currency:      msg.Currency,
		PaymentMethod: msg.PaymentMethod,
		CorrelationID: msg.CorrelationID,
	}

	payment, err := h.gateway.CreatePayment(ctx, req)
	if err != nil {
		log.Printf("level=error component=purchase_handler msg=\"payment creation failed\" payment_id=%s correlation_id=%s err=%v",
			msg.PaymentID, msg.CorrelationID, err)
		return OutcomeFailed
	}
	if payment == nil {
		log.Printf("level=warn component=purchase_handler msg=\"payment creation rejected by api\" payment_id=%s correlation_id=%s err=%v",
			msg.PaymentID, msg.CorrelationID, ErrRemoteRejection)
		return OutcomeFailed
	}

	log.Printf("level=info component=purchase_handler msg=\"payment created\" payment_id=%s correlation_id=%s status=%s",
		msg.PaymentID, msg.CorrelationID, payment.Status)
	return OutcomeAccepted
}
