package app

import (
	"github.com/google/uuid"

	"github.com/fcg/payments-worker/internal/domain"
)

// fieldRule is one named validation predicate. Rules are evaluated in
// declaration order and the first violated rule's reason becomes the
// rejection reason, so rejections are deterministic.
type fieldRule struct {
	reason string
	valid  func() bool
}

func firstViolation(rules []fieldRule) string {
	for _, r := range rules {
		if !r.valid() {
			return r.reason
		}
	}
	return ""
}

// validatePurchaseRequested checks a purchase-requested message. It returns
// the rejection reason, or "" when the message is valid.
func validatePurchaseRequested(msg domain.PurchaseRequestedMessage) string {
	return firstViolation([]fieldRule{
		{"payment_id must not be empty", func() bool { return msg.PaymentID != uuid.Nil }},
		{"correlation_id must not be empty", func() bool { return msg.CorrelationID != uuid.Nil }},
		{"user_id must not be empty", func() bool { return msg.UserID != "" }},
		{"game_id must not be empty", func() bool { return msg.GameID != "" }},
		{"amount must be greater than zero", func() bool { return msg.Amount.Positive() }},
		{"currency must not be empty", func() bool { return msg.Currency != "" }},
		{"payment_method must not be empty", func() bool { return msg.PaymentMethod != "" }},
	})
}

// validatePaymentRequested checks a payment-requested message. Same rule
// style and ordering as the purchase-side validation.
func validatePaymentRequested(msg domain.PaymentRequestedMessage) string {
	return firstViolation([]fieldRule{
		{"payment_id must not be empty", func() bool { return msg.PaymentID != uuid.Nil }},
		{"correlation_id must not be empty", func() bool { return msg.CorrelationID != uuid.Nil }},
		{"user_id must not be empty", func() bool { return msg.UserID != uuid.Nil }},
		{"game_id must not be empty", func() bool { return msg.GameID != "" }},
		{"amount must be greater than zero", func() bool { return msg.Amount.Positive() }},
		{"currency must not be empty", func() bool { return msg.Currency != "" }},
		{"payment_method must not be empty", func() bool { return msg.PaymentMethod != "" }},
	})
}
