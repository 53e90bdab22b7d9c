package app

import "github.com/fcg/payments-worker/internal/domain"

// Decision is the approve/decline verdict for a validated payment request.
type Decision struct {
	Approved         bool
	ProviderResponse string
	Reason           string
}

// DecisionStrategy decides the outcome of a validated payment request. The
// strategy is injected at construction so a real payment-provider
// integration can replace the default without touching the orchestration
// state machine.
type DecisionStrategy interface {
	Decide(msg domain.PaymentRequestedMessage) Decision
}

const (
	approvedReason = "payment approved by provider"
	declinedReason = "payment declined by provider"
)

// ParityStrategy is the development stand-in for a provider integration:
// an even integer-cent amount is approved, an odd one is declined.
// 10.00 -> 1000 -> approved; 10.01 -> 1001 -> declined.
type ParityStrategy struct{}

func (ParityStrategy) Decide(msg domain.PaymentRequestedMessage) Decision {
	if msg.Amount.Cents()%2 == 0 {
		return Decision{Approved: true, ProviderResponse: domain.StatusApproved, Reason: approvedReason}
	}
	return Decision{Approved: false, ProviderResponse: domain.StatusDeclined, Reason: declinedReason}
}
