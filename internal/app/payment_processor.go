/**
 * @description
 * Processor for the payment-requested workflow. It drives the remote status
 * lifecycle (processing -> approved/declined, or failed) through the
 * payments API, publishes the intermediate status events, and publishes
 * exactly one GamePurchaseCompleted event for every message that reaches the
 * processing step, whatever the outcome.
 *
 * Failure semantics: any error after processing begins switches to the
 * failed branch (best-effort mark-failed, PaymentFailed event, completion
 * event with status failed) and the message escalates for redelivery. A
 * redelivery re-executes the whole processor, so downstream consumers may
 * see duplicate completion events; the optional deduper suppresses those
 * when Redis is configured.
 */
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/fcg/payments-worker/internal/domain"
)

// CompletionDeduper suppresses duplicate completion events across
// redeliveries, keyed by payment id and terminal status. Best-effort: a
// deduper error never blocks the publish.
type CompletionDeduper interface {
	FirstPublish(ctx context.Context, paymentID string, status string) (bool, error)
}

// PaymentProcessor consumes payment-requested messages.
type PaymentProcessor struct {
	gateway   Gateway
	publisher EventPublisher
	strategy  DecisionStrategy
	deduper   CompletionDeduper
}

func NewPaymentProcessor(gateway Gateway, publisher EventPublisher, strategy DecisionStrategy) *PaymentProcessor {
	if strategy == nil {
		strategy = ParityStrategy{}
	}
	return &PaymentProcessor{
		gateway:   gateway,
		publisher: publisher,
		strategy:  strategy,
	}
}

// SetCompletionDeduper enables duplicate suppression for completion events.
// Without a deduper, downstream consumers must dedupe by payment id and
// status themselves.
func (p *PaymentProcessor) SetCompletionDeduper(d CompletionDeduper) {
	p.deduper = d
}

// HandleDelivery is the broker adapter: it decodes one delivery body and
// maps the processing outcome to the ack/requeue primitive.
func (p *PaymentProcessor) HandleDelivery(ctx context.Context, body []byte) bool {
	var wire domain.PaymentRequestedWire
	if err := json.Unmarshal(body, &wire); err != nil {
		log.Printf("level=error component=payment_processor msg=\"malformed payment message; dropping\" err=%v", err)
		return true
	}
	return p.Process(ctx, wire.ToMessage()).Ack()
}

// Process runs the full decision lifecycle for one validated message.
func (p *PaymentProcessor) Process(ctx context.Context, msg domain.PaymentRequestedMessage) Outcome {
	if reason := validatePaymentRequested(msg); reason != "" {
		log.Printf("level=warn component=payment_processor msg=\"payment rejected\" payment_id=%s correlation_id=%s reason=%q",
			msg.PaymentID, msg.CorrelationID, reason)
		return OutcomeRejected
	}

	log.Printf("level=info component=payment_processor msg=\"processing payment\" payment_id=%s correlation_id=%s user_id=%s game_id=%s amount=%s",
		msg.PaymentID, msg.CorrelationID, msg.UserID, msg.GameID, msg.Amount)

	if err := p.runLifecycle(ctx, msg); err != nil {
		p.failPayment(ctx, msg, err)
		return OutcomeFailed
	}
	return OutcomeAccepted
}

func (p *PaymentProcessor) runLifecycle(ctx context.Context, msg domain.PaymentRequestedMessage) error {
	ok, err := p.gateway.MarkProcessing(ctx, msg.PaymentID)
	if err != nil {
		return fmt.Errorf("mark processing: %w", err)
	}
	if !ok {
		return fmt.Errorf("mark processing: %w", ErrRemoteRejection)
	}
	if err := p.publisher.Publish(ctx, domain.NewPaymentProcessingEvent(msg.PaymentID, msg.CorrelationID)); err != nil {
		return fmt.Errorf("publish processing event: %w", err)
	}

	decision := p.strategy.Decide(msg)

	var status string
	if decision.Approved {
		ok, err = p.gateway.MarkApproved(ctx, msg.PaymentID, decision.ProviderResponse)
		if err != nil {
			return fmt.Errorf("mark approved: %w", err)
		}
		if !ok {
			return fmt.Errorf("mark approved: %w", ErrRemoteRejection)
		}
		if err := p.publisher.Publish(ctx, domain.NewPaymentApprovedEvent(msg.PaymentID, msg.CorrelationID, decision.ProviderResponse)); err != nil {
			return fmt.Errorf("publish approved event: %w", err)
		}
		status = domain.StatusApproved
	} else {
		ok, err = p.gateway.MarkDeclined(ctx, msg.PaymentID, decision.ProviderResponse, decision.Reason)
		if err != nil {
			return fmt.Errorf("mark declined: %w", err)
		}
		if !ok {
			return fmt.Errorf("mark declined: %w", ErrRemoteRejection)
		}
		if err := p.publisher.Publish(ctx, domain.NewPaymentDeclinedEvent(msg.PaymentID, msg.CorrelationID, decision.Reason)); err != nil {
			return fmt.Errorf("publish declined event: %w", err)
		}
		status = domain.StatusDeclined
	}

	if err := p.publishCompletion(ctx, msg, status, decision.Reason); err != nil {
		return fmt.Errorf("publish completion event: %w", err)
	}

	log.Printf("level=info component=payment_processor msg=\"payment processed\" payment_id=%s correlation_id=%s status=%s",
		msg.PaymentID, msg.CorrelationID, status)
	return nil
}

// failPayment runs the compensating actions for a lifecycle failure:
// best-effort mark-failed, the PaymentFailed status event, and the terminal
// completion event with status failed. Their own failures are logged, not
// escalated; the original error already forces redelivery.
func (p *PaymentProcessor) failPayment(ctx context.Context, msg domain.PaymentRequestedMessage, cause error) {
	log.Printf("level=error component=payment_processor msg=\"payment processing failed\" payment_id=%s correlation_id=%s err=%v",
		msg.PaymentID, msg.CorrelationID, cause)

	if ok, err := p.gateway.MarkFailed(ctx, msg.PaymentID, cause.Error()); err != nil {
		log.Printf("level=warn component=payment_processor msg=\"mark failed errored\" payment_id=%s err=%v", msg.PaymentID, err)
	} else if !ok {
		log.Printf("level=warn component=payment_processor msg=\"mark failed rejected by api\" payment_id=%s", msg.PaymentID)
	}

	if err := p.publisher.Publish(ctx, domain.NewPaymentFailedEvent(msg.PaymentID, msg.CorrelationID, cause.Error())); err != nil {
		log.Printf("level=warn component=payment_processor msg=\"failed event publish errored\" payment_id=%s err=%v", msg.PaymentID, err)
	}

	// The completion event is owed on every path that began processing.
	if err := p.publishCompletion(ctx, msg, domain.StatusFailed, cause.Error()); err != nil {
		log.Printf("level=error component=payment_processor msg=\"completion event publish errored on failure path\" payment_id=%s err=%v",
			msg.PaymentID, err)
	}
}

func (p *PaymentProcessor) publishCompletion(ctx context.Context, msg domain.PaymentRequestedMessage, status, reason string) error {
	if p.deduper != nil {
		first, err := p.deduper.FirstPublish(ctx, msg.PaymentID.String(), status)
		if err != nil {
			log.Printf("level=warn component=payment_processor msg=\"completion dedup unavailable; publishing anyway\" payment_id=%s err=%v",
				msg.PaymentID, err)
		} else if !first {
			log.Printf("level=info component=payment_processor msg=\"duplicate completion suppressed\" payment_id=%s status=%s",
				msg.PaymentID, status)
			return nil
		}
	}
	return p.publisher.Publish(ctx, domain.NewGamePurchaseCompletedEvent(msg, status, reason))
}
