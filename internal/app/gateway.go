package app

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/fcg/payments-worker/pkg/paymentsclient"
)

// Gateway is the orchestration's view of the payments API client. The
// mark-* calls return false (with a nil error) when the API answered with a
// non-2xx status, and an error only on transport failure.
type Gateway interface {
	CreatePayment(ctx context.Context, req paymentsclient.CreatePaymentRequest) (*paymentsclient.Payment, error)
	GetPayment(ctx context.Context, paymentID uuid.UUID) (*paymentsclient.Payment, error)
	MarkProcessing(ctx context.Context, paymentID uuid.UUID) (bool, error)
	MarkApproved(ctx context.Context, paymentID uuid.UUID, providerResponse string) (bool, error)
	MarkDeclined(ctx context.Context, paymentID uuid.UUID, providerResponse, reason string) (bool, error)
	MarkFailed(ctx context.Context, paymentID uuid.UUID, reason string) (bool, error)
}

// ErrRemoteRejection marks a gateway call the payments API answered with a
// non-2xx status and no transport failure. The cause may be transient on
// the API side, so handlers escalate it for redelivery.
var ErrRemoteRejection = errors.New("payments api rejected the request")
