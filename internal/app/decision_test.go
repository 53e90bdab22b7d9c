package app

import (
	"testing"

	"github.com/fcg/payments-worker/internal/domain"
)

func TestParityStrategy_Decide(t *testing.T) {
	tests := []struct {
		amount       string
		wantApproved bool
	}{
		{"10.00", true},  // 1000 cents, even
		{"10.01", false}, // 1001 cents, odd
		{"5.00", true},
		{"0.01", false},
		{"19.9", true}, // 1990 cents
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			amount, err := domain.AmountFromString(tt.amount)
			if err != nil {
				t.Fatalf("AmountFromString returned error: %v", err)
			}

			decision := ParityStrategy{}.Decide(domain.PaymentRequestedMessage{Amount: amount})

			if decision.Approved != tt.wantApproved {
				t.Fatalf("expected approved=%t for amount %s, got %t", tt.wantApproved, tt.amount, decision.Approved)
			}
			if tt.wantApproved {
				if decision.ProviderResponse != domain.StatusApproved || decision.Reason != approvedReason {
					t.Fatalf("unexpected approval payload: %+v", decision)
				}
			} else {
				if decision.ProviderResponse != domain.StatusDeclined || decision.Reason != declinedReason {
					t.Fatalf("unexpected decline payload: %+v", decision)
				}
			}
		})
	}
}

func TestParityStrategy_IsDeterministic(t *testing.T) {
	amount, err := domain.AmountFromString("42.42")
	if err != nil {
		t.Fatalf("AmountFromString returned error: %v", err)
	}
	msg := domain.PaymentRequestedMessage{Amount: amount}

	first := ParityStrategy{}.Decide(msg)
	second := ParityStrategy{}.Decide(msg)

	if first != second {
		t.Fatalf("expected identical decisions, got %+v and %+v", first, second)
	}
}
