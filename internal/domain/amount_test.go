package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestAmountFromString_PreservesPrecision(t *testing.T) {
	got, err := AmountFromString("19.9")
	if err != nil {
		t.Fatalf("AmountFromString returned error: %v", err)
	}
	if !got.Equal(decimal.RequireFromString("19.90")) {
		t.Fatalf("expected 19.9 to equal 19.90, got %s", got)
	}
}

func TestAmountFromString_RejectsNonDecimal(t *testing.T) {
	if _, err := AmountFromString("nineteen"); err == nil {
		t.Fatal("expected error for non-decimal input")
	}
}

func TestAmount_Cents(t *testing.T) {
	tests := []struct {
		amount string
		want   int64
	}{
		{"10.00", 1000},
		{"10.01", 1001},
		{"19.9", 1990},
		{"0.01", 1},
		{"5", 500},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			a, err := AmountFromString(tt.amount)
			if err != nil {
				t.Fatalf("AmountFromString returned error: %v", err)
			}
			if got := a.Cents(); got != tt.want {
				t.Fatalf("expected %d cents, got %d", tt.want, got)
			}
		})
	}
}

func TestAmount_UnmarshalAcceptsNumberAndString(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"number form", `{"amount": 19.9}`},
		{"string form", `{"amount": "19.9"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var payload struct {
				Amount Amount `json:"amount"`
			}
			if err := json.Unmarshal([]byte(tt.raw), &payload); err != nil {
				t.Fatalf("unmarshal returned error: %v", err)
			}
			if !payload.Amount.Equal(decimal.RequireFromString("19.90")) {
				t.Fatalf("expected 19.90, got %s", payload.Amount)
			}
		})
	}
}

func TestAmount_UnmarshalRejectsInvalidString(t *testing.T) {
	var payload struct {
		Amount Amount `json:"amount"`
	}
	if err := json.Unmarshal([]byte(`{"amount": "12,50"}`), &payload); err == nil {
		t.Fatal("expected error for invalid decimal literal")
	}
}

func TestAmount_MarshalUsesTwoFractionalDigits(t *testing.T) {
	a, err := AmountFromString("19.9")
	if err != nil {
		t.Fatalf("AmountFromString returned error: %v", err)
	}

	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal returned error: %v", err)
	}
	if string(data) != "19.90" {
		t.Fatalf("expected 19.90, got %s", data)
	}
}

func TestAmount_RoundTripKeepsValue(t *testing.T) {
	a, err := AmountFromString("10.01")
	if err != nil {
		t.Fatalf("AmountFromString returned error: %v", err)
	}

	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal returned error: %v", err)
	}

	var back Amount
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal returned error: %v", err)
	}
	if !back.Equal(a.Decimal) {
		t.Fatalf("round trip changed value: %s -> %s", a, back)
	}
}
