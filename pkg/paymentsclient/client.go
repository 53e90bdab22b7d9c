/**
 * @description
 * This package provides the client for the internal FCG Payments API. It is
 * the only component allowed to perform network calls against that API: it
 * encapsulates authenticated request construction, response interpretation,
 * and per-call dependency tracking.
 *
 * Response contract:
 * - CreatePayment: 2xx decodes the created payment; any other status returns
 *   (nil, nil) and the caller decides retry policy; transport failures
 *   propagate as errors.
 * - GetPayment: 404 means the payment does not exist and returns (nil, nil);
 *   other non-2xx statuses are errors.
 * - Mark*: true only on 2xx, false on other statuses, error only on
 *   transport failure.
 *
 * @dependencies
 * - bytes, context, encoding/json, net/http, time: Standard Go libraries.
 * - github.com/google/uuid: Payment identifiers.
 */
package paymentsclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/fcg/payments-worker/internal/domain"
	"github.com/fcg/payments-worker/internal/observability"
)

const internalTokenHeader = "x-internal-token"

// Client is a client for the FCG Payments API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	token   string
	tracker observability.Tracker
}

// NewClient creates a new payments API client. The internal token is
// attached to every request; the tracker receives one observation per call.
func NewClient(baseURL, internalToken string, tracker observability.Tracker) *Client {
	if tracker == nil {
		tracker = observability.NopTracker{}
	}
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		token:   internalToken,
		tracker: tracker,
	}
}

// CreatePaymentRequest is the payload for the payment creation endpoint.
type CreatePaymentRequest struct {
	PaymentID     uuid.UUID     `json:"paymentId"`
	UserID        uuid.UUID     `json:"userId"`
	GameID        string        `json:"gameId"`
	Amount        domain.Amount `json:"amount"`
	Currency      string        `json:"currency"`
	PaymentMethod string        `json:"paymentMethod"`
	CorrelationID uuid.UUID     `json:"correlationId"`
}

// Payment is the API's view of a payment record. The worker only reads the
// status; the record's lifecycle is owned entirely by the API.
type Payment struct {
	PaymentID uuid.UUID `json:"paymentId"`
	Status    string    `json:"status"`
}

// CreatePayment registers a new payment with the API. A non-2xx response is
// a definite rejection, not an error: it returns (nil, nil) and the caller
// decides what to do.
func (c *Client) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*Payment, error) {
	endpoint := "/internal/payments"

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal create payment request: %w", err)
	}

	resp, duration, err := c.do(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		c.tracker.TrackDependency(http.MethodPost, endpoint, duration, false)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.tracker.TrackDependency(http.MethodPost, endpoint, duration, false)
		respBody, _ := io.ReadAll(resp.Body)
		log.Printf("level=warn component=payments_client op=create_payment payment_id=%s status=%d body=%q",
			req.PaymentID, resp.StatusCode, truncate(respBody, 256))
		return nil, nil
	}

	c.tracker.TrackDependency(http.MethodPost, endpoint, duration, true)

	var payment Payment
	if err := json.NewDecoder(resp.Body).Decode(&payment); err != nil {
		return nil, fmt.Errorf("decode create payment response: %w", err)
	}
	return &payment, nil
}

// GetPayment fetches a payment record. A 404 is not an error; it returns
// (nil, nil).
func (c *Client) GetPayment(ctx context.Context, paymentID uuid.UUID) (*Payment, error) {
	endpoint := "/internal/payments/" + paymentID.String()

	resp, duration, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.tracker.TrackDependency(http.MethodGet, endpoint, duration, false)
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		c.tracker.TrackDependency(http.MethodGet, endpoint, duration, true)
		var payment Payment
		if err := json.NewDecoder(resp.Body).Decode(&payment); err != nil {
			return nil, fmt.Errorf("decode payment response: %w", err)
		}
		return &payment, nil
	case resp.StatusCode == http.StatusNotFound:
		c.tracker.TrackDependency(http.MethodGet, endpoint, duration, true)
		return nil, nil
	default:
		c.tracker.TrackDependency(http.MethodGet, endpoint, duration, false)
		return nil, fmt.Errorf("get payment %s: unexpected status %d", paymentID, resp.StatusCode)
	}
}

// MarkProcessing transitions the payment to the processing status.
func (c *Client) MarkProcessing(ctx context.Context, paymentID uuid.UUID) (bool, error) {
	return c.markStatus(ctx, paymentID, "mark-processing", nil)
}

// MarkApproved records the provider approval.
func (c *Client) MarkApproved(ctx context.Context, paymentID uuid.UUID, providerResponse string) (bool, error) {
	payload := struct {
		ProviderResponse string `json:"providerResponse"`
	}{ProviderResponse: providerResponse}
	return c.markStatus(ctx, paymentID, "mark-approved", payload)
}

// MarkDeclined records the provider decline and its reason.
func (c *Client) MarkDeclined(ctx context.Context, paymentID uuid.UUID, providerResponse, reason string) (bool, error) {
	payload := struct {
		ProviderResponse string `json:"providerResponse"`
		Reason           string `json:"reason"`
	}{ProviderResponse: providerResponse, Reason: reason}
	return c.markStatus(ctx, paymentID, "mark-declined", payload)
}

// MarkFailed records a processing failure. Called best-effort from the
// failure path, so callers treat its own errors as non-fatal.
func (c *Client) MarkFailed(ctx context.Context, paymentID uuid.UUID, reason string) (bool, error) {
	payload := struct {
		Reason string `json:"reason"`
	}{Reason: reason}
	return c.markStatus(ctx, paymentID, "mark-failed", payload)
}

func (c *Client) markStatus(ctx context.Context, paymentID uuid.UUID, action string, payload interface{}) (bool, error) {
	endpoint := fmt.Sprintf("/internal/payments/%s/%s", paymentID, action)

	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return false, fmt.Errorf("marshal %s request: %w", action, err)
		}
	}

	resp, duration, err := c.do(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		c.tracker.TrackDependency(http.MethodPost, endpoint, duration, false)
		return false, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.tracker.TrackDependency(http.MethodPost, endpoint, duration, true)
		return true, nil
	}

	c.tracker.TrackDependency(http.MethodPost, endpoint, duration, false)
	log.Printf("level=warn component=payments_client op=%s payment_id=%s status=%d msg=\"status update not accepted\"",
		action, paymentID, resp.StatusCode)
	return false, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body []byte) (*http.Response, time.Duration, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+endpoint, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("create %s %s request: %w", method, endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(internalTokenHeader, c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		return nil, duration, fmt.Errorf("execute %s %s: %w", method, endpoint, err)
	}
	return resp, duration, nil
}

func truncate(b []byte, max int) string {
	if len(b) <= max {
		return string(b)
	}
	return string(b[:max])
}
