package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/habipro/habipay/internal/auth"
	"github.com/habipro/habipay/internal/ledger"
	"github.com/habipro/habipay/internal/lease"
)

// Client talks to the HabiPro REST API on behalf of the authenticated
// tenant. List endpoints may answer with a bare JSON array or a paginated
// `{"results": [...]}` wrapper; both are accepted transparently.
type Client struct {
	baseURL string
	tokens  auth.TokenSource
	client  *http.Client
}

// NewClient creates a Client for the given API root (e.g.
// "http://localhost:8000/api"). The token source is attached to every
// request as an Authorization header.
func NewClient(baseURL string, tokens auth.TokenSource, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		client:  &http.Client{Timeout: timeout},
	}
}

// ListContracts fetches the tenant's contracts, raw. Filtering to active
// leases and coercion are the lease package's concern.
func (c *Client) ListContracts(ctx context.Context) ([]lease.RawContract, error) {
	body, err := c.do(ctx, http.MethodGet, "/contracts/", nil)
	if err != nil {
		return nil, fmt.Errorf("listing contracts: %w", err)
	}

	return decodeList[lease.RawContract](body)
}

// ListPayments fetches the tenant's payment history, raw.
func (c *Client) ListPayments(ctx context.Context) ([]ledger.RawPayment, error) {
	body, err := c.do(ctx, http.MethodGet, "/payments/", nil)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}

	return decodeList[ledger.RawPayment](body)
}

// SubmitRequest is the payment submission payload. Status is always
// "completed"; the backend decides whether to honor or reject it.
type SubmitRequest struct {
	Tenant             int64  `json:"tenant"`
	Property           int64  `json:"property"`
	Location           *int64 `json:"location,omitempty"`
	Amount             int64  `json:"amount"`
	PaymentMonth       string `json:"payment_month"`
	PaymentMethod      string `json:"payment_method"`
	AutoPaymentEnabled bool   `json:"auto_payment_enabled"`
	Status             string `json:"status"`
}

// Receipt is the server's acknowledgement of a successful submission.
type Receipt struct {
	PaymentID int64  `json:"id"`
	Reference string `json:"transaction_reference"`
}

// SubmitPayment posts a payment. A backend rejection comes back as an
// *APIError so the caller can distinguish a field-keyed month conflict
// from a generic failure; transport errors stay plain.
func (c *Client) SubmitPayment(ctx context.Context, req SubmitRequest) (*Receipt, error) {
	if req.Status == "" {
		req.Status = "completed"
	}

	body, err := c.do(ctx, http.MethodPost, "/payments/", req)
	if err != nil {
		return nil, fmt.Errorf("submitting payment: %w", err)
	}

	var receipt Receipt
	if err := json.Unmarshal(body, &receipt); err != nil {
		return nil, fmt.Errorf("decoding receipt: %w", err)
	}

	return &receipt, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	token, err := c.tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("session token: %w", err)
	}

	var reqBody io.Reader

	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}

		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Authorization", "Token "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, parseAPIError(resp.StatusCode, body)
	}

	return body, nil
}

// decodeList accepts both list shapes the backend is known to produce.
func decodeList[T any](body []byte) ([]T, error) {
	var items []T
	if err := json.Unmarshal(body, &items); err == nil {
		return items, nil
	}

	var wrapped struct {
		Results []T `json:"results"`
	}

	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("unexpected list shape: %w", err)
	}

	return wrapped.Results, nil
}
