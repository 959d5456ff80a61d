package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/habipro/habipay/internal/api"
	"github.com/habipro/habipay/internal/ledger"
	"github.com/habipro/habipay/internal/lease"
)

//go:generate mockgen -source=service.go -destination=api_mock.go -package=payment
type API interface {
	ListContracts(ctx context.Context) ([]lease.RawContract, error)
	ListPayments(ctx context.Context) ([]ledger.RawPayment, error)
	SubmitPayment(ctx context.Context, req api.SubmitRequest) (*api.Receipt, error)
}

// Service drives the payment workflow: resolving eligible leases, serving
// the canonical ledger, and submitting payments under the duplicate-guard
// discipline.
type Service struct {
	api API
}

func NewService(api API) *Service {
	return &Service{api: api}
}

// EligibleLeases fetches the tenant's contracts and resolves the payment
// selection. lease.ErrNoActiveLease passes through untouched so callers
// can render the blocking empty state rather than a failure.
func (s *Service) EligibleLeases(ctx context.Context) (*lease.Selection, error) {
	raws, err := s.api.ListContracts(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading contracts: %w", err)
	}

	return lease.Select(lease.Normalize(raws))
}

// Ledger fetches and normalizes the tenant's payment history. Always a
// fresh fetch; there is no client-side cache to invalidate.
func (s *Service) Ledger(ctx context.Context) ([]ledger.PaymentRecord, error) {
	raws, err := s.api.ListPayments(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading payments: %w", err)
	}

	return ledger.Normalize(raws), nil
}

// Pre-flight validation failures. These never reach the network.
var (
	ErrNoMethod = errors.New("no payment method chosen")
	ErrNoLease  = errors.New("no lease resolved")
)

type SubmitParams struct {
	Lease      lease.Lease
	MonthLabel string
	Method     ledger.Method
	AutoPay    bool
}

type SubmitResult struct {
	Reference string
	Ledger    []ledger.PaymentRecord // refreshed after the payment landed
}

// Submit runs the submission preconditions in order (method chosen, lease
// resolved, duplicate guard clear) and posts the payment. The guard runs
// against a ledger re-fetched here, immediately before the POST, not
// against whatever the caller loaded at modal-open time: that closes as
// much of the two-tabs-same-month race as the client can. A conflict the
// backend still reports comes back as an *api.APIError and is an expected,
// recoverable outcome.
func (s *Service) Submit(ctx context.Context, p SubmitParams) (*SubmitResult, error) {
	if p.Method == "" || p.Method == ledger.MethodUnknown {
		return nil, ErrNoMethod
	}

	if p.Lease.ID == 0 {
		return nil, ErrNoLease
	}

	current, err := s.Ledger(ctx)
	if err != nil {
		return nil, fmt.Errorf("refreshing ledger: %w", err)
	}

	if err := ledger.CanSubmit(p.Lease.ID, p.MonthLabel, current); err != nil {
		return nil, err
	}

	leaseID := p.Lease.ID

	receipt, err := s.api.SubmitPayment(ctx, api.SubmitRequest{
		Tenant:             p.Lease.TenantID,
		Property:           p.Lease.PropertyID,
		Location:           &leaseID,
		Amount:             p.Lease.Rent,
		PaymentMonth:       p.MonthLabel,
		PaymentMethod:      string(p.Method),
		AutoPaymentEnabled: p.AutoPay,
		Status:             "completed",
	})
	if err != nil {
		return nil, err
	}

	refreshed, err := s.Ledger(ctx)
	if err != nil {
		// The payment landed; a failed refresh must not turn success into
		// failure. The next view-open re-fetches anyway.
		slog.Warn("ledger refresh after payment failed", "error", err)
		refreshed = nil
	}

	return &SubmitResult{Reference: receipt.Reference, Ledger: refreshed}, nil
}
