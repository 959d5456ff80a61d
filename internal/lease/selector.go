package lease

import (
	"errors"
	"fmt"
)

// ErrNoActiveLease signals a legitimate empty state, not a failure: the
// tenant has nothing to pay against and the payment workflow must not open.
var ErrNoActiveLease = errors.New("no active lease")

// Active returns the payment-eligible subset of the tenant's leases.
func Active(leases []Lease) []Lease {
	out := make([]Lease, 0, len(leases))

	for _, l := range leases {
		if l.Status == StatusActive {
			out = append(out, l)
		}
	}

	return out
}

// Selection resolves which lease a new payment applies to. With exactly one
// active lease it is auto-selected; with several, the caller must present
// an explicit chooser. Current returns the selected lease as one value, so
// rent, property and landlord always swap together; dependent fields can
// never mix across leases.
type Selection struct {
	choices []Lease
	index   int
	auto    bool
}

// Select builds a Selection from the tenant's lease list. It returns
// ErrNoActiveLease when no lease is eligible.
func Select(leases []Lease) (*Selection, error) {
	active := Active(leases)
	if len(active) == 0 {
		return nil, ErrNoActiveLease
	}

	return &Selection{
		choices: active,
		auto:    len(active) == 1,
	}, nil
}

// Auto reports whether the lease was resolved without user input.
func (s *Selection) Auto() bool { return s.auto }

// Choices returns the eligible leases in the order received.
func (s *Selection) Choices() []Lease { return s.choices }

// Current returns the selected lease.
func (s *Selection) Current() Lease { return s.choices[s.index] }

// Choose switches the selection by lease identifier.
func (s *Selection) Choose(id int64) error {
	for i, l := range s.choices {
		if l.ID == id {
			s.index = i
			return nil
		}
	}

	return fmt.Errorf("lease %d is not eligible for payment", id)
}
