package ledger

import (
	"time"
)

// Method represents the payment channel used for a rent payment.
type Method string

const (
	MethodOrange   Method = "orange"
	MethodMTN      Method = "mtn"
	MethodMoov     Method = "moov"
	MethodCard     Method = "card"
	MethodTransfer Method = "transfer"
	MethodUnknown  Method = "—"
)

// Status is the canonical payment state. The backend reports a wider set of
// status strings; only "completed" counts as paid.
type Status string

const (
	StatusPaid   Status = "paid"
	StatusUnpaid Status = "unpaid"
)

// Month identifies a payment period as a structured (year, month) pair.
// The zero value means the period could not be determined.
type Month struct {
	Year  int
	Month time.Month
}

// Known reports whether the period was resolved from its label.
func (m Month) Known() bool {
	return m.Year != 0 && m.Month >= time.January && m.Month <= time.December
}

// PaymentRecord is the canonical, backend-independent payment entry. All
// coercion from the loosely-typed wire format happens in Normalize; fields
// here are safe to use without nil or NaN checks.
type PaymentRecord struct {
	ID         int64
	LeaseID    *int64 // nil when the backend could not resolve the lease
	MonthLabel string // raw display label, e.g. "Novembre 2025"
	Month      Month  // zero when the label did not parse
	Amount     int64  // CFA francs, never negative
	Date       *time.Time
	Method     Method
	Status     Status
	Reference  string

	PropertyTitle   string
	PropertyAddress string
}

// Paid reports whether the record settles its month.
func (r PaymentRecord) Paid() bool {
	return r.Status == StatusPaid
}
