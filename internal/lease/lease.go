package lease

import (
	"time"
)

// Status is the lifecycle state of a rental contract. Only active leases
// are eligible for payment.
type Status string

const (
	StatusDraft      Status = "draft"
	StatusActive     Status = "active"
	StatusTerminated Status = "terminated"
	StatusExpired    Status = "expired"
)

// Lease is a rental agreement between one tenant and one property. It is
// read-only to this client; all fields are coerced from the wire format in
// Normalize and safe to use directly.
type Lease struct {
	ID         int64
	TenantID   int64
	PropertyID int64
	Rent       int64 // monthly rent, CFA francs
	Status     Status

	PropertyTitle   string
	PropertyAddress string
	LandlordName    string

	StartDate time.Time
	EndDate   *time.Time // nil means indeterminate
}
