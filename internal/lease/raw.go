package lease

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/habipro/habipay/internal/encoding"
)

// RawContract mirrors the wire shape of a backend contract. As with
// payments, optional and loosely-typed fields are coerced here and go no
// further.
type RawContract struct {
	ID              json.RawMessage `json:"id"`
	Tenant          json.RawMessage `json:"tenant"`
	Property        json.RawMessage `json:"property"`
	Amount          json.RawMessage `json:"amount"`
	Status          string          `json:"status"`
	PropertyTitle   string          `json:"property_title"`
	PropertyAddress string          `json:"property_address"`
	OwnerName       string          `json:"owner_name"`
	StartDate       string          `json:"start_date"`
	EndDate         *string         `json:"end_date"`
}

// Normalize converts raw backend contracts into Leases. Contracts whose
// identifier or rent amount cannot be coerced are skipped and logged, the
// rest are unaffected.
func Normalize(raws []RawContract) []Lease {
	leases := make([]Lease, 0, len(raws))

	for i, raw := range raws {
		l, err := normalizeOne(raw)
		if err != nil {
			slog.Warn("skipping malformed contract", "index", i, "error", err)
			continue
		}

		leases = append(leases, l)
	}

	return leases
}

func normalizeOne(raw RawContract) (Lease, error) {
	id, err := parseInt(raw.ID)
	if err != nil {
		return Lease{}, fmt.Errorf("id: %w", err)
	}

	rent, err := parseRent(raw.Amount)
	if err != nil {
		return Lease{}, fmt.Errorf("amount: %w", err)
	}

	tenantID, _ := parseInt(raw.Tenant)
	propertyID, _ := parseInt(raw.Property)

	l := Lease{
		ID:              id,
		TenantID:        tenantID,
		PropertyID:      propertyID,
		Rent:            rent,
		Status:          Status(strings.ToLower(strings.TrimSpace(raw.Status))),
		PropertyTitle:   encoding.DecodeText(raw.PropertyTitle),
		PropertyAddress: encoding.DecodeText(raw.PropertyAddress),
		LandlordName:    encoding.DecodeText(raw.OwnerName),
	}

	if t, err := time.Parse(time.DateOnly, raw.StartDate); err == nil {
		l.StartDate = t
	}

	if raw.EndDate != nil {
		if t, err := time.Parse(time.DateOnly, *raw.EndDate); err == nil {
			l.EndDate = &t
		}
	}

	return l, nil
}

var jsonNull = []byte("null")

func parseInt(raw json.RawMessage) (int64, error) {
	if len(raw) == 0 || bytes.Equal(raw, jsonNull) {
		return 0, fmt.Errorf("missing")
	}

	var n int64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, fmt.Errorf("not an integer: %s", raw)
	}

	return n, nil
}

func parseRent(raw json.RawMessage) (int64, error) {
	if len(raw) == 0 || bytes.Equal(raw, jsonNull) {
		return 0, fmt.Errorf("missing")
	}

	var d decimal.Decimal
	if err := json.Unmarshal(raw, &d); err != nil {
		return 0, fmt.Errorf("not a decimal: %s", raw)
	}

	return d.Round(0).IntPart(), nil
}
