package ledger

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/habipro/habipay/internal/encoding"
)

// RawPayment mirrors the wire shape of a backend payment record. Fields the
// backend leaves out or types inconsistently stay loose here and are coerced
// in Normalize; nothing past this boundary sees them.
type RawPayment struct {
	ID                   json.RawMessage `json:"id"`
	Location             json.RawMessage `json:"location"`
	Amount               json.RawMessage `json:"amount"`
	PaymentMonth         string          `json:"payment_month"`
	PaymentDate          json.RawMessage `json:"payment_date"`
	PaymentMethod        string          `json:"payment_method"`
	Status               string          `json:"status"`
	TransactionReference string          `json:"transaction_reference"`
	PropertyTitle        string          `json:"property_title"`
	PropertyAddress      string          `json:"property_address"`
}

// Normalize converts a raw backend payment list into the canonical ledger.
// Records whose identifier or amount cannot be coerced are skipped and
// logged; malformed optional fields degrade to safe defaults instead. The
// function is pure: the same input always yields the same output.
func Normalize(raws []RawPayment) []PaymentRecord {
	records := make([]PaymentRecord, 0, len(raws))

	for i, raw := range raws {
		rec, err := normalizeOne(raw)
		if err != nil {
			slog.Warn("skipping malformed payment record", "index", i, "error", err)
			continue
		}

		records = append(records, rec)
	}

	return records
}

func normalizeOne(raw RawPayment) (PaymentRecord, error) {
	id, err := parseID(raw.ID)
	if err != nil {
		return PaymentRecord{}, fmt.Errorf("id: %w", err)
	}

	amount, err := parseAmount(raw.Amount)
	if err != nil {
		return PaymentRecord{}, fmt.Errorf("amount: %w", err)
	}

	label := encoding.DecodeText(strings.TrimSpace(raw.PaymentMonth))

	month, ok := ParseMonthLabel(label)
	if !ok && label != "" {
		slog.Debug("unresolved month label", "label", label)
	}

	return PaymentRecord{
		ID:              id,
		LeaseID:         parseOptionalID(raw.Location),
		MonthLabel:      label,
		Month:           month,
		Amount:          amount,
		Date:            parseDate(raw.PaymentDate),
		Method:          normalizeMethod(raw.PaymentMethod),
		Status:          normalizeStatus(raw.Status),
		Reference:       strings.TrimSpace(raw.TransactionReference),
		PropertyTitle:   encoding.DecodeText(raw.PropertyTitle),
		PropertyAddress: encoding.DecodeText(raw.PropertyAddress),
	}, nil
}

// normalizeStatus maps the backend's status vocabulary onto the canonical
// pair. Only "completed" settles a month; pending, failed, cancelled and
// anything the backend invents later count as unpaid.
func normalizeStatus(s string) Status {
	if strings.EqualFold(strings.TrimSpace(s), "completed") {
		return StatusPaid
	}

	return StatusUnpaid
}

func normalizeMethod(s string) Method {
	switch Method(strings.ToLower(strings.TrimSpace(s))) {
	case MethodOrange:
		return MethodOrange
	case MethodMTN:
		return MethodMTN
	case MethodMoov:
		return MethodMoov
	case MethodCard:
		return MethodCard
	case MethodTransfer:
		return MethodTransfer
	}

	return MethodUnknown
}
