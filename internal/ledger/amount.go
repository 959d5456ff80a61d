package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var jsonNull = []byte("null")

// parseID accepts the identifier as a JSON number or a numeric string.
func parseID(raw json.RawMessage) (int64, error) {
	if len(raw) == 0 || bytes.Equal(raw, jsonNull) {
		return 0, fmt.Errorf("missing")
	}

	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			return n, nil
		}
	}

	return 0, fmt.Errorf("not an integer: %s", raw)
}

func parseOptionalID(raw json.RawMessage) *int64 {
	n, err := parseID(raw)
	if err != nil {
		return nil
	}

	return &n
}

// parseAmount coerces the wire amount into whole CFA francs. The backend
// sends a decimal string ("350000.00"), a bare number, or null; null and
// absent coerce to 0. Negative amounts clamp to 0.
func parseAmount(raw json.RawMessage) (int64, error) {
	if len(raw) == 0 || bytes.Equal(raw, jsonNull) {
		return 0, nil
	}

	var d decimal.Decimal
	if err := json.Unmarshal(raw, &d); err != nil {
		return 0, fmt.Errorf("not a decimal: %s", raw)
	}

	francs := d.Round(0).IntPart()
	if francs < 0 {
		return 0, nil
	}

	return francs, nil
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// parseDate returns nil for null, absent, or unusable dates; a record
// without a date is "recorded but not yet dated", never "Invalid Date".
func parseDate(raw json.RawMessage) *time.Time {
	if len(raw) == 0 || bytes.Equal(raw, jsonNull) {
		return nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}

	return nil
}
