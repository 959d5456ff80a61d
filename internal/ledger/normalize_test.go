package ledger_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habipro/habipay/internal/ledger"
)

func rawList(t *testing.T, body string) []ledger.RawPayment {
	t.Helper()

	var raws []ledger.RawPayment
	require.NoError(t, json.Unmarshal([]byte(body), &raws))

	return raws
}

func TestNormalize_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status string
		want   ledger.Status
	}{
		{name: "Completed", status: "completed", want: ledger.StatusPaid},
		{name: "Pending", status: "pending", want: ledger.StatusUnpaid},
		{name: "Failed", status: "failed", want: ledger.StatusUnpaid},
		{name: "Cancelled", status: "cancelled", want: ledger.StatusUnpaid},
		{name: "Empty", status: "", want: ledger.StatusUnpaid},
		{name: "Unanticipated", status: "refunded", want: ledger.StatusUnpaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := ledger.Normalize([]ledger.RawPayment{{
				ID:     json.RawMessage(`1`),
				Amount: json.RawMessage(`1000`),
				Status: tt.status,
			}})

			require.Len(t, records, 1)
			assert.Equal(t, tt.want, records[0].Status)
		})
	}
}

func TestNormalize_NullAmountAndDate(t *testing.T) {
	// A record with amount: null and payment_date: null must normalize to
	// amount 0 and a nil date, never NaN or "Invalid Date".
	records := ledger.Normalize(rawList(t, `[
		{"id": 7, "location": 3, "amount": null, "payment_month": "Novembre 2025",
		 "payment_date": null, "payment_method": "", "status": "pending"}
	]`))

	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, int64(0), rec.Amount)
	assert.Nil(t, rec.Date)
	assert.Equal(t, ledger.MethodUnknown, rec.Method)

	buckets, excluded := ledger.Aggregate(records)
	assert.Zero(t, excluded)
	assert.Equal(t, int64(0), buckets[time.November-1].Amount)
}

func TestNormalize_AmountCoercion(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   int64
	}{
		{name: "DecimalString", amount: `"350000.00"`, want: 350000},
		{name: "Number", amount: `350000`, want: 350000},
		{name: "Float", amount: `12500.5`, want: 12501}, // rounds half away from zero
		{name: "Null", amount: `null`, want: 0},
		{name: "Negative", amount: `-100`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := ledger.Normalize([]ledger.RawPayment{{
				ID:     json.RawMessage(`1`),
				Amount: json.RawMessage(tt.amount),
			}})

			require.Len(t, records, 1)
			assert.Equal(t, tt.want, records[0].Amount)
		})
	}
}

func TestNormalize_SkipsMalformedRecordOnly(t *testing.T) {
	records := ledger.Normalize(rawList(t, `[
		{"id": 1, "amount": "250000.00", "payment_month": "Octobre 2025", "status": "completed"},
		{"id": null, "amount": "250000.00", "payment_month": "Novembre 2025", "status": "completed"},
		{"id": 3, "amount": "not a number", "payment_month": "Novembre 2025", "status": "completed"},
		{"id": 4, "amount": 250000, "payment_month": "Décembre 2025", "status": "pending"}
	]`))

	// The two malformed records are dropped, the rest survive in order.
	require.Len(t, records, 2)
	assert.Equal(t, int64(1), records[0].ID)
	assert.Equal(t, int64(4), records[1].ID)
}

func TestNormalize_MonthLabelParsedAtBoundary(t *testing.T) {
	records := ledger.Normalize(rawList(t, `[
		{"id": 1, "amount": 1000, "payment_month": "Novembre 2025"},
		{"id": 2, "amount": 1000, "payment_month": "n'importe quoi"}
	]`))

	require.Len(t, records, 2)
	assert.True(t, records[0].Month.Known())
	assert.Equal(t, 2025, records[0].Month.Year)
	assert.Equal(t, time.November, records[0].Month.Month)

	// Unparseable labels stay raw; downstream falls back to the label.
	assert.False(t, records[1].Month.Known())
	assert.Equal(t, "n'importe quoi", records[1].MonthLabel)
}

func TestNormalize_RepairsMojibakeLabels(t *testing.T) {
	// "Décembre 2025" in Windows-1252.
	label := string([]byte{'D', 0xE9, 'c', 'e', 'm', 'b', 'r', 'e', ' ', '2', '0', '2', '5'})

	records := ledger.Normalize([]ledger.RawPayment{{
		ID:           json.RawMessage(`1`),
		Amount:       json.RawMessage(`1000`),
		PaymentMonth: label,
	}})

	require.Len(t, records, 1)
	assert.Equal(t, "Décembre 2025", records[0].MonthLabel)
	assert.Equal(t, time.December, records[0].Month.Month)
}

func TestNormalize_Idempotent(t *testing.T) {
	raws := rawList(t, `[
		{"id": 1, "location": 3, "amount": "350000.00", "payment_month": "Novembre 2025",
		 "payment_date": "2025-11-03T10:12:00Z", "payment_method": "orange",
		 "status": "completed", "transaction_reference": "HP-A1B2C3"},
		{"id": 2, "amount": null, "payment_month": "???", "status": "pending"}
	]`)

	first := ledger.Normalize(raws)
	second := ledger.Normalize(raws)
	assert.Equal(t, first, second)
}

func TestNormalize_Methods(t *testing.T) {
	tests := []struct {
		raw  string
		want ledger.Method
	}{
		{raw: "orange", want: ledger.MethodOrange},
		{raw: "mtn", want: ledger.MethodMTN},
		{raw: "moov", want: ledger.MethodMoov},
		{raw: "card", want: ledger.MethodCard},
		{raw: "transfer", want: ledger.MethodTransfer},
		{raw: "", want: ledger.MethodUnknown},
		{raw: "cheque", want: ledger.MethodUnknown},
	}

	for _, tt := range tests {
		records := ledger.Normalize([]ledger.RawPayment{{
			ID:            json.RawMessage(`1`),
			Amount:        json.RawMessage(`0`),
			PaymentMethod: tt.raw,
		}})

		require.Len(t, records, 1)
		assert.Equal(t, tt.want, records[0].Method, "method %q", tt.raw)
	}
}
