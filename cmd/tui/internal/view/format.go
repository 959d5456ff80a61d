package view

import (
	"context"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/habipro/habipay/internal/ledger"
)

const apiTimeout = 30 * time.Second

var frPrinter = message.NewPrinter(language.French)

// FormatCurrency renders a franc amount the way the platform displays it,
// with French digit grouping.
func FormatCurrency(amount int64) string {
	return frPrinter.Sprintf("%d F CFA", amount)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatMethod renders a payment method for display.
func FormatMethod(m ledger.Method) string {
	switch m {
	case ledger.MethodOrange:
		return "Orange Money"
	case ledger.MethodMTN:
		return "MTN Money"
	case ledger.MethodMoov:
		return "Moov Money"
	case ledger.MethodCard:
		return "Carte bancaire"
	case ledger.MethodTransfer:
		return "Virement"
	}

	return string(ledger.MethodUnknown)
}

// MonthOptions lists the selectable month labels: the current month plus
// the eleven that follow.
func MonthOptions(now time.Time) []string {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	out := make([]string, 0, 12)
	for i := range 12 {
		t := first.AddDate(0, i, 0)
		out = append(out, ledger.FormatMonth(ledger.Month{Year: t.Year(), Month: t.Month()}))
	}

	return out
}

// APICtx returns a context with a standard timeout for platform calls.
func APICtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), apiTimeout)
}
