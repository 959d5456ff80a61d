package ledger

import (
	"math"
	"time"
)

// MonthBucket is one point of the fixed 12-bucket year view.
type MonthBucket struct {
	Month  time.Month
	Label  string
	Amount int64
}

// Aggregate folds the ledger into exactly 12 buckets, January through
// December, each holding the amount sum of every record (paid or unpaid)
// that resolves to that calendar month. Buckets with no records hold 0, so
// a chart always has 12 points. Records whose month cannot be resolved are
// excluded and counted in the second return value; they are never
// double-counted and never abort aggregation.
//
// The function is pure: identical input yields identical buckets.
func Aggregate(records []PaymentRecord) ([]MonthBucket, int) {
	buckets := make([]MonthBucket, 12)
	for i := range buckets {
		m := time.Month(i + 1)
		buckets[i] = MonthBucket{Month: m, Label: MonthAbbr(m)}
	}

	excluded := 0

	for _, r := range records {
		m := r.Month.Month
		if !r.Month.Known() {
			var ok bool

			m, ok = resolveCalendarMonth(r.MonthLabel)
			if !ok {
				excluded++
				continue
			}
		}

		buckets[m-1].Amount += r.Amount
	}

	return buckets, excluded
}

// FilterYear narrows the ledger to the displayed year. Records whose label
// never parsed carry no year and are kept; month resolution and exclusion
// are Aggregate's concern.
func FilterYear(records []PaymentRecord, year int) []PaymentRecord {
	out := make([]PaymentRecord, 0, len(records))

	for _, r := range records {
		if r.Month.Known() && r.Month.Year != year {
			continue
		}

		out = append(out, r)
	}

	return out
}

// Summary is the derived payment statistic set. It is recomputed from the
// current ledger on every use and never stored.
type Summary struct {
	TotalPaid      int64
	TotalDue       int64
	PaidCount      int
	UnpaidCount    int
	CollectionRate int // percent, 0 when the ledger is empty
}

// Summarize reduces the ledger to its summary.
func Summarize(records []PaymentRecord) Summary {
	var s Summary

	for _, r := range records {
		if r.Paid() {
			s.TotalPaid += r.Amount
			s.PaidCount++
		} else {
			s.TotalDue += r.Amount
			s.UnpaidCount++
		}
	}

	if n := s.PaidCount + s.UnpaidCount; n > 0 {
		s.CollectionRate = int(math.Round(float64(s.PaidCount) / float64(n) * 100))
	}

	return s
}
