package ledger

import (
	"fmt"
)

// DuplicateError refuses a submission because a completed payment already
// covers the (lease, month) pair. The message names the month so it can be
// surfaced to the user as-is.
type DuplicateError struct {
	Month string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("rent for %s is already paid", e.Month)
}

// CanSubmit decides whether a payment for the given lease and month may be
// submitted against the provided ledger. It returns nil when allowed and a
// *DuplicateError when a paid record for the pair already exists.
//
// Matching is on the structured (lease, month) pair when both sides parse;
// records with unparseable labels fall back to exact label equality. The
// ledger passed in must be freshly fetched; the caller, not this function,
// owns the re-fetch-before-submit discipline.
func CanSubmit(leaseID int64, monthLabel string, records []PaymentRecord) error {
	want, wantKnown := ParseMonthLabel(monthLabel)

	for _, r := range records {
		if r.LeaseID == nil || *r.LeaseID != leaseID || !r.Paid() {
			continue
		}

		var same bool
		if wantKnown && r.Month.Known() {
			same = r.Month == want
		} else {
			same = r.MonthLabel == monthLabel
		}

		if same {
			return &DuplicateError{Month: monthLabel}
		}
	}

	return nil
}
