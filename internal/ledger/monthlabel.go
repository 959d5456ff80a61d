package ledger

import (
	"strconv"
	"strings"
	"time"
)

// The backend encodes payment periods as locale-formatted display strings
// ("Novembre 2025") rather than structured dates. Everything that touches
// that format lives in this file; the rest of the package works on Month.

var monthNames = [12]string{
	"Janvier", "Février", "Mars", "Avril", "Mai", "Juin",
	"Juillet", "Août", "Septembre", "Octobre", "Novembre", "Décembre",
}

var monthAbbrs = [12]string{
	"Jan", "Fév", "Mar", "Avr", "Mai", "Juin",
	"Juil", "Aoû", "Sep", "Oct", "Nov", "Déc",
}

var monthsByName = map[string]time.Month{
	"janvier": time.January, "février": time.February, "mars": time.March,
	"avril": time.April, "mai": time.May, "juin": time.June,
	"juillet": time.July, "août": time.August, "septembre": time.September,
	"octobre": time.October, "novembre": time.November, "décembre": time.December,

	// Accent-stripped variants show up in data typed by hand.
	"fevrier": time.February, "aout": time.August, "decembre": time.December,
}

// ParseMonthLabel parses a "Novembre 2025" style label into a structured
// Month. It returns false when either the month name or the year cannot be
// resolved; callers keep the raw label around for that case.
func ParseMonthLabel(label string) (Month, bool) {
	fields := strings.Fields(label)
	if len(fields) < 2 {
		return Month{}, false
	}

	m, ok := monthsByName[strings.ToLower(fields[0])]
	if !ok {
		return Month{}, false
	}

	year, err := strconv.Atoi(fields[1])
	if err != nil || year < 1900 || year > 9999 {
		return Month{}, false
	}

	return Month{Year: year, Month: m}, true
}

// FormatMonth renders a Month back into the backend's display form.
func FormatMonth(m Month) string {
	if !m.Known() {
		return ""
	}

	return monthNames[m.Month-1] + " " + strconv.Itoa(m.Year)
}

// MonthAbbr returns the locale abbreviation used as a chart bucket label.
func MonthAbbr(m time.Month) string {
	return monthAbbrs[m-1]
}

// resolveCalendarMonth maps a raw label onto a calendar month for
// aggregation. The leading whitespace-delimited token is looked up in the
// full-name table; failing that, the first three runes of the label are
// matched against the abbreviation prefixes (ambiguity between Juin and
// Juillet resolves to Juin, matching the fixed bucket order).
func resolveCalendarMonth(label string) (time.Month, bool) {
	fields := strings.Fields(label)
	if len(fields) > 0 {
		if m, ok := monthsByName[strings.ToLower(fields[0])]; ok {
			return m, true
		}
	}

	runes := []rune(strings.TrimSpace(label))
	if len(runes) < 3 {
		return 0, false
	}

	prefix := strings.ToLower(string(runes[:3]))
	for i, abbr := range monthAbbrs {
		ar := []rune(strings.ToLower(abbr))
		if len(ar) > 3 {
			ar = ar[:3]
		}

		if prefix == string(ar) {
			return time.Month(i + 1), true
		}
	}

	return 0, false
}
