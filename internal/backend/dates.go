package backend

import (
	"strings"
	"time"

	"github.com/barberdev/barberdev-web/internal/validators"
)

// The backend speaks three date dialects:
//
//   - create/update bodies take a combined local startTime without a zone
//     suffix: "2025-03-07T14:30:00"
//   - the availability query takes a slash-separated date: "2025/03/07"
//   - everything user-facing is split YYYY-MM-DD + HH:MM

const wireDateTime = "2006-01-02T15:04:05"

// CombineStartTime joins the split form fields into the wire timestamp.
func CombineStartTime(date, hhmm string) (string, error) {
	if !validators.IsCalendarDate(date) {
		return "", Precondition("invalid date: %q", date)
	}
	t, err := time.Parse("2006-01-02 15:04", date+" "+hhmm)
	if err != nil {
		return "", Precondition("invalid time: %q", hhmm)
	}
	return t.Format(wireDateTime), nil
}

// SplitStartTime reconstructs the split date/time fields from a wire
// timestamp by local component extraction. A trailing zone designator is
// ignored rather than converted, so slots never shift across timezones.
func SplitStartTime(startTime string) (date, hhmm string) {
	s := strings.TrimSpace(startTime)
	if i := strings.IndexByte(s, '.'); i > 0 {
		s = s[:i]
	}
	s = strings.TrimSuffix(s, "Z")
	if t, err := time.Parse(wireDateTime, s); err == nil {
		return t.Format("2006-01-02"), t.Format("15:04")
	}
	// Fallback: split on the T and hope for the best.
	if i := strings.IndexByte(s, 'T'); i > 0 {
		date = s[:i]
		rest := s[i+1:]
		if len(rest) >= 5 {
			hhmm = rest[:5]
		}
		return date, hhmm
	}
	return s, ""
}

// AvailabilityDate rewrites a date for the availability query: dashes become
// slashes and the year must fall inside [2000, 2100]. Fails fast before any
// network call.
func AvailabilityDate(date string) (string, error) {
	d := strings.TrimSpace(date)
	if strings.Contains(d, "-") {
		if !validators.IsCalendarDate(d) {
			return "", Precondition("invalid date format: %q, expected YYYY-MM-DD", date)
		}
		d = strings.ReplaceAll(d, "-", "/")
	}
	if _, err := time.Parse("2006/01/02", d); err != nil {
		return "", Precondition("invalid date format: %q, expected YYYY/MM/DD", date)
	}
	if err := validators.ValidateYearRange(d); err != nil {
		return "", Precondition("%s", err.Error())
	}
	return d, nil
}
