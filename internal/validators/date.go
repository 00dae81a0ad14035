package validators

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var calendarDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsCalendarDate reports whether s has the strict YYYY-MM-DD shape and
// denotes a real calendar date.
func IsCalendarDate(s string) bool {
	if !calendarDateRe.MatchString(s) {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// ValidateYearRange rejects dates whose year falls outside [2000, 2100].
// The backend answers nonsense for dates far outside this window, so the
// check runs before any request is built.
func ValidateYearRange(s string) error {
	if len(s) < 4 {
		return fmt.Errorf("invalid date: %q", s)
	}
	year, err := strconv.Atoi(s[:4])
	if err != nil {
		return fmt.Errorf("invalid date: %q", s)
	}
	if year < 2000 || year > 2100 {
		return fmt.Errorf("invalid year %d: must be between 2000 and 2100", year)
	}
	return nil
}
