package report

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used for lease and ledger dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date or an RFC 3339 timestamp.
// Plain dates are midnight UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD)", s)
}
