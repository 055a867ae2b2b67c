package model

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format exchanged with the coupon service.
const DateLayout = "2006-01-02"

// Layouts without a zone parse as UTC.
var dateLayouts = []string{DateLayout, time.RFC3339Nano, "2006-01-02T15:04:05"}

// Date is a calendar date. Plain dates parse to UTC midnight, which matches how
// browsers interpret "YYYY-MM-DD"; full RFC 3339 timestamps are also accepted.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar date in t's location and returns it at UTC midnight.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a date in DateLayout or RFC 3339.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{Time: t}, nil
		}
	}
	return Date{}, fmt.Errorf("invalid date: %q", s)
}

// UnmarshalJSON accepts null, "" and any layout understood by ParseDate.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), "\"")
	if s == "null" || s == "" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON writes the date as "YYYY-MM-DD", or null when zero.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte("\"" + d.Format(DateLayout) + "\""), nil
}

// String formats the date as "YYYY-MM-DD"; zero dates render empty.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}
