package model

import "time"

// Status is the derived lifecycle state of a coupon.
type Status string

const (
	StatusActive       Status = "active"
	StatusUsed         Status = "used"
	StatusExpired      Status = "expired"
	StatusExpiringSoon Status = "expiring-soon"
)

// ExpiringSoonWindow is how far ahead an expiry counts as "expiring soon".
const ExpiringSoonWindow = 7 * 24 * time.Hour

// Classify returns exactly one status for a coupon.
// Precedence is fixed: used, then expired, then expiring soon, then active.
func Classify(isUsed bool, expiry *Date, now time.Time) Status {
	if isUsed {
		return StatusUsed
	}
	if expiry == nil || expiry.IsZero() {
		return StatusActive
	}
	if expiry.Before(now) {
		return StatusExpired
	}
	if expiry.After(now) && !expiry.After(now.Add(ExpiringSoonWindow)) {
		return StatusExpiringSoon
	}
	return StatusActive
}

// Status classifies c at the given instant.
func (c Coupon) Status(now time.Time) Status {
	return Classify(c.IsUsed, c.ExpiryDate, now)
}

// Label is the human-readable badge text.
func (s Status) Label() string {
	switch s {
	case StatusUsed:
		return "Used"
	case StatusExpired:
		return "Expired"
	case StatusExpiringSoon:
		return "Expiring Soon"
	default:
		return "Active"
	}
}
