package service

import (
	"sort"
	"strings"
	"time"

	"couponweb/internal/model"
)

// StatusFilter selects coupons by derived status; FilterAll keeps everything.
type StatusFilter string

const (
	FilterAll          StatusFilter = "all"
	FilterActive       StatusFilter = StatusFilter(model.StatusActive)
	FilterUsed         StatusFilter = StatusFilter(model.StatusUsed)
	FilterExpired      StatusFilter = StatusFilter(model.StatusExpired)
	FilterExpiringSoon StatusFilter = StatusFilter(model.StatusExpiringSoon)
)

// StatusFilters lists the filters in display order.
var StatusFilters = []StatusFilter{FilterAll, FilterActive, FilterUsed, FilterExpired, FilterExpiringSoon}

// ParseStatusFilter maps a query value to a filter. Unknown values mean FilterAll.
func ParseStatusFilter(s string) StatusFilter {
	f := StatusFilter(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range StatusFilters {
		if f == known {
			return f
		}
	}
	return FilterAll
}

// Label is the button text for the filter.
func (f StatusFilter) Label() string {
	if f == FilterAll {
		return "All"
	}
	return model.Status(f).Label()
}

// accepts matches on the single computed status, so the non-All filters
// partition the collection: Active never includes Expiring Soon and Expired
// never includes Used.
func (f StatusFilter) accepts(s model.Status) bool {
	return f == FilterAll || model.Status(f) == s
}

// CouponView is a coupon with its status computed at render time.
type CouponView struct {
	model.Coupon
	Status      model.Status `json:"status"`
	StatusLabel string       `json:"statusLabel"`
}

// NewCouponView classifies c at now.
func NewCouponView(c model.Coupon, now time.Time) CouponView {
	st := c.Status(now)
	return CouponView{Coupon: c, Status: st, StatusLabel: st.Label()}
}

// Matches reports whether term is a case-insensitive substring of the coupon's
// code, description, store or category. An empty term matches everything.
func Matches(c model.Coupon, term string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	for _, field := range []string{c.Code, c.Description, c.Store, c.Category} {
		if field != "" && strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// Filter applies the search term and status filter, preserving source order.
func Filter(coupons []model.Coupon, term string, status StatusFilter, now time.Time) []CouponView {
	out := make([]CouponView, 0, len(coupons))
	for _, c := range coupons {
		if !Matches(c, term) {
			continue
		}
		v := NewCouponView(c, now)
		if !status.accepts(v.Status) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// StatusCounts holds the number of coupons per filter.
type StatusCounts struct {
	All          int `json:"all"`
	Active       int `json:"active"`
	Used         int `json:"used"`
	Expired      int `json:"expired"`
	ExpiringSoon int `json:"expiringSoon"`
}

// For returns the count shown next to filter f.
func (sc StatusCounts) For(f StatusFilter) int {
	switch f {
	case FilterActive:
		return sc.Active
	case FilterUsed:
		return sc.Used
	case FilterExpired:
		return sc.Expired
	case FilterExpiringSoon:
		return sc.ExpiringSoon
	default:
		return sc.All
	}
}

// CountByStatus classifies every coupon once and tallies the results.
func CountByStatus(coupons []model.Coupon, now time.Time) StatusCounts {
	sc := StatusCounts{All: len(coupons)}
	for _, c := range coupons {
		switch c.Status(now) {
		case model.StatusActive:
			sc.Active++
		case model.StatusUsed:
			sc.Used++
		case model.StatusExpired:
			sc.Expired++
		case model.StatusExpiringSoon:
			sc.ExpiringSoon++
		}
	}
	return sc
}

// MostRecent returns up to n coupons ordered by createdAt, newest first.
// Coupons without a creation date sort last; ties keep their source order.
func MostRecent(coupons []model.Coupon, n int) []model.Coupon {
	sorted := make([]model.Coupon, len(coupons))
	copy(sorted, coupons)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].CreatedAt, sorted[j].CreatedAt
		switch {
		case a == nil || a.IsZero():
			return false
		case b == nil || b.IsZero():
			return true
		default:
			return a.After(b.Time)
		}
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
