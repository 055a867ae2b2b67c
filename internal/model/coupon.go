package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ID is the opaque coupon identifier assigned by the coupon service.
// The service may encode it as a JSON number or string; it is carried as text.
type ID string

// UnmarshalJSON accepts numeric and string identifiers.
func (id *ID) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*id = ""
		return nil
	}
	if strings.HasPrefix(s, "\"") {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*id = ID(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid coupon id: %s", s)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Coupon is a discount-code record owned by the remote coupon service.
type Coupon struct {
	ID                 ID      `json:"id"`
	Code               string  `json:"code"`
	Description        string  `json:"description"`
	Store              string  `json:"store"`
	DiscountPercentage float64 `json:"discountPercentage"`
	Category           string  `json:"category,omitempty"`
	ExpiryDate         *Date   `json:"expiryDate,omitempty"`
	Notes              string  `json:"notes,omitempty"`
	IsUsed             bool    `json:"isUsed"`
	CreatedAt          *Date   `json:"createdAt,omitempty"`
}

// HasExpiry reports whether the coupon carries a usable expiry date.
func (c Coupon) HasExpiry() bool {
	return c.ExpiryDate != nil && !c.ExpiryDate.IsZero()
}

// CouponInput is the payload sent to the coupon service on create and update.
// The identifier and creation date are never sent; the service owns them.
type CouponInput struct {
	Code               string  `json:"code"`
	Description        string  `json:"description"`
	Store              string  `json:"store"`
	DiscountPercentage float64 `json:"discountPercentage"`
	Category           string  `json:"category,omitempty"`
	ExpiryDate         *Date   `json:"expiryDate"`
	Notes              string  `json:"notes,omitempty"`
	IsUsed             bool    `json:"isUsed"`
}

// Input returns the editable fields of c.
func (c Coupon) Input() CouponInput {
	return CouponInput{
		Code:               c.Code,
		Description:        c.Description,
		Store:              c.Store,
		DiscountPercentage: c.DiscountPercentage,
		Category:           c.Category,
		ExpiryDate:         c.ExpiryDate,
		Notes:              c.Notes,
		IsUsed:             c.IsUsed,
	}
}
