package service

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"couponweb/internal/model"
)

// ValidationErrors maps a form field to a human-readable message.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// CouponForm is the raw coupon form as submitted by the browser.
type CouponForm struct {
	Code               string `form:"code"`
	Description        string `form:"description"`
	Store              string `form:"store"`
	DiscountPercentage string `form:"discountPercentage"`
	Category           string `form:"category"`
	ExpiryDate         string `form:"expiryDate"`
	Notes              string `form:"notes"`
	IsUsed             string `form:"isUsed"`
}

// FormFromCoupon pre-fills the edit form.
func FormFromCoupon(c model.Coupon) CouponForm {
	f := CouponForm{
		Code:               c.Code,
		Description:        c.Description,
		Store:              c.Store,
		DiscountPercentage: strconv.FormatFloat(c.DiscountPercentage, 'f', -1, 64),
		Category:           c.Category,
		Notes:              c.Notes,
	}
	if c.HasExpiry() {
		f.ExpiryDate = c.ExpiryDate.String()
	}
	if c.IsUsed {
		f.IsUsed = "on"
	}
	return f
}

// Checked reports whether the isUsed checkbox was ticked.
func (f CouponForm) Checked() bool {
	switch strings.ToLower(strings.TrimSpace(f.IsUsed)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// Validate converts the form into a coupon payload. The checks are advisory;
// the coupon service remains authoritative. An expiry that model.Classify
// would already report as expired at now is rejected.
func (f CouponForm) Validate(now time.Time) (model.CouponInput, ValidationErrors) {
	errs := ValidationErrors{}
	in := model.CouponInput{
		Code:        strings.TrimSpace(f.Code),
		Description: strings.TrimSpace(f.Description),
		Store:       strings.TrimSpace(f.Store),
		Category:    strings.TrimSpace(f.Category),
		Notes:       strings.TrimSpace(f.Notes),
		IsUsed:      f.Checked(),
	}

	if in.Code == "" {
		errs["code"] = "Coupon code is required"
	}
	if in.Description == "" {
		errs["description"] = "Description is required"
	}
	if in.Store == "" {
		errs["store"] = "Store/Website is required"
	}

	if raw := strings.TrimSpace(f.DiscountPercentage); raw == "" {
		errs["discountPercentage"] = "Discount percentage is required"
	} else if pct, err := strconv.ParseFloat(raw, 64); err != nil || math.IsNaN(pct) || math.IsInf(pct, 0) || pct <= 0 {
		errs["discountPercentage"] = "Discount must be a positive number"
	} else {
		in.DiscountPercentage = pct
	}

	if raw := strings.TrimSpace(f.ExpiryDate); raw != "" {
		exp, err := model.ParseDate(raw)
		switch {
		case err != nil:
			errs["expiryDate"] = "Expiry date is invalid"
		case exp.Before(now):
			errs["expiryDate"] = "Expiry date cannot be in the past"
		default:
			in.ExpiryDate = &exp
		}
	}

	if len(errs) > 0 {
		return in, errs
	}
	return in, nil
}

// RegisterForm is the raw registration form.
type RegisterForm struct {
	Username        string `form:"username"`
	Email           string `form:"email"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirmPassword"`
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// minPasswordLength mirrors the account rules advertised on the register page.
const minPasswordLength = 6

// Validate checks the registration form and normalizes the email.
func (f RegisterForm) Validate() (model.Registration, ValidationErrors) {
	errs := ValidationErrors{}
	reg := model.Registration{
		Username: strings.TrimSpace(f.Username),
		Email:    strings.ToLower(strings.TrimSpace(f.Email)),
		Password: f.Password,
	}

	if reg.Username == "" {
		errs["username"] = "Username is required"
	}
	if reg.Email == "" || !emailRegex.MatchString(reg.Email) {
		errs["email"] = "A valid email is required"
	}
	if len(f.Password) < minPasswordLength {
		errs["password"] = "Password must be at least 6 characters"
	} else if f.Password != f.ConfirmPassword {
		errs["confirmPassword"] = "Passwords do not match"
	}

	if len(errs) > 0 {
		return reg, errs
	}
	return reg, nil
}

// LoginForm is the raw login form.
type LoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// Validate requires both fields.
func (f LoginForm) Validate() (model.Credentials, ValidationErrors) {
	errs := ValidationErrors{}
	creds := model.Credentials{Username: strings.TrimSpace(f.Username), Password: f.Password}
	if creds.Username == "" {
		errs["username"] = "Username is required"
	}
	if creds.Password == "" {
		errs["password"] = "Password is required"
	}
	if len(errs) > 0 {
		return creds, errs
	}
	return creds, nil
}

