package repository

import (
	"context"

	"couponweb/internal/model"
)

// CouponRepository is the coupon service's REST contract.
// Every call is a single request; implementations do not retry or cache.
type CouponRepository interface {
	// List returns every coupon (GET /coupons).
	List(ctx context.Context) ([]model.Coupon, error)
	// FindByID returns one coupon or ErrNotFound.
	FindByID(ctx context.Context, id model.ID) (*model.Coupon, error)
	// FindByCode looks a coupon up by its code.
	FindByCode(ctx context.Context, code string) (*model.Coupon, error)
	Create(ctx context.Context, in model.CouponInput) (*model.Coupon, error)
	Update(ctx context.Context, id model.ID, in model.CouponInput) (*model.Coupon, error)
	Delete(ctx context.Context, id model.ID) error
	// MarkUsed flips isUsed to true (PATCH /coupons/{id}/mark-used).
	MarkUsed(ctx context.Context, id model.ID) (*model.Coupon, error)

	// Server-side aggregates.
	ListActive(ctx context.Context) ([]model.Coupon, error)
	ListUsed(ctx context.Context) ([]model.Coupon, error)
	ListExpiringSoon(ctx context.Context) ([]model.Coupon, error)
	Search(ctx context.Context, term string) ([]model.Coupon, error)
}
