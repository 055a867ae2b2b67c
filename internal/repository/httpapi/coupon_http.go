package httpapi

import (
	"context"
	"net/http"
	"net/url"

	"couponweb/internal/model"
	"couponweb/internal/repository"
)

// CouponHTTP implements repository.CouponRepository over the /coupons resource.
type CouponHTTP struct {
	c *Client
}

// NewCouponHTTP creates a coupon repository backed by c.
func NewCouponHTTP(c *Client) *CouponHTTP {
	return &CouponHTTP{c: c}
}

var _ repository.CouponRepository = (*CouponHTTP)(nil)

func couponPath(id model.ID) string {
	return "/coupons/" + url.PathEscape(id.String())
}

func (r *CouponHTTP) list(ctx context.Context, path string, query url.Values) ([]model.Coupon, error) {
	items := make([]model.Coupon, 0)
	if err := r.c.do(ctx, http.MethodGet, path, query, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *CouponHTTP) one(ctx context.Context, method, path string, body any) (*model.Coupon, error) {
	var out model.Coupon
	if err := r.c.do(ctx, method, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns every coupon.
func (r *CouponHTTP) List(ctx context.Context) ([]model.Coupon, error) {
	return r.list(ctx, "/coupons", nil)
}

// FindByID fetches one coupon.
func (r *CouponHTTP) FindByID(ctx context.Context, id model.ID) (*model.Coupon, error) {
	return r.one(ctx, http.MethodGet, couponPath(id), nil)
}

// FindByCode fetches one coupon by code.
func (r *CouponHTTP) FindByCode(ctx context.Context, code string) (*model.Coupon, error) {
	return r.one(ctx, http.MethodGet, "/coupons/code/"+url.PathEscape(code), nil)
}

// Create posts a new coupon; the service assigns id and createdAt.
func (r *CouponHTTP) Create(ctx context.Context, in model.CouponInput) (*model.Coupon, error) {
	return r.one(ctx, http.MethodPost, "/coupons", in)
}

// Update replaces the editable fields of a coupon.
func (r *CouponHTTP) Update(ctx context.Context, id model.ID, in model.CouponInput) (*model.Coupon, error) {
	return r.one(ctx, http.MethodPut, couponPath(id), in)
}

// Delete removes a coupon.
func (r *CouponHTTP) Delete(ctx context.Context, id model.ID) error {
	return r.c.do(ctx, http.MethodDelete, couponPath(id), nil, nil, nil)
}

// MarkUsed flags a coupon as used.
func (r *CouponHTTP) MarkUsed(ctx context.Context, id model.ID) (*model.Coupon, error) {
	return r.one(ctx, http.MethodPatch, couponPath(id)+"/mark-used", nil)
}

func (r *CouponHTTP) ListActive(ctx context.Context) ([]model.Coupon, error) {
	return r.list(ctx, "/coupons/active", nil)
}

func (r *CouponHTTP) ListUsed(ctx context.Context) ([]model.Coupon, error) {
	return r.list(ctx, "/coupons/used", nil)
}

func (r *CouponHTTP) ListExpiringSoon(ctx context.Context) ([]model.Coupon, error) {
	return r.list(ctx, "/coupons/expiring-soon", nil)
}

// Search runs the service-side text search.
func (r *CouponHTTP) Search(ctx context.Context, term string) ([]model.Coupon, error) {
	return r.list(ctx, "/coupons/search", url.Values{"q": {term}})
}
