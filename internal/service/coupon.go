package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"couponweb/internal/model"
	"couponweb/internal/repository"
)

var (
	ErrIDRequired   = errors.New("id is required")
	ErrNotFound     = errors.New("coupon not found")
	ErrCodeRequired = errors.New("code is required")
)

// Clock returns the current instant. Tests substitute a fixed clock.
type Clock func() time.Time

// ListQuery carries the list page's search box and filter selection.
type ListQuery struct {
	Search string       `json:"q"`
	Status StatusFilter `json:"status"`
}

// CouponListResult is the filtered list plus the counts for every filter.
type CouponListResult struct {
	Items  []CouponView `json:"data"`
	Counts StatusCounts `json:"counts"`
	Total  int          `json:"total"`
	Query  ListQuery    `json:"query"`
}

// CouponService defines the coupon use cases behind the list, detail and form pages.
type CouponService interface {
	// List fetches every coupon and applies the search term and status filter locally.
	List(ctx context.Context, q ListQuery) (*CouponListResult, error)
	// Get returns a single coupon with its status.
	Get(ctx context.Context, id model.ID) (*CouponView, error)
	// Create validates the form and posts it. Validation failures are ValidationErrors.
	Create(ctx context.Context, form CouponForm) (*model.Coupon, error)
	// Update validates the form and replaces the coupon.
	Update(ctx context.Context, id model.ID, form CouponForm) (*model.Coupon, error)
	Delete(ctx context.Context, id model.ID) error
	MarkUsed(ctx context.Context, id model.ID) (*model.Coupon, error)
	// Search delegates the text search to the coupon service.
	Search(ctx context.Context, term string) ([]CouponView, error)
	// FindByCode returns the coupon with the given code.
	FindByCode(ctx context.Context, code string) (*CouponView, error)
}

type couponService struct {
	repo repository.CouponRepository
	now  Clock
}

// NewCouponService constructs a CouponService. now is shared by expiry
// validation and classification.
func NewCouponService(repo repository.CouponRepository, now Clock) CouponService {
	if now == nil {
		now = time.Now
	}
	return &couponService{repo: repo, now: now}
}

func (s *couponService) List(ctx context.Context, q ListQuery) (*CouponListResult, error) {
	if q.Status == "" {
		q.Status = FilterAll
	}
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	return &CouponListResult{
		Items:  Filter(all, q.Search, q.Status, now),
		Counts: CountByStatus(all, now),
		Total:  len(all),
		Query:  q,
	}, nil
}

func (s *couponService) Get(ctx context.Context, id model.ID) (*CouponView, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err)
	}
	v := NewCouponView(*c, s.now())
	return &v, nil
}

func (s *couponService) Create(ctx context.Context, form CouponForm) (*model.Coupon, error) {
	in, verrs := form.Validate(s.now())
	if verrs != nil {
		return nil, verrs
	}
	// A new coupon always starts unused.
	in.IsUsed = false
	return s.repo.Create(ctx, in)
}

func (s *couponService) Update(ctx context.Context, id model.ID, form CouponForm) (*model.Coupon, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	in, verrs := form.Validate(s.now())
	if verrs != nil {
		return nil, verrs
	}
	c, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return nil, translateNotFound(err)
	}
	return c, nil
}

func (s *couponService) Delete(ctx context.Context, id model.ID) error {
	if id == "" {
		return ErrIDRequired
	}
	return translateNotFound(s.repo.Delete(ctx, id))
}

func (s *couponService) MarkUsed(ctx context.Context, id model.ID) (*model.Coupon, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	c, err := s.repo.MarkUsed(ctx, id)
	if err != nil {
		return nil, translateNotFound(err)
	}
	return c, nil
}

func (s *couponService) Search(ctx context.Context, term string) ([]CouponView, error) {
	found, err := s.repo.Search(ctx, strings.TrimSpace(term))
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]CouponView, 0, len(found))
	for _, c := range found {
		out = append(out, NewCouponView(c, now))
	}
	return out, nil
}

func (s *couponService) FindByCode(ctx context.Context, code string) (*CouponView, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrCodeRequired
	}
	c, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, translateNotFound(err)
	}
	v := NewCouponView(*c, s.now())
	return &v, nil
}

func translateNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
