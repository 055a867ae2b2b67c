package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"couponweb/internal/model"
	"couponweb/internal/repository"
)

// recentLimit is the number of coupons shown under "Recent Coupons".
const recentLimit = 5

// Dashboard is the summary shown on the landing page.
type Dashboard struct {
	Total        int          `json:"total"`
	Active       int          `json:"active"`
	Used         int          `json:"used"`
	ExpiringSoon int          `json:"expiringSoon"`
	Recent       []CouponView `json:"recent"`
}

// DashboardService builds the dashboard summary.
type DashboardService interface {
	// Summary issues the four collection queries concurrently. Any failure fails
	// the whole summary; partial results are never returned.
	Summary(ctx context.Context) (*Dashboard, error)
}

type dashboardService struct {
	repo repository.CouponRepository
	now  Clock
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(repo repository.CouponRepository, now Clock) DashboardService {
	if now == nil {
		now = time.Now
	}
	return &dashboardService{repo: repo, now: now}
}

func (s *dashboardService) Summary(ctx context.Context) (*Dashboard, error) {
	var all, active, used, soon []model.Coupon

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if all, err = s.repo.List(gctx); err != nil {
			return fmt.Errorf("list coupons: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if active, err = s.repo.ListActive(gctx); err != nil {
			return fmt.Errorf("list active coupons: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if used, err = s.repo.ListUsed(gctx); err != nil {
			return fmt.Errorf("list used coupons: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if soon, err = s.repo.ListExpiringSoon(gctx); err != nil {
			return fmt.Errorf("list expiring coupons: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := s.now()
	recent := MostRecent(all, recentLimit)
	views := make([]CouponView, 0, len(recent))
	for _, c := range recent {
		views = append(views, NewCouponView(c, now))
	}
	return &Dashboard{
		Total:        len(all),
		Active:       len(active),
		Used:         len(used),
		ExpiringSoon: len(soon),
		Recent:       views,
	}, nil
}
