package service

import (
	"context"
	"errors"
	"testing"

	"couponweb/internal/model"
	repoMocks "couponweb/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_Summary(t *testing.T) {
	ctx := context.Background()

	t.Run("counts and recent", func(t *testing.T) {
		all := sampleCoupons(t)
		repo := new(repoMocks.MockCouponRepository)
		repo.On("List", mock.Anything).Return(all, nil)
		repo.On("ListActive", mock.Anything).Return(all[:2], nil)
		repo.On("ListUsed", mock.Anything).Return(all[1:2], nil)
		repo.On("ListExpiringSoon", mock.Anything).Return([]model.Coupon{}, nil)

		d, err := NewDashboardService(repo, fixedClock()).Summary(ctx)
		require.NoError(t, err)
		assert.Equal(t, 5, d.Total)
		assert.Equal(t, 2, d.Active)
		assert.Equal(t, 1, d.Used)
		assert.Equal(t, 0, d.ExpiringSoon)
		assert.Equal(t, []model.ID{"5", "2", "1", "3", "4"}, ids(d.Recent))
		assert.Equal(t, model.StatusUsed, d.Recent[1].Status)
		repo.AssertExpectations(t)
	})

	t.Run("recent is capped at five", func(t *testing.T) {
		all := append(sampleCoupons(t), model.Coupon{ID: "6", CreatedAt: date(t, "2025-03-09")})
		repo := new(repoMocks.MockCouponRepository)
		repo.On("List", mock.Anything).Return(all, nil)
		repo.On("ListActive", mock.Anything).Return([]model.Coupon{}, nil)
		repo.On("ListUsed", mock.Anything).Return([]model.Coupon{}, nil)
		repo.On("ListExpiringSoon", mock.Anything).Return([]model.Coupon{}, nil)

		d, err := NewDashboardService(repo, fixedClock()).Summary(ctx)
		require.NoError(t, err)
		assert.Len(t, d.Recent, 5)
		assert.Equal(t, model.ID("6"), d.Recent[0].ID)
	})

	t.Run("any failure fails the summary", func(t *testing.T) {
		repo := new(repoMocks.MockCouponRepository)
		repo.On("List", mock.Anything).Return(sampleCoupons(t), nil).Maybe()
		repo.On("ListActive", mock.Anything).Return([]model.Coupon{}, nil).Maybe()
		repo.On("ListUsed", mock.Anything).Return(nil, errors.New("down")).Maybe()
		repo.On("ListExpiringSoon", mock.Anything).Return([]model.Coupon{}, nil).Maybe()

		d, err := NewDashboardService(repo, fixedClock()).Summary(ctx)
		assert.Nil(t, d)
		assert.EqualError(t, err, "list used coupons: down")
	})
}
