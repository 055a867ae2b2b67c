package mocks

import (
	"context"

	"couponweb/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockCouponRepository struct {
	mock.Mock
}

func (m *MockCouponRepository) coupons(args mock.Arguments) ([]model.Coupon, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Coupon), args.Error(1)
}

func (m *MockCouponRepository) coupon(args mock.Arguments) (*model.Coupon, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Coupon), args.Error(1)
}

func (m *MockCouponRepository) List(ctx context.Context) ([]model.Coupon, error) {
	return m.coupons(m.Called(ctx))
}

func (m *MockCouponRepository) FindByID(ctx context.Context, id model.ID) (*model.Coupon, error) {
	return m.coupon(m.Called(ctx, id))
}

func (m *MockCouponRepository) FindByCode(ctx context.Context, code string) (*model.Coupon, error) {
	return m.coupon(m.Called(ctx, code))
}

func (m *MockCouponRepository) Create(ctx context.Context, in model.CouponInput) (*model.Coupon, error) {
	return m.coupon(m.Called(ctx, in))
}

func (m *MockCouponRepository) Update(ctx context.Context, id model.ID, in model.CouponInput) (*model.Coupon, error) {
	return m.coupon(m.Called(ctx, id, in))
}

func (m *MockCouponRepository) Delete(ctx context.Context, id model.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCouponRepository) MarkUsed(ctx context.Context, id model.ID) (*model.Coupon, error) {
	return m.coupon(m.Called(ctx, id))
}

func (m *MockCouponRepository) ListActive(ctx context.Context) ([]model.Coupon, error) {
	return m.coupons(m.Called(ctx))
}

func (m *MockCouponRepository) ListUsed(ctx context.Context) ([]model.Coupon, error) {
	return m.coupons(m.Called(ctx))
}

func (m *MockCouponRepository) ListExpiringSoon(ctx context.Context) ([]model.Coupon, error) {
	return m.coupons(m.Called(ctx))
}

func (m *MockCouponRepository) Search(ctx context.Context, term string) ([]model.Coupon, error) {
	return m.coupons(m.Called(ctx, term))
}
