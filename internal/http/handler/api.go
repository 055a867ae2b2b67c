package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"couponweb/internal/model"
	"couponweb/internal/repository"
	"couponweb/internal/service"
)

// searchResult wraps remote search hits.
type searchResult struct {
	Items []service.CouponView `json:"data"`
	Total int                  `json:"total"`
}

// writeServiceError maps service and coupon service errors to API errors.
func writeServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrIDRequired), errors.Is(err, service.ErrCodeRequired):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", err.Error())
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "coupon not found")
	case errors.Is(err, repository.ErrUnauthorized):
		return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "coupon service rejected the session")
	default:
		return writeError(c, fiber.StatusBadGateway, "UPSTREAM_ERROR", "coupon service unavailable")
	}
}

// APIListCoupons godoc
// @Summary List coupons
// @Description Returns every coupon with its derived status, filtered by search term and status.
// @Tags coupons
// @Produce json
// @Param q query string false "case-insensitive search over code, description, store and category"
// @Param status query string false "all, active, used, expired or expiring-soon"
// @Success 200 {object} service.CouponListResult
// @Failure 401 {object} errorPayload
// @Failure 502 {object} errorPayload
// @Router /api/coupons [get]
func APIListCoupons(svc service.CouponService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.List(c.UserContext(), listQuery(c.Query("q"), c.Query("status")))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// APISearchCoupons godoc
// @Summary Search coupons
// @Description Runs the coupon service's own text search.
// @Tags coupons
// @Produce json
// @Param q query string true "search term"
// @Success 200 {object} searchResult
// @Failure 401 {object} errorPayload
// @Failure 502 {object} errorPayload
// @Router /api/coupons/search [get]
func APISearchCoupons(svc service.CouponService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.Search(c.UserContext(), c.Query("q"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(searchResult{Items: items, Total: len(items)})
	}
}

// APIFindCouponByCode godoc
// @Summary Get coupon by code
// @Tags coupons
// @Produce json
// @Param code path string true "coupon code"
// @Success 200 {object} service.CouponView
// @Failure 404 {object} errorPayload
// @Failure 502 {object} errorPayload
// @Router /api/coupons/code/{code} [get]
func APIFindCouponByCode(svc service.CouponService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		v, err := svc.FindByCode(c.UserContext(), c.Params("code"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(v)
	}
}

// APIGetCoupon godoc
// @Summary Get coupon
// @Tags coupons
// @Produce json
// @Param id path string true "coupon id"
// @Success 200 {object} service.CouponView
// @Failure 404 {object} errorPayload
// @Failure 502 {object} errorPayload
// @Router /api/coupons/{id} [get]
func APIGetCoupon(svc service.CouponService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		v, err := svc.Get(c.UserContext(), model.ID(c.Params("id")))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(v)
	}
}

// APIDashboard godoc
// @Summary Dashboard summary
// @Description Total, active, used and expiring-soon counts plus the five newest coupons.
// @Tags dashboard
// @Produce json
// @Success 200 {object} service.Dashboard
// @Failure 401 {object} errorPayload
// @Failure 502 {object} errorPayload
// @Router /api/dashboard [get]
func APIDashboard(svc service.DashboardService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		d, err := svc.Summary(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(d)
	}
}
