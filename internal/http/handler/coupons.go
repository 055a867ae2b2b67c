package handler

import (
	"errors"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"couponweb/internal/http/middleware"
	"couponweb/internal/model"
	"couponweb/internal/repository"
	"couponweb/internal/service"
)

// filterButton is one entry of the status filter bar on the list page.
type filterButton struct {
	Label  string
	Count  int
	Active bool
	Href   string
}

func filterButtons(q service.ListQuery, counts service.StatusCounts) []filterButton {
	out := make([]filterButton, 0, len(service.StatusFilters))
	for _, f := range service.StatusFilters {
		v := url.Values{"filter": {string(f)}}
		if q.Search != "" {
			v.Set("q", q.Search)
		}
		out = append(out, filterButton{
			Label:  f.Label(),
			Count:  counts.For(f),
			Active: f == q.Status,
			Href:   "/coupons?" + v.Encode(),
		})
	}
	return out
}

func listQuery(search, filter string) service.ListQuery {
	return service.ListQuery{
		Search: strings.TrimSpace(search),
		Status: service.ParseStatusFilter(filter),
	}
}

// Dashboard renders the summary page.
func Dashboard(svc service.DashboardService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data := fiber.Map{"Title": "Dashboard", "Nav": "dashboard"}
		d, err := svc.Summary(c.UserContext())
		if err != nil {
			if errors.Is(err, repository.ErrUnauthorized) {
				return c.Redirect(middleware.LoginPath, fiber.StatusSeeOther)
			}
			data["Error"] = "Failed to load dashboard data. Please try again."
			return render(c, fiber.StatusBadGateway, "dashboard", data)
		}
		data["Dashboard"] = d
		return render(c, fiber.StatusOK, "dashboard", data)
	}
}

// ListCoupons renders the searchable, filterable coupon list.
func ListCoupons(svc service.CouponService, exportEnabled bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := listQuery(c.Query("q"), c.Query("filter"))
		data := fiber.Map{"Title": "All Coupons", "Nav": "coupons", "Query": q, "ExportEnabled": exportEnabled}

		res, err := svc.List(c.UserContext(), q)
		if err != nil {
			if errors.Is(err, repository.ErrUnauthorized) {
				return c.Redirect(middleware.LoginPath, fiber.StatusSeeOther)
			}
			data["Error"] = "Failed to load coupons. Please try again."
			data["Result"] = &service.CouponListResult{Items: []service.CouponView{}, Query: q}
			data["Filters"] = filterButtons(q, service.StatusCounts{})
			return render(c, fiber.StatusBadGateway, "coupons/list", data)
		}

		data["Result"] = res
		data["Filters"] = filterButtons(res.Query, res.Counts)
		return render(c, fiber.StatusOK, "coupons/list", data)
	}
}

// ShowCoupon renders one coupon. Any fetch failure returns to the list.
func ShowCoupon(svc service.CouponService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		v, err := svc.Get(c.UserContext(), model.ID(c.Params("id")))
		if err != nil {
			return backToList(c, err)
		}
		return render(c, fiber.StatusOK, "coupons/detail", fiber.Map{"Title": v.Code, "Nav": "coupons", "Coupon": v})
	}
}

// NewCouponPage renders an empty coupon form.
func NewCouponPage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return renderForm(c, fiber.StatusOK, "", service.CouponForm{}, nil, "")
	}
}

// CreateCoupon validates and creates a coupon, then returns to the list.
func CreateCoupon(svc service.CouponService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var form service.CouponForm
		if err := c.BodyParser(&form); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid form submission")
		}
		if _, err := svc.Create(c.UserContext(), form); err != nil {
			return formFailure(c, "", form, err)
		}
		return c.Redirect("/coupons", fiber.StatusSeeOther)
	}
}

// EditCouponPage renders the form pre-filled from the stored coupon.
func EditCouponPage(svc service.CouponService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := model.ID(c.Params("id"))
		v, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return backToList(c, err)
		}
		return renderForm(c, fiber.StatusOK, id, service.FormFromCoupon(v.Coupon), nil, "")
	}
}

// UpdateCoupon validates and replaces a coupon, then returns to the list.
func UpdateCoupon(svc service.CouponService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := model.ID(c.Params("id"))
		var form service.CouponForm
		if err := c.BodyParser(&form); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid form submission")
		}
		if _, err := svc.Update(c.UserContext(), id, form); err != nil {
			return formFailure(c, id, form, err)
		}
		return c.Redirect("/coupons", fiber.StatusSeeOther)
	}
}

// MarkCouponUsed flags a coupon as used and goes back to the page named by
// the "next" form field, or the list.
func MarkCouponUsed(svc service.CouponService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := svc.MarkUsed(c.UserContext(), model.ID(c.Params("id"))); err != nil {
			return upstreamError(c, err, "Could not mark the coupon as used.")
		}
		return c.Redirect(localRedirect(c.FormValue("next"), "/coupons"), fiber.StatusSeeOther)
	}
}

// ConfirmDeletePage asks before deleting.
func ConfirmDeletePage(svc service.CouponService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		v, err := svc.Get(c.UserContext(), model.ID(c.Params("id")))
		if err != nil {
			return backToList(c, err)
		}
		return render(c, fiber.StatusOK, "coupons/confirm_delete", fiber.Map{"Title": "Delete " + v.Code, "Nav": "coupons", "Coupon": v})
	}
}

// DeleteCoupon removes a coupon and returns to the list.
func DeleteCoupon(svc service.CouponService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), model.ID(c.Params("id"))); err != nil {
			return upstreamError(c, err, "Could not delete the coupon.")
		}
		return c.Redirect("/coupons", fiber.StatusSeeOther)
	}
}

// ExportCoupons uploads the filtered list as CSV and redirects to the
// presigned download link.
func ExportCoupons(svc service.ExportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if svc == nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "Export is not configured.")
		}
		owner := ""
		if sess := middleware.SessionFrom(c); sess != nil {
			owner = sess.User.Username
		}
		res, err := svc.Export(c.UserContext(), owner, listQuery(c.FormValue("q"), c.FormValue("filter")))
		if err != nil {
			if errors.Is(err, service.ErrExportDisabled) {
				return fiber.NewError(fiber.StatusServiceUnavailable, "Export is not configured.")
			}
			return upstreamError(c, err, "Could not export coupons.")
		}
		return c.Redirect(res.URL, fiber.StatusSeeOther)
	}
}

func backToList(c *fiber.Ctx, err error) error {
	if errors.Is(err, repository.ErrUnauthorized) {
		return c.Redirect(middleware.LoginPath, fiber.StatusSeeOther)
	}
	return c.Redirect("/coupons", fiber.StatusSeeOther)
}

func renderForm(c *fiber.Ctx, status int, id model.ID, form service.CouponForm, errs service.ValidationErrors, submitErr string) error {
	data := fiber.Map{
		"Title":   "Add New Coupon",
		"Nav":     "new",
		"Form":    form,
		"Errors":  errs,
		"Editing": id != "",
		"Action":  "/coupons",
	}
	if id != "" {
		data["Title"] = "Edit Coupon"
		data["Nav"] = "coupons"
		data["Action"] = "/coupons/" + url.PathEscape(id.String())
	}
	if submitErr != "" {
		data["SubmitError"] = submitErr
	}
	return render(c, status, "coupons/form", data)
}

func formFailure(c *fiber.Ctx, id model.ID, form service.CouponForm, err error) error {
	var verrs service.ValidationErrors
	if errors.As(err, &verrs) {
		return renderForm(c, fiber.StatusUnprocessableEntity, id, form, verrs, "")
	}
	if errors.Is(err, repository.ErrUnauthorized) {
		return c.Redirect(middleware.LoginPath, fiber.StatusSeeOther)
	}
	if errors.Is(err, service.ErrNotFound) {
		return c.Redirect("/coupons", fiber.StatusSeeOther)
	}
	status, msg := remoteMessage(err, "Error saving coupon")
	return renderForm(c, status, id, form, nil, msg)
}
