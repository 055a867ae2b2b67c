package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"couponweb/internal/config"
	"couponweb/internal/http/middleware"
	"couponweb/internal/service"
)

// Services bundles the use cases the routes depend on.
// Export is nil when no object store is configured.
type Services struct {
	Coupons   service.CouponService
	Dashboard service.DashboardService
	Auth      service.AuthService
	Export    service.ExportService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc Services, sess config.SessionConfig) {
	gate := middleware.RequireSession(svc.Auth, sess.CookieName)

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	})

	app.Get("/login", LoginPage())
	app.Post("/login", Login(svc.Auth, sess))
	app.Get("/register", RegisterPage())
	app.Post("/register", Register(svc.Auth))
	app.Post("/logout", Logout(svc.Auth, sess))

	app.Get("/dashboard", gate, Dashboard(svc.Dashboard))

	// Static segments before :id
	app.Get("/coupons", gate, ListCoupons(svc.Coupons, svc.Export != nil))
	app.Get("/coupons/new", gate, NewCouponPage())
	app.Post("/coupons", gate, CreateCoupon(svc.Coupons))
	app.Post("/coupons/export", gate, ExportCoupons(svc.Export))
	app.Get("/coupons/:id", gate, ShowCoupon(svc.Coupons))
	app.Post("/coupons/:id", gate, UpdateCoupon(svc.Coupons))
	app.Get("/coupons/:id/edit", gate, EditCouponPage(svc.Coupons))
	app.Post("/coupons/:id/mark-used", gate, MarkCouponUsed(svc.Coupons))
	app.Get("/coupons/:id/delete", gate, ConfirmDeletePage(svc.Coupons))
	app.Post("/coupons/:id/delete", gate, DeleteCoupon(svc.Coupons))

	api := app.Group("/api", gate)
	api.Get("/dashboard", APIDashboard(svc.Dashboard))
	api.Get("/coupons", APIListCoupons(svc.Coupons))
	api.Get("/coupons/search", APISearchCoupons(svc.Coupons))
	api.Get("/coupons/code/:code", APIFindCouponByCode(svc.Coupons))
	api.Get("/coupons/:id", APIGetCoupon(svc.Coupons))
}
