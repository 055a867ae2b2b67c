// Package view holds the embedded HTML templates and their helper functions.
package view

import (
	"embed"
	"io/fs"
	"net/http"
	"strconv"

	"github.com/gofiber/template/html/v2"

	"couponweb/internal/model"
)

//go:embed templates
var templates embed.FS

const (
	// MainLayout frames every signed-in page.
	MainLayout = "layouts/main"
	// AuthLayout frames the login and register pages.
	AuthLayout = "layouts/auth"
)

// New returns a template engine over the embedded templates.
func New() *html.Engine {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		// the directory is embedded at build time
		panic(err)
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	for name, fn := range Funcs() {
		engine.AddFunc(name, fn)
	}
	return engine
}

// Funcs returns the helpers available to every template.
func Funcs() map[string]any {
	return map[string]any{
		"date":    FormatDate,
		"badge":   BadgeClass,
		"percent": Percent,
	}
}

// FormatDate renders a date like "Mar 5, 2025"; absent dates render empty.
func FormatDate(d *model.Date) string {
	if d == nil || d.IsZero() {
		return ""
	}
	return d.Format("Jan 2, 2006")
}

// BadgeClass maps a status to its badge style.
func BadgeClass(s model.Status) string {
	switch s {
	case model.StatusUsed:
		return "badge-success"
	case model.StatusExpired:
		return "badge-danger"
	case model.StatusExpiringSoon:
		return "badge-warning"
	default:
		return "badge-info"
	}
}

// Percent renders a discount without trailing zeros, e.g. "12.5% off".
func Percent(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64) + "% off"
}
