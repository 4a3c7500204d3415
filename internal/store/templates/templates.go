// Package templates renders the storefront and admin console pages from an
// embedded template tree. Pages define a "content" block executed inside the
// storefront or admin layout.
package templates

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"meenora.in/store/internal/store/flash"
	"meenora.in/store/internal/store/session"
)

//go:embed layouts/*.tmpl pages/*.tmpl
var templateFS embed.FS

// Page is the data envelope every template receives.
type Page struct {
	Title         string
	User          *session.User
	CartCount     int
	WishlistCount int
	Flash         *flash.Message
	CSRFToken     string
	Path          string
	Year          int
	Data          any
}

// Renderer holds the parsed template sets, one per page.
type Renderer struct {
	pages map[string]*template.Template
}

var funcMap = template.FuncMap{
	"currency": func(v float64) string {
		return fmt.Sprintf("$%.2f", v)
	},
	"datefmt": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("Jan 2, 2006")
	},
	"mul": func(price float64, qty int) float64 {
		return price * float64(qty)
	},
	"inc": func(n int) int { return n + 1 },
	"dec": func(n int) int { return n - 1 },
}

// New parses the embedded templates. Admin pages (admin_*) execute inside the
// admin layout, everything else inside the storefront layout.
func New() (*Renderer, error) {
	entries, err := fs.Glob(templateFS, "pages/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("templates: glob pages: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("templates: no pages found")
	}

	pages := make(map[string]*template.Template, len(entries))
	for _, entry := range entries {
		name := strings.TrimSuffix(path.Base(entry), ".tmpl")
		layout := "layouts/store.tmpl"
		if strings.HasPrefix(name, "admin_") {
			layout = "layouts/admin.tmpl"
		}
		tmpl, err := template.New(path.Base(layout)).Funcs(funcMap).ParseFS(templateFS, layout, entry)
		if err != nil {
			return nil, fmt.Errorf("templates: parse %s: %w", entry, err)
		}
		pages[name] = tmpl
	}
	return &Renderer{pages: pages}, nil
}

// Render executes the named page into the response.
func (r *Renderer) Render(w http.ResponseWriter, name string, page Page) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("templates: unknown page %q", name)
	}
	if page.Year == 0 {
		page.Year = time.Now().Year()
	}
	if err := tmpl.Execute(w, page); err != nil {
		return fmt.Errorf("templates: execute %s: %w", name, err)
	}
	return nil
}
