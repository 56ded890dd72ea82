package templates

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"pedidos-backend/internal/models"
)

//go:embed views/*.html
var viewsFS embed.FS

// View names
const (
	ViewLogin     = "login.html"
	ViewIndex     = "index.html"
	ViewHistorico = "historico.html"
)

// PageData is what every view receives.
type PageData struct {
	Username string
	Admin    bool
	Flashes  []string
	// Summary is only set for the history view.
	Summary *models.OrderSummary
}

var funcs = template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("R$ %.2f", v) },
}

// Renderer renders the embedded views. It satisfies echo.Renderer.
type Renderer struct {
	views map[string]*template.Template
}

// NewRenderer parses every view together with the shared layout.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{views: make(map[string]*template.Template)}

	for _, name := range []string{ViewLogin, ViewIndex, ViewHistorico} {
		t, err := template.New(name).Funcs(funcs).ParseFS(viewsFS, "views/layout.html", "views/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse view %s: %w", name, err)
		}
		r.views[name] = t
	}

	return r, nil
}

// Render executes the named view inside the layout.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	t, ok := r.views[name]
	if !ok {
		return fmt.Errorf("view %q not found", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}
