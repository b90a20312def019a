package echoportal

import (
	"embed"
	"html/template"
	"io"
	"strconv"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

type renderer struct {
	tmpl *template.Template
}

var _ echo.Renderer = (*renderer)(nil)

func newRenderer() *renderer {
	funcs := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"itoa": func(n int) string {
			return strconv.Itoa(n)
		},
		// pages renders 0..n-1 for pagination controls
		"pages": func(n int) []int {
			if n < 0 {
				n = 0
			}
			out := make([]int, n)
			for i := range out {
				out[i] = i
			}
			return out
		},
	}
	return &renderer{
		tmpl: template.Must(template.New("portal").Funcs(funcs).ParseFS(templateFS, "templates/*.html")),
	}
}

func (r *renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.tmpl.ExecuteTemplate(w, name, data)
}
