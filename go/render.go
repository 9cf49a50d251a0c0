package storefrontserver

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

func loadTemplates() *template.Template {
	return template.Must(template.New("storefront").Funcs(template.FuncMap{
		"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
	}).ParseFS(templateFS, "templates/*.html"))
}

// render executes a page template with the values every page shares.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["User"] = CurrentUser(c)
	data["Messages"] = takeFlashes(c)
	c.HTML(status, name, data)
}

// redirectWith queues a notice and sends the visitor to location.
func redirectWith(c *gin.Context, location, level, text string) {
	if text != "" {
		addFlash(c, level, text)
	}
	c.Redirect(http.StatusFound, location)
}
