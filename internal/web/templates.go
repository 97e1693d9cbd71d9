package web

import (
	"embed"
	"html/template"

	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var files embed.FS

// Templates parses the dashboard templates. Prices are rendered with
// currencySymbol and two decimals.
func Templates(currencySymbol string) (*template.Template, error) {
	funcs := template.FuncMap{
		"money": func(d decimal.Decimal) string {
			return currencySymbol + d.StringFixed(2)
		},
	}
	return template.New("").Funcs(funcs).ParseFS(files, "templates/*.html")
}
