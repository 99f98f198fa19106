package httpapi

import (
	"embed"
	"fmt"
	"html/template"

	"shopadmin/internal/domain"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const (
	viewDashboard   = "admindashboard.tmpl"
	viewAddProduct  = "addproduct.tmpl"
	viewEditProduct = "editproduct.tmpl"
	viewOrders      = "orders.tmpl"
	viewLogin       = "login.tmpl"
)

var templateFuncs = template.FuncMap{
	"statuses": func() []domain.OrderStatus { return domain.OrderStatuses },
	"money":    func(v float64) string { return fmt.Sprintf("%.2f", v) },
}

func parseTemplates() *template.Template {
	return template.Must(template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.tmpl"))
}
