package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary Admin dashboard
// @Description All products and all orders with the ordering user's email.
// @Tags admin
// @Produce html
// @Success 200 {string} string "HTML page"
// @Failure 403 {string} string
// @Failure 500 {string} string
// @Router /admindashboard [get]
func (s *Server) adminDashboard(c *gin.Context) {
	d, err := s.dashboard.Load(c.Request.Context())
	if err != nil {
		fail(c, "admin.dashboard", err, replies{internal: "An error occurred while fetching data."})
		return
	}
	c.HTML(http.StatusOK, viewDashboard, gin.H{
		"user":     d.Admin,
		"products": d.Products,
		"orders":   d.Orders,
	})
}

// @Summary Orders page
// @Tags orders
// @Produce html
// @Success 200 {string} string "HTML page"
// @Failure 403 {string} string
// @Failure 500 {string} string
// @Router /orders [get]
func (s *Server) ordersPage(c *gin.Context) {
	v, err := s.orders.View(c.Request.Context())
	if err != nil {
		fail(c, "admin.orders", err, replies{internal: "An error occurred while fetching orders."})
		return
	}
	c.HTML(http.StatusOK, viewOrders, gin.H{"user": v.Admin, "orders": v.Orders})
}

// @Summary Update order status
// @Tags orders
// @Accept x-www-form-urlencoded
// @Param id path string true "Order ID"
// @Param status formData string true "New status" Enums(Pending, Accepted, Declined, ShippedOut, Delivered)
// @Success 302 "Redirect to /orders"
// @Failure 400 {string} string
// @Failure 403 {string} string
// @Failure 404 {string} string
// @Failure 500 {string} string
// @Router /orders/{id}/status [post]
func (s *Server) updateOrderStatus(c *gin.Context) {
	_, err := s.orders.UpdateStatus(c.Request.Context(), c.Param("id"), c.PostForm("status"))
	if err != nil {
		fail(c, "admin.order.status", err, replies{
			invalid:  "Invalid status.",
			notFound: "Order not found.",
			internal: "An error occurred while updating the order status.",
		})
		return
	}
	c.Redirect(http.StatusFound, "/orders")
}
