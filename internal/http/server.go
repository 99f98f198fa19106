package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"shopadmin/internal/auth"
	"shopadmin/internal/service"
)

// Options tunes the HTTP layer. The zero value is usable.
type Options struct {
	// MaxUploadBytes caps the add-product request body. Zero means 8 MiB.
	MaxUploadBytes int64
	// CORSOrigins enables CORS for the listed origins when non-empty.
	CORSOrigins []string
	// SecureCookies marks the session cookie Secure.
	SecureCookies bool
	// Health is called by /healthz. Nil means always healthy.
	Health func(ctx context.Context) error
}

type Server struct {
	engine    *gin.Engine
	products  *service.ProductService
	orders    *service.OrderService
	dashboard *service.DashboardService
	sessions  *auth.Sessions
	opts      Options
}

func NewServer(
	products *service.ProductService,
	orders *service.OrderService,
	dashboard *service.DashboardService,
	sessions *auth.Sessions,
	opts Options,
) *Server {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 8 << 20
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	r.MaxMultipartMemory = opts.MaxUploadBytes
	r.SetHTMLTemplate(parseTemplates())

	s := &Server{
		engine:    r,
		products:  products,
		orders:    orders,
		dashboard: dashboard,
		sessions:  sessions,
		opts:      opts,
	}
	r.Use(s.session())
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	s.engine.GET("/healthz", s.healthz)

	s.engine.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/admindashboard") })
	s.engine.GET("/login", s.loginPage)
	s.engine.POST("/login", s.login)
	s.engine.POST("/logout", s.logout)

	s.engine.GET("/admindashboard", s.adminDashboard)
	s.engine.GET("/addproduct", s.addProductPage)

	products := s.engine.Group("/products")
	{
		products.POST("", s.addProduct)
		products.GET("/:id/image", s.productImage)
		products.GET("/:id/edit", s.editProductPage)
		products.POST("/:id", s.updateProduct)
		products.DELETE("/:id", s.deleteProduct)
		products.POST("/:id/delete", s.deleteProduct)
	}

	orders := s.engine.Group("/orders")
	{
		orders.GET("", s.ordersPage)
		orders.POST("/:id/status", s.updateOrderStatus)
	}
}

// @Summary Liveness and storage check
// @Tags system
// @Produce plain
// @Success 200 {string} string "ok"
// @Failure 503 {string} string
// @Router /healthz [get]
func (s *Server) healthz(c *gin.Context) {
	if s.opts.Health != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.opts.Health(ctx); err != nil {
			c.String(http.StatusServiceUnavailable, "unavailable")
			return
		}
	}
	c.String(http.StatusOK, "ok")
}
