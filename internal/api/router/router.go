package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ridloal/smartshop-pos/internal/platform/logger"
	m "github.com/ridloal/smartshop-pos/internal/platform/middleware"
	productAPI "github.com/ridloal/smartshop-pos/internal/product/api"
	productService "github.com/ridloal/smartshop-pos/internal/product/service"
	reportAPI "github.com/ridloal/smartshop-pos/internal/report/api"
	reportService "github.com/ridloal/smartshop-pos/internal/report/service"
	saleAPI "github.com/ridloal/smartshop-pos/internal/sale/api"
	saleService "github.com/ridloal/smartshop-pos/internal/sale/service"
	userAPI "github.com/ridloal/smartshop-pos/internal/user/api"
	userService "github.com/ridloal/smartshop-pos/internal/user/service"
)

type Dependencies struct {
	AuthService    userService.AuthService
	ProductService productService.ProductService
	SaleService    saleService.SaleService
	ReportService  reportService.ReportService

	// Ping reports whether the store is reachable.
	Ping           func(ctx context.Context) error
	AllowedOrigins []string
	Logger         *zerolog.Logger
}

func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.RedirectTrailingSlash = false

	if deps.Logger == nil {
		deps.Logger = logger.Get()
	}

	r.Use(gin.Recovery())
	r.Use(m.RequestID())
	r.Use(m.Logger(deps.Logger))
	if len(deps.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     deps.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "DELETE"},
			AllowHeaders:     []string{"Authorization", "Content-Type", m.RequestIDHeader},
			ExposeHeaders:    []string{m.RequestIDHeader, "Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/healthz", healthz(deps.Ping))

	public := r.Group("/api/v1")
	protected := r.Group("/api/v1", userAPI.AuthMiddleware(deps.AuthService))

	// Logging out discards whatever the operator left in the cart.
	userAPI.NewUserHandler(deps.AuthService, deps.SaleService.CancelCart).RegisterRoutes(public, protected)
	productAPI.NewProductHandler(deps.ProductService).RegisterRoutes(protected)
	saleAPI.NewCartHandler(deps.SaleService).RegisterRoutes(protected)
	reportAPI.NewReportHandler(deps.ReportService).RegisterRoutes(protected)

	for _, route := range r.Routes() {
		deps.Logger.Debug().Str("method", route.Method).Str("path", route.Path).Msg("route registered")
	}
	return r
}

func healthz(ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				logger.Error("healthz: store unreachable", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
