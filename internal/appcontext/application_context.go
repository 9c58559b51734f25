package appcontext

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ridloal/smartshop-pos/internal/platform/config"
	"github.com/ridloal/smartshop-pos/internal/platform/database"
	"github.com/ridloal/smartshop-pos/internal/platform/logger"
	productRepo "github.com/ridloal/smartshop-pos/internal/product/repository"
	productService "github.com/ridloal/smartshop-pos/internal/product/service"
	reportService "github.com/ridloal/smartshop-pos/internal/report/service"
	saleRepo "github.com/ridloal/smartshop-pos/internal/sale/repository"
	saleService "github.com/ridloal/smartshop-pos/internal/sale/service"
	"github.com/ridloal/smartshop-pos/internal/till"
	userRepo "github.com/ridloal/smartshop-pos/internal/user/repository"
	userService "github.com/ridloal/smartshop-pos/internal/user/service"
)

// ApplicationContext owns the store handle and the services built on it.
// Both front-ends (HTTP and terminal) start from here.
type ApplicationContext struct {
	Cf *config.Config
	DB *sql.DB

	AuthService    userService.AuthService
	ProductService productService.ProductService
	SaleService    saleService.SaleService
	ReportService  reportService.ReportService
}

// NewApplicationContext migrates the schema, opens the pool, wires services
// and seeds the default operator. Any error here must abort startup.
func NewApplicationContext(ctx context.Context, cf *config.Config) (*ApplicationContext, error) {
	app := &ApplicationContext{Cf: cf}

	if cf.UsesInsecureKey() {
		logger.Warn("JWT_SECRET_KEY is not set, using the built-in development key")
	}

	if err := database.Migrate(cf.DB.Driver, cf.DB.DSN); err != nil {
		return nil, fmt.Errorf("schema initialization failed: %w", err)
	}

	db, err := database.Connect(cf.DB.Driver, cf.DB.DSN)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	app.DB = db

	app.setUpServices()

	seedCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	err = app.AuthService.SeedDefaultUser(seedCtx, cf.Auth.DefaultAdminUsername, cf.Auth.DefaultAdminPassword, cf.Auth.DefaultAdminRole)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("seeding default user failed: %w", err)
	}

	return app, nil
}

func (app *ApplicationContext) setUpServices() {
	users := userRepo.NewPostgresUserRepository(app.DB)
	products := productRepo.NewPostgresProductRepository(app.DB)
	sales := saleRepo.NewPostgresSaleRepository(app.DB)

	app.AuthService = userService.NewAuthService(users, userService.NewBcryptHasher(0), app.Cf.Auth.JWTSecretKey, app.Cf.Auth.TokenTTL)
	app.ProductService = productService.NewProductService(products)
	app.SaleService = saleService.NewSaleService(sales, products)
	app.ReportService = reportService.NewReportService(sales, products, app.Cf.LowStockThreshold)
}

// TillServices exposes the services the terminal front-end needs.
func (app *ApplicationContext) TillServices() till.Services {
	return till.Services{
		Auth:     app.AuthService,
		Products: app.ProductService,
		Sales:    app.SaleService,
		Reports:  app.ReportService,
	}
}

// Settings lists the non-secret configuration shown on the Settings screen.
func (app *ApplicationContext) Settings() []till.Setting {
	return []till.Setting{
		{Name: "Database driver", Value: app.Cf.DB.Driver},
		{Name: "API address", Value: app.Cf.Server.Addr()},
		{Name: "Log level", Value: app.Cf.LogLevel},
		{Name: "Low stock threshold", Value: fmt.Sprint(app.Cf.LowStockThreshold)},
		{Name: "Export file", Value: app.Cf.ExportPath},
		{Name: "Session lifetime", Value: app.Cf.Auth.TokenTTL.String()},
	}
}

func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	if app.DB == nil {
		return nil
	}
	logger.Info("Closing database pool")
	return app.DB.Close()
}
