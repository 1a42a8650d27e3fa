// Package v1 provides HTTP API version 1.
package v1

import (
	"context"

	"github.com/gin-gonic/gin"

	"stockbook/internal/core/entity"
	"stockbook/internal/core/id"
	"stockbook/internal/domain"
	"stockbook/internal/domain/audit"
	"stockbook/internal/domain/auth"
	"stockbook/internal/domain/catalogs/category"
	"stockbook/internal/domain/catalogs/customer"
	"stockbook/internal/domain/catalogs/product"
	"stockbook/internal/domain/catalogs/producttype"
	"stockbook/internal/domain/catalogs/supplier"
	"stockbook/internal/domain/documents/purchase_order"
	"stockbook/internal/domain/documents/sales_order"
	"stockbook/internal/domain/ledger"
	"stockbook/internal/domain/registers/stock"
	"stockbook/internal/domain/reports"
	"stockbook/internal/infrastructure/export"
	"stockbook/internal/infrastructure/http/v1/handlers"
	"stockbook/internal/infrastructure/http/v1/middleware"
	"stockbook/internal/infrastructure/storage/postgres"
	"stockbook/internal/infrastructure/storage/postgres/catalog_repo"
	"stockbook/internal/infrastructure/storage/postgres/document_repo"
	"stockbook/internal/infrastructure/storage/postgres/ledger_repo"
	"stockbook/internal/infrastructure/storage/postgres/register_repo"
	"stockbook/internal/infrastructure/storage/postgres/report_repo"
	"stockbook/pkg/logger"
	"stockbook/pkg/numerator"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the database connection pool (for health checks and numbering)
	Pool *postgres.Pool

	// TxManager owns transaction boundaries for all repositories
	TxManager *postgres.TxManager

	// Audit records catalog mutations; optional
	Audit *postgres.AuditService

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// AuthService for authentication endpoints
	AuthService *auth.Service
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// Shared wiring: repositories and services are created once and
	// pick up the per-request transaction from context.
	deps := buildServices(cfg)

	// API v1
	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, cfg)

		// Protected endpoints
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		registerUserRoutes(protected, cfg)
		registerAuditRoutes(protected, cfg)
		registerCatalogRoutes(protected, deps)
		registerDocumentRoutes(protected, deps)
		registerRegisterRoutes(protected, deps)
		registerLedgerRoutes(protected, deps)
		registerReportRoutes(protected, deps)
	}

	return router
}

// services holds the wired domain layer shared across route groups.
type services struct {
	categories   *category.Service
	productTypes *producttype.Service
	products     *product.Service
	suppliers    *supplier.Service
	customers    *customer.Service

	purchaseOrders *purchase_order.Service
	salesOrders    *sales_order.Service

	stock    *stock.Service
	cashbook *ledger.Service
	reports  *reports.Service
}

// buildServices wires repositories and services with constructor
// injection. The dependency order follows the commit path: stock and
// ledger first, then catalogs, then the order engine on top.
func buildServices(cfg RouterConfig) *services {
	num := numerator.New(cfg.Pool)

	stockRepo := register_repo.NewStockRepo(cfg.TxManager)
	stockService := stock.NewService(stockRepo)

	ledgerRepo := ledger_repo.NewLedgerRepo(cfg.TxManager)
	ledgerService := ledger.NewService(ledgerRepo, cfg.TxManager)

	categoryRepo := catalog_repo.NewCategoryRepo(cfg.TxManager)
	categoryService := category.NewService(categoryRepo, cfg.TxManager, num)
	registerCatalogAudit(categoryService.Hooks(), cfg.Audit, "category",
		func(e *category.Category) id.ID { return e.ID })

	productTypeRepo := catalog_repo.NewProductTypeRepo(cfg.TxManager)
	productTypeService := producttype.NewService(productTypeRepo, cfg.TxManager, num, categoryRepo)
	registerCatalogAudit(productTypeService.Hooks(), cfg.Audit, "product_type",
		func(e *producttype.ProductType) id.ID { return e.ID })

	productRepo := catalog_repo.NewProductRepo(cfg.TxManager)
	productService := product.NewService(productRepo, cfg.TxManager, num, stockService)
	registerCatalogAudit(productService.Hooks(), cfg.Audit, "product",
		func(e *product.Product) id.ID { return e.ID })

	supplierRepo := catalog_repo.NewSupplierRepo(cfg.TxManager)
	supplierService := supplier.NewService(supplierRepo, cfg.TxManager, num)
	registerCatalogAudit(supplierService.Hooks(), cfg.Audit, "supplier",
		func(e *supplier.Supplier) id.ID { return e.ID })

	customerRepo := catalog_repo.NewCustomerRepo(cfg.TxManager)
	customerService := customer.NewService(customerRepo, cfg.TxManager, num)
	registerCatalogAudit(customerService.Hooks(), cfg.Audit, "customer",
		func(e *customer.Customer) id.ID { return e.ID })

	purchaseRepo := document_repo.NewPurchaseOrderRepo(cfg.TxManager)
	purchaseService := purchase_order.NewService(
		purchaseRepo,
		supplierService,
		productService,
		stockService,
		ledgerService,
		num,
		cfg.TxManager,
	)
	purchaseService.Hooks().OnBeforeCreate(func(ctx context.Context, doc *purchase_order.PurchaseOrder) error {
		return audit.EnrichCreatedBy(ctx, doc)
	})
	registerOrderAudit(purchaseService.Hooks(), cfg.Audit, "purchase_order",
		func(e *purchase_order.PurchaseOrder) id.ID { return e.ID })

	salesRepo := document_repo.NewSalesOrderRepo(cfg.TxManager)
	salesService := sales_order.NewService(
		salesRepo,
		customerService,
		productService,
		stockService,
		ledgerService,
		num,
		cfg.TxManager,
	)
	salesService.Hooks().OnBeforeCreate(func(ctx context.Context, doc *sales_order.SalesOrder) error {
		return audit.EnrichCreatedBy(ctx, doc)
	})
	registerOrderAudit(salesService.Hooks(), cfg.Audit, "sales_order",
		func(e *sales_order.SalesOrder) id.ID { return e.ID })

	reportRepo := report_repo.NewReportRepo(cfg.TxManager)
	reportService := reports.NewService(
		reportRepo,
		cfg.TxManager,
		ledgerService,
		stockService,
		customerService,
		supplierService,
	)

	return &services{
		categories:     categoryService,
		productTypes:   productTypeService,
		products:       productService,
		suppliers:      supplierService,
		customers:      customerService,
		purchaseOrders: purchaseService,
		salesOrders:    salesService,
		stock:          stockService,
		cashbook:       ledgerService,
		reports:        reportService,
	}
}

// registerCatalogAudit records catalog mutations in the audit log.
// After-hooks run outside the mutation transaction; a failed audit
// write is logged by the service without failing the request.
func registerCatalogAudit[T entity.Validatable](
	hooks *domain.HookRegistry[T],
	auditLog *postgres.AuditService,
	entityType string,
	idOf func(T) id.ID,
) {
	if auditLog == nil {
		return
	}

	log := func(action postgres.AuditAction) domain.Hook[T] {
		return func(ctx context.Context, e T) error {
			return auditLog.LogChange(ctx, entityType, idOf(e), action, postgres.StructToMap(e))
		}
	}

	hooks.OnAfterCreate(log(postgres.AuditActionCreate))
	hooks.OnAfterUpdate(log(postgres.AuditActionUpdate))
	hooks.OnAfterDelete(log(postgres.AuditActionDelete))
}

// registerOrderAudit records committed orders in the audit log.
// Orders are create-only, so only the create hook is registered.
func registerOrderAudit[T entity.Validatable](
	hooks *domain.HookRegistry[T],
	auditLog *postgres.AuditService,
	entityType string,
	idOf func(T) id.ID,
) {
	if auditLog == nil {
		return
	}

	hooks.OnAfterCreate(func(ctx context.Context, e T) error {
		return auditLog.LogChange(ctx, entityType, idOf(e), postgres.AuditActionCreate, postgres.StructToMap(e))
	})
}

// registerAuthRoutes registers authentication endpoints.
func registerAuthRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.AuthService == nil {
		return
	}

	baseHandler := handlers.NewBaseHandler()
	authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService)

	// Public auth endpoints (no JWT required)
	publicAuth := rg.Group("/auth")

	// Protected auth endpoints (JWT required)
	protectedAuth := rg.Group("/auth")
	protectedAuth.Use(middleware.Auth(cfg.JWTValidator))

	authHandler.RegisterRoutes(publicAuth, protectedAuth)
}

// registerUserRoutes registers user administration endpoints (admin only).
func registerUserRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.AuthService == nil {
		return
	}

	baseHandler := handlers.NewBaseHandler()
	usersHandler := handlers.NewUsersHandler(baseHandler, cfg.AuthService)

	users := rg.Group("/users")
	users.Use(middleware.RequireRole("admin"))
	{
		users.GET("", usersHandler.List)
		users.PUT("/:id/role", usersHandler.UpdateRole)
		users.PUT("/:id/active", usersHandler.SetActive)
	}
}

// registerAuditRoutes registers the catalog change history endpoint (admin only).
func registerAuditRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.Audit == nil {
		return
	}

	auditHandler := handlers.NewAuditHandler(handlers.NewBaseHandler(), cfg.Audit)

	auditGroup := rg.Group("/audit")
	auditGroup.Use(middleware.RequireRole("admin"))
	auditGroup.GET("/:entityType/:id", auditHandler.EntityHistory)
}

// registerCatalogRoutes registers catalog endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, deps *services) {
	catalogs := rg.Group("/catalog")
	baseHandler := handlers.NewBaseHandler()

	RegisterCatalogRoutes(catalogs.Group("/categories"), handlers.NewCategoryHandler(baseHandler, deps.categories))
	RegisterCatalogRoutes(catalogs.Group("/product-types"), handlers.NewProductTypeHandler(baseHandler, deps.productTypes))
	RegisterCatalogRoutes(catalogs.Group("/suppliers"), handlers.NewSupplierHandler(baseHandler, deps.suppliers))
	RegisterCatalogRoutes(catalogs.Group("/customers"), handlers.NewCustomerHandler(baseHandler, deps.customers))

	// Products carry one extra lookup route on top of standard CRUD.
	productHandler := handlers.NewProductHandler(baseHandler, deps.products)
	productGroup := catalogs.Group("/products")
	RegisterCatalogRoutes(productGroup, productHandler)
	productGroup.GET("/by-sku/:sku", productHandler.GetBySKU)
}

// registerDocumentRoutes registers order document endpoints.
func registerDocumentRoutes(rg *gin.RouterGroup, deps *services) {
	docsGroup := rg.Group("/documents")
	baseHandler := handlers.NewBaseHandler()

	// Purchase orders: creation is restricted to managers and admins.
	purchaseHandler := handlers.NewPurchaseOrderHandler(baseHandler, deps.purchaseOrders)
	RegisterDocumentRoutes(
		docsGroup.Group("/purchase-orders"),
		purchaseHandler,
		middleware.RequireRole("manager", "admin"),
	)

	// Sales orders: any authenticated user can sell.
	salesHandler := handlers.NewSalesOrderHandler(baseHandler, deps.salesOrders)
	RegisterDocumentRoutes(docsGroup.Group("/sales-orders"), salesHandler)
}

// registerRegisterRoutes registers stock register endpoints.
func registerRegisterRoutes(rg *gin.RouterGroup, deps *services) {
	registers := rg.Group("/registers")
	baseHandler := handlers.NewBaseHandler()

	stockHandler := handlers.NewStockHandler(baseHandler, deps.stock)
	stockGroup := registers.Group("/stock")
	stockGroup.GET("", stockHandler.List)
	stockGroup.GET("/:productId", stockHandler.GetQuantity)
}

// registerLedgerRoutes registers cash ledger endpoints.
func registerLedgerRoutes(rg *gin.RouterGroup, deps *services) {
	baseHandler := handlers.NewBaseHandler()

	ledgerHandler := handlers.NewLedgerHandler(baseHandler, deps.cashbook)
	ledgerGroup := rg.Group("/ledger")
	ledgerGroup.GET("", ledgerHandler.List)
	ledgerGroup.POST("", middleware.RequireRole("manager", "admin"), ledgerHandler.Create)
}

// registerReportRoutes registers dashboard and export endpoints.
func registerReportRoutes(rg *gin.RouterGroup, deps *services) {
	baseHandler := handlers.NewBaseHandler()

	reportsHandler := handlers.NewReportsHandler(baseHandler, deps.reports, export.NewExcelRenderer())
	reportsGroup := rg.Group("/reports")
	reportsGroup.GET("/dashboard", reportsHandler.Dashboard)
	reportsGroup.GET("/export", reportsHandler.Export)
}
