package httpserver

import (
	"context"
	"errors"
	"iter"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"sowin-pos/internal/domain"
	"sowin-pos/internal/service/account"
	"sowin-pos/internal/service/advisory"
	"sowin-pos/internal/service/dashboard"
	"sowin-pos/internal/service/inventory"
	"sowin-pos/internal/service/report"
	"sowin-pos/internal/service/sale"
	"sowin-pos/internal/service/terminal"
)

type AccountService interface {
	Login(ctx context.Context, in account.LoginInput) (*domain.TerminalSession, error)
	Authenticate(ctx context.Context, token string) (*domain.TerminalSession, error)
	Logout(ctx context.Context, token string) error
	ListUsers(ctx context.Context) ([]domain.User, error)
	Register(ctx context.Context, in account.RegisterInput) (*domain.User, error)
	DeleteUser(ctx context.Context, actor domain.User, id int64) error
	ListRoles(ctx context.Context) ([]domain.Role, error)
	CreateRole(ctx context.Context, name string) (*domain.Role, error)
	DeleteRole(ctx context.Context, id int64) error
}

type CatalogService interface {
	FindByCode(ctx context.Context, code string) (*domain.Product, error)
	Search(ctx context.Context, text string, categoryID int64) (iter.Seq[domain.Product], error)
}

type SaleService interface {
	ResolveAndAdd(ctx context.Context, sess *sale.Session, code string, qty int) (*domain.Product, error)
	Confirm(ctx context.Context, sess *sale.Session, cashier sale.Cashier) (*domain.Sale, error)
	List(ctx context.Context) ([]domain.Sale, error)
	ListByCashier(ctx context.Context, userID int64) ([]domain.Sale, error)
}

// SessionRegistry serializes access to each cashier's open sale.
type SessionRegistry interface {
	With(userID int64, fn func(*sale.Session) error) error
	Drop(userID int64)
}

type NotificationBoard interface {
	List() []advisory.Notification
	Unread() []advisory.Notification
	MarkRead(id string) error
	MarkAllRead()
	Draft(id string) (advisory.RestockDraft, error)
}

type ReportService interface {
	Ticket(ctx context.Context, biz domain.BusinessProfile, s domain.Sale) (*report.Document, error)
	Close(ctx context.Context, biz domain.BusinessProfile, userID int64, cashier string) (*report.Closing, *report.Document, error)
}

type InventoryService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, p domain.Product, creator *domain.User) (*domain.Product, error)
	UpdateProduct(ctx context.Context, p domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, name string) (*domain.Category, error)
	UpdateCategory(ctx context.Context, c domain.Category) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
	ListSuppliers(ctx context.Context) ([]domain.Supplier, error)
	CreateSupplier(ctx context.Context, s domain.Supplier) (*domain.Supplier, error)
	UpdateSupplier(ctx context.Context, s domain.Supplier) (*domain.Supplier, error)
	DeleteSupplier(ctx context.Context, id int64) error
	ListEntries(ctx context.Context) ([]domain.StockEntry, error)
	RecordEntry(ctx context.Context, e domain.StockEntry, by *domain.User) error
	ListMovements(ctx context.Context, r inventory.DateRange) ([]domain.Movement, error)
	DeleteMovement(ctx context.Context, id int64) error
	DeleteMovementRange(ctx context.Context, r inventory.DateRange) (inventory.RangeDeleteResult, error)
	PurgeMovements(ctx context.Context, in domain.MovementPurge) (int, error)
}

type DashboardService interface {
	Summary(ctx context.Context) (dashboard.Summary, error)
	SalesByDay(ctx context.Context, days int) ([]dashboard.DayTotal, error)
	RecentActivity(ctx context.Context) ([]dashboard.Activity, error)
}

type PreferenceService interface {
	Preferences(ctx context.Context) (terminal.Preferences, error)
	SetTheme(ctx context.Context, theme string) error
	SetSidebarCollapsed(ctx context.Context, collapsed bool) error
	Business(ctx context.Context) (domain.BusinessProfile, error)
	SetBusiness(ctx context.Context, actor domain.User, p domain.BusinessProfile) error
}

// Deps carries the services the handlers call into.
type Deps struct {
	Store         Pinger
	Accounts      AccountService
	Catalog       CatalogService
	Sales         SaleService
	Sessions      SessionRegistry
	Notifications NotificationBoard
	Reports       ReportService
	Inventory     InventoryService
	Dashboard     DashboardService
	Preferences   PreferenceService
}

func (d Deps) validate() error {
	switch {
	case d.Accounts == nil:
		return errors.New("httpserver: account service is required")
	case d.Catalog == nil, d.Sales == nil, d.Sessions == nil:
		return errors.New("httpserver: catalog, sale service and session registry are required")
	case d.Notifications == nil:
		return errors.New("httpserver: notification board is required")
	case d.Reports == nil:
		return errors.New("httpserver: report service is required")
	case d.Inventory == nil, d.Dashboard == nil, d.Preferences == nil:
		return errors.New("httpserver: inventory, dashboard and preference services are required")
	}
	return nil
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, corsOrigins []string, deps Deps) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	h := &handlers{deps: deps, logger: logger}

	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	if len(corsOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     corsOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Store))

	api := router.Group("/api/v1")
	api.POST("/login", h.login)
	api.GET("/roles", h.listRoles)
	api.GET("/business", h.business)

	authed := api.Group("")
	authed.Use(authMiddleware(deps.Accounts))
	authed.POST("/logout", h.logout)
	authed.GET("/me", h.me)

	authed.GET("/catalog/products", h.searchCatalog)
	authed.GET("/catalog/products/:code", h.lookupProduct)

	authed.GET("/notifications", h.listNotifications)
	authed.POST("/notifications/read-all", h.markAllNotificationsRead)
	authed.POST("/notifications/:id/read", h.markNotificationRead)
	authed.POST("/notifications/:id/restock", h.restockDraft)

	authed.GET("/preferences", h.preferences)
	authed.PUT("/preferences/theme", h.setTheme)
	authed.PUT("/preferences/sidebar", h.setSidebar)
	authed.PUT("/business", h.setBusiness)

	register := authed.Group("", requireModule(account.ModuleSales))
	register.GET("/sale", h.currentSale)
	register.DELETE("/sale", h.clearSale)
	register.POST("/sale/lines", h.addLine)
	register.DELETE("/sale/lines/:productId", h.removeLine)
	register.PUT("/sale/lines/:productId", h.setLineQuantity)
	register.POST("/sale/edit", h.beginEdit)
	register.POST("/sale/edit/commit", h.commitEdit)
	register.POST("/sale/edit/cancel", h.cancelEdit)
	register.PUT("/sale/tendered", h.setTendered)
	register.POST("/sale/confirm", h.confirmSale)
	register.POST("/sale/close", h.closeRegister)
	register.GET("/sales/mine", h.mySales)

	products := authed.Group("/products", requireModule(account.ModuleInventory))
	products.GET("", h.listProducts)
	products.POST("", h.createProduct)
	products.PUT("/:id", h.updateProduct)
	products.DELETE("/:id", h.deleteProduct)

	categories := authed.Group("/categories", requireModule(account.ModuleCategories))
	categories.GET("", h.listCategories)
	categories.POST("", h.createCategory)
	categories.PUT("/:id", h.updateCategory)
	categories.DELETE("/:id", h.deleteCategory)

	suppliers := authed.Group("/suppliers", requireModule(account.ModuleSuppliers))
	suppliers.GET("", h.listSuppliers)
	suppliers.POST("", h.createSupplier)
	suppliers.PUT("/:id", h.updateSupplier)
	suppliers.DELETE("/:id", h.deleteSupplier)

	entries := authed.Group("/entries", requireModule(account.ModuleEntries))
	entries.GET("", h.listEntries)
	entries.POST("", h.recordEntry)

	movements := authed.Group("/movements", requireModule(account.ModuleMovements))
	movements.GET("", h.listMovements)
	movements.DELETE("/:id", h.deleteMovement)
	movements.POST("/delete-range", h.deleteMovementRange)
	movements.POST("/purge", h.purgeMovements)

	users := authed.Group("", requireModule(account.ModuleUsers))
	users.GET("/users", h.listUsers)
	users.POST("/users", h.registerUser)
	users.DELETE("/users/:id", h.deleteUser)
	users.POST("/roles", h.createRole)
	users.DELETE("/roles/:id", h.deleteRole)

	dash := authed.Group("/dashboard", requireModule(account.ModuleDashboard))
	dash.GET("/summary", h.dashboardSummary)
	dash.GET("/sales-by-day", h.salesByDay)
	dash.GET("/activity", h.recentActivity)
	dash.GET("/sales", h.allSales)

	return router, nil
}
