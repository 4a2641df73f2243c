package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/sentra/internal/accounting"
	accountingdomain "github.com/smallbiznis/sentra/internal/accounting/domain"
	"github.com/smallbiznis/sentra/internal/asset"
	assetdomain "github.com/smallbiznis/sentra/internal/asset/domain"
	"github.com/smallbiznis/sentra/internal/auth"
	authdomain "github.com/smallbiznis/sentra/internal/auth/domain"
	"github.com/smallbiznis/sentra/internal/config"
	"github.com/smallbiznis/sentra/internal/customer"
	customerdomain "github.com/smallbiznis/sentra/internal/customer/domain"
	"github.com/smallbiznis/sentra/internal/dashboard"
	dashboarddomain "github.com/smallbiznis/sentra/internal/dashboard/domain"
	"github.com/smallbiznis/sentra/internal/observability"
	obsmiddleware "github.com/smallbiznis/sentra/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/sentra/internal/observability/metrics"
	"github.com/smallbiznis/sentra/internal/order"
	orderdomain "github.com/smallbiznis/sentra/internal/order/domain"
	"github.com/smallbiznis/sentra/internal/organization"
	organizationdomain "github.com/smallbiznis/sentra/internal/organization/domain"
	"github.com/smallbiznis/sentra/internal/stock"
	stockdomain "github.com/smallbiznis/sentra/internal/stock/domain"
	"github.com/smallbiznis/sentra/internal/supplier"
	supplierdomain "github.com/smallbiznis/sentra/internal/supplier/domain"
	"github.com/smallbiznis/sentra/internal/voice"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	auth.Module,
	organization.Module,
	supplier.Module,
	customer.Module,
	asset.Module,
	stock.Module,
	accounting.Module,
	order.Module,
	voice.Module,
	dashboard.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	db              *gorm.DB
	genID           *snowflake.Node
	authsvc         authdomain.Service
	organizationSvc organizationdomain.Service
	supplierSvc     supplierdomain.Service
	customerSvc     customerdomain.Service
	assetSvc        assetdomain.Service
	stockSvc        stockdomain.Service
	accountingSvc   accountingdomain.Service
	orderSvc        orderdomain.Service
	dashboardSvc    dashboarddomain.Service
	dispatcher      *voice.Dispatcher
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	DB              *gorm.DB
	GenID           *snowflake.Node
	Authsvc         authdomain.Service
	OrganizationSvc organizationdomain.Service
	SupplierSvc     supplierdomain.Service
	CustomerSvc     customerdomain.Service
	AssetSvc        assetdomain.Service
	StockSvc        stockdomain.Service
	AccountingSvc   accountingdomain.Service
	OrderSvc        orderdomain.Service
	DashboardSvc    dashboarddomain.Service
	Dispatcher      *voice.Dispatcher
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		db:              p.DB,
		genID:           p.GenID,
		authsvc:         p.Authsvc,
		organizationSvc: p.OrganizationSvc,
		supplierSvc:     p.SupplierSvc,
		customerSvc:     p.CustomerSvc,
		assetSvc:        p.AssetSvc,
		stockSvc:        p.StockSvc,
		accountingSvc:   p.AccountingSvc,
		orderSvc:        p.OrderSvc,
		dashboardSvc:    p.DashboardSvc,
		dispatcher:      p.Dispatcher,
	}

	svc.registerAuthRoutes()
	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/auth")

	auth.POST("/signup", s.SignUp)
	auth.POST("/login", s.Login)
	auth.GET("/me", s.AuthRequired(), s.Me)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// Voice resolves its tenant itself: token when present, body org_id
	// otherwise. Everything below it requires a resolved identity.
	api.POST("/voice/parse", s.OptionalAuth(), s.ParseVoiceCommand)

	api.Use(s.AuthRequired())

	api.POST("/organizations", s.CreateOrganization)
	api.GET("/organizations/:id", s.GetOrganization)

	api.GET("/dashboard", s.GetDashboard)

	// -------- Suppliers --------
	api.GET("/suppliers", s.ListSuppliers)
	api.POST("/suppliers", s.CreateSupplier)
	api.GET("/suppliers/:id", s.GetSupplierByID)
	api.PATCH("/suppliers/:id", s.UpdateSupplier)
	api.DELETE("/suppliers/:id", s.DeleteSupplier)

	// -------- Customers --------
	api.GET("/customers", s.ListCustomers)
	api.POST("/customers", s.CreateCustomer)
	api.GET("/customers/:id", s.GetCustomerByID)
	api.PATCH("/customers/:id", s.UpdateCustomer)
	api.DELETE("/customers/:id", s.DeleteCustomer)

	// -------- Assets --------
	api.GET("/assets", s.ListAssets)
	api.POST("/assets", s.CreateAsset)
	api.GET("/assets/:id", s.GetAssetByID)
	api.PATCH("/assets/:id", s.UpdateAsset)
	api.DELETE("/assets/:id", s.DeleteAsset)

	// -------- Stocks --------
	api.GET("/stocks", s.ListStocks)
	api.POST("/stocks", s.CreateStock)
	api.GET("/stocks/:id", s.GetStockByID)
	api.PATCH("/stocks/:id", s.UpdateStock)
	api.DELETE("/stocks/:id", s.DeleteStock)

	// -------- Accounting --------
	api.GET("/accounting", s.ListAccountingEntries)
	api.POST("/accounting", s.CreateAccountingEntry)
	api.GET("/accounting/summary", s.GetAccountingSummary)
	api.GET("/accounting/:id", s.GetAccountingEntryByID)
	api.DELETE("/accounting/:id", s.DeleteAccountingEntry)

	// -------- Selling --------
	selling := api.Group("/selling")
	selling.GET("/sales-orders", s.ListSalesOrders)
	selling.POST("/sales-orders", s.CreateSalesOrder)
	selling.GET("/sales-orders/analytics", s.GetSalesAnalytics)
	selling.GET("/sales-orders/:id", s.GetSalesOrderByID)
	selling.GET("/sales-orders/:id/items", s.GetSalesOrderItems)
	selling.PATCH("/sales-orders/:id", s.UpdateSalesOrder)
	selling.DELETE("/sales-orders/:id", s.DeleteSalesOrder)

	// -------- Buying --------
	buying := api.Group("/buying")
	buying.GET("/purchase-orders", s.ListPurchaseOrders)
	buying.POST("/purchase-orders", s.CreatePurchaseOrder)
	buying.GET("/purchase-orders/:id", s.GetPurchaseOrderByID)
	buying.GET("/purchase-orders/:id/items", s.GetPurchaseOrderItems)
	buying.PATCH("/purchase-orders/:id", s.UpdatePurchaseOrder)
	buying.DELETE("/purchase-orders/:id", s.DeletePurchaseOrder)
}
