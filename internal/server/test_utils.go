package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	accountingdomain "github.com/smallbiznis/sentra/internal/accounting/domain"
	accountingservice "github.com/smallbiznis/sentra/internal/accounting/service"
	assetdomain "github.com/smallbiznis/sentra/internal/asset/domain"
	assetservice "github.com/smallbiznis/sentra/internal/asset/service"
	authdomain "github.com/smallbiznis/sentra/internal/auth/domain"
	authrepository "github.com/smallbiznis/sentra/internal/auth/repository"
	authservice "github.com/smallbiznis/sentra/internal/auth/service"
	"github.com/smallbiznis/sentra/internal/config"
	customerdomain "github.com/smallbiznis/sentra/internal/customer/domain"
	customerservice "github.com/smallbiznis/sentra/internal/customer/service"
	dashboardservice "github.com/smallbiznis/sentra/internal/dashboard/service"
	orderdomain "github.com/smallbiznis/sentra/internal/order/domain"
	orderservice "github.com/smallbiznis/sentra/internal/order/service"
	organizationdomain "github.com/smallbiznis/sentra/internal/organization/domain"
	organizationservice "github.com/smallbiznis/sentra/internal/organization/service"
	stockdomain "github.com/smallbiznis/sentra/internal/stock/domain"
	stockservice "github.com/smallbiznis/sentra/internal/stock/service"
	supplierdomain "github.com/smallbiznis/sentra/internal/supplier/domain"
	supplierservice "github.com/smallbiznis/sentra/internal/supplier/service"
	"github.com/smallbiznis/sentra/internal/voice"
	"github.com/smallbiznis/sentra/pkg/db"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&authdomain.User{},
		&organizationdomain.Organization{},
		&supplierdomain.Supplier{},
		&customerdomain.Customer{},
		&assetdomain.Asset{},
		&stockdomain.Stock{},
		&accountingdomain.Entry{},
		&orderdomain.SalesOrder{}, &orderdomain.SalesOrderItem{},
		&orderdomain.PurchaseOrder{}, &orderdomain.PurchaseOrderItem{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	log := zap.NewNop()
	cfg := config.Config{AuthJWTSecret: "test-secret", AuthTokenTTL: 1}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(ErrorHandlingMiddleware())

	authsvc := authservice.New(log, cfg, authrepository.New(gdb), node)
	suppliers := supplierservice.New(supplierservice.ServiceParam{DB: gdb, Log: log, GenID: node})
	customers := customerservice.New(customerservice.ServiceParam{DB: gdb, Log: log, GenID: node})
	assets := assetservice.New(assetservice.ServiceParam{DB: gdb, Log: log, GenID: node})

	return NewServer(ServerParams{
		Gin:             engine,
		Cfg:             cfg,
		DB:              gdb,
		GenID:           node,
		Authsvc:         authsvc,
		OrganizationSvc: organizationservice.New(organizationservice.ServiceParam{DB: gdb, Log: log, GenID: node}),
		SupplierSvc:     suppliers,
		CustomerSvc:     customers,
		AssetSvc:        assets,
		StockSvc:        stockservice.New(stockservice.ServiceParam{DB: gdb, Log: log, GenID: node}),
		AccountingSvc:   accountingservice.New(accountingservice.ServiceParam{DB: gdb, Log: log, GenID: node}),
		OrderSvc:        orderservice.New(orderservice.ServiceParam{DB: gdb, Log: log, GenID: node}),
		DashboardSvc:    dashboardservice.New(dashboardservice.ServiceParam{DB: gdb, Log: log}),
		Dispatcher: voice.NewDispatcher(voice.DispatcherParam{
			Log:       log,
			Suppliers: suppliers,
			Customers: customers,
			Assets:    assets,
		}),
	})
}

func doJSON(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// signupAndOnboard registers a user, creates their organization, and returns
// a token whose identity carries the new org.
func signupAndOnboard(t *testing.T, s *Server, email string) string {
	t.Helper()

	w := doJSON(t, s, http.MethodPost, "/auth/signup", "", gin.H{
		"name":     "Test User",
		"email":    email,
		"password": "hunter2hunter2",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var signup authdomain.TokenResult
	decodeJSON(t, w, &signup)

	w = doJSON(t, s, http.MethodPost, "/api/organizations", signup.Token, gin.H{
		"name": "Test Org",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	return signup.Token
}
