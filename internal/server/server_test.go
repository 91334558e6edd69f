package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	auditservice "github.com/electromax/storefront/internal/audit/service"
	catalogservice "github.com/electromax/storefront/internal/catalog/service"
	"github.com/electromax/storefront/internal/clock"
	"github.com/electromax/storefront/internal/config"
	customerservice "github.com/electromax/storefront/internal/customer/service"
	"github.com/electromax/storefront/internal/migration"
	notificationservice "github.com/electromax/storefront/internal/notification/service"
	"github.com/electromax/storefront/internal/seed"
	simulationservice "github.com/electromax/storefront/internal/simulation/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestEngine(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := migration.Run(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}

	log := zap.NewNop()
	cfg := config.Config{
		Bootstrap:  config.BootstrapConfig{MediaRoot: t.TempDir()},
		Simulation: config.SimulationConfig{WindowDays: 3},
	}

	catalogSvc := catalogservice.NewService(catalogservice.ServiceParam{DB: conn, Log: log, GenID: node})
	customerSvc := customerservice.NewService(customerservice.ServiceParam{DB: conn, Log: log, GenID: node})
	notificationSvc := notificationservice.NewService(notificationservice.ServiceParam{DB: conn, Log: log, GenID: node})
	auditSvc := auditservice.NewService(auditservice.ServiceParam{DB: conn, Log: log, GenID: node})
	bootstrap := seed.NewBootstrap(seed.Param{
		DB: conn, Log: log, Config: cfg,
		CatalogSvc: catalogSvc, CustomerSvc: customerSvc,
	})
	simulationSvc := simulationservice.NewService(simulationservice.ServiceParam{
		DB: conn, Log: log, GenID: node, Config: cfg,
		Clock:     clock.Fixed{At: time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)},
		Bootstrap: bootstrap,
	})

	srv := NewServer(ServerParam{
		Config:          cfg,
		Log:             log,
		CatalogSvc:      catalogSvc,
		CustomerSvc:     customerSvc,
		SimulationSvc:   simulationSvc,
		NotificationSvc: notificationSvc,
		AuditSvc:        auditSvc,
	})
	engine := gin.New()
	srv.RegisterRoutes(engine)
	return engine, conn
}

func do(t *testing.T, engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	engine, _ := newTestEngine(t)
	w := do(t, engine, http.MethodGet, "/healthz", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", w.Code)
	}
}

func TestGenerateDemoSalesEndpoint(t *testing.T) {
	engine, _ := newTestEngine(t)

	w := do(t, engine, http.MethodPost, "/api/demo/sales", `{"clear_existing": true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", w.Code, w.Body)
	}

	var resp struct {
		Data struct {
			TotalOrders    int    `json:"total_orders"`
			TotalRevenue   string `json:"total_revenue"`
			ProductsCount  int    `json:"products_count"`
			CustomersCount int    `json:"customers_count"`
			StartDate      string `json:"start_date"`
			EndDate        string `json:"end_date"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.TotalOrders < 4 {
		t.Errorf("total orders %d, want at least one per day over 4 days", resp.Data.TotalOrders)
	}
	if resp.Data.ProductsCount != 15 || resp.Data.CustomersCount != 16 {
		t.Errorf("pool sizes %d/%d, want 15/16", resp.Data.ProductsCount, resp.Data.CustomersCount)
	}
	if resp.Data.EndDate != "2025-06-15" {
		t.Errorf("end date %q, want clock date", resp.Data.EndDate)
	}

	// The run leaves an audit trail.
	w = do(t, engine, http.MethodGet, "/api/audit_logs?action=demo.sales.generate", "")
	if w.Code != http.StatusOK {
		t.Fatalf("audit status %d", w.Code)
	}
	var audit struct {
		Data []struct {
			Action string `json:"action"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &audit); err != nil {
		t.Fatalf("decode audit response: %v", err)
	}
	if len(audit.Data) != 1 {
		t.Errorf("got %d audit entries, want 1", len(audit.Data))
	}
}

func TestGenerateDemoSalesEmptyBody(t *testing.T) {
	engine, _ := newTestEngine(t)
	w := do(t, engine, http.MethodPost, "/api/demo/sales", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d for empty body, want 200", w.Code)
	}
}

func TestBackfillMetricsEndpoint(t *testing.T) {
	engine, _ := newTestEngine(t)

	w := do(t, engine, http.MethodPost, "/api/demo/metrics/backfill", "{}")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", w.Code, w.Body)
	}

	w = do(t, engine, http.MethodPost, "/api/demo/metrics/backfill", `{"limit": -1}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d for negative limit, want 400", w.Code)
	}
}

func TestProductEndpoints(t *testing.T) {
	engine, _ := newTestEngine(t)

	// Seed the catalog through a generation run.
	if w := do(t, engine, http.MethodPost, "/api/demo/sales", ""); w.Code != http.StatusOK {
		t.Fatalf("seed run status %d", w.Code)
	}

	w := do(t, engine, http.MethodGet, "/api/products?limit=5", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list status %d", w.Code)
	}
	var list struct {
		Data []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list.Data) != 5 {
		t.Fatalf("got %d products, want 5", len(list.Data))
	}

	w = do(t, engine, http.MethodGet, "/api/products/"+list.Data[0].ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get status %d", w.Code)
	}

	w = do(t, engine, http.MethodGet, "/api/products/999999999", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing product status %d, want 404", w.Code)
	}

	w = do(t, engine, http.MethodGet, "/api/products?ids=abc", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad ids status %d, want 400", w.Code)
	}
}

func TestDeviceTokenEndpoints(t *testing.T) {
	engine, _ := newTestEngine(t)

	w := do(t, engine, http.MethodPost, "/api/device_tokens/register",
		`{"customer_id": "12345", "token": "tok-1", "platform": "ios"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("register status %d, body %s", w.Code, w.Body)
	}

	w = do(t, engine, http.MethodGet, "/api/device_tokens?customer_id=12345", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list status %d", w.Code)
	}
	var list struct {
		Data []struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list.Data) != 1 || list.Data[0].Token != "tok-1" {
		t.Fatalf("unexpected token list %+v", list.Data)
	}

	w = do(t, engine, http.MethodPost, "/api/device_tokens/unregister", `{"token": "tok-1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("unregister status %d", w.Code)
	}

	w = do(t, engine, http.MethodPost, "/api/device_tokens/unregister", `{"token": "missing"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown token status %d, want 404", w.Code)
	}

	w = do(t, engine, http.MethodGet, "/api/device_tokens", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing customer_id status %d, want 400", w.Code)
	}
}
