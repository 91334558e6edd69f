// Package server exposes the HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	auditdomain "github.com/electromax/storefront/internal/audit/domain"
	catalogdomain "github.com/electromax/storefront/internal/catalog/domain"
	"github.com/electromax/storefront/internal/config"
	customerdomain "github.com/electromax/storefront/internal/customer/domain"
	notificationdomain "github.com/electromax/storefront/internal/notification/domain"
	"github.com/electromax/storefront/internal/observability/logger"
	simulationdomain "github.com/electromax/storefront/internal/simulation/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ServerParam struct {
	fx.In

	Config          config.Config
	Log             *zap.Logger
	CatalogSvc      catalogdomain.Service
	CustomerSvc     customerdomain.Service
	SimulationSvc   simulationdomain.Service
	NotificationSvc notificationdomain.Service
	AuditSvc        auditdomain.Service
}

type Server struct {
	cfg config.Config
	log *zap.Logger

	catalogSvc      catalogdomain.Service
	customerSvc     customerdomain.Service
	simulationSvc   simulationdomain.Service
	notificationSvc notificationdomain.Service
	auditSvc        auditdomain.Service
}

func NewServer(p ServerParam) *Server {
	return &Server{
		cfg: p.Config,
		log: p.Log.Named("server"),

		catalogSvc:      p.CatalogSvc,
		customerSvc:     p.CustomerSvc,
		simulationSvc:   p.SimulationSvc,
		notificationSvc: p.NotificationSvc,
		auditSvc:        p.AuditSvc,
	}
}

// NewEngine builds the gin engine with the shared middleware stack.
func NewEngine(cfg config.Config) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(logger.GinMiddleware(logger.MiddlewareConfig{
		SkipPaths: []string{"/healthz"},
	}))
	return engine
}

// RegisterRoutes attaches the API surface to the engine.
func (s *Server) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	{
		api.POST("/demo/sales", s.GenerateDemoSales)
		api.POST("/demo/metrics/backfill", s.BackfillProductMetrics)

		api.GET("/products", s.ListProducts)
		api.GET("/products/:id", s.GetProductByID)

		api.POST("/device_tokens/register", s.RegisterDeviceToken)
		api.POST("/device_tokens/unregister", s.UnregisterDeviceToken)
		api.GET("/device_tokens", s.ListDeviceTokens)

		api.GET("/audit_logs", s.ListAuditLogs)
	}
}

// RunHTTP starts the HTTP listener under the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, engine *gin.Engine, s *Server) {
	srv := &http.Server{
		Addr:              s.cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				s.log.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					s.log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

var Module = fx.Module("server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(engine *gin.Engine, s *Server) {
		s.RegisterRoutes(engine)
	}),
	fx.Invoke(RunHTTP),
)
