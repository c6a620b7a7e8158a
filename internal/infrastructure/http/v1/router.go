package v1

import (
	"github.com/gin-gonic/gin"

	"storefront/internal/domain/association"
	"storefront/internal/domain/ledger"
	"storefront/internal/domain/purge"
	"storefront/internal/infrastructure/http/v1/handlers"
	"storefront/internal/infrastructure/http/v1/middleware"
	"storefront/internal/infrastructure/metrics"
	"storefront/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Logger for request logging
	Logger *logger.Logger

	// Associations are the relation services, one route group each
	Associations []association.Service

	// Ledger serves /deleted-ids
	Ledger *ledger.Service

	// Purge serves /aggregates; nil disables the route
	Purge *purge.Service

	// Metrics is optional; nil disables /metrics and request observation
	Metrics *metrics.Metrics

	// Storage names the backing store in readiness output
	Storage string

	// DB is pinged by /health/ready; nil means always ready
	DB handlers.Pinger

	// Debug switches gin to debug mode
	Debug bool
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	if cfg.Metrics != nil {
		router.Use(middleware.Metrics(cfg.Metrics))
	}
	router.Use(middleware.ErrorHandler())

	healthHandler := handlers.NewHealthHandler(cfg.Storage, cfg.DB)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	if cfg.Metrics != nil {
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	v1 := router.Group("/api/v1")
	{
		registerAssociationRoutes(v1, cfg)
		registerLedgerRoutes(v1, cfg)
		registerPurgeRoutes(v1, cfg)
	}

	return router
}

// registerAssociationRoutes mounts every relation under its slug.
func registerAssociationRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	associations := rg.Group("/associations")
	baseHandler := handlers.NewBaseHandler()

	for _, svc := range cfg.Associations {
		handler := handlers.NewAssociationHandler(baseHandler, svc)
		RegisterAssociationRoutes(associations.Group("/"+svc.Relation().Slug), handler)
	}
}

// registerLedgerRoutes registers deletion ledger endpoints.
func registerLedgerRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.Ledger == nil {
		return
	}

	handler := handlers.NewLedgerHandler(handlers.NewBaseHandler(), cfg.Ledger)
	deleted := rg.Group("/deleted-ids")
	{
		deleted.GET("", handler.List)
		deleted.POST("", handler.Record)
		deleted.GET("/:id", handler.Get)
		deleted.PUT("/:id", handler.Update)
		deleted.DELETE("/:id", handler.Delete)
	}
}

// registerPurgeRoutes registers aggregate removal.
func registerPurgeRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.Purge == nil {
		return
	}

	handler := handlers.NewPurgeHandler(handlers.NewBaseHandler(), cfg.Purge)
	rg.DELETE("/aggregates/:kind/:id", handler.Purge)
}
