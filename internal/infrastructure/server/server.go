package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apihttp "github.com/calcdeck/backend/internal/api/http"
	"github.com/calcdeck/backend/internal/api/middleware"
	"github.com/calcdeck/backend/internal/api/ws"
	"github.com/calcdeck/backend/internal/infrastructure/config"
	"github.com/calcdeck/backend/internal/infrastructure/logging"
	"github.com/calcdeck/backend/internal/infrastructure/monitoring"
	"github.com/calcdeck/backend/internal/providers/calc"
	"github.com/calcdeck/backend/internal/providers/currency"
	"github.com/calcdeck/backend/internal/service"
)

// Server wraps the HTTP server and its dependencies
type Server struct {
	cfg      *config.Config
	logger   *logging.Logger
	metrics  *monitoring.Metrics
	registry *service.Registry
	router   *gin.Engine
	httpSrv  *http.Server
}

// New creates a server from configuration
func New(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = logging.NewDefault()
	}

	metrics := monitoring.NewMetrics()

	// Service providers
	calcProvider := calc.NewProvider(cfg.Calculator.HistoryLimit, logger).WithMetrics(metrics)

	pairs := currency.DefaultPairs()
	if cfg.Currency.RatesPath != "" {
		loaded, err := currency.LoadPairs(cfg.Currency.RatesPath)
		if err != nil {
			logger.Warn("failed to load rates file, using built-in pairs",
				zap.String("path", cfg.Currency.RatesPath),
				zap.Error(err),
			)
		} else {
			pairs = loaded
		}
	}
	currencyProvider := currency.NewProvider(pairs, logger).WithMetrics(metrics)

	registry := service.NewRegistry()
	for _, p := range []service.Provider{calcProvider, currencyProvider} {
		if err := registry.Register(p); err != nil {
			return nil, err
		}
	}
	stats := registry.Stats()
	logger.Info("registered services",
		zap.Any("total_services", stats["total_services"]),
		zap.Any("total_tools", stats["total_tools"]),
	)

	// Router
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := apihttp.NewHandlers(registry, metrics)
	wsHandler := ws.NewHandler(registry, calcProvider.Sessions(), metrics, logger)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)

	router.GET("/services", handlers.ListServices)
	router.POST("/services/discover", handlers.DiscoverServices)
	router.POST("/services/execute", handlers.ExecuteService)

	router.GET("/metrics", metrics.Handler())
	router.GET("/metrics/summary", handlers.MetricsSummary)

	router.GET("/ws", wsHandler.HandleConnection)

	return &Server{
		cfg:      cfg,
		logger:   logger,
		metrics:  metrics,
		registry: registry,
		router:   router,
	}, nil
}

// Registry exposes the service registry, mainly for tests
func (s *Server) Registry() *service.Registry {
	return s.registry
}

// Router exposes the gin engine, mainly for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run starts the server and blocks until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	addr := s.cfg.Server.Host + ":" + s.cfg.Server.Port
	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", zap.String("addr", addr))
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.httpSrv.Shutdown(shutdownCtx)
}

// Close releases resources
func (s *Server) Close() error {
	if s.logger != nil {
		// Flush buffered log entries; stdout sync errors are expected.
		_ = s.logger.Sync()
	}
	return nil
}
