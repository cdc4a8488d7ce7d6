// Package server wires the gateway: configuration, logging, metrics, the
// embed instance manager, and the HTTP/WebSocket surface.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihttp "github.com/flowframe/embed/internal/api/http"
	"github.com/flowframe/embed/internal/api/middleware"
	"github.com/flowframe/embed/internal/api/ws"
	"github.com/flowframe/embed/internal/embed"
	"github.com/flowframe/embed/internal/flowhost"
	"github.com/flowframe/embed/internal/infrastructure/config"
	"github.com/flowframe/embed/internal/infrastructure/logging"
	"github.com/flowframe/embed/internal/infrastructure/monitoring"
	"github.com/flowframe/embed/internal/manifest"
)

// Server holds the gateway's wired components.
type Server struct {
	router  *gin.Engine
	manager *embed.Manager
	logger  *logging.Logger
	config  *config.Config
	httpSrv *http.Server
}

// New assembles a gateway from configuration.
func New(cfg *config.Config) (*Server, error) {
	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		logger = logging.NewDefault()
	}

	logger.Info("initializing flowframe gateway",
		zap.String("port", cfg.Server.Port),
		zap.String("flow_host", cfg.Flow.HostBase),
		zap.String("page_origin", cfg.Embed.PageOrigin),
	)

	m, err := manifest.Load(cfg.Flow.ManifestPath)
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	logger.Info("flow manifest loaded",
		zap.String("path", cfg.Flow.ManifestPath),
		zap.Int("flows", len(m.Flows)),
	)

	metrics := monitoring.NewMetrics()
	manager := embed.NewManager(cfg.Embed.PageOrigin, metrics, logger)
	flows := flowhost.New(cfg.Flow.HostBase)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	router.Use(monitoring.Middleware(metrics))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := apihttp.NewHandlers(manager, m, flows, cfg.Flow.HostBase, logger)
	channel := ws.NewHandler(manager, metrics, logger)

	router.GET("/health", handlers.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/embeds", handlers.CreateEmbed)
	router.GET("/embeds", handlers.ListEmbeds)
	router.GET("/embeds/:id", handlers.GetEmbed)
	router.DELETE("/embeds/:id", handlers.CloseEmbed)
	router.GET("/embeds/:id/channel", channel.HandleChannel)

	return &Server{
		router:  router,
		manager: manager,
		logger:  logger,
		config:  cfg,
	}, nil
}

// Router exposes the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Manager exposes the embed instance manager.
func (s *Server) Manager() *embed.Manager {
	return s.manager
}

// Run serves until the listener fails or Shutdown is called.
func (s *Server) Run() error {
	addr := fmt.Sprintf("%s:%s", s.config.Server.Host, s.config.Server.Port)
	s.logger.Info("gateway listening", zap.String("addr", addr))

	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown closes every hosted instance and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	for _, inst := range s.manager.List() {
		s.manager.Close(inst.Controller.ID())
	}
	if s.httpSrv != nil {
		return s.httpSrv.Shutdown(ctx)
	}
	return nil
}
