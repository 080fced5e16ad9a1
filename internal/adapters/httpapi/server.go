package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// ServerOptions configures the HTTP server
type ServerOptions struct {
	ListenAddress  string
	RequestTimeout time.Duration
	// Gatherer serves /metrics when set
	Gatherer prometheus.Gatherer
}

// Server is the HTTP front end of the trainer
type Server struct {
	engine *gin.Engine
	srv    *http.Server
	logger *zap.Logger
}

// NewServer builds the router for handler
func NewServer(handler *Handler, opts ServerOptions, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(
		requestID(),
		accessLog(logger),
		recovery(logger, handler.opts.DefaultLocale),
		timeout(opts.RequestTimeout),
	)

	handler.RegisterRoutes(engine)
	if opts.Gatherer != nil {
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	return &Server{
		engine: engine,
		srv: &http.Server{
			Addr:              opts.ListenAddress,
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start serves in the background
func (s *Server) Start() error {
	s.logger.Info("HTTP server starting", zap.String("address", s.srv.Addr))

	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop drains in-flight requests for up to five seconds
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}
