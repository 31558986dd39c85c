// Package httpapi exposes the content gate over HTTP: the 402 content
// endpoint, transaction status polling, health, and metrics.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"x402-gate/domain/interfaces"
	"x402-gate/infrastructure/metrics"
)

// Server hosts the gate's HTTP API.
type Server struct {
	engine   *gin.Engine
	httpSrv  *http.Server
	unlock   interfaces.UnlockContentUseCase
	status   interfaces.PaymentStatusUseCase
	verifier interfaces.ChainVerifier
	exporter *metrics.Exporter
	logger   interfaces.Logger
}

// NewServer wires the routes and middleware. The rate limiter may be nil to
// disable limiting.
func NewServer(
	unlock interfaces.UnlockContentUseCase,
	status interfaces.PaymentStatusUseCase,
	verifier interfaces.ChainVerifier,
	exporter *metrics.Exporter,
	limiter *RateLimiter,
	logger interfaces.Logger,
) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), RequestLogger(logger))

	s := &Server{
		engine:   engine,
		unlock:   unlock,
		status:   status,
		verifier: verifier,
		exporter: exporter,
		logger:   logger,
	}

	content := engine.Group("/content")
	if limiter != nil {
		content.Use(limiter.Middleware())
	}
	content.GET("/:content_type/:content_id", s.handleContent)

	engine.GET("/payments/:tx_hash/status", s.handleStatus)
	engine.GET("/healthz", s.handleHealth)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return s
}

// Handler returns the underlying HTTP handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start begins serving on the given address and blocks until the listener
// closes.
func (s *Server) Start(addr string) error {
	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("HTTP server listening", "addr", addr)
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}
