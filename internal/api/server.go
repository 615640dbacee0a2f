// Package api serves reports, downloads and receipts over HTTP for the
// browser dashboard.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"jobsite-tracker/internal/config"
	"jobsite-tracker/internal/services"
)

// ProfileHeader selects the acting profile for a request.
const ProfileHeader = "X-Profile-ID"

const shutdownTimeout = 5 * time.Second

// Server is the HTTP front end over the service container.
type Server struct {
	services *services.Container
	config   *config.Config
	logger   logrus.FieldLogger
	engine   *gin.Engine
}

// NewServer builds the router. Nothing listens until Run is called.
func NewServer(c *services.Container, cfg *config.Config, logger logrus.FieldLogger) *Server {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	s := &Server{
		services: c,
		config:   cfg,
		logger:   logger.WithField("component", "http"),
		engine:   gin.New(),
	}
	s.engine.Use(gin.Recovery(), s.requestLogger())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if s.config.Receipts.BaseURL != "" && s.config.Receipts.Dir != "" {
		s.engine.Static(s.config.Receipts.BaseURL, s.config.Receipts.Dir)
	}

	api := s.engine.Group("/api", s.withActor)
	{
		api.GET("/me", s.me)

		api.GET("/entries", s.listEntries)
		api.GET("/entries/:id", s.getEntry)
		api.POST("/expenses", s.addExpense)

		reports := api.Group("/reports")
		{
			reports.GET("/summary", s.summary)
			reports.GET("/groups", s.groups)
			reports.GET("/daily", s.daily)
			reports.GET("/invoice", s.invoice)
		}

		exports := api.Group("/exports")
		{
			exports.GET("/entries.csv", s.exportEntries)
			exports.GET("/expenses.csv", s.exportExpenses)
			exports.GET("/invoice.csv", s.exportInvoice)
		}

		worksheets := api.Group("/worksheets")
		{
			worksheets.GET("", s.listWorksheets)
			worksheets.GET("/:id", s.getWorksheet)
			worksheets.GET("/:id/export.xlsx", s.exportWorksheet)
		}
	}
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Addr is the configured listen address.
func (s *Server) Addr() string {
	return s.config.Server.Addr
}

// Run listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:           s.config.Server.Addr,
		Handler:        s.engine,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   s.config.Application.Timeout + 15*time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", srv.Addr).Info("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("http server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// requestLogger logs one line per request with logrus
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := s.logger.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		})
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			entry.Error("request failed")
		case c.Writer.Status() >= http.StatusBadRequest:
			entry.Info("request rejected")
		default:
			entry.Debug("request served")
		}
	}
}
