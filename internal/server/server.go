// Package server exposes entry workspaces to the browser shell over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/swissfort-mfg/entrydesk/internal/buildinfo"
	"github.com/swissfort-mfg/entrydesk/internal/calc"
	"github.com/swissfort-mfg/entrydesk/internal/config"
	"github.com/swissfort-mfg/entrydesk/internal/export"
	"github.com/swissfort-mfg/entrydesk/internal/master"
)

// Options configures a Server.
type Options struct {
	Config    *config.Config
	Catalog   *master.Service
	Exporters *export.Registry // DefaultRegistry when nil
	Logger    *slog.Logger     // slog.Default when nil
}

// Server holds the live workspaces and the router serving them.
type Server struct {
	cfg        *config.Config
	catalog    *master.Service
	exporters  *export.Registry
	log        *slog.Logger
	formatter  calc.Formatter
	workspaces *store
	router     *gin.Engine
}

// New builds a Server and its routes.
func New(opts Options) *Server {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default("")
	}
	exporters := opts.Exporters
	if exporters == nil {
		exporters = export.DefaultRegistry()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:       cfg,
		catalog:   opts.Catalog,
		exporters: exporters,
		log:       logger,
		formatter: calc.Formatter{HideZero: cfg.Display.HideZero},
	}
	s.workspaces = newStore(s.newWorkspace)
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr, "version", buildinfo.Version)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.log))
	r.Use(cors.New(corsConfig(s.cfg.Server.AllowedOrigins)))

	r.GET("/", s.landing)
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api := r.Group("/api/v1")
	{
		api.GET("/menu", s.getMenu)
		api.POST("/workspaces", s.createWorkspace)
	}

	ws := api.Group("/workspaces/:ws")
	ws.Use(s.withWorkspace)
	{
		ws.GET("", s.getWorkspace)
		ws.DELETE("", s.deleteWorkspace)
		ws.POST("/keys", s.handleKey)
		ws.PUT("/section", s.setSection)
		ws.PUT("/master", s.selectMaster)
		ws.GET("/activity", s.getActivity)

		ws.POST("/forms/:form", s.openForm)
		ws.DELETE("/forms/:form", s.closeForm)
		ws.PUT("/forms/:form/active", s.activateForm)
		ws.GET("/forms/:form", s.getForm)
		ws.PATCH("/forms/:form/draft", s.editDraft)
		ws.PATCH("/forms/:form/header", s.editHeader)
		ws.POST("/forms/:form/commit", s.commit)
		ws.GET("/forms/:form/rows", s.queryRows)
		ws.DELETE("/forms/:form/rows/:id", s.removeRow)
		ws.GET("/forms/:form/export/:format", s.exportRows)
	}
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
