// Package server exposes the analysis engine over HTTP: full analysis,
// semantic HTML checks, analyze-by-URL, debounced draft analysis and
// per-article history.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/seoscope/seoscope/pkg/content"
	"github.com/seoscope/seoscope/pkg/domain"
)

// Server represents HTTP server instance
type Server struct {
	config   ConfigProvider
	analyzer Analyzer
	semantic SemanticAnalyzer
	fetcher  PageFetcher
	history  History // nil disables history endpoints

	debouncer    Debouncer
	historyLimit int
	version      string
	debug        bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Analyzer runs full SEO analyses
type Analyzer interface {
	Analyze(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResult, error)
	Invalidate(articleID string)
}

// SemanticAnalyzer audits article markup structure
type SemanticAnalyzer interface {
	AnalyzeHTML(input string, opts domain.SemanticOptions) (*domain.SemanticAnalysis, error)
}

// PageFetcher retrieves live pages for analysis
type PageFetcher interface {
	Fetch(ctx context.Context, urlStr string) (*content.Page, error)
}

// History reads persisted analysis snapshots
type History interface {
	GetByArticle(ctx context.Context, articleID string, limit int) ([]domain.AnalysisRecord, error)
}

// Debouncer coalesces draft analysis triggers per article
type Debouncer interface {
	Trigger(key string, fn func())
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// Params collects server dependencies
type Params struct {
	Config       ConfigProvider
	Analyzer     Analyzer
	Semantic     SemanticAnalyzer
	Fetcher      PageFetcher
	History      History
	Debouncer    Debouncer
	HistoryLimit int
	Version      string
	Debug        bool
}

// New initializes a new server instance
func New(p Params) *Server {
	if p.HistoryLimit <= 0 {
		p.HistoryLimit = 50
	}
	s := &Server{
		config:       p.Config,
		analyzer:     p.Analyzer,
		semantic:     p.Semantic,
		fetcher:      p.Fetcher,
		history:      p.History,
		debouncer:    p.Debouncer,
		historyLimit: p.HistoryLimit,
		version:      p.Version,
		debug:        p.Debug,
		router:       routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:         listen,
		Handler:      s.router,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// Handler exposes the router, used by httptest in tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("seoscope", "seoscope", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(5 * 1024 * 1024)) // 5MB, article bodies can be large
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("POST /analyze", s.analyzeHandler)
		r.HandleFunc("POST /semantic", s.semanticHandler)
		r.HandleFunc("POST /analyze-url", s.analyzeURLHandler)
		r.HandleFunc("PUT /articles/{id}/draft", s.draftHandler)
		r.HandleFunc("GET /articles/{id}/history", s.historyHandler)
	})
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	RenderJSON(w, r, http.StatusOK, status)
}

// RenderJSON sends JSON response
func RenderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// RenderError sends error response as JSON
func RenderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	RenderJSON(w, r, code, map[string]string{"error": errMsg})
}
