package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rezonia/cte-checker/internal/divergence"
	"github.com/rezonia/cte-checker/internal/identity"
	"github.com/rezonia/cte-checker/internal/model"
	"github.com/rezonia/cte-checker/internal/parser/xml"
)

// Config holds server configuration
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool

	// CargoCheck enables cargo value reconciliation on every comparison
	CargoCheck bool
	Logger     *slog.Logger
}

// Server represents the HTTP API server
type Server struct {
	config *Config
	router *gin.Engine
	engine *divergence.Engine
	logger *slog.Logger
	http   *http.Server
}

// NewServer creates a new API server
func NewServer(config *Config) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if config.Debug {
		router.Use(gin.Logger())
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		config: config,
		router: router,
		engine: divergence.NewEngine(
			divergence.WithLogger(logger),
			divergence.WithCargoCheck(config.CargoCheck),
		),
		logger: logger,
	}
	s.http = &http.Server{
		Addr:         config.Address,
		Handler:      router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", s.handleHealth)

	// API v1
	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/rules", s.handleRules)
		v1.POST("/compare", s.handleCompare)
		v1.POST("/info", s.handleInfo)
	}
}

// Run starts the HTTP server and blocks until it stops. A server stopped by
// Shutdown returns nil.
func (s *Server) Run() error {
	s.logger.Info("server listening", "address", s.config.Address)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops a running server, waiting for in-flight requests until ctx ends
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleRules(c *gin.Context) {
	c.JSON(http.StatusOK, RulesResponse{Rules: s.engine.Rules()})
}

func (s *Server) handleCompare(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid request body",
			Details: err.Error(),
		})
		return
	}

	report := s.engine.CompareBatch(req.NFes, req.CTe)
	if !report.Manifest.Parsed() {
		c.JSON(http.StatusUnprocessableEntity, report)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (s *Server) handleInfo(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	if len(strings.TrimSpace(string(body))) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty request body"})
		return
	}

	doc, err := xml.Parse(string(body))
	if err != nil {
		resp := ErrorResponse{Error: "failed to parse document", Details: err.Error()}
		var parseErr *model.ParseError
		if errors.As(err, &parseErr) {
			resp.Code = parseErr.Code
		}
		c.JSON(http.StatusUnprocessableEntity, resp)
		return
	}

	c.JSON(http.StatusOK, describe(doc, len(body)))
}

func describe(doc *xml.Document, size int) InfoResponse {
	kind := xml.DetectKind(doc)
	resp := InfoResponse{
		Kind:  kind,
		Label: kind.Label(),
		Root:  doc.Root().Tag(),
		Size:  size,
	}

	switch kind {
	case model.DocumentNFe:
		resp.Key, _ = identity.InvoiceKey(doc)
	case model.DocumentCTe:
		resp.Key, _ = identity.ManifestKey(doc)
		resp.References, resp.UnkeyedReferences = identity.Keys(identity.ManifestReferences(doc))
	}
	return resp
}
