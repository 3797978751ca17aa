package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"market-pulse/src/helpers"
	"market-pulse/src/interfaces"
	"market-pulse/src/logger"
	"market-pulse/src/models"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

const requestIDHeader = "X-Request-ID"

// -----------------------------------------------------------------------------
// APIServer
// -----------------------------------------------------------------------------

type APIServer struct {
	Config  *models.MConfig
	Logger  *logger.Logger
	Service interfaces.IMarketService
	Symbols interfaces.ISymbolCatalog
	engine  *gin.Engine
	httpSrv *http.Server
	started time.Time

	// WebSocket clients, owned by the hub loop
	clients     map[*Client]struct{}
	connections atomic.Int32
	broadcast   chan models.MSnapshotResponse
	register    chan *Client
	unregister  chan *Client
	subscribe   chan subscription
	quit        chan struct{}
	stopOnce    sync.Once

	// Last broadcast snapshot, sent as initial state to new clients
	latestState *models.MSnapshotResponse
	stateMutex  sync.RWMutex
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewAPIServer(cfg *models.MConfig, svc interfaces.IMarketService, symbols interfaces.ISymbolCatalog, log *logger.Logger) *APIServer {
	if cfg.LogLevel != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &APIServer{
		Config:     cfg,
		Logger:     log,
		Service:    svc,
		Symbols:    symbols,
		engine:     gin.New(),
		started:    time.Now(),
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan models.MSnapshotResponse, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		subscribe:  make(chan subscription),
		quit:       make(chan struct{}),
	}

	s.engine.Use(gin.Recovery(), s.requestID(), s.cors())
	s.setupRoutes()

	// Built up front; Stop may run before Start.
	s.httpSrv = &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, fmt.Sprint(cfg.Port)),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler exposes the router, mainly for tests.
func (s *APIServer) Handler() http.Handler { return s.engine }

// -----------------------------------------------------------------------------
// Middleware
// -----------------------------------------------------------------------------

func (s *APIServer) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = ulid.Make().String()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)

		start := time.Now()
		c.Next()

		s.Logger.Debug("%s %s %d %s [%s]", c.Request.Method, c.Request.URL.Path,
			c.Writer.Status(), time.Since(start), id)
	}
}

// -----------------------------------------------------------------------------

func (s *APIServer) cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Accept, Cache-Control, X-Requested-With, "+requestIDHeader)
		h.Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		h.Set("Access-Control-Expose-Headers", requestIDHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *APIServer) setupRoutes() {
	s.engine.GET("/snapshot", s.getSnapshot)
	s.engine.GET("/series", s.getSeries)

	// Paths and payload shapes used by the dashboard frontend
	s.engine.GET("/api/market/indices", s.getDashboardIndices)
	s.engine.GET("/api/market/chart", s.getDashboardChart)

	s.engine.GET("/api/symbols", s.getSymbols)
	s.engine.GET("/api/metrics", s.getMetrics)
	s.engine.GET("/api/health", s.getHealth)

	s.engine.GET("/ws", s.handleWebSocket)
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

// Start serves until Stop is called. It returns nil after a clean shutdown,
// including when Stop ran first.
func (s *APIServer) Start() error {
	s.Logger.Info("Starting server on %s", s.httpSrv.Addr)

	go s.handleWebsockets()

	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// -----------------------------------------------------------------------------

// Stop drains in-flight requests and disconnects websocket clients.
func (s *APIServer) Stop(ctx context.Context) error {
	err := s.httpSrv.Shutdown(ctx)
	s.stopOnce.Do(func() { close(s.quit) })
	return err
}

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

func (s *APIServer) cacheControl(c *gin.Context, source string) {
	if source == models.SourceFallback {
		c.Header("Cache-Control", "no-cache")
		return
	}
	ttl := int(s.Service.CacheTTL().Seconds())
	c.Header("Cache-Control", fmt.Sprintf("public, max-age=%d, stale-while-revalidate=%d", ttl, 5*ttl))
}

// -----------------------------------------------------------------------------

func (s *APIServer) getSnapshot(c *gin.Context) {
	resp := s.Service.Snapshot(c.Request.Context())
	s.cacheControl(c, resp.Source)
	c.JSON(http.StatusOK, resp)
}

// -----------------------------------------------------------------------------

func (s *APIServer) getSeries(c *gin.Context) {
	resp := s.Service.Series(c.Request.Context(), c.Query("symbol"), c.Query("timeframe"))
	s.cacheControl(c, resp.Source)
	c.JSON(http.StatusOK, resp)
}

// -----------------------------------------------------------------------------

func (s *APIServer) getDashboardIndices(c *gin.Context) {
	resp := s.Service.Snapshot(c.Request.Context())
	s.cacheControl(c, resp.Source)
	c.JSON(http.StatusOK, models.NewDashboardIndices(resp))
}

func (s *APIServer) getDashboardChart(c *gin.Context) {
	period := c.DefaultQuery("period", "1D")
	resp := s.Service.Series(c.Request.Context(), c.Query("symbol"), period)
	s.cacheControl(c, resp.Source)
	c.JSON(http.StatusOK, models.NewDashboardChart(resp, period))
}

// -----------------------------------------------------------------------------

func (s *APIServer) getSymbols(c *gin.Context) {
	entries := s.Symbols.ListByCategory()
	c.JSON(http.StatusOK, gin.H{
		"symbols": entries,
		"total":   len(entries),
	})
}

// -----------------------------------------------------------------------------

func (s *APIServer) getMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, s.Service.Metrics())
}

// -----------------------------------------------------------------------------

func (s *APIServer) getHealth(c *gin.Context) {
	var latest any
	s.stateMutex.RLock()
	if s.latestState != nil {
		latest = s.latestState.Timestamp
	}
	s.stateMutex.RUnlock()

	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"connections":    s.Connections(),
		"latest_update":  latest,
		"uptime_seconds": int(time.Since(s.started).Seconds()),
		"resources":      helpers.GetResourceUsage(),
	})
}
