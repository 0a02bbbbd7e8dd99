package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/arbstatistix/financial-engineering/src/helpers"
	"github.com/arbstatistix/financial-engineering/src/interfaces"
	"github.com/arbstatistix/financial-engineering/src/logger"
	"github.com/arbstatistix/financial-engineering/src/models"
	"github.com/arbstatistix/financial-engineering/src/utils"

	"github.com/gin-gonic/gin"
)

// historySize bounds the reload events kept for /api/history.
const historySize = 50

// -----------------------------------------------------------------------------
// ConfigServer
// -----------------------------------------------------------------------------

type ConfigServer struct {
	Provider interfaces.IConfigProvider
	Logger   *logger.Logger
	engine   *gin.Engine
	http     *http.Server

	// WebSocket clients, owned by the hub goroutine
	clients    map[*Client]struct{}
	broadcast  chan *models.MConfigState
	register   chan *Client
	unregister chan *Client
	resend     chan *Client
	done       chan struct{}
	stopOnce   sync.Once

	// Local cache of the last pushed state
	latestState *models.MConfigState
	history     *utils.RingBuffer[models.MReloadEvent]
	stateMutex  sync.RWMutex
	connections int

	publishMutex sync.Mutex
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

// NewConfigServer builds the router and starts the websocket hub. The
// provider must already hold a configuration.
func NewConfigServer(provider interfaces.IConfigProvider, log *logger.Logger) *ConfigServer {
	if log == nil {
		log = logger.NewLogger(nil, "ConfigServer")
	}
	gin.SetMode(gin.ReleaseMode)

	s := &ConfigServer{
		Provider:   provider,
		Logger:     log,
		engine:     gin.New(),
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan *models.MConfigState, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		resend:     make(chan *Client),
		done:       make(chan struct{}),
		history:    utils.NewRingBuffer[models.MReloadEvent](historySize),
	}
	s.latestState = s.stateOf("INITIAL")
	s.history.Append(models.MReloadEvent{
		At:      s.latestState.LoadedAt,
		Source:  s.latestState.Source,
		Status:  "loaded",
		Changes: len(s.latestState.Entries),
	})

	s.engine.Use(gin.Recovery(), s.requestLogger())

	// Add CORS Middleware
	s.engine.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if strings.HasPrefix(origin, "http://127.0.0.1:") || strings.HasPrefix(origin, "http://localhost:") {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Origin, Cache-Control")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	s.setupRoutes()

	go s.handleWebsockets()
	return s
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *ConfigServer) setupRoutes() {
	api := s.engine.Group("/api")
	api.GET("/health", s.getHealth)
	api.GET("/config", s.getConfig)
	api.GET("/config/:domain", s.getDomain)
	api.GET("/flat", s.getFlat)
	api.POST("/reload", s.postReload)
	api.GET("/history", s.getHistory)

	// WebSocket endpoint
	s.engine.GET("/ws", s.handleWebSocket)
}

// Handler exposes the router, mainly for httptest.
func (s *ConfigServer) Handler() http.Handler {
	return s.engine
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

// Start serves on addr until Stop is called.
func (s *ConfigServer) Start(addr string) error {
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.Logger.Info("Starting server on %s", addr)

	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// -----------------------------------------------------------------------------

func (s *ConfigServer) Stop(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.done) })
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

func (s *ConfigServer) getHealth(c *gin.Context) {
	cfg := s.Provider.Current()

	s.stateMutex.RLock()
	connections := s.connections
	loadedAt := s.latestState.LoadedAt
	s.stateMutex.RUnlock()

	present := 0
	if cfg != nil {
		for _, d := range cfg.Domains() {
			if d.Present {
				present++
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"connections":     connections,
		"domains_present": present,
		"latest_update":   loadedAt.Unix(),
	})
}

// -----------------------------------------------------------------------------

func (s *ConfigServer) getConfig(c *gin.Context) {
	cfg := s.Provider.Current()
	if cfg == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no configuration loaded"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"source":  sourceName(cfg.Source),
		"domains": presentDomains(cfg.MConfig),
		"notices": notices(cfg.Notices),
	})
}

// -----------------------------------------------------------------------------

func (s *ConfigServer) getDomain(c *gin.Context) {
	cfg := s.Provider.Current()
	if cfg == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no configuration loaded"})
		return
	}

	key := c.Param("domain")
	d, ok := cfg.Domain(key)
	if !ok || !d.Present {
		c.JSON(http.StatusNotFound, gin.H{"error": "domain not present", "domain": key})
		return
	}
	c.JSON(http.StatusOK, d.Value)
}

// -----------------------------------------------------------------------------

func (s *ConfigServer) getFlat(c *gin.Context) {
	cfg := s.Provider.Current()
	if cfg == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no configuration loaded"})
		return
	}

	entries := filterEntries(cfg.Flatten(), c.QueryArray("domain"))
	c.JSON(http.StatusOK, entries)
}

// -----------------------------------------------------------------------------

func (s *ConfigServer) postReload(c *gin.Context) {
	cfg, err := s.Provider.Reload()
	if err != nil {
		kind, _ := helpers.KindOf(err)
		s.Logger.Warning("Reload rejected, keeping previous configuration: %v", err)

		s.stateMutex.RLock()
		source := s.latestState.Source
		s.stateMutex.RUnlock()

		s.history.Append(models.MReloadEvent{
			At:     time.Now().UTC(),
			Source: source,
			Status: "rejected",
			Kind:   string(kind),
			Error:  err.Error(),
		})
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": err.Error(),
			"kind":  string(kind),
		})
		return
	}

	s.Logger.Info("Configuration reloaded from %s", sourceName(cfg.Source))
	s.Publish()

	c.JSON(http.StatusOK, gin.H{
		"status":  "reloaded",
		"notices": notices(cfg.Notices),
	})
}

// -----------------------------------------------------------------------------

func (s *ConfigServer) getHistory(c *gin.Context) {
	c.JSON(http.StatusOK, s.history.GetLatest(historySize))
}

// -----------------------------------------------------------------------------

func (s *ConfigServer) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.Logger.Debug("%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
