package httpserver

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/transitkiosk/abfahrt/internal/board"
)

// BoardSource is the narrow contract the HTTP API needs: the most
// recently published board result, if any fetch has completed yet.
type BoardSource interface {
	Latest() (board.Result, bool)
}

// Server exposes the current departure board over HTTP, alongside a
// health endpoint and Prometheus metrics. It serves whatever the TUI
// last published and never triggers fetches of its own.
type Server struct {
	addr      string
	station   string
	source    BoardSource
	server    *http.Server
	ctx       context.Context
	cancel    context.CancelFunc
	startTime time.Time
}

// NewServer creates a new board API server.
func NewServer(addr, station string, source BoardSource) *Server {
	if addr == "" {
		addr = "0.0.0.0:8090"
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:    addr,
		station: station,
		source:  source,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/api/board", s.handleBoard)
	r.GET("/api/health", s.handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.server = &http.Server{
		Handler:           r,
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	s.startTime = time.Now()

	go s.server.Serve(listener)
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleBoard(c *gin.Context) {
	res, ok := s.source.Latest()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no fetch completed yet"})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleHealth(c *gin.Context) {
	health := gin.H{
		"status":  "ok",
		"uptime":  time.Since(s.startTime).String(),
		"station": s.station,
	}

	if res, ok := s.source.Latest(); ok {
		health["last_fetch"] = res.FetchedAt
		health["last_kind"] = res.Kind.String()
		health["row_count"] = len(res.Rows)
	}

	c.JSON(http.StatusOK, health)
}
