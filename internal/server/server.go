package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/xaenox/concept-analysis/internal/analysis"
	"github.com/xaenox/concept-analysis/internal/models"
	"go.uber.org/zap"
)

// Server accepts WebSocket connections on /ws and runs one handler
// goroutine per connection. Messages on a connection are processed strictly
// in arrival order; no failure on one connection affects another.
type Server struct {
	addr     string
	timeout  time.Duration
	pipeline *analysis.Pipeline
	logger   *zap.Logger
	upgrader websocket.Upgrader

	mu          sync.Mutex
	connections map[*websocket.Conn]struct{}

	httpServer *http.Server
}

func New(host string, port int, timeout time.Duration, pipeline *analysis.Pipeline, logger *zap.Logger) *Server {
	return &Server{
		addr:     fmt.Sprintf("%s:%d", host, port),
		timeout:  timeout,
		pipeline: pipeline,
		logger:   logger,
		upgrader: websocket.Upgrader{
			// The browser client is served from a different origin
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		connections: make(map[*websocket.Conn]struct{}),
	}
}

// Start binds the listener and serves until Shutdown is called.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}

	s.logger.Info("Server started", zap.String("addr", s.addr))
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Handler builds the route table; exposed for tests running against httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// ActiveConnections reports the number of currently open connections.
func (s *Server) ActiveConnections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.connections)
}

func (s *Server) addConnection(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connections[conn] = struct{}{}
}

func (s *Server) removeConnection(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.connections, conn)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":             "ok",
		"active_connections": s.ActiveConnections(),
	})
}

// handleWebSocket owns one client connection for its entire lifetime. The
// connection is only ever closed by the transport; analysis failures are
// reported to the client and the message loop continues.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection",
			zap.Error(err),
			zap.String("remote_addr", r.RemoteAddr))
		return
	}

	s.addConnection(conn)
	defer func() {
		s.removeConnection(conn)
		conn.Close()
	}()

	s.logger.Info("Client connected", zap.String("remote_addr", conn.RemoteAddr().String()))

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("Connection closed unexpectedly",
					zap.Error(err),
					zap.String("remote_addr", conn.RemoteAddr().String()))
			} else {
				s.logger.Info("Client disconnected",
					zap.String("remote_addr", conn.RemoteAddr().String()))
			}
			return
		}

		reply := s.processMessage(r.Context(), data)

		if err := conn.WriteJSON(reply); err != nil {
			s.logger.Error("Failed to send reply",
				zap.Error(err),
				zap.String("remote_addr", conn.RemoteAddr().String()))
			return
		}
	}
}

// processMessage turns one inbound frame into the value to send back:
// either an AnalysisResult or one of the four fixed error payloads.
func (s *Server) processMessage(ctx context.Context, data []byte) any {
	var req models.AnalysisRequest
	if err := json.Unmarshal(data, &req); err != nil {
		s.logger.Error("Invalid JSON received", zap.Error(err))
		return models.ErrorResponse{Error: "JSON parsing error"}
	}

	if req.Response == "" || req.Concept == "" {
		return models.ErrorResponse{
			Error:   "Invalid input",
			Details: "Response and concept are required",
		}
	}

	result, err := s.analyzeWithTimeout(ctx, req)
	if errors.Is(err, context.DeadlineExceeded) {
		s.logger.Warn("Analysis timed out", zap.String("concept", req.Concept))
		return models.ErrorResponse{
			Error:   "Analysis timeout",
			Details: "Response took too long to process",
		}
	}
	if err != nil {
		s.logger.Error("Unexpected error during analysis",
			zap.Error(err),
			zap.String("concept", req.Concept))
		return models.ErrorResponse{Error: "Internal server error"}
	}

	return result
}

// analyzeWithTimeout bounds one analysis. On expiry the computation is
// abandoned; it may still finish and populate the cache, which is harmless.
func (s *Server) analyzeWithTimeout(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	type outcome struct {
		result *models.AnalysisResult
		err    error
	}
	done := make(chan outcome, 1)

	go func() {
		result, err := s.pipeline.Analyze(ctx, req.Response, req.Concept)
		done <- outcome{result: result, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case o := <-done:
		return o.result, o.err
	}
}
