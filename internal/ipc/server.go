package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/parentwm/internal/runtimepath"
)

const (
	// requestTimeout bounds how long a request may wait on the provider.
	requestTimeout = 2 * time.Second
	// probeTimeout bounds the liveness dial Start makes before taking over
	// the socket path.
	probeTimeout = 200 * time.Millisecond
)

// ErrSocketInUse means another daemon is serving the socket path.
var ErrSocketInUse = errors.New("IPC socket already in use")

// Provider answers introspection queries. Implementations must be safe to
// call from the server's connection goroutines.
type Provider interface {
	Status(ctx context.Context) (StatusData, error)
	Windows(ctx context.Context) ([]WindowInfo, error)
}

// Server serves the control socket.
type Server struct {
	socketPath string
	provider   Provider
	reloadChan chan<- struct{}
	logger     *slog.Logger

	mu       sync.Mutex
	listener net.Listener
	closing  bool
	wg       sync.WaitGroup
}

// NewServer creates a server on the runtime socket path. RELOAD requests are
// forwarded to reloadChan without blocking; a nil channel rejects them.
func NewServer(provider Provider, reloadChan chan<- struct{}, logger *slog.Logger) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}
	return NewServerAt(socketPath, provider, reloadChan, logger), nil
}

// NewServerAt creates a server for an explicit socket path.
func NewServerAt(socketPath string, provider Provider, reloadChan chan<- struct{}, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{
		socketPath: socketPath,
		provider:   provider,
		reloadChan: reloadChan,
		logger:     logger,
	}
}

// SocketPath returns the path the server listens on.
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Start listens on the socket and serves connections in the background. A
// stale socket file left by a previous run is replaced; a socket a live
// daemon still answers on is left alone and ErrSocketInUse is returned.
func (s *Server) Start() error {
	if conn, err := net.DialTimeout("unix", s.socketPath, probeTimeout); err == nil {
		conn.Close()
		return fmt.Errorf("%w: %s", ErrSocketInUse, s.socketPath)
	}
	if err := os.Remove(s.socketPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove stale socket: %w", err)
	}
	ln, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	if err := os.Chmod(s.socketPath, 0o600); err != nil {
		ln.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	s.logger.Info("IPC server listening", "socket", s.socketPath)
	s.wg.Add(1)
	go s.acceptLoop(ln)
	return nil
}

func (s *Server) acceptLoop(ln net.Listener) {
	defer s.wg.Done()
	for {
		conn, err := ln.Accept()
		if err != nil {
			if s.isClosing() {
				return
			}
			s.logger.Warn("IPC accept error", "error", err)
			continue
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.serveConn(conn)
		}()
	}
}

func (s *Server) isClosing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closing
}

// serveConn answers a single request line.
func (s *Server) serveConn(conn net.Conn) {
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(2 * requestTimeout))

	line, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		s.logger.Warn("IPC read error", "error", err)
		return
	}
	if len(line) == 0 {
		// Liveness dial from another Start.
		return
	}

	var resp *Response
	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		resp = errorResponse("Invalid request: %v", err)
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		resp = s.handle(ctx, req.Command)
		cancel()
	}

	if err := json.NewEncoder(conn).Encode(resp); err != nil {
		s.logger.Warn("failed to send IPC response", "error", err)
	}
}

func (s *Server) handle(ctx context.Context, cmd CommandType) *Response {
	s.logger.Debug("IPC request", "command", string(cmd))
	switch cmd {
	case CommandReload:
		if s.reloadChan == nil {
			return errorResponse("reload not supported")
		}
		select {
		case s.reloadChan <- struct{}{}:
		default:
			// A reload is already pending.
		}
		return okResponse(nil)

	case CommandGetStatus:
		status, err := s.provider.Status(ctx)
		if err != nil {
			return errorResponse("Failed to get status: %v", err)
		}
		return okResponse(status)

	case CommandListWindows:
		windows, err := s.provider.Windows(ctx)
		if err != nil {
			return errorResponse("Failed to list windows: %v", err)
		}
		if windows == nil {
			windows = []WindowInfo{}
		}
		return okResponse(WindowsData{Windows: windows})
	}
	return errorResponse("Unknown command: %s", cmd)
}

// Stop closes the listener, waits for in-flight requests and removes the
// socket if Start created it. It is safe to call more than once.
func (s *Server) Stop() {
	s.mu.Lock()
	if s.closing {
		s.mu.Unlock()
		return
	}
	s.closing = true
	ln := s.listener
	s.mu.Unlock()

	if ln == nil {
		return
	}
	ln.Close()
	s.wg.Wait()
	os.Remove(s.socketPath)
}
