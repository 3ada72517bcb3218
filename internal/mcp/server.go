// Package mcp exposes the assistant over the Model Context Protocol so an
// LLM client can search job boards, manage the tracker and curate the
// answer library through tool calls.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"jobwerk/internal/logging"
)

// Server wraps an MCP SDK server with an HTTP listener.
type Server struct {
	log *logging.Logger

	srv     *http.Server
	started atomic.Bool
}

func NewServer(deps Deps, port int, log *logging.Logger) *Server {
	if log == nil {
		log = logging.Nop()
	}

	impl := &sdkmcp.Implementation{
		Name:    "jobwerk",
		Version: "0.1.0",
	}
	mcpServer := sdkmcp.NewServer(impl, nil)
	registerTools(mcpServer, deps)

	handler := sdkmcp.NewStreamableHTTPHandler(func(req *http.Request) *sdkmcp.Server {
		return mcpServer
	}, nil)

	mux := http.NewServeMux()
	mux.Handle("/mcp", handler)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return &Server{
		log: log,
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Run starts the HTTP listener and blocks until shutdown.
func (s *Server) Run() error {
	if !s.started.CompareAndSwap(false, true) {
		return nil
	}

	s.log.Info("mcp server listening", "addr", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
