// Package api hosts the JSON HTTP surface for table coordination.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/louisbranch/hextable/internal/platform/timeouts"
	"github.com/louisbranch/hextable/internal/services/api/httpx"
	"github.com/louisbranch/hextable/internal/table/invite"
	tableservice "github.com/louisbranch/hextable/internal/table/service"
)

// TableAPI is the slice of the table service consumed by the HTTP handlers.
type TableAPI interface {
	CreateTable(ctx context.Context, name, creator string) (tableservice.CreateTableResult, error)
	GetTable(ctx context.Context, tableID, caller string) (tableservice.TableView, error)
	ListTables(ctx context.Context, member string) ([]tableservice.TableSummary, error)
	DeleteTable(ctx context.Context, tableID, actor string) (tableservice.Result, error)
	RequestJoin(ctx context.Context, joinCode, member string) (tableservice.RequestJoinResult, error)
	RedeemJoin(ctx context.Context, joinCode, tableID, member string) (tableservice.RequestJoinResult, error)
	Approve(ctx context.Context, tableID, target, actor string) (tableservice.ApproveResult, error)
	Reject(ctx context.Context, tableID, target, actor string) (tableservice.Result, error)
	Remove(ctx context.Context, tableID, target, actor string) (tableservice.Result, error)
	Leave(ctx context.Context, tableID, member string) (tableservice.Result, error)
	SetCurrent(ctx context.Context, tableID, member string) (tableservice.Result, error)
	Reorder(ctx context.Context, tableID, actor string, proposed []string) (tableservice.ReorderResult, error)
	GenerateBoard(ctx context.Context, tableID, actor, preset string) (tableservice.GenerateBoardResult, error)
	Start(ctx context.Context, tableID, actor string) (tableservice.PhaseResult, error)
	Finish(ctx context.Context, tableID, actor string) (tableservice.PhaseResult, error)
	Reset(ctx context.Context, tableID, actor string) (tableservice.PhaseResult, error)
}

var _ TableAPI = (*tableservice.TableService)(nil)

// Config defines startup inputs for the API service.
type Config struct {
	HTTPAddr string
	Tables   TableAPI
	// Granter is optional; when nil, invite minting and grant redemption
	// report that join grants are not enabled.
	Granter *invite.Granter
}

// Server owns the API listener lifecycle.
type Server struct {
	srv *http.Server
}

// NewHandler builds the root handler with identity, locale, tracing, and
// panic-recovery middleware applied.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.Tables == nil {
		return nil, errors.New("table service is required")
	}
	h := handlers{tables: cfg.Tables}
	if cfg.Granter != nil {
		h.granter = cfg.Granter
	}

	apiMux := http.NewServeMux()
	registerRoutes(apiMux, h)

	rootMux := http.NewServeMux()
	rootMux.Handle("/api/", requireMember(apiMux))
	rootMux.HandleFunc("GET /healthz", h.handleHealthz)
	return httpx.Chain(rootMux,
		httpx.RecoverPanic(),
		httpx.RequestID(),
		withSpan(),
		withLocale(),
	), nil
}

// NewServer validates config and constructs an API server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	addr := strings.TrimSpace(cfg.HTTPAddr)
	if addr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose api handler: %w", err)
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: timeouts.ReadHeader,
	}
	return &Server{srv: srv}, nil
}

// ListenAndServe blocks serving HTTP until the listener fails or ctx is
// cancelled, at which point in-flight requests get a bounded drain.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("api server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	errCh := make(chan error, 1)
	go func() { errCh <- s.srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve api http: %w", err)
	case <-ctx.Done():
		return s.drain()
	}
}

// drain shuts the listener down, allowing timeouts.Shutdown for in-flight
// requests to finish.
func (s *Server) drain() error {
	ctx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
	defer cancel()
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown api http server: %w", err)
	}
	return nil
}

// Close force-closes the listener and any open connections.
func (s *Server) Close() {
	if s == nil || s.srv == nil {
		return
	}
	_ = s.srv.Close()
}
