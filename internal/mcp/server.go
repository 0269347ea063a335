// Package mcp exposes table coordination as typed MCP tools.
package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	tableservice "github.com/louisbranch/hextable/internal/table/service"
)

// Implementation metadata reported to clients during initialize.
const (
	serverName    = "Hextable MCP"
	serverVersion = "0.1.0"
)

// TableAPI is the slice of the table service consumed by the MCP tools.
// The MCP client supplies the acting member on every call; role checks
// stay inside the service.
type TableAPI interface {
	CreateTable(ctx context.Context, name, creator string) (tableservice.CreateTableResult, error)
	GetTable(ctx context.Context, tableID, caller string) (tableservice.TableView, error)
	ListTables(ctx context.Context, member string) ([]tableservice.TableSummary, error)
	DeleteTable(ctx context.Context, tableID, actor string) (tableservice.Result, error)
	RequestJoin(ctx context.Context, joinCode, member string) (tableservice.RequestJoinResult, error)
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

// Config defines startup inputs for the MCP server.
type Config struct {
	Tables TableAPI
}

// Server hosts the MCP tool surface.
type Server struct {
	mcpServer *mcp.Server
}

// NewServer creates an MCP server with every table tool registered.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Tables == nil {
		return nil, errors.New("table service is required")
	}
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	registerTools(server, cfg.Tables)
	return &Server{mcpServer: server}, nil
}

// Serve runs the MCP server on stdio until the context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// serveWithTransport runs the tool loop on the given transport. Context
// cancellation is the normal shutdown path, not an error.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return errors.New("mcp server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	switch err := s.mcpServer.Run(ctx, transport); {
	case err == nil, errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return nil
	default:
		return fmt.Errorf("serve mcp: %w", err)
	}
}

func registerTools(server *mcp.Server, tables TableAPI) {
	mcp.AddTool(server, TableCreateTool(), TableCreateHandler(tables))
	mcp.AddTool(server, TableJoinTool(), TableJoinHandler(tables))
	mcp.AddTool(server, TableApproveTool(), TableApproveHandler(tables))
	mcp.AddTool(server, TableRejectTool(), TableRejectHandler(tables))
	mcp.AddTool(server, TableRemoveTool(), TableRemoveHandler(tables))
	mcp.AddTool(server, TableLeaveTool(), TableLeaveHandler(tables))
	mcp.AddTool(server, TableDeleteTool(), TableDeleteHandler(tables))
	mcp.AddTool(server, TableSetCurrentTool(), TableSetCurrentHandler(tables))
	mcp.AddTool(server, TableReorderTool(), TableReorderHandler(tables))
	mcp.AddTool(server, TableGenerateBoardTool(), TableGenerateBoardHandler(tables))
	mcp.AddTool(server, TableStartTool(), TableStartHandler(tables))
	mcp.AddTool(server, TableFinishTool(), TableFinishHandler(tables))
	mcp.AddTool(server, TableResetTool(), TableResetHandler(tables))
	mcp.AddTool(server, TableGetTool(), TableGetHandler(tables))
	mcp.AddTool(server, TableListTool(), TableListHandler(tables))
}
