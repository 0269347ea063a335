package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/hextable/internal/platform/timeouts"
	"github.com/louisbranch/hextable/internal/table/domain"
	tableservice "github.com/louisbranch/hextable/internal/table/service"
)

// TableCreateHandler executes a table creation request.
func TableCreateHandler(tables TableAPI) mcp.ToolHandlerFor[TableCreateInput, TableResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TableCreateInput) (*mcp.CallToolResult, TableResult, error) {
		member, err := requireMember(input.Member)
		if err != nil {
			return nil, TableResult{}, err
		}

		runCtx, cancel := context.WithTimeout(ctx, timeouts.MCPTool)
		defer cancel()

		result, err := tables.CreateTable(runCtx, input.Name, member)
		if err != nil {
			return nil, TableResult{}, fmt.Errorf("table create failed: %w", err)
		}
		return nil, tableResultFromView(result.Table, result.Message), nil
	}
}

// TableJoinHandler executes a join request by code.
func TableJoinHandler(tables TableAPI) mcp.ToolHandlerFor[TableJoinInput, TableJoinResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TableJoinInput) (*mcp.CallToolResult, TableJoinResult, error) {
		member, err := requireMember(input.Member)
		if err != nil {
			return nil, TableJoinResult{}, err
		}

		runCtx, cancel := context.WithTimeout(ctx, timeouts.MCPTool)
		defer cancel()

		result, err := tables.RequestJoin(runCtx, input.Code, member)
		if err != nil {
			return nil, TableJoinResult{}, fmt.Errorf("table join failed: %w", err)
		}
		return nil, TableJoinResult{
			Message: result.Message,
			TableID: result.TableID,
			Role:    string(result.Role),
		}, nil
	}
}

// TableApproveHandler executes an approval of a waiting member.
func TableApproveHandler(tables TableAPI) mcp.ToolHandlerFor[TableTargetInput, TableRoleResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TableTargetInput) (*mcp.CallToolResult, TableRoleResult, error) {
		member, err := requireMember(input.Member)
		if err != nil {
			return nil, TableRoleResult{}, err
		}

		runCtx, cancel := context.WithTimeout(ctx, timeouts.MCPTool)
		defer cancel()

		result, err := tables.Approve(runCtx, input.TableID, input.Target, member)
		if err != nil {
			return nil, TableRoleResult{}, fmt.Errorf("table approve failed: %w", err)
		}
		return nil, TableRoleResult{Message: result.Message, Role: string(result.Role)}, nil
	}
}

// TableRejectHandler executes a rejection of a waiting join request.
func TableRejectHandler(tables TableAPI) mcp.ToolHandlerFor[TableTargetInput, TableActionResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TableTargetInput) (*mcp.CallToolResult, TableActionResult, error) {
		member, err := requireMember(input.Member)
		if err != nil {
			return nil, TableActionResult{}, err
		}

		runCtx, cancel := context.WithTimeout(ctx, timeouts.MCPTool)
		defer cancel()

		result, err := tables.Reject(runCtx, input.TableID, input.Target, member)
		if err != nil {
			return nil, TableActionResult{}, fmt.Errorf("table reject failed: %w", err)
		}
		return nil, TableActionResult{Message: result.Message}, nil
	}
}

// TableRemoveHandler executes the removal of a member's seat.
func TableRemoveHandler(tables TableAPI) mcp.ToolHandlerFor[TableTargetInput, TableActionResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TableTargetInput) (*mcp.CallToolResult, TableActionResult, error) {
		member, err := requireMember(input.Member)
		if err != nil {
			return nil, TableActionResult{}, err
		}

		runCtx, cancel := context.WithTimeout(ctx, timeouts.MCPTool)
		defer cancel()

		result, err := tables.Remove(runCtx, input.TableID, input.Target, member)
		if err != nil {
			return nil, TableActionResult{}, fmt.Errorf("table remove failed: %w", err)
		}
		return nil, TableActionResult{Message: result.Message}, nil
	}
}

// TableLeaveHandler executes the caller giving up their own seat.
func TableLeaveHandler(tables TableAPI) mcp.ToolHandlerFor[TableActionInput, TableActionResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TableActionInput) (*mcp.CallToolResult, TableActionResult, error) {
		member, err := requireMember(input.Member)
		if err != nil {
			return nil, TableActionResult{}, err
		}

		runCtx, cancel := context.WithTimeout(ctx, timeouts.MCPTool)
		defer cancel()

		result, err := tables.Leave(runCtx, input.TableID, member)
		if err != nil {
			return nil, TableActionResult{}, fmt.Errorf("table leave failed: %w", err)
		}
		return nil, TableActionResult{Message: result.Message}, nil
	}
}

// TableDeleteHandler executes a table deletion.
func TableDeleteHandler(tables TableAPI) mcp.ToolHandlerFor[TableActionInput, TableActionResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TableActionInput) (*mcp.CallToolResult, TableActionResult, error) {
		member, err := requireMember(input.Member)
		if err != nil {
			return nil, TableActionResult{}, err
		}

		runCtx, cancel := context.WithTimeout(ctx, timeouts.MCPTool)
		defer cancel()

		result, err := tables.DeleteTable(runCtx, input.TableID, member)
		if err != nil {
			return nil, TableActionResult{}, fmt.Errorf("table delete failed: %w", err)
		}
		return nil, TableActionResult{Message: result.Message}, nil
	}
}

// TableSetCurrentHandler marks a table as the caller's current table.
func TableSetCurrentHandler(tables TableAPI) mcp.ToolHandlerFor[TableActionInput, TableActionResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TableActionInput) (*mcp.CallToolResult, TableActionResult, error) {
		member, err := requireMember(input.Member)
		if err != nil {
			return nil, TableActionResult{}, err
		}

		runCtx, cancel := context.WithTimeout(ctx, timeouts.MCPTool)
		defer cancel()

		result, err := tables.SetCurrent(runCtx, input.TableID, member)
		if err != nil {
			return nil, TableActionResult{}, fmt.Errorf("table set current failed: %w", err)
		}
		return nil, TableActionResult{Message: result.Message}, nil
	}
}

// TableReorderHandler executes a turn order update.
func TableReorderHandler(tables TableAPI) mcp.ToolHandlerFor[TableReorderInput, TableOrderResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TableReorderInput) (*mcp.CallToolResult, TableOrderResult, error) {
		member, err := requireMember(input.Member)
		if err != nil {
			return nil, TableOrderResult{}, err
		}

		runCtx, cancel := context.WithTimeout(ctx, timeouts.MCPTool)
		defer cancel()

		result, err := tables.Reorder(runCtx, input.TableID, member, input.Order)
		if err != nil {
			return nil, TableOrderResult{}, fmt.Errorf("table reorder failed: %w", err)
		}
		return nil, TableOrderResult{
			Message:   result.Message,
			TurnOrder: result.TurnOrder,
			Version:   result.Version,
		}, nil
	}
}

// TableGenerateBoardHandler executes a board generation request.
func TableGenerateBoardHandler(tables TableAPI) mcp.ToolHandlerFor[TableBoardInput, TableBoardResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TableBoardInput) (*mcp.CallToolResult, TableBoardResult, error) {
		member, err := requireMember(input.Member)
		if err != nil {
			return nil, TableBoardResult{}, err
		}

		runCtx, cancel := context.WithTimeout(ctx, timeouts.MCPTool)
		defer cancel()

		result, err := tables.GenerateBoard(runCtx, input.TableID, member, input.Preset)
		if err != nil {
			return nil, TableBoardResult{}, fmt.Errorf("table generate board failed: %w", err)
		}
		return nil, TableBoardResult{
			Message:   result.Message,
			Layout:    tileEntries(result.Layout),
			TurnOrder: result.TurnOrder,
			Version:   result.Version,
		}, nil
	}
}

// TableStartHandler moves a table to the started phase.
func TableStartHandler(tables TableAPI) mcp.ToolHandlerFor[TableActionInput, TablePhaseResult] {
	return phaseHandler(tables.Start, "table start failed")
}

// TableFinishHandler moves a table to the finished phase.
func TableFinishHandler(tables TableAPI) mcp.ToolHandlerFor[TableActionInput, TablePhaseResult] {
	return phaseHandler(tables.Finish, "table finish failed")
}

// TableResetHandler returns a table to the not_started phase.
func TableResetHandler(tables TableAPI) mcp.ToolHandlerFor[TableActionInput, TablePhaseResult] {
	return phaseHandler(tables.Reset, "table reset failed")
}

// phaseHandler shares the phase transition call shape across start, finish,
// and reset.
func phaseHandler(transition func(ctx context.Context, tableID, actor string) (tableservice.PhaseResult, error), failure string) mcp.ToolHandlerFor[TableActionInput, TablePhaseResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TableActionInput) (*mcp.CallToolResult, TablePhaseResult, error) {
		member, err := requireMember(input.Member)
		if err != nil {
			return nil, TablePhaseResult{}, err
		}

		runCtx, cancel := context.WithTimeout(ctx, timeouts.MCPTool)
		defer cancel()

		result, err := transition(runCtx, input.TableID, member)
		if err != nil {
			return nil, TablePhaseResult{}, fmt.Errorf("%s: %w", failure, err)
		}
		return nil, TablePhaseResult{
			Message: result.Message,
			Phase:   string(result.Phase),
			Version: result.Version,
		}, nil
	}
}

// TableGetHandler reads a table from the caller's point of view.
func TableGetHandler(tables TableAPI) mcp.ToolHandlerFor[TableActionInput, TableResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TableActionInput) (*mcp.CallToolResult, TableResult, error) {
		member, err := requireMember(input.Member)
		if err != nil {
			return nil, TableResult{}, err
		}

		runCtx, cancel := context.WithTimeout(ctx, timeouts.MCPTool)
		defer cancel()

		view, err := tables.GetTable(runCtx, input.TableID, member)
		if err != nil {
			return nil, TableResult{}, fmt.Errorf("table get failed: %w", err)
		}
		return nil, tableResultFromView(view, ""), nil
	}
}

// TableListHandler lists the tables where the member holds a seat.
func TableListHandler(tables TableAPI) mcp.ToolHandlerFor[TableListInput, TableListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TableListInput) (*mcp.CallToolResult, TableListResult, error) {
		member, err := requireMember(input.Member)
		if err != nil {
			return nil, TableListResult{}, err
		}

		runCtx, cancel := context.WithTimeout(ctx, timeouts.MCPTool)
		defer cancel()

		summaries, err := tables.ListTables(runCtx, member)
		if err != nil {
			return nil, TableListResult{}, fmt.Errorf("table list failed: %w", err)
		}
		result := TableListResult{Tables: make([]TableListEntry, 0, len(summaries))}
		for _, summary := range summaries {
			result.Tables = append(result.Tables, TableListEntry{
				ID:        summary.ID,
				Name:      summary.Name,
				Phase:     string(summary.Phase),
				MyRole:    string(summary.MyRole),
				IsCurrent: summary.IsCurrent,
				CreatedAt: formatTime(summary.CreatedAt),
			})
		}
		return nil, result, nil
	}
}

// requireMember ensures the acting member argument is present. Every tool
// call names its caller explicitly because the MCP client owns identity.
func requireMember(value string) (string, error) {
	member := strings.TrimSpace(value)
	if member == "" {
		return "", fmt.Errorf("member is required")
	}
	return member, nil
}

// tableResultFromView maps a service view onto the tool result shape.
func tableResultFromView(view tableservice.TableView, message string) TableResult {
	result := TableResult{
		Message:   message,
		ID:        view.ID,
		Name:      view.Name,
		JoinCode:  view.JoinCode,
		Phase:     string(view.Phase),
		Layout:    tileEntries(view.Layout),
		TurnOrder: view.TurnOrder,
		Version:   view.Version,
		MyRole:    string(view.MyRole),
		IsCurrent: view.IsCurrent,
		CreatedAt: formatTime(view.CreatedAt),
		UpdatedAt: formatTime(view.UpdatedAt),
	}
	result.Seats = make([]SeatEntry, 0, len(view.Seats))
	for _, seat := range view.Seats {
		result.Seats = append(result.Seats, SeatEntry{
			Member:   seat.Member,
			Role:     string(seat.Role),
			JoinedAt: formatTime(seat.JoinedAt),
		})
	}
	return result
}

// tileEntries maps board tiles onto the tool result shape.
func tileEntries(tiles []domain.Tile) []TileEntry {
	if len(tiles) == 0 {
		return nil
	}
	entries := make([]TileEntry, 0, len(tiles))
	for _, tile := range tiles {
		entries = append(entries, TileEntry{
			ID:        tile.ID,
			Terrain:   string(tile.Terrain),
			Token:     tile.Token,
			HasMarker: tile.HasMarker,
		})
	}
	return entries
}

// formatTime returns an RFC3339 timestamp or empty string.
func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format(time.RFC3339)
}
