package mcp

import "github.com/modelcontextprotocol/go-sdk/mcp"

// TableCreateInput represents the MCP tool input for table creation.
type TableCreateInput struct {
	Member string `json:"member" jsonschema:"acting member identifier"`
	Name   string `json:"name" jsonschema:"table name"`
}

// TableJoinInput represents the MCP tool input for a join request.
type TableJoinInput struct {
	Member string `json:"member" jsonschema:"acting member identifier"`
	Code   string `json:"code" jsonschema:"six digit join code"`
}

// TableActionInput represents the MCP tool input for operations that only
// address a table.
type TableActionInput struct {
	Member  string `json:"member" jsonschema:"acting member identifier"`
	TableID string `json:"table_id" jsonschema:"table identifier"`
}

// TableTargetInput represents the MCP tool input for seat operations aimed
// at another member.
type TableTargetInput struct {
	Member  string `json:"member" jsonschema:"acting member identifier"`
	TableID string `json:"table_id" jsonschema:"table identifier"`
	Target  string `json:"target" jsonschema:"member the action applies to"`
}

// TableReorderInput represents the MCP tool input for turn order updates.
type TableReorderInput struct {
	Member  string   `json:"member" jsonschema:"acting member identifier"`
	TableID string   `json:"table_id" jsonschema:"table identifier"`
	Order   []string `json:"order" jsonschema:"proposed turn order listing every eligible member exactly once"`
}

// TableBoardInput represents the MCP tool input for board generation.
type TableBoardInput struct {
	Member  string `json:"member" jsonschema:"acting member identifier"`
	TableID string `json:"table_id" jsonschema:"table identifier"`
	Preset  string `json:"preset,omitempty" jsonschema:"optional board preset (standard)"`
}

// TableListInput represents the MCP tool input for listing a member's tables.
type TableListInput struct {
	Member string `json:"member" jsonschema:"acting member identifier"`
}

// SeatEntry represents one seat in a table result.
type SeatEntry struct {
	Member   string `json:"member" jsonschema:"seated member identifier"`
	Role     string `json:"role" jsonschema:"seat role (admin, waiting, confirmed)"`
	JoinedAt string `json:"joined_at" jsonschema:"RFC3339 timestamp when the seat was created"`
}

// TileEntry represents one board tile in a table result.
type TileEntry struct {
	ID        int    `json:"id" jsonschema:"tile position index"`
	Terrain   string `json:"terrain" jsonschema:"tile terrain"`
	Token     int    `json:"token,omitempty" jsonschema:"number token, absent on the desert tile"`
	HasMarker bool   `json:"has_marker,omitempty" jsonschema:"whether the start marker sits on this tile"`
}

// TableResult represents the MCP tool output for a full table view.
type TableResult struct {
	Message   string      `json:"message,omitempty" jsonschema:"outcome message"`
	ID        string      `json:"id" jsonschema:"table identifier"`
	Name      string      `json:"name" jsonschema:"table name"`
	JoinCode  string      `json:"join_code,omitempty" jsonschema:"six digit join code, only revealed to seated members"`
	Phase     string      `json:"phase" jsonschema:"table phase (not_started, started, finished)"`
	Layout    []TileEntry `json:"layout,omitempty" jsonschema:"generated board tiles"`
	TurnOrder []string    `json:"turn_order" jsonschema:"current turn order"`
	Version   int64       `json:"version" jsonschema:"table version, increments on every change"`
	Seats     []SeatEntry `json:"seats" jsonschema:"seats at the table"`
	MyRole    string      `json:"my_role,omitempty" jsonschema:"caller's seat role"`
	IsCurrent bool        `json:"is_current" jsonschema:"whether this is the caller's current table"`
	CreatedAt string      `json:"created_at" jsonschema:"RFC3339 timestamp when the table was created"`
	UpdatedAt string      `json:"updated_at" jsonschema:"RFC3339 timestamp when the table last changed"`
}

// TableJoinResult represents the MCP tool output for a join request.
type TableJoinResult struct {
	Message string `json:"message,omitempty" jsonschema:"outcome message"`
	TableID string `json:"table_id" jsonschema:"table identifier"`
	Role    string `json:"role" jsonschema:"seat role after the request"`
}

// TableRoleResult represents the MCP tool output for an approval.
type TableRoleResult struct {
	Message string `json:"message,omitempty" jsonschema:"outcome message"`
	Role    string `json:"role" jsonschema:"target member role after the approval"`
}

// TableActionResult represents the MCP tool output for seat and lifecycle
// operations that only report an outcome.
type TableActionResult struct {
	Message string `json:"message,omitempty" jsonschema:"outcome message"`
}

// TableOrderResult represents the MCP tool output for turn order updates.
type TableOrderResult struct {
	Message   string   `json:"message,omitempty" jsonschema:"outcome message"`
	TurnOrder []string `json:"turn_order" jsonschema:"stored turn order"`
	Version   int64    `json:"version" jsonschema:"table version after the update"`
}

// TableBoardResult represents the MCP tool output for board generation.
type TableBoardResult struct {
	Message   string      `json:"message,omitempty" jsonschema:"outcome message"`
	Layout    []TileEntry `json:"layout" jsonschema:"generated board tiles"`
	TurnOrder []string    `json:"turn_order" jsonschema:"turn order after regeneration"`
	Version   int64       `json:"version" jsonschema:"table version after the update"`
}

// TablePhaseResult represents the MCP tool output for phase transitions.
type TablePhaseResult struct {
	Message string `json:"message,omitempty" jsonschema:"outcome message"`
	Phase   string `json:"phase" jsonschema:"table phase after the transition"`
	Version int64  `json:"version" jsonschema:"table version after the transition"`
}

// TableListEntry represents one row of a member's table list.
type TableListEntry struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Phase     string `json:"phase"`
	MyRole    string `json:"my_role"`
	IsCurrent bool   `json:"is_current"`
	CreatedAt string `json:"created_at"`
}

// TableListResult represents the MCP tool output for a member's table list.
type TableListResult struct {
	Tables []TableListEntry `json:"tables" jsonschema:"tables where the member holds a seat"`
}

// TableCreateTool defines the MCP tool schema for table creation.
func TableCreateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "table_create",
		Description: "Creates a table and seats the creator as admin. The table starts in the not_started phase with a fresh six digit join code.",
	}
}

// TableJoinTool defines the MCP tool schema for join requests.
func TableJoinTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "table_join",
		Description: "Requests a seat at the table holding the join code. New members wait until the admin approves them.",
	}
}

// TableApproveTool defines the MCP tool schema for approving members.
func TableApproveTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "table_approve",
		Description: "Approves a waiting member. Only the table admin can approve; approval makes the member eligible for the turn order.",
	}
}

// TableRejectTool defines the MCP tool schema for rejecting join requests.
func TableRejectTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "table_reject",
		Description: "Rejects a waiting join request and frees the seat. Only the table admin can reject.",
	}
}

// TableRemoveTool defines the MCP tool schema for removing members.
func TableRemoveTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "table_remove",
		Description: "Removes a member's seat. Only the table admin can remove and the admin seat itself is protected.",
	}
}

// TableLeaveTool defines the MCP tool schema for leaving a table.
func TableLeaveTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "table_leave",
		Description: "Gives up the caller's own seat. The admin cannot leave and must delete the table instead.",
	}
}

// TableDeleteTool defines the MCP tool schema for deleting a table.
func TableDeleteTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "table_delete",
		Description: "Deletes a table together with all of its seats. Only the table admin can delete.",
	}
}

// TableSetCurrentTool defines the MCP tool schema for selecting the current table.
func TableSetCurrentTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "table_set_current",
		Description: "Marks a table as the caller's current table. At most one table is current per member.",
	}
}

// TableReorderTool defines the MCP tool schema for turn order updates.
func TableReorderTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "table_reorder",
		Description: "Replaces the turn order. The proposed order must list every eligible member exactly once.",
	}
}

// TableGenerateBoardTool defines the MCP tool schema for board generation.
func TableGenerateBoardTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "table_generate_board",
		Description: "Generates a board layout and reshuffles the turn order. Only allowed while the table is not_started; pass preset standard for the fixed beginner layout.",
	}
}

// TableStartTool defines the MCP tool schema for starting a table.
func TableStartTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "table_start",
		Description: "Moves the table from not_started to started.",
	}
}

// TableFinishTool defines the MCP tool schema for finishing a table.
func TableFinishTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "table_finish",
		Description: "Moves the table from started to finished.",
	}
}

// TableResetTool defines the MCP tool schema for resetting a table.
func TableResetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "table_reset",
		Description: "Returns the table to not_started from any phase. Layout and turn order are kept.",
	}
}

// TableGetTool defines the MCP tool schema for reading a table.
func TableGetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "table_get",
		Description: "Reads a table with its seats from the caller's point of view. The join code is only revealed to seated members.",
	}
}

// TableListTool defines the MCP tool schema for listing a member's tables.
func TableListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "table_list",
		Description: "Lists the tables where the member holds a seat, oldest first.",
	}
}
