package storage

import (
	"context"
	"time"

	apperrors "github.com/louisbranch/hextable/internal/platform/errors"
	"github.com/louisbranch/hextable/internal/table/domain"
)

// ErrNotFound indicates a requested persistence record is missing.
// Callers use this to differentiate between legitimate "no such entity"
// states and transport or data corruption failures.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")

// ErrJoinCodeTaken indicates an insert collided with the unique join-code
// index. The creation path treats it as a signal to draw a fresh code.
var ErrJoinCodeTaken = apperrors.New(apperrors.CodeJoinCodeTaken, "join code is already assigned to a table")

// ErrSeatExists indicates a seat insert collided with an existing seat for
// the same table and member.
var ErrSeatExists = apperrors.New(apperrors.CodeSeatExists, "seat already exists for member")

// ErrVersionMismatch indicates an update lost an optimistic concurrency race
// and the caller should reload and retry.
var ErrVersionMismatch = apperrors.New(apperrors.CodeTableVersionConflict, "table version does not match stored version")

// TableRecord captures the table row including its board and turn order.
type TableRecord struct {
	ID        string
	Name      string
	JoinCode  string
	CreatedBy string
	Phase     domain.Phase
	Layout    []domain.Tile
	TurnOrder []string
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SeatRecord captures one member's seat at a table.
type SeatRecord struct {
	ID        string
	TableID   string
	Member    string
	Role      domain.Role
	IsCurrent bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableStore owns table rows, their join-code allocation, and the optimistic
// version used by setup mutations.
type TableStore interface {
	// CreateTableWithAdmin inserts the table and its admin seat in one
	// transaction. The admin seat becomes the member's current table
	// unless the member already has one. Returns ErrJoinCodeTaken when
	// the join code collides with an existing table.
	CreateTableWithAdmin(ctx context.Context, table TableRecord, admin SeatRecord) error
	GetTable(ctx context.Context, id string) (TableRecord, error)
	GetTableByJoinCode(ctx context.Context, joinCode string) (TableRecord, error)
	// UpdateTable persists name, phase, layout, and turn order, guarded by
	// the record's version. On success the stored version is bumped and
	// the updated record returned; a stale version yields
	// ErrVersionMismatch.
	UpdateTable(ctx context.Context, table TableRecord) (TableRecord, error)
	// DeleteTable removes the table; seats cascade and the join code is
	// freed for reuse.
	DeleteTable(ctx context.Context, id string) error
	// ListTablesByMember returns tables where the member holds a seat,
	// oldest first.
	ListTablesByMember(ctx context.Context, member string) ([]TableRecord, error)
}

// SeatStore owns seat rows, role transitions, and the single-current-table
// flag per member.
type SeatStore interface {
	// CreateSeat inserts a seat, returning ErrSeatExists when the member
	// already holds one at the table.
	CreateSeat(ctx context.Context, seat SeatRecord) error
	// PutSeat upserts a seat's role, current flag, and updated timestamp.
	PutSeat(ctx context.Context, seat SeatRecord) error
	GetSeat(ctx context.Context, tableID, member string) (SeatRecord, error)
	DeleteSeat(ctx context.Context, tableID, member string) error
	// ListSeatsByTable returns all seats at a table, oldest first.
	ListSeatsByTable(ctx context.Context, tableID string) ([]SeatRecord, error)
	// ListSeatsByMember returns the member's seats across all tables,
	// oldest first.
	ListSeatsByMember(ctx context.Context, member string) ([]SeatRecord, error)
	// SetCurrentSeat clears the member's current flag on every seat and
	// sets it on the given table's seat in one transaction.
	SetCurrentSeat(ctx context.Context, tableID, member string) error
}
