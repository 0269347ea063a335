package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/louisbranch/hextable/internal/platform/id"
	"github.com/louisbranch/hextable/internal/random"
	"github.com/louisbranch/hextable/internal/storage"
	"github.com/louisbranch/hextable/internal/table/domain"
)

// Stores groups the storage interfaces the table service depends on.
type Stores struct {
	Tables storage.TableStore
	Seats  storage.SeatStore
}

// Validate checks that every store field is non-nil. Call this at service
// construction time so that methods do not need per-call nil guards.
func (s Stores) Validate() error {
	var missing []string
	if s.Tables == nil {
		missing = append(missing, "Tables")
	}
	if s.Seats == nil {
		missing = append(missing, "Seats")
	}
	if len(missing) > 0 {
		return fmt.Errorf("stores not configured: %s", strings.Join(missing, ", "))
	}
	return nil
}

// TableService coordinates table membership, turn order, board layouts, and
// phase transitions. All role checks resolve against stored seats; callers
// only supply the acting member identity.
type TableService struct {
	stores      Stores
	clock       func() time.Time
	idGenerator func() (string, error)
	rngFunc     func() (*rand.Rand, error) // Draws a freshly seeded generator per request.
}

// NewTableService creates a TableService with default dependencies.
func NewTableService(stores Stores) (*TableService, error) {
	if err := stores.Validate(); err != nil {
		return nil, err
	}
	return &TableService{
		stores:      stores,
		clock:       time.Now,
		idGenerator: id.NewID,
		rngFunc:     random.NewRand,
	}, nil
}

// Result is the uniform envelope embedded in every mutation outcome.
type Result struct {
	OK      bool
	Message string
}

func okResult(message string) Result {
	return Result{OK: true, Message: message}
}

// CreateTableResult reports a created table together with its caller view.
type CreateTableResult struct {
	Result
	Table TableView
}

// RequestJoinResult reports the seat role after a join request, including
// the already-held role when the member was previously seated.
type RequestJoinResult struct {
	Result
	TableID string
	Role    domain.Role
}

// ApproveResult reports the target member's role after an approval.
type ApproveResult struct {
	Result
	Role domain.Role
}

// ReorderResult reports the stored turn order after normalization.
type ReorderResult struct {
	Result
	TurnOrder []string
	Version   int64
}

// GenerateBoardResult reports the generated layout and re-normalized order.
type GenerateBoardResult struct {
	Result
	Layout    []domain.Tile
	TurnOrder []string
	Version   int64
}

// PhaseResult reports the table phase after a transition.
type PhaseResult struct {
	Result
	Phase   domain.Phase
	Version int64
}

// requireAdminSeat verifies the actor holds the table's admin seat. A
// missing seat and a non-admin seat both report the same generic error.
func (s *TableService) requireAdminSeat(ctx context.Context, tableID, actor string) error {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return domain.ErrMemberRequired
	}
	seat, err := s.stores.Seats.GetSeat(ctx, tableID, actor)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.ErrNotAuthorized
		}
		return err
	}
	if seat.Role != domain.RoleAdmin {
		return domain.ErrNotAuthorized
	}
	return nil
}

// eligibleMembers lists admin and confirmed members in seat creation order.
func eligibleMembers(records []storage.SeatRecord) []string {
	seats := make([]domain.Seat, 0, len(records))
	for _, record := range records {
		seats = append(seats, seatFromRecord(record))
	}
	return domain.EligibleMembers(seats)
}

func seatFromRecord(record storage.SeatRecord) domain.Seat {
	return domain.Seat{
		ID:        record.ID,
		TableID:   record.TableID,
		Member:    record.Member,
		Role:      record.Role,
		IsCurrent: record.IsCurrent,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}

func tableRecord(table domain.Table) storage.TableRecord {
	return storage.TableRecord{
		ID:        table.ID,
		Name:      table.Name,
		JoinCode:  table.JoinCode,
		CreatedBy: table.CreatedBy,
		Phase:     table.Phase,
		Layout:    table.Layout,
		TurnOrder: table.TurnOrder,
		Version:   table.Version,
		CreatedAt: table.CreatedAt,
		UpdatedAt: table.UpdatedAt,
	}
}

func seatRecord(seat domain.Seat) storage.SeatRecord {
	return storage.SeatRecord{
		ID:        seat.ID,
		TableID:   seat.TableID,
		Member:    seat.Member,
		Role:      seat.Role,
		IsCurrent: seat.IsCurrent,
		CreatedAt: seat.CreatedAt,
		UpdatedAt: seat.UpdatedAt,
	}
}
