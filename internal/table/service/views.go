package service

import (
	"context"
	"strings"
	"time"

	"github.com/louisbranch/hextable/internal/storage"
	"github.com/louisbranch/hextable/internal/table/domain"
)

// SeatView is one seat as shown to table members.
type SeatView struct {
	Member   string
	Role     domain.Role
	JoinedAt time.Time
}

// TableView is a table as seen by one caller. MyRole is unset when the
// caller holds no seat, and the join code is only revealed to seated
// members.
type TableView struct {
	ID        string
	Name      string
	JoinCode  string
	Phase     domain.Phase
	Layout    []domain.Tile
	TurnOrder []string
	Version   int64
	Seats     []SeatView
	MyRole    domain.Role
	IsCurrent bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableSummary is one row of a member's table list.
type TableSummary struct {
	ID        string
	Name      string
	Phase     domain.Phase
	MyRole    domain.Role
	IsCurrent bool
	CreatedAt time.Time
}

// GetTable loads a table with its seats from the caller's point of view.
func (s *TableService) GetTable(ctx context.Context, tableID, caller string) (TableView, error) {
	tableID = strings.TrimSpace(tableID)
	table, err := s.stores.Tables.GetTable(ctx, tableID)
	if err != nil {
		return TableView{}, err
	}
	records, err := s.stores.Seats.ListSeatsByTable(ctx, tableID)
	if err != nil {
		return TableView{}, err
	}

	view := TableView{
		ID:        table.ID,
		Name:      table.Name,
		JoinCode:  table.JoinCode,
		Phase:     table.Phase,
		Layout:    table.Layout,
		TurnOrder: table.TurnOrder,
		Version:   table.Version,
		CreatedAt: table.CreatedAt,
		UpdatedAt: table.UpdatedAt,
	}
	caller = strings.TrimSpace(caller)
	for _, record := range records {
		view.Seats = append(view.Seats, SeatView{
			Member:   record.Member,
			Role:     record.Role,
			JoinedAt: record.CreatedAt,
		})
		if caller != "" && record.Member == caller {
			view.MyRole = record.Role
			view.IsCurrent = record.IsCurrent
		}
	}
	if view.MyRole == domain.RoleUnspecified {
		view.JoinCode = ""
	}
	return view, nil
}

// ListTables lists the tables where the member holds a seat, oldest first.
func (s *TableService) ListTables(ctx context.Context, member string) ([]TableSummary, error) {
	member = strings.TrimSpace(member)
	if member == "" {
		return nil, domain.ErrMemberRequired
	}

	tables, err := s.stores.Tables.ListTablesByMember(ctx, member)
	if err != nil {
		return nil, err
	}
	seats, err := s.stores.Seats.ListSeatsByMember(ctx, member)
	if err != nil {
		return nil, err
	}
	seatByTable := make(map[string]storage.SeatRecord, len(seats))
	for _, seat := range seats {
		seatByTable[seat.TableID] = seat
	}

	summaries := make([]TableSummary, 0, len(tables))
	for _, table := range tables {
		seat := seatByTable[table.ID]
		summaries = append(summaries, TableSummary{
			ID:        table.ID,
			Name:      table.Name,
			Phase:     table.Phase,
			MyRole:    seat.Role,
			IsCurrent: seat.IsCurrent,
			CreatedAt: table.CreatedAt,
		})
	}
	return summaries, nil
}
