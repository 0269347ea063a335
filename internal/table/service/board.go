package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/hextable/internal/table/domain"
)

// GenerateBoard replaces the table layout with a fresh one and re-normalizes
// the turn order against the current eligible seats, repairing drift from
// approvals and removals since the last reorder. The "standard" preset
// produces the fixed beginner layout; anything else shuffles.
func (s *TableService) GenerateBoard(ctx context.Context, tableID, actor, preset string) (GenerateBoardResult, error) {
	tableID = strings.TrimSpace(tableID)
	table, err := s.stores.Tables.GetTable(ctx, tableID)
	if err != nil {
		return GenerateBoardResult{}, err
	}
	if err := domain.ValidateTableOperation(table.Phase, domain.TableOpGenerateBoard); err != nil {
		return GenerateBoardResult{}, err
	}
	if err := s.requireAdminSeat(ctx, tableID, actor); err != nil {
		return GenerateBoardResult{}, err
	}

	var layout []domain.Tile
	if strings.TrimSpace(preset) == domain.BoardPresetStandard {
		layout = domain.StandardBoard()
	} else {
		rng, err := s.rngFunc()
		if err != nil {
			return GenerateBoardResult{}, fmt.Errorf("seed board generator: %w", err)
		}
		layout = domain.GenerateBoard(rng)
	}

	seats, err := s.stores.Seats.ListSeatsByTable(ctx, tableID)
	if err != nil {
		return GenerateBoardResult{}, err
	}
	eligible := eligibleMembers(seats)

	table.Layout = layout
	table.TurnOrder = domain.NormalizeTurnOrder(table.TurnOrder, table.TurnOrder, eligible)
	table.UpdatedAt = s.clock().UTC()
	updated, err := s.stores.Tables.UpdateTable(ctx, table)
	if err != nil {
		return GenerateBoardResult{}, err
	}
	return GenerateBoardResult{
		Result:    okResult("board generated"),
		Layout:    updated.Layout,
		TurnOrder: updated.TurnOrder,
		Version:   updated.Version,
	}, nil
}
