package service

import (
	"context"
	"strings"

	"github.com/louisbranch/hextable/internal/table/domain"
)

// Reorder replaces the table's turn order with the proposed one, normalized
// against the admin and confirmed seats. Only the admin may reorder, and
// only before the table starts.
func (s *TableService) Reorder(ctx context.Context, tableID, actor string, proposed []string) (ReorderResult, error) {
	tableID = strings.TrimSpace(tableID)
	table, err := s.stores.Tables.GetTable(ctx, tableID)
	if err != nil {
		return ReorderResult{}, err
	}
	if err := domain.ValidateTableOperation(table.Phase, domain.TableOpReorder); err != nil {
		return ReorderResult{}, err
	}
	if err := s.requireAdminSeat(ctx, tableID, actor); err != nil {
		return ReorderResult{}, err
	}

	seats, err := s.stores.Seats.ListSeatsByTable(ctx, tableID)
	if err != nil {
		return ReorderResult{}, err
	}
	eligible := eligibleMembers(seats)

	normalized := domain.NormalizeTurnOrder(proposed, table.TurnOrder, eligible)
	if err := domain.ValidateTurnOrder(normalized, eligible); err != nil {
		return ReorderResult{}, err
	}

	table.TurnOrder = normalized
	table.UpdatedAt = s.clock().UTC()
	updated, err := s.stores.Tables.UpdateTable(ctx, table)
	if err != nil {
		return ReorderResult{}, err
	}
	return ReorderResult{
		Result:    okResult("turn order updated"),
		TurnOrder: updated.TurnOrder,
		Version:   updated.Version,
	}, nil
}
