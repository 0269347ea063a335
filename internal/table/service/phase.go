package service

import (
	"context"
	"strings"

	"github.com/louisbranch/hextable/internal/table/domain"
)

// Start moves the table from not_started to started.
func (s *TableService) Start(ctx context.Context, tableID, actor string) (PhaseResult, error) {
	return s.transitionPhase(ctx, tableID, actor, domain.PhaseStarted, "table started")
}

// Finish moves the table from started to finished.
func (s *TableService) Finish(ctx context.Context, tableID, actor string) (PhaseResult, error) {
	return s.transitionPhase(ctx, tableID, actor, domain.PhaseFinished, "table finished")
}

// Reset returns the table to not_started from any phase, keeping layout and
// turn order intact. Resetting a not_started table is an idempotent success.
func (s *TableService) Reset(ctx context.Context, tableID, actor string) (PhaseResult, error) {
	return s.transitionPhase(ctx, tableID, actor, domain.PhaseNotStarted, "table reset")
}

func (s *TableService) transitionPhase(ctx context.Context, tableID, actor string, to domain.Phase, message string) (PhaseResult, error) {
	tableID = strings.TrimSpace(tableID)
	table, err := s.stores.Tables.GetTable(ctx, tableID)
	if err != nil {
		return PhaseResult{}, err
	}
	if err := domain.ValidatePhaseTransition(table.Phase, to); err != nil {
		return PhaseResult{}, err
	}
	if err := s.requireAdminSeat(ctx, tableID, actor); err != nil {
		return PhaseResult{}, err
	}

	if table.Phase == to {
		return PhaseResult{
			Result:  okResult(message),
			Phase:   table.Phase,
			Version: table.Version,
		}, nil
	}

	table.Phase = to
	table.UpdatedAt = s.clock().UTC()
	updated, err := s.stores.Tables.UpdateTable(ctx, table)
	if err != nil {
		return PhaseResult{}, err
	}
	return PhaseResult{
		Result:  okResult(message),
		Phase:   updated.Phase,
		Version: updated.Version,
	}, nil
}
