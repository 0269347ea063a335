package service

import (
	"context"
	"strings"

	"github.com/louisbranch/hextable/internal/table/domain"
)

// SetCurrent marks the member's seat at the table as their current one. The
// store clears any previously current seat in the same transaction, so a
// member never holds two current seats, even transiently.
func (s *TableService) SetCurrent(ctx context.Context, tableID, member string) (Result, error) {
	member = strings.TrimSpace(member)
	if member == "" {
		return Result{}, domain.ErrMemberRequired
	}
	if err := s.stores.Seats.SetCurrentSeat(ctx, strings.TrimSpace(tableID), member); err != nil {
		return Result{}, err
	}
	return okResult("current table updated"), nil
}
