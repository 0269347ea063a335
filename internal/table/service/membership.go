package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/hextable/internal/storage"
	"github.com/louisbranch/hextable/internal/table/domain"
)

// CreateTable creates a table with the creator seated as admin. Join codes
// are drawn until the store accepts one; collisions beyond the attempt
// budget surface as an exhausted-code error.
func (s *TableService) CreateTable(ctx context.Context, name, creator string) (CreateTableResult, error) {
	table, err := domain.CreateTable(domain.CreateTableInput{
		Name:      name,
		CreatedBy: creator,
	}, s.clock, s.idGenerator)
	if err != nil {
		return CreateTableResult{}, err
	}
	seat, err := domain.NewSeat(table.ID, table.CreatedBy, domain.RoleAdmin, s.clock, s.idGenerator)
	if err != nil {
		return CreateTableResult{}, err
	}

	rng, err := s.rngFunc()
	if err != nil {
		return CreateTableResult{}, fmt.Errorf("seed join code generator: %w", err)
	}

	created := false
	for attempt := 0; attempt < domain.MaxJoinCodeAttempts; attempt++ {
		table.JoinCode = domain.NewJoinCode(rng)
		err := s.stores.Tables.CreateTableWithAdmin(ctx, tableRecord(table), seatRecord(seat))
		if errors.Is(err, storage.ErrJoinCodeTaken) {
			continue
		}
		if err != nil {
			return CreateTableResult{}, fmt.Errorf("persist table: %w", err)
		}
		created = true
		break
	}
	if !created {
		return CreateTableResult{}, domain.ErrJoinCodeExhausted
	}

	view, err := s.GetTable(ctx, table.ID, table.CreatedBy)
	if err != nil {
		return CreateTableResult{}, fmt.Errorf("load created table: %w", err)
	}
	return CreateTableResult{Result: okResult("table created"), Table: view}, nil
}

// RequestJoin seats the member as waiting at the table holding the join
// code. A member who already holds a seat gets their existing role back
// without a write.
func (s *TableService) RequestJoin(ctx context.Context, joinCode, member string) (RequestJoinResult, error) {
	member = strings.TrimSpace(member)
	if member == "" {
		return RequestJoinResult{}, domain.ErrMemberRequired
	}
	joinCode = strings.TrimSpace(joinCode)
	if err := domain.ValidateJoinCode(joinCode); err != nil {
		return RequestJoinResult{}, err
	}

	table, err := s.stores.Tables.GetTableByJoinCode(ctx, joinCode)
	if err != nil {
		return RequestJoinResult{}, err
	}
	return s.seatAtTable(ctx, table, member)
}

// RedeemJoin seats the member using a join code recovered from an invite
// grant. The grant names the table it was minted for; if the code has since
// been freed and reassigned, the redeem is refused rather than admitting the
// member to a different table.
func (s *TableService) RedeemJoin(ctx context.Context, joinCode, tableID, member string) (RequestJoinResult, error) {
	member = strings.TrimSpace(member)
	if member == "" {
		return RequestJoinResult{}, domain.ErrMemberRequired
	}
	joinCode = strings.TrimSpace(joinCode)
	if err := domain.ValidateJoinCode(joinCode); err != nil {
		return RequestJoinResult{}, err
	}

	table, err := s.stores.Tables.GetTableByJoinCode(ctx, joinCode)
	if err != nil {
		return RequestJoinResult{}, err
	}
	if table.ID != strings.TrimSpace(tableID) {
		return RequestJoinResult{}, domain.ErrJoinGrantStale
	}
	return s.seatAtTable(ctx, table, member)
}

// seatAtTable holds the shared join semantics: idempotent for existing
// seats, waiting role for new ones, and a read-back when the insert loses a
// race.
func (s *TableService) seatAtTable(ctx context.Context, table storage.TableRecord, member string) (RequestJoinResult, error) {
	existing, err := s.stores.Seats.GetSeat(ctx, table.ID, member)
	if err == nil {
		return RequestJoinResult{
			Result:  okResult("already seated"),
			TableID: table.ID,
			Role:    existing.Role,
		}, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return RequestJoinResult{}, err
	}

	seat, err := domain.NewSeat(table.ID, member, domain.RoleWaiting, s.clock, s.idGenerator)
	if err != nil {
		return RequestJoinResult{}, err
	}
	if err := s.stores.Seats.CreateSeat(ctx, seatRecord(seat)); err != nil {
		if errors.Is(err, storage.ErrSeatExists) {
			// Lost a race against another request from the same member.
			raced, raceErr := s.stores.Seats.GetSeat(ctx, table.ID, member)
			if raceErr != nil {
				return RequestJoinResult{}, raceErr
			}
			return RequestJoinResult{
				Result:  okResult("already seated"),
				TableID: table.ID,
				Role:    raced.Role,
			}, nil
		}
		return RequestJoinResult{}, fmt.Errorf("persist seat: %w", err)
	}
	return RequestJoinResult{
		Result:  okResult("join requested"),
		TableID: table.ID,
		Role:    seat.Role,
	}, nil
}

// Approve confirms a waiting member. Approving an already-confirmed member
// succeeds without a write; the admin seat cannot be approved.
func (s *TableService) Approve(ctx context.Context, tableID, target, actor string) (ApproveResult, error) {
	tableID = strings.TrimSpace(tableID)
	if _, err := s.stores.Tables.GetTable(ctx, tableID); err != nil {
		return ApproveResult{}, err
	}
	if err := s.requireAdminSeat(ctx, tableID, actor); err != nil {
		return ApproveResult{}, err
	}

	target = strings.TrimSpace(target)
	if target == "" {
		return ApproveResult{}, storage.ErrNotFound
	}
	seat, err := s.stores.Seats.GetSeat(ctx, tableID, target)
	if err != nil {
		return ApproveResult{}, err
	}

	switch seat.Role {
	case domain.RoleWaiting:
		seat.Role = domain.RoleConfirmed
		seat.UpdatedAt = s.clock().UTC()
		if err := s.stores.Seats.PutSeat(ctx, seat); err != nil {
			return ApproveResult{}, fmt.Errorf("persist seat: %w", err)
		}
		return ApproveResult{Result: okResult("member confirmed"), Role: seat.Role}, nil
	case domain.RoleConfirmed:
		return ApproveResult{Result: okResult("member already confirmed"), Role: seat.Role}, nil
	default:
		return ApproveResult{}, domain.ErrAdminSeatProtected
	}
}

// Reject removes a waiting member's join request. Confirmed members and the
// admin cannot be rejected by this path.
func (s *TableService) Reject(ctx context.Context, tableID, target, actor string) (Result, error) {
	tableID = strings.TrimSpace(tableID)
	if _, err := s.stores.Tables.GetTable(ctx, tableID); err != nil {
		return Result{}, err
	}
	if err := s.requireAdminSeat(ctx, tableID, actor); err != nil {
		return Result{}, err
	}

	target = strings.TrimSpace(target)
	if target == "" {
		return Result{}, storage.ErrNotFound
	}
	seat, err := s.stores.Seats.GetSeat(ctx, tableID, target)
	if err != nil {
		return Result{}, err
	}
	if seat.Role != domain.RoleWaiting {
		return Result{}, domain.ErrNoPendingRequest
	}
	if err := s.stores.Seats.DeleteSeat(ctx, tableID, target); err != nil {
		return Result{}, fmt.Errorf("delete seat: %w", err)
	}
	return okResult("join request rejected"), nil
}

// Remove unseats a waiting or confirmed member. The admin seat is protected.
func (s *TableService) Remove(ctx context.Context, tableID, target, actor string) (Result, error) {
	tableID = strings.TrimSpace(tableID)
	if _, err := s.stores.Tables.GetTable(ctx, tableID); err != nil {
		return Result{}, err
	}
	if err := s.requireAdminSeat(ctx, tableID, actor); err != nil {
		return Result{}, err
	}

	target = strings.TrimSpace(target)
	if target == "" {
		return Result{}, storage.ErrNotFound
	}
	seat, err := s.stores.Seats.GetSeat(ctx, tableID, target)
	if err != nil {
		return Result{}, err
	}
	if seat.Role == domain.RoleAdmin {
		return Result{}, domain.ErrAdminSeatProtected
	}
	if err := s.stores.Seats.DeleteSeat(ctx, tableID, target); err != nil {
		return Result{}, fmt.Errorf("delete seat: %w", err)
	}
	return okResult("member removed"), nil
}

// Leave unseats the member. Admins delete the table instead of leaving it.
func (s *TableService) Leave(ctx context.Context, tableID, member string) (Result, error) {
	member = strings.TrimSpace(member)
	if member == "" {
		return Result{}, domain.ErrMemberRequired
	}
	tableID = strings.TrimSpace(tableID)
	if _, err := s.stores.Tables.GetTable(ctx, tableID); err != nil {
		return Result{}, err
	}
	seat, err := s.stores.Seats.GetSeat(ctx, tableID, member)
	if err != nil {
		return Result{}, err
	}
	if seat.Role == domain.RoleAdmin {
		return Result{}, domain.ErrAdminCannotLeave
	}
	if err := s.stores.Seats.DeleteSeat(ctx, tableID, member); err != nil {
		return Result{}, fmt.Errorf("delete seat: %w", err)
	}
	return okResult("left table"), nil
}

// DeleteTable deletes the table and every seat at it, freeing the join code.
func (s *TableService) DeleteTable(ctx context.Context, tableID, actor string) (Result, error) {
	tableID = strings.TrimSpace(tableID)
	if _, err := s.stores.Tables.GetTable(ctx, tableID); err != nil {
		return Result{}, err
	}
	if err := s.requireAdminSeat(ctx, tableID, actor); err != nil {
		return Result{}, err
	}
	if err := s.stores.Tables.DeleteTable(ctx, tableID); err != nil {
		return Result{}, fmt.Errorf("delete table: %w", err)
	}
	return okResult("table deleted"), nil
}
