package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/hextable/internal/storage"
	"github.com/louisbranch/hextable/internal/table/domain"
)

const seatColumns = `id, table_id, member, role, is_current, created_at, updated_at`

// CreateSeat inserts a new seat row. A member may hold at most one seat per
// table; inserting a second returns storage.ErrSeatExists.
func (s *Store) CreateSeat(ctx context.Context, seat storage.SeatRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(seat.ID) == "" {
		return fmt.Errorf("seat id is required")
	}
	if strings.TrimSpace(seat.TableID) == "" {
		return fmt.Errorf("table id is required")
	}
	if strings.TrimSpace(seat.Member) == "" {
		return fmt.Errorf("member is required")
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO seats (`+seatColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		seat.ID,
		seat.TableID,
		seat.Member,
		string(seat.Role),
		boolToInt(seat.IsCurrent),
		toMillis(seat.CreatedAt),
		toMillis(seat.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err, "seats.table_id") {
			return storage.ErrSeatExists
		}
		return fmt.Errorf("insert seat: %w", err)
	}
	return nil
}

// PutSeat inserts the seat or, when the member already holds one at the
// table, updates its role, current flag and updated timestamp in place.
func (s *Store) PutSeat(ctx context.Context, seat storage.SeatRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(seat.ID) == "" {
		return fmt.Errorf("seat id is required")
	}
	if strings.TrimSpace(seat.TableID) == "" {
		return fmt.Errorf("table id is required")
	}
	if strings.TrimSpace(seat.Member) == "" {
		return fmt.Errorf("member is required")
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO seats (`+seatColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (table_id, member) DO UPDATE SET
		   role = excluded.role,
		   is_current = excluded.is_current,
		   updated_at = excluded.updated_at`,
		seat.ID,
		seat.TableID,
		seat.Member,
		string(seat.Role),
		boolToInt(seat.IsCurrent),
		toMillis(seat.CreatedAt),
		toMillis(seat.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put seat: %w", err)
	}
	return nil
}

// GetSeat returns the member's seat at a table.
func (s *Store) GetSeat(ctx context.Context, tableID, member string) (storage.SeatRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.SeatRecord{}, err
	}
	if s == nil || s.db == nil {
		return storage.SeatRecord{}, fmt.Errorf("storage is not configured")
	}
	tableID = strings.TrimSpace(tableID)
	if tableID == "" {
		return storage.SeatRecord{}, fmt.Errorf("table id is required")
	}
	member = strings.TrimSpace(member)
	if member == "" {
		return storage.SeatRecord{}, fmt.Errorf("member is required")
	}

	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+seatColumns+` FROM seats WHERE table_id = ? AND member = ?`,
		tableID,
		member,
	)
	return scanSeat(row)
}

// DeleteSeat removes the member's seat at a table.
func (s *Store) DeleteSeat(ctx context.Context, tableID, member string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	tableID = strings.TrimSpace(tableID)
	if tableID == "" {
		return fmt.Errorf("table id is required")
	}
	member = strings.TrimSpace(member)
	if member == "" {
		return fmt.Errorf("member is required")
	}

	result, err := s.db.ExecContext(
		ctx,
		`DELETE FROM seats WHERE table_id = ? AND member = ?`,
		tableID,
		member,
	)
	if err != nil {
		return fmt.Errorf("delete seat: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete seat rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListSeatsByTable returns every seat at a table, oldest first.
func (s *Store) ListSeatsByTable(ctx context.Context, tableID string) ([]storage.SeatRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	tableID = strings.TrimSpace(tableID)
	if tableID == "" {
		return nil, fmt.Errorf("table id is required")
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+seatColumns+` FROM seats
		 WHERE table_id = ?
		 ORDER BY created_at ASC, id ASC`,
		tableID,
	)
	if err != nil {
		return nil, fmt.Errorf("list seats: %w", err)
	}
	defer rows.Close()
	return collectSeats(rows)
}

// ListSeatsByMember returns every seat a member holds across tables, oldest
// first.
func (s *Store) ListSeatsByMember(ctx context.Context, member string) ([]storage.SeatRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	member = strings.TrimSpace(member)
	if member == "" {
		return nil, fmt.Errorf("member is required")
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+seatColumns+` FROM seats
		 WHERE member = ?
		 ORDER BY created_at ASC, id ASC`,
		member,
	)
	if err != nil {
		return nil, fmt.Errorf("list seats: %w", err)
	}
	defer rows.Close()
	return collectSeats(rows)
}

// SetCurrentSeat marks the member's seat at tableID as their current table,
// clearing any previous current seat in the same transaction.
func (s *Store) SetCurrentSeat(ctx context.Context, tableID, member string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	tableID = strings.TrimSpace(tableID)
	if tableID == "" {
		return fmt.Errorf("table id is required")
	}
	member = strings.TrimSpace(member)
	if member == "" {
		return fmt.Errorf("member is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin set current seat: %w", err)
	}

	var exists int
	row := tx.QueryRowContext(
		ctx,
		`SELECT 1 FROM seats WHERE table_id = ? AND member = ?`,
		tableID,
		member,
	)
	if err := row.Scan(&exists); err != nil {
		_ = tx.Rollback()
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ErrNotFound
		}
		return fmt.Errorf("set current seat lookup: %w", err)
	}

	_, err = tx.ExecContext(
		ctx,
		`UPDATE seats SET is_current = 0 WHERE member = ? AND is_current = 1`,
		member,
	)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear current seat: %w", err)
	}

	_, err = tx.ExecContext(
		ctx,
		`UPDATE seats SET is_current = 1 WHERE table_id = ? AND member = ?`,
		tableID,
		member,
	)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("set current seat: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit set current seat: %w", err)
	}
	return nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func scanSeat(row rowScanner) (storage.SeatRecord, error) {
	var (
		seat      storage.SeatRecord
		roleLabel string
		isCurrent int
		createdAt int64
		updatedAt int64
	)
	err := row.Scan(
		&seat.ID,
		&seat.TableID,
		&seat.Member,
		&roleLabel,
		&isCurrent,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.SeatRecord{}, storage.ErrNotFound
		}
		return storage.SeatRecord{}, fmt.Errorf("scan seat: %w", err)
	}

	role, ok := domain.NormalizeRole(roleLabel)
	if !ok {
		return storage.SeatRecord{}, fmt.Errorf("unknown role label %q", roleLabel)
	}
	seat.Role = role
	seat.IsCurrent = isCurrent != 0
	seat.CreatedAt = fromMillis(createdAt)
	seat.UpdatedAt = fromMillis(updatedAt)
	return seat, nil
}

func collectSeats(rows *sql.Rows) ([]storage.SeatRecord, error) {
	var seats []storage.SeatRecord
	for rows.Next() {
		seat, err := scanSeat(rows)
		if err != nil {
			return nil, fmt.Errorf("list seats: %w", err)
		}
		seats = append(seats, seat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list seats: %w", err)
	}
	return seats, nil
}
