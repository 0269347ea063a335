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

const tableColumns = `id, name, join_code, created_by, phase, layout_json, turn_order_json, version, created_at, updated_at`

// CreateTableWithAdmin inserts the table row and its admin seat in one
// transaction. The admin seat becomes the member's current table unless the
// member already holds a current seat elsewhere.
func (s *Store) CreateTableWithAdmin(ctx context.Context, table storage.TableRecord, admin storage.SeatRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(table.ID) == "" {
		return fmt.Errorf("table id is required")
	}
	if strings.TrimSpace(table.JoinCode) == "" {
		return fmt.Errorf("join code is required")
	}
	if strings.TrimSpace(admin.ID) == "" {
		return fmt.Errorf("seat id is required")
	}
	if admin.TableID != table.ID {
		return fmt.Errorf("admin seat table id %q does not match table %q", admin.TableID, table.ID)
	}
	if strings.TrimSpace(admin.Member) == "" {
		return fmt.Errorf("seat member is required")
	}

	layoutJSON, err := marshalLayout(table.Layout)
	if err != nil {
		return err
	}
	orderJSON, err := marshalTurnOrder(table.TurnOrder)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create table: %w", err)
	}

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO tables (`+tableColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		table.ID,
		table.Name,
		table.JoinCode,
		table.CreatedBy,
		string(table.Phase),
		layoutJSON,
		orderJSON,
		table.Version,
		toMillis(table.CreatedAt),
		toMillis(table.UpdatedAt),
	)
	if err != nil {
		_ = tx.Rollback()
		if isUniqueViolation(err, "tables.join_code") {
			return storage.ErrJoinCodeTaken
		}
		return fmt.Errorf("insert table: %w", err)
	}

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO seats (id, table_id, member, role, is_current, created_at, updated_at)
		 VALUES (?, ?, ?, ?,
		   CASE WHEN EXISTS (SELECT 1 FROM seats WHERE member = ? AND is_current = 1) THEN 0 ELSE 1 END,
		   ?, ?)`,
		admin.ID,
		admin.TableID,
		admin.Member,
		string(admin.Role),
		admin.Member,
		toMillis(admin.CreatedAt),
		toMillis(admin.UpdatedAt),
	)
	if err != nil {
		_ = tx.Rollback()
		if isUniqueViolation(err, "seats.table_id") {
			return storage.ErrSeatExists
		}
		return fmt.Errorf("insert admin seat: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create table: %w", err)
	}
	return nil
}

// GetTable returns one table row by id.
func (s *Store) GetTable(ctx context.Context, id string) (storage.TableRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.TableRecord{}, err
	}
	if s == nil || s.db == nil {
		return storage.TableRecord{}, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return storage.TableRecord{}, fmt.Errorf("table id is required")
	}

	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+tableColumns+` FROM tables WHERE id = ?`,
		id,
	)
	return scanTable(row)
}

// GetTableByJoinCode returns the table currently holding a join code.
func (s *Store) GetTableByJoinCode(ctx context.Context, joinCode string) (storage.TableRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.TableRecord{}, err
	}
	if s == nil || s.db == nil {
		return storage.TableRecord{}, fmt.Errorf("storage is not configured")
	}
	joinCode = strings.TrimSpace(joinCode)
	if joinCode == "" {
		return storage.TableRecord{}, fmt.Errorf("join code is required")
	}

	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+tableColumns+` FROM tables WHERE join_code = ?`,
		joinCode,
	)
	return scanTable(row)
}

// UpdateTable persists the mutable table columns guarded by the record's
// version. The stored version is bumped on success and the fresh row
// returned; zero matched rows means either a missing table or a stale
// version.
func (s *Store) UpdateTable(ctx context.Context, table storage.TableRecord) (storage.TableRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.TableRecord{}, err
	}
	if s == nil || s.db == nil {
		return storage.TableRecord{}, fmt.Errorf("storage is not configured")
	}
	id := strings.TrimSpace(table.ID)
	if id == "" {
		return storage.TableRecord{}, fmt.Errorf("table id is required")
	}

	layoutJSON, err := marshalLayout(table.Layout)
	if err != nil {
		return storage.TableRecord{}, err
	}
	orderJSON, err := marshalTurnOrder(table.TurnOrder)
	if err != nil {
		return storage.TableRecord{}, err
	}

	result, err := s.db.ExecContext(
		ctx,
		`UPDATE tables
		 SET name = ?, phase = ?, layout_json = ?, turn_order_json = ?,
		     version = version + 1, updated_at = ?
		 WHERE id = ? AND version = ?`,
		table.Name,
		string(table.Phase),
		layoutJSON,
		orderJSON,
		toMillis(table.UpdatedAt),
		id,
		table.Version,
	)
	if err != nil {
		return storage.TableRecord{}, fmt.Errorf("update table: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return storage.TableRecord{}, fmt.Errorf("update table rows affected: %w", err)
	}
	if affected == 0 {
		var exists int
		row := s.db.QueryRowContext(ctx, `SELECT 1 FROM tables WHERE id = ?`, id)
		if err := row.Scan(&exists); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return storage.TableRecord{}, storage.ErrNotFound
			}
			return storage.TableRecord{}, fmt.Errorf("update table existence check: %w", err)
		}
		return storage.TableRecord{}, storage.ErrVersionMismatch
	}

	return s.GetTable(ctx, id)
}

// DeleteTable removes the table row. Seats cascade through the foreign key
// and the join code becomes available again.
func (s *Store) DeleteTable(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("table id is required")
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM tables WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete table: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete table rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListTablesByMember returns all tables where the member holds a seat.
func (s *Store) ListTablesByMember(ctx context.Context, member string) ([]storage.TableRecord, error) {
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
		`SELECT t.id, t.name, t.join_code, t.created_by, t.phase, t.layout_json,
		        t.turn_order_json, t.version, t.created_at, t.updated_at
		 FROM tables t
		 JOIN seats s ON s.table_id = t.id
		 WHERE s.member = ?
		 ORDER BY t.created_at ASC, t.id ASC`,
		member,
	)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var tables []storage.TableRecord
	for rows.Next() {
		table, err := scanTable(rows)
		if err != nil {
			return nil, fmt.Errorf("list tables: %w", err)
		}
		tables = append(tables, table)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return tables, nil
}

// rowScanner covers sql.Row and sql.Rows for shared scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTable(row rowScanner) (storage.TableRecord, error) {
	var (
		table      storage.TableRecord
		phaseLabel string
		layoutJSON string
		orderJSON  string
		createdAt  int64
		updatedAt  int64
	)
	err := row.Scan(
		&table.ID,
		&table.Name,
		&table.JoinCode,
		&table.CreatedBy,
		&phaseLabel,
		&layoutJSON,
		&orderJSON,
		&table.Version,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.TableRecord{}, storage.ErrNotFound
		}
		return storage.TableRecord{}, fmt.Errorf("scan table: %w", err)
	}

	phase, ok := domain.NormalizePhase(phaseLabel)
	if !ok {
		return storage.TableRecord{}, fmt.Errorf("unknown phase label %q", phaseLabel)
	}
	table.Phase = phase

	table.Layout, err = unmarshalLayout(layoutJSON)
	if err != nil {
		return storage.TableRecord{}, err
	}
	table.TurnOrder, err = unmarshalTurnOrder(orderJSON)
	if err != nil {
		return storage.TableRecord{}, err
	}
	table.CreatedAt = fromMillis(createdAt)
	table.UpdatedAt = fromMillis(updatedAt)
	return table, nil
}
