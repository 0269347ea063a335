// Package sqlite provides a SQLite-backed table storage implementation.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/hextable/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/hextable/internal/storage"
	"github.com/louisbranch/hextable/internal/storage/sqlite/migrations"
	"github.com/louisbranch/hextable/internal/table/domain"
	_ "modernc.org/sqlite"
)

// Store persists table and seat state in SQLite.
type Store struct {
	db *sql.DB
}

// busyTimeoutMillis bounds how long a writer waits on a locked database.
// Slow contention should surface as CAS retries, not driver stalls.
const busyTimeoutMillis = 5000

// dsnFor builds the connection string: WAL for concurrent readers, enforced
// foreign keys so seat rows cannot outlive their table.
func dsnFor(path string) string {
	return fmt.Sprintf("%s?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=%d&_synchronous=NORMAL",
		filepath.Clean(path), busyTimeoutMillis)
}

// Timestamps are stored as UTC millisecond integers so comparisons in SQL
// stay cheap and lossless round-trips stay within column precision.

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite table store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	db, err := sql.Open("sqlite", dsnFor(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	store := &Store{db: db}
	if err := db.Ping(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(db, migrations.FS); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}
	return store, nil
}

// Close closes the database handle. Safe on a nil store.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure on
// the hinted column. The driver only exposes the violation as message text.
func isUniqueViolation(err error, columnHint string) bool {
	if err == nil {
		return false
	}
	message := err.Error()
	return strings.Contains(message, "UNIQUE constraint failed") && strings.Contains(message, columnHint)
}

// tileDoc is the JSON wire shape for one stored tile.
type tileDoc struct {
	ID        int    `json:"id"`
	Terrain   string `json:"terrain"`
	Token     *int   `json:"token"`
	HasMarker bool   `json:"hasMarker"`
}

// layoutDoc is the JSON wire shape for the layout column.
type layoutDoc struct {
	Tiles []tileDoc `json:"tiles"`
}

// marshalLayout encodes tiles for the layout_json column. An empty layout is
// stored as the empty string rather than an empty document.
func marshalLayout(tiles []domain.Tile) (string, error) {
	if len(tiles) == 0 {
		return "", nil
	}
	doc := layoutDoc{Tiles: make([]tileDoc, 0, len(tiles))}
	for _, tile := range tiles {
		entry := tileDoc{
			ID:        tile.ID,
			Terrain:   string(tile.Terrain),
			HasMarker: tile.HasMarker,
		}
		if tile.Token != 0 {
			token := tile.Token
			entry.Token = &token
		}
		doc.Tiles = append(doc.Tiles, entry)
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal layout: %w", err)
	}
	return string(payload), nil
}

// unmarshalLayout decodes the layout_json column back into domain tiles.
func unmarshalLayout(value string) ([]domain.Tile, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	var doc layoutDoc
	if err := json.Unmarshal([]byte(value), &doc); err != nil {
		return nil, fmt.Errorf("unmarshal layout: %w", err)
	}
	tiles := make([]domain.Tile, 0, len(doc.Tiles))
	for _, entry := range doc.Tiles {
		terrain, ok := domain.NormalizeTerrain(entry.Terrain)
		if !ok {
			return nil, fmt.Errorf("unknown terrain label %q", entry.Terrain)
		}
		tile := domain.Tile{
			ID:        entry.ID,
			Terrain:   terrain,
			HasMarker: entry.HasMarker,
		}
		if entry.Token != nil {
			tile.Token = *entry.Token
		}
		tiles = append(tiles, tile)
	}
	return tiles, nil
}

// marshalTurnOrder encodes the turn order for the turn_order_json column.
func marshalTurnOrder(order []string) (string, error) {
	if order == nil {
		order = []string{}
	}
	payload, err := json.Marshal(order)
	if err != nil {
		return "", fmt.Errorf("marshal turn order: %w", err)
	}
	return string(payload), nil
}

// unmarshalTurnOrder decodes the turn_order_json column.
func unmarshalTurnOrder(value string) ([]string, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	var order []string
	if err := json.Unmarshal([]byte(value), &order); err != nil {
		return nil, fmt.Errorf("unmarshal turn order: %w", err)
	}
	return order, nil
}

var _ storage.TableStore = (*Store)(nil)
var _ storage.SeatStore = (*Store)(nil)
