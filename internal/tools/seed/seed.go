// Package seed populates a database with demo tables for local development.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/louisbranch/hextable/internal/storage/sqlite"
	tableservice "github.com/louisbranch/hextable/internal/table/service"
)

// adminMember owns every seeded table.
const adminMember = "demo-admin"

// Config holds seeding inputs.
type Config struct {
	// DBPath locates the SQLite database; it is created when missing.
	DBPath string
	// TableName names the demo table.
	TableName string
	// Guests is the number of guest members that request a seat.
	Guests int
	// Approvals is the number of guests the admin approves, capped at Guests.
	Approvals int
	// Preset selects the board preset; empty means a random board.
	Preset string
	// Verbose enables per-step progress output.
	Verbose bool
}

// DefaultConfig returns the demo seeding defaults.
func DefaultConfig() Config {
	return Config{
		DBPath:    "hextable.db",
		TableName: "Demo Table",
		Guests:    3,
		Approvals: 2,
	}
}

// Run seeds one demo table: guests request seats through the join code, the
// admin approves a subset, and a board is generated while the table is still
// in the not_started phase.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if cfg.Guests < 0 {
		return errors.New("guest count cannot be negative")
	}
	if cfg.Approvals < 0 {
		return errors.New("approval count cannot be negative")
	}
	approvals := cfg.Approvals
	if approvals > cfg.Guests {
		approvals = cfg.Guests
	}

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open seed database: %w", err)
	}
	defer store.Close()

	tables, err := tableservice.NewTableService(tableservice.Stores{Tables: store, Seats: store})
	if err != nil {
		return err
	}

	created, err := tables.CreateTable(ctx, cfg.TableName, adminMember)
	if err != nil {
		return fmt.Errorf("create demo table: %w", err)
	}
	logf(out, cfg.Verbose, "created table %s with join code %s", created.Table.ID, created.Table.JoinCode)

	for i := 1; i <= cfg.Guests; i++ {
		guest := fmt.Sprintf("demo-guest-%d", i)
		if _, err := tables.RequestJoin(ctx, created.Table.JoinCode, guest); err != nil {
			return fmt.Errorf("join %s: %w", guest, err)
		}
		logf(out, cfg.Verbose, "%s requested a seat", guest)
		if i > approvals {
			continue
		}
		if _, err := tables.Approve(ctx, created.Table.ID, guest, adminMember); err != nil {
			return fmt.Errorf("approve %s: %w", guest, err)
		}
		logf(out, cfg.Verbose, "%s approved", guest)
	}

	board, err := tables.GenerateBoard(ctx, created.Table.ID, adminMember, cfg.Preset)
	if err != nil {
		return fmt.Errorf("generate demo board: %w", err)
	}

	fmt.Fprintf(out, "Seeded table %s (%s)\n", created.Table.ID, created.Table.Name)
	fmt.Fprintf(out, "  join code: %s\n", created.Table.JoinCode)
	fmt.Fprintf(out, "  seats: %d (%d confirmed guests, %d waiting)\n", 1+cfg.Guests, approvals, cfg.Guests-approvals)
	fmt.Fprintf(out, "  board: %d tiles, turn order %s\n", len(board.Layout), strings.Join(board.TurnOrder, ", "))
	return nil
}

func logf(out io.Writer, verbose bool, format string, args ...any) {
	if !verbose {
		return
	}
	fmt.Fprintf(out, format+"\n", args...)
}
