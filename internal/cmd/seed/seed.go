// Package seed parses seed command flags and populates demo data.
package seed

import (
	"context"
	"flag"
	"io"

	entrypoint "github.com/louisbranch/hextable/internal/platform/cmd"
	"github.com/louisbranch/hextable/internal/tools/seed"
)

// Config holds seed command configuration.
type Config struct {
	DBPath    string `env:"HEXTABLE_DB_PATH"         envDefault:"hextable.db"`
	TableName string `env:"HEXTABLE_SEED_TABLE_NAME" envDefault:"Demo Table"`
	Guests    int    `env:"HEXTABLE_SEED_GUESTS"     envDefault:"3"`
	Approvals int    `env:"HEXTABLE_SEED_APPROVALS"  envDefault:"2"`
	Preset    string `env:"HEXTABLE_SEED_PRESET"`
	Verbose   bool
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the SQLite database")
	fs.StringVar(&cfg.TableName, "name", cfg.TableName, "demo table name")
	fs.IntVar(&cfg.Guests, "guests", cfg.Guests, "number of guest members that request a seat")
	fs.IntVar(&cfg.Approvals, "approvals", cfg.Approvals, "number of guests the admin approves")
	fs.StringVar(&cfg.Preset, "preset", cfg.Preset, "board preset (standard) or empty for a random board")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose output")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes the seed command against the configured database.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	return seed.Run(ctx, seed.Config{
		DBPath:    cfg.DBPath,
		TableName: cfg.TableName,
		Guests:    cfg.Guests,
		Approvals: cfg.Approvals,
		Preset:    cfg.Preset,
		Verbose:   cfg.Verbose,
	}, out)
}
