// Package api parses API command flags and starts the HTTP service.
package api

import (
	"context"
	"flag"
	"fmt"
	"time"

	entrypoint "github.com/louisbranch/hextable/internal/platform/cmd"
	"github.com/louisbranch/hextable/internal/services/api"
	"github.com/louisbranch/hextable/internal/storage/sqlite"
	"github.com/louisbranch/hextable/internal/table/invite"
	tableservice "github.com/louisbranch/hextable/internal/table/service"
)

// Config holds API command configuration.
type Config struct {
	HTTPAddr string `env:"HEXTABLE_API_ADDR" envDefault:"localhost:8080"`
	DBPath   string `env:"HEXTABLE_DB_PATH"  envDefault:"hextable.db"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the SQLite database")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the table API service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceAPI, func(ctx context.Context) error {
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		tables, err := tableservice.NewTableService(tableservice.Stores{Tables: store, Seats: store})
		if err != nil {
			return err
		}
		granter, err := invite.GranterFromEnv(time.Now)
		if err != nil {
			return fmt.Errorf("configure join grants: %w", err)
		}

		server, err := api.NewServer(ctx, api.Config{
			HTTPAddr: cfg.HTTPAddr,
			Tables:   tables,
			Granter:  granter,
		})
		if err != nil {
			return err
		}
		return server.ListenAndServe(ctx)
	})
}
