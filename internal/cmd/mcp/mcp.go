// Package mcp parses MCP command flags and starts the stdio tool server.
package mcp

import (
	"context"
	"flag"

	mcpserver "github.com/louisbranch/hextable/internal/mcp"
	entrypoint "github.com/louisbranch/hextable/internal/platform/cmd"
	"github.com/louisbranch/hextable/internal/storage/sqlite"
	tableservice "github.com/louisbranch/hextable/internal/table/service"
)

// Config holds MCP command configuration.
type Config struct {
	DBPath string `env:"HEXTABLE_DB_PATH" envDefault:"hextable.db"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the SQLite database")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP server on stdio.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		tables, err := tableservice.NewTableService(tableservice.Stores{Tables: store, Seats: store})
		if err != nil {
			return err
		}
		server, err := mcpserver.NewServer(mcpserver.Config{Tables: tables})
		if err != nil {
			return err
		}
		return server.Serve(ctx)
	})
}
