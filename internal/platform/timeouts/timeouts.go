// Package timeouts centralizes the timeout values services share, so the
// bound on one side of a call does not silently drift from the other.
package timeouts

import "time"

// ReadHeader limits how long the HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long a server waits for in-flight work during
// graceful shutdown.
const Shutdown = 5 * time.Second

// MCPTool bounds a single MCP tool call, covering every store operation
// the call performs.
const MCPTool = 5 * time.Second
