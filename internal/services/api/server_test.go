package api

import (
	"context"
	"testing"
	"time"
)

// TestListenAndServeNilServer verifies nil server returns an error.
func TestListenAndServeNilServer(t *testing.T) {
	var s *Server
	if err := s.ListenAndServe(context.Background()); err == nil {
		t.Fatal("expected error for nil server")
	}
}

// TestNewServerRequiresHTTPAddr ensures a blank HTTP address fails fast.
func TestNewServerRequiresHTTPAddr(t *testing.T) {
	if _, err := NewServer(context.Background(), Config{Tables: &tableServiceStub{}}); err == nil {
		t.Fatal("expected error for empty HTTP address")
	}
}

// TestNewServerRequiresTableService ensures the handler dependency is checked.
func TestNewServerRequiresTableService(t *testing.T) {
	if _, err := NewServer(context.Background(), Config{HTTPAddr: "127.0.0.1:0"}); err == nil {
		t.Fatal("expected error for missing table service")
	}
}

// TestListenAndServeStopsOnCancel verifies the server exits on context cancel.
func TestListenAndServeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server, err := NewServer(ctx, Config{HTTPAddr: "127.0.0.1:0", Tables: &tableServiceStub{}})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	defer server.Close()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe(ctx)
	}()

	time.Sleep(25 * time.Millisecond)
	cancel()

	select {
	case err := <-serveErr:
		if err != nil {
			t.Fatalf("serve returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop on cancel")
	}
}

// TestCloseNilSafe verifies Close tolerates a nil receiver.
func TestCloseNilSafe(t *testing.T) {
	var s *Server
	s.Close()
}
