package id_test

import (
	"encoding/base32"
	"strings"
	"testing"

	"github.com/louisbranch/hextable/internal/platform/id"
)

func decodeID(t *testing.T, value string) []byte {
	t.Helper()
	raw, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(strings.ToUpper(value))
	if err != nil {
		t.Fatalf("decode id %q: %v", value, err)
	}
	return raw
}

func TestNewIDShape(t *testing.T) {
	value, err := id.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if len(value) != 26 {
		t.Fatalf("expected 26 characters, got %d (%q)", len(value), value)
	}
	if value != strings.ToLower(value) {
		t.Fatalf("expected lowercase id, got %q", value)
	}
	if strings.ContainsRune(value, '=') {
		t.Fatalf("expected no padding, got %q", value)
	}

	raw := decodeID(t, value)
	if len(raw) != 16 {
		t.Fatalf("expected 16 decoded bytes, got %d", len(raw))
	}
	if version := raw[6] >> 4; version != 4 {
		t.Fatalf("expected UUID version 4, got %d", version)
	}
	if variant := raw[8] & 0xc0; variant != 0x80 {
		t.Fatalf("expected UUID variant bits 10, got %08b", raw[8])
	}
}

func TestNewIDIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		value, err := id.NewID()
		if err != nil {
			t.Fatalf("new id: %v", err)
		}
		if seen[value] {
			t.Fatalf("duplicate id %q after %d draws", value, i)
		}
		seen[value] = true
	}
}
