// Package i18n renders localized user-facing messages for error codes.
package i18n

import (
	"bytes"
	"strings"
	"sync"
	"text/template"

	i18ncatalog "github.com/louisbranch/hextable/internal/platform/i18n/catalog"
)

// Code is a machine-readable error code (duplicated from errors package to avoid cycle).
type Code = string

// entry is one message template, parsed once at catalog construction.
type entry struct {
	raw  string
	tmpl *template.Template
}

// Catalog maps error codes to message templates for a specific locale.
type Catalog struct {
	locale  string
	entries map[Code]entry
}

var (
	catalogsMu sync.RWMutex
	catalogs   = map[string]*Catalog{}
)

// GetCatalog returns the catalog for the given locale. Locales without
// messages resolve through the embedded bundle's fallback chain, so the
// result is never nil.
func GetCatalog(locale string) *Catalog {
	requested := strings.TrimSpace(locale)
	if requested == "" {
		requested = i18ncatalog.BaseLocale
	}

	catalogsMu.RLock()
	cached := catalogs[requested]
	catalogsMu.RUnlock()
	if cached != nil {
		return cached
	}

	resolved, messages := i18ncatalog.Default().NamespaceMessagesWithFallback(requested, "errors")

	catalogsMu.Lock()
	defer catalogsMu.Unlock()
	if existing := catalogs[resolved]; existing != nil {
		return existing
	}
	built := NewCatalog(resolved, messages)
	catalogs[resolved] = built
	return built
}

// RegisterCatalog installs a catalog for the given locale, replacing any
// catalog previously built from the embedded bundle. Primarily for tests.
func RegisterCatalog(locale string, cat *Catalog) {
	catalogsMu.Lock()
	defer catalogsMu.Unlock()
	catalogs[locale] = cat
}

// NewCatalog creates a catalog for locale, parsing each message template once.
func NewCatalog(locale string, messages map[Code]string) *Catalog {
	entries := make(map[Code]entry, len(messages))
	for code, raw := range messages {
		parsed, err := template.New(code).Parse(raw)
		if err != nil {
			entries[code] = entry{raw: raw}
			continue
		}
		entries[code] = entry{raw: raw, tmpl: parsed}
	}
	return &Catalog{locale: locale, entries: entries}
}

// Locale returns the locale of this catalog.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message template for code with the given metadata.
// Unknown codes render as the code itself; templates that failed to parse
// or fail to execute render as their raw text.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	e, ok := c.entries[code]
	if !ok {
		return code
	}
	if e.tmpl == nil {
		return e.raw
	}

	if metadata == nil {
		metadata = map[string]string{}
	}
	var buf bytes.Buffer
	if err := e.tmpl.Execute(&buf, metadata); err != nil {
		return e.raw
	}
	return buf.String()
}
