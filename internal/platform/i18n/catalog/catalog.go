// Package catalog loads embedded locale message catalogs.
//
// Catalogs are YAML documents keyed by locale and namespace. The directory
// and file name must agree with the document so a stray copy-paste cannot
// register messages under the wrong locale.
package catalog

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the canonical source locale for catalogs.
const BaseLocale = "en-US"

// catalogFile mirrors one on-disk locale document.
type catalogFile struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

// LocaleCatalog stores all messages for one locale, grouped by namespace.
type LocaleCatalog struct {
	Locale     string
	Namespaces map[string]map[string]string
	Messages   map[string]string
}

// Bundle contains all locale catalogs loaded from disk.
type Bundle struct {
	locales map[string]*LocaleCatalog
}

//go:embed locales/*/*.yaml
var embeddedCatalogFS embed.FS

var defaultBundle = mustLoadAndRegisterEmbedded()

// Default returns the process-wide embedded catalog bundle.
func Default() *Bundle {
	return defaultBundle
}

// LoadEmbedded loads catalog files embedded in this package.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embeddedCatalogFS)
}

// LoadFromFS loads catalog files from the provided filesystem.
func LoadFromFS(catalogFS fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(catalogFS, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	bundle := &Bundle{locales: map[string]*LocaleCatalog{}}
	for _, filePath := range paths {
		if err := bundle.loadFile(catalogFS, filePath); err != nil {
			return nil, err
		}
	}

	if !bundle.HasLocale(BaseLocale) {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	return bundle, nil
}

func (b *Bundle) loadFile(catalogFS fs.FS, filePath string) error {
	data, err := fs.ReadFile(catalogFS, filePath)
	if err != nil {
		return fmt.Errorf("read catalog %s: %w", filePath, err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	var file catalogFile
	if err := decoder.Decode(&file); err != nil {
		return fmt.Errorf("parse catalog %s: %w", filePath, err)
	}

	return b.merge(filePath, file)
}

// merge validates the parsed file against its path and folds its messages
// into the bundle. Message keys must be unique across every namespace of a
// locale because error codes resolve without a namespace qualifier.
func (b *Bundle) merge(filePath string, file catalogFile) error {
	locale := strings.TrimSpace(file.Locale)
	namespace := strings.TrimSpace(file.Namespace)
	pathLocale := path.Base(path.Dir(filePath))
	pathNamespace := trimExt(path.Base(filePath))

	switch {
	case locale == "":
		return fmt.Errorf("catalog %s: locale is required", filePath)
	case locale != pathLocale:
		return fmt.Errorf("catalog %s: locale %q must match path locale %q", filePath, locale, pathLocale)
	case namespace == "":
		return fmt.Errorf("catalog %s: namespace is required", filePath)
	case namespace != pathNamespace:
		return fmt.Errorf("catalog %s: namespace %q must match filename namespace %q", filePath, namespace, pathNamespace)
	case len(file.Messages) == 0:
		return fmt.Errorf("catalog %s: messages map is required", filePath)
	}

	localeCatalog := b.locales[locale]
	if localeCatalog == nil {
		localeCatalog = &LocaleCatalog{
			Locale:     locale,
			Namespaces: map[string]map[string]string{},
			Messages:   map[string]string{},
		}
		b.locales[locale] = localeCatalog
	}
	if _, exists := localeCatalog.Namespaces[namespace]; exists {
		return fmt.Errorf("catalog %s: namespace %q already defined for locale %q", filePath, namespace, locale)
	}

	namespaceMessages := make(map[string]string, len(file.Messages))
	for key, value := range file.Messages {
		trimmedKey := strings.TrimSpace(key)
		if trimmedKey == "" {
			return fmt.Errorf("catalog %s: message key cannot be blank", filePath)
		}
		if _, exists := localeCatalog.Messages[trimmedKey]; exists {
			return fmt.Errorf("catalog %s: duplicate key %q in locale %q", filePath, trimmedKey, locale)
		}
		localeCatalog.Messages[trimmedKey] = value
		namespaceMessages[trimmedKey] = value
	}

	localeCatalog.Namespaces[namespace] = namespaceMessages
	return nil
}

// Register registers all catalog messages with x/text/message.
func (b *Bundle) Register() error {
	if b == nil {
		return nil
	}
	for _, locale := range b.Locales() {
		tags, err := registrationTags(locale)
		if err != nil {
			return err
		}
		messages := b.LocaleMessages(locale)
		keys := make([]string, 0, len(messages))
		for key := range messages {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			for _, tag := range tags {
				message.SetString(tag, key, messages[key])
			}
		}
	}
	return nil
}

// registrationTags returns the exact locale tag plus its base language, so a
// request for "pt" resolves messages registered under "pt-BR".
func registrationTags(locale string) ([]language.Tag, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale tag %q: %w", locale, err)
	}
	tags := []language.Tag{tag}
	if base, _ := tag.Base(); base.String() != "" && base.String() != "und" {
		if baseTag, err := language.Parse(base.String()); err == nil && baseTag.String() != tag.String() {
			tags = append(tags, baseTag)
		}
	}
	return tags, nil
}

// lookup resolves a trimmed locale to its catalog, nil when absent.
func (b *Bundle) lookup(locale string) *LocaleCatalog {
	if b == nil {
		return nil
	}
	return b.locales[strings.TrimSpace(locale)]
}

// HasLocale reports whether the locale exists in this bundle.
func (b *Bundle) HasLocale(locale string) bool {
	return b.lookup(locale) != nil
}

// Locales returns all available locale identifiers.
func (b *Bundle) Locales() []string {
	if b == nil {
		return nil
	}
	out := make([]string, 0, len(b.locales))
	for locale := range b.locales {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// LocaleMessages returns an exact locale message map copy.
func (b *Bundle) LocaleMessages(locale string) map[string]string {
	localeCatalog := b.lookup(locale)
	if localeCatalog == nil {
		return map[string]string{}
	}
	return copyMap(localeCatalog.Messages)
}

// NamespaceMessages returns an exact namespace message map copy for a locale.
func (b *Bundle) NamespaceMessages(locale string, namespace string) map[string]string {
	localeCatalog := b.lookup(locale)
	if localeCatalog == nil {
		return map[string]string{}
	}
	messages, ok := localeCatalog.Namespaces[strings.TrimSpace(namespace)]
	if !ok {
		return map[string]string{}
	}
	return copyMap(messages)
}

// NamespaceMessagesWithFallback returns namespace messages and the locale that
// satisfied the lookup. Unknown locales resolve through language matching
// before falling back to the base locale.
func (b *Bundle) NamespaceMessagesWithFallback(locale string, namespace string) (string, map[string]string) {
	trimmedLocale := strings.TrimSpace(locale)
	trimmedNamespace := strings.TrimSpace(namespace)
	if messages := b.NamespaceMessages(trimmedLocale, trimmedNamespace); len(messages) > 0 {
		return trimmedLocale, messages
	}
	if matched := b.matchLocale(trimmedLocale); matched != "" {
		if messages := b.NamespaceMessages(matched, trimmedNamespace); len(messages) > 0 {
			return matched, messages
		}
	}
	return BaseLocale, b.NamespaceMessages(BaseLocale, trimmedNamespace)
}

// matchLocale resolves a requested locale to a bundle locale using x/text matching.
func (b *Bundle) matchLocale(locale string) string {
	if b == nil || strings.TrimSpace(locale) == "" {
		return ""
	}
	requested, err := language.Parse(locale)
	if err != nil {
		return ""
	}
	locales := b.Locales()
	tags := make([]language.Tag, 0, len(locales))
	for _, candidate := range locales {
		tag, err := language.Parse(candidate)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
	}
	if len(tags) == 0 {
		return ""
	}
	matcher := language.NewMatcher(tags)
	_, index, confidence := matcher.Match(requested)
	if confidence == language.No {
		return ""
	}
	return locales[index]
}

func trimExt(name string) string {
	return strings.TrimSuffix(name, path.Ext(name))
}

func copyMap(source map[string]string) map[string]string {
	out := make(map[string]string, len(source))
	for key, value := range source {
		out[key] = value
	}
	return out
}

func mustLoadAndRegisterEmbedded() *Bundle {
	bundle, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	if err := bundle.Register(); err != nil {
		panic(err)
	}
	return bundle
}
