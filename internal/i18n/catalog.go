// Package i18n loads the embedded string catalogs and resolves display
// strings for a locale.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the locale every catalog key must exist in.
const BaseLocale = "en-US"

type catalogFile struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

//go:embed locales/*/*.yaml
var embeddedFS embed.FS

// Bundle holds the messages of every loaded locale.
type Bundle struct {
	locales map[string]map[string]string
	tags    []language.Tag // BaseLocale first
	names   []string       // parallel to tags
	matcher language.Matcher
	cat     *catalog.Builder
}

// LoadEmbedded loads the catalogs compiled into the binary.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embeddedFS)
}

// LoadFromFS loads locales/<locale>/<namespace>.yaml files from fsys.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	b := &Bundle{locales: map[string]map[string]string{}}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		if err := b.addFile(p, file); err != nil {
			return nil, err
		}
	}

	if _, ok := b.locales[BaseLocale]; !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	if err := b.build(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Bundle) addFile(p string, file catalogFile) error {
	localeFromPath := path.Base(path.Dir(p))
	namespaceFromPath := strings.TrimSuffix(path.Base(p), path.Ext(p))

	locale := strings.TrimSpace(file.Locale)
	if locale == "" {
		return fmt.Errorf("catalog %s: locale is required", p)
	}
	if locale != localeFromPath {
		return fmt.Errorf("catalog %s: locale %q must match path locale %q", p, locale, localeFromPath)
	}
	if ns := strings.TrimSpace(file.Namespace); ns != namespaceFromPath {
		return fmt.Errorf("catalog %s: namespace %q must match filename namespace %q", p, ns, namespaceFromPath)
	}
	if file.Messages == nil {
		return fmt.Errorf("catalog %s: messages map is required", p)
	}

	messages, ok := b.locales[locale]
	if !ok {
		messages = map[string]string{}
		b.locales[locale] = messages
	}
	for key, value := range file.Messages {
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("catalog %s: message key cannot be blank", p)
		}
		if _, exists := messages[key]; exists {
			return fmt.Errorf("catalog %s: duplicate key %q in locale %q", p, key, locale)
		}
		messages[key] = value
	}
	return nil
}

// build registers every message with an x/text catalog and prepares the
// locale matcher.
func (b *Bundle) build() error {
	names := []string{BaseLocale}
	for _, locale := range b.Locales() {
		if locale != BaseLocale {
			names = append(names, locale)
		}
	}

	b.cat = catalog.NewBuilder(catalog.Fallback(language.MustParse(BaseLocale)))
	for _, name := range names {
		tag, err := language.Parse(name)
		if err != nil {
			return fmt.Errorf("parse locale tag %q: %w", name, err)
		}
		b.tags = append(b.tags, tag)
		b.names = append(b.names, name)

		for key, msg := range b.locales[name] {
			if err := b.cat.SetString(tag, key, msg); err != nil {
				return fmt.Errorf("register %s/%s: %w", name, key, err)
			}
		}
	}
	b.matcher = language.NewMatcher(b.tags)
	return nil
}

// Locales returns the loaded locale identifiers, sorted.
func (b *Bundle) Locales() []string {
	out := make([]string, 0, len(b.locales))
	for locale := range b.locales {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Match returns the loaded locale that best fits the requested one,
// falling back to BaseLocale.
func (b *Bundle) Match(locale string) string {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return BaseLocale
	}
	_, idx, conf := b.matcher.Match(tag)
	if conf == language.No {
		return BaseLocale
	}
	return b.names[idx]
}
