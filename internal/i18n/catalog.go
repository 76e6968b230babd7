// Package i18n loads embedded locale catalogs and renders localized
// messages. It supplies the Translator collaborator for the datatype
// registry's validation messages.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the canonical source locale; all other locales fall back
// to it for missing keys.
const BaseLocale = "en-US"

//go:embed locales/*/*.yaml
var embeddedFS embed.FS

// catalogFile mirrors the YAML structure of one locale file.
type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Catalog holds message templates per locale, registered with
// x/text/message for rendering.
type Catalog struct {
	locales map[string]map[string]string
}

var defaultCatalog = mustLoadEmbedded()

// Default returns the process-wide catalog built from the embedded locale
// files.
func Default() *Catalog {
	return defaultCatalog
}

func mustLoadEmbedded() *Catalog {
	c, err := LoadFromFS(embeddedFS)
	if err != nil {
		panic(fmt.Sprintf("i18n: loading embedded catalogs: %v", err))
	}
	return c
}

// LoadFromFS loads locale catalogs from locales/<locale>/*.yaml in the
// given filesystem and registers every message with x/text/message.
// The base locale must be present.
func LoadFromFS(catalogFS fs.FS) (*Catalog, error) {
	paths, err := fs.Glob(catalogFS, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	c := &Catalog{locales: map[string]map[string]string{}}
	for _, path := range paths {
		data, err := fs.ReadFile(catalogFS, path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
		if err := c.addFile(path, file); err != nil {
			return nil, err
		}
	}

	if !c.HasLocale(BaseLocale) {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	if err := c.register(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) addFile(path string, file catalogFile) error {
	locale := strings.TrimSpace(file.Locale)
	if locale == "" {
		return fmt.Errorf("catalog %s: locale is required", path)
	}
	if file.Messages == nil {
		return fmt.Errorf("catalog %s: messages map is required", path)
	}

	messages, ok := c.locales[locale]
	if !ok {
		messages = map[string]string{}
		c.locales[locale] = messages
	}
	for key, value := range file.Messages {
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("catalog %s: message key cannot be blank", path)
		}
		if _, exists := messages[key]; exists {
			return fmt.Errorf("catalog %s: duplicate key %q in locale %q", path, key, locale)
		}
		messages[key] = value
	}
	return nil
}

// register pushes all templates into the x/text message catalog so
// message.NewPrinter can render them per language tag.
func (c *Catalog) register() error {
	for _, locale := range c.Locales() {
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("parse locale tag %q: %w", locale, err)
		}
		messages := c.locales[locale]
		keys := make([]string, 0, len(messages))
		for key := range messages {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if err := message.SetString(tag, key, messages[key]); err != nil {
				return fmt.Errorf("register %s/%s: %w", locale, key, err)
			}
		}
	}
	return nil
}

// HasLocale reports whether the locale exists in this catalog.
func (c *Catalog) HasLocale(locale string) bool {
	_, ok := c.locales[strings.TrimSpace(locale)]
	return ok
}

// Locales returns all available locale identifiers in sorted order.
func (c *Catalog) Locales() []string {
	out := make([]string, 0, len(c.locales))
	for locale := range c.locales {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// GetText renders the template for key in the given locale with args
// interpolated. Unknown locales, and locales missing the key, fall back to
// the base locale. If the key is absent everywhere the key itself is
// returned, so a missing template never hides the failure it describes.
func (c *Catalog) GetText(locale, key string, args ...any) string {
	loc := strings.TrimSpace(locale)
	if _, ok := c.locales[loc]; !ok {
		loc = BaseLocale
	}
	if _, ok := c.locales[loc][key]; !ok {
		loc = BaseLocale
		if _, ok := c.locales[loc][key]; !ok {
			return key
		}
	}
	tag, err := language.Parse(loc)
	if err != nil {
		tag = language.AmericanEnglish
	}
	return message.NewPrinter(tag).Sprintf(key, args...)
}
