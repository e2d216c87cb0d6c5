package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

//go:embed catalogs/*.json
var catalogFS embed.FS

const FallbackLocale = "en"

// Catalog holds the message tables for every supported locale. Missing keys
// in a locale are filled from the fallback table.
type Catalog struct {
	tags     []language.Tag
	messages map[string]map[string]string
	matcher  language.Matcher
	fallback string
}

func Load() (*Catalog, error) {
	entries, err := catalogFS.ReadDir("catalogs")
	if err != nil {
		return nil, err
	}
	raw := map[string]map[string]string{}
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".json" {
			continue
		}
		locale := strings.TrimSuffix(e.Name(), ".json")
		if _, err := language.Parse(locale); err != nil {
			return nil, fmt.Errorf("catalog %s: %w", e.Name(), err)
		}
		b, err := catalogFS.ReadFile("catalogs/" + e.Name())
		if err != nil {
			return nil, err
		}
		var m map[string]string
		if err := json.Unmarshal(b, &m); err != nil {
			return nil, fmt.Errorf("catalog %s: %w", e.Name(), err)
		}
		raw[locale] = m
	}
	return newCatalog(raw, FallbackLocale)
}

func newCatalog(raw map[string]map[string]string, fallback string) (*Catalog, error) {
	base, ok := raw[fallback]
	if !ok {
		return nil, fmt.Errorf("fallback locale %q has no catalog", fallback)
	}
	locales := make([]string, 0, len(raw))
	for l := range raw {
		if l != fallback {
			locales = append(locales, l)
		}
	}
	sort.Strings(locales)
	// The matcher's first tag is its default.
	locales = append([]string{fallback}, locales...)

	c := &Catalog{messages: map[string]map[string]string{}, fallback: fallback}
	for _, l := range locales {
		merged := make(map[string]string, len(base))
		for k, v := range base {
			merged[k] = v
		}
		for k, v := range raw[l] {
			merged[k] = v
		}
		c.messages[l] = merged
		c.tags = append(c.tags, language.MustParse(l))
	}
	c.matcher = language.NewMatcher(c.tags)
	return c, nil
}

// Resolve maps a requested locale or Accept-Language value to a supported locale.
func (c *Catalog) Resolve(requested string) string {
	requested = strings.TrimSpace(requested)
	if requested == "" {
		return c.fallback
	}
	tags, _, err := language.ParseAcceptLanguage(requested)
	if err != nil || len(tags) == 0 {
		return c.fallback
	}
	_, idx, conf := c.matcher.Match(tags...)
	if conf == language.No {
		return c.fallback
	}
	base, _ := c.tags[idx].Base()
	return base.String()
}

// LoadMessages returns a copy of the table for locale, falling back to en.
func (c *Catalog) LoadMessages(locale string) (string, map[string]string) {
	resolved := c.Resolve(locale)
	src := c.messages[resolved]
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return resolved, out
}

func (c *Catalog) Locales() []string {
	out := make([]string, 0, len(c.tags))
	for _, t := range c.tags {
		out = append(out, t.String())
	}
	return out
}
