// Package stamp maps countries to postage stamp themes and formats postmarks.
package stamp

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed stamps.yaml
var stampsYAML []byte

// Theme is the visual treatment of a country's stamp.
type Theme struct {
	Country string   `yaml:"country" json:"country"`
	Color   string   `yaml:"color" json:"color"`
	Hex     string   `yaml:"hex" json:"hex"`
	Pattern string   `yaml:"pattern" json:"pattern"`
	Aliases []string `yaml:"aliases,omitempty" json:"aliases,omitempty"`
}

// Catalog is an immutable country lookup table with a fallback theme.
type Catalog struct {
	fallback Theme
	themes   []Theme
	index    map[string]Theme
}

type catalogFile struct {
	Default Theme   `yaml:"default"`
	Stamps  []Theme `yaml:"stamps"`
}

// Parse builds a catalog from YAML.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse stamp catalog: %w", err)
	}
	if f.Default.Country == "" {
		return nil, fmt.Errorf("parse stamp catalog: missing default theme")
	}

	c := &Catalog{fallback: f.Default, themes: f.Stamps, index: make(map[string]Theme)}
	for _, t := range f.Stamps {
		c.index[normalize(t.Country)] = t
		for _, a := range t.Aliases {
			c.index[normalize(a)] = t
		}
	}
	return c, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded catalog.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(stampsYAML)
		if err != nil {
			panic(err)
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

func normalize(country string) string {
	return strings.ToUpper(strings.Join(strings.Fields(country), " "))
}

// Lookup returns the theme for country, or the fallback theme for unknown names.
func (c *Catalog) Lookup(country string) Theme {
	if t, ok := c.index[normalize(country)]; ok {
		return t
	}
	return c.fallback
}

// IsKnown reports whether country has its own theme.
func (c *Catalog) IsKnown(country string) bool {
	_, ok := c.index[normalize(country)]
	return ok
}

// Themes lists the country themes in catalog order, fallback excluded.
func (c *Catalog) Themes() []Theme {
	return append([]Theme(nil), c.themes...)
}

// Fallback is the theme used for countries without their own stamp.
func (c *Catalog) Fallback() Theme {
	return c.fallback
}

// Lookup resolves country against the embedded catalog.
func Lookup(country string) Theme {
	return Default().Lookup(country)
}

// IsKnown checks country against the embedded catalog.
func IsKnown(country string) bool {
	return Default().IsKnown(country)
}

const fallbackPostmark = "JUL 10"

// DateStampLayout is the stored date stamp format, e.g. "JUL 04, 2025" once upper-cased.
const DateStampLayout = "Jan 02, 2006"

// DateStamp renders t as a stored date stamp.
func DateStamp(t time.Time) string {
	return strings.ToUpper(t.Format(DateStampLayout))
}

var postmarkLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"2 Jan 2006",
	"01/02/2006",
}

// FormatPostmarkDate renders a date stamp as an upper-case "MON DD" postmark.
// Empty input uses now; unparseable input is passed through when it already
// looks like a postmark.
func FormatPostmarkDate(raw string, now time.Time) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return postmark(now)
	}
	for _, layout := range postmarkLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return postmark(t)
		}
	}

	if parts := strings.Fields(raw); len(parts) >= 2 {
		return strings.ToUpper(parts[0] + " " + parts[1])
	}
	if len(raw) <= 8 {
		return strings.ToUpper(raw)
	}
	return fallbackPostmark
}

func postmark(t time.Time) string {
	return strings.ToUpper(t.Format("Jan 02"))
}
