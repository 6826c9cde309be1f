// Package catalog loads the product catalog that populates the selection
// screen and builds a surface.Document from it.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gosimple/slug"
	"github.com/mark3labs/shopcfg/internal/surface"
	"gopkg.in/yaml.v3"
)

// PanelPrefix is prepended to derived category ids.
const PanelPrefix = surface.PanelPrefix

//go:embed default.yml
var defaultCatalog []byte

// ErrInvalid wraps every catalog validation failure.
var ErrInvalid = errors.New("invalid catalog")

// Catalog is the set of categories offered on the selection screen.
type Catalog struct {
	Title      string     `yaml:"title"`
	Categories []Category `yaml:"categories"`
}

// Category is one configuration axis.
type Category struct {
	ID      string   `yaml:"id"`
	Title   string   `yaml:"title"`
	Options []Option `yaml:"options"`
}

// Option is one product variant.
type Option struct {
	Value string `yaml:"value"`
	Title string `yaml:"title"`
	Image string `yaml:"image"`
}

// Default returns the embedded demo catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog file. An empty path selects the embedded catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML catalog data. Categories without an id get
// one derived from their title.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	for i := range c.Categories {
		if c.Categories[i].ID == "" {
			c.Categories[i].ID = PanelPrefix + slug.Make(c.Categories[i].Title)
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks key uniqueness across categories and value uniqueness
// within each category.
func (c *Catalog) Validate() error {
	if len(c.Categories) == 0 {
		return fmt.Errorf("%w: no categories", ErrInvalid)
	}
	ids := make(map[string]bool)
	for _, cat := range c.Categories {
		if cat.ID == "" || cat.ID == PanelPrefix {
			return fmt.Errorf("%w: category %q has no usable id", ErrInvalid, cat.Title)
		}
		if ids[cat.ID] {
			return fmt.Errorf("%w: duplicate category id %q", ErrInvalid, cat.ID)
		}
		ids[cat.ID] = true

		if len(cat.Options) == 0 {
			return fmt.Errorf("%w: category %q has no options", ErrInvalid, cat.ID)
		}
		values := make(map[string]bool)
		for _, opt := range cat.Options {
			if opt.Value == "" {
				return fmt.Errorf("%w: option %q in %q has no value", ErrInvalid, opt.Title, cat.ID)
			}
			if values[opt.Value] {
				return fmt.Errorf("%w: duplicate value %q in %q", ErrInvalid, opt.Value, cat.ID)
			}
			values[opt.Value] = true
		}
	}
	return nil
}

// Build returns a fresh document: one tab and one panel per category, in
// catalog order, nothing checked.
func (c *Catalog) Build() *surface.Document {
	doc := surface.NewDocument()
	for _, cat := range c.Categories {
		tabID := "tab-" + strings.TrimPrefix(cat.ID, PanelPrefix)
		doc.Tabs = append(doc.Tabs, surface.NewTab(tabID, cat.Title, cat.ID))

		panel := surface.NewPanel(cat.ID)
		for _, opt := range cat.Options {
			panel.Options = append(panel.Options, &surface.Option{
				Name:  cat.ID,
				Value: opt.Value,
				Title: opt.Title,
				Image: opt.Image,
			})
		}
		doc.Panels = append(doc.Panels, panel)
	}
	return doc
}
