// Package store holds the canonical selection snapshot: the ordered list of
// categories with their options and chosen values, persisted across the
// selection and review screens.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/shopcfg/internal/logger"
	"github.com/mark3labs/shopcfg/internal/surface"
)

// SchemaVersion tags persisted snapshots. Payloads with any other version
// are treated as absent.
const SchemaVersion = 1

// DefaultKey is the well-known key snapshots are stored under.
const DefaultKey = "upbSelections"

// ErrUnknownOption is returned by Update when the value does not belong to
// the category.
var ErrUnknownOption = errors.New("unknown option value")

var errMalformed = errors.New("malformed snapshot")

// Option is one selectable product variant within a category.
type Option struct {
	Value string `json:"value"`
	Title string `json:"title"`
	Image string `json:"img"`
}

// Category is one configuration axis with its chosen value. SelectedValue is
// nil when nothing has been chosen.
type Category struct {
	Key           string   `json:"categoryKey"`
	Title         string   `json:"categoryTitle"`
	Options       []Option `json:"options"`
	SelectedValue *string  `json:"selectedValue"`
}

// Selected returns the chosen value and whether one is set.
func (c Category) Selected() (string, bool) {
	if c.SelectedValue == nil {
		return "", false
	}
	return *c.SelectedValue, true
}

// HasOption reports whether value is one of the category's options.
func (c Category) HasOption(value string) bool {
	for _, o := range c.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// Resolved reports whether the selected value is set and valid.
func (c Category) Resolved() bool {
	v, ok := c.Selected()
	return ok && c.HasOption(v)
}

func (c Category) clone() Category {
	out := c
	out.Options = append([]Option(nil), c.Options...)
	if c.SelectedValue != nil {
		v := *c.SelectedValue
		out.SelectedValue = &v
	}
	return out
}

func cloneAll(cats []Category) []Category {
	if cats == nil {
		return nil
	}
	out := make([]Category, len(cats))
	for i, c := range cats {
		out[i] = c.clone()
	}
	return out
}

// Snapshot is the persisted envelope.
type Snapshot struct {
	Version    int        `json:"version"`
	ID         string     `json:"id"`
	CreatedAt  time.Time  `json:"createdAt"`
	Categories []Category `json:"categories"`
}

// Store reads and writes the snapshot under one key of a Backend. It keeps
// the last loaded sequence in memory; Update mutates that copy and writes it
// back whole.
type Store struct {
	backend Backend
	key     string
	current *Snapshot
	log     *logger.Logger
	now     func() time.Time
}

// New returns a store persisting under key. An empty key selects DefaultKey.
func New(backend Backend, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{
		backend: backend,
		key:     key,
		log:     logger.With("store"),
		now:     time.Now,
	}
}

// Key returns the storage key.
func (s *Store) Key() string { return s.key }

// CategoryTitle resolves a panel's display title from the tab controlling
// it. Without a tab the structural panel prefix is stripped from the id.
func CategoryTitle(doc *surface.Document, panelID string) string {
	if tab := doc.TabFor(panelID); tab != nil {
		return strings.TrimSpace(tab.Label)
	}
	return strings.TrimPrefix(panelID, surface.PanelPrefix)
}

// Collect serializes the live selection screen into categories, in panel
// display order, and overwrites the persisted snapshot with them.
func (s *Store) Collect(ctx context.Context, doc *surface.Document) ([]Category, error) {
	cats := make([]Category, 0, len(doc.Panels))
	for _, p := range doc.Panels {
		cat := Category{
			Key:     p.ID,
			Title:   CategoryTitle(doc, p.ID),
			Options: make([]Option, 0, len(p.Options)),
		}
		for _, o := range p.Options {
			cat.Options = append(cat.Options, Option{Value: o.Value, Title: strings.TrimSpace(o.Title), Image: o.Image})
			if o.Checked && cat.SelectedValue == nil {
				v := o.Value
				cat.SelectedValue = &v
			}
		}
		cats = append(cats, cat)
	}

	snap := &Snapshot{
		Version:    SchemaVersion,
		ID:         uuid.NewString(),
		CreatedAt:  s.now().UTC(),
		Categories: cats,
	}
	if err := s.write(ctx, snap); err != nil {
		return nil, err
	}
	s.current = snap
	s.log.Info("collected %d categories into snapshot %s", len(cats), snap.ID)
	return cloneAll(cats), nil
}

// Load reads the persisted snapshot. Absent, unreadable or malformed data
// yields an empty sequence and never an error.
func (s *Store) Load(ctx context.Context) []Category {
	snap, err := s.read(ctx)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Warn("treating snapshot as absent: %v", err)
		}
		s.current = nil
		return []Category{}
	}
	s.current = snap
	return cloneAll(snap.Categories)
}

// Current returns the in-memory sequence, or nil when nothing has been
// collected or loaded.
func (s *Store) Current() []Category {
	if s.current == nil {
		return nil
	}
	return cloneAll(s.current.Categories)
}

// SnapshotID returns the id of the in-memory snapshot, or "".
func (s *Store) SnapshotID() string {
	if s.current == nil {
		return ""
	}
	return s.current.ID
}

// Update sets the selected value of one category and persists the whole
// sequence. An unknown category key is logged and ignored, leaving the
// persisted bytes untouched.
func (s *Store) Update(ctx context.Context, categoryKey, value string) error {
	if s.current == nil {
		s.Load(ctx)
	}
	if s.current == nil {
		s.log.Warn("update %s: no snapshot loaded", categoryKey)
		return nil
	}

	idx := -1
	for i, c := range s.current.Categories {
		if c.Key == categoryKey {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.log.Warn("update: unknown category %q", categoryKey)
		return nil
	}

	cat := &s.current.Categories[idx]
	if !cat.HasOption(value) {
		return fmt.Errorf("%w: %s=%s", ErrUnknownOption, categoryKey, value)
	}

	prev := cat.SelectedValue
	v := value
	cat.SelectedValue = &v
	if err := s.write(ctx, s.current); err != nil {
		cat.SelectedValue = prev
		return err
	}
	s.log.Debug("updated %s -> %s", categoryKey, value)
	return nil
}

// Clear destroys the persisted snapshot and the in-memory copy.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.backend.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("clearing snapshot: %w", err)
	}
	s.current = nil
	return nil
}

func (s *Store) write(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}
	if err := s.backend.Put(ctx, s.key, data); err != nil {
		return fmt.Errorf("persisting snapshot: %w", err)
	}
	return nil
}

func (s *Store) read(ctx context.Context) (*Snapshot, error) {
	data, err := s.backend.Get(ctx, s.key)
	if err != nil {
		return nil, err
	}
	return decode(data)
}

func decode(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformed, err)
	}
	if snap.Version != SchemaVersion {
		return nil, fmt.Errorf("%w: version %d", errMalformed, snap.Version)
	}
	seen := make(map[string]bool, len(snap.Categories))
	for _, c := range snap.Categories {
		if c.Key == "" {
			return nil, fmt.Errorf("%w: category without key", errMalformed)
		}
		if seen[c.Key] {
			return nil, fmt.Errorf("%w: duplicate category %q", errMalformed, c.Key)
		}
		seen[c.Key] = true
	}
	if snap.Categories == nil {
		snap.Categories = []Category{}
	}
	return &snap, nil
}
