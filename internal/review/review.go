// Package review builds the two-up comparison view from the persisted
// snapshot and writes the user's edits back to the store.
package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/shopcfg/internal/logger"
	"github.com/mark3labs/shopcfg/internal/store"
)

// DefaultLimit is the number of options compared per category. The review
// screen is a side-by-side comparison; further options are never shown.
const DefaultLimit = 2

// ErrNoSelection is returned by Change while the view is in its empty state.
var ErrNoSelection = errors.New("no selection loaded")

// ErrUnknownChoice is returned by Change for a value the view does not show.
var ErrUnknownChoice = errors.New("choice not shown")

// Choice is one rendered radio input.
type Choice struct {
	Value   string
	Title   string
	Image   string
	Checked bool
}

// Section is the comparison for one category. Key is the rendered key
// attribute used to route change events back to the category.
type Section struct {
	Key     string
	Title   string
	Choices []Choice
}

// View is the rendered review screen.
type View struct {
	Empty    bool
	Sections []Section
}

// Store is the part of store.Store the synchronizer needs.
type Store interface {
	Load(ctx context.Context) []store.Category
	Update(ctx context.Context, categoryKey, value string) error
}

// Synchronizer keeps the review view and the store in step.
type Synchronizer struct {
	store Store
	limit int
	view  View
	log   *logger.Logger
}

// New returns a synchronizer showing at most limit options per category.
// A limit below one selects DefaultLimit.
func New(s Store, limit int) *Synchronizer {
	if limit < 1 {
		limit = DefaultLimit
	}
	return &Synchronizer{store: s, limit: limit, view: View{Empty: true}, log: logger.With("review")}
}

// Limit returns the per-category option limit.
func (s *Synchronizer) Limit() int { return s.limit }

// Render loads the snapshot and rebuilds the view.
func (s *Synchronizer) Render(ctx context.Context) View {
	cats := s.store.Load(ctx)
	s.view = Build(cats, s.limit)
	if s.view.Empty {
		s.log.Info("no selection found, rendering fallback")
	}
	return s.view
}

// View returns the last rendered view.
func (s *Synchronizer) View() View { return s.view }

// Change routes a radio change in section key to the store and updates the
// checked state of the view.
func (s *Synchronizer) Change(ctx context.Context, key, value string) error {
	if s.view.Empty {
		return ErrNoSelection
	}
	sec := s.section(key)
	if sec == nil {
		// Same policy as the store: unknown categories are ignored
		s.log.Warn("change for unknown section %q", key)
		return nil
	}
	shown := false
	for _, c := range sec.Choices {
		if c.Value == value {
			shown = true
		}
	}
	if !shown {
		return fmt.Errorf("%w: %s=%s", ErrUnknownChoice, key, value)
	}
	if err := s.store.Update(ctx, key, value); err != nil {
		return fmt.Errorf("updating %s: %w", key, err)
	}
	for i := range sec.Choices {
		sec.Choices[i].Checked = sec.Choices[i].Value == value
	}
	return nil
}

func (s *Synchronizer) section(key string) *Section {
	for i := range s.view.Sections {
		if s.view.Sections[i].Key == key {
			return &s.view.Sections[i]
		}
	}
	return nil
}

// Build renders categories into a view, keeping the first limit options of
// each category. An empty sequence yields the empty view.
func Build(cats []store.Category, limit int) View {
	if len(cats) == 0 {
		return View{Empty: true}
	}
	v := View{Sections: make([]Section, 0, len(cats))}
	for _, c := range cats {
		selected, hasSelection := c.Selected()
		sec := Section{Key: c.Key, Title: c.Title}
		for i, o := range c.Options {
			if i == limit {
				break
			}
			sec.Choices = append(sec.Choices, Choice{
				Value:   o.Value,
				Title:   o.Title,
				Image:   o.Image,
				Checked: hasSelection && o.Value == selected,
			})
		}
		v.Sections = append(v.Sections, sec)
	}
	return v
}
