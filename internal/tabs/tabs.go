// Package tabs implements the tab list state machine: exactly one tab/panel
// pair is active, keyboard navigation wraps around, and every transition is
// mirrored into the surface's ARIA attributes.
package tabs

import (
	"github.com/mark3labs/shopcfg/internal/logger"
	"github.com/mark3labs/shopcfg/internal/shuffle"
	"github.com/mark3labs/shopcfg/internal/surface"
)

var log = logger.With("tabs")

// State of a single pair.
type State int

const (
	Inactive State = iota
	Active
)

func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "inactive"
}

// Event is an input to the controller.
type Event interface{ isEvent() }

// Activate selects the pair whose panel has the given id (pointer click).
type Activate struct{ PanelID string }

// Next, Previous, First and Last navigate over the displayed order.
type (
	Next     struct{}
	Previous struct{}
	First    struct{}
	Last     struct{}
)

func (Activate) isEvent() {}
func (Next) isEvent()     {}
func (Previous) isEvent() {}
func (First) isEvent()    {}
func (Last) isEvent()     {}

// Pair associates a tab with the panel it controls.
type Pair struct {
	Tab   *surface.Tab
	Panel *surface.Panel
}

// Controller owns the pairs of one document.
type Controller struct {
	doc    *surface.Document
	pairs  []Pair
	states []State
	active int
}

// New pairs every tab with its panel, shuffles the pairs, rewrites the
// document's tab and panel order to match, and activates the first pair.
// The options of every panel are shuffled independently. Tabs whose panel is
// missing are dropped from the document.
func New(doc *surface.Document, s *shuffle.Shuffler) *Controller {
	c := &Controller{doc: doc, active: -1}
	for _, t := range doc.Tabs {
		p := doc.PanelByID(t.Controls())
		if p == nil {
			log.Warn("tab %s controls missing panel %q, skipping", t.ID, t.Controls())
			continue
		}
		c.pairs = append(c.pairs, Pair{Tab: t, Panel: p})
	}

	shuffle.Shuffle(s, c.pairs)

	doc.Tabs = doc.Tabs[:0]
	panels := make([]*surface.Panel, 0, len(doc.Panels))
	paired := make(map[*surface.Panel]bool, len(c.pairs))
	for _, p := range c.pairs {
		doc.Tabs = append(doc.Tabs, p.Tab)
		panels = append(panels, p.Panel)
		paired[p.Panel] = true
	}
	// Panels without a tab keep their relative order at the end
	for _, p := range doc.Panels {
		if !paired[p] {
			panels = append(panels, p)
		}
	}
	doc.Panels = panels
	for _, p := range doc.Panels {
		p.ReorderOptions(s.Perm(len(p.Options)))
	}

	c.states = make([]State, len(c.pairs))
	if len(c.pairs) > 0 {
		c.activate(0, false)
	}
	return c
}

// Pairs returns the pairs in displayed order.
func (c *Controller) Pairs() []Pair { return c.pairs }

// Len returns the number of pairs.
func (c *Controller) Len() int { return len(c.pairs) }

// ActiveIndex returns the displayed index of the active pair, or -1 when
// there are no pairs.
func (c *Controller) ActiveIndex() int { return c.active }

// Active returns the active pair. ok is false when there are no pairs.
func (c *Controller) Active() (Pair, bool) {
	if c.active < 0 {
		return Pair{}, false
	}
	return c.pairs[c.active], true
}

// StateOf returns the state of the pair at displayed index i.
func (c *Controller) StateOf(i int) State { return c.states[i] }

// Dispatch applies an event. It returns false for events that do not resolve
// to a pair (unknown panel id, empty tab list).
func (c *Controller) Dispatch(ev Event) bool {
	n := len(c.pairs)
	if n == 0 {
		return false
	}
	switch ev := ev.(type) {
	case Activate:
		for i, p := range c.pairs {
			if p.Panel.ID == ev.PanelID {
				c.activate(i, true)
				return true
			}
		}
		log.Debug("activate: unknown panel %q", ev.PanelID)
		return false
	case Next:
		c.activate((c.active+1)%n, true)
	case Previous:
		c.activate((c.active-1+n)%n, true)
	case First:
		c.activate(0, true)
	case Last:
		c.activate(n-1, true)
	default:
		return false
	}
	return true
}

// Key maps a key name to a navigation event and dispatches it. It reports
// whether the key was consumed; consumed keys must not reach scrolling
// handlers.
func (c *Controller) Key(key string) bool {
	var ev Event
	switch key {
	case "right":
		ev = Next{}
	case "left":
		ev = Previous{}
	case "home":
		ev = First{}
	case "end":
		ev = Last{}
	default:
		return false
	}
	c.Dispatch(ev)
	return true
}

// activate makes pair i the only active pair and mirrors the state into the
// surface.
func (c *Controller) activate(i int, focus bool) {
	for j, p := range c.pairs {
		on := j == i
		if on {
			c.states[j] = Active
		} else {
			c.states[j] = Inactive
		}
		p.Tab.SetBoolAttr(surface.AttrSelected, on)
		if on {
			p.Tab.SetAttr(surface.AttrTabIndex, "0")
		} else {
			p.Tab.SetAttr(surface.AttrTabIndex, "-1")
		}
		p.Panel.SetBoolAttr(surface.AttrHidden, !on)
	}
	c.active = i
	if focus {
		c.doc.Focus(c.pairs[i].Tab.ID)
	}
}
