// Package surface models the rendering surface the selection flow drives: tab
// controls, panels of radio options, an advisory indicator and the primary
// action. Front ends render a Document and report user input back to the
// flow; the flow reads attributes from it and writes ARIA and enabled state
// into it.
package surface

import (
	"errors"
	"fmt"
)

// PanelPrefix is the structural prefix of panel ids.
const PanelPrefix = "panel-"

// Attribute names written by the flow.
const (
	AttrControls = "aria-controls"
	AttrSelected = "aria-selected"
	AttrHidden   = "aria-hidden"
	AttrTabIndex = "tabindex"
	AttrDisabled = "disabled"
)

// ErrNoSuchOption is returned when a radio group has no option with the
// requested value.
var ErrNoSuchOption = errors.New("no such option")

// Element is an addressable node with a string attribute bag.
type Element struct {
	ID    string
	attrs map[string]string
}

// NewElement returns an element with the given id.
func NewElement(id string) *Element {
	return &Element{ID: id, attrs: make(map[string]string)}
}

// Attr returns the attribute value, or "" if it is not set.
func (e *Element) Attr(name string) string {
	return e.attrs[name]
}

// HasAttr reports whether the attribute is set.
func (e *Element) HasAttr(name string) bool {
	_, ok := e.attrs[name]
	return ok
}

// SetAttr sets an attribute.
func (e *Element) SetAttr(name, value string) {
	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	e.attrs[name] = value
}

// SetBoolAttr writes "true" or "false".
func (e *Element) SetBoolAttr(name string, v bool) {
	e.SetAttr(name, fmt.Sprint(v))
}

// BoolAttr reports whether the attribute is "true".
func (e *Element) BoolAttr(name string) bool {
	return e.attrs[name] == "true"
}

// RemoveAttr deletes an attribute.
func (e *Element) RemoveAttr(name string) {
	delete(e.attrs, name)
}

// Tab is a tab control. It references its panel through aria-controls.
type Tab struct {
	*Element
	Label string
}

// NewTab returns a tab controlling panelID.
func NewTab(id, label, panelID string) *Tab {
	t := &Tab{Element: NewElement(id), Label: label}
	t.SetAttr(AttrControls, panelID)
	return t
}

// Controls returns the id of the controlled panel.
func (t *Tab) Controls() string { return t.Attr(AttrControls) }

// Selected reports aria-selected.
func (t *Tab) Selected() bool { return t.BoolAttr(AttrSelected) }

// Panel is a tab panel holding one option group.
type Panel struct {
	*Element
	Options []*Option
}

// NewPanel returns an empty panel.
func NewPanel(id string) *Panel {
	return &Panel{Element: NewElement(id)}
}

// Hidden reports aria-hidden.
func (p *Panel) Hidden() bool { return p.BoolAttr(AttrHidden) }

// ReorderOptions rewrites the option display order so that position i shows
// the option previously at perm[i]. A perm of the wrong length is ignored.
func (p *Panel) ReorderOptions(perm []int) {
	if len(perm) != len(p.Options) {
		return
	}
	out := make([]*Option, len(perm))
	for i, j := range perm {
		out[i] = p.Options[j]
	}
	p.Options = out
}

// Option is one labeled radio input.
type Option struct {
	Name    string // radio group name
	Value   string
	Title   string
	Image   string
	Checked bool
}

// Document is the full selection screen.
type Document struct {
	Tabs      []*Tab
	Panels    []*Panel
	Indicator *Element
	Action    *Element

	focus string
}

// NewDocument returns a document with an indicator and action element.
func NewDocument() *Document {
	return &Document{
		Indicator: NewElement("no-selection"),
		Action:    NewElement("checkout-btn"),
	}
}

// Focus moves input focus to the element with the given id.
func (d *Document) Focus(id string) { d.focus = id }

// Focused returns the id of the focused element.
func (d *Document) Focused() string { return d.focus }

// PanelByID returns the panel with the given id, or nil.
func (d *Document) PanelByID(id string) *Panel {
	for _, p := range d.Panels {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// TabFor returns the tab controlling panelID, or nil.
func (d *Document) TabFor(panelID string) *Tab {
	for _, t := range d.Tabs {
		if t.Controls() == panelID {
			return t
		}
	}
	return nil
}

// RadioGroups returns the distinct radio group names in document order.
func (d *Document) RadioGroups() []string {
	var names []string
	seen := make(map[string]bool)
	for _, p := range d.Panels {
		for _, o := range p.Options {
			if !seen[o.Name] {
				seen[o.Name] = true
				names = append(names, o.Name)
			}
		}
	}
	return names
}

// Checked returns the checked option of a group, or nil.
func (d *Document) Checked(name string) *Option {
	for _, p := range d.Panels {
		for _, o := range p.Options {
			if o.Name == name && o.Checked {
				return o
			}
		}
	}
	return nil
}

// Check checks value in group name and unchecks its siblings.
func (d *Document) Check(name, value string) error {
	var target *Option
	for _, p := range d.Panels {
		for _, o := range p.Options {
			if o.Name == name && o.Value == value {
				target = o
			}
		}
	}
	if target == nil {
		return fmt.Errorf("%w: %s=%s", ErrNoSuchOption, name, value)
	}
	d.Uncheck(name)
	target.Checked = true
	return nil
}

// Uncheck clears every option of a group.
func (d *Document) Uncheck(name string) {
	for _, p := range d.Panels {
		for _, o := range p.Options {
			if o.Name == name {
				o.Checked = false
			}
		}
	}
}
