// Package selection decides whether every category on the selection screen
// has a checked option and gates the checkout action on it.
package selection

import (
	"errors"

	"github.com/mark3labs/shopcfg/internal/surface"
)

// ErrValidationIncomplete is returned by Guard while at least one category
// is unresolved.
var ErrValidationIncomplete = errors.New("not every category has a selection")

// Result of a validation pass.
type Result struct {
	AllResolved bool
	Unresolved  []string // radio group names without a checked option
}

// Validate checks every distinct radio group in the document.
func Validate(doc *surface.Document) Result {
	var res Result
	for _, name := range doc.RadioGroups() {
		if doc.Checked(name) == nil {
			res.Unresolved = append(res.Unresolved, name)
		}
	}
	res.AllResolved = len(res.Unresolved) == 0
	return res
}

// Apply validates and mirrors the result into the surface: the advisory
// indicator is hidden iff everything is resolved, the action is disabled iff
// it is not.
func Apply(doc *surface.Document) Result {
	res := Validate(doc)
	if doc.Indicator != nil {
		doc.Indicator.SetBoolAttr(surface.AttrHidden, res.AllResolved)
	}
	if doc.Action != nil {
		if res.AllResolved {
			doc.Action.RemoveAttr(surface.AttrDisabled)
		} else {
			doc.Action.SetBoolAttr(surface.AttrDisabled, true)
		}
	}
	return res
}

// Guard refuses to proceed while the action is disabled. It reads the
// surface attribute rather than recomputing, so a forced trigger on a
// disabled control is still rejected.
func Guard(doc *surface.Document) error {
	if doc.Action == nil || doc.Action.BoolAttr(surface.AttrDisabled) {
		return ErrValidationIncomplete
	}
	return nil
}
