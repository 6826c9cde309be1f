// Package flow is the event dispatcher for the configuration flow. It owns
// the current screen and routes user events to the tab controller, the
// selection validator, the store, the review synchronizer and the submission
// gateway.
package flow

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/shopcfg/internal/locale"
	"github.com/mark3labs/shopcfg/internal/logger"
	"github.com/mark3labs/shopcfg/internal/review"
	"github.com/mark3labs/shopcfg/internal/selection"
	"github.com/mark3labs/shopcfg/internal/store"
	"github.com/mark3labs/shopcfg/internal/surface"
	"github.com/mark3labs/shopcfg/internal/tabs"
)

// Screen identifies one page of the flow.
type Screen int

const (
	Selection Screen = iota
	Review
	Done
)

func (s Screen) String() string {
	switch s {
	case Selection:
		return "selection"
	case Review:
		return "review"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("screen(%d)", int(s))
	}
}

var (
	// ErrMissingSelection is returned by review actions when no snapshot
	// could be loaded.
	ErrMissingSelection = errors.New("no selection to review")
	// ErrSubmitting is returned while a submission is outstanding.
	ErrSubmitting = errors.New("submission in progress")
	// ErrWrongScreen is returned for events the current screen does not accept.
	ErrWrongScreen = errors.New("event not valid on this screen")
)

// Navigator is told about every screen transition.
type Navigator interface {
	Navigate(to Screen)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(Screen)

func (f NavigatorFunc) Navigate(to Screen) { f(to) }

// Submitter sends a snapshot to the save endpoint.
type Submitter interface {
	Submit(ctx context.Context, id string, cats []store.Category) (any, error)
}

// Deps are the collaborators of a Flow. Nav may be nil.
type Deps struct {
	Doc     *surface.Document
	Tabs    *tabs.Controller
	Store   *store.Store
	Review  *review.Synchronizer
	Gateway Submitter
	Text    *locale.Printer
	Nav     Navigator
}

// Payload is what BeginSubmit hands to the gateway.
type Payload struct {
	ID         string
	Categories []store.Category
}

// Flow holds the screen state. It is not safe for concurrent use; callers
// drive it from a single event loop.
type Flow struct {
	Deps

	screen     Screen
	validation selection.Result
	submitting bool
	alert      string
	log        *logger.Logger
}

// New returns a flow on the selection screen with the checkout action gated.
func New(d Deps) *Flow {
	if d.Text == nil {
		d.Text = locale.New("")
	}
	f := &Flow{Deps: d, screen: Selection, log: logger.With("flow")}
	f.validation = selection.Apply(d.Doc)
	return f
}

// Screen returns the current screen.
func (f *Flow) Screen() Screen { return f.screen }

// Validation returns the last selection validation result.
func (f *Flow) Validation() selection.Result { return f.validation }

// Submitting reports whether a submission is outstanding. The submit trigger
// is disabled for its duration.
func (f *Flow) Submitting() bool { return f.submitting }

// CanSubmit reports whether the submit trigger is enabled.
func (f *Flow) CanSubmit() bool {
	return f.screen == Review && !f.submitting && !f.Review.View().Empty
}

// Alert returns the blocking alert text, or "".
func (f *Flow) Alert() string { return f.alert }

// DismissAlert closes the blocking alert.
func (f *Flow) DismissAlert() { f.alert = "" }

func (f *Flow) navigate(to Screen) {
	if f.screen == to {
		return
	}
	f.log.Debug("navigate %s -> %s", f.screen, to)
	f.screen = to
	if f.Nav != nil {
		f.Nav.Navigate(to)
	}
}

// Key routes a navigation key to the tab controller. It reports whether the
// key was consumed.
func (f *Flow) Key(key string) bool {
	if f.screen != Selection {
		return false
	}
	return f.Tabs.Key(key)
}

// ActivateTab activates the pair whose panel has the given id.
func (f *Flow) ActivateTab(panelID string) bool {
	if f.screen != Selection {
		return false
	}
	return f.Tabs.Dispatch(tabs.Activate{PanelID: panelID})
}

// Choose checks an option on the selection screen and revalidates.
func (f *Flow) Choose(name, value string) error {
	if f.screen != Selection {
		return ErrWrongScreen
	}
	if err := f.Doc.Check(name, value); err != nil {
		return err
	}
	f.validation = selection.Apply(f.Doc)
	return nil
}

// Checkout validates the selection, captures the snapshot and moves to the
// review screen.
func (f *Flow) Checkout(ctx context.Context) error {
	if f.screen != Selection {
		return ErrWrongScreen
	}
	f.validation = selection.Apply(f.Doc)
	if err := selection.Guard(f.Doc); err != nil {
		f.log.Info("checkout blocked: %d unresolved", len(f.validation.Unresolved))
		return err
	}
	if _, err := f.Store.Collect(ctx, f.Doc); err != nil {
		return fmt.Errorf("capturing selection: %w", err)
	}
	f.Review.Render(ctx)
	f.navigate(Review)
	return nil
}

// EnterReview opens the review screen directly from the persisted snapshot.
// A missing snapshot renders the fallback view.
func (f *Flow) EnterReview(ctx context.Context) review.View {
	v := f.Review.Render(ctx)
	f.navigate(Review)
	return v
}

// ChangeReview writes a review radio change through to the store.
func (f *Flow) ChangeReview(ctx context.Context, key, value string) error {
	if f.screen != Review {
		return ErrWrongScreen
	}
	if f.submitting {
		return ErrSubmitting
	}
	err := f.Review.Change(ctx, key, value)
	if errors.Is(err, review.ErrNoSelection) {
		return ErrMissingSelection
	}
	return err
}

// Back returns to the selection screen and restores the stored choices,
// including review edits, into it.
func (f *Flow) Back(ctx context.Context) error {
	if f.screen != Review {
		return ErrWrongScreen
	}
	if f.submitting {
		return ErrSubmitting
	}
	cats := f.Store.Current()
	if cats == nil {
		cats = f.Store.Load(ctx)
	}
	for _, c := range cats {
		v, ok := c.Selected()
		if !ok {
			continue
		}
		if err := f.Doc.Check(c.Key, v); err != nil {
			f.log.Warn("restoring %s: %v", c.Key, err)
		}
	}
	f.validation = selection.Apply(f.Doc)
	f.alert = ""
	f.navigate(Selection)
	return nil
}

// BeginSubmit disables the submit trigger and returns the payload: the
// in-memory sequence, or a fresh load when there is none.
func (f *Flow) BeginSubmit(ctx context.Context) (Payload, error) {
	if f.screen != Review {
		return Payload{}, ErrWrongScreen
	}
	if f.submitting {
		return Payload{}, ErrSubmitting
	}
	cats := f.Store.Current()
	if cats == nil {
		cats = f.Store.Load(ctx)
	}
	if len(cats) == 0 {
		return Payload{}, ErrMissingSelection
	}
	f.submitting = true
	f.alert = ""
	return Payload{ID: f.Store.SnapshotID(), Categories: cats}, nil
}

// FinishSubmit re-enables the submit trigger and applies the outcome. On
// failure the localized alert is raised and the store is left untouched. On
// success the snapshot is cleared and the flow moves to the done screen.
func (f *Flow) FinishSubmit(ctx context.Context, err error) {
	if !f.submitting {
		f.log.Warn("finish without a pending submission")
		return
	}
	f.submitting = false
	if err != nil {
		f.log.Error("submission failed: %v", err)
		f.alert = f.Text.T(locale.SaveFailed)
		return
	}
	if cerr := f.Store.Clear(ctx); cerr != nil {
		f.log.Warn("clearing submitted snapshot: %v", cerr)
	}
	f.navigate(Done)
}

// Submit runs a whole submission synchronously.
func (f *Flow) Submit(ctx context.Context) error {
	p, err := f.BeginSubmit(ctx)
	if err != nil {
		return err
	}
	_, err = f.Gateway.Submit(ctx, p.ID, p.Categories)
	f.FinishSubmit(ctx, err)
	return err
}
