package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/shopcfg/internal/flow"
	"github.com/mark3labs/shopcfg/internal/locale"
	"github.com/mark3labs/shopcfg/internal/logger"
	"github.com/mark3labs/shopcfg/internal/selection"
	"github.com/mark3labs/shopcfg/internal/store"
	"github.com/mark3labs/shopcfg/internal/tui/theme"
)

// Rows taken by the review header and footer around the viewport.
const reviewChrome = 5

// submitDoneMsg carries the outcome of a save request back to the event loop.
type submitDoneMsg struct {
	categories []store.Category
	response   any
	err        error
}

// App is the main Bubble Tea model. It renders whatever screen the flow is
// on and translates terminal input into flow events.
type App struct {
	ctx   context.Context
	flow  *flow.Flow
	text  *locale.Printer
	title string
	keys  KeyMap
	log   *logger.Logger

	width  int
	height int
	cursor int // option index on the selection screen, choice index on review

	viewport viewport.Model
	spinner  spinner.Model
	dialog   *Dialog
	toast    *Toast

	submitted []store.Category
	response  any
	quitting  bool
}

// New creates the app and registers it as the flow's navigator.
func New(ctx context.Context, f *flow.Flow, title string) *App {
	vp := viewport.New(
		viewport.WithWidth(80),
		viewport.WithHeight(20),
	)
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Current().Primary))

	a := &App{
		ctx:      ctx,
		flow:     f,
		text:     f.Text,
		title:    title,
		keys:     DefaultKeyMap(),
		log:      logger.With("tui"),
		width:    80,
		height:   24,
		viewport: vp,
		spinner:  s,
		dialog:   NewDialog(),
		toast:    NewToast(),
	}
	f.Nav = a
	if f.Screen() == flow.Review {
		a.refreshReview()
	}
	return a
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, a *App) error {
	p := tea.NewProgram(a, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}

// Screen returns the current screen.
func (a *App) Screen() flow.Screen { return a.flow.Screen() }

// Navigate implements flow.Navigator.
func (a *App) Navigate(to flow.Screen) {
	a.cursor = 0
	switch to {
	case flow.Review:
		a.refreshReview()
		a.viewport.GotoTop()
	case flow.Done:
		a.viewport.SetContent(renderMarkdown(a.confirmation(), a.width))
		a.viewport.GotoTop()
	}
}

// Init initializes the app.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.viewport.SetWidth(msg.Width)
		a.viewport.SetHeight(max(msg.Height-reviewChrome, 1))
		switch a.flow.Screen() {
		case flow.Review:
			a.refreshReview()
		case flow.Done:
			a.viewport.SetContent(renderMarkdown(a.confirmation(), a.width))
		}
		return a, nil

	case tea.KeyPressMsg:
		return a, a.handleKey(msg)

	case tea.MouseClickMsg:
		return a, a.handleClick(msg.Mouse())

	case submitDoneMsg:
		return a, a.finishSubmit(msg)

	case spinner.TickMsg:
		if !a.flow.Submitting() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case ToastDismissMsg:
		return a, a.toast.Update(msg)
	}

	if a.flow.Screen() != flow.Selection {
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) quit() tea.Cmd {
	a.quitting = true
	return tea.Quit
}

func (a *App) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return a.quit()
	}
	// The alert blocks everything else until dismissed
	if a.dialog.IsVisible() {
		return a.dialog.Update(msg)
	}

	switch a.flow.Screen() {
	case flow.Selection:
		return a.handleSelectionKey(msg)
	case flow.Review:
		return a.handleReviewKey(msg)
	default:
		if key.Matches(msg, a.keys.Confirm, a.keys.Quit) {
			return a.quit()
		}
	}
	return nil
}

func (a *App) handleSelectionKey(msg tea.KeyPressMsg) tea.Cmd {
	if a.flow.Key(msg.String()) {
		a.cursor = 0
		return nil
	}

	pair, ok := a.flow.Tabs.Active()
	switch {
	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(msg, a.keys.Down):
		if ok && a.cursor < len(pair.Panel.Options)-1 {
			a.cursor++
		}
	case key.Matches(msg, a.keys.Choose):
		if !ok || a.cursor >= len(pair.Panel.Options) {
			return nil
		}
		opt := pair.Panel.Options[a.cursor]
		if err := a.flow.Choose(opt.Name, opt.Value); err != nil {
			a.log.Warn("choose %s=%s: %v", opt.Name, opt.Value, err)
		}
	case key.Matches(msg, a.keys.Confirm):
		err := a.flow.Checkout(a.ctx)
		switch {
		case errors.Is(err, selection.ErrValidationIncomplete):
			return a.toast.Show(a.text.T(locale.Incomplete))
		case err != nil:
			a.log.Error("checkout: %v", err)
			a.dialog.Show(a.text.T(locale.ErrorTitle), err.Error(), nil)
		}
	case key.Matches(msg, a.keys.Quit):
		return a.quit()
	}
	return nil
}

func (a *App) handleReviewKey(msg tea.KeyPressMsg) tea.Cmd {
	view := a.flow.Review.View()
	if view.Empty {
		switch {
		case key.Matches(msg, a.keys.Back, a.keys.Confirm):
			a.back()
		case key.Matches(msg, a.keys.Quit):
			return a.quit()
		}
		return nil
	}

	choices := flatten(view)
	switch {
	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
			a.refreshReview()
		}
	case key.Matches(msg, a.keys.Down):
		if a.cursor < len(choices)-1 {
			a.cursor++
			a.refreshReview()
		}
	case key.Matches(msg, a.keys.PageUp):
		a.viewport.PageUp()
	case key.Matches(msg, a.keys.PageDown):
		a.viewport.PageDown()
	case key.Matches(msg, a.keys.Choose):
		if a.cursor >= len(choices) {
			return nil
		}
		c := choices[a.cursor]
		if err := a.flow.ChangeReview(a.ctx, c.key, c.value); err != nil {
			a.log.Warn("review change %s=%s: %v", c.key, c.value, err)
			return nil
		}
		a.refreshReview()
		return a.toast.Show(a.text.T(locale.Saved))
	case key.Matches(msg, a.keys.Confirm):
		return a.startSubmit()
	case key.Matches(msg, a.keys.Back):
		a.back()
	case key.Matches(msg, a.keys.Quit):
		return a.quit()
	}
	return nil
}

func (a *App) back() {
	if err := a.flow.Back(a.ctx); err != nil {
		a.log.Debug("back: %v", err)
	}
}

func (a *App) startSubmit() tea.Cmd {
	if !a.flow.CanSubmit() {
		return nil
	}
	p, err := a.flow.BeginSubmit(a.ctx)
	if err != nil {
		a.log.Warn("begin submit: %v", err)
		return nil
	}
	a.refreshReview()

	ctx, gw := a.ctx, a.flow.Gateway
	send := func() tea.Msg {
		resp, err := gw.Submit(ctx, p.ID, p.Categories)
		return submitDoneMsg{categories: p.Categories, response: resp, err: err}
	}
	return tea.Batch(send, a.spinner.Tick)
}

func (a *App) finishSubmit(msg submitDoneMsg) tea.Cmd {
	if msg.err == nil {
		a.submitted = msg.categories
		a.response = msg.response
	}
	a.flow.FinishSubmit(a.ctx, msg.err)
	if alert := a.flow.Alert(); alert != "" {
		a.dialog.Show(a.text.T(locale.ErrorTitle), alert, func() tea.Cmd {
			a.flow.DismissAlert()
			return nil
		})
	}
	if a.flow.Screen() == flow.Review {
		a.refreshReview()
	}
	return nil
}

func (a *App) handleClick(m tea.Mouse) tea.Cmd {
	if a.dialog.IsVisible() {
		return a.dialog.HandleClick(m.X, m.Y)
	}
	if m.Button != tea.MouseLeft || a.flow.Screen() != flow.Selection {
		return nil
	}
	for _, h := range a.tabHits() {
		if m.Y == h.row && m.X >= h.x0 && m.X < h.x1 {
			if a.flow.ActivateTab(h.panelID) {
				a.cursor = 0
			}
			return nil
		}
	}
	return nil
}

// View renders the current view.
func (a *App) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion

	if a.quitting {
		view.AltScreen = false
		view.MouseMode = 0
		view.Content = lipgloss.NewLayer("")
		return view
	}

	canvas := uv.NewScreenBuffer(a.width, a.height)
	a.Draw(canvas, canvas.Bounds())
	view.Content = lipgloss.NewLayer(canvas.Render())
	view.BackgroundColor = theme.HexToColor(theme.Current().BgCrust)
	return view
}

// Draw renders the current screen, the toast and the alert to the buffer.
func (a *App) Draw(scr uv.Screen, area uv.Rectangle) {
	var content string
	switch a.flow.Screen() {
	case flow.Selection:
		content = a.renderSelection()
	case flow.Review:
		content = a.renderReview()
	case flow.Done:
		content = a.renderDone()
	}
	uv.NewStyledString(content).Draw(scr, area)

	if toast := a.toast.Render(area.Dx()); toast != "" {
		y := max(area.Max.Y-2, area.Min.Y)
		uv.NewStyledString(toast).Draw(scr, uv.Rectangle{
			Min: uv.Position{X: area.Min.X, Y: y},
			Max: uv.Position{X: area.Max.X, Y: y + 1},
		})
	}
	a.dialog.Draw(scr, area)
}

func (a *App) confirmation() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n%s\n\n", a.text.T(locale.DoneTitle), a.text.T(locale.DoneBody))
	for _, c := range a.submitted {
		v, _ := c.Selected()
		title := v
		for _, o := range c.Options {
			if o.Value == v && o.Title != "" {
				title = o.Title
			}
		}
		fmt.Fprintf(&b, "- **%s**: %s\n", c.Title, title)
	}
	if m, ok := a.response.(map[string]any); ok {
		if id, ok := m["id"]; ok {
			fmt.Fprintf(&b, "\n`#%v`\n", id)
		}
	}
	return b.String()
}
