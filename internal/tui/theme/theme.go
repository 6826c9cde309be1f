package theme

import (
	"image/color"
	"sync"

	"charm.land/lipgloss/v2"
)

// Theme defines the color palette for the TUI.
type Theme struct {
	Name   string
	IsDark bool

	// Semantic colors
	Primary   string
	Secondary string

	// Background hierarchy (dark→light)
	BgCrust    string
	BgBase     string
	BgSurface0 string
	BgSurface1 string

	// Foreground hierarchy (dim→bright)
	FgMuted  string
	FgSubtle string
	FgBase   string

	// Status colors
	Success string
	Warning string
	Error   string

	// Lazy-built styles
	styles     *Styles
	stylesOnce sync.Once
}

var (
	currentMu sync.RWMutex
	current   = NewCatppuccinMocha()
)

// Current returns the active theme.
func Current() *Theme {
	currentMu.RLock()
	defer currentMu.RUnlock()
	return current
}

// SetCurrent replaces the active theme.
func SetCurrent(t *Theme) {
	currentMu.Lock()
	defer currentMu.Unlock()
	current = t
}

// S returns the pre-built styles for this theme.
// Styles are lazily initialized on first call.
func (t *Theme) S() *Styles {
	t.stylesOnce.Do(func() {
		t.styles = t.buildStyles()
	})
	return t.styles
}

func c(hex string) color.Color { return lipgloss.Color(hex) }

// buildStyles constructs the pre-built styles from theme colors.
func (t *Theme) buildStyles() *Styles {
	return &Styles{
		HeaderTitle: lipgloss.NewStyle().
			Foreground(c(t.Primary)).
			Bold(true),
		Subtle: lipgloss.NewStyle().
			Foreground(c(t.FgSubtle)),

		TabActive: lipgloss.NewStyle().
			Foreground(c(t.BgBase)).
			Background(c(t.Primary)).
			Bold(true).
			Padding(0, 1),
		TabInactive: lipgloss.NewStyle().
			Foreground(c(t.FgBase)).
			Background(c(t.BgSurface0)).
			Padding(0, 1),

		OptionChecked: lipgloss.NewStyle().
			Foreground(c(t.Success)).
			Bold(true),
		OptionUnchecked: lipgloss.NewStyle().
			Foreground(c(t.FgBase)),
		OptionCursor: lipgloss.NewStyle().
			Foreground(c(t.Primary)).
			Bold(true),
		OptionImage: lipgloss.NewStyle().
			Foreground(c(t.FgMuted)).
			Italic(true),

		SectionTitle: lipgloss.NewStyle().
			Foreground(c(t.Secondary)).
			Bold(true),

		Indicator: lipgloss.NewStyle().
			Foreground(c(t.Warning)),
		ButtonEnabled: lipgloss.NewStyle().
			Foreground(c(t.BgBase)).
			Background(c(t.Primary)).
			Padding(0, 2),
		ButtonDisabled: lipgloss.NewStyle().
			Foreground(c(t.FgMuted)).
			Background(c(t.BgSurface1)).
			Padding(0, 2),

		HintKey: lipgloss.NewStyle().
			Foreground(c(t.FgSubtle)).
			Bold(true),
		HintDesc: lipgloss.NewStyle().
			Foreground(c(t.FgMuted)),
		HintSeparator: lipgloss.NewStyle().
			Foreground(c(t.BgSurface1)),

		DialogTitle: lipgloss.NewStyle().
			Foreground(c(t.Error)).
			Bold(true),
		DialogMessage: lipgloss.NewStyle().
			Foreground(c(t.FgBase)),
		DialogButton: lipgloss.NewStyle().
			Foreground(c(t.BgBase)).
			Background(c(t.Error)).
			Padding(0, 2),
		DialogBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(t.Error)).
			Padding(1, 3),

		Toast: lipgloss.NewStyle().
			Foreground(c(t.BgBase)).
			Background(c(t.Warning)).
			Padding(0, 1).
			Bold(true),
	}
}
