package theme

import "charm.land/lipgloss/v2"

// Styles contains all pre-built lipgloss styles for the TUI.
type Styles struct {
	HeaderTitle lipgloss.Style
	Subtle      lipgloss.Style

	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	OptionChecked   lipgloss.Style
	OptionUnchecked lipgloss.Style
	OptionCursor    lipgloss.Style
	OptionImage     lipgloss.Style

	SectionTitle lipgloss.Style

	Indicator      lipgloss.Style
	ButtonEnabled  lipgloss.Style
	ButtonDisabled lipgloss.Style

	HintKey       lipgloss.Style
	HintDesc      lipgloss.Style
	HintSeparator lipgloss.Style

	DialogTitle   lipgloss.Style
	DialogMessage lipgloss.Style
	DialogButton  lipgloss.Style
	DialogBorder  lipgloss.Style

	Toast lipgloss.Style
}
