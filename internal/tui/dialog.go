package tui

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/mark3labs/shopcfg/internal/tui/theme"
)

// Dialog is a blocking alert overlay. While visible it swallows all input
// until dismissed.
type Dialog struct {
	title      string
	message    string
	button     string
	visible    bool
	onClose    func() tea.Cmd
	dialogArea uv.Rectangle // Screen area where dialog is drawn (for mouse hit detection)
}

// NewDialog creates a new dialog
func NewDialog() *Dialog {
	return &Dialog{button: "OK"}
}

// Show displays the dialog with the given title and message
func (d *Dialog) Show(title, message string, onClose func() tea.Cmd) {
	d.title = title
	d.message = message
	d.visible = true
	d.onClose = onClose
}

// Hide closes the dialog
func (d *Dialog) Hide() {
	d.visible = false
}

// IsVisible returns whether the dialog is visible
func (d *Dialog) IsVisible() bool {
	return d.visible
}

// Message returns the text of the visible dialog, or "".
func (d *Dialog) Message() string {
	if !d.visible {
		return ""
	}
	return d.message
}

// Update handles dialog input
func (d *Dialog) Update(msg tea.Msg) tea.Cmd {
	if !d.visible {
		return nil
	}

	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "enter", "space", " ", "esc":
			return d.close()
		}
	}
	return nil
}

func (d *Dialog) close() tea.Cmd {
	d.Hide()
	if d.onClose != nil {
		return d.onClose()
	}
	return nil
}

// Render returns the styled dialog box.
func (d *Dialog) Render() string {
	s := theme.Current().S()

	contentWidth := max(lipgloss.Width(d.message), lipgloss.Width(d.title))
	title := s.DialogTitle.Width(contentWidth).Align(lipgloss.Center).Render(d.title)
	message := s.DialogMessage.Width(contentWidth).Align(lipgloss.Center).Render(d.message)
	buttonLine := lipgloss.NewStyle().
		Width(contentWidth).
		Align(lipgloss.Center).
		Render(s.DialogButton.Render(d.button))

	content := lipgloss.JoinVertical(lipgloss.Center, title, "", message, "", buttonLine)
	return s.DialogBorder.Render(content)
}

// Draw renders the dialog centered on screen
func (d *Dialog) Draw(scr uv.Screen, area uv.Rectangle) {
	if !d.visible {
		return
	}

	dialog := d.Render()
	w := lipgloss.Width(dialog)
	h := lipgloss.Height(dialog)
	x := max((area.Dx()-w)/2, 0)
	y := max((area.Dy()-h)/2, 0)

	d.dialogArea = uv.Rectangle{
		Min: uv.Position{X: area.Min.X + x, Y: area.Min.Y + y},
		Max: uv.Position{X: area.Min.X + x + w, Y: area.Min.Y + y + h},
	}
	uv.NewStyledString(dialog).Draw(scr, d.dialogArea)
}

// HandleClick processes a mouse click. Clicking anywhere dismisses the dialog.
func (d *Dialog) HandleClick(x, y int) tea.Cmd {
	if !d.visible {
		return nil
	}
	return d.close()
}
