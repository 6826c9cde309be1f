package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mark3labs/shopcfg/internal/tui/theme"
)

// toastDuration is how long a toast stays on screen.
const toastDuration = 3 * time.Second

// ToastDismissMsg is sent when the toast should be dismissed.
type ToastDismissMsg struct{}

// Toast is a minimal non-blocking notification shown in the bottom-right
// corner.
type Toast struct {
	message   string
	visible   bool
	dismissAt time.Time
}

// NewToast creates a new Toast component.
func NewToast() *Toast {
	return &Toast{}
}

// Show displays a toast with the given message.
func (t *Toast) Show(msg string) tea.Cmd {
	t.message = msg
	t.visible = true
	t.dismissAt = time.Now().Add(toastDuration)
	return t.dismissCmd()
}

// dismissCmd returns a command that will dismiss the toast after the remaining time.
func (t *Toast) dismissCmd() tea.Cmd {
	remaining := time.Until(t.dismissAt)
	if remaining <= 0 {
		remaining = time.Millisecond
	}
	return tea.Tick(remaining, func(time.Time) tea.Msg {
		return ToastDismissMsg{}
	})
}

// Update handles messages for the toast component.
func (t *Toast) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(ToastDismissMsg); ok {
		// A newer toast may have replaced the one this tick was scheduled for
		if time.Now().Before(t.dismissAt) {
			return t.dismissCmd()
		}
		t.visible = false
		t.message = ""
	}
	return nil
}

// Render returns the styled toast line, right-aligned to width, or "" when
// hidden.
func (t *Toast) Render(width int) string {
	if !t.visible || t.message == "" {
		return ""
	}

	style := theme.Current().S().Toast
	content := style.Render(t.message)
	if lipgloss.Width(content) > width-2 {
		content = style.Width(max(width-2, 1)).Render(t.message)
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Right).
		PaddingRight(1).
		Render(content)
}

// IsVisible returns whether the toast is currently visible.
func (t *Toast) IsVisible() bool {
	return t.visible
}

// GetMessage returns the current toast message (empty if not visible).
func (t *Toast) GetMessage() string {
	if !t.visible {
		return ""
	}
	return t.message
}
