package tui

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/stretchr/testify/require"
)

func TestDialog_KeysDismiss(t *testing.T) {
	for _, k := range []tea.KeyPressMsg{keyEnter, keyEsc, keySpace} {
		d := NewDialog()
		closed := false
		d.Show("Fehler", "kaputt", func() tea.Cmd { closed = true; return nil })
		require.Equal(t, "kaputt", d.Message())

		d.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
		require.True(t, d.IsVisible(), "other keys are swallowed")

		d.Update(k)
		require.False(t, d.IsVisible(), "key %s", k.String())
		require.True(t, closed)
		require.Empty(t, d.Message())
	}
}

func TestDialog_ClickDismisses(t *testing.T) {
	d := NewDialog()
	require.Nil(t, d.HandleClick(0, 0))

	d.Show("Fehler", "kaputt", nil)
	d.HandleClick(3, 3)
	require.False(t, d.IsVisible())
}

func TestDialog_DrawCentered(t *testing.T) {
	d := NewDialog()
	d.Show("Fehler", "kaputt", nil)

	canvas := uv.NewScreenBuffer(80, 24)
	d.Draw(canvas, canvas.Bounds())
	require.Greater(t, d.dialogArea.Min.X, 0)
	require.Greater(t, d.dialogArea.Min.Y, 0)
	require.Contains(t, d.Render(), "kaputt")
}
