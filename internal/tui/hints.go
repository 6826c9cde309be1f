package tui

import (
	"strings"

	"github.com/mark3labs/shopcfg/internal/tui/theme"
)

// Standard key representations for consistent hints across the app.
const (
	KeyLeftRight = "←/→"
	KeyUpDown    = "↑/↓"
	KeyHomeEnd   = "home/end"
	KeyEnter     = "enter"
	KeySpace     = "space"
	KeyEsc       = "esc"
	KeyCtrlC     = "ctrl+c"
)

// RenderHint renders a single key-description pair.
// Example: RenderHint("enter", "select") -> "enter select"
func RenderHint(key, desc string) string {
	s := theme.Current().S()
	return s.HintKey.Render(key) + " " + s.HintDesc.Render(desc)
}

// RenderHintBar renders a hint bar with multiple key-description pairs.
// Pairs are separated by " . ".
// Example: RenderHintBar("up/down", "scroll", "esc", "back")
// Returns: "up/down scroll . esc back"
func RenderHintBar(pairs ...string) string {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return ""
	}

	s := theme.Current().S()
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		parts = append(parts, RenderHint(pairs[i], pairs[i+1]))
	}
	return strings.Join(parts, " "+s.HintSeparator.Render(".")+" ")
}

// HintSelection returns hints for the selection screen.
func HintSelection(checkout string) string {
	return RenderHintBar(KeyLeftRight, "tabs", KeyUpDown, "move", KeySpace, "choose", KeyEnter, checkout, KeyCtrlC, "quit")
}

// HintReview returns hints for the review screen.
func HintReview(submit, back string) string {
	return RenderHintBar(KeyUpDown, "move", KeySpace, "choose", KeyEnter, submit, KeyEsc, back)
}

// HintEmptyReview returns hints for the review fallback.
func HintEmptyReview(back string) string {
	return RenderHintBar(KeyEsc, back, KeyCtrlC, "quit")
}

// HintDone returns hints for the confirmation screen.
func HintDone() string {
	return RenderHintBar(KeyEnter, "quit")
}
