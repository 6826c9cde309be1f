package tui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mark3labs/shopcfg/internal/locale"
	"github.com/mark3labs/shopcfg/internal/review"
	"github.com/mark3labs/shopcfg/internal/surface"
	"github.com/mark3labs/shopcfg/internal/tui/theme"
)

// tabRow is the screen row the tab strip is drawn on.
const tabRow = 3

// tabHit is the clickable extent of one tab on tabRow.
type tabHit struct {
	panelID string
	label   string
	row     int
	x0, x1  int
}

// tabHits lays out the tab strip left to right in display order.
func (a *App) tabHits() []tabHit {
	s := theme.Current().S()
	var hits []tabHit
	x := 0
	for _, p := range a.flow.Tabs.Pairs() {
		style := s.TabInactive
		if p.Tab.Selected() {
			style = s.TabActive
		}
		label := style.Render(p.Tab.Label)
		w := lipgloss.Width(label)
		hits = append(hits, tabHit{panelID: p.Panel.ID, label: label, row: tabRow, x0: x, x1: x + w})
		x += w + 1
	}
	return hits
}

func radio(checked bool) string {
	if checked {
		return "(•)"
	}
	return "( )"
}

func cursorMark(on bool) string {
	if on {
		return theme.Current().S().OptionCursor.Render("›") + " "
	}
	return "  "
}

func optionLine(on, checked bool, title, image string) string {
	s := theme.Current().S()
	style := s.OptionUnchecked
	if checked {
		style = s.OptionChecked
	}
	line := cursorMark(on) + style.Render(radio(checked)+" "+title)
	if image != "" {
		line += "  " + s.OptionImage.Render(image)
	}
	return line
}

func (a *App) renderSelection() string {
	s := theme.Current().S()
	doc := a.flow.Doc

	lines := []string{
		s.HeaderTitle.Render(a.title),
		s.Subtle.Render(a.text.T(locale.SelectionHint)),
		"",
	}

	hits := a.tabHits()
	labels := make([]string, len(hits))
	for i, h := range hits {
		labels[i] = h.label
	}
	lines = append(lines, strings.Join(labels, " "), "")

	if pair, ok := a.flow.Tabs.Active(); ok {
		for i, o := range pair.Panel.Options {
			lines = append(lines, optionLine(i == a.cursor, o.Checked, o.Title, o.Image))
		}
	}
	lines = append(lines, "")

	if doc.Indicator != nil && !doc.Indicator.BoolAttr(surface.AttrHidden) {
		lines = append(lines, s.Indicator.Render(a.text.T(locale.Incomplete)))
	}
	button := s.ButtonEnabled
	if doc.Action == nil || doc.Action.BoolAttr(surface.AttrDisabled) {
		button = s.ButtonDisabled
	}
	lines = append(lines, button.Render(a.text.T(locale.Checkout)), "", HintSelection(a.text.T(locale.Checkout)))

	return strings.Join(lines, "\n")
}

// reviewChoice addresses one rendered radio input on the review screen.
type reviewChoice struct {
	key   string
	value string
}

func flatten(v review.View) []reviewChoice {
	var out []reviewChoice
	for _, sec := range v.Sections {
		for _, c := range sec.Choices {
			out = append(out, reviewChoice{key: sec.Key, value: c.Value})
		}
	}
	return out
}

// refreshReview rebuilds the viewport content from the synchronizer's view.
func (a *App) refreshReview() {
	s := theme.Current().S()
	v := a.flow.Review.View()
	if v.Empty {
		a.viewport.SetContent(fmt.Sprintf("%s %s",
			a.text.T(locale.NoSelection),
			s.SectionTitle.Underline(true).Render(a.text.T(locale.BackToShop))))
		return
	}

	var lines []string
	idx := 0
	cursorLine := 0
	for _, sec := range v.Sections {
		lines = append(lines, s.SectionTitle.Render(sec.Title))
		for _, c := range sec.Choices {
			if idx == a.cursor {
				cursorLine = len(lines)
			}
			lines = append(lines, optionLine(idx == a.cursor, c.Checked, c.Title, c.Image))
			idx++
		}
		lines = append(lines, "")
	}
	a.viewport.SetContent(strings.Join(lines, "\n"))

	// Keep the cursor visible
	if cursorLine < a.viewport.YOffset() || cursorLine >= a.viewport.YOffset()+a.viewport.Height() {
		a.viewport.SetYOffset(max(cursorLine-1, 0))
	}
}

func (a *App) renderReview() string {
	s := theme.Current().S()
	header := s.HeaderTitle.Render(a.text.T(locale.ReviewTitle))

	var status, hints string
	switch {
	case a.flow.Review.View().Empty:
		hints = HintEmptyReview(a.text.T(locale.BackToShop))
	case a.flow.Submitting():
		status = a.spinner.View() + " " + s.Subtle.Render(a.text.T(locale.Submitting))
		hints = HintReview(a.text.T(locale.Submit), a.text.T(locale.Back))
	default:
		button := s.ButtonDisabled
		if a.flow.CanSubmit() {
			button = s.ButtonEnabled
		}
		status = button.Render(a.text.T(locale.Submit))
		hints = HintReview(a.text.T(locale.Submit), a.text.T(locale.Back))
	}

	return strings.Join([]string{header, "", a.viewport.View(), status, hints}, "\n")
}

func (a *App) renderDone() string {
	return strings.Join([]string{a.viewport.View(), "", HintDone()}, "\n")
}
