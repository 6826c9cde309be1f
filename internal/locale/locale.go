// Package locale holds the user-facing strings of the flow. German is the
// shop's default language; English is available for development.
package locale

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys.
const (
	SaveFailed    = "save_failed"
	NoSelection   = "no_selection"
	BackToShop    = "back_to_shop"
	Incomplete    = "incomplete"
	Checkout      = "checkout"
	Back          = "back"
	Next          = "next"
	Submitting    = "submitting"
	ReviewTitle   = "review_title"
	DoneTitle     = "done_title"
	DoneBody      = "done_body"
	ErrorTitle    = "error_title"
	SelectionHint = "selection_hint"
	Submit        = "submit"
	Saved         = "saved"
)

var supported = []language.Tag{language.German, language.English}

var messages = map[language.Tag]map[string]string{
	language.German: {
		SaveFailed:    "Fehler beim Speichern Ihrer Auswahl. Bitte versuchen Sie es erneut.",
		NoSelection:   "Keine Auswahl gefunden.",
		BackToShop:    "Zurück zum Shop",
		Incomplete:    "Bitte wählen Sie in jeder Kategorie ein Produkt aus.",
		Checkout:      "Zur Kasse",
		Back:          "Zurück",
		Next:          "Weiter",
		Submitting:    "Auswahl wird gespeichert …",
		ReviewTitle:   "Ihre Auswahl",
		DoneTitle:     "Vielen Dank!",
		DoneBody:      "Ihre Auswahl wurde gespeichert.",
		ErrorTitle:    "Fehler",
		SelectionHint: "Wählen Sie pro Kategorie ein Produkt.",
		Submit:        "Auswahl speichern",
		Saved:         "Änderung übernommen",
	},
	language.English: {
		SaveFailed:    "Error saving your selection. Please try again.",
		NoSelection:   "No selection found.",
		BackToShop:    "Back to the shop",
		Incomplete:    "Please choose one product in every category.",
		Checkout:      "Checkout",
		Back:          "Back",
		Next:          "Next",
		Submitting:    "Saving your selection …",
		ReviewTitle:   "Your selection",
		DoneTitle:     "Thank you!",
		DoneBody:      "Your selection has been saved.",
		ErrorTitle:    "Error",
		SelectionHint: "Pick one product per category.",
		Submit:        "Save selection",
		Saved:         "Change applied",
	},
}

var builder = newBuilder()

func newBuilder() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.German))
	for tag, msgs := range messages {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(err) // static table
			}
		}
	}
	return b
}

var matcher = language.NewMatcher(supported)

// Printer renders messages for one language.
type Printer struct {
	tag language.Tag
	p   *message.Printer
}

// New returns a printer for the closest supported language to code.
// Unknown or empty codes fall back to German.
func New(code string) *Printer {
	tag := language.German
	if parsed, err := language.Parse(code); err == nil {
		_, idx, conf := matcher.Match(parsed)
		if conf != language.No {
			tag = supported[idx]
		}
	}
	return &Printer{tag: tag, p: message.NewPrinter(tag, message.Catalog(builder))}
}

// Tag returns the selected language.
func (p *Printer) Tag() language.Tag { return p.tag }

// T returns the message for key.
func (p *Printer) T(key string) string {
	return p.p.Sprintf(key)
}
