package services

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// The first entry is the fallback for unmatched languages.
var supportedLocales = []language.Tag{
	language.AmericanEnglish,
	language.BritishEnglish,
	language.German,
	language.French,
	language.Spanish,
	language.BrazilianPortuguese,
	language.Japanese,
}

var shortDateLayouts = map[language.Tag]string{
	language.AmericanEnglish:     "1/2/2006",
	language.BritishEnglish:      "02/01/2006",
	language.German:              "2.1.2006",
	language.French:              "02/01/2006",
	language.Spanish:             "2/1/2006",
	language.BrazilianPortuguese: "02/01/2006",
	language.Japanese:            "2006/1/2",
}

var localeMatcher = language.NewMatcher(supportedLocales)

// Locale formats dates and numbers for display
type Locale struct {
	tag        language.Tag
	printer    *message.Printer
	dateLayout string
}

// NewLocale resolves a BCP 47 tag such as "en-US" to the closest supported locale
func NewLocale(raw string) (*Locale, error) {
	requested, err := language.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid language tag %q: %w", raw, err)
	}

	_, index, _ := localeMatcher.Match(requested)
	tag := supportedLocales[index]

	return &Locale{
		tag:        tag,
		printer:    message.NewPrinter(tag),
		dateLayout: shortDateLayouts[tag],
	}, nil
}

// Tag returns the resolved language tag
func (l *Locale) Tag() language.Tag {
	return l.tag
}

// ShortDate formats a TMDB "YYYY-MM-DD" date. Unparseable input is returned as is.
func (l *Locale) ShortDate(raw string) string {
	if raw == "" {
		return ""
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return raw
	}
	return t.Format(l.dateLayout)
}

// Rating renders an average paired with its vote count, e.g. "7.8 (12,345)"
func (l *Locale) Rating(average float64, count int) string {
	return l.printer.Sprintf("%.1f (%d)", average, count)
}
