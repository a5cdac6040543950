package display

import (
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const DefaultWidth = 80

// Wrap word-wraps text to width, preserving ANSI escape sequences. A width
// below 1 uses DefaultWidth.
func Wrap(text string, width int) string {
	if width < 1 {
		width = DefaultWidth
	}
	return wordwrap.String(text, width)
}

// Title upper-cases the first letter of every word.
func Title(s string) string {
	return cases.Title(language.English).String(s)
}
