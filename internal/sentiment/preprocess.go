package sentiment

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/russross/blackfriday/v2"
)

var (
	tagPattern = regexp.MustCompile(`<.*?>`)
	// http followed by anything that is not Unicode whitespace.
	urlPattern = regexp.MustCompile(`http[^\s\p{Z}\x{0b}\x{85}\x{1c}-\x{1f}]+`)
)

// Preprocessor normalises raw article text before scoring.
type Preprocessor struct {
	Markdown bool
}

// Clean strips markup and URLs and collapses whitespace. It never fails;
// the empty string maps to the empty string.
func (p Preprocessor) Clean(text string) string {
	if p.Markdown {
		text = string(blackfriday.Run([]byte(text), blackfriday.WithNoExtensions()))
	}
	text = tagPattern.ReplaceAllString(text, "")
	text = urlPattern.ReplaceAllString(text, "")
	return collapseSpace(text)
}

// CleanText runs the default preprocessing without the markdown step.
func CleanText(text string) string {
	return Preprocessor{}.Clean(text)
}

func collapseSpace(s string) string {
	return strings.Join(strings.FieldsFunc(s, isSpace), " ")
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}
