package validation

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText strips markup pasted into free-text fields so lengths are
// measured on what readers will see. Input without tags is only trimmed.
func PlainText(s string) string {
	s = strings.TrimSpace(s)
	if !strings.ContainsAny(s, "<>") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	doc.Find("script, style").Remove()
	return strings.TrimSpace(doc.Text())
}
