package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripHTML reduces markup to the concatenated text nodes in document order.
// Whitespace inside and around text nodes is kept as-is.
func StripHTML(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	return doc.Text()
}
