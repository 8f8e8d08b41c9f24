// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package content

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripHTML reduces an HTML-laden scrape body to its text. Plain text passes
// through unchanged; script and style contents are dropped rather than
// flattened into the prose.
func StripHTML(body string) string {
	if !containsTag(body) {
		return body
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return body
	}
	doc.Find("script, style, noscript").Remove()
	text := doc.Text()
	return strings.Join(strings.Fields(text), " ")
}

// containsTag reports whether body holds something that parses as a tag,
// so that stray angle brackets in prose ("<3", "a > b") survive untouched.
func containsTag(body string) bool {
	open := strings.IndexByte(body, '<')
	for open >= 0 && open+1 < len(body) {
		c := body[open+1]
		if c == '/' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			return true
		}
		next := strings.IndexByte(body[open+1:], '<')
		if next < 0 {
			break
		}
		open += 1 + next
	}
	return false
}
