// Package extract recovers video records from the upstream site's HTML.
//
// The source format is not controlled by this system and drifts over
// time, so collection extraction runs an ordered cascade of fallback
// strategies: scoped embedded-JSON parsing, regex object recovery,
// bracket-depth recovery, DOM-selector heuristics, and a free-text scan.
// Whatever survives still passes through the record cleaner before it is
// exposed, so a partial format change degrades recall, never validity.
package extract

import (
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

// Page wraps one fetched HTML document. The goquery parse is deferred
// until a DOM-based extractor needs it; the script-embedded strategies
// work on the raw text alone.
type Page struct {
	raw string

	once   sync.Once
	doc    *goquery.Document
	docErr error
}

// NewPage wraps raw HTML.
func NewPage(html string) *Page {
	return &Page{raw: html}
}

// Raw returns the unparsed document text.
func (p *Page) Raw() string {
	return p.raw
}

// Doc returns the parsed document, parsing it on first use.
func (p *Page) Doc() (*goquery.Document, error) {
	p.once.Do(func() {
		p.doc, p.docErr = goquery.NewDocumentFromReader(strings.NewReader(p.raw))
	})
	return p.doc, p.docErr
}
