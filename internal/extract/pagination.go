// internal/extract/pagination.go
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/vidproxy/vidproxy/internal/normalize"
	"github.com/vidproxy/vidproxy/internal/records"
)

// Pager markers observed in the upstream markup: an active-page indicator
// plus the collection of numbered page controls.
var (
	activePageSelectors = []string{
		".pager__item--active",
		".pagination .active",
		"li.active > a",
	}
	pageControlSelectors = []string{
		".pager__item a",
		".pagination a",
		"a[data-page]",
	}
	nextControlSelector = `a[rel="next"], .pager__next a`
)

// ExtractPagination reads the pager state from a results page. It is
// best-effort and never fails the request: any parse problem yields the
// documented {1,1,false,false} default.
func ExtractPagination(p *Page) records.PaginationInfo {
	doc, err := p.Doc()
	if err != nil {
		return records.DefaultPagination()
	}

	current := 0
	for _, sel := range activePageSelectors {
		if n, ok := numericText(doc.Find(sel).First()); ok {
			current = n
			break
		}
	}

	total := 0
	for _, sel := range pageControlSelectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			if n, ok := numericText(s); ok && n > total {
				total = n
			}
		})
		if total > 0 {
			break
		}
	}

	if current == 0 && total == 0 {
		return records.DefaultPagination()
	}
	if current == 0 {
		current = 1
	}
	if total < current {
		total = current
	}

	hasNext := current < total || doc.Find(nextControlSelector).Length() > 0
	return records.PaginationInfo{
		CurrentPage: current,
		TotalPages:  total,
		HasNext:     hasNext,
		HasPrevious: current > 1,
	}
}

// numericText returns the element text as an integer when the trimmed
// text is purely a page number.
func numericText(s *goquery.Selection) (int, bool) {
	text := strings.TrimSpace(s.Text())
	if text == "" {
		return 0, false
	}
	n, ok := normalize.FirstInt(text)
	if !ok || n < 1 {
		return 0, false
	}
	return n, true
}
