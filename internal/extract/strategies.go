// internal/extract/strategies.go
package extract

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/vidproxy/vidproxy/internal/normalize"
	"github.com/vidproxy/vidproxy/internal/records"
	"github.com/vidproxy/vidproxy/internal/utils"
)

// Strategy recovers candidate records from one page. Strategies never
// return errors: a strategy that cannot make sense of the document simply
// yields nothing and the pipeline moves on.
type Strategy interface {
	Name() string
	Extract(p *Page) []records.Candidate
}

// scopeFunc locates the bracketed payload substring a script-embedded
// strategy operates on.
type scopeFunc func(html string) (string, bool)

// embeddedJSONStrategy is the primary path: locate the hydration payload
// scope, repair the common malformations, and strict-parse the result as
// an array of records.
type embeddedJSONStrategy struct {
	scope scopeFunc
}

func (s *embeddedJSONStrategy) Name() string { return "embedded-json" }

func (s *embeddedJSONStrategy) Extract(p *Page) []records.Candidate {
	raw, ok := s.scope(p.Raw())
	if !ok {
		return nil
	}
	return parseCandidateArray(RepairJSON(raw))
}

// parseCandidateArray strict-parses s as an array of objects and keeps
// those carrying at minimum an id, a title, and a path field.
func parseCandidateArray(s string) []records.Candidate {
	var raw []map[string]interface{}
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil
	}
	out := make([]records.Candidate, 0, len(raw))
	for _, m := range raw {
		c := records.Candidate(m)
		if _, ok := c["id"]; !ok {
			continue
		}
		if c.String("title") == "" || c.Path() == "" {
			continue
		}
		out = append(out, c)
	}
	return out
}

// objectFieldPattern captures six fields in a fixed order within one
// bounded object span. The [^{}]*? gaps assume the payload does not nest
// objects between those fields; deeper nesting silently under-extracts,
// matching the upstream payload as observed.
var objectFieldPattern = regexp.MustCompile(
	`"?id"?\s*:\s*(\d+)[^{}]*?` +
		`"?title"?\s*:\s*"((?:[^"\\]|\\.)*)"[^{}]*?` +
		`"?pageURL"?\s*:\s*"((?:[^"\\]|\\.)*)"[^{}]*?` +
		`"?thumbURL"?\s*:\s*"((?:[^"\\]|\\.)*)"[^{}]*?` +
		`"?duration"?\s*:\s*(\d+)[^{}]*?` +
		`"?views"?\s*:\s*(\d+)`)

// regexRecoveryStrategy scans the payload scope for field co-occurrence
// when strict parsing of the repaired text fails.
type regexRecoveryStrategy struct {
	scope scopeFunc
}

func (s *regexRecoveryStrategy) Name() string { return "regex-recovery" }

func (s *regexRecoveryStrategy) Extract(p *Page) []records.Candidate {
	raw, ok := s.scope(p.Raw())
	if !ok {
		return nil
	}
	return matchObjectFields(raw)
}

func matchObjectFields(s string) []records.Candidate {
	var out []records.Candidate
	for _, m := range objectFieldPattern.FindAllStringSubmatch(s, -1) {
		id, _ := strconv.Atoi(m[1])
		duration, _ := strconv.Atoi(m[5])
		views, _ := strconv.Atoi(m[6])
		out = append(out, records.Candidate{
			"id":       id,
			"title":    unescapeJSON(m[2]),
			"pageURL":  unescapeJSON(m[3]),
			"thumbURL": unescapeJSON(m[4]),
			"duration": duration,
			"views":    views,
		})
	}
	return out
}

// bracketRecoveryStrategy walks the payload scope character by character,
// re-parsing each top-level {...} span on its own. Spans that survive the
// key-quoting repair and carry id/title/path become candidates; the rest
// are dropped without failing the span next to them.
type bracketRecoveryStrategy struct {
	scope scopeFunc
}

func (s *bracketRecoveryStrategy) Name() string { return "bracket-recovery" }

func (s *bracketRecoveryStrategy) Extract(p *Page) []records.Candidate {
	raw, ok := s.scope(p.Raw())
	if !ok {
		return nil
	}
	// Strip the enclosing brackets so member objects sit at top level.
	if strings.HasPrefix(raw, "[") || strings.HasPrefix(raw, "{") {
		raw = raw[1 : len(raw)-1]
	}

	var out []records.Candidate
	for _, span := range topLevelObjects(raw) {
		var m map[string]interface{}
		if err := json.Unmarshal([]byte(RepairJSON(span)), &m); err != nil {
			continue
		}
		c := records.Candidate(m)
		if _, ok := c["id"]; !ok {
			continue
		}
		if c.String("title") == "" || c.Path() == "" {
			continue
		}
		out = append(out, c)
	}
	return out
}

// cardSelectors are the class/attribute shapes a video card has taken in
// the upstream markup. Tried in order; all matches of all selectors are
// considered.
var cardSelectors = []string{
	".video-thumb",
	".thumb-list__item",
	".video-item",
	"[data-video-id]",
}

// titleSelectors are the per-card title sources, first match wins.
var titleSelectors = []string{
	".video-thumb-info__name",
	"h3",
	"h4",
	".title",
}

// domCardStrategy reads the rendered structure when no script-embedded
// data is usable at all. Cards without an explicit id get one synthesized
// from the URL slug.
type domCardStrategy struct{}

func (s *domCardStrategy) Name() string { return "dom-cards" }

func (s *domCardStrategy) Extract(p *Page) []records.Candidate {
	doc, err := p.Doc()
	if err != nil {
		return nil
	}

	var out []records.Candidate
	seen := make(map[string]struct{})
	for _, sel := range cardSelectors {
		doc.Find(sel).Each(func(_ int, card *goquery.Selection) {
			c := extractCard(card)
			if c == nil {
				return
			}
			href := c.Path()
			if _, dup := seen[href]; dup {
				return
			}
			seen[href] = struct{}{}
			out = append(out, c)
		})
	}
	return out
}

// extractCard pulls one candidate out of a card element, or nil when the
// card has no /videos/ link.
func extractCard(card *goquery.Selection) records.Candidate {
	link := card.Find(`a[href*="/videos/"]`).First()
	href, ok := link.Attr("href")
	if !ok || href == "" {
		return nil
	}

	title := ""
	for _, sel := range titleSelectors {
		if t := strings.TrimSpace(card.Find(sel).First().Text()); t != "" {
			title = t
			break
		}
	}
	if title == "" {
		if t, ok := link.Attr("title"); ok {
			title = strings.TrimSpace(t)
		}
	}
	if title == "" {
		title = strings.TrimSpace(link.Text())
	}

	// Only the id gets a fallback; a card missing duration or views
	// stays incomplete and falls to the validity gate.
	c := records.Candidate{
		"pageURL": href,
		"title":   title,
	}

	img := card.Find("img").First()
	if src, ok := img.Attr("src"); ok && src != "" {
		c["thumbURL"] = src
	} else if src, ok := img.Attr("data-src"); ok {
		c["thumbURL"] = src
	}

	if secs, ok := normalize.ParseClock(card.Text()); ok {
		c["duration"] = secs
	}
	if views := card.Find(`[class*="view"]`).First(); views.Length() > 0 {
		if n, ok := normalize.FirstInt(views.Text()); ok {
			c["views"] = n
		}
	}

	if idAttr, ok := card.Attr("data-video-id"); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(idAttr)); err == nil && n > 0 {
			c["id"] = n
			return c
		}
	}
	c["id"] = normalize.SynthesizeID(normalize.LastSegment(normalize.CanonicalPath(href)))
	return c
}

// freeTextPatterns are the last-resort field-order scans applied to the
// entire raw document. Two orders are tried because the payload has
// shipped both; keys match with or without quotes, as in
// objectFieldPattern, since the payload is inconsistent about quoting.
var freeTextPatterns = []*regexp.Regexp{
	regexp.MustCompile(
		`"?id"?\s*:\s*(\d+)[^{}]*?"?title"?\s*:\s*"((?:[^"\\]|\\.)*)"[^{}]*?"?pageURL"?\s*:\s*"((?:[^"\\]|\\.)*)"[^{}]*?"?thumbURL"?\s*:\s*"((?:[^"\\]|\\.)*)"[^{}]*?"?duration"?\s*:\s*(\d+)[^{}]*?"?views"?\s*:\s*(\d+)`),
	regexp.MustCompile(
		`"?pageURL"?\s*:\s*"((?:[^"\\]|\\.)*)"[^{}]*?"?thumbURL"?\s*:\s*"((?:[^"\\]|\\.)*)"[^{}]*?"?title"?\s*:\s*"((?:[^"\\]|\\.)*)"[^{}]*?"?id"?\s*:\s*(\d+)[^{}]*?"?views"?\s*:\s*(\d+)[^{}]*?"?duration"?\s*:\s*(\d+)`),
}

// freeTextStrategy scans the whole document, not a located scope. Only
// matches whose path field contains /videos/ are accepted.
type freeTextStrategy struct{}

func (s *freeTextStrategy) Name() string { return "free-text" }

func (s *freeTextStrategy) Extract(p *Page) []records.Candidate {
	html := p.Raw()

	var out []records.Candidate
	for _, m := range freeTextPatterns[0].FindAllStringSubmatch(html, -1) {
		pageURL := unescapeJSON(m[3])
		if !strings.Contains(pageURL, "/videos/") {
			continue
		}
		id, _ := strconv.Atoi(m[1])
		duration, _ := strconv.Atoi(m[5])
		views, _ := strconv.Atoi(m[6])
		out = append(out, records.Candidate{
			"id":       id,
			"title":    unescapeJSON(m[2]),
			"pageURL":  pageURL,
			"thumbURL": unescapeJSON(m[4]),
			"duration": duration,
			"views":    views,
		})
	}
	if len(out) > 0 {
		return out
	}

	for _, m := range freeTextPatterns[1].FindAllStringSubmatch(html, -1) {
		pageURL := unescapeJSON(m[1])
		if !strings.Contains(pageURL, "/videos/") {
			continue
		}
		id, _ := strconv.Atoi(m[4])
		views, _ := strconv.Atoi(m[5])
		duration, _ := strconv.Atoi(m[6])
		out = append(out, records.Candidate{
			"id":       id,
			"title":    unescapeJSON(m[3]),
			"pageURL":  pageURL,
			"thumbURL": unescapeJSON(m[2]),
			"duration": duration,
			"views":    views,
		})
	}
	return out
}

// Pipeline drives an ordered list of strategies over one page.
//
// Strategies past the cumulative prefix run only while no candidates have
// been recovered; the first non-empty one wins. Strategies inside the
// prefix always run and their finds are appended, which is how
// related-video extraction merges all three script-embedded passes before
// considering the DOM fallback.
type Pipeline struct {
	strategies []Strategy
	cumulative int
	logger     utils.Logger
}

// NewSearchPipeline builds the cascade for search result pages: strict
// early exit at every stage.
func NewSearchPipeline(logger utils.Logger) *Pipeline {
	return newPipeline(searchScope, 0, logger)
}

// NewRelatedPipeline builds the cascade for the related-videos list on a
// detail page: the three script-embedded strategies accumulate, then DOM
// and free-text are fallbacks.
func NewRelatedPipeline(logger utils.Logger) *Pipeline {
	return newPipeline(relatedScope, 3, logger)
}

func newPipeline(scope scopeFunc, cumulative int, logger utils.Logger) *Pipeline {
	if logger == nil {
		logger = utils.NopLogger()
	}
	return &Pipeline{
		strategies: []Strategy{
			&embeddedJSONStrategy{scope: scope},
			&regexRecoveryStrategy{scope: scope},
			&bracketRecoveryStrategy{scope: scope},
			&domCardStrategy{},
			&freeTextStrategy{},
		},
		cumulative: cumulative,
		logger:     logger,
	}
}

// Run executes the cascade and returns the recovered candidates together
// with the names of the strategies that produced them, for diagnostics.
func (p *Pipeline) Run(page *Page) ([]records.Candidate, string) {
	var out []records.Candidate
	var used []string

	for i, s := range p.strategies {
		if i >= p.cumulative && len(out) > 0 {
			break
		}
		found := s.Extract(page)
		p.logger.WithFields(map[string]interface{}{
			"strategy":   s.Name(),
			"candidates": len(found),
		}).Debug("strategy pass")
		if len(found) > 0 {
			out = append(out, found...)
			used = append(used, s.Name())
		}
	}
	return out, strings.Join(used, "+")
}
