// internal/extract/detail.go
package extract

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/vidproxy/vidproxy/internal/normalize"
	"github.com/vidproxy/vidproxy/internal/records"
	"github.com/vidproxy/vidproxy/internal/utils"
)

// DetailExtractor recovers the single primary record from a video detail
// page. Unlike collection extraction it is lenient: a detail page always
// describes exactly one real video, so missing fields are filled with
// defaults instead of rejecting the record.
type DetailExtractor struct {
	norm   normalize.Normalizer
	logger utils.Logger
	now    func() time.Time
}

// NewDetailExtractor creates a detail extractor.
func NewDetailExtractor(norm normalize.Normalizer, logger utils.Logger) *DetailExtractor {
	if logger == nil {
		logger = utils.NopLogger()
	}
	return &DetailExtractor{norm: norm, logger: logger, now: time.Now}
}

// Extract returns the detail record, or nil when the page yields nothing
// usable at all (no title from either the payload or the DOM).
// requestedPath supplies the canonical page path when the payload omits
// its own URL.
func (de *DetailExtractor) Extract(p *Page, requestedPath string) *records.DetailRecord {
	if rec := de.fromPayload(p, requestedPath); rec != nil {
		return rec
	}
	de.logger.Debug("detail payload unusable, falling back to DOM")
	return de.fromDOM(p, requestedPath)
}

// fromPayload parses the hydration payload's primary record with the same
// repair-then-parse approach the collection strategies use.
func (de *DetailExtractor) fromPayload(p *Page, requestedPath string) *records.DetailRecord {
	raw, ok := detailScope(p.Raw())
	if !ok {
		return nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(RepairJSON(raw)), &m); err != nil {
		de.logger.WithField("error", err.Error()).Debug("detail payload parse failed")
		return nil
	}
	cand := records.Candidate(m)
	if cand.String("title") == "" {
		return nil
	}

	now := de.now()
	rec := &records.DetailRecord{
		Title:        cand.String("title"),
		Description:  cand.String("description"),
		ThumbnailURL: de.norm.EscapeForCDN(cand.String("thumbURL")),
		IsVR:         cand.Bool("isVR"),
		IsHD:         cand.Bool("isHD"),
		IsFHD:        cand.Bool("isFHD"),
		IsUHD:        cand.Bool("isUHD"),
	}

	rec.PagePath = normalize.CanonicalPath(cand.Path())
	if rec.PagePath == "" {
		rec.PagePath = requestedPath
	}
	if id, ok := cand.Int("id"); ok && id > 0 {
		rec.ID = id
	} else {
		rec.ID = normalize.SynthesizeUniqueID(normalize.LastSegment(rec.PagePath), now)
	}
	if d, ok := cand.Int("duration"); ok {
		rec.DurationSeconds = d
	}
	if v, ok := cand.Int("views"); ok {
		rec.ViewCount = v
	}
	if r, ok := cand.Float("rating"); ok {
		rec.RatingValue = r
	}
	if n, ok := cand.Int("comments"); ok {
		rec.CommentCount = n
	}
	if created, ok := cand.Int("created"); ok {
		rec.CreatedAt = int64(created)
	} else {
		rec.CreatedAt = now.Unix()
	}

	if author := cand.Sub("author"); author != nil {
		info := &records.AuthorInfo{
			Name:     author.String("name"),
			PagePath: author.String("pageURL"),
			Verified: author.Bool("verified"),
		}
		if id, ok := author.Int("id"); ok {
			info.ID = id
		}
		rec.Author = info
	}
	return rec
}

// fromDOM rebuilds a minimal record from meta tags, the first heading,
// and the canonical link.
func (de *DetailExtractor) fromDOM(p *Page, requestedPath string) *records.DetailRecord {
	doc, err := p.Doc()
	if err != nil {
		return nil
	}

	title, _ := doc.Find(`meta[property="og:title"]`).Attr("content")
	title = strings.TrimSpace(title)
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}
	if title == "" {
		return nil
	}

	now := de.now()
	rec := &records.DetailRecord{
		Title:     title,
		PagePath:  requestedPath,
		CreatedAt: now.Unix(),
	}
	if canonical, ok := doc.Find(`link[rel="canonical"]`).Attr("href"); ok {
		if path := normalize.CanonicalPath(canonical); path != "" {
			rec.PagePath = path
		}
	}
	if desc, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok {
		rec.Description = strings.TrimSpace(desc)
	}
	if image, ok := doc.Find(`meta[property="og:image"]`).Attr("content"); ok {
		rec.ThumbnailURL = de.norm.EscapeForCDN(strings.TrimSpace(image))
	}
	if dur, ok := doc.Find(`meta[property="og:video:duration"]`).Attr("content"); ok {
		if n, found := normalize.FirstInt(dur); found {
			rec.DurationSeconds = n
		}
	}
	rec.ID = normalize.SynthesizeUniqueID(normalize.LastSegment(rec.PagePath), now)
	return rec
}
