// internal/extract/metadata.go
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/vidproxy/vidproxy/internal/normalize"
	"github.com/vidproxy/vidproxy/internal/records"
)

// ExtractMetadata reads the fixed set of Open-Graph/Twitter-card meta
// attributes from a page. All values are optional; URL-valued fields are
// rewritten through the normalizer for CDN compatibility.
func ExtractMetadata(p *Page, norm normalize.Normalizer) records.PageMetadata {
	var md records.PageMetadata
	doc, err := p.Doc()
	if err != nil {
		return md
	}

	md.Title = metaContent(doc, `meta[property="og:title"]`)
	md.Description = metaContent(doc, `meta[property="og:description"]`)
	md.Image = norm.EscapeForCDN(metaContent(doc, `meta[property="og:image"]`))
	md.URL = metaContent(doc, `meta[property="og:url"]`)
	md.Type = metaContent(doc, `meta[property="og:type"]`)
	md.SiteName = metaContent(doc, `meta[property="og:site_name"]`)
	md.TwitterCard = metaContent(doc, `meta[name="twitter:card"]`)
	md.TwitterTitle = metaContent(doc, `meta[name="twitter:title"]`)
	md.TwitterDescription = metaContent(doc, `meta[name="twitter:description"]`)
	md.TwitterImage = norm.EscapeForCDN(metaContent(doc, `meta[name="twitter:image"]`))
	return md
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}
