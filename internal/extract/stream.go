// internal/extract/stream.go
package extract

import (
	"regexp"
	"strings"
)

// streamKeyPattern matches the direct media URL keys the payload has
// carried across format revisions.
var streamKeyPattern = regexp.MustCompile(
	`"(?:mp4File|streamURL|videoUrl|fallbackUrl)"\s*:\s*"((?:[^"\\]|\\.)+)"`)

// ExtractStreamURL returns the page's direct media stream URL, or ""
// when none is present. Only the URL is extracted; media bytes are never
// proxied.
func ExtractStreamURL(p *Page) string {
	if m := streamKeyPattern.FindStringSubmatch(p.Raw()); m != nil {
		return unescapeJSON(m[1])
	}

	doc, err := p.Doc()
	if err != nil {
		return ""
	}
	if src, ok := doc.Find("video source[src], video[src]").First().Attr("src"); ok {
		return strings.TrimSpace(src)
	}
	if content, ok := doc.Find(`meta[property="og:video"], meta[property="og:video:url"]`).First().Attr("content"); ok {
		return strings.TrimSpace(content)
	}
	return ""
}
