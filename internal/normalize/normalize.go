// Package normalize canonicalizes scraped URLs and synthesizes fallback
// identifiers for records that arrive without one.
package normalize

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// videoPathPattern matches the first path segment after /videos/, ignoring
// any trailing path, query, or fragment suffix.
var videoPathPattern = regexp.MustCompile(`/videos/([^/?#&]+)`)

// CanonicalPath reduces a raw URL to its canonical short form
// "videos/<slug>". It returns "" when the input carries no /videos/
// segment, which callers treat as "not a video URL".
func CanonicalPath(raw string) string {
	m := videoPathPattern.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	return "videos/" + m[1]
}

// cdnEscapes are the only characters known to break the CDN's URL parser
// when they appear literally in filenames on that host.
var cdnEscapes = strings.NewReplacer(
	"(", "%28",
	")", "%29",
	",", "%2C",
)

// Normalizer rewrites thumbnail URLs for the configured CDN host.
type Normalizer struct {
	// CDNHost is the media host whose filenames require escaping.
	// URLs on any other host pass through unchanged.
	CDNHost string
}

// EscapeForCDN percent-escapes '(' ')' ',' in URLs on the CDN host.
// Idempotent: an already-escaped URL contains none of those literals.
func (n Normalizer) EscapeForCDN(raw string) string {
	if n.CDNHost == "" {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil || !strings.EqualFold(u.Hostname(), n.CDNHost) {
		return raw
	}
	return cdnEscapes.Replace(raw)
}

// ParseClock converts a "MM:SS" or "H:MM:SS" duration badge to total
// seconds. The boolean reports whether the text matched.
func ParseClock(text string) (int, bool) {
	m := clockPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	total := 0
	for _, part := range strings.Split(m[1], ":") {
		v, err := strconv.Atoi(part)
		if err != nil {
			return 0, false
		}
		total = total*60 + v
	}
	return total, true
}

var clockPattern = regexp.MustCompile(`\b(\d{1,2}(?::\d{2}){1,2})\b`)

// FirstInt returns the first run of digits in s as an integer.
func FirstInt(s string) (int, bool) {
	m := digitRun.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return v, true
}

var digitRun = regexp.MustCompile(`\d+`)

// LastSegment returns the portion of a path after its final '/'.
func LastSegment(path string) string {
	path = strings.TrimRight(strings.TrimSpace(path), "/")
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}
