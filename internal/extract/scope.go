// internal/extract/scope.go
package extract

import "strings"

// The hydration payload is one script tag among many, and the document as
// a whole is not one well-formed JSON value. Scopes are therefore located
// textually: walk a chain of quoted keys, then slice the bracketed value
// by delimiter matching with string-literal and escape awareness.

// searchScope locates the search results array in a search page.
func searchScope(html string) (string, bool) {
	return locateValue(html, '[', ']', "searchResult", "videoThumbProps")
}

// relatedScope locates the related-videos array in a detail page.
func relatedScope(html string) (string, bool) {
	return locateValue(html, '[', ']', "relatedVideosComponent", "videoTabInitialData", "videoListProps", "videoThumbProps")
}

// detailScope locates the detail page's primary record object.
func detailScope(html string) (string, bool) {
	return locateValue(html, '{', '}', "videoModel")
}

// locateValue walks the key chain by successive index search, then
// extracts the balanced open..close span following the final key.
func locateValue(html string, open, close byte, keys ...string) (string, bool) {
	pos := 0
	for _, key := range keys {
		idx := strings.Index(html[pos:], `"`+key+`"`)
		if idx < 0 {
			return "", false
		}
		pos += idx + len(key) + 2
	}
	start := strings.IndexByte(html[pos:], open)
	if start < 0 {
		return "", false
	}
	return sliceBalanced(html, pos+start, open, close)
}

// sliceBalanced returns the substring from start through the delimiter
// that closes html[start]. It tracks string-literal and escape state so
// braces inside quoted values do not miscount depth.
func sliceBalanced(html string, start int, open, close byte) (string, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(html); i++ {
		c := html[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case c == '\\':
			if inString {
				escaped = true
			}
		case c == '"':
			inString = !inString
		case inString:
		case c == open:
			depth++
		case c == close:
			depth--
			if depth == 0 {
				return html[start : i+1], true
			}
		}
	}
	return "", false
}

// topLevelObjects returns every balanced {...} span at the outermost
// nesting level of s, using the same string/escape-aware scan.
func topLevelObjects(s string) []string {
	var spans []string
	depth := 0
	inString := false
	escaped := false
	objStart := -1

	for i := 0; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case c == '\\':
			if inString {
				escaped = true
			}
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			if depth == 0 {
				objStart = i
			}
			depth++
		case c == '}':
			depth--
			if depth == 0 && objStart >= 0 {
				spans = append(spans, s[objStart:i+1])
				objStart = -1
			}
		}
	}
	return spans
}
