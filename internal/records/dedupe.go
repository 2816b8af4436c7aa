// internal/records/dedupe.go
package records

import (
	"strconv"

	"github.com/vidproxy/vidproxy/internal/normalize"
)

// keyFields extracts the three identifying fields used for duplicate
// detection. The path is canonicalized first so that two candidates
// carrying the same video under different URL suffixes still collide.
func keyFields(c Candidate) (id, title, path string) {
	if n, ok := c.Int("id"); ok {
		id = strconv.Itoa(n)
	}
	title = c.String("title")
	raw := c.Path()
	if path = normalize.CanonicalPath(raw); path == "" {
		path = raw
	}
	return id, title, path
}

// DedupeExact removes candidates whose (id, title, path) triple has
// already been seen, keeping the first occurrence and preserving relative
// order. It returns the kept candidates and the number removed. This is
// the related-videos policy.
func DedupeExact(cands []Candidate) ([]Candidate, int) {
	seen := make(map[string]struct{}, len(cands))
	kept := make([]Candidate, 0, len(cands))
	for _, c := range cands {
		id, title, path := keyFields(c)
		key := id + "\x00" + title + "\x00" + path
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, c)
	}
	return kept, len(cands) - len(kept)
}

// DedupeAnyField removes candidates that collide with an earlier one on
// id alone, title alone, or path alone. This stricter policy applies to
// search results only; related videos collapse solely on the full
// composite key. The asymmetry is observed upstream behavior, preserved
// deliberately.
func DedupeAnyField(cands []Candidate) ([]Candidate, int) {
	seenID := make(map[string]struct{}, len(cands))
	seenTitle := make(map[string]struct{}, len(cands))
	seenPath := make(map[string]struct{}, len(cands))
	kept := make([]Candidate, 0, len(cands))

	for _, c := range cands {
		id, title, path := keyFields(c)
		dup := false
		if id != "" {
			if _, ok := seenID[id]; ok {
				dup = true
			}
		}
		if title != "" {
			if _, ok := seenTitle[title]; ok {
				dup = true
			}
		}
		if path != "" {
			if _, ok := seenPath[path]; ok {
				dup = true
			}
		}
		if dup {
			continue
		}
		if id != "" {
			seenID[id] = struct{}{}
		}
		if title != "" {
			seenTitle[title] = struct{}{}
		}
		if path != "" {
			seenPath[path] = struct{}{}
		}
		kept = append(kept, c)
	}
	return kept, len(cands) - len(kept)
}
