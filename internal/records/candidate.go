// internal/records/candidate.go
package records

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Candidate is an unvalidated, loosely-typed record produced by an
// extraction strategy. Keys follow the upstream payload's naming
// (id, title, pageURL, thumbURL, duration, views, ...). Candidates live
// only inside the pipeline: they are built by a strategy, consumed by the
// Cleaner, and discarded.
type Candidate map[string]interface{}

// String returns the trimmed string form of a key, or "" when absent.
// Numeric values are formatted rather than dropped, since the upstream
// payload is inconsistent about quoting.
func (c Candidate) String(key string) string {
	v, ok := c[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// Int best-effort coerces a key to an integer. Non-numeric values report
// ok == false, which the Cleaner treats as "field absent".
func (c Candidate) Int(key string) (int, bool) {
	v, ok := c[key]
	if !ok || v == nil {
		return 0, false
	}
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		return int(t), true
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return int(n), true
		}
		if f, err := t.Float64(); err == nil {
			return int(f), true
		}
		return 0, false
	case string:
		s := strings.TrimSpace(t)
		if n, err := strconv.Atoi(s); err == nil {
			return n, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f), true
		}
		return 0, false
	default:
		return 0, false
	}
}

// Float best-effort coerces a key to a float64.
func (c Candidate) Float(key string) (float64, bool) {
	v, ok := c[key]
	if !ok || v == nil {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return f, true
		}
		return 0, false
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return f, true
		}
		return 0, false
	default:
		return 0, false
	}
}

// Bool coerces a key to a boolean, defaulting to false.
func (c Candidate) Bool(key string) bool {
	v, ok := c[key]
	if !ok || v == nil {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		return err == nil && b
	case float64:
		return t != 0
	default:
		return false
	}
}

// Sub returns a nested object as a Candidate, or nil when the key is
// absent or not an object.
func (c Candidate) Sub(key string) Candidate {
	v, ok := c[key]
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case map[string]interface{}:
		return Candidate(t)
	case Candidate:
		return t
	default:
		return nil
	}
}

// Path returns the candidate's raw page URL, checking the key aliases the
// strategies emit.
func (c Candidate) Path() string {
	for _, key := range []string{"pageURL", "pageUrl", "url", "link"} {
		if s := c.String(key); s != "" {
			return s
		}
	}
	return ""
}
