// internal/extract/repair.go
package extract

import (
	"encoding/json"
	"regexp"
)

// The hydration payload is frequently not strict JSON: object keys appear
// unquoted and trailing commas survive minification. RepairJSON fixes the
// two observed malformations; anything worse falls through to the
// recovery strategies.

var (
	trailingCommaPattern = regexp.MustCompile(`,\s*([}\]])`)
	bareKeyPattern       = regexp.MustCompile(`([{\[,]\s*)([A-Za-z_$][A-Za-z0-9_$]*)\s*:`)
)

// RepairJSON strips trailing commas before '}' or ']' and quotes object
// keys matching identifier syntax. Best effort: it operates textually and
// can touch string contents that happen to look like bare keys.
func RepairJSON(s string) string {
	s = trailingCommaPattern.ReplaceAllString(s, "$1")
	s = bareKeyPattern.ReplaceAllString(s, `$1"$2":`)
	return s
}

// unescapeJSON decodes a JSON string body (the text between the quotes).
// On malformed escapes it returns the input unchanged rather than losing
// the value.
func unescapeJSON(s string) string {
	var out string
	if err := json.Unmarshal([]byte(`"`+s+`"`), &out); err != nil {
		return s
	}
	return out
}
