// internal/normalize/hash.go
package normalize

import "time"

// Hash32 computes a 32-bit signed polynomial hash of s with wraparound
// arithmetic (h = h*31 + code, expressed as a shift so the rollover is
// explicit) and returns its absolute value. It is not cryptographic;
// collisions are acceptable, since callers use it only as a last-resort
// identifier when the source exposes none.
func Hash32(s string) int {
	var h int32
	for _, r := range s {
		h = (h << 5) - h + int32(r)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return int(v)
}

// SynthesizeID derives a stable fallback id from a video slug.
func SynthesizeID(slug string) int {
	return Hash32(slug)
}

// SynthesizeUniqueID derives a fallback id mixed with a sub-second
// timestamp component, for call sites where ids minted at different times
// must not collide on the same slug.
func SynthesizeUniqueID(slug string, now time.Time) int {
	return Hash32(slug) + now.Nanosecond()/int(time.Millisecond)
}
