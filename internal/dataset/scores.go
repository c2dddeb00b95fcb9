package dataset

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var leadingFloatRe = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseScores decodes "cat:weight;cat:weight" strings. The weight is the
// number at the start of the text between the first and second colon, so
// "eng: 3pts" and "eng:3:1" both read as 3. Segments without a colon, with
// an empty category, or with a zero or non-numeric weight are dropped.
func ParseScores(s string) map[string]float64 {
	out := map[string]float64{}
	for _, seg := range strings.Split(s, ";") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		key, val, ok := strings.Cut(seg, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		val, _, _ = strings.Cut(val, ":")
		f, ok := LeadingFloat(val)
		if !ok || f == 0 {
			continue
		}
		out[key] = f
	}
	return out
}

// LeadingFloat reads the finite number at the start of s after any leading
// space, ignoring whatever follows it.
func LeadingFloat(s string) (float64, bool) {
	m := leadingFloatRe.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
