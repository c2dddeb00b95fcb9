// Package textsort orders display text the way a browser's localeCompare
// does, so "apple" sorts before "Banana".
package textsort

import (
	"sort"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var (
	mu       sync.Mutex
	collator = collate.New(language.Und)
)

// Compare returns -1, 0 or 1 by collation order.
func Compare(a, b string) int {
	mu.Lock()
	defer mu.Unlock()
	return collator.CompareString(a, b)
}

// Less reports whether a collates before b.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// Strings sorts s in place by collation order.
func Strings(s []string) {
	sort.SliceStable(s, func(i, j int) bool { return Less(s[i], s[j]) })
}
