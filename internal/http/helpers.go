package http

import (
	"strconv"
	"strings"
)

// sanitizeInput trims s and drops control characters other than tab and
// line breaks.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// cacheKey builds a view cache key. The revision and date make every key
// stale after a mutation or at midnight.
func cacheKey(revision uint64, today string, parts ...string) string {
	return today + "|" + strings.Join(parts, "|") + "@" + strconv.FormatUint(revision, 10)
}
