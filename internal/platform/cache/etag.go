package cache

import (
	"fmt"
	"strings"

	"github.com/zeebo/xxh3"
)

// ETag returns a strong entity tag for body.
func ETag(body []byte) string {
	sum := xxh3.Hash128(body)
	return fmt.Sprintf(`"%016x%016x"`, sum.Hi, sum.Lo)
}

// MatchesIfNoneMatch reports whether an If-None-Match header value matches
// etag using weak comparison.
func MatchesIfNoneMatch(header, etag string) bool {
	header = strings.TrimSpace(header)
	if header == "" {
		return false
	}
	if header == "*" {
		return true
	}

	want := strings.TrimPrefix(etag, "W/")
	for _, candidate := range strings.Split(header, ",") {
		if strings.TrimPrefix(strings.TrimSpace(candidate), "W/") == want {
			return true
		}
	}
	return false
}
