package crawl

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// ComputeHash returns the fingerprint of content: its 64-bit xxHash as
// 16 lowercase hex digits. It is a dedup key, not a security primitive;
// colliding inputs are treated as duplicates.
func ComputeHash(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}
