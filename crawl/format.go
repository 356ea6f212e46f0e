package crawl

import (
	"fmt"
	"strings"
)

// TruncateURL shortens a URL for display. The scheme is dropped and, when
// the rest is longer than maxLen, its head is replaced by "..." so the path
// tail stays visible.
func TruncateURL(url string, maxLen int) string {
	url = strings.TrimPrefix(strings.TrimPrefix(url, "https://"), "http://")
	switch {
	case maxLen <= 0:
		return ""
	case len(url) <= maxLen:
		return url
	case maxLen < 4:
		return url[:maxLen]
	default:
		return "..." + url[len(url)-maxLen+3:]
	}
}

// FormatBytes renders a byte count with a binary unit suffix.
func FormatBytes(n int) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	size := float64(n) / 1024
	for _, unit := range []string{"KB", "MB"} {
		if size < 1024 {
			return fmt.Sprintf("%.1f %s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%.1f GB", size)
}

// Summary renders a one-line description of a finished batch.
func (r Result) Summary() string {
	line := fmt.Sprintf("%d fetched, %d skipped, %d enqueued", r.Yielded, r.Skipped, r.Enqueued)
	if r.Blocked > 0 {
		line += fmt.Sprintf(", %d blocked by robots.txt", r.Blocked)
	}
	return line
}
