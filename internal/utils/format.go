package utils

import (
	"fmt"
	"time"
)

// FormatSince returns how long ago t was, e.g. "15m ago".
func FormatSince(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return formatAge(time.Since(t))
}

func formatAge(since time.Duration) string {
	const (
		day   = 24 * time.Hour
		week  = 7 * day
		month = 30 * day
		year  = 365 * day
	)

	switch {
	case since < 0:
		// Clock skew between machines sharing a results store.
		return "0s ago"
	case since < time.Minute:
		return fmt.Sprintf("%ds ago", int(since.Seconds()))
	case since < time.Hour:
		return fmt.Sprintf("%dm ago", int(since.Minutes()))
	case since < day:
		return fmt.Sprintf("%dh ago", int(since.Hours()))
	case since < week:
		return fmt.Sprintf("%dd ago", int(since/day))
	case since < month:
		return fmt.Sprintf("%dw ago", int(since/week))
	case since < year:
		return fmt.Sprintf("%dmo ago", int(since/month))
	}
	return fmt.Sprintf("%dy ago", int(since/year))
}

// FormatBytes renders a byte count with binary units, e.g. "1.0 GiB".
// Non-positive counts render as "unlimited", matching the memory limit
// semantics.
func FormatBytes(n int64) string {
	if n <= 0 {
		return "unlimited"
	}
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
