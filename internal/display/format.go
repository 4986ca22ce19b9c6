// Package display holds human-facing formatting helpers for console output.
package display

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatBytes returns a human-readable IEC size ("512 B", "1.5 KiB",
// "700 MiB"). Negative values keep their sign.
func FormatBytes(bytes int64) string {
	if bytes < 0 {
		return "-" + humanize.IBytes(uint64(-bytes))
	}
	return humanize.IBytes(uint64(bytes))
}

// FormatBitrate renders bits per second as kbps or Mbps; "unknown" for 0.
func FormatBitrate(bps int64) string {
	kbps := bps / 1000
	switch {
	case kbps <= 0:
		return "unknown"
	case kbps < 1000:
		return fmt.Sprintf("%d kbps", kbps)
	default:
		return fmt.Sprintf("%.1f Mbps", float64(kbps)/1000)
	}
}

// FormatDuration renders d as H:MM:SS, or M:SS below one hour. Sub-second
// precision is truncated.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	h, m, s := total/3600, (total/60)%60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatRatio returns out as a whole percentage of in ("37%"); "n/a" when
// in is not positive.
func FormatRatio(in, out int64) string {
	if in <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%d%%", out*100/in)
}
