package display

import (
	"bytes"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/kballard/go-shellquote"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"zero", 0, "0 B"},
		{"small bytes", 512, "512 B"},
		{"exactly 1 KiB", 1024, "1.0 KiB"},
		{"1.5 KiB", 1536, "1.5 KiB"},
		{"1 MiB", 1024 * 1024, "1.0 MiB"},
		{"1 GiB", 1024 * 1024 * 1024, "1.0 GiB"},
		{"typical file 700 MiB", 734003200, "700 MiB"},
		{"just under 10 KiB", 10137, "9.9 KiB"},
		{"4.7 GiB", 5046586572, "4.7 GiB"},
		{"negative", -1024 * 1024, "-1.0 MiB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatBytes(tt.bytes)
			if got != tt.want {
				t.Errorf("FormatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestFormatBitrate(t *testing.T) {
	tests := []struct {
		name string
		bps  int64
		want string
	}{
		{"unknown", 0, "unknown"},
		{"sub-megabit", 800_000, "800 kbps"},
		{"exactly 1 Mbps", 1_000_000, "1.0 Mbps"},
		{"typical video", 6_873_456, "6.9 Mbps"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatBitrate(tt.bps); got != tt.want {
				t.Errorf("FormatBitrate(%d) = %q, want %q", tt.bps, got, tt.want)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{-time.Second, "0:00"},
		{9*time.Second + 900*time.Millisecond, "0:09"},
		{75 * time.Second, "1:15"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03"},
		{26 * time.Hour, "26:00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatDuration(tt.d); got != tt.want {
				t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

func TestFormatRatio(t *testing.T) {
	if got := FormatRatio(1000, 370); got != "37%" {
		t.Errorf("got %q", got)
	}
	if got := FormatRatio(0, 10); got != "n/a" {
		t.Errorf("got %q", got)
	}
}

func TestFormatCommand(t *testing.T) {
	args := []string{"-i", "/in/my clip.mov", "-vf", "scale=-1:720", "/out/it's.mp4", ""}
	got := FormatCommand("ffmpeg", args)

	if !strings.HasPrefix(got, "ffmpeg -i '/in/my clip.mov' -vf scale=-1:720 ") {
		t.Errorf("FormatCommand = %s", got)
	}
	// The line must split back into exactly the original argv.
	words, err := shellquote.Split(got)
	if err != nil {
		t.Fatalf("Split(%s): %v", got, err)
	}
	want := append([]string{"ffmpeg"}, args...)
	if !slices.Equal(words, want) {
		t.Errorf("round trip:\n got %q\nwant %q", words, want)
	}
}

func TestPrintBanner(t *testing.T) {
	var plain bytes.Buffer
	PrintBanner(&plain, "v1.2.3", false)
	if !strings.HasPrefix(plain.String(), "vp9batch v1.2.3\n") {
		t.Errorf("plain banner: %q", plain.String())
	}
	if strings.Contains(plain.String(), "\033[") {
		t.Error("plain banner contains escape codes")
	}

	var colored bytes.Buffer
	PrintBanner(&colored, "v1.2.3", true)
	if !strings.Contains(colored.String(), bannerColor) {
		t.Error("colored banner missing escape codes")
	}
}
