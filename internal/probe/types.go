package probe

import (
	"strconv"
	"time"
)

// FormatInfo holds container-level metadata from ffprobe's format section.
type FormatInfo struct {
	Filename   string
	FormatName string
	Duration   time.Duration
	Size       int64
	BitRate    int64
}

// VideoStream holds the parsed properties of a single video stream.
type VideoStream struct {
	Index         int
	Codec         string
	Width         int
	Height        int
	AvgFrameRate  string
	IsAttachedPic bool
}

// AudioStream holds the parsed properties of a single audio stream.
type AudioStream struct {
	Index      int
	Codec      string
	Channels   int
	SampleRate int
}

// Result is the parsed output of a single ffprobe JSON call.
// PrimaryVideo is the first non-attached-pic video stream (nil if none).
type Result struct {
	Format       FormatInfo
	PrimaryVideo *VideoStream
	AudioStreams []AudioStream
}

// Resolution returns "WxH" for the primary video stream, or "unknown".
func (r *Result) Resolution() string {
	if r.PrimaryVideo == nil || r.PrimaryVideo.Width <= 0 || r.PrimaryVideo.Height <= 0 {
		return "unknown"
	}
	return strconv.Itoa(r.PrimaryVideo.Width) + "x" + strconv.Itoa(r.PrimaryVideo.Height)
}

// HasAudio reports whether the source carries at least one audio stream.
func (r *Result) HasAudio() bool {
	return len(r.AudioStreams) > 0
}

// Upscales reports whether scaling to targetHeight would enlarge the
// primary video. Unknown dimensions report false.
func (r *Result) Upscales(targetHeight int) bool {
	return r.PrimaryVideo != nil && r.PrimaryVideo.Height > 0 && r.PrimaryVideo.Height < targetHeight
}
