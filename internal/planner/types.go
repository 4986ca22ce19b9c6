package planner

import (
	"runtime"

	"github.com/backmassage/vp9batch/internal/config"
)

// Pass identifies one of the two encoder invocations per job.
type Pass int

const (
	PassFirst  Pass = 1 // Statistics gathering; video only, output discarded.
	PassSecond Pass = 2 // Final encode; video and audio to the real output.
)

// String returns "pass 1" / "pass 2".
func (p Pass) String() string {
	switch p {
	case PassFirst:
		return "pass 1"
	case PassSecond:
		return "pass 2"
	}
	return "pass ?"
}

// Passes lists both passes in execution order.
var Passes = []Pass{PassFirst, PassSecond}

// Fixed codec identifiers.
const (
	VideoCodec = "libvpx-vp9"
	NullFormat = "mp4" // muxer used for the discarded pass-1 output
)

// Params holds every encoder setting that is constant across a batch.
type Params struct {
	Height      int
	CRF         int
	CPUUsed     int
	RowMT       bool
	TileColumns int
	Threads     int

	AudioCodec   string
	AudioBitrate string

	PassLogDir string // empty: encoder default
	NullSink   string // pass-1 destination
}

// DefaultParams returns the stock settings for the current platform.
func DefaultParams() Params {
	cfg := config.DefaultConfig()
	return FromConfig(&cfg)
}

// FromConfig derives Params from a validated Config.
func FromConfig(cfg *config.Config) Params {
	return Params{
		Height:       cfg.VP9.Height,
		CRF:          cfg.VP9.CRF,
		CPUUsed:      cfg.VP9.CPUUsed,
		RowMT:        cfg.VP9.RowMT,
		TileColumns:  cfg.VP9.TileColumns,
		Threads:      cfg.EffectiveThreads(),
		AudioCodec:   cfg.Audio.Codec,
		AudioBitrate: cfg.Audio.Bitrate,
		PassLogDir:   cfg.Encoder.PassLogDir,
		NullSink:     NullSink(runtime.GOOS),
	}
}

// NullSink returns the platform discard device for goos.
func NullSink(goos string) string {
	if goos == "windows" {
		return "NUL"
	}
	return "/dev/null"
}
