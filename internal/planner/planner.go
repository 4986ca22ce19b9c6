package planner

import (
	"fmt"
	"strconv"

	"github.com/backmassage/vp9batch/internal/naming"
)

// Plan returns the encoder argument list (without the executable name) for
// one pass over inputPath.
//
// Shared skeleton:
//
//	-hide_banner -nostdin -y -i <in> -vf scale=-1:<h>
//	-c:v libvpx-vp9 -b:v 0 -crf <q> -cpu-used <n> -row-mt <0|1>
//	-tile-columns <n> -threads <n> -pass <1|2> [-passlogfile <prefix>]
//
// Pass 1 appends "-an -f mp4 <null sink>"; pass 2 appends
// "-c:a <codec> -b:a <rate> <out>".
func Plan(p Params, inputPath, outputPath string, pass Pass) []string {
	args := make([]string, 0, 40)

	// --- Preamble ---
	args = append(args, "-hide_banner", "-nostdin", "-y")

	// --- Input and scale ---
	args = append(args, "-i", inputPath)
	args = append(args, "-vf", fmt.Sprintf("scale=-1:%d", p.Height))

	// --- Video codec (constant quality: bitrate target 0 lets CRF govern) ---
	args = append(args,
		"-c:v", VideoCodec,
		"-b:v", "0",
		"-crf", strconv.Itoa(p.CRF),
		"-cpu-used", strconv.Itoa(p.CPUUsed),
		"-row-mt", boolArg(p.RowMT),
		"-tile-columns", strconv.Itoa(p.TileColumns),
		"-threads", strconv.Itoa(p.Threads),
	)

	// --- Pass selection ---
	args = append(args, "-pass", strconv.Itoa(int(pass)))
	if p.PassLogDir != "" {
		args = append(args, "-passlogfile", naming.PassLogPrefix(inputPath, p.PassLogDir))
	}

	// --- Destination ---
	if pass == PassFirst {
		return append(args, "-an", "-f", NullFormat, p.NullSink)
	}
	return append(args,
		"-c:a", p.AudioCodec,
		"-b:a", p.AudioBitrate,
		outputPath,
	)
}

func boolArg(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
