package config

// This file binds CLI flags onto a Config. Flags are grouped into encoder,
// VP9, audio, output/behavior and display sets; values default to whatever
// the Config already holds so help text shows the effective defaults.

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// BindFlags registers every tunable on fs, writing straight into cfg.
func BindFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "TOML config file (ignored when missing)")

	defineEncoderFlags(fs, cfg)
	defineVP9Flags(fs, cfg)
	defineAudioFlags(fs, cfg)
	defineOutputFlags(fs, cfg)
	defineDisplayFlags(fs, cfg)
}

// defineEncoderFlags registers --ffmpeg, --ffprobe, --passlog-dir.
func defineEncoderFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.Encoder.Binary, "ffmpeg", cfg.Encoder.Binary, "Encoder executable (looked up on PATH)")
	fs.StringVar(&cfg.Encoder.ProbeBinary, "ffprobe", cfg.Encoder.ProbeBinary, "Probe executable (looked up on PATH)")
	fs.StringVar(&cfg.Encoder.PassLogDir, "passlog-dir", cfg.Encoder.PassLogDir, "Directory for two-pass statistics files")
}

// defineVP9Flags registers the quality and threading knobs.
func defineVP9Flags(fs *pflag.FlagSet, cfg *Config) {
	fs.IntVar(&cfg.VP9.Height, "height", cfg.VP9.Height, "Target height in pixels (width keeps aspect ratio)")
	fs.IntVarP(&cfg.VP9.CRF, "crf", "q", cfg.VP9.CRF, "Constant quality factor (0-63)")
	fs.IntVar(&cfg.VP9.CPUUsed, "cpu-used", cfg.VP9.CPUUsed, "libvpx speed/effort trade-off (-8..8)")
	fs.BoolVar(&cfg.VP9.RowMT, "row-mt", cfg.VP9.RowMT, "Enable row-based multithreading")
	fs.IntVar(&cfg.VP9.TileColumns, "tile-columns", cfg.VP9.TileColumns, "log2 of tile columns (0-6)")
	fs.IntVarP(&cfg.VP9.Threads, "threads", "t", cfg.VP9.Threads, "Encoder threads (0 = one per CPU)")
}

// defineAudioFlags registers --audio-codec and --audio-bitrate.
func defineAudioFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.Audio.Codec, "audio-codec", cfg.Audio.Codec, "Pass-2 audio encoder")
	fs.StringVar(&cfg.Audio.Bitrate, "audio-bitrate", cfg.Audio.Bitrate, "Pass-2 audio bitrate (e.g. 128k)")
}

// defineOutputFlags registers output location and behavior flags.
func defineOutputFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVarP(&cfg.Output.Dir, "out", "o", cfg.Output.Dir, "Output directory (default: <input_dir>/vp9)")
	fs.StringVar(&cfg.Output.Ext, "ext", cfg.Output.Ext, "Output file extension")
	fs.BoolVar(&cfg.Output.SkipExisting, "skip-existing", cfg.Output.SkipExisting, "Skip jobs whose output already exists")
	fs.BoolVarP(&cfg.DryRun, "dry-run", "d", cfg.DryRun, "Print the encoder commands without running them")
	fs.BoolVar(&cfg.Probe, "probe", cfg.Probe, "Log source resolution and duration via ffprobe")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", cfg.MetricsFile, "Write Prometheus text metrics here at batch end")
	fs.StringVar(&cfg.ReportFile, "report", cfg.ReportFile, "Write a JSON batch report here at batch end")
}

// defineDisplayFlags registers logging flags.
func defineDisplayFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "Log level: debug | info | warn | error")
	fs.Var(&logFormatValue{&cfg.Log.Format}, "log-format", "Console log format: console | json")
	fs.Var(&colorModeValue{&cfg.Log.Color}, "color", "Colored logs: auto | always | never")
	fs.StringVarP(&cfg.Log.File, "log", "l", cfg.Log.File, "Append JSON logs to file")
}

// pflag.Value adapters so the enum types can be bound with fs.Var.

type colorModeValue struct{ p *ColorMode }

func (c *colorModeValue) String() string { return string(*c.p) }
func (c *colorModeValue) Type() string   { return "mode" }
func (c *colorModeValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "auto":
		*c.p = ColorAuto
	case "always":
		*c.p = ColorAlways
	case "never":
		*c.p = ColorNever
	default:
		return fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", s)
	}
	return nil
}

type logFormatValue struct{ p *LogFormat }

func (l *logFormatValue) String() string { return string(*l.p) }
func (l *logFormatValue) Type() string   { return "format" }
func (l *logFormatValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "console", "text":
		*l.p = LogFormatConsole
	case "json":
		*l.p = LogFormatJSON
	default:
		return fmt.Errorf("invalid log format %q (use 'console' or 'json')", s)
	}
	return nil
}
