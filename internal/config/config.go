// Package config holds runtime configuration: defaults, the optional TOML
// file, environment overrides, CLI flag binding, and validation.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/backmassage/vp9batch/internal/naming"
)

// --- Enum types for validated string fields ---

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// LogFormat selects the console log encoding.
type LogFormat string

const (
	LogFormatConsole LogFormat = "console" // Human-readable lines (default).
	LogFormatJSON    LogFormat = "json"    // One JSON object per line.
)

// EncoderConfig describes the external encoder binaries.
type EncoderConfig struct {
	Binary      string `toml:"binary" envconfig:"BINARY"`           // Default: "ffmpeg", resolved via PATH.
	ProbeBinary string `toml:"probe_binary" envconfig:"PROBE_BINARY"` // Default: "ffprobe".
	PassLogDir  string `toml:"passlog_dir" envconfig:"PASSLOG_DIR"`   // Empty: encoder default (working dir).
}

// VP9Config holds the libvpx-vp9 quality and threading parameters shared by
// both passes.
type VP9Config struct {
	Height      int  `toml:"height" envconfig:"HEIGHT"`             // Default: 720 (width follows aspect ratio).
	CRF         int  `toml:"crf" envconfig:"CRF"`                   // Default: 30.
	CPUUsed     int  `toml:"cpu_used" envconfig:"CPU_USED"`         // Default: 1.
	RowMT       bool `toml:"row_mt" envconfig:"ROW_MT"`             // Default: true.
	TileColumns int  `toml:"tile_columns" envconfig:"TILE_COLUMNS"` // Default: 1 (log2 of columns).
	Threads     int  `toml:"threads" envconfig:"THREADS"`           // Default: 8. 0 means one per CPU.
}

// AudioConfig holds the pass-2 audio settings.
type AudioConfig struct {
	Codec   string `toml:"codec" envconfig:"CODEC"`     // Default: "aac".
	Bitrate string `toml:"bitrate" envconfig:"BITRATE"` // Default: "128k".
}

// OutputConfig controls where encoded files land.
type OutputConfig struct {
	Dir          string `toml:"dir" envconfig:"DIR"` // Default: "<input_dir>/vp9".
	Ext          string `toml:"ext" envconfig:"EXT"` // Default: "mp4".
	SkipExisting bool   `toml:"skip_existing" envconfig:"SKIP_EXISTING"`
}

// LogConfig controls logger construction.
type LogConfig struct {
	Level  string    `toml:"level" envconfig:"LEVEL"`   // Default: "info".
	Format LogFormat `toml:"format" envconfig:"FORMAT"` // Default: "console".
	File   string    `toml:"file" envconfig:"FILE"`     // Optional JSON-lines log file.
	Color  ColorMode `toml:"color" envconfig:"COLOR"`   // Default: "auto".
}

// Config holds all runtime settings. It is populated by [DefaultConfig],
// then by [Load] (file and environment) and finally by CLI flags bound with
// [BindFlags], before being passed by pointer to the packages that need it.
type Config struct {
	// Set from positional args and --config; never read from file or env.
	InputDir   string `toml:"-" ignored:"true"`
	ConfigFile string `toml:"-" ignored:"true"`

	Encoder EncoderConfig `toml:"encoder" envconfig:"ENCODER"`
	VP9     VP9Config     `toml:"vp9" envconfig:"VP9"`
	Audio   AudioConfig   `toml:"audio" envconfig:"AUDIO"`
	Output  OutputConfig  `toml:"output" envconfig:"OUTPUT"`
	Log     LogConfig     `toml:"log" envconfig:"LOG"`

	// Behavior flags.
	DryRun bool `toml:"dry_run" envconfig:"DRY_RUN"`
	Probe  bool `toml:"probe" envconfig:"PROBE"` // Default: true. Log source stats via ffprobe.

	// Artifacts written at batch end (optional).
	MetricsFile string `toml:"metrics_file" envconfig:"METRICS_FILE"`
	ReportFile  string `toml:"report_file" envconfig:"REPORT_FILE"`
}

// DefaultConfig returns a Config with the stock two-pass VP9 settings.
func DefaultConfig() Config {
	return Config{
		ConfigFile: "vp9batch.toml",
		Encoder: EncoderConfig{
			Binary:      "ffmpeg",
			ProbeBinary: "ffprobe",
		},
		VP9: VP9Config{
			Height:      720,
			CRF:         30,
			CPUUsed:     1,
			RowMT:       true,
			TileColumns: 1,
			Threads:     8,
		},
		Audio: AudioConfig{
			Codec:   "aac",
			Bitrate: "128k",
		},
		Output: OutputConfig{
			Ext: "mp4",
		},
		Log: LogConfig{
			Level:  "info",
			Format: LogFormatConsole,
			Color:  ColorAuto,
		},
		Probe: true,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// EffectiveThreads resolves Threads=0 to the host CPU count.
func (c *Config) EffectiveThreads() int {
	if c.VP9.Threads > 0 {
		return c.VP9.Threads
	}
	return runtime.NumCPU()
}

// OutputDirFor returns the configured output directory, defaulting to a
// "vp9" subdirectory of inputDir.
func (c *Config) OutputDirFor(inputDir string) string {
	if c.Output.Dir != "" {
		return c.Output.Dir
	}
	return filepath.Join(inputDir, "vp9")
}

// Validate checks enum fields and numeric ranges, and canonicalizes the
// audio bitrate and output extension.
func (c *Config) Validate() error {
	switch c.Log.Color {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	switch c.Log.Format {
	case LogFormatConsole, LogFormatJSON:
		// valid
	default:
		return errors.New("invalid log format (use 'console' or 'json')")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
		c.Log.Level = strings.ToLower(c.Log.Level)
	default:
		return fmt.Errorf("invalid log level %q (use debug, info, warn or error)", c.Log.Level)
	}

	if strings.TrimSpace(c.Encoder.Binary) == "" {
		return errors.New("encoder binary must not be empty")
	}
	if c.VP9.Height <= 0 {
		return fmt.Errorf("height must be positive (got %d)", c.VP9.Height)
	}
	if c.VP9.CRF < 0 || c.VP9.CRF > 63 {
		return fmt.Errorf("crf must be between 0 and 63 (got %d)", c.VP9.CRF)
	}
	if c.VP9.CPUUsed < -8 || c.VP9.CPUUsed > 8 {
		return fmt.Errorf("cpu-used must be between -8 and 8 (got %d)", c.VP9.CPUUsed)
	}
	if c.VP9.TileColumns < 0 || c.VP9.TileColumns > 6 {
		return fmt.Errorf("tile-columns must be between 0 and 6 (got %d)", c.VP9.TileColumns)
	}
	if c.VP9.Threads < 0 {
		return fmt.Errorf("threads must not be negative (got %d)", c.VP9.Threads)
	}

	if strings.TrimSpace(c.Audio.Codec) == "" {
		return errors.New("audio codec must not be empty")
	}
	normalizedBitrate, err := normalizeAudioBitrate(c.Audio.Bitrate)
	if err != nil {
		return err
	}
	c.Audio.Bitrate = normalizedBitrate

	c.Output.Ext = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(c.Output.Ext)), ".")
	if c.Output.Ext == "" {
		return errors.New("output extension must not be empty")
	}
	// Interrupt cleanup only deletes files with a video extension.
	if !naming.IsVideoFile("x." + c.Output.Ext) {
		return fmt.Errorf("output extension %q is not a video extension (use one of %s)",
			c.Output.Ext, strings.Join(naming.VideoExtensions(), ", "))
	}
	return nil
}

// normalizeAudioBitrate validates and canonicalizes user bitrate input.
// Accepted forms: "128", "128k", "128K", "128kbps". Output is "<n>k".
func normalizeAudioBitrate(raw string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", errors.New("audio bitrate must not be empty")
	}
	if strings.HasSuffix(s, "kbps") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "kbps"))
	} else if strings.HasSuffix(s, "k") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "k"))
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return "", fmt.Errorf("invalid audio bitrate %q (use positive Kbps value, e.g. 128k)", raw)
	}
	return fmt.Sprintf("%dk", n), nil
}

// ValidatePaths rejects an output directory that resolves to the input
// directory itself, where encoded files would land next to (and could
// overwrite) their sources. Both arguments must be absolute, cleaned paths.
func (c *Config) ValidatePaths(inputAbs, outputAbs string) error {
	if filepath.Clean(inputAbs) == filepath.Clean(outputAbs) {
		return errors.New("output directory must differ from input directory")
	}
	return nil
}
