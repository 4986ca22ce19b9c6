// Package check provides system diagnostics (the check command) and
// pre-batch dependency validation (CheckDeps) for the encoder binary and
// the VP9 and audio encoders it must provide.
package check

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/backmassage/vp9batch/internal/config"
	"github.com/backmassage/vp9batch/internal/ffmpeg"
	"github.com/backmassage/vp9batch/internal/planner"
)

// Sentinel errors returned by CheckDeps when a required tool or encoder is missing.
var (
	ErrEncoderNotFound  = errors.New("encoder binary not found on PATH")
	ErrVP9Unsupported   = errors.New("encoder binary lacks " + planner.VideoCodec)
	ErrAudioUnsupported = errors.New("encoder binary lacks the configured audio encoder")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a recording logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// RunCheck prints the availability of the encoder, its version, the VP9
// and audio encoders, and the optional probe binary. It returns the same
// error CheckDeps would.
func RunCheck(cfg *config.Config, log Logger) error {
	log.Info("=== System Check ===")

	bin := cfg.Encoder.Binary
	path, err := exec.LookPath(bin)
	if err != nil {
		log.Error("%s not found", bin)
		return fmt.Errorf("%w: %s", ErrEncoderNotFound, bin)
	}
	log.Success("%s: %s", bin, path)

	if v, err := version(bin); err != nil {
		log.Warn("%s found but -version failed: %v", bin, err)
	} else {
		log.Info("  %s", v)
	}

	encoders, err := listEncoders(bin)
	if err != nil {
		log.Error("Could not list encoders: %v", err)
		return err
	}

	var result error
	if encoders[planner.VideoCodec] {
		log.Success("Video encoder %s available", planner.VideoCodec)
	} else {
		log.Error("Video encoder %s missing", planner.VideoCodec)
		result = ErrVP9Unsupported
	}
	if encoders[cfg.Audio.Codec] {
		log.Success("Audio encoder %s available", cfg.Audio.Codec)
	} else {
		log.Error("Audio encoder %s missing", cfg.Audio.Codec)
		if result == nil {
			result = fmt.Errorf("%w: %s", ErrAudioUnsupported, cfg.Audio.Codec)
		}
	}

	if cfg.Probe {
		if _, err := exec.LookPath(cfg.Encoder.ProbeBinary); err != nil {
			log.Warn("%s not found; source details will not be shown", cfg.Encoder.ProbeBinary)
		} else {
			log.Success("%s available", cfg.Encoder.ProbeBinary)
		}
	}
	return result
}

// CheckDeps is the pre-batch validation: the encoder must be on PATH and
// must list both libvpx-vp9 and the configured audio encoder. The probe
// binary is optional and not checked. Returns a sentinel error on failure.
func CheckDeps(cfg *config.Config) error {
	bin := cfg.Encoder.Binary
	if _, err := exec.LookPath(bin); err != nil {
		return fmt.Errorf("%w: %s", ErrEncoderNotFound, bin)
	}
	encoders, err := listEncoders(bin)
	if err != nil {
		return err
	}
	if !encoders[planner.VideoCodec] {
		return ErrVP9Unsupported
	}
	if !encoders[cfg.Audio.Codec] {
		return fmt.Errorf("%w: %s", ErrAudioUnsupported, cfg.Audio.Codec)
	}
	return nil
}

// --- Helpers ---

func version(bin string) (string, error) {
	out, err := capture(bin, "-version")
	if err != nil {
		return "", err
	}
	first, _, _ := strings.Cut(strings.TrimSpace(out), "\n")
	return first, nil
}

func listEncoders(bin string) (map[string]bool, error) {
	out, err := capture(bin, "-hide_banner", "-encoders")
	if err != nil {
		return nil, fmt.Errorf("list encoders: %w", err)
	}
	return parseEncoders(out), nil
}

// parseEncoders extracts encoder names from "ffmpeg -encoders" output:
// a legend, a "------" separator, then lines like
// " V....D libvpx-vp9           libvpx VP9 (codec vp9)".
func parseEncoders(out string) map[string]bool {
	names := make(map[string]bool)
	listing := false
	for _, line := range strings.Split(out, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "------") {
			listing = true
			continue
		}
		if !listing {
			continue
		}
		fields := strings.Fields(trimmed)
		if len(fields) >= 2 && len(fields[0]) == 6 {
			names[fields[1]] = true
		}
	}
	return names
}

func capture(bin string, args ...string) (string, error) {
	var stdout bytes.Buffer
	p, err := ffmpeg.StartWithStdio(bin, args, ffmpeg.Stdio{
		Stdin:  strings.NewReader(""),
		Stdout: &stdout,
		Stderr: io.Discard,
	})
	if err != nil {
		return "", err
	}
	if err := p.Wait(); err != nil {
		return "", err
	}
	return stdout.String(), nil
}
