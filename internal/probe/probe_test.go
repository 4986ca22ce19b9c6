package probe

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// Matroska source with cover art ahead of the real video stream.
const sampleWithCover = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "mjpeg",
      "codec_type": "video",
      "width": 600,
      "height": 900,
      "disposition": { "default": 0, "attached_pic": 1 }
    },
    {
      "index": 1,
      "codec_name": "h264",
      "codec_type": "video",
      "width": 1920,
      "height": 1080,
      "avg_frame_rate": "24000/1001",
      "disposition": { "default": 1, "attached_pic": 0 }
    },
    {
      "index": 2,
      "codec_name": "ac3",
      "codec_type": "audio",
      "channels": 6,
      "sample_rate": "48000",
      "disposition": { "default": 1, "attached_pic": 0 }
    },
    {
      "index": 3,
      "codec_name": "ass",
      "codec_type": "subtitle",
      "disposition": { "default": 0 }
    }
  ],
  "format": {
    "filename": "/media/in/holiday.mkv",
    "format_name": "matroska,webm",
    "duration": "1437.500000",
    "size": "1234567890",
    "bit_rate": "6873456"
  }
}`

// Low-resolution clip, video only.
const sampleSmall = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "mpeg4",
      "codec_type": "video",
      "width": 640,
      "height": 480,
      "disposition": { "default": 1, "attached_pic": 0 }
    }
  ],
  "format": {
    "filename": "clip.avi",
    "format_name": "avi",
    "duration": "10.000",
    "size": "500000",
    "bit_rate": "400000"
  }
}`

func TestParseJSON_SkipsAttachedPic(t *testing.T) {
	r, err := ParseJSON([]byte(sampleWithCover))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}

	if r.PrimaryVideo == nil {
		t.Fatal("PrimaryVideo is nil")
	}
	if r.PrimaryVideo.Index != 1 || r.PrimaryVideo.Codec != "h264" {
		t.Errorf("primary video: got index %d codec %q, want 1 h264", r.PrimaryVideo.Index, r.PrimaryVideo.Codec)
	}
	if r.PrimaryVideo.AvgFrameRate != "24000/1001" {
		t.Errorf("avg_frame_rate: got %q", r.PrimaryVideo.AvgFrameRate)
	}
}

func TestParseJSON_Format(t *testing.T) {
	r, err := ParseJSON([]byte(sampleWithCover))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}

	want := 1437*time.Second + 500*time.Millisecond
	if r.Format.Duration != want {
		t.Errorf("duration: got %v, want %v", r.Format.Duration, want)
	}
	if r.Format.Size != 1234567890 {
		t.Errorf("size: got %d", r.Format.Size)
	}
	if r.Format.BitRate != 6873456 {
		t.Errorf("bit_rate: got %d", r.Format.BitRate)
	}
	if r.Format.FormatName != "matroska,webm" {
		t.Errorf("format_name: got %q", r.Format.FormatName)
	}
}

func TestParseJSON_Audio(t *testing.T) {
	r, err := ParseJSON([]byte(sampleWithCover))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if !r.HasAudio() {
		t.Fatal("expected audio")
	}
	a := r.AudioStreams[0]
	if a.Codec != "ac3" || a.Channels != 6 || a.SampleRate != 48000 {
		t.Errorf("audio: got %+v", a)
	}

	r, _ = ParseJSON([]byte(sampleSmall))
	if r.HasAudio() {
		t.Error("video-only clip reported audio")
	}
}

func TestParseJSON_Invalid(t *testing.T) {
	if _, err := ParseJSON([]byte("not json")); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestParseJSON_BadNumbersAreZero(t *testing.T) {
	r, err := ParseJSON([]byte(`{"format":{"duration":"N/A","size":"","bit_rate":"x"},"streams":[]}`))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if r.Format.Duration != 0 || r.Format.Size != 0 || r.Format.BitRate != 0 {
		t.Errorf("got %+v, want zero values", r.Format)
	}
	if r.PrimaryVideo != nil {
		t.Error("PrimaryVideo should be nil")
	}
}

func TestResolution(t *testing.T) {
	r, _ := ParseJSON([]byte(sampleWithCover))
	if got := r.Resolution(); got != "1920x1080" {
		t.Errorf("got %q, want 1920x1080", got)
	}

	empty := &Result{}
	if got := empty.Resolution(); got != "unknown" {
		t.Errorf("got %q, want unknown", got)
	}
}

func TestUpscales(t *testing.T) {
	big, _ := ParseJSON([]byte(sampleWithCover))
	small, _ := ParseJSON([]byte(sampleSmall))

	tests := []struct {
		name string
		r    *Result
		want bool
	}{
		{"1080p to 720p", big, false},
		{"480p to 720p", small, true},
		{"unknown", &Result{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Upscales(720); got != tt.want {
				t.Errorf("Upscales(720) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProbe_FakeBinary(t *testing.T) {
	dir := t.TempDir()
	fixture := filepath.Join(dir, "out.json")
	if err := os.WriteFile(fixture, []byte(sampleSmall), 0o644); err != nil {
		t.Fatal(err)
	}
	bin := filepath.Join(dir, "ffprobe")
	script := "#!/bin/sh\ncat '" + fixture + "'\n"
	if err := os.WriteFile(bin, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}

	r, err := Probe(context.Background(), bin, "/media/in/clip.avi")
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if got := r.Resolution(); got != "640x480" {
		t.Errorf("resolution: got %q", got)
	}
}

func TestProbe_FailingBinary(t *testing.T) {
	bin := filepath.Join(t.TempDir(), "ffprobe")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\nexit 1\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := Probe(context.Background(), bin, "/media/in/clip.avi"); err == nil {
		t.Fatal("expected error from failing ffprobe")
	}
}
