package transcode

import (
	"errors"
	"reflect"
	"testing"
)

func TestOutputPath(t *testing.T) {
	cases := []struct {
		input string
		opts  Options
		want  string
	}{
		{"movie.avi", Options{Preset: "h264"}, "movie.mp4"},
		{"movie.avi", Options{Preset: "hevc"}, "movie.mkv"},
		{"movie.mp4", Options{Preset: "h264"}, "movie.out.mp4"},
		{"noext", Options{Preset: "vp9"}, "noext.webm"},
		{"movie.avi", Options{Preset: "h264", Output: "custom.mp4"}, "custom.mp4"},
	}
	for _, tc := range cases {
		got, err := OutputPath(tc.input, tc.opts)
		if err != nil {
			t.Errorf("OutputPath(%s) failed: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("OutputPath(%s) = %s, want %s", tc.input, got, tc.want)
		}
	}
}

func TestOutputPathUnknownPreset(t *testing.T) {
	if _, err := OutputPath("a.avi", Options{Preset: "divx"}); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestArgsDefaults(t *testing.T) {
	args, err := Args("in.avi", "out.mp4", Options{Preset: "h264"})
	if err != nil {
		t.Fatalf("Args failed: %v", err)
	}
	want := []string{"-i", "in.avi", "-c:v", "libx264", "-crf", "23", "-n", "out.mp4"}
	if !reflect.DeepEqual(args, want) {
		t.Errorf("Args = %v, want %v", args, want)
	}
}

func TestArgsFull(t *testing.T) {
	opts := Options{
		Preset:    "hevc",
		CRF:       20,
		Scale:     "1280:-2",
		AudioCopy: true,
		Extra:     []string{"-preset", "slow"},
		Force:     true,
	}
	args, err := Args("in.mkv", "out.mkv", opts)
	if err != nil {
		t.Fatalf("Args failed: %v", err)
	}
	want := []string{
		"-i", "in.mkv",
		"-c:v", "libx265",
		"-crf", "20",
		"-vf", "scale=1280:-2",
		"-c:a", "copy",
		"-preset", "slow",
		"-y",
		"out.mkv",
	}
	if !reflect.DeepEqual(args, want) {
		t.Errorf("Args = %v, want %v", args, want)
	}
}

func TestPresetNamesSorted(t *testing.T) {
	names := PresetNames()
	if len(names) != 3 {
		t.Fatalf("expected 3 presets, got %v", names)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("preset names not sorted: %v", names)
		}
	}
}
