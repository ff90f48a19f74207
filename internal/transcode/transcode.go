// Package transcode builds and runs ffmpeg invocations from a small
// preset table. The encoder binary itself is an external collaborator;
// the testable surface here is argument construction and output
// naming.
package transcode

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strconv"
	"strings"
)

// EncoderBinary is the external encoder looked up on PATH.
const EncoderBinary = "ffmpeg"

var ErrUnknownPreset = errors.New("unknown preset")

// Preset bundles a codec choice with sane defaults.
type Preset struct {
	Name       string
	VideoCodec string
	CRF        int    // default quality, overridable per run
	Container  string // output extension, without dot
}

var presets = map[string]Preset{
	"h264": {Name: "h264", VideoCodec: "libx264", CRF: 23, Container: "mp4"},
	"hevc": {Name: "hevc", VideoCodec: "libx265", CRF: 28, Container: "mkv"},
	"vp9":  {Name: "vp9", VideoCodec: "libvpx-vp9", CRF: 31, Container: "webm"},
}

// PresetNames lists the available presets, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Options configures one transcode run.
type Options struct {
	Preset    string
	CRF       int    // 0 means the preset default
	Scale     string // e.g. "1280:-2", empty keeps resolution
	AudioCopy bool   // copy audio stream instead of re-encoding
	Extra     []string
	Output    string // explicit output path, empty derives from input
	Force     bool
	DryRun    bool
}

// OutputPath derives the destination file for an input: same base
// name, preset's container extension, unless an explicit output is
// given.
func OutputPath(input string, opts Options) (string, error) {
	if opts.Output != "" {
		return opts.Output, nil
	}
	preset, ok := presets[opts.Preset]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownPreset, opts.Preset)
	}

	base := input
	if i := strings.LastIndex(base, "."); i > 0 {
		base = base[:i]
	}
	out := base + "." + preset.Container
	if out == input {
		out = base + ".out." + preset.Container
	}
	return out, nil
}

// Args builds the full encoder argument vector for one file.
func Args(input, output string, opts Options) ([]string, error) {
	preset, ok := presets[opts.Preset]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPreset, opts.Preset)
	}

	crf := opts.CRF
	if crf == 0 {
		crf = preset.CRF
	}

	args := []string{"-i", input, "-c:v", preset.VideoCodec, "-crf", strconv.Itoa(crf)}

	if opts.Scale != "" {
		args = append(args, "-vf", "scale="+opts.Scale)
	}
	if opts.AudioCopy {
		args = append(args, "-c:a", "copy")
	}
	args = append(args, opts.Extra...)

	if opts.Force {
		args = append(args, "-y")
	} else {
		args = append(args, "-n")
	}
	args = append(args, output)

	return args, nil
}

// Run invokes the encoder for one input file, streaming its output to
// the terminal. DryRun prints the command instead of executing it.
func Run(ctx context.Context, input string, opts Options) error {
	output, err := OutputPath(input, opts)
	if err != nil {
		return err
	}

	args, err := Args(input, output, opts)
	if err != nil {
		return err
	}

	if opts.DryRun {
		fmt.Printf("would run: %s %s\n", EncoderBinary, strings.Join(args, " "))
		return nil
	}

	if _, err := exec.LookPath(EncoderBinary); err != nil {
		return fmt.Errorf("encoder not found: %w", err)
	}

	// The -n flag makes ffmpeg refuse to overwrite, but checking first
	// gives a cleaner skip than a non-zero encoder exit.
	if !opts.Force {
		if _, err := os.Stat(output); err == nil {
			return fmt.Errorf("output %s already exists (use force to overwrite)", output)
		}
	}

	cmd := exec.CommandContext(ctx, EncoderBinary, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("encoder failed for %s: %w", input, err)
	}
	return nil
}
