// Package eol rewrites text files between LF and CRLF line endings.
// Binary files are detected heuristically and left alone.
package eol

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	binarySampleSize   = 8192 // Bytes to sample for text/binary detection
	binaryThresholdPct = 10   // Max % non-printable chars for text files
)

// ErrBinaryFile marks files the converter refuses to touch.
var ErrBinaryFile = errors.New("binary file")

// Style is a line-ending convention.
type Style int

const (
	StyleLF Style = iota
	StyleCRLF
)

func (s Style) String() string {
	if s == StyleCRLF {
		return "crlf"
	}
	return "lf"
}

// ParseStyle maps the user-facing style names.
func ParseStyle(name string) (Style, error) {
	switch strings.ToLower(name) {
	case "lf", "unix":
		return StyleLF, nil
	case "crlf", "windows", "dos":
		return StyleCRLF, nil
	}
	return 0, fmt.Errorf("unknown line ending style %q (want lf or crlf)", name)
}

// Detect returns the dominant line ending of data. Lone LF wins ties,
// matching the tool's unix bias.
func Detect(data []byte) Style {
	crlf := bytes.Count(data, []byte("\r\n"))
	lf := bytes.Count(data, []byte("\n")) - crlf
	if crlf > lf {
		return StyleCRLF
	}
	return StyleLF
}

// IsText determines if a file is likely text rather than binary.
//
// Detection heuristic (in order):
//  1. Null bytes present -> binary (executables, images, etc.)
//  2. Invalid UTF-8 -> binary
//  3. >10% non-printable control chars -> binary
func IsText(data []byte) bool {
	if len(data) == 0 {
		return true
	}

	if bytes.IndexByte(data, 0) != -1 {
		return false
	}

	sampleSize := binarySampleSize
	if len(data) < sampleSize {
		sampleSize = len(data)
	}
	sample := data[:sampleSize]

	if !utf8.Valid(sample) {
		return false
	}

	nonPrintable := 0
	for _, b := range sample {
		// Allow common whitespace: tab, newline, carriage return
		if b < 32 && b != 9 && b != 10 && b != 13 {
			nonPrintable++
		}
		if b == 127 {
			nonPrintable++
		}
	}

	threshold := len(sample) * binaryThresholdPct / 100
	return nonPrintable <= threshold
}

// Convert rewrites data to the requested style. Lone carriage returns
// are treated as line breaks too, so classic-Mac input normalizes
// cleanly. Binary input is rejected with ErrBinaryFile.
func Convert(data []byte, to Style) ([]byte, error) {
	if !IsText(data) {
		return nil, ErrBinaryFile
	}

	// Normalize everything to LF first
	normalized := bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	normalized = bytes.ReplaceAll(normalized, []byte("\r"), []byte("\n"))

	if to == StyleLF {
		return normalized, nil
	}
	return bytes.ReplaceAll(normalized, []byte("\n"), []byte("\r\n")), nil
}

// UnifiedDiff renders the conversion as a unified diff for preview.
// Returns an empty string when nothing would change.
func UnifiedDiff(path string, before, after []byte) string {
	if bytes.Equal(before, after) {
		return ""
	}

	dmp := diffmatchpatch.New()

	beforeStr, afterStr := string(before), string(after)
	a, b, lineArray := dmp.DiffLinesToChars(beforeStr, afterStr)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	patches := dmp.PatchMake(beforeStr, diffs)
	if len(patches) == 0 {
		return ""
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("--- a/%s\n", path))
	result.WriteString(fmt.Sprintf("+++ b/%s\n", path))
	result.WriteString(dmp.PatchToText(patches))

	return result.String()
}
