package eol

import (
	"bytes"
	"strings"
	"testing"
)

func TestDetect(t *testing.T) {
	cases := []struct {
		name string
		data string
		want Style
	}{
		{"unix", "a\nb\nc\n", StyleLF},
		{"windows", "a\r\nb\r\nc\r\n", StyleCRLF},
		{"mixed mostly crlf", "a\r\nb\r\nc\n", StyleCRLF},
		{"mixed tie", "a\r\nb\n", StyleLF},
		{"empty", "", StyleLF},
		{"no newlines", "abc", StyleLF},
	}
	for _, tc := range cases {
		if got := Detect([]byte(tc.data)); got != tc.want {
			t.Errorf("%s: Detect = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestConvertToLF(t *testing.T) {
	got, err := Convert([]byte("a\r\nb\rc\nd"), StyleLF)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if string(got) != "a\nb\nc\nd" {
		t.Errorf("Convert = %q", got)
	}
}

func TestConvertToCRLF(t *testing.T) {
	got, err := Convert([]byte("a\nb\r\nc\r"), StyleCRLF)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if string(got) != "a\r\nb\r\nc\r\n" {
		t.Errorf("Convert = %q", got)
	}
}

func TestConvertRoundTrip(t *testing.T) {
	original := []byte("one\ntwo\nthree\n")
	crlf, err := Convert(original, StyleCRLF)
	if err != nil {
		t.Fatal(err)
	}
	back, err := Convert(crlf, StyleLF)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(back, original) {
		t.Errorf("round trip changed content: %q", back)
	}
}

func TestConvertRejectsBinary(t *testing.T) {
	data := []byte{0x7F, 0x45, 0x4C, 0x46, 0x00, 0x01, 0x02}
	if _, err := Convert(data, StyleLF); err != ErrBinaryFile {
		t.Errorf("expected ErrBinaryFile, got %v", err)
	}
}

func TestIsText(t *testing.T) {
	if !IsText([]byte("plain text\nwith lines\n")) {
		t.Error("plain text detected as binary")
	}
	if !IsText(nil) {
		t.Error("empty data should count as text")
	}
	if IsText([]byte{0x00, 0x01, 0x02}) {
		t.Error("null bytes should mean binary")
	}
	if IsText([]byte{0xFF, 0xFE, 0xFD}) {
		t.Error("invalid UTF-8 should mean binary")
	}
}

func TestParseStyle(t *testing.T) {
	for name, want := range map[string]Style{
		"lf": StyleLF, "unix": StyleLF,
		"crlf": StyleCRLF, "CRLF": StyleCRLF, "windows": StyleCRLF,
	} {
		got, err := ParseStyle(name)
		if err != nil || got != want {
			t.Errorf("ParseStyle(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParseStyle("cr"); err == nil {
		t.Error("expected error for unsupported style")
	}
}

func TestUnifiedDiff(t *testing.T) {
	before := []byte("a\r\nb\r\n")
	after, err := Convert(before, StyleLF)
	if err != nil {
		t.Fatal(err)
	}

	diff := UnifiedDiff("file.txt", before, after)
	if diff == "" {
		t.Fatal("expected a non-empty diff")
	}
	if !strings.Contains(diff, "--- a/file.txt") || !strings.Contains(diff, "+++ b/file.txt") {
		t.Errorf("diff missing headers:\n%s", diff)
	}

	if UnifiedDiff("same.txt", after, after) != "" {
		t.Error("identical content should produce no diff")
	}
}
