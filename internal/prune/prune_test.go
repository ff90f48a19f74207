package prune

import (
	"os"
	"path/filepath"
	"testing"
)

func mkVersionDir(t *testing.T, root, name, version string) string {
	t.Helper()
	dir := filepath.Join(root, name, version)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("cannot create %s: %v", dir, err)
	}
	// Give it some content so removal is a real tree delete
	if err := os.WriteFile(filepath.Join(dir, "module.psd1"), []byte(version), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestCompareVersions(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.0.0", "1.0.1", -1},
		{"2.0", "1.9.9", 1},
		{"1.2", "1.2.1", -1},
		{"1.10", "1.9", 1},
		{"0.1", "0.1.0", 0},
	}
	for _, tc := range cases {
		if got := compareVersions(tc.a, tc.b); got != tc.want {
			t.Errorf("compareVersions(%s, %s) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestIsVersion(t *testing.T) {
	for _, good := range []string{"1", "1.0", "10.2.33"} {
		if !isVersion(good) {
			t.Errorf("isVersion(%s) = false", good)
		}
	}
	for _, bad := range []string{"", "v1.0", "1..2", "1.0-beta", "latest"} {
		if isVersion(bad) {
			t.Errorf("isVersion(%s) = true", bad)
		}
	}
}

func TestScanSelectsOutdated(t *testing.T) {
	root := t.TempDir()
	mkVersionDir(t, root, "Pester", "4.10.1")
	mkVersionDir(t, root, "Pester", "5.3.0")
	mkVersionDir(t, root, "Pester", "5.5.0")
	mkVersionDir(t, root, "PSReadLine", "2.2.6") // single version, untouched
	mkVersionDir(t, root, "posh-git", "1.1.0")
	mkVersionDir(t, root, "posh-git", "0.7.3")

	removals, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(removals) != 3 {
		t.Fatalf("expected 3 removals, got %d: %+v", len(removals), removals)
	}

	kept := map[string]bool{}
	for _, r := range removals {
		kept[r.Name+"/"+r.Version] = true
	}
	for _, want := range []string{"Pester/4.10.1", "Pester/5.3.0", "posh-git/0.7.3"} {
		if !kept[want] {
			t.Errorf("expected %s in removal set", want)
		}
	}
}

func TestRunRemovesOnlyOutdated(t *testing.T) {
	root := t.TempDir()
	old := mkVersionDir(t, root, "Pester", "4.10.1")
	latest := mkVersionDir(t, root, "Pester", "5.5.0")

	if _, err := Run(root, false); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("outdated version not removed")
	}
	if _, err := os.Stat(latest); err != nil {
		t.Errorf("latest version removed: %v", err)
	}
}

func TestRunDryRunTouchesNothing(t *testing.T) {
	root := t.TempDir()
	old := mkVersionDir(t, root, "Pester", "4.10.1")
	mkVersionDir(t, root, "Pester", "5.5.0")

	removals, err := Run(root, true)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(removals) != 1 {
		t.Fatalf("expected 1 planned removal, got %d", len(removals))
	}
	if _, err := os.Stat(old); err != nil {
		t.Error("dry run removed a directory")
	}
}

func TestScanIgnoresNonVersionDirs(t *testing.T) {
	root := t.TempDir()
	mkVersionDir(t, root, "Pester", "5.5.0")
	if err := os.MkdirAll(filepath.Join(root, "Pester", "latest"), 0755); err != nil {
		t.Fatal(err)
	}

	removals, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(removals) != 0 {
		t.Errorf("non-version dir counted as a version: %+v", removals)
	}
}

func TestScanMissingRoot(t *testing.T) {
	if _, err := Scan(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing root")
	}
}
