package journal

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "shed.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestRecordAndList(t *testing.T) {
	j := openTestJournal(t)

	run := NewRun("encrypt")
	run.Entries = []Entry{
		{Input: "a.txt", Output: "a.txt.enc", Status: "success"},
		{Input: "b.txt", Output: "b.txt.enc", Status: "failed", Error: "cannot read b.txt"},
	}
	if err := j.Record(run); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	runs, err := j.Runs(0)
	if err != nil {
		t.Fatalf("Runs failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	got := runs[0]
	if got.ID != run.ID || got.Command != "encrypt" {
		t.Errorf("run mismatch: %+v", got)
	}
	if len(got.Entries) != 2 || got.Entries[1].Error != "cannot read b.txt" {
		t.Errorf("entries mismatch: %+v", got.Entries)
	}
	if got.Finished.IsZero() {
		t.Error("Record did not set a finish time")
	}
}

func TestRunsNewestFirst(t *testing.T) {
	j := openTestJournal(t)

	base := time.Now().Add(-time.Hour)
	for i, cmd := range []string{"encrypt", "decrypt", "eol"} {
		run := NewRun(cmd)
		run.Started = base.Add(time.Duration(i) * time.Minute)
		run.Finished = run.Started.Add(time.Second)
		if err := j.Record(run); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	runs, err := j.Runs(2)
	if err != nil {
		t.Fatalf("Runs failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Command != "eol" || runs[1].Command != "decrypt" {
		t.Errorf("wrong order: %s, %s", runs[0].Command, runs[1].Command)
	}
}

func TestPruneKeepsNewest(t *testing.T) {
	j := openTestJournal(t)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		run := NewRun("encrypt")
		run.Started = base.Add(time.Duration(i) * time.Minute)
		run.Finished = run.Started
		if err := j.Record(run); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	removed, err := j.Prune(2)
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if removed != 3 {
		t.Errorf("removed = %d, want 3", removed)
	}

	runs, err := j.Runs(0)
	if err != nil {
		t.Fatalf("Runs failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 remaining runs, got %d", len(runs))
	}
	// The survivors are the two newest
	if runs[0].Started.Before(runs[1].Started) {
		t.Error("runs not in newest-first order after prune")
	}
}

func TestCompactPreservesData(t *testing.T) {
	j := openTestJournal(t)

	run := NewRun("decrypt")
	run.Entries = []Entry{{Input: "x.enc", Output: "x", Status: "success"}}
	if err := j.Record(run); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	if err := j.Compact(); err != nil {
		t.Fatalf("Compact failed: %v", err)
	}

	runs, err := j.Runs(0)
	if err != nil {
		t.Fatalf("Runs after compact failed: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != run.ID {
		t.Errorf("compact lost data: %+v", runs)
	}
}
