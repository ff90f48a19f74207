package core

// Status is the final state of one file in a batch.
type Status int

const (
	StatusPending Status = iota
	StatusSuccess
	StatusSkippedExists // output already exists and force was not set
	StatusFailed
	StatusPlanned // dry run: reported, nothing touched
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusSuccess:
		return "success"
	case StatusSkippedExists:
		return "skipped (exists)"
	case StatusFailed:
		return "failed"
	case StatusPlanned:
		return "planned"
	}
	return "unknown"
}

// Result is the per-file outcome record. It is created once per
// processed file and never mutated afterwards.
type Result struct {
	Input  string
	Output string
	Status Status
	Err    error
}

// Summary counts results by outcome.
type Summary struct {
	Success int
	Skipped int
	Failed  int
	Planned int
}

// Summarize tallies a batch of results.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		switch r.Status {
		case StatusSuccess:
			s.Success++
		case StatusSkippedExists:
			s.Skipped++
		case StatusFailed:
			s.Failed++
		case StatusPlanned:
			s.Planned++
		}
	}
	return s
}
