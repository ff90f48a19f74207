// Package core implements the file orchestrator: it resolves encrypt
// and decrypt targets from file or directory arguments, applies the
// overwrite and source-removal policy per file, and turns every
// per-file outcome into a Result record so one failing file never
// aborts the rest of a batch.
package core
