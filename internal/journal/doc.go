// Package journal keeps a best-effort history of batch runs in a
// BBolt database. Recording is advisory: a journal failure is a
// warning, never a reason to fail the batch that produced it.
package journal
