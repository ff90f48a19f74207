package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	ConfigBucket = []byte("config") // format version, timestamps
	RunsBucket   = []byte("runs")   // one record per batch run
)

// Config keys
var (
	ConfigVersion  = []byte("version")
	ConfigCreated  = []byte("created")
	ConfigModified = []byte("modified")
)

// Entry is the persisted form of one file's outcome. Only paths and
// outcomes are stored, never passphrases, keys or file contents.
type Entry struct {
	Input  string `json:"input"`
	Output string `json:"output"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Run records one batch invocation.
type Run struct {
	ID       string    `json:"id"`
	Command  string    `json:"command"`
	Started  time.Time `json:"started"`
	Finished time.Time `json:"finished"`
	Entries  []Entry   `json:"entries"`
}

// NewRun creates a run record with a fresh ID and start time.
func NewRun(command string) Run {
	return Run{
		ID:      uuid.NewString(),
		Command: command,
		Started: time.Now(),
	}
}

// Journal provides BBolt-based storage for past runs
type Journal struct {
	db *bolt.DB
}

// DefaultPath returns the journal location in the user's home directory
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot locate home directory: %w", err)
	}
	return filepath.Join(home, ".shed.db"), nil
}

// Open opens or creates a journal database
func Open(path string) (*Journal, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{ConfigBucket, RunsBucket} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}

		config := tx.Bucket(ConfigBucket)
		if config.Get(ConfigVersion) == nil {
			if err := config.Put(ConfigVersion, []byte("1")); err != nil {
				return err
			}
			created, _ := time.Now().MarshalBinary()
			if err := config.Put(ConfigCreated, created); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Journal{db: db}, nil
}

// Close closes the database
func (j *Journal) Close() error {
	return j.db.Close()
}

// runKey orders runs chronologically under a byte-sorted cursor.
func runKey(run Run) []byte {
	return []byte(run.Started.UTC().Format(time.RFC3339Nano) + "/" + run.ID)
}

// Record stores a finished run
func (j *Journal) Record(run Run) error {
	if run.Finished.IsZero() {
		run.Finished = time.Now()
	}

	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}

	return j.db.Update(func(tx *bolt.Tx) error {
		runs := tx.Bucket(RunsBucket)
		if err := runs.Put(runKey(run), data); err != nil {
			return err
		}

		config := tx.Bucket(ConfigBucket)
		modified, _ := time.Now().MarshalBinary()
		return config.Put(ConfigModified, modified)
	})
}

// Runs returns the most recent runs, newest first. A limit of 0 means
// all runs.
func (j *Journal) Runs(limit int) ([]Run, error) {
	var runs []Run
	err := j.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(RunsBucket).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(runs) >= limit {
				break
			}
			var run Run
			if err := json.Unmarshal(v, &run); err != nil {
				return fmt.Errorf("failed to unmarshal run %s: %w", k, err)
			}
			runs = append(runs, run)
		}
		return nil
	})
	return runs, err
}

// Prune removes all but the newest keep runs
func (j *Journal) Prune(keep int) (int, error) {
	removed := 0
	err := j.db.Update(func(tx *bolt.Tx) error {
		runs := tx.Bucket(RunsBucket)
		total := runs.Stats().KeyN

		c := runs.Cursor()
		for k, _ := c.First(); k != nil && total-removed > keep; k, _ = c.Next() {
			if err := c.Delete(); err != nil {
				return err
			}
			removed++
		}
		return nil
	})
	return removed, err
}

// Compact creates a compacted copy of the database, removing unused
// space, and swaps it into place.
func (j *Journal) Compact() error {
	srcPath := j.db.Path()
	tmpPath := srcPath + ".compact"

	dst, err := bolt.Open(tmpPath, 0600, nil)
	if err != nil {
		return fmt.Errorf("failed to create compact database: %w", err)
	}

	err = j.db.View(func(srcTx *bolt.Tx) error {
		return dst.Update(func(dstTx *bolt.Tx) error {
			return srcTx.ForEach(func(name []byte, srcBucket *bolt.Bucket) error {
				dstBucket, err := dstTx.CreateBucketIfNotExists(name)
				if err != nil {
					return err
				}
				return srcBucket.ForEach(func(k, v []byte) error {
					return dstBucket.Put(k, v)
				})
			})
		})
	})
	if err != nil {
		dst.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to copy database: %w", err)
	}

	if err := dst.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close compact database: %w", err)
	}

	// Close source, swap files, reopen
	if err := j.db.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close database: %w", err)
	}

	if err := os.Rename(tmpPath, srcPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace database: %w", err)
	}

	db, err := bolt.Open(srcPath, 0600, nil)
	if err != nil {
		return fmt.Errorf("failed to reopen database: %w", err)
	}
	j.db = db

	return nil
}
