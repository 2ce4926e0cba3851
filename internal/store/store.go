// Package store guards against running more than one guardian instance and
// publishes the live status of the running instance to other processes
package store

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/guardian/internal/apperr"
	"github.com/ayoisaiah/guardian/internal/osutil"
	"github.com/ayoisaiah/guardian/internal/session"
)

var ErrRunning = &apperr.Error{
	Message: "is Guardian already running? Only one instance can be active at a time",
}

const instanceBucket = "instance"

var (
	keyStartedAt = []byte("started_at")
	keyVersion   = []byte("version")
	keyPID       = []byte("pid")
)

var (
	// lockTimeout is how long Acquire waits for another instance to exit.
	lockTimeout = 1 * time.Second
	// probeTimeout is how long ReadStatus waits before concluding that an
	// instance holds the lock.
	probeTimeout = 100 * time.Millisecond
)

// Status is the live state of a running instance.
type Status struct {
	UpdatedAt time.Time `json:"updated_at"`
	session.Snapshot
}

// Info describes the instance holding the lock.
type Info struct {
	StartedAt time.Time
	Version   string
	PID       int
}

// Instance is the exclusive lock held by the running process.
type Instance struct {
	db         *bolt.DB
	statusPath string
}

// Acquire takes the instance lock at dbPath. It returns ErrRunning if another
// process already holds it. The lock is held until Release is called.
func Acquire(dbPath, statusPath, version string) (*Instance, error) {
	err := os.MkdirAll(filepath.Dir(dbPath), osutil.DirPermission)
	if err != nil {
		return nil, err
	}

	db, err := bolt.Open(
		dbPath,
		osutil.FilePermission,
		&bolt.Options{Timeout: lockTimeout},
	)
	if err != nil {
		// a held flock surfaces as a timeout
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, ErrRunning
		}

		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(instanceBucket))
		if err != nil {
			return err
		}

		startedAt := time.Now().UTC().Format(time.RFC3339)

		if err := b.Put(keyStartedAt, []byte(startedAt)); err != nil {
			return err
		}

		if err := b.Put(keyVersion, []byte(version)); err != nil {
			return err
		}

		return b.Put(keyPID, []byte(strconv.Itoa(os.Getpid())))
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Instance{
		db:         db,
		statusPath: statusPath,
	}, nil
}

// Info returns the metadata recorded when the lock was acquired.
func (i *Instance) Info() (Info, error) {
	var info Info

	err := i.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(instanceBucket))
		if b == nil {
			return nil
		}

		t, err := time.Parse(time.RFC3339, string(b.Get(keyStartedAt)))
		if err != nil {
			return err
		}

		info.StartedAt = t
		info.Version = string(b.Get(keyVersion))
		info.PID, _ = strconv.Atoi(string(b.Get(keyPID)))

		return nil
	})

	return info, err
}

// WriteStatus replaces the status file. Readers never observe a partially
// written file.
func (i *Instance) WriteStatus(s Status) (err error) {
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = time.Now()
	}

	tmp, err := os.CreateTemp(filepath.Dir(i.statusPath), ".status-*")
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	b, err := json.Marshal(s)
	if err != nil {
		_ = tmp.Close()
		return err
	}

	writer := bufio.NewWriter(tmp)

	if _, err = writer.Write(b); err != nil {
		_ = tmp.Close()
		return err
	}

	if err = writer.Flush(); err != nil {
		_ = tmp.Close()
		return err
	}

	if err = tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), i.statusPath)
}

// Release removes the status file and gives up the lock.
func (i *Instance) Release() error {
	err := os.Remove(i.statusPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		_ = i.db.Close()
		return err
	}

	return i.db.Close()
}

// ReadStatus returns the status published by the running instance, or nil if
// no instance is running.
func ReadStatus(dbPath, statusPath string) (*Status, error) {
	if _, err := os.Stat(dbPath); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	db, err := bolt.Open(dbPath, osutil.FilePermission, &bolt.Options{
		Timeout:  probeTimeout,
		ReadOnly: true,
	})
	// nobody holds the lock so there is no status to report
	if err == nil {
		return nil, db.Close()
	}

	if !errors.Is(err, bolt.ErrTimeout) {
		return nil, err
	}

	b, err := os.ReadFile(statusPath)
	if err != nil {
		// the instance may not have written its first status yet
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}

		return nil, err
	}

	var s Status

	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}

	return &s, nil
}
