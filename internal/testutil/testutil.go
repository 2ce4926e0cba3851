// Package testutil holds helpers shared by package tests
package testutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"

	"github.com/ayoisaiah/guardian/internal/osutil"
)

type GoldenTest interface {
	Output() ([]byte, string)
}

// CompareGoldenFile verifies that the output of an operation matches
// the expected output.
func CompareGoldenFile(t *testing.T, tc GoldenTest) {
	t.Helper()

	if runtime.GOOS == osutil.Windows {
		// TODO: golden files are committed with LF line endings
		t.Skip("skipping golden file test in Windows")
	}

	g := goldie.New(
		t,
		goldie.WithFixtureDir("testdata"),
	)

	snap, golden := tc.Output()

	if snap != nil {
		g.Assert(t, golden, snap)
		return
	}

	f := filepath.Join("testdata", golden+".golden")
	if _, err := os.Stat(f); err == nil || errors.Is(err, os.ErrExist) {
		t.Fatalf("expected no output, but golden file exists: %s", f)
	}
}

// FixedClock returns a time source that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time {
		return t
	}
}

// SequentialIDs returns an ID generator producing prefix-1, prefix-2, ...
func SequentialIDs(prefix string) func() string {
	var n int

	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}
