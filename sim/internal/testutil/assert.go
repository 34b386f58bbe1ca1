// Package testutil provides shared test infrastructure for the scheduling
// simulator. It holds assertion helpers used across sim/ and its sub-packages
// and must not import sim itself.
package testutil

import (
	"math"
	"path/filepath"
	"testing"
)

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// AssertNonDecreasing fails if values ever decrease.
func AssertNonDecreasing(t *testing.T, name string, values []float64) {
	t.Helper()
	for i := 1; i < len(values); i++ {
		if values[i] < values[i-1] {
			t.Errorf("%s: value %d (%v) is below value %d (%v)", name, i, values[i], i-1, values[i-1])
			return
		}
	}
}

// TempResultsPath returns a results file path inside a per-test temp dir.
// The file does not exist yet.
func TempResultsPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "data.csv")
}
