package testutil

import (
	"math"
	"testing"
)

// Common test utilities shared across test files

func AlmostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func AssertAlmostEqual(t *testing.T, actual, expected, tolerance float64, msg string) {
	t.Helper()
	if !AlmostEqual(actual, expected, tolerance) {
		t.Errorf("%s: expected %.15f, got %.15f (diff: %.15e)", msg, expected, actual, math.Abs(actual-expected))
	}
}

func AssertVecAlmostEqual(t *testing.T, actual, expected []float64, tolerance float64, msg string) {
	t.Helper()
	if len(actual) != len(expected) {
		t.Fatalf("%s: length mismatch - actual %d vs expected %d", msg, len(actual), len(expected))
	}
	for i := range actual {
		if !AlmostEqual(actual[i], expected[i], tolerance) {
			t.Errorf("%s: element %d: expected %.15f, got %.15f", msg, i, expected[i], actual[i])
		}
	}
}
