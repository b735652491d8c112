package openmht

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/openmht/openmht-go/internal/testutil"
)

// scenarioParams uses a measurement noise matched to the unit step sizes of
// the scenario inputs. With r far below the per-frame motion the posterior
// variance contracts toward r after one update and a moving object's
// Mahalanobis distance blows up, so continuing a track would score worse
// than re-seeding it each frame.
func scenarioParams() Params {
	return Params{V: 307200, DTh: 1000, K: 0, Q: 1e-5, R: 1.0, N: 1, BTh: 100, NMiss: 3}
}

func runScenario(t *testing.T, frames Frames, params Params) []Track {
	t.Helper()
	mht, err := New(frames, params)
	if err != nil {
		t.Fatal(err)
	}
	tracks, err := mht.Run()
	if err != nil {
		t.Fatal(err)
	}
	return tracks
}

// =============================================================================
// Seed Scenarios
// =============================================================================

func TestMHT_SingleObjectNoMisses(t *testing.T) {
	frames := Frames{
		{{0, 0}},
		{{1, 1}},
		{{2, 2}},
	}
	tracks := runScenario(t, frames, scenarioParams())

	if len(tracks) != 1 {
		t.Fatalf("expected exactly 1 track, got %d", len(tracks))
	}
	want := Track{{0, 0}, {1, 1}, {2, 2}}
	if diff := cmp.Diff(want, tracks[0]); diff != "" {
		t.Errorf("track mismatch (-want +got):\n%s", diff)
	}
}

func TestMHT_TwoWellSeparatedObjects(t *testing.T) {
	frames := Frames{
		{{0, 0}, {10, 10}},
		{{0.1, 0.1}, {10.1, 10.1}},
		{{0.2, 0.2}, {10.2, 10.2}},
	}
	tracks := runScenario(t, frames, scenarioParams())

	if len(tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(tracks))
	}
	for _, track := range tracks {
		if len(track) != 3 {
			t.Fatalf("expected 3 slots per track, got %d", len(track))
		}
		// Each track stays within one cluster: consecutive coordinates move
		// by 0.1 per axis, never by ~10.
		for f := 1; f < len(track); f++ {
			if track[f] == nil || track[f-1] == nil {
				t.Fatalf("unexpected miss slot at frame %d", f)
			}
			testutil.AssertAlmostEqual(t, track[f][0]-track[f-1][0], 0.1, 1e-9, "u step")
			testutil.AssertAlmostEqual(t, track[f][1]-track[f-1][1], 0.1, 1e-9, "v step")
		}
	}
	// No conflicts: the two tracks claim different detections everywhere.
	for f := 0; f < 3; f++ {
		if tracks[0][f][0] == tracks[1][f][0] {
			t.Errorf("frame %d: both tracks claim the same detection", f)
		}
	}
}

func TestMHT_MissedDetectionInMiddle(t *testing.T) {
	frames := Frames{
		{{0, 0}},
		{},
		{{2, 2}},
	}
	tracks := runScenario(t, frames, scenarioParams())

	if len(tracks) != 1 {
		t.Fatalf("expected 1 track, got %d", len(tracks))
	}
	want := Track{{0, 0}, nil, {2, 2}}
	if diff := cmp.Diff(want, tracks[0]); diff != "" {
		t.Errorf("track mismatch (-want +got):\n%s", diff)
	}
}

func TestMHT_ExceedNMiss(t *testing.T) {
	frames := Frames{
		{{0, 0}},
		{}, {}, {}, {}, {},
	}
	tracks := runScenario(t, frames, scenarioParams())

	if len(tracks) != 0 {
		t.Fatalf("expected no surviving tracks, got %d", len(tracks))
	}
}

func TestMHT_DetectionOutsideGate(t *testing.T) {
	frames := Frames{
		{{0, 0}},
		{{1e6, 1e6}},
	}
	tracks := runScenario(t, frames, scenarioParams())

	if len(tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(tracks))
	}
	want := []Track{
		{{0, 0}, nil},
		{nil, {1e6, 1e6}},
	}
	if diff := cmp.Diff(want, tracks); diff != "" {
		t.Errorf("tracks mismatch (-want +got):\n%s", diff)
	}
}

// =============================================================================
// Boundary and Property Tests
// =============================================================================

func TestMHT_SingleFrameYieldsOneTrackPerDetection(t *testing.T) {
	frames := Frames{
		{{0, 0}, {5, 5}, {9, 9}},
	}
	tracks := runScenario(t, frames, scenarioParams())

	if len(tracks) != 3 {
		t.Fatalf("expected 3 single-element tracks, got %d", len(tracks))
	}
	for i, track := range tracks {
		if len(track) != 1 || track[0] == nil {
			t.Errorf("track %d: expected one populated slot, got %v", i, track)
		}
	}
}

func TestMHT_BThresholdOnePerRootEveryFrame(t *testing.T) {
	params := scenarioParams()
	params.BTh = 1
	frames := Frames{
		{{0, 0}, {10, 10}},
		{{0.1, 0.1}, {10.1, 10.1}},
		{{0.2, 0.2}, {10.2, 10.2}},
	}

	mht, err := New(frames, params)
	if err != nil {
		t.Fatal(err)
	}
	mht.OnFrame = func(stats FrameStats) {
		groups := make(map[RootID]int)
		for _, h := range mht.pool.hyps {
			groups[h.Root()]++
		}
		for root, n := range groups {
			if n != 1 {
				t.Errorf("frame %d: root %+v retained %d branches, want 1", stats.Frame, root, n)
			}
		}
	}
	if _, err := mht.Run(); err != nil {
		t.Fatal(err)
	}
}

func TestMHT_SolutionBoundedByDetections(t *testing.T) {
	frames := Frames{
		{{0, 0}},
		{{1, 1}, {8, 8}},
		{{2, 2}},
	}
	seen := 0
	mht, err := New(frames, scenarioParams())
	if err != nil {
		t.Fatal(err)
	}
	tracks, err := mht.Run()
	if err != nil {
		t.Fatal(err)
	}
	for _, detections := range frames {
		seen += len(detections)
	}
	if len(tracks) > seen {
		t.Errorf("solution has %d tracks, more than %d detections seen", len(tracks), seen)
	}
}

func TestMHT_SolutionIsConflictFree(t *testing.T) {
	frames := Frames{
		{{0, 0}, {1, 1}},
		{{0.2, 0.2}, {1.2, 1.2}},
		{{0.4, 0.4}, {1.4, 1.4}},
	}
	tracks := runScenario(t, frames, scenarioParams())

	// Detections are distinct per frame, so two tracks claiming the same
	// coordinate at the same frame would be a shared detection.
	for f := range frames {
		seen := make(map[[2]float64]int)
		for i, track := range tracks {
			if f >= len(track) || track[f] == nil {
				continue
			}
			key := [2]float64{track[f][0], track[f][1]}
			if prev, ok := seen[key]; ok {
				t.Errorf("frame %d: tracks %d and %d share a detection", f, prev, i)
			}
			seen[key] = i
		}
	}
}

func TestMHT_Deterministic(t *testing.T) {
	frames := Frames{
		{{0, 0}, {3, 3}, {7, 7}},
		{{0.1, 0.2}, {3.1, 3.1}},
		{},
		{{0.3, 0.5}, {3.3, 3.2}, {9, 9}},
		{{0.4, 0.6}, {3.4, 3.3}},
	}

	var outputs [2]*bytes.Buffer
	for i := range outputs {
		tracks := runScenario(t, frames, scenarioParams())
		outputs[i] = &bytes.Buffer{}
		if err := writeTracks(outputs[i], tracks); err != nil {
			t.Fatal(err)
		}
	}
	if !bytes.Equal(outputs[0].Bytes(), outputs[1].Bytes()) {
		t.Error("repeated runs produced different output CSV")
	}
}

func TestMHT_InputValidation(t *testing.T) {
	if _, err := New(nil, scenarioParams()); err == nil {
		t.Error("expected error for empty run")
	}

	mixed := Frames{
		{{0, 0}},
		{{1, 1, 1}},
	}
	if _, err := New(mixed, scenarioParams()); err == nil {
		t.Error("expected error for mixed dimensionality")
	}

	bad := scenarioParams()
	bad.BTh = 0
	if _, err := New(Frames{{{0, 0}}}, bad); err == nil {
		t.Error("expected error for bth=0")
	}
}

func TestMHT_3DTracking(t *testing.T) {
	frames := Frames{
		{{0, 0, 0}},
		{{1, 1, 1}},
		{{2, 2, 2}},
	}
	tracks := runScenario(t, frames, scenarioParams())

	if len(tracks) != 1 {
		t.Fatalf("expected 1 track, got %d", len(tracks))
	}
	want := Track{{0, 0, 0}, {1, 1, 1}, {2, 2, 2}}
	if diff := cmp.Diff(want, tracks[0]); diff != "" {
		t.Errorf("track mismatch (-want +got):\n%s", diff)
	}
}
