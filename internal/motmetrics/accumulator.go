// Package motmetrics accumulates frame-by-frame tracking events for
// multi-object tracking evaluation: matches, misses, false positives,
// identity switches and per-object lifecycles.
package motmetrics

// Lifecycle follows one ground-truth object across the sequence.
type Lifecycle struct {
	FirstFrame int
	LastFrame  int

	TrackedFrames  int // frames where the object was matched
	PresentFrames  int // frames where the object existed
	Fragmentations int // miss -> match transitions after the first match

	wasMatched  bool
	everMatched bool
}

// Coverage returns the proportion of present frames where the object was
// tracked.
func (l *Lifecycle) Coverage() float64 {
	if l.PresentFrames == 0 {
		return 0
	}
	return float64(l.TrackedFrames) / float64(l.PresentFrames)
}

// Match is one matched (ground truth, track) pair in a frame.
type Match struct {
	GT       int
	Track    int
	Distance float64
}

// Accumulator counts tracking events across a sequence. Feed it one Observe
// call per frame.
type Accumulator struct {
	Matches        int
	Misses         int
	FalsePositives int
	Switches       int
	TotalDistance  float64
	Objects        int // total ground-truth object appearances

	// last known GT -> track mapping, kept across miss gaps so a switch
	// after occlusion is still counted
	prev       map[int]int
	lifecycles map[int]*Lifecycle
}

// NewAccumulator creates an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		prev:       make(map[int]int),
		lifecycles: make(map[int]*Lifecycle),
	}
}

// Observe records one frame: the ground-truth ids present, the track ids
// present, and the matched pairs chosen by the assignment step.
func (a *Accumulator) Observe(frame int, gtIDs, trackIDs []int, matches []Match) {
	a.Objects += len(gtIDs)

	matchedGT := make(map[int]bool, len(matches))
	matchedTrack := make(map[int]bool, len(matches))
	for _, m := range matches {
		matchedGT[m.GT] = true
		matchedTrack[m.Track] = true

		a.Matches++
		a.TotalDistance += m.Distance
		if prev, ok := a.prev[m.GT]; ok && prev != m.Track {
			a.Switches++
		}
		a.prev[m.GT] = m.Track
	}

	for _, gt := range gtIDs {
		lc := a.lifecycles[gt]
		if lc == nil {
			lc = &Lifecycle{FirstFrame: frame}
			a.lifecycles[gt] = lc
		}
		lc.LastFrame = frame
		lc.PresentFrames++
		if matchedGT[gt] {
			if !lc.wasMatched && lc.everMatched {
				lc.Fragmentations++
			}
			lc.TrackedFrames++
			lc.wasMatched = true
			lc.everMatched = true
		} else {
			a.Misses++
			lc.wasMatched = false
		}
	}

	for _, id := range trackIDs {
		if !matchedTrack[id] {
			a.FalsePositives++
		}
	}
}

// MOTA returns the multiple object tracking accuracy,
// 1 - (misses + false positives + switches) / objects.
func (a *Accumulator) MOTA() float64 {
	if a.Objects == 0 {
		return 0
	}
	return 1 - float64(a.Misses+a.FalsePositives+a.Switches)/float64(a.Objects)
}

// MOTP returns the mean distance over matched pairs.
func (a *Accumulator) MOTP() float64 {
	if a.Matches == 0 {
		return 0
	}
	return a.TotalDistance / float64(a.Matches)
}

// LifecycleCounts returns the number of mostly tracked (coverage >= 0.8),
// partially tracked and mostly lost (coverage < 0.2) ground-truth objects.
func (a *Accumulator) LifecycleCounts() (mostlyTracked, partiallyTracked, mostlyLost int) {
	for _, lc := range a.lifecycles {
		switch cov := lc.Coverage(); {
		case cov >= 0.8:
			mostlyTracked++
		case cov < 0.2:
			mostlyLost++
		default:
			partiallyTracked++
		}
	}
	return mostlyTracked, partiallyTracked, mostlyLost
}

// Fragmentations returns the total number of track fragmentations.
func (a *Accumulator) Fragmentations() int {
	total := 0
	for _, lc := range a.lifecycles {
		total += lc.Fragmentations
	}
	return total
}
