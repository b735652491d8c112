package openmht

import (
	"fmt"
	"math"

	"github.com/openmht/openmht-go/internal/assignment"
	"github.com/openmht/openmht-go/internal/motmetrics"
)

// EvalResult summarises a point-track evaluation against ground truth.
type EvalResult struct {
	MOTA float64 // 1 - (misses + false positives + switches) / objects
	MOTP float64 // mean Euclidean distance over matched pairs

	Matches        int
	Misses         int
	FalsePositives int
	Switches       int
	Fragmentations int

	MostlyTracked    int // ground-truth tracks covered >= 80%
	PartiallyTracked int
	MostlyLost       int // ground-truth tracks covered < 20%

	Objects int // total ground-truth appearances
}

// EvaluateTracks scores hypothesis tracks against ground-truth tracks. Both
// are frame-aligned coordinate sequences (nil on absent frames), e.g. as read
// by ReadTracksCSV. Each frame is matched by optimal assignment under the
// Euclidean distance threshold; unmatched ground truth counts as a miss,
// unmatched hypothesis points as false positives.
func EvaluateTracks(groundTruth, tracks []Track, threshold float64) (EvalResult, error) {
	if threshold <= 0 {
		return EvalResult{}, fmt.Errorf("%w: evaluation threshold must be positive, got %g", ErrConfig, threshold)
	}

	frameCount := 0
	for _, t := range groundTruth {
		if len(t) > frameCount {
			frameCount = len(t)
		}
	}
	for _, t := range tracks {
		if len(t) > frameCount {
			frameCount = len(t)
		}
	}

	acc := motmetrics.NewAccumulator()
	for frame := 0; frame < frameCount; frame++ {
		gtIDs, gtPoints := pointsAt(groundTruth, frame)
		trkIDs, trkPoints := pointsAt(tracks, frame)

		cost := make([][]float64, len(gtPoints))
		for i, g := range gtPoints {
			cost[i] = make([]float64, len(trkPoints))
			for j, p := range trkPoints {
				d, err := euclidean(g, p)
				if err != nil {
					return EvalResult{}, err
				}
				cost[i][j] = d
			}
		}

		pairs := assignment.Solve(cost, threshold)
		matches := make([]motmetrics.Match, len(pairs))
		for i, p := range pairs {
			matches[i] = motmetrics.Match{
				GT:       gtIDs[p.Row],
				Track:    trkIDs[p.Col],
				Distance: p.Cost,
			}
		}
		acc.Observe(frame, gtIDs, trkIDs, matches)
	}

	mt, pt, ml := acc.LifecycleCounts()
	return EvalResult{
		MOTA:             acc.MOTA(),
		MOTP:             acc.MOTP(),
		Matches:          acc.Matches,
		Misses:           acc.Misses,
		FalsePositives:   acc.FalsePositives,
		Switches:         acc.Switches,
		Fragmentations:   acc.Fragmentations(),
		MostlyTracked:    mt,
		PartiallyTracked: pt,
		MostlyLost:       ml,
		Objects:          acc.Objects,
	}, nil
}

// pointsAt collects the track ids and coordinates present at a frame.
func pointsAt(tracks []Track, frame int) (ids []int, points []Coordinate) {
	for id, t := range tracks {
		if frame < len(t) && t[frame] != nil {
			ids = append(ids, id)
			points = append(points, t[frame])
		}
	}
	return ids, points
}

func euclidean(a, b Coordinate) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: cannot compare %dD and %dD points", ErrDimensionMismatch, len(a), len(b))
	}
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum), nil
}
