/*
Package openmht implements multiple hypothesis tracking (MHT) for point
detections.

Given a time-ordered sequence of frames, each containing zero or more 2D or 3D
detections, the tracker produces a small set of non-conflicting tracks that
best explain the observations under a linear-Gaussian motion model.

# Basic Usage

	frames := openmht.Frames{
		{{0, 0}, {10, 10}},
		{{0.1, 0.1}, {10.1, 10.1}},
		{{0.2, 0.2}, {10.2, 10.2}},
	}

	mht, err := openmht.New(frames, openmht.DefaultParams())
	if err != nil {
		log.Fatal(err)
	}
	tracks, err := mht.Run()
	if err != nil {
		log.Fatal(err)
	}
	for i, track := range tracks {
		fmt.Printf("track %d: %v\n", i, track)
	}

# How It Works

Every frame, each live hypothesis (a chain of detection assignments) is
extended by every current detection and by a missed-detection placeholder,
while each detection also seeds a fresh root hypothesis. A scalar-gated Kalman
filter scores every hypothesis with a running log-likelihood. The global
hypothesis is the maximum weighted independent set of the conflict graph over
live hypotheses (two hypotheses conflict when they claim the same detection at
the same frame), found by enumerating maximal cliques of the complement graph.
Three pruning rules bound the combinatorial growth:

  - N-scan: commit to the solution's assignment at frame k-N and delete
    non-solution hypotheses that claim it.
  - B-threshold: keep only the top-scoring branches per root hypothesis.
  - N-miss: delete hypotheses with too many consecutive missed detections.

# Core Types

Frames is the input: a per-frame list of Coordinate points. Track is the
output: one Coordinate slot per frame, nil where the track had no detection.
Params carries the eight tracker parameters (see LoadParams for the parameter
file format).
*/
package openmht
