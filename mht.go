package openmht

// FrameStats is a per-frame progress snapshot passed to the OnFrame hook.
type FrameStats struct {
	Frame      int // frame index just processed
	Detections int // detections in the frame
	Hypotheses int // live hypotheses after pruning
}

// MHT drives multiple hypothesis tracking over a fixed sequence of frames.
// A tracker is single-use: construct with New, call Run once.
type MHT struct {
	params Params
	frames Frames
	pool   *HypothesisPool

	// OnFrame, when set, is called after each processed frame.
	OnFrame func(FrameStats)
}

// New validates the input and configuration and prepares a tracker.
func New(frames Frames, params Params) (*MHT, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	if err := frames.validate(); err != nil {
		return nil, err
	}
	return &MHT{
		params: params,
		frames: frames,
		pool:   NewHypothesisPool(params),
	}, nil
}

// Run processes every frame in order and returns the final global hypothesis
// as one coordinate sequence per track, each covering frames 0 through the
// last frame with nil on miss and pre-birth slots. The per-frame solution is
// overwritten each frame; the returned value is the solution after the last
// frame. Tracks appear in ascending hypothesis-id order.
func (m *MHT) Run() ([]Track, error) {
	solution := []Track{}
	for frame, detections := range m.frames {
		m.pool.Expand(frame, detections)

		g, err := m.pool.ConflictGraph()
		if err != nil {
			return nil, err
		}
		ids := g.MWIS()

		// The solution hypotheses are captured before pruning: a branch can
		// lose the B-threshold competition within its root and still be part
		// of this frame's emitted solution.
		chosen := make([]*Hypothesis, len(ids))
		for i, id := range ids {
			chosen[i] = m.pool.hyps[id]
		}

		m.pool.Prune(frame, ids)
		solution = m.emit(frame, chosen)

		if m.OnFrame != nil {
			m.OnFrame(FrameStats{
				Frame:      frame,
				Detections: len(detections),
				Hypotheses: m.pool.Len(),
			})
		}
	}
	return solution, nil
}

// emit renders the chosen hypotheses as coordinate sequences over frames
// 0..frame. Coordinates are looked up by the (frame, detection id) recorded
// in each history; miss and empty slots stay nil.
func (m *MHT) emit(frame int, chosen []*Hypothesis) []Track {
	tracks := make([]Track, len(chosen))
	for i, h := range chosen {
		t := make(Track, frame+1)
		for node := h.head; node != nil; node = node.parent {
			if node.det != missDetection {
				t[node.frame] = m.frames[node.frame][node.det]
			}
		}
		tracks[i] = t
	}
	return tracks
}
