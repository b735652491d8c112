package openmht

// missDetection is the history slot value for a missed detection. It is
// distinct from every concrete detection id and never induces a conflict.
const missDetection = -1

// trackNode is one assignment in a hypothesis history: a (frame, detection)
// pair or a missed-detection placeholder. Histories are append-only chains
// with structural sharing, so branching a hypothesis never copies its past.
type trackNode struct {
	frame  int
	det    int // detection id within the frame, or missDetection
	parent *trackNode
}

// RootID identifies the (frame, detection) a hypothesis was seeded from.
// Hypotheses sharing a RootID are branches of the same track tree.
type RootID struct {
	Frame int
	Det   int
}

// Hypothesis is one branch of a track tree: a candidate assignment chain with
// its motion filter. The filter owns the branch's score and miss streak.
type Hypothesis struct {
	filter *KalmanTrack
	head   *trackNode
	birth  int
	root   RootID
}

// newRootHypothesis seeds a track tree from a single detection. Frames before
// the birth frame are empty slots: the hypothesis has no opinion about them
// and they never conflict with anything.
func newRootHypothesis(frame, det int, z Coordinate, params Params) *Hypothesis {
	return &Hypothesis{
		filter: NewKalmanTrack(z, params),
		head:   &trackNode{frame: frame, det: det},
		birth:  frame,
		root:   RootID{Frame: frame, Det: det},
	}
}

// extendCopy branches the hypothesis with a detection assignment. The filter
// is cloned and updated with z; the copy is nil when the update rejected the
// detection or culled the branch.
func (h *Hypothesis) extendCopy(frame, det int, z Coordinate) *Hypothesis {
	filter := h.filter.Clone()
	if filter.Update(z) != TrackAlive {
		return nil
	}
	return &Hypothesis{
		filter: filter,
		head:   &trackNode{frame: frame, det: det, parent: h.head},
		birth:  h.birth,
		root:   h.root,
	}
}

// missExtend extends the hypothesis in place with a missed detection.
// It reports false when the miss streak exceeded the limit.
func (h *Hypothesis) missExtend(frame int) bool {
	if h.filter.Update(nil) == TrackCull {
		return false
	}
	h.head = &trackNode{frame: frame, det: missDetection, parent: h.head}
	return true
}

// Score returns the hypothesis's cumulative track score.
func (h *Hypothesis) Score() float64 { return h.filter.Score() }

// Root returns the identity of the track tree this hypothesis belongs to.
func (h *Hypothesis) Root() RootID { return h.root }

// historyLen returns the number of populated history slots,
// current frame - birth frame + 1.
func (h *Hypothesis) historyLen() int {
	n := 0
	for node := h.head; node != nil; node = node.parent {
		n++
	}
	return n
}

// detAt reports the concrete detection id assigned at the given frame. ok is
// false for miss slots and for empty slots before the hypothesis's birth.
func (h *Hypothesis) detAt(frame int) (det int, ok bool) {
	for node := h.head; node != nil; node = node.parent {
		if node.frame == frame {
			if node.det == missDetection {
				return 0, false
			}
			return node.det, true
		}
		if node.frame < frame {
			break
		}
	}
	return 0, false
}

// conflicts reports whether two hypotheses claim the same detection at the
// same frame.
func (h *Hypothesis) conflicts(other *Hypothesis) bool {
	for node := h.head; node != nil; node = node.parent {
		if node.det == missDetection {
			continue
		}
		if det, ok := other.detAt(node.frame); ok && det == node.det {
			return true
		}
	}
	return false
}

// sharesAt reports whether both hypotheses assign the same concrete detection
// at one specific frame. Used by N-scan pruning at frame k-N.
func (h *Hypothesis) sharesAt(other *Hypothesis, frame int) bool {
	a, okA := h.detAt(frame)
	if !okA {
		return false
	}
	b, okB := other.detAt(frame)
	return okB && a == b
}
