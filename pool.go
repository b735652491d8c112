package openmht

import (
	"sort"

	"github.com/openmht/openmht-go/internal/graph"
)

// HypothesisPool owns the set of live hypotheses. It expands the population
// each frame, indexes per-frame detection claims for conflict-graph
// construction, and applies the N-scan and B-threshold pruning rules.
// Hypothesis ids are positions in the pool's slice: dense, deterministic, and
// re-packed by a stable compaction after each frame's deletions.
type HypothesisPool struct {
	params Params
	hyps   []*Hypothesis
}

// NewHypothesisPool creates an empty pool.
func NewHypothesisPool(params Params) *HypothesisPool {
	return &HypothesisPool{params: params}
}

// Len returns the number of live hypotheses.
func (p *HypothesisPool) Len() int { return len(p.hyps) }

// Expand advances the pool by one frame of detections. From the pre-frame
// snapshot it creates one detection-extension copy per (hypothesis,
// detection) pair, miss-extends every pre-frame hypothesis in place, and
// seeds a new root per detection. Extensions rejected by gating or culled are
// discarded; a culled miss extension removes its hypothesis. The resulting
// order fixes the frame's hypothesis ids: surviving pre-frame hypotheses in
// prior order, then extensions in pre order crossed with detection order,
// then new roots in detection order.
func (p *HypothesisPool) Expand(frame int, detections []Coordinate) {
	pre := p.hyps

	// Extensions are computed from the snapshot before the in-place miss
	// extension mutates the parents.
	var extensions []*Hypothesis
	for _, h := range pre {
		for det, z := range detections {
			if c := h.extendCopy(frame, det, z); c != nil {
				extensions = append(extensions, c)
			}
		}
	}

	next := make([]*Hypothesis, 0, len(pre)+len(extensions)+len(detections))
	for _, h := range pre {
		if h.missExtend(frame) {
			next = append(next, h)
		}
	}
	next = append(next, extensions...)
	for det, z := range detections {
		next = append(next, newRootHypothesis(frame, det, z, p.params))
	}
	p.hyps = next
}

// ConflictGraph builds the undirected conflict graph over the live
// hypotheses, weighted by track score. Hypotheses are bucketed by the
// (frame, detection) slots they claim, so edges cost O(#conflicts) rather
// than a pairwise history scan.
func (p *HypothesisPool) ConflictGraph() (*graph.Weighted, error) {
	g := graph.NewWeighted(len(p.hyps))
	for id, h := range p.hyps {
		if err := g.SetWeight(id, h.Score()); err != nil {
			return nil, err
		}
	}

	type slot struct{ frame, det int }
	buckets := make(map[slot][]int)
	for id, h := range p.hyps {
		for node := h.head; node != nil; node = node.parent {
			if node.det == missDetection {
				continue
			}
			key := slot{node.frame, node.det}
			buckets[key] = append(buckets[key], id)
		}
	}

	for _, ids := range buckets {
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				if err := g.AddEdge(ids[i], ids[j]); err != nil {
					return nil, err
				}
			}
		}
	}
	return g, nil
}

// Prune applies the N-scan and B-threshold rules after the frame's solution
// has been selected, then compacts the pool with a stable order-preserving
// re-pack. N-miss culls were already applied during Expand.
func (p *HypothesisPool) Prune(frame int, solution []int) {
	doomed := make([]bool, len(p.hyps))
	inSolution := make([]bool, len(p.hyps))
	for _, id := range solution {
		inSolution[id] = true
	}

	// N-scan: commit to the solution's concrete assignments at frame k-N and
	// delete every non-solution hypothesis that also claims one of them.
	pruneIndex := frame - p.params.N
	if pruneIndex < 0 {
		pruneIndex = 0
	}
	for id, h := range p.hyps {
		if inSolution[id] {
			continue
		}
		for _, sid := range solution {
			if p.hyps[sid].sharesAt(h, pruneIndex) {
				doomed[id] = true
				break
			}
		}
	}

	// B-threshold: bound the branches of each track tree to the top bth by
	// score, larger score first, smaller hypothesis id on ties.
	groups := make(map[RootID][]int)
	for id, h := range p.hyps {
		if doomed[id] {
			continue
		}
		groups[h.root] = append(groups[h.root], id)
	}
	for _, ids := range groups {
		if len(ids) <= p.params.BTh {
			continue
		}
		sort.SliceStable(ids, func(i, j int) bool {
			a, b := p.hyps[ids[i]], p.hyps[ids[j]]
			if a.Score() != b.Score() {
				return a.Score() > b.Score()
			}
			return ids[i] < ids[j]
		})
		for _, id := range ids[p.params.BTh:] {
			doomed[id] = true
		}
	}

	next := p.hyps[:0]
	for id, h := range p.hyps {
		if !doomed[id] {
			next = append(next, h)
		}
	}
	p.hyps = next
}
