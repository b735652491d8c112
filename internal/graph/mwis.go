package graph

import (
	"math"
	"sort"
)

// MWIS returns the maximum weighted independent set of the graph, sorted
// ascending. The independent sets are enumerated as the maximal cliques of
// the complement graph, so only maximal sets compete: an all-negative maximal
// set still beats the empty set. Empty graph yields an empty result.
func (g *Weighted) MWIS() []int {
	if g.n == 0 {
		return nil
	}
	comp := g.complement()

	// Sentinel below any achievable total weight: -sum(|w|) - 1.
	bestWeight := -1.0
	for _, w := range g.weights {
		bestWeight -= math.Abs(w)
	}
	var bestSet []int

	report := func(r []int) {
		set := append([]int(nil), r...)
		sort.Ints(set)
		weight := 0.0
		for _, v := range set {
			weight += g.weights[v]
		}
		if weight > bestWeight || (weight == bestWeight && lexLess(set, bestSet)) {
			bestWeight = weight
			bestSet = set
		}
	}

	g.enumerateMaximalSets(comp, report)
	return bestSet
}

// enumerateMaximalSets runs Bron-Kerbosch with pivoting over the complement
// adjacency, with an outer degeneracy ordering.
func (g *Weighted) enumerateMaximalSets(comp [][]bool, report func([]int)) {
	order := degeneracyOrdering(comp)

	p := make([]int, g.n)
	for i := range p {
		p[i] = i
	}
	var x []int

	for _, v := range order {
		bronKerbosch(comp, []int{v}, neighborsIn(p, comp, v), neighborsIn(x, comp, v), report)
		p = removeVal(p, v)
		x = insertSorted(x, v)
	}
}

// bronKerbosch reports all maximal cliques extending r, with candidate set p
// and exclusion set x (both sorted ascending). The pivot is the vertex of
// p ∪ x with the most neighbours in p, smallest id on ties.
func bronKerbosch(comp [][]bool, r, p, x []int, report func([]int)) {
	if len(p) == 0 && len(x) == 0 {
		report(r)
		return
	}

	u := pivot(comp, p, x)
	candidates := make([]int, 0, len(p))
	for _, v := range p {
		if !comp[u][v] {
			candidates = append(candidates, v)
		}
	}

	for _, v := range candidates {
		rv := make([]int, len(r), len(r)+1)
		copy(rv, r)
		rv = append(rv, v)

		bronKerbosch(comp, rv, neighborsIn(p, comp, v), neighborsIn(x, comp, v), report)

		p = removeVal(p, v)
		x = insertSorted(x, v)
	}
}

func pivot(comp [][]bool, p, x []int) int {
	bestCount := -1
	best := -1
	// Merge p and x in ascending id order so the first maximum wins ties.
	i, j := 0, 0
	for i < len(p) || j < len(x) {
		var cand int
		switch {
		case i >= len(p):
			cand = x[j]
			j++
		case j >= len(x):
			cand = p[i]
			i++
		case p[i] < x[j]:
			cand = p[i]
			i++
		default:
			cand = x[j]
			j++
		}
		count := 0
		for _, v := range p {
			if comp[cand][v] {
				count++
			}
		}
		if count > bestCount {
			bestCount = count
			best = cand
		}
	}
	return best
}

// degeneracyOrdering repeatedly selects the vertex of minimum degree in the
// remaining graph, smallest id on ties.
func degeneracyOrdering(comp [][]bool) []int {
	n := len(comp)
	deg := make([]int, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if comp[i][j] {
				deg[i]++
			}
		}
	}

	removed := make([]bool, n)
	order := make([]int, 0, n)
	for len(order) < n {
		min := -1
		for v := 0; v < n; v++ {
			if removed[v] {
				continue
			}
			if min == -1 || deg[v] < deg[min] {
				min = v
			}
		}
		removed[min] = true
		order = append(order, min)
		for u := 0; u < n; u++ {
			if comp[min][u] && !removed[u] {
				deg[u]--
			}
		}
	}
	return order
}

// neighborsIn returns the members of the sorted set adjacent to v.
func neighborsIn(set []int, comp [][]bool, v int) []int {
	out := make([]int, 0, len(set))
	for _, u := range set {
		if comp[v][u] {
			out = append(out, u)
		}
	}
	return out
}

func removeVal(set []int, v int) []int {
	out := make([]int, 0, len(set))
	for _, u := range set {
		if u != v {
			out = append(out, u)
		}
	}
	return out
}

func insertSorted(set []int, v int) []int {
	i := sort.SearchInts(set, v)
	out := make([]int, 0, len(set)+1)
	out = append(out, set[:i]...)
	out = append(out, v)
	out = append(out, set[i:]...)
	return out
}

// lexLess reports whether a is lexicographically smaller than b. Both are
// sorted ascending; a strict prefix is smaller.
func lexLess(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
