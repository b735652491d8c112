// Package graph provides an undirected graph with weighted vertices and a
// deterministic maximum weighted independent set (MWIS) solver.
//
// What:
//
//   - Weighted holds integer vertices [0..n) with real-valued weights and an
//     undirected edge set.
//   - MWIS enumerates all maximal independent sets as the maximal cliques of
//     the complement graph, via Bron-Kerbosch with pivoting under an outer
//     degeneracy ordering, and returns the set with the maximum total weight.
//
// Determinism:
//
//   - Pivot choice: the vertex of P ∪ X with the most neighbours in P,
//     smallest id on ties.
//   - Degeneracy ordering: repeatedly remove the minimum-degree vertex,
//     smallest id on ties.
//   - Equal-weight solutions: the lexicographically smallest vertex-id set.
//
// The enumeration is exponential in the worst case; conflict graphs produced
// by frame-local detection sharing stay sparse enough in practice.
package graph
