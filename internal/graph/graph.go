package graph

import (
	"errors"
	"fmt"
)

// ErrVertexRange indicates a vertex id outside [0..n).
var ErrVertexRange = errors.New("graph: vertex id out of range")

// Weighted is an undirected graph over vertices [0..n) with real-valued
// vertex weights. Weights may be negative.
type Weighted struct {
	n       int
	weights []float64
	adj     [][]bool
}

// NewWeighted creates a graph with n vertices, no edges and zero weights.
func NewWeighted(n int) *Weighted {
	adj := make([][]bool, n)
	for i := range adj {
		adj[i] = make([]bool, n)
	}
	return &Weighted{
		n:       n,
		weights: make([]float64, n),
		adj:     adj,
	}
}

// Len returns the number of vertices.
func (g *Weighted) Len() int { return g.n }

// SetWeight assigns a weight to vertex v.
func (g *Weighted) SetWeight(v int, w float64) error {
	if v < 0 || v >= g.n {
		return fmt.Errorf("%w: %d", ErrVertexRange, v)
	}
	g.weights[v] = w
	return nil
}

// Weight returns the weight of vertex v.
func (g *Weighted) Weight(v int) float64 { return g.weights[v] }

// AddEdge inserts the undirected edge {u, v}. Self loops and duplicate edges
// are ignored.
func (g *Weighted) AddEdge(u, v int) error {
	if u < 0 || u >= g.n || v < 0 || v >= g.n {
		return fmt.Errorf("%w: {%d, %d}", ErrVertexRange, u, v)
	}
	if u == v {
		return nil
	}
	g.adj[u][v] = true
	g.adj[v][u] = true
	return nil
}

// HasEdge reports whether {u, v} is an edge.
func (g *Weighted) HasEdge(u, v int) bool {
	if u < 0 || u >= g.n || v < 0 || v >= g.n {
		return false
	}
	return g.adj[u][v]
}

// complement returns the adjacency matrix of the complement graph: every
// distinct pair not connected in g is connected in the complement.
func (g *Weighted) complement() [][]bool {
	comp := make([][]bool, g.n)
	for i := range comp {
		comp[i] = make([]bool, g.n)
		for j := 0; j < g.n; j++ {
			comp[i][j] = i != j && !g.adj[i][j]
		}
	}
	return comp
}
