// Package assignment solves optimal bipartite matching under a cost
// threshold, wrapping the Hungarian algorithm from
// github.com/arthurkushman/go-hungarian.
package assignment

import (
	"sort"

	hungarian "github.com/arthurkushman/go-hungarian"
)

// Pair is one matched (row, column) with its cost.
type Pair struct {
	Row  int
	Col  int
	Cost float64
}

// Solve finds the minimum-cost assignment between the rows and columns of
// the cost matrix, discarding pairs whose cost exceeds maxCost. Rectangular
// matrices are padded to square with zero-profit dummies. Pairs are returned
// in ascending row order.
func Solve(costMatrix [][]float64, maxCost float64) []Pair {
	numRows := len(costMatrix)
	if numRows == 0 {
		return nil
	}
	numCols := len(costMatrix[0])
	if numCols == 0 {
		return nil
	}

	// The Hungarian solver maximises profit, so convert with
	// profit = maxProfit - cost, using a bound above every entry.
	maxProfit := 1.0
	for _, row := range costMatrix {
		for _, c := range row {
			if c+1.0 > maxProfit {
				maxProfit = c + 1.0
			}
		}
	}

	size := numRows
	if numCols > size {
		size = numCols
	}
	profit := make([][]float64, size)
	for i := range profit {
		profit[i] = make([]float64, size)
		for j := range profit[i] {
			if i < numRows && j < numCols {
				profit[i][j] = maxProfit - costMatrix[i][j]
			}
		}
	}

	result := hungarian.SolveMax(profit)

	var pairs []Pair
	for row, cols := range result {
		for col, p := range cols {
			cost := maxProfit - p
			if row < numRows && col < numCols && cost <= maxCost {
				pairs = append(pairs, Pair{Row: row, Col: col, Cost: cost})
			}
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Row != pairs[j].Row {
			return pairs[i].Row < pairs[j].Row
		}
		return pairs[i].Col < pairs[j].Col
	})
	return pairs
}
