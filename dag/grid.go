// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package dag

import (
	"fmt"

	"github.com/grailbio/base/errors"
)

// ManhattanTourist returns the weight of the heaviest path from the top-left
// to the bottom-right node of a rectangular grid whose edges all point down
// or right.  For a grid of r rows and c columns, down[i][j] weighs the edge
// from node (i, j) to (i+1, j) and is r-1 by c; right[i][j] weighs the edge
// from (i, j) to (i, j+1) and is r by c-1.  Misshapen matrices yield an
// errors.Invalid error.
func ManhattanTourist(down, right [][]int) (int, error) {
	if len(right) == 0 {
		return 0, errors.E(errors.Invalid, "dag: grid has no rows")
	}
	rows, cols := len(right), len(right[0])+1
	if len(down) != rows-1 {
		return 0, errors.E(errors.Invalid, fmt.Sprintf("dag: %d rows of down weights for %d grid rows", len(down), rows))
	}
	for i, row := range down {
		if len(row) != cols {
			return 0, errors.E(errors.Invalid, fmt.Sprintf("dag: down row %d has %d weights, want %d", i, len(row), cols))
		}
	}
	for i, row := range right {
		if len(row) != cols-1 {
			return 0, errors.E(errors.Invalid, fmt.Sprintf("dag: right row %d has %d weights, want %d", i, len(row), cols-1))
		}
	}
	if rows == 1 && cols == 1 {
		return 0, nil
	}

	// Node (i, j) is i*cols+j, so every edge runs to a larger id.
	var g Graph
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			id := i*cols + j
			if i+1 < rows {
				if err := g.AddEdge(id, id+cols, down[i][j]); err != nil {
					return 0, err
				}
			}
			if j+1 < cols {
				if err := g.AddEdge(id, id+1, right[i][j]); err != nil {
					return 0, err
				}
			}
		}
	}
	weight, _, err := g.LongestPath(0, rows*cols-1)
	return weight, err
}

// MinCoins returns the fewest coins of the given denominations that sum to
// value.  Every denomination must be positive and value must not be
// negative; MinCoins returns an errors.Invalid error otherwise, and an
// errors.NotExist error if no combination of coins makes value.
//
// Amounts are graph nodes and a coin is an edge of weight -1 from an amount
// to that amount plus the coin, so the heaviest path from 0 to value uses the
// fewest coins.
func MinCoins(value int, denoms []int) (int, error) {
	if value < 0 {
		return 0, errors.E(errors.Invalid, fmt.Sprintf("dag: cannot change negative amount %d", value))
	}
	for _, d := range denoms {
		if d <= 0 {
			return 0, errors.E(errors.Invalid, fmt.Sprintf("dag: coin denomination %d is not positive", d))
		}
	}
	if value == 0 {
		return 0, nil
	}
	var g Graph
	for amount := 0; amount < value; amount++ {
		for _, d := range denoms {
			if amount+d <= value {
				if err := g.AddEdge(amount, amount+d, -1); err != nil {
					return 0, err
				}
			}
		}
	}
	weight, _, err := g.LongestPath(0, value)
	if err != nil {
		if errors.Is(errors.NotExist, err) {
			return 0, errors.E(errors.NotExist, fmt.Sprintf("dag: no combination of %v makes %d", denoms, value), err)
		}
		return 0, err
	}
	return -weight, nil
}
