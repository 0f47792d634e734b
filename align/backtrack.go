// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package align

import (
	"fmt"

	"github.com/grailbio/base/errors"
)

// ErrCorruptGrid is wrapped by the errors.Integrity error a backtrack returns
// when it meets a cell whose tag cannot lead back to the source.
var ErrCorruptGrid = errors.New("align: corrupt backtrack table")

func corrupt(format string, args ...interface{}) error {
	return errors.E(errors.Integrity, fmt.Sprintf(format, args...), ErrCorruptGrid)
}

// Backtrack reconstructs an optimal alignment from the filled grid.  It starts
// at the sink, or directly at the taxi-out cell the sink jumps to, and follows
// the tags until it reaches the source or a Source tag.  Symbols skipped by
// either jump are not part of the alignment.
func (g *Grid) Backtrack() (Alignment, error) {
	n, m := len(g.one), len(g.two)
	i, j := n, m
	if g.sink.Move == Jump {
		i, j = g.sink.Row, g.sink.Col
	}
	endI, endJ := i, j
	var b builder
loop:
	for i > 0 || j > 0 {
		if i < 0 || j < 0 {
			return Alignment{}, corrupt("align: backtrack left the grid at (%d,%d)", i, j)
		}
		switch move := g.moves[i*g.nCol+j]; move {
		case Horizontal:
			if j == 0 {
				return Alignment{}, corrupt("align: horizontal move out of column 0 at row %d", i)
			}
			j--
			b.column(Gap, g.two[j])
		case Vertical:
			if i == 0 {
				return Alignment{}, corrupt("align: vertical move out of row 0 at column %d", j)
			}
			i--
			b.column(g.one[i], Gap)
		case Diagonal:
			if i == 0 || j == 0 {
				return Alignment{}, corrupt("align: diagonal move out of the boundary at (%d,%d)", i, j)
			}
			i--
			j--
			b.column(g.one[i], g.two[j])
		case Source:
			break loop
		default:
			return Alignment{}, corrupt("align: cell (%d,%d) has backtrack tag %v", i, j, move)
		}
	}
	a := b.finish(g.Score(), n, m)
	a.OneStart, a.OneEnd = i, endI
	a.TwoStart, a.TwoEnd = j, endJ
	return a, nil
}
