// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package align

import "fmt"

// Move is the backtrack tag of a grid cell: the predecessor move that
// produced the cell's optimal score.
//
//	 ___|___
//	  D | V
//	  H | x
//
// (D) diagonal: consumes one symbol from each sequence
// (V) vertical: consumes a symbol of the first sequence against a gap
// (H) horizontal: consumes a symbol of the second sequence against a gap
type Move uint8

const (
	// None tags the source cell, and any cell that was never computed.
	None Move = iota
	Horizontal
	Vertical
	Diagonal
	// Source is a free taxi jump straight back to (0, 0).
	Source
	// Jump is a free taxi jump from the sink to Tag.Row, Tag.Col.  Only the
	// sink cell carries it.
	Jump
)

var moveNames = [...]string{"none", "h", "v", "d", "s", "jump"}

func (m Move) String() string {
	if int(m) < len(moveNames) {
		return moveNames[m]
	}
	return fmt.Sprintf("Move(%d)", m)
}

// Tag is a cell's backtrack tag.  It is a direction, a Source jump, or, for
// the sink only, a Jump to the cell (Row, Col) where the optimal path left the
// grid early.  Row and Col are meaningful only when Move == Jump.
type Tag struct {
	Move     Move
	Row, Col int
}

func (t Tag) String() string {
	if t.Move == Jump {
		return fmt.Sprintf("(%d,%d)", t.Row, t.Col)
	}
	return t.Move.String()
}
