// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package align computes optimal pairwise alignments of two symbol sequences
// by dynamic programming.
//
// The engine is a single (n+1)x(m+1) grid, Grid, whose first sequence runs
// down the rows and whose second runs across the columns.  Row/column 0 stand
// for "before the first symbol".  How a path may start and end is controlled by
// a Policy of four independent "taxi" flags; global, local, fitting and overlap
// alignment, edit distance and longest common subsequence are all parameter
// sets over the same grid:
//
//	          taxi-in v  taxi-in h  taxi-out v  taxi-out h  indel  scoring
//	Global    -          -          -           -           -5     matrix
//	Local     x          x          x           x           -5     matrix
//	Fitting   x          -          x           -           -1     1/-1
//	Overlap   x          -          -           x           -2     1/-2
//	Edit      -          -          -           -           -1     0/-1
//	LCS       -          -          -           -            0     1/0
//
// AffineGrid implements affine gap costs with three coordinate-synchronized
// layers, and FindMiddleEdge / LinearSpace implement the linear-space
// (Hirschberg) divide and conquer for inputs too large for a full grid.
//
// Ties between candidate moves are broken deterministically: horizontal, then
// vertical, then diagonal, with a later candidate winning only on a strict
// improvement.
package align
