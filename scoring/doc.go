// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package scoring answers "what does it cost to align symbol x with symbol y"
// for the alignment engine in package align.
//
// Two scoring regimes are supported: a substitution matrix (*Matrix, e.g.
// BLOSUM62 or PAM250) that gives an explicit score for every symbol pair, and
// a scalar MatchMismatch pair applied by an equality test.  New enforces that
// exactly one of them is configured.
//
// Substitution matrices are usually stored as text; ParseMatrix reads the
// format
//
//	   A  C  D ...
//	A  4  0 -2 ...
//	C  0  9 -3 ...
//
// where the first line lists the column symbols and every following line
// starts with a row symbol followed by one integer per column.
package scoring
