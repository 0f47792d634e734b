// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package align

import "fmt"

// Policy says where an optimal path may start and end for free.  The flags
// are fixed for the lifetime of one grid computation.
type Policy struct {
	// TaxiInVertical lets a path start at any cell of column 0, skipping a
	// prefix of the first sequence.
	TaxiInVertical bool
	// TaxiInHorizontal lets a path start at any cell of row 0, skipping a
	// prefix of the second sequence.
	TaxiInHorizontal bool
	// TaxiOutVertical lets a path end at any cell of the last column, skipping
	// a suffix of the first sequence.
	TaxiOutVertical bool
	// TaxiOutHorizontal lets a path end at any cell of the last row, skipping
	// a suffix of the second sequence.
	TaxiOutHorizontal bool
}

// Boundary policies of the derived alignment flavors.
var (
	// GlobalPolicy aligns both sequences end to end.
	GlobalPolicy = Policy{}
	// LocalPolicy aligns a substring of each sequence.  A path may also
	// restart anywhere continuing would go negative.
	LocalPolicy = Policy{true, true, true, true}
	// FittingPolicy aligns all of the second sequence against a substring of
	// the first.
	FittingPolicy = Policy{TaxiInVertical: true, TaxiOutVertical: true}
	// OverlapPolicy aligns a suffix of the first sequence against a prefix of
	// the second.
	OverlapPolicy = Policy{TaxiInVertical: true, TaxiOutHorizontal: true}
)

// restarts reports whether any interior cell may jump back to the source.
func (p Policy) restarts() bool { return p.TaxiInVertical && p.TaxiInHorizontal }

func (p Policy) taxiOut() bool { return p.TaxiOutVertical || p.TaxiOutHorizontal }

// exitable reports whether a path may leave cell (i, j) of an n x m grid for
// the sink.
func (p Policy) exitable(i, j, n, m int) bool {
	return (p.TaxiOutVertical && p.TaxiOutHorizontal) ||
		(p.TaxiOutVertical && j == m) ||
		(p.TaxiOutHorizontal && i == n)
}

func (p Policy) String() string {
	flag := func(b bool, s string) string {
		if b {
			return s
		}
		return "-"
	}
	return fmt.Sprintf("in:%s%s,out:%s%s",
		flag(p.TaxiInVertical, "v"), flag(p.TaxiInHorizontal, "h"),
		flag(p.TaxiOutVertical, "v"), flag(p.TaxiOutHorizontal, "h"))
}
