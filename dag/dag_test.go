// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package dag_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/bioalign/dag"
	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/require"
)

func newGraph(t *testing.T, edges map[int]map[int]int) *dag.Graph {
	g := &dag.Graph{}
	for from, out := range edges {
		for to, w := range out {
			require.NoError(t, g.AddEdge(from, to, w))
		}
	}
	return g
}

func TestLongestPath(t *testing.T) {
	g := newGraph(t, map[int]map[int]int{
		0: {1: 7, 2: 4},
		1: {4: 1},
		2: {3: 2},
		3: {4: 3},
	})
	expect.EQ(t, g.Len(), 5)
	weight, path, err := g.LongestPath(0, 4)
	require.NoError(t, err)
	expect.EQ(t, weight, 9)
	if diff := cmp.Diff([]int{0, 2, 3, 4}, path); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}

	// A sub-range of the graph.
	weight, path, err = g.LongestPath(2, 4)
	require.NoError(t, err)
	expect.EQ(t, weight, 5)
	expect.EQ(t, path, []int{2, 3, 4})

	weight, path, err = g.LongestPath(3, 3)
	require.NoError(t, err)
	expect.EQ(t, weight, 0)
	expect.EQ(t, path, []int{3})
}

func TestLongestPathIgnoresNodesBeforeSource(t *testing.T) {
	g := newGraph(t, map[int]map[int]int{
		0: {3: 100},
		1: {2: 1},
		2: {3: 1},
	})
	weight, path, err := g.LongestPath(1, 3)
	require.NoError(t, err)
	expect.EQ(t, weight, 2)
	expect.EQ(t, path, []int{1, 2, 3})
}

func TestLongestPathNegativeWeights(t *testing.T) {
	g := newGraph(t, map[int]map[int]int{
		0: {1: -5, 2: -1},
		1: {2: 10},
	})
	weight, path, err := g.LongestPath(0, 2)
	require.NoError(t, err)
	expect.EQ(t, weight, 5)
	expect.EQ(t, path, []int{0, 1, 2})
}

func TestLongestPathErrors(t *testing.T) {
	g := newGraph(t, map[int]map[int]int{
		0: {1: 1},
		2: {3: 1},
	})
	_, _, err := g.LongestPath(0, 3)
	expect.True(t, errors.Is(errors.NotExist, err), "%v", err)
	_, _, err = g.LongestPath(0, 7)
	expect.True(t, errors.Is(errors.NotExist, err), "%v", err)
	_, _, err = g.LongestPath(3, 0)
	expect.True(t, errors.Is(errors.NotExist, err), "%v", err)

	err = g.AddEdge(3, 3, 1)
	expect.True(t, errors.Is(errors.Invalid, err), "%v", err)
	err = g.AddEdge(4, 1, 1)
	expect.True(t, errors.Is(errors.Invalid, err), "%v", err)
}

func TestAddEdgeReplaces(t *testing.T) {
	g := &dag.Graph{}
	require.NoError(t, g.AddEdge(0, 1, 3))
	require.NoError(t, g.AddEdge(0, 1, 8))
	expect.EQ(t, g.Edges(), []dag.Edge{{From: 0, To: 1, Weight: 8}})
}

func TestParse(t *testing.T) {
	p, err := dag.Parse(strings.NewReader("0\n4\n0->1:7\n0->2:4\n2->3:2\n1->4:1\n3->4:3\n"))
	require.NoError(t, err)
	expect.EQ(t, p.Source, 0)
	expect.EQ(t, p.Sink, 4)
	weight, path, err := p.Graph.LongestPath(p.Source, p.Sink)
	require.NoError(t, err)
	expect.EQ(t, weight, 9)
	expect.EQ(t, path, []int{0, 2, 3, 4})

	for _, bad := range []string{
		"0\n",
		"x\n4\n",
		"0\n4\n0-1:7\n",
		"0\n4\n0->a:7\n",
		"0\n4\n3->1:7\n",
	} {
		_, err := dag.Parse(strings.NewReader(bad))
		require.Error(t, err, bad)
	}
}
