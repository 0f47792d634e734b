// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package dag computes longest paths through weighted directed acyclic
// graphs whose integer node ids are a topological order: every edge runs from
// a smaller id to a larger one.  An alignment grid is the special case whose
// nodes are the grid cells numbered in row-major order.
//
// ManhattanTourist and MinCoins solve two classic dynamic programs as longest
// paths over such graphs.
package dag

import (
	"fmt"

	"github.com/biogo/store/llrb"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
)

// Edge is a weighted edge into a node.
type Edge struct {
	From, To int
	Weight   int
}

type node struct {
	id int
	in []Edge // in insertion order
}

// Compare implements llrb.Comparable.  Nodes are ordered by id.
func (n *node) Compare(c llrb.Comparable) int {
	return n.id - c.(*node).id
}

// Graph is a weighted DAG.  The zero value is an empty graph.
type Graph struct {
	nodes llrb.Tree
}

func (g *Graph) node(id int) *node {
	if c := g.nodes.Get(&node{id: id}); c != nil {
		return c.(*node)
	}
	n := &node{id: id}
	g.nodes.Insert(n)
	return n
}

// AddEdge adds an edge of the given weight from node from to node to, adding
// either node if it is new.  Adding an edge that already exists replaces its
// weight.  from must be smaller than to; AddEdge returns an errors.Invalid
// error otherwise.
func (g *Graph) AddEdge(from, to, weight int) error {
	if from >= to {
		return errors.E(errors.Invalid, fmt.Sprintf("dag: edge %d->%d does not follow id order", from, to))
	}
	g.node(from)
	n := g.node(to)
	for i := range n.in {
		if n.in[i].From == from {
			n.in[i].Weight = weight
			return nil
		}
	}
	n.in = append(n.in, Edge{From: from, To: to, Weight: weight})
	return nil
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return g.nodes.Len() }

// Edges returns all edges, ordered by destination node and then by
// insertion.
func (g *Graph) Edges() []Edge {
	var edges []Edge
	g.nodes.Do(func(c llrb.Comparable) bool {
		edges = append(edges, c.(*node).in...)
		return false
	})
	return edges
}

type visit struct {
	value int
	back  int

	// reached is false for nodes no path from the source enters.
	reached bool
}

// LongestPath returns the weight of the heaviest path from source to sink and
// the ids of its nodes in order.  Of equally heavy predecessors of a node, the
// one whose edge was added first wins.  It returns an errors.NotExist error if
// either node is missing or no path connects them.
func (g *Graph) LongestPath(source, sink int) (int, []int, error) {
	for _, id := range []int{source, sink} {
		if g.nodes.Get(&node{id: id}) == nil {
			return 0, nil, errors.E(errors.NotExist, fmt.Sprintf("dag: no node %d", id))
		}
	}
	if source > sink {
		return 0, nil, errors.E(errors.NotExist, fmt.Sprintf("dag: no path from %d back to %d", source, sink))
	}

	visits := map[int]*visit{source: {reached: true}}
	// DoRange visits [source+1, sink+1) in id order, a topological order.
	g.nodes.DoRange(func(c llrb.Comparable) bool {
		n := c.(*node)
		v := &visit{}
		for _, e := range n.in {
			from, ok := visits[e.From]
			if !ok || !from.reached {
				continue
			}
			if w := from.value + e.Weight; !v.reached || w > v.value {
				v.value, v.back, v.reached = w, e.From, true
			}
		}
		visits[n.id] = v
		return false
	}, &node{id: source + 1}, &node{id: sink + 1})

	if !visits[sink].reached {
		return 0, nil, errors.E(errors.NotExist, fmt.Sprintf("dag: node %d is unreachable from node %d", sink, source))
	}
	path, err := backtrack(visits, source, sink)
	if err != nil {
		return 0, nil, err
	}
	log.Debug.Printf("dag: longest path %d->%d weighs %d over %d nodes", source, sink, visits[sink].value, len(path))
	return visits[sink].value, path, nil
}

func backtrack(visits map[int]*visit, source, sink int) ([]int, error) {
	path := []int{sink}
	for id := sink; id != source; {
		v, ok := visits[id]
		if !ok || !v.reached {
			return nil, errors.E(errors.Integrity, fmt.Sprintf("dag: node %d has no backtrack", id))
		}
		id = v.back
		path = append(path, id)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}
