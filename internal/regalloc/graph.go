// Copyright (c) 2026 The myps Contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

// Package regalloc implements a graph colorer and its application to
// register allocation: build an interference graph over the liveness
// analyzer's episodes, then greedily color it in ascending node-index
// order and rewrite the program's register indices.
package regalloc

import (
	"sort"

	"myps/internal/liveness"
	"myps/internal/utils"
)

// Graph is a mapping from node index to the set of adjacent node
// indices.
type Graph struct {
	adj map[int]*utils.Set[int]
}

func NewGraph() *Graph {
	return &Graph{adj: map[int]*utils.Set[int]{}}
}

func (g *Graph) addNode(n int) {
	if _, ok := g.adj[n]; !ok {
		g.adj[n] = utils.NewSet[int]()
	}
}

func (g *Graph) addEdge(a, b int) {
	if a == b {
		return
	}
	g.addNode(a)
	g.addNode(b)
	g.adj[a].Add(b)
	g.adj[b].Add(a)
}

// Nodes returns the graph's node indices in ascending order, the
// iteration order color() is required to use.
func (g *Graph) Nodes() []int {
	out := make([]int, 0, len(g.adj))
	for n := range g.adj {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

func (g *Graph) Neighbors(n int) *utils.Set[int] {
	return g.adj[n]
}

// BuildInterference constructs the interference graph over a set of
// lifetime episodes: nodes are the distinct original register indices,
// edges connect every pair of interfering episodes that belong to
// different indices.
func BuildInterference(episodes []liveness.Episode) *Graph {
	g := NewGraph()
	for _, e := range episodes {
		g.addNode(e.Index)
	}
	for i := 0; i < len(episodes); i++ {
		for j := i + 1; j < len(episodes); j++ {
			a, b := episodes[i], episodes[j]
			if a.Index == b.Index {
				continue
			}
			if liveness.Interfere(a, b) {
				g.addEdge(a.Index, b.Index)
			}
		}
	}
	return g
}
