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
package regalloc

// Color greedily colors g in ascending node-index order: each node
// takes the smallest color not used by any already-colored neighbor.
// Returns the node -> color mapping and the number of colors used, k,
// which this always bounds above by max_degree + 1.
func Color(g *Graph) (colors map[int]int, k int) {
	colors = map[int]int{}
	for _, n := range g.Nodes() {
		used := map[int]bool{}
		neighbors := g.Neighbors(n)
		if neighbors != nil {
			neighbors.ForEach(func(m int) {
				if c, ok := colors[m]; ok {
					used[c] = true
				}
			})
		}
		c := 0
		for used[c] {
			c++
		}
		colors[n] = c
		if c+1 > k {
			k = c + 1
		}
	}
	return colors, k
}
