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

import (
	"myps/internal/ast"
	"myps/internal/liveness"
)

// Allocate runs the full register-allocation pass over prog: liveness
// analysis, interference-graph construction, greedy coloring, then
// rewriting every RegBase::Lit and every indirect device index
// according to the resulting original_index -> color map.
func Allocate(prog *ast.Program) {
	episodes := liveness.Analyze(prog)
	g := BuildInterference(episodes)
	colors, _ := Color(g)
	Rewrite(prog, colors)
}

// Rewrite applies an original_index -> color map to every register
// literal and every indirect device index in prog.
func Rewrite(prog *ast.Program, colors map[int]int) {
	prog.ForEachArg(func(_, _ int, arg *ast.Arg) {
		switch arg.Kind {
		case ast.KReg:
			if arg.Reg.IsLit() {
				if c, ok := colors[arg.Reg.Index]; ok {
					arg.Reg.Index = c
				}
			}
		case ast.KNum:
			if arg.Num.Kind == ast.NumReg && arg.Num.Reg.IsLit() {
				if c, ok := colors[arg.Num.Reg.Index]; ok {
					arg.Num.Reg.Index = c
				}
			}
		case ast.KDev:
			if idx, isInd := arg.Dev.IndirectRegIndex(); isInd {
				if c, ok := colors[idx]; ok {
					arg.Dev.Index = c
				}
			}
		}
	})
}
