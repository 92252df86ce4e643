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

// Package liveness implements a two-pass liveness analyzer adapted to
// this compiler's flat, no-CFG control flow: every branch already
// lowers to a straight-line sequence of relative/absolute jumps, so
// there is no basic-block graph to build — a single linear sweep over
// Program.Lines is the whole analysis.
package liveness

import (
	"sort"

	"myps/internal/ast"
)

// Episode is one register lifetime: the virtual register's original
// index, live from Start to End inclusive. The same index can produce
// several disjoint episodes as code reuses it.
type Episode struct {
	Index int
	Start int
	End   int
}

// Interfere reports whether two episodes' ranges overlap. Touching at
// a single point (a.End == b.Start) does not interfere.
func Interfere(a, b Episode) bool {
	return a.Start < b.End && b.Start < a.End
}

// interval is a mutable in-progress episode, keyed by register index
// while building the result list.
type interval struct {
	start, end int
}

// Analyze runs the two-pass algorithm over prog and returns the full
// list of lifetime episodes (Fixed/Scoped-unioned entries first, then
// the Normal pass's episodes in the order they closed).
func Analyze(prog *ast.Program) []Episode {
	var episodes []Episode

	// Fixed/Scoped pass: union every Fixed/Scoped register's bounds
	// (Fixed: the whole program; Scoped: its declared range) into one
	// interval per index, independent of l-value/r-value role.
	fixedScoped := map[int]*interval{}
	var fixedOrder []int
	prog.ForEachArg(func(lineIdx, _ int, arg *ast.Arg) {
		idx, fix, ok := regUse(*arg)
		if !ok || (fix.Kind != ast.FixFixed && fix.Kind != ast.FixScoped) {
			return
		}
		s, e := 0, len(prog.Lines)-1
		if fix.Kind == ast.FixScoped {
			s, e = fix.Start, fix.End
		}
		if cur, exists := fixedScoped[idx]; exists {
			if s < cur.start {
				cur.start = s
			}
			if e > cur.end {
				cur.end = e
			}
		} else {
			fixedScoped[idx] = &interval{start: s, end: e}
			fixedOrder = append(fixedOrder, idx)
		}
	})
	for _, idx := range fixedOrder {
		iv := fixedScoped[idx]
		episodes = append(episodes, Episode{Index: idx, Start: iv.start, End: iv.end})
	}

	// Normal pass: track None-fix registers' episodes by source
	// position, position 0 is the l-value/destination role, >=1 is
	// r-value. An indirect device is only ever read for its address,
	// so it counts as an r-value even at position 0.
	open := map[int]*interval{}
	for i := range prog.Lines {
		args := prog.Lines[i].Stmt.Args
		for pos := range args {
			idx, fix, ok := regUse(args[pos])
			if !ok || fix.Kind != ast.FixNone {
				continue
			}
			if pos == 0 && args[pos].Kind != ast.KDev {
				if cur, exists := open[idx]; exists {
					if i >= cur.end {
						episodes = append(episodes, Episode{Index: idx, Start: cur.start, End: cur.end})
						open[idx] = &interval{start: i, end: i}
					}
					// else: still within the live range, a re-definition
					// mid-lifetime is not a fresh episode boundary.
				} else {
					open[idx] = &interval{start: i, end: i}
				}
			} else {
				if cur, exists := open[idx]; exists {
					if i > cur.end {
						cur.end = i
					}
				} else {
					open[idx] = &interval{start: i, end: i}
				}
			}
		}
	}
	openIdx := make([]int, 0, len(open))
	for idx := range open {
		openIdx = append(openIdx, idx)
	}
	sort.Ints(openIdx)
	for _, idx := range openIdx {
		iv := open[idx]
		episodes = append(episodes, Episode{Index: idx, Start: iv.start, End: iv.end})
	}
	return episodes
}

// regUse extracts the register index and fix mode an arg contributes
// to liveness, if any: a direct Reg operand, a Num wrapping a
// register, or an indirect device (which aliases to the register that
// addresses it, per ast.DevBase.IndirectRegIndex's contract). SP/RA
// are physical, not virtual, and never participate in coloring.
func regUse(arg ast.Arg) (index int, fix ast.FixMode, ok bool) {
	switch arg.Kind {
	case ast.KReg:
		if !arg.Reg.IsLit() {
			return 0, ast.FixMode{}, false
		}
		return arg.Reg.Index, arg.Reg.Fix, true
	case ast.KNum:
		if arg.Num.Kind == ast.NumReg && arg.Num.Reg.IsLit() {
			return arg.Num.Reg.Index, arg.Num.Reg.Fix, true
		}
		return 0, ast.FixMode{}, false
	case ast.KDev:
		if idx, isInd := arg.Dev.IndirectRegIndex(); isInd {
			return idx, ast.FixMode{}, true
		}
		return 0, ast.FixMode{}, false
	default:
		return 0, ast.FixMode{}, false
	}
}
