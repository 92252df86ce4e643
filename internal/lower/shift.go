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
package lower

import "myps/internal/ast"

// forEachRegArg visits every RegBase-carrying arg of a line: a direct
// Reg operand, or a Num operand wrapping a register.
func forEachRegArg(lines []ast.Line, visit func(r ast.RegBase) ast.RegBase) {
	for i := range lines {
		args := lines[i].Stmt.Args
		for j := range args {
			switch args[j].Kind {
			case ast.KReg:
				args[j].Reg = visit(args[j].Reg)
			case ast.KNum:
				if args[j].Num.Kind == ast.NumReg {
					args[j].Num.Reg = visit(args[j].Num.Reg)
				}
			}
		}
	}
}

// promoteFixedToScoped promotes Fixed registers to Scoped once a
// non-program block is fully assembled: any register still carrying a
// Fixed fix mode is rewritten to Scoped(0, len(lines)-1), giving it
// exactly that block's span.
func promoteFixedToScoped(lines []ast.Line) {
	if len(lines) == 0 {
		return
	}
	end := len(lines) - 1
	forEachRegArg(lines, func(r ast.RegBase) ast.RegBase {
		if r.Fix.Kind == ast.FixFixed {
			r.Fix = ast.ScopedFix(0, end)
		}
		return r
	})
}

// shiftScoped translates every Scoped fix-mode bound in lines by
// delta, so scopes set in a child block's local coordinates remain
// correct once the child is spliced into a parent's line buffer at a
// non-zero offset.
func shiftScoped(lines []ast.Line, delta int) {
	if delta == 0 {
		return
	}
	forEachRegArg(lines, func(r ast.RegBase) ast.RegBase {
		r.Fix = r.Fix.Shift(delta)
		return r
	})
}

// appendShifted appends src to dst, first shifting any Scoped bound in
// src by dst's current length — the position src is about to occupy.
// Every concatenation of already-lowered line slices in this package
// goes through this helper so Scoped bounds stay correct as blocks are
// assembled bottom-up.
func appendShifted(dst, src []ast.Line) []ast.Line {
	shiftScoped(src, len(dst))
	return append(dst, src...)
}
