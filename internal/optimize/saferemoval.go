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
package optimize

import "myps/internal/ast"

// safeRemoveLine deletes line i, first adjusting every remaining
// line's Scoped fix-mode bounds, LineAbs literals, and LineRel offsets
// to account for the deletion. Scoped adjustment is applied to any
// RegBase-carrying arg (a direct Reg operand or a Num wrapping one),
// not only Arg::Reg literally, since a register can also ride inside a
// Num slot.
func safeRemoveLine(prog *ast.Program, i int) error {
	for j := range prog.Lines {
		args := prog.Lines[j].Stmt.Args
		for k := range args {
			if err := adjustArgForRemoval(&args[k], i, j); err != nil {
				return err
			}
		}
	}
	prog.Lines = append(prog.Lines[:i], prog.Lines[i+1:]...)
	return nil
}

func adjustArgForRemoval(arg *ast.Arg, i, j int) error {
	switch arg.Kind {
	case ast.KReg:
		arg.Reg.Fix = shiftScopedForRemoval(arg.Reg.Fix, i)
	case ast.KNum:
		if arg.Num.Kind == ast.NumReg {
			arg.Num.Reg.Fix = shiftScopedForRemoval(arg.Num.Reg.Fix, i)
		}
	case ast.KLineAbs:
		if !arg.LineAbs.IsTag && i < arg.LineAbs.Line {
			arg.LineAbs.Line--
		}
	case ast.KLineRel:
		k := arg.LineRel
		switch {
		case j < i:
			if i >= j && i < j+k {
				k--
			}
		case j > i:
			if i >= j+k && i < j {
				k++
			}
		default: // j == i
			return ast.NewError(ast.ErrUnsafeLineRemoval, 0, 0,
				"cannot safely remove line %d: it is the source of its own relative jump", i)
		}
		arg.LineRel = k
	}
	return nil
}

func shiftScopedForRemoval(f ast.FixMode, i int) ast.FixMode {
	if f.Kind != ast.FixScoped {
		return f
	}
	s, e := f.Start, f.End
	if s > i {
		s--
	}
	if e > i {
		e--
	}
	return ast.ScopedFix(s, e)
}

// eliminateEmptyLines repeatedly removes lines whose stmt is Empty and
// either carry no comment or RemoveEmptyComments is set, via the
// safe-removal procedure above.
func eliminateEmptyLines(prog *ast.Program, cfg Config) error {
	for {
		idx := -1
		for i := range prog.Lines {
			line := prog.Lines[i]
			if !line.Stmt.IsEmpty() {
				continue
			}
			if line.HasComment() && !cfg.RemoveEmptyComments {
				continue
			}
			idx = i
			break
		}
		if idx == -1 {
			return nil
		}
		if err := safeRemoveLine(prog, idx); err != nil {
			return err
		}
	}
}
