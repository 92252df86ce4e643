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

import (
	"myps/internal/ast"
)

// condBranch is a lowered condition ready to be folded into (or
// followed by) a conditional-skip branch: lines holds the condition's
// instructions plus a placeholder branch instruction whose LineRel arg
// is not yet set (testIdx names its index within lines), since the
// offset depends on the total length of the enclosing block, known
// only after the body is lowered too.
type condBranch struct {
	lines   []ast.Line
	testIdx int
}

// lowerCondBranch lowers cond and appends the "branch away if false"
// instruction, folding the trailing comparator into its opposite
// relative branch when possible ("seq -> brne", "sge -> brlt", ...)
// instead of computing a boolean into a register just to immediately
// test it.
func (t *Translator) lowerCondBranch(cond ast.Expr) (condBranch, error) {
	condNum, lines, err := t.lowerExpr(nil, cond)
	if err != nil {
		return condBranch{}, err
	}
	if n := len(lines); n > 0 {
		last := lines[n-1]
		if ast.IsComparator(last.Stmt.Op) && !last.HasComment() &&
			last.Stmt.Args[0].Kind == ast.KReg && condNum.Kind == ast.NumReg && last.Stmt.Args[0].Reg.Equal(condNum.Reg) {
			opp, _ := ast.OppositeBranch(last.Stmt.Op)
			folded := ast.NewStmt(opp, last.Stmt.Args[1], last.Stmt.Args[2], ast.ArgLineRel(0))
			out := append([]ast.Line{}, lines[:n-1]...)
			out = append(out, ast.NewLine(folded))
			return condBranch{lines: out, testIdx: n - 1}, nil
		}
	}
	lines = append(lines, ast.NewLine(ast.NewStmt(ast.OpBreqz, ast.ArgNum(condNum), ast.ArgLineRel(0))))
	return condBranch{lines: lines, testIdx: len(lines) - 1}, nil
}

// patchRel sets the relative-offset arg of the branch instruction at
// testIdx once lines' total length (and hence the jump target) is
// known.
func patchRel(lines []ast.Line, testIdx, total int) {
	stmt := lines[testIdx].Stmt
	last := len(stmt.Args) - 1
	stmt.Args[last] = ast.ArgLineRel(total - testIdx)
	lines[testIdx] = ast.Line{Stmt: stmt, Comment: lines[testIdx].Comment}
}

// lowerLoop lowers `loop: body` into `body; jr -len(body)`: an
// unconditional jump back to the first line.
func (t *Translator) lowerLoop(children []ast.Item) ([]ast.Line, error) {
	body, err := t.lowerItems(children)
	if err != nil {
		return nil, err
	}
	lines := appendShifted(nil, body)
	lines = append(lines, ast.NewLine(ast.NewStmt(ast.OpJr, ast.ArgLineRel(-len(lines)))))
	return lines, nil
}

// lowerWhile lowers `while cond: body` into
// `cond; br!cond -> end; body; jr -> cond`.
func (t *Translator) lowerWhile(w ast.WhileBranch, children []ast.Item) ([]ast.Line, error) {
	cb, err := t.lowerCondBranch(w.Cond)
	if err != nil {
		return nil, err
	}
	body, err := t.lowerItems(children)
	if err != nil {
		return nil, err
	}
	lines := appendShifted(nil, cb.lines)
	lines = appendShifted(lines, body)
	jrSource := len(lines)
	lines = append(lines, ast.NewLine(ast.NewStmt(ast.OpJr, ast.ArgLineRel(0-jrSource))))
	// The false-branch skips past the whole block, including the jr.
	patchRel(lines, cb.testIdx, len(lines))
	return lines, nil
}

// lowerIf lowers `if cond: body`. When the If belongs to a chain
// (followed by elif/else), it additionally emits a trailing
// `j endChain(k)` so a taken branch skips the remaining chain members.
func (t *Translator) lowerIf(br ast.IfBranch, children []ast.Item) ([]ast.Line, error) {
	cb, err := t.lowerCondBranch(br.Cond)
	if err != nil {
		return nil, err
	}
	body, err := t.lowerItems(children)
	if err != nil {
		return nil, err
	}
	lines := appendShifted(nil, cb.lines)
	lines = appendShifted(lines, body)
	if br.ChainID != nil {
		lines = append(lines, ast.NewLine(ast.NewStmt(ast.OpJ, ast.ArgLineAbs(ast.LineAbsTag(chainTagName(*br.ChainID))))))
	}
	patchRel(lines, cb.testIdx, len(lines))
	return lines, nil
}

// lowerElif lowers `elif cond: body`. The last member of a chain (its
// EndChain flag set by internal/grammar's chain.go) places the shared
// exit tag directly after its body instead of jumping to it.
func (t *Translator) lowerElif(br ast.ElifBranch, children []ast.Item) ([]ast.Line, error) {
	cb, err := t.lowerCondBranch(br.Cond)
	if err != nil {
		return nil, err
	}
	body, err := t.lowerItems(children)
	if err != nil {
		return nil, err
	}
	lines := appendShifted(nil, cb.lines)
	lines = appendShifted(lines, body)
	if br.EndChain {
		lines = append(lines, ast.NewLine(ast.TagStmt(chainTagName(br.ChainID))))
	} else {
		lines = append(lines, ast.NewLine(ast.NewStmt(ast.OpJ, ast.ArgLineAbs(ast.LineAbsTag(chainTagName(br.ChainID))))))
	}
	patchRel(lines, cb.testIdx, len(lines))
	return lines, nil
}

// lowerElse lowers `else: body`. Else is always the terminal member of
// its chain, so it always places the exit tag after its body, never a
// jump.
func (t *Translator) lowerElse(br ast.ElseBranch, children []ast.Item) ([]ast.Line, error) {
	body, err := t.lowerItems(children)
	if err != nil {
		return nil, err
	}
	lines := appendShifted(nil, body)
	lines = append(lines, ast.NewLine(ast.TagStmt(chainTagName(br.ChainID))))
	return lines, nil
}

// lowerTag lowers a bare `tag name:` header: it emits the Tag
// pseudo-instruction followed by its body, a plain jump label with no
// control-flow effect of its own.
func (t *Translator) lowerTag(br ast.TagBranch, children []ast.Item) ([]ast.Line, error) {
	body, err := t.lowerItems(children)
	if err != nil {
		return nil, err
	}
	lines := []ast.Line{ast.NewLine(ast.TagStmt(br.Name))}
	return appendShifted(lines, body), nil
}

// lowerFor lowers `for i in start..end [step s]: body` into
// `move i, start; brlt i, end, -> end; body; add i, i, step;
// jr -> test`. The iteration variable is introduced as a Fixed
// register; lowerBlock's Fixed -> Scoped
// promotion rewrites it to Scoped(0, len(block)-1) once this block's
// lines are fully assembled, giving it exactly the loop's span.
func (t *Translator) lowerFor(br ast.ForBranch, children []ast.Item) ([]ast.Line, error) {
	iReg := t.freshReg(ast.Fixed())
	t.Aliases.Insert(br.Var, ast.AliasReg(iReg))

	startNum, startLines, err := t.lowerExpr(&iReg, br.Start)
	if err != nil {
		return nil, err
	}
	lines := appendShifted(nil, startLines)
	if len(startLines) == 0 {
		lines = append(lines, ast.NewLine(ast.NewStmt(ast.OpMove, ast.ArgReg(iReg), ast.ArgNum(startNum))))
	}

	endNum, endLines, err := t.lowerExpr(nil, br.End)
	if err != nil {
		return nil, err
	}
	lines = appendShifted(lines, endLines)

	step := br.Step
	if step == nil {
		step = ast.LitExpr{Value: 1}
	}
	stepNum, stepLines, err := t.lowerExpr(nil, step)
	if err != nil {
		return nil, err
	}
	lines = appendShifted(lines, stepLines)

	testIdx := len(lines)
	lines = append(lines, ast.NewLine(ast.NewStmt(ast.OpBrlt, ast.ArgNum(ast.NumRegister(iReg)), ast.ArgNum(endNum), ast.ArgLineRel(0))))

	body, err := t.lowerItems(children)
	if err != nil {
		return nil, err
	}
	lines = appendShifted(lines, body)

	lines = append(lines, ast.NewLine(ast.NewStmt(ast.OpAdd, ast.ArgReg(iReg), ast.ArgNum(ast.NumRegister(iReg)), ast.ArgNum(stepNum))))

	jrSource := len(lines)
	lines = append(lines, ast.NewLine(ast.NewStmt(ast.OpJr, ast.ArgLineRel(testIdx-jrSource))))

	patchRel(lines, testIdx, len(lines))
	return lines, nil
}
