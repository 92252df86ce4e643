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
	"testing"

	"github.com/stretchr/testify/require"

	"myps/internal/ast"
	"myps/internal/grammar"
)

func reg(idx int) ast.RegBase { return ast.RegLiteral(idx, 0, ast.NoFix()) }

func TestFoldBinaryArithmetic(t *testing.T) {
	cases := []struct {
		op   ast.Opcode
		a, b float64
		want float64
	}{
		{ast.OpAdd, 5, 2, 7},
		{ast.OpSub, 5, 2, 3},
		{ast.OpMul, 5, 2, 10},
		{ast.OpDiv, 5, 2, 2.5},
		{ast.OpMod, 5, 2, 1},
		{ast.OpSeq, 3, 3, 1},
		{ast.OpSne, 3, 3, 0},
		{ast.OpSlt, 1, 2, 1},
		{ast.OpAnd, 1, 0, 0},
		{ast.OpOr, 0, 4, 1},
		{ast.OpXor, 1, 1, 0},
	}
	for _, c := range cases {
		got, ok := foldBinary(c.op, c.a, c.b)
		require.True(t, ok, "op %v should fold", c.op)
		require.Equal(t, c.want, got, "op %v(%v, %v)", c.op, c.a, c.b)
	}
}

func TestFoldBinaryRejectsNonArithmeticOp(t *testing.T) {
	_, ok := foldBinary(ast.OpJr, 1, 2)
	require.False(t, ok)
}

func TestLowerBinaryFoldsLiteralOperands(t *testing.T) {
	tr := New()
	num, lines, err := tr.lowerBinary(nil, ast.BinaryExpr{Op: ast.OpAdd2, L: ast.LitExpr{Value: 5}, R: ast.LitExpr{Value: 2}})
	require.NoError(t, err)
	require.Empty(t, lines, "a fold between two literals should emit no instruction")
	require.Equal(t, ast.NumLit, num.Kind)
	require.Equal(t, float64(7), num.Lit)
}

func TestLowerBinaryEmitsInstructionWhenOperandIsARegister(t *testing.T) {
	tr := New()
	tr.Aliases.Insert("x", ast.AliasReg(tr.freshReg(ast.NoFix())))
	num, lines, err := tr.lowerBinary(nil, ast.BinaryExpr{Op: ast.OpAdd2, L: ast.VarExpr{Name: "x"}, R: ast.LitExpr{Value: 2}})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Equal(t, ast.NumReg, num.Kind)
	require.Equal(t, "add r1 r0 2", lines[0].Stmt.String())
}

func TestLowerFixEmitsOneAliasLinePerName(t *testing.T) {
	tr := New()
	lines, err := tr.lowerFix(ast.FixStmt{Names: []string{"a", "b"}})
	require.NoError(t, err)
	require.Len(t, lines, 2)
	require.Equal(t, "alias a r0", lines[0].Stmt.String())
	require.Equal(t, "alias b r1", lines[1].Stmt.String())

	a, ok := tr.Aliases.Get("a")
	require.True(t, ok)
	require.Equal(t, ast.AliasRegK, a.Kind)
	require.Equal(t, reg(0).Index, a.Reg.Index)
	require.Equal(t, ast.FixFixed, a.Reg.Fix.Kind)
}

func TestLowerFixRejectsReservedName(t *testing.T) {
	tr := New()
	_, err := tr.lowerFix(ast.FixStmt{Names: []string{"r0"}})
	require.Error(t, err)
}

func TestLowerAsnVarReusesRegisterDeclaredByFix(t *testing.T) {
	tr := New()
	fixLines, err := tr.lowerFix(ast.FixStmt{Names: []string{"a"}})
	require.NoError(t, err)
	require.Len(t, fixLines, 1)

	asnLines, err := tr.lowerAsnVar(ast.VarLv{Name: "a"}, ast.BinaryExpr{Op: ast.OpAdd2, L: ast.LitExpr{Value: 5}, R: ast.LitExpr{Value: 2}})
	require.NoError(t, err)
	require.Len(t, asnLines, 1)
	require.Equal(t, "move r0 7", asnLines[0].Stmt.String())
}

func TestLowerAsnVarAllocatesFreshRegisterWhenUnaliased(t *testing.T) {
	tr := New()
	lines, err := tr.lowerAsnVar(ast.VarLv{Name: "y"}, ast.LitExpr{Value: 3})
	require.NoError(t, err)
	require.Equal(t, "move r0 3", lines[0].Stmt.String())
	a, ok := tr.Aliases.Get("y")
	require.True(t, ok)
	require.Equal(t, ast.AliasRegK, a.Kind)
}

func TestPromoteFixedToScopedRewritesOnlyFixedRegisters(t *testing.T) {
	fixed := ast.RegLiteral(0, 0, ast.Fixed())
	none := ast.RegLiteral(1, 0, ast.NoFix())
	lines := []ast.Line{
		ast.NewLine(ast.NewStmt(ast.OpMove, ast.ArgReg(fixed), ast.ArgNum(ast.NumLiteral(1)))),
		ast.NewLine(ast.NewStmt(ast.OpMove, ast.ArgReg(none), ast.ArgNum(ast.NumRegister(fixed)))),
	}
	promoteFixedToScoped(lines)

	r0 := lines[0].Stmt.Args[0].Reg
	require.Equal(t, ast.FixScoped, r0.Fix.Kind)
	require.Equal(t, 0, r0.Fix.Start)
	require.Equal(t, 1, r0.Fix.End)

	r1 := lines[1].Stmt.Args[0].Reg
	require.Equal(t, ast.FixNone, r1.Fix.Kind, "an already-unfixed register must not be touched")
}

func TestAppendShiftedShiftsScopedBoundsBySpliceOffset(t *testing.T) {
	scoped := ast.RegLiteral(0, 0, ast.ScopedFix(0, 2))
	src := []ast.Line{
		ast.NewLine(ast.NewStmt(ast.OpMove, ast.ArgReg(scoped), ast.ArgNum(ast.NumLiteral(1)))),
	}
	dst := []ast.Line{
		ast.NewLine(ast.NewStmt(ast.OpYield)),
		ast.NewLine(ast.NewStmt(ast.OpYield)),
	}
	out := appendShifted(dst, src)
	require.Len(t, out, 3)
	r := out[2].Stmt.Args[0].Reg
	require.Equal(t, 2, r.Fix.Start)
	require.Equal(t, 4, r.Fix.End)
}

// lowerSource is a small end-to-end helper: parse, validate chains, and
// lower HLL text the same way internal/compile's pipeline does, without
// going through that package (keeping this test bottom-up at the
// package it actually exercises).
func lowerSource(t *testing.T, src string) *ast.Program {
	t.Helper()
	root, err := grammar.ParseHLL(src, 4)
	require.NoError(t, err)
	require.NoError(t, grammar.ValidateChains(root))
	prog, err := Lower(root)
	require.NoError(t, err)
	return prog
}

func TestLowerLoopYield(t *testing.T) {
	prog := lowerSource(t, "loop:\n    yield\n")
	require.Len(t, prog.Lines, 2)
	require.Equal(t, "yield", prog.Lines[0].Stmt.String())
	require.Equal(t, "jr -1", prog.Lines[1].Stmt.String())
}

func TestLowerWhileLoop(t *testing.T) {
	prog := lowerSource(t, "fix a\nwhile a==0:\n    a = 1\n")
	var rendered []string
	for _, l := range prog.Lines {
		rendered = append(rendered, l.Stmt.String())
	}
	require.Equal(t, []string{
		"alias a r0",
		"brne r0 0 +3",
		"move r0 1",
		"jr -2",
	}, rendered)
}

func TestLowerUndefinedNameIsAnError(t *testing.T) {
	_, err := lowerSourceErr(t, "x = y\n")
	require.Error(t, err)
}

func lowerSourceErr(t *testing.T, src string) (*ast.Program, error) {
	t.Helper()
	root, err := grammar.ParseHLL(src, 4)
	require.NoError(t, err)
	require.NoError(t, grammar.ValidateChains(root))
	return Lower(root)
}
