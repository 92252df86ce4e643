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

import (
	"testing"

	"github.com/stretchr/testify/require"

	"myps/internal/ast"
)

func reg(idx int) ast.RegBase { return ast.RegLiteral(idx, 0, ast.NoFix()) }

func TestReduceDirectivesReplacesGatedDirectivesWithEmpty(t *testing.T) {
	prog := ast.NewProgram(
		ast.NewLine(ast.NewStmt(ast.OpDefine, ast.ArgStr("Setting"), ast.ArgNum(ast.NumLiteral(42)))),
		ast.NewLine(ast.NewStmt(ast.OpAlias, ast.ArgStr("counter"), ast.ArgReg(reg(0)))),
		ast.NewLine(ast.TagStmt("loop")),
		ast.NewLine(ast.NewStmt(ast.OpMove, ast.ArgReg(reg(1)), ast.ArgNum(ast.NumLiteral(1)))),
	)
	reduceDirectives(prog, Config{RemoveDefines: true, RemoveRegAliases: true, RemoveTags: true})

	require.True(t, prog.Lines[0].Stmt.IsEmpty())
	require.True(t, prog.Lines[1].Stmt.IsEmpty())
	require.True(t, prog.Lines[2].Stmt.IsEmpty())
	require.Equal(t, ast.OpMove, prog.Lines[3].Stmt.Op)
}

func TestReduceDirectivesLeavesUngatedDirectivesAlone(t *testing.T) {
	prog := ast.NewProgram(
		ast.NewLine(ast.NewStmt(ast.OpDefine, ast.ArgStr("Setting"), ast.ArgNum(ast.NumLiteral(42)))),
	)
	reduceDirectives(prog, Config{})
	require.Equal(t, ast.OpDefine, prog.Lines[0].Stmt.Op)
}

func TestSubstituteArgsResolvesRemovedDefine(t *testing.T) {
	prog := ast.NewProgram(
		ast.NewLine(ast.NewStmt(ast.OpDefine, ast.ArgStr("Setting"), ast.ArgNum(ast.NumLiteral(42)))),
		ast.NewLine(ast.NewStmt(ast.OpMove, ast.ArgReg(reg(0)), ast.ArgNum(ast.NumAliasRef("Setting")))),
	)
	cfg := Config{RemoveDefines: true}
	aliases := buildAliasTable(prog)
	err := substituteArgs(prog, cfg, aliases, tagBindings(prog))
	require.NoError(t, err)
	require.Equal(t, ast.NumLiteral(42), prog.Lines[1].Stmt.Args[1].Num)
}

func TestSubstituteArgsLeavesAliasSymbolicWhenNotRemoved(t *testing.T) {
	prog := ast.NewProgram(
		ast.NewLine(ast.NewStmt(ast.OpDefine, ast.ArgStr("Setting"), ast.ArgNum(ast.NumLiteral(42)))),
		ast.NewLine(ast.NewStmt(ast.OpMove, ast.ArgReg(reg(0)), ast.ArgNum(ast.NumAliasRef("Setting")))),
	)
	aliases := buildAliasTable(prog)
	err := substituteArgs(prog, Config{}, aliases, tagBindings(prog))
	require.NoError(t, err)
	require.Equal(t, ast.NumAlias, prog.Lines[1].Stmt.Args[1].Num.Kind)
}

func TestSubstituteArgsResolvesTagWhenTagsRemoved(t *testing.T) {
	prog := ast.NewProgram(
		ast.NewLine(ast.TagStmt("loop")),
		ast.NewLine(ast.NewStmt(ast.OpJ, ast.ArgLineAbs(ast.LineAbsTag("loop")))),
	)
	tags := tagBindings(prog)
	err := substituteArgs(prog, Config{RemoveTags: true}, buildAliasTable(prog), tags)
	require.NoError(t, err)
	require.False(t, prog.Lines[1].Stmt.Args[0].LineAbs.IsTag)
	require.Equal(t, 0, prog.Lines[1].Stmt.Args[0].LineAbs.Line)
}

func TestEliminateEmptyLinesPatchesRelativeJumps(t *testing.T) {
	// line0: brlt r0 r1 +3 (skip the empty line + the body)
	// line1: empty (to be removed)
	// line2: move r2 1
	// line3: jr -3 (back-edge to line0)
	prog := ast.NewProgram(
		ast.NewLine(ast.NewStmt(ast.OpBrlt, ast.ArgNum(ast.NumRegister(reg(0))), ast.ArgNum(ast.NumRegister(reg(1))), ast.ArgLineRel(3))),
		ast.NewLine(ast.EmptyStmt()),
		ast.NewLine(ast.NewStmt(ast.OpMove, ast.ArgReg(reg(2)), ast.ArgNum(ast.NumLiteral(1)))),
		ast.NewLine(ast.NewStmt(ast.OpJr, ast.ArgLineRel(-3))),
	)
	err := eliminateEmptyLines(prog, Config{RemoveEmptyComments: true})
	require.NoError(t, err)
	require.Equal(t, 3, prog.Len())
	require.Equal(t, 2, prog.Lines[0].Stmt.Args[2].LineRel)
	require.Equal(t, -2, prog.Lines[2].Stmt.Args[0].LineRel)
}

func TestEliminateEmptyLinesKeepsCommentedEmptyByDefault(t *testing.T) {
	prog := ast.NewProgram(
		ast.NewLineComment(ast.EmptyStmt(), "keep me"),
	)
	err := eliminateEmptyLines(prog, Config{})
	require.NoError(t, err)
	require.Equal(t, 1, prog.Len())
}

func TestOptimizeFullPipeline(t *testing.T) {
	prog := ast.NewProgram(
		ast.NewLine(ast.NewStmt(ast.OpDefine, ast.ArgStr("Setting"), ast.ArgNum(ast.NumLiteral(42)))),
		ast.NewLine(ast.NewStmt(ast.OpMove, ast.ArgReg(reg(0)), ast.ArgNum(ast.NumAliasRef("Setting")))),
	)
	out, err := Optimize(prog, Config{RemoveDefines: true, RemoveEmpty: true, RemoveEmptyComments: true})
	require.NoError(t, err)
	require.Equal(t, 1, out.Len())
	require.Equal(t, ast.NumLiteral(42), out.Lines[0].Stmt.Args[1].Num)
}
