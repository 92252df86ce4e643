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
package liveness

import (
	"testing"

	"github.com/stretchr/testify/require"

	"myps/internal/ast"
)

func reg(idx int) ast.RegBase { return ast.RegLiteral(idx, 0, ast.NoFix()) }

func TestInterfere(t *testing.T) {
	require.True(t, Interfere(Episode{Start: 0, End: 4}, Episode{Start: 2, End: 6}))
	require.False(t, Interfere(Episode{Start: 0, End: 2}, Episode{Start: 2, End: 6}))
	require.False(t, Interfere(Episode{Start: 0, End: 2}, Episode{Start: 3, End: 6}))
}

func TestAnalyzeSimpleReuse(t *testing.T) {
	// r0 = 1 ; use r0 ; r0 = 2 ; use r0
	prog := ast.NewProgram(
		ast.NewLine(ast.NewStmt(ast.OpMove, ast.ArgReg(reg(0)), ast.ArgNum(ast.NumLiteral(1)))),
		ast.NewLine(ast.NewStmt(ast.OpMove, ast.ArgReg(reg(1)), ast.ArgNum(ast.NumRegister(reg(0))))),
		ast.NewLine(ast.NewStmt(ast.OpMove, ast.ArgReg(reg(0)), ast.ArgNum(ast.NumLiteral(2)))),
		ast.NewLine(ast.NewStmt(ast.OpMove, ast.ArgReg(reg(1)), ast.ArgNum(ast.NumRegister(reg(0))))),
	)
	episodes := Analyze(prog)

	var r0 []Episode
	for _, e := range episodes {
		if e.Index == 0 {
			r0 = append(r0, e)
		}
	}
	require.Len(t, r0, 2)
	require.Equal(t, Episode{Index: 0, Start: 0, End: 1}, r0[0])
	require.Equal(t, Episode{Index: 0, Start: 2, End: 3}, r0[1])
}

func TestAnalyzeFixedUnionsAcrossTouches(t *testing.T) {
	fix := ast.Fixed()
	prog := ast.NewProgram(
		ast.NewLine(ast.NewStmt(ast.OpMove, ast.ArgReg(ast.RegLiteral(0, 0, fix)), ast.ArgNum(ast.NumLiteral(0)))),
		ast.NewLine(ast.NewStmt(ast.OpAdd, ast.ArgReg(ast.RegLiteral(0, 0, fix)), ast.ArgNum(ast.NumRegister(ast.RegLiteral(0, 0, fix))), ast.ArgNum(ast.NumLiteral(1)))),
	)
	episodes := Analyze(prog)
	require.Contains(t, episodes, Episode{Index: 0, Start: 0, End: 1})
}

func TestAnalyzeScopedUsesDeclaredBounds(t *testing.T) {
	scoped := ast.ScopedFix(0, 5)
	prog := ast.NewProgram(
		ast.NewLine(ast.NewStmt(ast.OpMove, ast.ArgReg(ast.RegLiteral(2, 0, scoped)), ast.ArgNum(ast.NumLiteral(0)))),
	)
	episodes := Analyze(prog)
	require.Contains(t, episodes, Episode{Index: 2, Start: 0, End: 5})
}

func TestAnalyzeIndirectDeviceAliasesToRegister(t *testing.T) {
	prog := ast.NewProgram(
		ast.NewLine(ast.NewStmt(ast.OpMove, ast.ArgReg(reg(3)), ast.ArgNum(ast.NumLiteral(0)))),
		ast.NewLine(ast.NewStmt(ast.OpS, ast.ArgDev(ast.DevLiteral(3, 1)), ast.ArgStr("On"), ast.ArgNum(ast.NumLiteral(1)))),
	)
	episodes := Analyze(prog)
	var r3 []Episode
	for _, e := range episodes {
		if e.Index == 3 {
			r3 = append(r3, e)
		}
	}
	require.Len(t, r3, 1)
	require.Equal(t, 0, r3[0].Start)
	require.Equal(t, 1, r3[0].End)
}

func TestAnalyzeStillOpenIntervalFlushedAtEnd(t *testing.T) {
	prog := ast.NewProgram(
		ast.NewLine(ast.NewStmt(ast.OpMove, ast.ArgReg(reg(7)), ast.ArgNum(ast.NumLiteral(0)))),
	)
	episodes := Analyze(prog)
	require.Contains(t, episodes, Episode{Index: 7, Start: 0, End: 0})
}
