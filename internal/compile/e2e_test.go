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
package compile_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"myps/internal/compile"
	"myps/internal/optimize"
)

// These mirror the seed scenarios worked through start to finish: a
// bare HLL or ISA source string, a pipeline, and the exact text it
// produces. Two of them (the if/elif/else chain and the for-loop)
// assert a "+1 past the naive count" branch offset: a conditional
// branch skips every remaining line of its own block *and* the
// trailing control-transfer line that closes it, not just the body.

func TestCompileHLLLoopYield(t *testing.T) {
	prog, err := compile.CompileHLL("loop:\n    yield\n", compile.Options{IndentSize: 4})
	require.NoError(t, err)
	require.Equal(t, "yield\njr -1", compile.Print(prog))
}

func TestCompileHLLDefFixConstantFold(t *testing.T) {
	src := "def X = 5\nfix a\na = X + 2\n"
	prog, err := compile.CompileHLL(src, compile.Options{IndentSize: 4})
	require.NoError(t, err)
	require.Equal(t, "alias a r0\nmove r0 7", compile.Print(prog))
}

func TestCompileHLLIfElifElseChain(t *testing.T) {
	src := "fix a\n" +
		"if a==0:\n" +
		"    x = 1\n" +
		"elif a==1:\n" +
		"    x = 2\n" +
		"else:\n" +
		"    x = 3\n"
	prog, err := compile.CompileHLL(src, compile.Options{IndentSize: 4})
	require.NoError(t, err)
	want := "alias a r0\n" +
		"brne r0 0 +3\n" +
		"move r2 1\n" +
		"j __endChain0\n" +
		"brne r0 1 +3\n" +
		"move r2 2\n" +
		"j __endChain0\n" +
		"move r2 3\n" +
		"__endChain0:"
	require.Equal(t, want, compile.Print(prog))
}

func TestCompileHLLForLoopDeviceWrite(t *testing.T) {
	src := "for i in 0..4:\n    d0.Setting = i\n"
	prog, err := compile.CompileHLL(src, compile.Options{IndentSize: 4})
	require.NoError(t, err)
	want := "move r0 0\n" +
		"brlt r0 4 +4\n" +
		"s d0 Setting r0\n" +
		"add r0 r0 1\n" +
		"jr -3"
	require.Equal(t, want, compile.Print(prog))
}

func TestCompileISARegisterCoalescing(t *testing.T) {
	src := "move r0 1\nmove r1 2\nmove r2 3"
	cfg := optimize.Config{OptimizeRegisters: true}
	prog, err := compile.CompileISA(src, cfg)
	require.NoError(t, err)
	require.Equal(t, "move r0 1\nmove r0 2\nmove r0 3", compile.Print(prog))
}

func TestCompileISASafeTagRemoval(t *testing.T) {
	src := "move r0 0\n" +
		"mytag:\n" +
		"add r0 r0 1\n" +
		"jr -2\n" +
		"yield\n"
	cfg := optimize.Config{RemoveTags: true, RemoveEmpty: true, RemoveEmptyComments: true}
	prog, err := compile.CompileISA(src, cfg)
	require.NoError(t, err)
	want := "move r0 0\n" +
		"add r0 r0 1\n" +
		"jr -1\n" +
		"yield"
	require.Equal(t, want, compile.Print(prog))
}
