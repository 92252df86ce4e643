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

// Package grammar turns source text into CST pairs, using a
// stateful-lexer-plus-struct-tag-grammar idiom built on
// github.com/alecthomas/participle/v2.
//
// This grammar runs per physical line: the line grammar is already
// line-oriented ("line := indent item [comment]"), and indentation is
// meaningful, so the in-scope block builder (blockbuilder.go) — not
// the CST layer — owns indent handling. Each line is stripped of its
// leading indent and trailing comment in Go before being handed to
// participle, which only ever sees one already-dedented logical line
// at a time.
package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer tokenizes a single dedented HLL or ISA line. No newline rule is
// needed since callers never feed it more than one line.
var Lexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"String", `"[^"]*"`, nil},
		{"Number", `-?[0-9]+(\.[0-9]+)?`, nil},
		{"Ident", `[A-Za-z_][A-Za-z0-9_]*`, nil},
		{"Operator", `(\*\*|==|!=|>=|<=|\+=|-=|\*=|/=|%=|\.\.|[-+*/%=<>!.,:()\[\]])`, nil},
		{"Whitespace", `[ \t\r]+`, nil},
	},
})
