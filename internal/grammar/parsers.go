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
package grammar

import (
	"sync"

	"github.com/alecthomas/participle/v2"
)

var (
	isaParser  *participle.Parser[ISALineCST]
	hllParser  *participle.Parser[HLLLineCST]
	buildOnce  sync.Once
	buildErr   error
)

// build constructs the two per-line parsers once, lazily, eliding
// Whitespace only — newlines never reach participle since callers
// pre-split lines (see lexer.go).
func build() error {
	buildOnce.Do(func() {
		isaParser, buildErr = participle.Build[ISALineCST](
			participle.Lexer(Lexer),
			participle.Elide("Whitespace"),
			participle.UseLookahead(4),
		)
		if buildErr != nil {
			return
		}
		hllParser, buildErr = participle.Build[HLLLineCST](
			participle.Lexer(Lexer),
			participle.Elide("Whitespace"),
			participle.UseLookahead(4),
		)
	})
	return buildErr
}

// ParseISALine parses one already-dedented, comment-stripped ISA
// source line into a CST node.
func ParseISALine(text string) (*ISALineCST, error) {
	if err := build(); err != nil {
		return nil, err
	}
	return isaParser.ParseString("", text)
}

// ParseHLLLine parses one already-dedented, comment-stripped HLL
// source line into a CST node.
func ParseHLLLine(text string) (*HLLLineCST, error) {
	if err := build(); err != nil {
		return nil, err
	}
	return hllParser.ParseString("", text)
}
