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
package compile

import (
	"fmt"
	"io"
	"strings"

	"myps/internal/ast"
)

// Print renders prog one instruction per line: tags as `name:`,
// comments `#`-prefixed, a blank line for a bare Empty.
// ast.Line.String() already produces exactly this text; Print just
// joins the program's lines.
func Print(prog *ast.Program) string {
	lines := make([]string, len(prog.Lines))
	for i, l := range prog.Lines {
		lines[i] = l.String()
	}
	return strings.Join(lines, "\n")
}

// Fprint writes Print's output to w, followed by a trailing newline
// when the program is non-empty.
func Fprint(w io.Writer, prog *ast.Program) error {
	if prog.Len() == 0 {
		return nil
	}
	_, err := fmt.Fprintln(w, Print(prog))
	return err
}
