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
package ast

// Line pairs a Stmt with its optional trailing comment.
type Line struct {
	Stmt    Stmt
	Comment *string
}

func NewLine(s Stmt) Line { return Line{Stmt: s} }

func NewLineComment(s Stmt, comment string) Line {
	c := comment
	return Line{Stmt: s, Comment: &c}
}

func (l Line) HasComment() bool { return l.Comment != nil }

func (l Line) String() string {
	body := l.Stmt.String()
	if l.Comment == nil {
		return body
	}
	if body == "" {
		return "# " + *l.Comment
	}
	return body + " # " + *l.Comment
}

// Program is a flat, ordered sequence of Lines — the output of HLL
// lowering and the input/output of the optimizer.
type Program struct {
	Lines []Line
}

func NewProgram(lines ...Line) *Program { return &Program{Lines: lines} }

func (p *Program) Len() int { return len(p.Lines) }

// ForEachArg visits every Arg in the program along with the line index
// and the argument's position within its Stmt (position 0 is the
// destination/l-value role).
func (p *Program) ForEachArg(visit func(lineIdx, argPos int, arg *Arg)) {
	for i := range p.Lines {
		args := p.Lines[i].Stmt.Args
		for j := range args {
			visit(i, j, &args[j])
		}
	}
}
