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

// Package lower implements the HLL-to-ISA lowering translator: it
// walks the Item tree the grammar package builds and emits a flat
// ast.Program, allocating fresh virtual registers and growing the
// alias table as it goes.
package lower

import (
	"strconv"

	"myps/internal/alias"
	"myps/internal/ast"
)

// Translator owns the monotonic virtual-register counter and the
// in-progress alias table for one compilation. It is not reusable
// across compilations — construct a fresh one per Lower call.
type Translator struct {
	Aliases *alias.Table
	next    int
}

func New() *Translator {
	return &Translator{Aliases: alias.New()}
}

// Lower is the package's entry point: it lowers a parsed HLL tree
// (internal/grammar.ParseHLL's result) into a flat Program.
func Lower(root ast.Item) (*ast.Program, error) {
	t := New()
	lines, err := t.lowerItem(root)
	if err != nil {
		return nil, err
	}
	return ast.NewProgram(lines...), nil
}

// freshReg allocates a new virtual register index. Indices are never
// reused within a compilation; reassignment is coloring's job.
func (t *Translator) freshReg(fix ast.FixMode) ast.RegBase {
	idx := t.next
	t.next++
	return ast.RegLiteral(idx, 0, fix)
}

// lowerItem lowers one Item (a leaf statement or a nested block),
// attaching the item's trailing comment to the first emitted line (or
// synthesizing a comment-only Empty line if lowering produced none,
// e.g. a pure `def`).
func (t *Translator) lowerItem(it ast.Item) ([]ast.Line, error) {
	switch v := it.(type) {
	case ast.StmtItem:
		lines, err := t.lowerHllStmt(v.Stmt)
		if err != nil {
			return nil, err
		}
		return attachComment(lines, v.Comment), nil
	case ast.BlockItem:
		lines, err := t.lowerBlock(v.Block)
		if err != nil {
			return nil, err
		}
		return attachComment(lines, v.Comment), nil
	default:
		return nil, ast.NewError(ast.ErrUnknown, 0, 0, "unknown item type %T", it)
	}
}

func attachComment(lines []ast.Line, comment *string) []ast.Line {
	if comment == nil {
		return lines
	}
	if len(lines) == 0 {
		return []ast.Line{ast.NewLineComment(ast.EmptyStmt(), *comment)}
	}
	lines[0] = ast.NewLineComment(lines[0].Stmt, *comment)
	return lines
}

// lowerItems concatenates the lowering of a sibling-item list —
// "children" of a Program or a block — in source order. This is the
// building block every block-lowering skeleton in block.go uses.
func (t *Translator) lowerItems(items []ast.Item) ([]ast.Line, error) {
	var out []ast.Line
	for _, it := range items {
		lines, err := t.lowerItem(it)
		if err != nil {
			return nil, err
		}
		out = appendShifted(out, lines)
	}
	return out, nil
}

// lowerBlock dispatches to the per-branch-kind skeleton in block.go,
// then — for every block kind but Program — applies the Fixed -> Scoped
// promotion: any register still Fixed once the block is fully
// assembled is rewritten to Scoped(0, len(lines)-1), giving it exactly
// that block's span for liveness purposes. Program has no enclosing
// scope to promote against, so Fixed registers at top level (such as
// those a top-level `fix` declares) stay Fixed.
func (t *Translator) lowerBlock(b ast.Block) ([]ast.Line, error) {
	if _, ok := b.Branch.(ast.ProgramBranch); ok {
		return t.lowerItems(b.Children)
	}
	lines, err := t.lowerNonProgramBlock(b)
	if err != nil {
		return nil, err
	}
	promoteFixedToScoped(lines)
	return lines, nil
}

func (t *Translator) lowerNonProgramBlock(b ast.Block) ([]ast.Line, error) {
	switch br := b.Branch.(type) {
	case ast.LoopBranch:
		return t.lowerLoop(b.Children)
	case ast.WhileBranch:
		return t.lowerWhile(br, b.Children)
	case ast.IfBranch:
		return t.lowerIf(br, b.Children)
	case ast.ElifBranch:
		return t.lowerElif(br, b.Children)
	case ast.ElseBranch:
		return t.lowerElse(br, b.Children)
	case ast.ForBranch:
		return t.lowerFor(br, b.Children)
	case ast.TagBranch:
		return t.lowerTag(br, b.Children)
	default:
		return nil, ast.NewError(ast.ErrUnknown, 0, 0, "unknown branch type %T", b.Branch)
	}
}

// chainTagName derives the synthetic exit label for chain id. Members
// of the same if/elif/else chain jump to, or fall into, this tag.
func chainTagName(id int) string {
	return "__endChain" + strconv.Itoa(id)
}
