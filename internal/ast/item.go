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

// Item is the HLL tree node: either a Block (a branch with children)
// or a single Stmt, each with an optional trailing comment.
type Item interface {
	itemNode()
}

type BlockItem struct {
	Block   Block
	Comment *string
}

type StmtItem struct {
	Stmt    HllStmt
	Comment *string
}

func (BlockItem) itemNode() {}
func (StmtItem) itemNode()  {}

func NewBlockItem(b Block) Item { return BlockItem{Block: b} }
func NewStmtItem(s HllStmt) Item { return StmtItem{Stmt: s} }
