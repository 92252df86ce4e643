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

import "myps/internal/ast"

// ValidateChains runs the chain-ID validation pass: for each `If`
// immediately followed by one or more `Elif`/`Else`
// siblings at the same nesting level, it assigns a fresh chain ID,
// propagates it to every member, and marks the last member's end-chain
// flag. A dangling `Elif`/`Else` with no preceding `If` sibling is an
// error. The pass owns its own counter rather than a package-level
// var, so repeated ParseHLL calls never leak state between them.
func ValidateChains(root ast.Item) error {
	v := &chainValidator{}
	_, err := v.item(root)
	return err
}

type chainValidator struct {
	nextID int
}

func (v *chainValidator) item(it ast.Item) (ast.Item, error) {
	bi, ok := it.(ast.BlockItem)
	if !ok {
		return it, nil
	}
	children, err := v.children(bi.Block.Children)
	if err != nil {
		return nil, err
	}
	bi.Block.Children = children
	return bi, nil
}

func (v *chainValidator) children(items []ast.Item) ([]ast.Item, error) {
	for i := range items {
		processed, err := v.item(items[i])
		if err != nil {
			return nil, err
		}
		items[i] = processed
	}

	i := 0
	for i < len(items) {
		bi, ok := items[i].(ast.BlockItem)
		if !ok {
			i++
			continue
		}
		switch bi.Block.Branch.(type) {
		case ast.IfBranch:
			last, err := v.assignChain(items, i)
			if err != nil {
				return nil, err
			}
			i = last + 1
		case ast.ElifBranch, ast.ElseBranch:
			return nil, ast.NewError(ast.ErrParse, 0, 0, "elif/else with no preceding if at the same nesting level")
		default:
			i++
		}
	}
	return items, nil
}

// assignChain collects the run of Elif/Else items immediately
// following the If at items[start], assigns them a shared chain ID
// if the run is non-empty, and returns the index of the run's last
// member (start itself if there is no Elif/Else following).
func (v *chainValidator) assignChain(items []ast.Item, start int) (int, error) {
	members := []int{start}
	j := start + 1
	for j < len(items) {
		bj, ok := items[j].(ast.BlockItem)
		if !ok {
			break
		}
		switch bj.Block.Branch.(type) {
		case ast.ElifBranch:
			members = append(members, j)
			j++
			continue
		case ast.ElseBranch:
			members = append(members, j)
			j++
		}
		break
	}
	if len(members) == 1 {
		return start, nil
	}

	id := v.nextID
	v.nextID++
	for k, idx := range members {
		bi := items[idx].(ast.BlockItem)
		switch br := bi.Block.Branch.(type) {
		case ast.IfBranch:
			cid := id
			br.ChainID = &cid
			bi.Block.Branch = br
		case ast.ElifBranch:
			br.ChainID = id
			br.EndChain = k == len(members)-1
			bi.Block.Branch = br
		case ast.ElseBranch:
			br.ChainID = id
			bi.Block.Branch = br
		}
		items[idx] = bi
	}
	return members[len(members)-1], nil
}
