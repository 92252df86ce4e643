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

// Package optimize implements an ordered, independently-gated pass
// pipeline over a flat Program: an ordered list of gated transforms
// over a mutable program.
package optimize

// Config gates each optimizer pass. Every field defaults to false
// (the zero value): an unconfigured Config runs no transform at all.
type Config struct {
	RemoveComments      bool
	RemoveEmpty         bool
	RemoveEmptyComments bool
	RemoveRegAliases    bool
	RemoveDevAliases    bool
	RemoveDefines       bool
	RemoveTags          bool
	OptimizeRegisters   bool
}
