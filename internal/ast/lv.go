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

// Lv is an assignment l-value.
type Lv interface {
	lvNode()
}

// VarLv assigns to a named variable (register- or device-typed alias,
// or a fresh register-typed variable at first assignment).
type VarLv struct{ Name string }

// DeviceParamLv is `dev.P = expr`.
type DeviceParamLv struct {
	Dev   Num
	Param string
}

// NetworkParamLv is `hash.mode.P = expr`.
type NetworkParamLv struct {
	Hash  Num
	Mode  string
	Param string
}

func (VarLv) lvNode()         {}
func (DeviceParamLv) lvNode() {}
func (NetworkParamLv) lvNode() {}
