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
package regalloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"myps/internal/liveness"
)

func TestColorDisjointIntervalsShareColor(t *testing.T) {
	episodes := []liveness.Episode{
		{Index: 0, Start: 0, End: 2},
		{Index: 1, Start: 3, End: 5},
	}
	g := BuildInterference(episodes)
	colors, k := Color(g)
	require.Equal(t, 1, k)
	require.Equal(t, colors[0], colors[1])
}

func TestColorOverlappingIntervalsGetDistinctColors(t *testing.T) {
	episodes := []liveness.Episode{
		{Index: 0, Start: 0, End: 4},
		{Index: 1, Start: 2, End: 6},
	}
	g := BuildInterference(episodes)
	colors, k := Color(g)
	require.Equal(t, 2, k)
	require.NotEqual(t, colors[0], colors[1])
}

func TestColorThreeMutuallyInterferingNeedThreeColors(t *testing.T) {
	episodes := []liveness.Episode{
		{Index: 0, Start: 0, End: 10},
		{Index: 1, Start: 1, End: 9},
		{Index: 2, Start: 2, End: 8},
	}
	g := BuildInterference(episodes)
	colors, k := Color(g)
	require.Equal(t, 3, k)
	require.NotEqual(t, colors[0], colors[1])
	require.NotEqual(t, colors[1], colors[2])
	require.NotEqual(t, colors[0], colors[2])
}

func TestColorTouchingIntervalsDoNotInterfere(t *testing.T) {
	episodes := []liveness.Episode{
		{Index: 0, Start: 0, End: 3},
		{Index: 1, Start: 3, End: 6},
	}
	g := BuildInterference(episodes)
	colors, _ := Color(g)
	require.Equal(t, colors[0], colors[1])
}
