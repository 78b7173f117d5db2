// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateFunctionalUpdates(t *testing.T) {
	t.Parallel()

	base := StartingState()
	assert.Equal(t, 0, base.Column())
	assert.Equal(t, 0, base.Indent())
	assert.Equal(t, 0, base.NumLines())

	moved := base.withColumn(7).withIndentIncrementedBy(4)
	assert.Equal(t, 7, moved.Column())
	assert.Equal(t, 4, moved.Indent())

	// The base value is untouched.
	assert.Equal(t, 0, base.Column())
	assert.Equal(t, 0, base.Indent())
}

func TestStateDecisionsAreIndependent(t *testing.T) {
	t.Parallel()

	level := NewLevel(OpenOp{}, tok("x"))
	base := StartingState()

	flat := base.withOneLine(level, true)
	broken := base.withOneLine(level, false)

	assert.True(t, flat.IsOneLine(level))
	assert.False(t, broken.IsOneLine(level))
	assert.False(t, base.IsOneLine(level), "decisions must not leak into the base state")
}

func TestStateBrokenBreak(t *testing.T) {
	t.Parallel()

	brk := NewBreak(Unified, " ", 2)
	state := StartingState().withColumn(17).withIndentIncrementedBy(4)

	fired := brk.decide(state, true)
	assert.Equal(t, 6, fired.Column(), "column resets to indent plus the break's delta")
	assert.Equal(t, 1, fired.NumLines())

	decision, ok := fired.breakDecision(brk)
	require.True(t, ok)
	assert.True(t, decision.broken)
	assert.Equal(t, 6, decision.indent)

	flat := brk.decide(state, false)
	assert.Equal(t, 18, flat.Column(), "flat break advances by its replacement text")
	assert.Equal(t, 0, flat.NumLines())
}

func TestStateWithNoIndent(t *testing.T) {
	t.Parallel()

	brk := NewBreak(Unified, "", 2)
	state := StartingState().withIndentIncrementedBy(4)
	state = brk.decide(state, true) // line starts at column 6

	deeper := state.withIndentIncrementedBy(8)
	assert.Equal(t, 14, deeper.Indent())

	inlined := deeper.withNoIndent()
	assert.Equal(t, 6, inlined.Indent(), "withNoIndent returns to the current line's indent")
}

func TestStateUpdateAfterLevel(t *testing.T) {
	t.Parallel()

	outer := StartingState().withIndentIncrementedBy(2)
	inner := outer.withIndentIncrementedBy(4).withColumn(30)
	inner.numLines = 3

	merged := outer.updateAfterLevel(inner)
	assert.Equal(t, 2, merged.Indent(), "the level's indent increment is scoped to it")
	assert.Equal(t, 30, merged.Column())
	assert.Equal(t, 3, merged.NumLines())
}

func TestStateBranching(t *testing.T) {
	t.Parallel()

	state := StartingState()
	for i := range 5 {
		state = state.withNewBranch()
		assert.Equal(t, i+1, state.BranchingCoefficient())
	}
}
