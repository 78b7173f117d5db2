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
	"github.com/typeset-build/typeset/internal/immap"
	"github.com/typeset-build/typeset/internal/width"
)

// State is the layout search's threaded state: the current position,
// and every decision taken so far.
//
// State is a small immutable value. Updates return a new State; the
// decision maps are persistent, so a rejected exploration's snapshots
// cost nothing to discard. The accepted final State is what [Write]
// replays.
type State struct {
	// column is the current emission column.
	column int

	// indent is the indent applied to the next break that fires.
	// Levels increment it by their PlusIndent while they are being
	// laid out broken.
	indent int

	// lastIndent is the indent of the line currently being emitted,
	// set each time a break fires. Inlined levels reset their indent
	// to it.
	lastIndent int

	// numLines is the number of line breaks taken so far. It is the
	// metric the search minimizes.
	numLines int

	// branchingCoefficient counts the nondeterministic choices
	// consumed on the path to this state.
	branchingCoefficient int

	// mustBreak forces the next break to fire.
	mustBreak bool

	levels immap.Map[uint64, bool] // level id -> laid out on one line
	breaks immap.Map[uint64, breakDecision]
	toks   immap.Map[uint64, string] // token id -> reflowed comment text
}

// breakDecision is the recorded outcome for a single break.
type breakDecision struct {
	broken bool
	indent int
}

// StartingState returns the state layout begins from: column zero,
// indent zero, no lines emitted.
func StartingState() State {
	return State{}
}

// Column returns the current emission column.
func (s State) Column() int { return s.column }

// Indent returns the indent the next fired break will use.
func (s State) Indent() int { return s.indent }

// NumLines returns the number of line breaks taken so far.
func (s State) NumLines() int { return s.numLines }

// MustBreak reports whether the next break is forced to fire.
func (s State) MustBreak() bool { return s.mustBreak }

// BranchingCoefficient returns the number of nondeterministic choices
// consumed on the path to this state.
func (s State) BranchingCoefficient() int { return s.branchingCoefficient }

// IsOneLine reports whether the search decided to lay level out flat.
func (s State) IsOneLine(level *Level) bool {
	oneLine, ok := s.levels.Get(level.id)
	return ok && oneLine
}

func (s State) withColumn(column int) State {
	s.column = column
	return s
}

func (s State) withMustBreak(mustBreak bool) State {
	s.mustBreak = mustBreak
	return s
}

func (s State) withIndentIncrementedBy(plusIndent int) State {
	s.indent += plusIndent
	return s
}

// withNoIndent resets the indent to that of the current line,
// discarding any increments applied by enclosing levels since the last
// break. Inline attempts use this so that breaks inside the inlined
// level align with the line they were inlined onto.
func (s State) withNoIndent() State {
	s.indent = s.lastIndent
	return s
}

// withNewBranch consumes one unit of the branching budget.
func (s State) withNewBranch() State {
	s.branchingCoefficient++
	return s
}

func (s State) withOneLine(level *Level, oneLine bool) State {
	s.levels = s.levels.With(level.id, oneLine)
	return s
}

func (s State) withBrokenBreak(b *Break, indent int) State {
	s.breaks = s.breaks.With(b.id, breakDecision{broken: true, indent: indent})
	s.column = indent
	s.lastIndent = indent
	s.numLines++
	return s
}

func (s State) withFlatBreak(b *Break) State {
	s.breaks = s.breaks.With(b.id, breakDecision{})
	s.column += width.String(b.flat)
	return s
}

func (s State) breakDecision(b *Break) (breakDecision, bool) {
	return s.breaks.Get(b.id)
}

func (s State) withTokenText(t *Token, text string) State {
	s.toks = s.toks.With(t.id, text)
	return s
}

func (s State) tokenText(t *Token) (string, bool) {
	return s.toks.Get(t.id)
}

// updateAfterLevel adopts the decisions and position reached inside a
// level, but restores the enclosing level's indent: indent increments
// are scoped to the level that applied them.
func (s State) updateAfterLevel(inner State) State {
	inner.indent = s.indent
	return inner
}
