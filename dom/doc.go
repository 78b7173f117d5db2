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

// Package dom implements the layout engine of a source code formatter.
//
// The input is an immutable document tree of formatting instructions
// built by an upstream translator: [Token]s carrying literal text,
// [Break]s marking candidate line breaks, and [Level]s grouping them.
// [Layout] runs a backtracking search over that tree, deciding for
// every level whether it fits on one line or must break, and returns
// the decisions as a [State]. [Write] then replays the decided tree
// into an [Output] sink as a sequence of (text, source range) chunks.
//
// The tree is never mutated after construction; all decisions live in
// State values, which are updated functionally. This is what lets the
// search explore an alternative, compare it against another by line
// count, and throw the loser away without any undo machinery.
package dom

import (
	"sync/atomic"
)

// Doc is a node in the document tree.
//
// Implementations are [*Token], [*Break], [*Level], [Space] and
// [Tombstone].
type Doc interface {
	// Width returns the visual width of this doc when laid out flat,
	// in columns. A doc that can never be laid out flat (one
	// containing a forced break) reports +Inf.
	Width() float64

	// Flat returns the text of this doc when laid out flat.
	Flat() string

	// Range returns the source range covered by this doc, or an empty
	// range if it corresponds to no input text.
	Range() Range

	computeBreaks(helper CommentsHelper, maxWidth int, state State, obs ExplorationNode) State
	write(state State, out Output)
}

// Range identifies a half-open range [Start, End) of token indices in
// the original input. Ranges on emitted chunks are non-decreasing
// across the output.
type Range struct {
	Start, End int
}

// EmptyRange is the range of docs that cover no input text.
var EmptyRange = Range{Start: -1, End: -1}

// Empty reports whether the range covers no input.
func (r Range) Empty() bool {
	return r.Start >= r.End
}

// Union returns the smallest range containing both r and o.
func (r Range) Union(o Range) Range {
	switch {
	case r.Empty():
		return o
	case o.Empty():
		return r
	}
	return Range{Start: min(r.Start, o.Start), End: max(r.End, o.End)}
}

// ids are assigned at construction time and used as keys for the
// decisions recorded in a State.
var lastID atomic.Uint64

func nextID() uint64 {
	return lastID.Add(1)
}

// Space is a single mandatory space between two docs.
type Space struct{}

// NewSpace returns a space doc.
func NewSpace() Space { return Space{} }

func (Space) Width() float64 { return 1 }
func (Space) Flat() string   { return " " }
func (Space) Range() Range   { return EmptyRange }

func (Space) computeBreaks(_ CommentsHelper, _ int, state State, _ ExplorationNode) State {
	return state.withColumn(state.column + 1)
}

func (Space) write(state State, out Output) {
	out.Append(state, " ", EmptyRange)
}

// Tombstone marks a spot where the translator removed content. It has
// no width and emits nothing.
type Tombstone struct{}

// NewTombstone returns a tombstone doc.
func NewTombstone() Tombstone { return Tombstone{} }

func (Tombstone) Width() float64 { return 0 }
func (Tombstone) Flat() string   { return "" }
func (Tombstone) Range() Range   { return EmptyRange }

func (Tombstone) computeBreaks(_ CommentsHelper, _ int, state State, _ ExplorationNode) State {
	return state
}

func (Tombstone) write(State, Output) {}
