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
	"math"

	"github.com/typeset-build/typeset/internal/width"
)

// FillMode controls how a [Break] interacts with its sibling breaks
// when the enclosing level is broken.
type FillMode byte

const (
	// Unified breaks fire together: when the enclosing level breaks,
	// every unified break in it breaks.
	Unified FillMode = iota

	// Independent breaks fire individually: each one breaks only if
	// the content after it would not fit on the current line,
	// producing a filled layout.
	Independent

	// Forced breaks always fire. A forced break poisons the flat width
	// of every enclosing level, so none of them can be laid out flat.
	Forced
)

// Break is a candidate line break between two docs in a [Level].
//
// When a break fires it emits a newline and sets the column to the
// enclosing indent plus the break's own indent delta. When it does not
// fire it emits its flat replacement text, usually a single space.
type Break struct {
	id         uint64
	fill       FillMode
	flat       string
	plusIndent int

	// If set, this break participates in the enclosing level's
	// column-limit-before-last-break check.
	hasColumnLimit bool

	width float64
}

// NewBreak returns a break with the given fill mode, flat replacement
// text and indent delta.
func NewBreak(fill FillMode, flat string, plusIndent int) *Break {
	b := &Break{
		id:         nextID(),
		fill:       fill,
		flat:       flat,
		plusIndent: plusIndent,
		width:      float64(width.String(flat)),
	}
	if fill == Forced {
		b.width = math.Inf(1)
	}
	return b
}

// NewColumnLimitedBreak is like [NewBreak], but the returned break is
// checked against the enclosing level's column limit before last
// break.
func NewColumnLimitedBreak(fill FillMode, flat string, plusIndent int) *Break {
	b := NewBreak(fill, flat, plusIndent)
	b.hasColumnLimit = true
	return b
}

// ForcedBreak returns a break that always fires: a forced newline.
func ForcedBreak() *Break {
	return NewBreak(Forced, "", 0)
}

// Fill returns the break's fill mode.
func (b *Break) Fill() FillMode { return b.fill }

func (b *Break) Width() float64 { return b.width }
func (b *Break) Flat() string   { return b.flat }
func (b *Break) Range() Range   { return EmptyRange }

// decide records whether this break fires and advances the state
// accordingly. A fired break starts a new line at the enclosing indent
// plus the break's indent delta.
func (b *Break) decide(state State, broken bool) State {
	if !broken {
		return state.withFlatBreak(b)
	}
	indent := max(state.indent+b.plusIndent, 0)
	return state.withBrokenBreak(b, indent)
}

// Breaks only appear directly between the splits of a level, where the
// level decides them; a break reached through computeBreaks is outside
// any split and fires only when a break is already due.
func (b *Break) computeBreaks(_ CommentsHelper, _ int, state State, _ ExplorationNode) State {
	return b.decide(state, state.mustBreak || b.fill == Forced)
}

func (b *Break) write(state State, out Output) {
	decision, ok := state.breakDecision(b)
	if !ok {
		// The search never reached this break; it stays flat.
		out.Append(state, b.flat, EmptyRange)
		return
	}
	if !decision.broken {
		out.Append(state, b.flat, EmptyRange)
		return
	}
	out.Append(state, "\n", EmptyRange)
	out.Indent(decision.indent)
}
