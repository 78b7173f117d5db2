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

// OpenOp is the immutable configuration attached to a [Level] at
// construction. The zero value is a plain level: no extra indent,
// break unconditionally when it does not fit, never inline into it.
type OpenOp struct {
	// PlusIndent is the additional indent applied when the level
	// breaks.
	PlusIndent int

	// BreakBehaviour selects how the level breaks when it does not fit
	// flat.
	BreakBehaviour BreakBehaviour

	// BreakabilityIfLastLevel is consulted when this level is the last
	// child of a level attempting to inline its prefix.
	BreakabilityIfLastLevel LastLevelBreakability

	// PartialInlineability gates whether this level's prefix may be
	// laid out on its parent's line while the rest of it breaks.
	PartialInlineability PartialInlineability

	// ColumnLimitBeforeLastBreak, if positive, is a tighter column cap
	// applied to the position just before the last column-limited
	// [Break] in the level when checking whether the level fits flat.
	ColumnLimitBeforeLastBreak int

	// DebugName appears in exploration dumps.
	DebugName string

	// Simple marks levels whose structure permits chained inlining.
	Simple bool
}

// BreakBehaviour selects how a level breaks when it does not fit flat.
type BreakBehaviour struct {
	kind behaviourKind

	// Whether the level's PlusIndent is kept when the level is laid
	// out inline rather than broken.
	keepIndentWhenInlined bool
}

type behaviourKind byte

const (
	behaviourBreakThisLevel behaviourKind = iota
	behaviourPreferBreakingLastInnerLevel
	behaviourBreakOnlyIfInnerLevelsThenFitOnOneLine
)

// BreakThisLevel breaks the level unconditionally when it does not fit
// flat. This is the zero value of BreakBehaviour.
func BreakThisLevel() BreakBehaviour {
	return BreakBehaviour{kind: behaviourBreakThisLevel}
}

// PreferBreakingLastInnerLevel tries breaking only the last inner
// level; if that produces fewer lines than breaking normally, it wins.
// This is what keeps a method chain's prefix on the caller's line.
func PreferBreakingLastInnerLevel(keepIndentWhenInlined bool) BreakBehaviour {
	return BreakBehaviour{
		kind:                  behaviourPreferBreakingLastInnerLevel,
		keepIndentWhenInlined: keepIndentWhenInlined,
	}
}

// BreakOnlyIfInnerLevelsThenFitOnOneLine lays the level out on one
// line, inner breaks permitting, when some inner level had to break
// anyway and the level's prefix still fits.
func BreakOnlyIfInnerLevelsThenFitOnOneLine(keepIndentWhenInlined bool) BreakBehaviour {
	return BreakBehaviour{
		kind:                  behaviourBreakOnlyIfInnerLevelsThenFitOnOneLine,
		keepIndentWhenInlined: keepIndentWhenInlined,
	}
}

// String returns the behaviour's name for debug output.
func (b BreakBehaviour) String() string {
	switch b.kind {
	case behaviourBreakThisLevel:
		return "breakThisLevel"
	case behaviourPreferBreakingLastInnerLevel:
		return "preferBreakingLastInnerLevel"
	case behaviourBreakOnlyIfInnerLevelsThenFitOnOneLine:
		return "breakOnlyIfInnerLevelsThenFitOnOneLine"
	}
	return "unknown"
}

// LastLevelBreakability is consulted on a level that is the last child
// of its parent while the parent attempts to inline its prefix.
type LastLevelBreakability byte

const (
	// Abort refuses inlining. This is the zero value.
	Abort LastLevelBreakability = iota

	// CheckInner delegates the decision to this level's own last inner
	// level, recursing down the chain.
	CheckInner

	// AcceptInlineChain accepts inlining, provided there is column
	// room for this level's prefix up to its first break.
	AcceptInlineChain

	// AcceptInlineChainIfSimpleOtherwiseCheckInner acts like
	// AcceptInlineChain while every level on the inlining path is
	// simple. Otherwise it acts like CheckInner if this level breaks by
	// preferring its last inner level, and declines inlining if it does
	// not (where an explicit CheckInner is an internal error).
	AcceptInlineChainIfSimpleOtherwiseCheckInner
)

// String returns the breakability's name for debug output.
func (b LastLevelBreakability) String() string {
	switch b {
	case Abort:
		return "abort"
	case CheckInner:
		return "checkInner"
	case AcceptInlineChain:
		return "acceptInlineChain"
	case AcceptInlineChainIfSimpleOtherwiseCheckInner:
		return "acceptInlineChainIfSimpleOtherwiseCheckInner"
	}
	return "unknown"
}

// PartialInlineability gates whether a level's prefix, up to its first
// break, may be laid out on the parent's line while the rest of the
// level breaks.
type PartialInlineability byte

const (
	// PartiallyInlineable allows prefix inlining. This is the zero
	// value.
	PartiallyInlineable PartialInlineability = iota

	// NotPartiallyInlineable forbids prefix inlining; inline attempts
	// treat the level as having unbounded prefix width.
	NotPartiallyInlineable
)
