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
	"strings"

	"github.com/typeset-build/typeset/internal/ext/slicesx"
)

// maxBranchingCoefficient caps how many times the search may consider
// breaking vs. not breaking on a single path from the root. Past the
// cap it always breaks, which bounds the worst case on pathological
// chains without hurting realistic input.
const maxBranchingCoefficient = 20

// Level is a grouping doc: an ordered run of children that is laid out
// either flat on one line, or broken along its interior [Break]s.
type Level struct {
	id   uint64
	open OpenOp
	docs []Doc

	splits *splitsBreaks

	width   float64
	widthOK bool
	flat    string
	flatOK  bool
	rng     Range
	rngOK   bool
}

// NewLevel returns a level with the given configuration and children.
func NewLevel(open OpenOp, docs ...Doc) *Level {
	return &Level{id: nextID(), open: open, docs: docs}
}

// Add appends children to the level. It must not be called once layout
// has begun; the tree is immutable during the search.
func (l *Level) Add(docs ...Doc) {
	l.docs = append(l.docs, docs...)
	l.splits = nil
	l.widthOK, l.flatOK, l.rngOK = false, false, false
}

// Docs returns the level's children.
func (l *Level) Docs() []Doc { return l.docs }

// OpenOp returns the level's configuration.
func (l *Level) OpenOp() OpenOp { return l.open }

func (l *Level) Width() float64 {
	if !l.widthOK {
		l.width = docsWidth(l.docs)
		l.widthOK = true
	}
	return l.width
}

func (l *Level) Flat() string {
	if !l.flatOK {
		var sb strings.Builder
		for _, doc := range l.docs {
			sb.WriteString(doc.Flat())
		}
		l.flat = sb.String()
		l.flatOK = true
	}
	return l.flat
}

func (l *Level) Range() Range {
	if !l.rngOK {
		rng := EmptyRange
		for _, doc := range l.docs {
			rng = rng.Union(doc.Range())
		}
		l.rng = rng
		l.rngOK = true
	}
	return l.rng
}

// splitsBreaks partitions a level's children into splits, the maximal
// break-free runs, and the breaks separating them. A level with k
// breaks has k+1 splits, some possibly empty.
type splitsBreaks struct {
	splits [][]Doc
	breaks []*Break
}

func splitByBreaks(docs []Doc) *splitsBreaks {
	sb := &splitsBreaks{}
	split := []Doc{}
	for _, doc := range docs {
		if brk, ok := doc.(*Break); ok {
			sb.splits = append(sb.splits, split)
			sb.breaks = append(sb.breaks, brk)
			split = []Doc{}
			continue
		}
		split = append(split, doc)
	}
	sb.splits = append(sb.splits, split)
	return sb
}

func (l *Level) splitsByBreaks() *splitsBreaks {
	if l.splits == nil {
		l.splits = splitByBreaks(l.docs)
	}
	return l.splits
}

func (l *Level) computeBreaks(helper CommentsHelper, maxWidth int, state State, obs ExplorationNode) State {
	if column, ok := l.fitsOnOneLine(maxWidth, float64(state.column), l.docs); ok {
		return state.withColumn(int(column)).withOneLine(l, true)
	}

	node := obs.NewChildNode(l, state)

	var settled State
	behaviour := l.open.BreakBehaviour
	switch behaviour.kind {
	case behaviourBreakThisLevel:
		settled = l.breakNormally(helper, maxWidth, state, node).MarkAccepted()
	case behaviourPreferBreakingLastInnerLevel:
		settled = l.preferBreakingLastInnerLevel(helper, maxWidth, state, node)
	case behaviourBreakOnlyIfInnerLevelsThenFitOnOneLine:
		settled = l.breakOnlyIfInnerLevelsFit(helper, maxWidth, state, node, behaviour.keepIndentWhenInlined)
	default:
		internalf("unknown break behaviour %v on level %q", behaviour, l.open.DebugName)
	}

	return node.FinishLevel(state.updateAfterLevel(settled))
}

// fitsOnOneLine walks docs tracking the column they would reach laid
// out flat, honoring nested column-limit-before-last-break caps.
// Returns false if anything forces a break or the column budget is
// exceeded.
func (l *Level) fitsOnOneLine(maxWidth int, column float64, docs []Doc) (float64, bool) {
	columnBeforeLastBreak := 0.0
	for _, doc := range docs {
		switch d := doc.(type) {
		case *Break:
			if d.hasColumnLimit {
				columnBeforeLastBreak = column
			}
		case *Level:
			// Inner levels may carry their own column limit, so
			// recurse instead of trusting the cached width.
			newColumn, ok := d.fitsOnOneLine(maxWidth, column, d.docs)
			if !ok {
				return 0, false
			}
			column = newColumn
			continue
		}
		column += doc.Width()
	}

	if limit := l.open.ColumnLimitBeforeLastBreak; limit > 0 && columnBeforeLastBreak > float64(limit) {
		return 0, false
	}
	if column > float64(maxWidth) {
		return 0, false
	}
	return column, true
}

func (l *Level) breakNormally(helper CommentsHelper, maxWidth int, state State, node LevelNode) Exploration {
	broken := state.withIndentIncrementedBy(l.open.PlusIndent)
	return node.Explore("breaking normally", broken, func(e ExplorationNode) State {
		return l.computeBroken(helper, maxWidth, broken, e)
	})
}

// preferBreakingLastInnerLevel explores both breaking normally and
// breaking only the last inner level, and keeps whichever produced
// fewer lines, preferring the normal break on a tie.
func (l *Level) preferBreakingLastInnerLevel(helper CommentsHelper, maxWidth int, state State, node LevelNode) State {
	state = state.withNewBranch()

	broken := l.breakNormally(helper, maxWidth, state, node)

	if state.branchingCoefficient < maxBranchingCoefficient {
		inline := state.withNoIndent()
		expl, ok := node.MaybeExplore("tryBreakLastLevel", inline, func(e ExplorationNode) (State, bool) {
			return l.tryBreakLastLevel(helper, maxWidth, inline, e, true)
		})
		if ok && expl.State().numLines < broken.State().numLines {
			return expl.MarkAccepted()
		}
	}
	return broken.MarkAccepted()
}

// breakOnlyIfInnerLevelsFit computes the broken layout, then tries to
// inline the level anyway if some inner level broke regardless.
func (l *Level) breakOnlyIfInnerLevelsFit(helper CommentsHelper, maxWidth int, state State, node LevelNode, keepIndent bool) State {
	brokenState := state.withIndentIncrementedBy(l.open.PlusIndent)
	broken := node.Explore("breaking normally", brokenState, func(e ExplorationNode) State {
		return l.computeBroken(helper, maxWidth, brokenState, e)
	})

	expl, ok := node.MaybeExplore("inline despite broken inner levels", state, func(e ExplorationNode) (State, bool) {
		return l.inlineWithBrokenInnerLevels(helper, maxWidth, state, broken.State(), keepIndent, e)
	})
	if ok {
		return expl.MarkAccepted()
	}
	return broken.MarkAccepted()
}

// inlineWithBrokenInnerLevels attempts the inline path of
// [BreakOnlyIfInnerLevelsThenFitOnOneLine]: if any inner level did not
// fit on one line in the broken layout, and everything up to the last
// non-empty inner level's first break still fits, lay this level out
// on one line and let the inner breaks do the breaking.
func (l *Level) inlineWithBrokenInnerLevels(helper CommentsHelper, maxWidth int, state, brokenState State, keepIndent bool, e ExplorationNode) (State, bool) {
	var innerLevels []*Level
	for _, doc := range l.docs {
		if inner, ok := doc.(*Level); ok {
			innerLevels = append(innerLevels, inner)
		}
	}

	anyBroken := false
	for _, inner := range innerLevels {
		if !brokenState.IsOneLine(inner) {
			anyBroken = true
			break
		}
	}
	if !anyBroken {
		return State{}, false
	}

	// Find the last non-empty inner level. Later in-between levels may
	// be empty shells; we want the one the content actually lives in.
	var lastLevel *Level
	for _, inner := range innerLevels {
		if startsWithBreak(inner) != startEmpty {
			lastLevel = inner
		}
	}
	if lastLevel == nil {
		internalf("levels were broken, so expected at least one non-empty inner level")
	}

	// The leading docs and the last level's prefix must always have
	// room on the line.
	var leading []Doc
	for _, doc := range l.docs {
		if doc == Doc(lastLevel) {
			break
		}
		leading = append(leading, doc)
	}
	leadingWidth := docsWidth(leading)
	leadingWidth += countWidthUntilBreak(lastLevel, float64(maxWidth-state.indent))

	if math.IsInf(leadingWidth, 1) || float64(state.column)+leadingWidth > float64(maxWidth) {
		return State{}, false
	}

	inlined := state.withNoIndent()
	if keepIndent {
		inlined = inlined.withIndentIncrementedBy(l.open.PlusIndent)
	}
	return l.layOutOnOneLine(helper, maxWidth, inlined, l.splitsByBreaks(), e), true
}

// tryBreakLastLevel inlines a chain: lay out everything but the last
// child flat on the current line, then descend into the last child,
// which carries the chain's breaks.
func (l *Level) tryBreakLastLevel(helper CommentsHelper, maxWidth int, state State, e ExplorationNode, isSimpleSoFar bool) (State, bool) {
	last, ok := slicesx.Last(l.docs)
	if !ok {
		return State{}, false
	}
	lastLevel, ok := last.(*Level)
	if !ok {
		return State{}, false
	}
	// Only split levels that have declared they want to be split this
	// way.
	if lastLevel.open.BreakabilityIfLastLevel == Abort {
		return State{}, false
	}

	leading := l.docs[:len(l.docs)-1]
	if _, ok := l.fitsOnOneLine(maxWidth, float64(state.column), leading); !ok {
		return State{}, false
	}

	isSimple := isSimpleSoFar && l.open.Simple

	// Lay out the prefix for real. If a break still fired even though
	// the leading width fit, a nested column limit forced it; abort.
	laidOut := l.layOutOnOneLine(helper, maxWidth, state, splitByBreaks(leading), e)
	if laidOut.numLines != state.numLines {
		return State{}, false
	}

	switch lastLevel.open.BreakabilityIfLastLevel {
	case AcceptInlineChain:
		return acceptInlineChain(helper, maxWidth, e, lastLevel, laidOut)
	case AcceptInlineChainIfSimpleOtherwiseCheckInner:
		if isSimple {
			return acceptInlineChain(helper, maxWidth, e, lastLevel, laidOut)
		}
		// We cannot accept outright, so delegate inward if the last
		// level supports it.
		if lastLevel.open.BreakBehaviour.kind != behaviourPreferBreakingLastInnerLevel {
			return State{}, false
		}
		return checkInner(helper, maxWidth, e, lastLevel, isSimple, laidOut)
	case CheckInner:
		return checkInner(helper, maxWidth, e, lastLevel, isSimple, laidOut)
	default:
		internalf("unknown last-level breakability %d on level %q",
			lastLevel.open.BreakabilityIfLastLevel, lastLevel.open.DebugName)
		return State{}, false
	}
}

// acceptInlineChain ends a tryBreakLastLevel chain: verify there is
// room for the last level's prefix, then recurse into its full break
// computation so it can lay itself out.
func acceptInlineChain(helper CommentsHelper, maxWidth int, e ExplorationNode, lastLevel *Level, state State) (State, bool) {
	extra := countWidthUntilBreak(lastLevel, float64(maxWidth-state.indent))
	if math.IsInf(extra, 1) || float64(state.column)+extra > float64(maxWidth) {
		return State{}, false
	}

	// computeBreaks rather than computeBroken, so the last level can
	// apply this same logic recursively.
	return e.NewChildNode(lastLevel, state).
		Explore("end tryBreakLastLevel chain", state, func(e2 ExplorationNode) State {
			return lastLevel.computeBreaks(helper, maxWidth, state, e2)
		}).
		MarkAccepted(), true
}

// checkInner recurses the chain into the last level's own last child.
//
// The last level must break by preferring its last inner level;
// anything else is a malformed tree from the translator.
func checkInner(helper CommentsHelper, maxWidth int, e ExplorationNode, lastLevel *Level, isSimple bool, state State) (State, bool) {
	behaviour := lastLevel.open.BreakBehaviour
	if behaviour.kind != behaviourPreferBreakingLastInnerLevel {
		internalf("checkInner requires a preferBreakingLastInnerLevel last level, got %v on level %q",
			behaviour, lastLevel.open.DebugName)
	}
	if behaviour.keepIndentWhenInlined {
		state = state.withIndentIncrementedBy(lastLevel.open.PlusIndent)
	}

	expl, ok := e.NewChildNode(lastLevel, state).
		MaybeExplore("recurse into inner tryBreakLastLevel", state, func(e2 ExplorationNode) (State, bool) {
			return lastLevel.tryBreakLastLevel(helper, maxWidth, state, e2, isSimple)
		})
	if !ok {
		return State{}, false
	}
	return expl.MarkAccepted(), true
}

// layOutOnOneLine marks this level's breaks as not broken, but lays
// out the inner levels normally according to their own behaviour. The
// resulting state's mustBreak is set if the level did not fit on
// exactly one line.
func (l *Level) layOutOnOneLine(helper CommentsHelper, maxWidth int, state State, sb *splitsBreaks, e ExplorationNode) State {
	for i, split := range sb.splits {
		if i > 0 {
			state = sb.breaks[i-1].decide(state, false)
		}
		splitWidth := docsWidth(split)
		enoughRoom := float64(state.column)+splitWidth <= float64(maxWidth)
		state = computeSplit(helper, maxWidth, split, state.withMustBreak(false), e)
		if !enoughRoom {
			state = state.withMustBreak(true)
		}
	}
	return state
}

// computeBroken lays out a level that spans multiple lines.
func (l *Level) computeBroken(helper CommentsHelper, maxWidth int, state State, e ExplorationNode) State {
	sb := l.splitsByBreaks()

	if len(sb.breaks) > 0 {
		state = state.withOneLine(l, false)
	}

	state = l.computeBreakAndSplit(helper, maxWidth, state, nil, sb.splits[0], e)
	for i, brk := range sb.breaks {
		state = l.computeBreakAndSplit(helper, maxWidth, state, brk, sb.splits[i+1], e)
	}
	return state
}

// computeBreakAndSplit decides one break, then lays out the split that
// follows it.
func (l *Level) computeBreakAndSplit(helper CommentsHelper, maxWidth int, state State, brk *Break, split []Doc, e ExplorationNode) State {
	breakWidth := 0.0
	if brk != nil {
		breakWidth = brk.width
	}
	splitWidth := docsWidth(split)

	shouldBreak := (brk != nil && brk.fill == Unified) ||
		state.mustBreak ||
		math.IsInf(breakWidth, 1)
	if !shouldBreak {
		_, fits := l.fitsOnOneLine(maxWidth, float64(state.column)+breakWidth, split)
		shouldBreak = !fits
	}

	if brk != nil {
		state = brk.decide(state, shouldBreak)
	}
	enoughRoom := float64(state.column)+splitWidth <= float64(maxWidth)
	state = computeSplit(helper, maxWidth, split, state.withMustBreak(false), e)
	if !enoughRoom {
		state = state.withMustBreak(true) // Break after, too.
	}
	return state
}

func computeSplit(helper CommentsHelper, maxWidth int, docs []Doc, state State, e ExplorationNode) State {
	for _, doc := range docs {
		state = doc.computeBreaks(helper, maxWidth, state, e)
	}
	return state
}

func (l *Level) write(state State, out Output) {
	if state.IsOneLine(l) {
		// Defined because the level's width is finite.
		out.Append(state, l.Flat(), l.Range())
		return
	}

	sb := l.splitsByBreaks()
	for _, doc := range sb.splits[0] {
		doc.write(state, out)
	}
	for i, brk := range sb.breaks {
		brk.write(state, out)
		for _, doc := range sb.splits[i+1] {
			doc.write(state, out)
		}
	}
}

// docsWidth returns the total flat width of docs, or +Inf if any of
// them must break.
func docsWidth(docs []Doc) float64 {
	width := 0.0
	for _, doc := range docs {
		width += doc.Width()
	}
	return width
}

// Layout runs the break search over root and returns the decided
// state. It is pure: the tree is not modified, and every decision
// lands in the returned state.
//
// obs may be nil, in which case nothing is recorded.
func Layout(root *Level, helper CommentsHelper, maxWidth int, state State, obs ExplorationNode) State {
	if obs == nil {
		obs = Discard
	}
	return root.computeBreaks(helper, maxWidth, state, obs)
}

// Write replays the decisions in state, emitting root into out.
func Write(root *Level, state State, out Output) {
	root.write(state, out)
}
