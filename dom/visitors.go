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

import "math"

// startResult is the outcome of [startsWithBreak].
type startResult byte

const (
	// startEmpty means the doc is empty, or a level made up entirely
	// of empty docs.
	startEmpty startResult = iota
	// startYes means the doc begins with a break.
	startYes
	// startNo means the doc begins with non-break content.
	startNo
)

// startsWithBreak reports whether the first thing a doc renders is a
// break, looking through empty content.
func startsWithBreak(doc Doc) startResult {
	switch d := doc.(type) {
	case *Break:
		return startYes
	case *Token:
		if d.text == "" {
			return startEmpty
		}
		return startNo
	case Space:
		return startNo
	case Tombstone:
		return startEmpty
	case *Level:
		for _, child := range d.docs {
			if result := startsWithBreak(child); result != startEmpty {
				return result
			}
		}
		return startEmpty
	default:
		internalf("unknown doc %T", doc)
		return startEmpty
	}
}

// countWidthUntilBreak returns the width from the start of a doc up to
// its first break. Returns +Inf if there is no break, if the budget is
// exceeded, or if a level on the way forbids partial inlining.
func countWidthUntilBreak(doc Doc, budget float64) float64 {
	width, sawBreak := widthUntilBreak(doc, budget)
	if !sawBreak || width > budget {
		return math.Inf(1)
	}
	return width
}

func widthUntilBreak(doc Doc, budget float64) (width float64, sawBreak bool) {
	level, ok := doc.(*Level)
	if !ok {
		if _, ok := doc.(*Break); ok {
			return 0, true
		}
		return doc.Width(), false
	}
	if level.open.PartialInlineability == NotPartiallyInlineable {
		return math.Inf(1), false
	}

	for _, child := range level.docs {
		w, saw := widthUntilBreak(child, budget-width)
		width += w
		if saw {
			return width, true
		}
		if width > budget {
			return math.Inf(1), false
		}
	}
	return width, false
}
