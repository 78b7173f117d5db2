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
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// Representation renders a level and everything inside it as an
// indented tree, annotating each level with the decision recorded in
// state. Intended for debugging translators and layout alike.
func Representation(state State, level *Level) string {
	var sb strings.Builder
	representDoc(&sb, state, level, 0)
	return sb.String()
}

func representDoc(sb *strings.Builder, state State, doc Doc, depth int) {
	indent := strings.Repeat("  ", depth)

	switch d := doc.(type) {
	case *Level:
		name := d.open.DebugName
		if name == "" {
			name = "level"
		}
		decision := "broken"
		if state.IsOneLine(d) {
			decision = "flat"
		}
		fmt.Fprintf(sb, "%s%s <%s %s>\n", indent, name, d.open.BreakBehaviour, decision)
		for _, child := range d.docs {
			representDoc(sb, state, child, depth+1)
		}
	case *Token:
		fmt.Fprintf(sb, "%s%q\n", indent, d.text)
	case *Break:
		decision, ok := state.breakDecision(d)
		switch {
		case ok && decision.broken:
			fmt.Fprintf(sb, "%sbreak -> newline indent=%d\n", indent, decision.indent)
		default:
			fmt.Fprintf(sb, "%sbreak -> %q\n", indent, d.flat)
		}
	case Space:
		fmt.Fprintf(sb, "%sspace\n", indent)
	case Tombstone:
		fmt.Fprintf(sb, "%stombstone\n", indent)
	}
}

// Dump renders the recorded exploration tree, one line per node, with
// accepted branches marked. Useful as a post-mortem when a layout
// decision surprises you.
func (r *Recorder) Dump() string {
	var sb strings.Builder
	dumpNode(&sb, &r.root, 0)
	return sb.String()
}

func dumpNode(sb *strings.Builder, n *recorderNode, depth int) {
	indent := strings.Repeat("  ", depth)
	switch {
	case n.level != nil:
		name := n.level.open.DebugName
		if name == "" {
			name = "level"
		}
		fmt.Fprintf(sb, "%slevel %s (column %d)\n", indent, name, n.start.column)
	case n.name != "":
		mark := " "
		if n.accepted {
			mark = "*"
		}
		lines := "?"
		if n.finished {
			lines = fmt.Sprint(n.end.numLines)
		}
		fmt.Fprintf(sb, "%s%s %s (lines %s)\n", indent, mark, n.name, lines)
	}
	for _, child := range n.children {
		dumpNode(sb, child, depth+1)
	}
}

// LogTo streams the recorded exploration tree to logger at debug
// level, one entry per explored alternative.
func (r *Recorder) LogTo(logger *log.Logger) {
	logNode(logger, &r.root, 0)
}

func logNode(logger *log.Logger, n *recorderNode, depth int) {
	switch {
	case n.level != nil:
		name := n.level.open.DebugName
		if name == "" {
			name = "level"
		}
		logger.Debug("level", "name", name, "depth", depth, "column", n.start.column)
	case n.name != "":
		logger.Debug("explored",
			"name", n.name,
			"depth", depth,
			"accepted", n.accepted,
			"lines", n.end.numLines,
		)
	}
	for _, child := range n.children {
		logNode(logger, child, depth+1)
	}
}
