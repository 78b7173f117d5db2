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
	"strings"

	"github.com/typeset-build/typeset/internal/width"
)

// TokenKind classifies a [Token].
type TokenKind byte

const (
	// Plain is ordinary source text.
	Plain TokenKind = iota
	// LineComment is a comment running to the end of the line. Line
	// comments are routed through the comment helper during layout.
	LineComment
	// BlockComment is a delimited comment. Block comments are routed
	// through the comment helper during layout.
	BlockComment
)

// Token is a literal piece of source text.
type Token struct {
	id   uint64
	text string
	kind TokenKind
	rng  Range

	width float64
}

// NewToken returns a token for ordinary source text covering rng.
func NewToken(text string, rng Range) *Token {
	return newToken(text, Plain, rng)
}

// NewLineComment returns a token for a line comment.
func NewLineComment(text string, rng Range) *Token {
	return newToken(text, LineComment, rng)
}

// NewBlockComment returns a token for a block comment.
func NewBlockComment(text string, rng Range) *Token {
	return newToken(text, BlockComment, rng)
}

func newToken(text string, kind TokenKind, rng Range) *Token {
	return &Token{
		id:    nextID(),
		text:  text,
		kind:  kind,
		rng:   rng,
		width: float64(width.String(text)),
	}
}

// Text returns the token's original text.
func (t *Token) Text() string { return t.text }

// Kind returns the token's kind.
func (t *Token) Kind() TokenKind { return t.kind }

func (t *Token) Width() float64 { return t.width }
func (t *Token) Flat() string   { return t.text }
func (t *Token) Range() Range   { return t.rng }

func (t *Token) computeBreaks(helper CommentsHelper, maxWidth int, state State, _ ExplorationNode) State {
	if t.kind == Plain || helper == nil {
		return state.withColumn(state.column + int(t.width))
	}

	text := helper.Reformat(t.text, state.column, maxWidth)
	if text != t.text {
		state = state.withTokenText(t, text)
	}
	return advanceOver(state, text)
}

// advanceOver advances the state's column over text, which may span
// several lines after comment reflow.
func advanceOver(state State, text string) State {
	lines := strings.Count(text, "\n")
	if lines == 0 {
		return state.withColumn(state.column + width.String(text))
	}

	last := text[strings.LastIndexByte(text, '\n')+1:]
	state.numLines += lines
	return state.withColumn(width.String(last))
}

func (t *Token) write(state State, out Output) {
	text := t.text
	if reflowed, ok := state.tokenText(t); ok {
		text = reflowed
	}
	out.Append(state, text, t.rng)
}
