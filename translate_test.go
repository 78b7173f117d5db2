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

package typeset

// This file is a miniature stand-in for the upstream translator: it
// turns a toy curly-brace language into a document tree, with the
// following rules:
//
//   - Braced blocks break unconditionally, indenting their statements
//     by 2. An empty block renders as "{}" on the opening line.
//   - Call arguments live in their own level indented by 4, with a
//     unified break before the first argument (another 4) and
//     independent fill breaks between arguments.
//   - Parentheses after a control keyword are laid out flat with a
//     space before them, like "while (true)".
//   - Adjacent words are separated by a single space.
//
// Real translators are far richer; this one exists so tests can drive
// the engine end to end from source text.

import (
	"github.com/typeset-build/typeset/dom"
)

var controlKeywords = map[string]bool{
	"while":  true,
	"if":     true,
	"for":    true,
	"switch": true,
	"catch":  true,
}

// translate builds a document tree for a toy source file.
func translate(src string) *dom.Level {
	tr := &translator{toks: lex(src)}

	var docs []dom.Doc
	for tr.peek() != "" {
		stmt := tr.parseStatement()
		if len(stmt) == 0 {
			break
		}
		if len(docs) > 0 {
			docs = append(docs, dom.ForcedBreak())
		}
		docs = append(docs, stmt...)
	}
	return dom.NewLevel(dom.OpenOp{}, docs...)
}

// lex splits source text into words and single-character punctuation,
// discarding whitespace.
func lex(src string) []string {
	var toks []string
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case isWordByte(c):
			j := i
			for j < len(src) && isWordByte(src[j]) {
				j++
			}
			toks = append(toks, src[i:j])
			i = j
		default:
			toks = append(toks, string(c))
			i++
		}
	}
	return toks
}

func isWordByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

func isWord(tok string) bool {
	return tok != "" && isWordByte(tok[0])
}

type translator struct {
	toks []string
	pos  int

	// Token index used for source ranges, in emission order.
	next int
}

func (tr *translator) peek() string {
	if tr.pos >= len(tr.toks) {
		return ""
	}
	return tr.toks[tr.pos]
}

func (tr *translator) eat() string {
	t := tr.peek()
	tr.pos++
	return t
}

func (tr *translator) tok(text string) *dom.Token {
	t := dom.NewToken(text, dom.Range{Start: tr.next, End: tr.next + 1})
	tr.next++
	return t
}

// parseStatement consumes one statement: a run of tokens ended by a
// semicolon or a braced block.
func (tr *translator) parseStatement() []dom.Doc {
	var docs []dom.Doc
	prevWord := ""
	for {
		switch t := tr.peek(); {
		case t == "" || t == "}":
			return docs

		case t == ";":
			tr.eat()
			return append(docs, tr.tok(";"))

		case t == "{":
			tr.eat()
			docs = append(docs, dom.NewSpace(), tr.tok("{"))
			if tr.peek() == "}" {
				tr.eat()
				return append(docs, tr.tok("}"))
			}

			var body []dom.Doc
			for tr.peek() != "}" && tr.peek() != "" {
				stmt := tr.parseStatement()
				if len(stmt) == 0 {
					break
				}
				body = append(body, dom.ForcedBreak())
				body = append(body, stmt...)
			}
			tr.eat() // the closing brace
			return append(docs,
				dom.NewLevel(dom.OpenOp{PlusIndent: 2, DebugName: "block"}, body...),
				dom.ForcedBreak(),
				tr.tok("}"),
			)

		case t == "(":
			tr.eat()
			if controlKeywords[prevWord] {
				docs = append(docs, dom.NewSpace(), tr.tok("("))
				docs = append(docs, tr.parseFlatParens()...)
			} else {
				docs = append(docs, tr.tok("("))
				if args := tr.parseArgs(); len(args) > 0 {
					docs = append(docs, dom.NewLevel(dom.OpenOp{PlusIndent: 4, DebugName: "args"}, args...))
				}
			}
			tr.eat() // the closing paren
			docs = append(docs, tr.tok(")"))
			prevWord = ""

		default:
			tr.eat()
			if isWord(t) {
				if prevWord != "" {
					docs = append(docs, dom.NewSpace())
				}
				prevWord = t
			} else {
				prevWord = ""
			}
			docs = append(docs, tr.tok(t))
		}
	}
}

// parseFlatParens lays out a control condition flat, stopping before
// the closing paren.
func (tr *translator) parseFlatParens() []dom.Doc {
	var docs []dom.Doc
	prevWord := false
	for tr.peek() != ")" && tr.peek() != "" {
		t := tr.eat()
		if t == "," {
			docs = append(docs, tr.tok(","), dom.NewSpace())
			prevWord = false
			continue
		}
		if isWord(t) && prevWord {
			docs = append(docs, dom.NewSpace())
		}
		docs = append(docs, tr.tok(t))
		prevWord = isWord(t)
	}
	return docs
}

// parseArgs builds the contents of a call's argument level, stopping
// before the closing paren.
func (tr *translator) parseArgs() []dom.Doc {
	if tr.peek() == ")" {
		return nil
	}
	docs := []dom.Doc{dom.NewBreak(dom.Unified, "", 4)}
	prevWord := false
	for tr.peek() != ")" && tr.peek() != "" {
		t := tr.eat()
		if t == "," {
			docs = append(docs, tr.tok(","), dom.NewBreak(dom.Independent, " ", 4))
			prevWord = false
			continue
		}
		if isWord(t) && prevWord {
			docs = append(docs, dom.NewSpace())
		}
		docs = append(docs, tr.tok(t))
		prevWord = isWord(t)
	}
	return docs
}
