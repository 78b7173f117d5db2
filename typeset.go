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

// Package typeset is the layout engine of a source code
// pretty-printer for curly-brace languages.
//
// An upstream translator turns the parsed source into a document tree
// of formatting instructions (see package [dom]); this package decides
// where that tree breaks under a column budget and produces the final
// text. The search minimizes the number of output lines among the
// alternatives each level's configuration allows, and is fully
// deterministic: the same tree and options always produce
// byte-identical output.
package typeset

import (
	"errors"
	"fmt"

	"github.com/typeset-build/typeset/dom"
)

// ErrInternal is wrapped by errors reported for malformed document
// trees. Such errors indicate a bug in the upstream translator, not a
// problem with the input source.
var ErrInternal = errors.New("typeset: internal error")

// Options configures a format operation.
type Options struct {
	// MaxWidth is the column budget. No output line exceeds it except
	// where a single token is itself wider. Defaults to 100.
	MaxWidth int

	// Observer records the layout search's explorations. Nil records
	// nothing.
	Observer dom.ExplorationNode
}

// WithDefaults replaces unset fields with their default values.
func (o Options) WithDefaults() Options {
	if o.MaxWidth == 0 {
		o.MaxWidth = 100
	}
	return o
}

// Format lays out root under the given options and returns the
// formatted text. The text always ends in exactly one newline.
//
// helper reformats comment tokens during layout; it may be nil, in
// which case comments are emitted untouched.
func Format(root *dom.Level, helper dom.CommentsHelper, opts Options) (string, error) {
	out := dom.NewWriter()
	if err := FormatToSink(root, helper, opts, out); err != nil {
		return "", err
	}
	return out.String(), nil
}

// FormatToSink is like [Format], but emits (text, source range) chunks
// into a caller-owned sink instead of assembling a string.
func FormatToSink(root *dom.Level, helper dom.CommentsHelper, opts Options, out dom.Output) (err error) {
	defer func() {
		var internal error
		dom.Recover(recover(), &internal)
		if internal != nil {
			err = fmt.Errorf("%w: %v", ErrInternal, internal)
		}
	}()

	opts = opts.WithDefaults()
	state := dom.Layout(root, helper, opts.MaxWidth, dom.StartingState(), opts.Observer)
	dom.Write(root, state, out)
	return nil
}
