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

// Package reflow is the default comment helper for the layout engine.
//
// It wraps long line comments onto continuation lines, breaking only
// at whitespace, and leaves everything else alone. Comments whose body
// begins with a protected marker are never touched.
package reflow

import (
	"strings"

	"github.com/typeset-build/typeset/internal/width"
)

// DefaultMarkers are the comment markers protected from wrapping by
// default.
var DefaultMarkers = []string{"MOE:"}

// Helper wraps long line comments. It implements the layout engine's
// CommentsHelper interface.
type Helper struct {
	markers []string
}

// New returns a helper protecting comments that begin with any of the
// given markers. With no markers, [DefaultMarkers] is used.
func New(markers ...string) *Helper {
	if len(markers) == 0 {
		markers = DefaultMarkers
	}
	return &Helper{markers: markers}
}

// Reformat wraps a long line comment starting at startCol onto
// continuation lines within maxWidth columns. Block comments, short
// comments, marker-protected comments and text that is not a comment
// are returned unchanged.
func (h *Helper) Reformat(text string, startCol, maxWidth int) string {
	if !strings.HasPrefix(text, "//") {
		return text
	}
	if startCol+width.String(text) <= maxWidth {
		return text
	}

	body := strings.TrimPrefix(text, "//")
	body = strings.TrimLeft(body, " ")
	for _, marker := range h.markers {
		if strings.HasPrefix(body, marker) {
			return text
		}
	}

	words := strings.Fields(body)
	if len(words) <= 1 {
		return text
	}

	// Continuation lines restart at the comment's own column.
	prefix := "// "
	continuation := "\n" + strings.Repeat(" ", startCol) + prefix

	var sb strings.Builder
	sb.WriteString(prefix)
	column := startCol + width.String(prefix)
	lineStart := column

	for i, word := range words {
		w := width.String(word)
		if i > 0 {
			if column+1+w > maxWidth && column > lineStart {
				sb.WriteString(continuation)
				column = startCol + width.String(prefix)
			} else {
				sb.WriteByte(' ')
				column++
			}
		}
		sb.WriteString(word)
		column += w
	}
	return sb.String()
}
