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

// Package width measures the number of terminal window cells a string
// occupies when rendered.
//
// This is a measure of visual columns, not bytes or runes: combining
// characters contribute nothing, and East Asian wide characters
// contribute two cells. Tabstops justify to the next multiple of the
// tabstop width, so a tab's width depends on the column it starts at.
//
// This should not be confused with golang.org/x/text/width, which is
// about conversion between full- and half-width variants of runes.
package width

import (
	"strings"

	"github.com/rivo/uniseg"
)

// String returns the visual width of s, assuming it contains no tabs or
// newlines.
func String(s string) int {
	return uniseg.StringWidth(s)
}

// StringAt returns the column reached after rendering s starting at the
// given column, expanding tabstops against tabstop.
//
// If s contains newlines, measurement restarts from column zero after
// each one, so the result is the column at the end of the last line.
func StringAt(s string, column, tabstop int) int {
	if tabstop <= 0 {
		tabstop = 1
	}

	for {
		nl := strings.IndexByte(s, '\n')
		if nl < 0 {
			break
		}
		s = s[nl+1:]
		column = 0
	}

	for i, part := range strings.Split(s, "\t") {
		if i > 0 {
			column += tabstop - column%tabstop
		}
		column += uniseg.StringWidth(part)
	}
	return column
}
