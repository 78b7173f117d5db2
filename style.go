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

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Style is the on-disk configuration surface a formatter built on this
// engine exposes to its users, in the tradition of per-repository
// style files.
type Style struct {
	// MaxWidth is the column budget. Defaults to 100.
	MaxWidth int `toml:"max_width"`

	// ProtectedCommentMarkers lists comment prefixes the comment
	// helper must never rewrap.
	ProtectedCommentMarkers []string `toml:"protected_comment_markers"`
}

// DefaultStyle returns the stock style: 100 columns.
func DefaultStyle() Style {
	return Style{MaxWidth: 100}
}

// LoadStyle reads a TOML style file. Fields not present keep their
// [DefaultStyle] values.
func LoadStyle(path string) (Style, error) {
	style := DefaultStyle()
	if _, err := toml.DecodeFile(path, &style); err != nil {
		return Style{}, fmt.Errorf("typeset: loading style %q: %w", path, err)
	}
	return style, nil
}

// Options converts the style into layout options.
func (s Style) Options() Options {
	return Options{MaxWidth: s.MaxWidth}.WithDefaults()
}
