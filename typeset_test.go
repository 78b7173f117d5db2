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
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/typeset-build/typeset/dom"
	"github.com/typeset-build/typeset/internal/corpora"
	"github.com/typeset-build/typeset/internal/width"
	"github.com/typeset-build/typeset/reflow"
)

// scenarioInputs are toy sources the property tests below run over, in
// addition to the corpus files.
var scenarioInputs = []string{
	"class A{void b(){while(true){f(a,b,c,d,e,f,g,h,i,j);}}}",
	"class A{void b(){while(true){splitThisFunction(argument1,argument2,argument3,argument4,argument5,argument6);}}}",
	"class T {\n\n}",
	"class X { Y() {} }",
	"supercalifragilisticexpialidocious;",
	"x = f(aaaa,bbbb);y = g();",
}

type widthCase struct {
	Name     string `yaml:"name"`
	MaxWidth int    `yaml:"maxWidth"`
	Input    string `yaml:"input"`
	Want     string `yaml:"want"`
}

func TestWidthScenarios(t *testing.T) {
	t.Parallel()

	raw, err := os.ReadFile(filepath.Join("testdata", "widths.yaml"))
	require.NoError(t, err)
	var cases []widthCase
	require.NoError(t, yaml.Unmarshal(raw, &cases))
	require.NotEmpty(t, cases)

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()

			got, err := Format(translate(tc.Input), reflow.New(), Options{MaxWidth: tc.MaxWidth})
			require.NoError(t, err)
			if diff := cmp.Diff(tc.Want, got); diff != "" {
				t.Errorf("formatting mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCorpus(t *testing.T) {
	t.Parallel()

	corpus := corpora.Corpus{
		Root:      "testdata/fmt",
		Refresh:   "TYPESET_REFRESH",
		Extension: "src",
		Outputs:   []corpora.Output{{Extension: "fmt"}},
	}
	corpus.Run(t, func(t *testing.T, _, text string) []string {
		got, err := Format(translate(text), reflow.New(), Options{})
		require.NoError(t, err)
		return []string{got}
	})
}

func TestIdempotence(t *testing.T) {
	t.Parallel()

	for _, input := range scenarioInputs {
		for _, maxWidth := range []int{40, 80, 100} {
			opts := Options{MaxWidth: maxWidth}
			once, err := Format(translate(input), reflow.New(), opts)
			require.NoError(t, err)
			twice, err := Format(translate(once), reflow.New(), opts)
			require.NoError(t, err)
			assert.Equal(t, once, twice, "formatting %q at width %d is not a fixed point", input, maxWidth)
		}
	}
}

func TestTokenPreservation(t *testing.T) {
	t.Parallel()

	for _, input := range scenarioInputs {
		got, err := Format(translate(input), reflow.New(), Options{MaxWidth: 40})
		require.NoError(t, err)
		assert.Equal(t, lex(input), lex(got), "token stream changed for %q", input)
	}
}

func TestWidthBound(t *testing.T) {
	t.Parallel()

	const maxWidth = 40
	for _, input := range scenarioInputs {
		got, err := Format(translate(input), reflow.New(), Options{MaxWidth: maxWidth})
		require.NoError(t, err)

		for _, line := range strings.Split(strings.TrimSuffix(got, "\n"), "\n") {
			if width.String(line) <= maxWidth {
				continue
			}
			// A line may only overflow when it is a single token that
			// is itself wider than the budget.
			assert.NotContains(t, strings.TrimLeft(line, " "), " ",
				"line %q overflows without an oversized token excuse", line)
		}
	}
}

func TestMonotoneRanges(t *testing.T) {
	t.Parallel()

	for _, input := range scenarioInputs {
		out := dom.NewWriter()
		err := FormatToSink(translate(input), reflow.New(), Options{MaxWidth: 40}, out)
		require.NoError(t, err)

		last := -1
		for _, chunk := range out.Chunks() {
			if chunk.Range.Empty() {
				continue
			}
			assert.GreaterOrEqual(t, chunk.Range.Start, last,
				"ranges went backwards in %q", input)
			last = chunk.Range.Start
		}
	}
}

func TestConcurrentFormatsAgree(t *testing.T) {
	t.Parallel()

	const input = "class A{void b(){while(true){splitThisFunction(argument1,argument2,argument3,argument4,argument5,argument6);}}}"
	want, err := Format(translate(input), reflow.New(), Options{MaxWidth: 80})
	require.NoError(t, err)

	var group errgroup.Group
	for range 8 {
		group.Go(func() error {
			got, err := Format(translate(input), reflow.New(), Options{MaxWidth: 80})
			if err != nil {
				return err
			}
			if got != want {
				return errors.New("concurrent format diverged")
			}
			return nil
		})
	}
	require.NoError(t, group.Wait())
}

func TestMalformedTreeIsAnInternalError(t *testing.T) {
	t.Parallel()

	// checkInner against a last level that cannot be inlined into is a
	// translator bug and must surface as ErrInternal, not a panic.
	inner := dom.NewLevel(
		dom.OpenOp{
			BreakBehaviour:          dom.BreakThisLevel(),
			BreakabilityIfLastLevel: dom.CheckInner,
		},
		dom.NewBreak(dom.Unified, "", 4),
		dom.NewToken(".bb()", dom.EmptyRange),
	)
	root := dom.NewLevel(
		dom.OpenOp{BreakBehaviour: dom.PreferBreakingLastInnerLevel(false)},
		dom.NewToken("aa", dom.EmptyRange),
		inner,
	)

	_, err := Format(root, nil, Options{MaxWidth: 5})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)
	assert.Contains(t, err.Error(), "checkInner")
}

func TestFormatWrapsComments(t *testing.T) {
	t.Parallel()

	root := dom.NewLevel(dom.OpenOp{},
		dom.NewToken("x = 1;", dom.Range{Start: 0, End: 1}),
		dom.NewBreak(dom.Unified, " ", 0),
		dom.NewLineComment("// aaa bbb ccc ddd eee fff", dom.Range{Start: 1, End: 2}),
	)

	got, err := Format(root, reflow.New(), Options{MaxWidth: 20})
	require.NoError(t, err)
	assert.Equal(t, "x = 1;\n// aaa bbb ccc ddd\n// eee fff\n", got)
}

func TestOptionsDefaults(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 100, Options{}.WithDefaults().MaxWidth)
	assert.Equal(t, 72, Options{MaxWidth: 72}.WithDefaults().MaxWidth)
}

func TestLoadStyle(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "style.toml")
	require.NoError(t, os.WriteFile(path, []byte(
		"max_width = 120\nprotected_comment_markers = [\"MOE:\", \"KEEP:\"]\n",
	), 0o600))

	style, err := LoadStyle(path)
	require.NoError(t, err)
	assert.Equal(t, 120, style.MaxWidth)
	assert.Equal(t, []string{"MOE:", "KEEP:"}, style.ProtectedCommentMarkers)
	assert.Equal(t, 120, style.Options().MaxWidth)

	_, err = LoadStyle(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	assert.Equal(t, 100, DefaultStyle().Options().MaxWidth)
}
