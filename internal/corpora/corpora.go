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

// Package corpora provides a mechanism for managing test corpora: a
// collection of files under testdata that each define a formatting
// test, with expected outputs stored alongside them.
package corpora

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pmezard/go-difflib/difflib"
)

// Corpus describes a test data corpus. This is a way of doing
// table-driven tests where the "table" is in the file system.
type Corpus struct {
	// The root of the test data directory, relative to the file that
	// calls [Corpus.Run].
	Root string

	// An environment variable that, when set to a glob, selects test
	// cases whose expected outputs should be regenerated instead of
	// compared.
	Refresh string

	// The file extension (without a dot) of files which define a test
	// case, e.g. "src".
	Extension string

	// Possible outputs of the test, found using Output.Extension. A
	// missing output file is treated as expecting the empty string.
	Outputs []Output
}

// Output represents one output of a test case.
//
// If Corpus.Extension is "src" and Extension is "fmt", then for a test
// "foo.src" the runner looks for a file named "foo.src.fmt".
type Output struct {
	Extension string

	// The comparison function for this output. May be nil, in which
	// case the values are compared byte-for-byte with a unified diff
	// on mismatch.
	Compare Compare
}

// Compare is a comparison function between strings, used in [Output].
//
// Returns the empty string if the strings match, otherwise an error
// message.
type Compare func(got, want string) string

// Run walks the corpus and executes test on each case found.
//
// test returns one string per entry in Outputs.
func (c Corpus) Run(t *testing.T, test func(t *testing.T, path, text string) []string) {
	testDir := callerDir(0)
	root := filepath.Join(testDir, c.Root)

	var tests []string
	err := filepath.Walk(root, func(p string, fi fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fi.IsDir() && strings.TrimPrefix(path.Ext(p), ".") == c.Extension {
			tests = append(tests, p)
		}
		return nil
	})
	if err != nil {
		t.Fatal("corpora: error while walking testdata:", err)
	}

	var refresh string
	if c.Refresh != "" {
		refresh = os.Getenv(c.Refresh)
		if !doublestar.ValidatePattern(refresh) {
			t.Fatalf("corpora: invalid glob in $%s: %q", c.Refresh, refresh)
		}
	}
	if refresh != "" {
		t.Logf("corpora: refreshing test data because %s=%s", c.Refresh, refresh)
		t.Fail()
	}

	for _, p := range tests {
		name, _ := filepath.Rel(testDir, p)
		t.Run(name, func(t *testing.T) {
			text, err := os.ReadFile(p)
			if err != nil {
				t.Fatalf("corpora: error while loading input file %q: %v", p, err)
			}

			results := test(t, name, string(text))
			if len(results) != len(c.Outputs) {
				t.Fatalf("corpora: test returned %d outputs, want %d", len(results), len(c.Outputs))
			}

			refresh, _ := doublestar.Match(refresh, name)
			for i, output := range c.Outputs {
				outPath := fmt.Sprint(p, ".", output.Extension)

				if refresh {
					if results[i] == "" {
						if err := os.Remove(outPath); err != nil && !errors.Is(err, os.ErrNotExist) {
							t.Errorf("corpora: error while deleting output file %q: %v", outPath, err)
						}
						continue
					}
					if err := os.WriteFile(outPath, []byte(results[i]), 0o660); err != nil {
						t.Errorf("corpora: error while writing output file %q: %v", outPath, err)
					}
					continue
				}

				want, err := os.ReadFile(outPath)
				if err != nil && !errors.Is(err, os.ErrNotExist) {
					t.Errorf("corpora: error while loading output file %q: %v", outPath, err)
					continue
				}

				cmp := output.Compare
				if cmp == nil {
					cmp = defaultCompare
				}
				if msg := cmp(results[i], string(want)); msg != "" {
					t.Errorf("output mismatch for %q:\n%s", outPath, msg)
				}
			}
		})
	}
}

func defaultCompare(got, want string) string {
	if got == want {
		return ""
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}
	return diff
}

func callerDir(skip int) string {
	_, file, _, ok := runtime.Caller(skip + 2)
	if !ok {
		panic("corpora: could not determine test file's directory")
	}
	return filepath.Dir(file)
}
