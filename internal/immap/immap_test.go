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

package immap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typeset-build/typeset/internal/immap"
)

func TestZeroValue(t *testing.T) {
	t.Parallel()

	var m immap.Map[int, string]
	_, ok := m.Get(1)
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}

func TestWithDoesNotMutate(t *testing.T) {
	t.Parallel()

	var empty immap.Map[int, string]
	one := empty.With(1, "a")
	two := one.With(2, "b")
	redone := one.With(1, "c")

	_, ok := empty.Get(1)
	assert.False(t, ok, "base map must be untouched")

	v, ok := one.Get(1)
	require.True(t, ok)
	assert.Equal(t, "a", v)
	_, ok = one.Get(2)
	assert.False(t, ok, "sibling write must not leak")

	v, ok = two.Get(2)
	require.True(t, ok)
	assert.Equal(t, "b", v)

	v, ok = redone.Get(1)
	require.True(t, ok)
	assert.Equal(t, "c", v, "overwrite applies only to the copy")
	v, _ = one.Get(1)
	assert.Equal(t, "a", v)
}

func TestAll(t *testing.T) {
	t.Parallel()

	var m immap.Map[int, string]
	m = m.With(3, "c").With(1, "a").With(2, "b")

	var keys []int
	for k := range m.All() {
		keys = append(keys, k)
	}
	assert.Equal(t, []int{1, 2, 3}, keys, "iteration is in key order")
	assert.Equal(t, 3, m.Len())
}
