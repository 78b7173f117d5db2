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

// Package immap provides a small persistent map.
//
// A [Map] is an immutable value: With returns a new map sharing
// structure with the original, which is left untouched. This makes it
// cheap to thread many slightly-different snapshots of the same map
// through a backtracking search and discard the rejected ones.
package immap

import (
	"cmp"
	"iter"

	"github.com/tidwall/btree"
)

// Map is a persistent ordered map from K to V.
//
// A zero Map is empty and ready to use.
type Map[K cmp.Ordered, V any] struct {
	tree *btree.Map[K, V]
}

// Get looks up the value stored under key.
func (m Map[K, V]) Get(key K) (value V, ok bool) {
	if m.tree == nil {
		return value, false
	}
	return m.tree.Get(key)
}

// With returns a copy of this map with key set to value.
//
// The receiver is not modified. The copy is O(1); modified paths of the
// underlying tree are cloned on demand.
func (m Map[K, V]) With(key K, value V) Map[K, V] {
	var tree *btree.Map[K, V]
	if m.tree == nil {
		tree = new(btree.Map[K, V])
	} else {
		tree = m.tree.Copy()
	}
	tree.Set(key, value)
	return Map[K, V]{tree: tree}
}

// Len returns the number of entries in the map.
func (m Map[K, V]) Len() int {
	if m.tree == nil {
		return 0
	}
	return m.tree.Len()
}

// All returns an iterator over the entries of the map in key order.
func (m Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if m.tree == nil {
			return
		}
		m.tree.Scan(func(key K, value V) bool {
			return yield(key, value)
		})
	}
}
