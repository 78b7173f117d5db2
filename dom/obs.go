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

// The observer records every alternative the search explores as a node
// in an exploration tree. Correctness does not depend on it: rejected
// explorations leave no trace in the accepted State. It exists so a
// search can be replayed for debugging, and so tests can count the
// alternatives taken.

// ExplorationNode is the observer's view of one exploration in
// progress. Levels encountered during it register themselves through
// NewChildNode.
type ExplorationNode interface {
	// NewChildNode opens a node for a level about to be laid out
	// broken.
	NewChildNode(level *Level, state State) LevelNode
}

// LevelNode is the observer's view of one level's broken layout.
type LevelNode interface {
	// Explore records an alternative and runs fn to produce its state.
	Explore(name string, state State, fn func(ExplorationNode) State) Exploration

	// MaybeExplore is like Explore for alternatives that can decline:
	// if fn reports false, it returns no Exploration and false. A
	// recording observer keeps the declined attempt in its tree as an
	// unfinished node.
	MaybeExplore(name string, state State, fn func(ExplorationNode) (State, bool)) (Exploration, bool)

	// FinishLevel closes the node with the state the level settled on.
	FinishLevel(state State) State
}

// Exploration is one recorded alternative.
type Exploration interface {
	// State returns the state the alternative produced.
	State() State

	// MarkAccepted designates this alternative as the one the writer
	// will follow and returns its state. Unaccepted siblings are dead.
	MarkAccepted() State
}

// Discard is an observer that records nothing. It is the production
// default; the search runs identically with it.
var Discard ExplorationNode = discard{}

type discard struct{}

func (discard) NewChildNode(*Level, State) LevelNode { return discard{} }

func (discard) Explore(_ string, _ State, fn func(ExplorationNode) State) Exploration {
	return discardExploration{state: fn(discard{})}
}

func (discard) MaybeExplore(_ string, _ State, fn func(ExplorationNode) (State, bool)) (Exploration, bool) {
	state, ok := fn(discard{})
	if !ok {
		return nil, false
	}
	return discardExploration{state: state}, true
}

func (discard) FinishLevel(state State) State { return state }

type discardExploration struct {
	state State
}

func (e discardExploration) State() State        { return e.state }
func (e discardExploration) MarkAccepted() State { return e.state }

// Recorder is an observer that keeps the whole exploration tree for
// post-mortem inspection. It holds a snapshot of the search state per
// explored alternative, so it is meant for debugging, not for the hot
// path.
type Recorder struct {
	root recorderNode
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Root returns the node to pass to [Layout].
func (r *Recorder) Root() ExplorationNode {
	return &r.root
}

type recorderNode struct {
	// Set on level nodes.
	level *Level

	// Set on exploration nodes.
	name     string
	start    State
	end      State
	finished bool
	accepted bool

	children []*recorderNode
}

func (n *recorderNode) NewChildNode(level *Level, state State) LevelNode {
	child := &recorderNode{level: level, start: state}
	n.children = append(n.children, child)
	return child
}

func (n *recorderNode) Explore(name string, state State, fn func(ExplorationNode) State) Exploration {
	child := &recorderNode{name: name, start: state}
	n.children = append(n.children, child)
	child.end = fn(child)
	child.finished = true
	return (*recorderExploration)(child)
}

func (n *recorderNode) MaybeExplore(name string, state State, fn func(ExplorationNode) (State, bool)) (Exploration, bool) {
	child := &recorderNode{name: name, start: state}
	n.children = append(n.children, child)
	end, ok := fn(child)
	if !ok {
		return nil, false
	}
	child.end = end
	child.finished = true
	return (*recorderExploration)(child), true
}

func (n *recorderNode) FinishLevel(state State) State {
	n.end = state
	n.finished = true
	return state
}

type recorderExploration recorderNode

func (e *recorderExploration) State() State { return e.end }

func (e *recorderExploration) MarkAccepted() State {
	e.accepted = true
	return e.end
}
