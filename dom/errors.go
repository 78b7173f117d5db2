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

import "fmt"

// InternalError reports a malformed document tree handed to the engine
// by the upstream translator, such as an unknown breakability tag.
// This is a programmer error in the translator, not a property of the
// input source; the layout search has no other failure mode.
//
// The engine panics with an *InternalError; [Recover] converts such a
// panic back into an error at the entry point.
type InternalError struct {
	msg string
}

func (e *InternalError) Error() string {
	return "malformed document tree: " + e.msg
}

// internalf panics with an *InternalError.
func internalf(format string, args ...any) {
	panic(&InternalError{msg: fmt.Sprintf(format, args...)})
}

// Recover converts a recovered panic value into an error if it is an
// *InternalError, and resumes panicking otherwise. Intended for use at
// the format entry point:
//
//	defer func() { dom.Recover(recover(), &err) }()
func Recover(recovered any, err *error) {
	if recovered == nil {
		return
	}
	ie, ok := recovered.(*InternalError)
	if !ok {
		panic(recovered)
	}
	*err = ie
}
