// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package statedict

import "fmt"

// A SyntaxError reports that the underlying tokenizer could not parse
// the input as a well-formed JSON document. It wraps the tokenizer's
// own error and carries the byte offset at which decoding stopped, when
// the tokenizer supplies one (-1 otherwise).
type SyntaxError struct {
	Offset int64
	Err    error
}

func (e *SyntaxError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("syntax error: %v", e.Err)
	}
	return fmt.Sprintf("syntax error at byte offset %d: %v", e.Offset, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// A SchemaError reports a parse event that arrived in a state where the
// state-dict grammar does not permit it.
type SchemaError struct {
	Event string
	State string
}

func (e *SchemaError) Error() string {
	if e.State == "" {
		return fmt.Sprintf("schema violation: unexpected %s", e.Event)
	}
	return fmt.Sprintf("schema violation: unexpected %s in state %s", e.Event, e.State)
}

// A ShapeError reports a tensor entry whose declared shape implies a
// different number of elements than the values actually supplied.
type ShapeError struct {
	Shape Shape
	Want  int
	Got   int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("shape mismatch: shape %v implies %d values, actual %d", e.Shape, e.Want, e.Got)
}

// A DuplicateKeyError reports an attempt to insert a parameter name
// already present in a Dict.
type DuplicateKeyError struct {
	Key string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate parameter name %q", e.Key)
}
