// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package statedict

import "encoding/json"

// A Handler accepts primitive parse events pushed by a structured-document
// tokenizer. Each method consumes exactly one event; returning a non-nil
// error stops the parse immediately.
//
// The methods correspond to the syntax of a JSON-like document:
//
//	event       | method      | description
//	----------- | ----------- | ---------------------------------
//	{           | BeginObject | an object opens
//	}           | EndObject   | an object closes (members seen)
//	[           | BeginArray  | an array opens
//	]           | EndArray    | an array closes (elements seen)
//	member name | Key         | an object member name was read
//	number      | Number      | a numeric leaf value was read
//
// The tokenizer must guarantee that Begin and End calls are correctly
// paired and that Key is only emitted directly inside an object; it is
// the Handler's job to decide whether an event is permitted by its own
// grammar at that point.
type Handler interface {
	BeginObject() error
	EndObject(members int) error
	BeginArray() error
	EndArray(elements int) error
	Key(name string) error
	Number(num json.Number) error
}
