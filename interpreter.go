// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package statedict

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// parseState identifies the position of the interpreter within the
// state-dict grammar.
type parseState int

const (
	// stateNone: before the top-level object starts.
	stateNone parseState = iota
	// stateDictObject: inside the top-level name→entry object.
	stateDictObject
	// stateParamName: a member name was read, awaiting its [shape, data] pair.
	stateParamName
	// stateSizeTensorPair: inside the two-element [shape, data] pair.
	stateSizeTensorPair
	// stateTensorSize: inside the shape array.
	stateTensorSize
	// stateSizeTensorPairDelim: shape array closed, awaiting the data array.
	stateSizeTensorPairDelim
	// stateTensorValue: inside the (possibly nested) data.
	stateTensorValue
	// stateList: inside a nested numeric sub-array of the data.
	stateList
)

func (s parseState) String() string {
	switch s {
	case stateNone:
		return "document start"
	case stateDictObject:
		return "dict object"
	case stateParamName:
		return "param name"
	case stateSizeTensorPair:
		return "size/tensor pair"
	case stateTensorSize:
		return "tensor size"
	case stateSizeTensorPairDelim:
		return "size/tensor pair delimiter"
	case stateTensorValue:
		return "tensor value"
	case stateList:
		return "list"
	}
	return fmt.Sprintf("parseState(%d)", int(s))
}

// interpreter is the push-based state machine reconstructing an ordered
// name→Tensor dictionary from primitive parse events. All of its state
// is parse-scoped: one interpreter serves exactly one parse, and
// separate interpreters never interfere with each other.
type interpreter struct {
	stack  []parseState
	dict   *Dict
	key    string
	shape  Shape
	values []float32
	want   int
	// bareData reports that the current tensor-value scope was entered
	// directly from the shape's close, with no data-array open consumed:
	// the event closing the scope is then the enclosing pair's close.
	bareData  bool
	built     Tensor
	completed bool
}

var _ Handler = &interpreter{}

func newInterpreter() *interpreter {
	return &interpreter{
		stack: []parseState{stateNone},
		dict:  &Dict{},
	}
}

func (in *interpreter) top() parseState {
	return in.stack[len(in.stack)-1]
}

func (in *interpreter) push(s parseState) {
	in.stack = append(in.stack, s)
}

func (in *interpreter) pop() parseState {
	s := in.stack[len(in.stack)-1]
	in.stack = in.stack[:len(in.stack)-1]
	return s
}

func (in *interpreter) fail(event string) error {
	return &SchemaError{Event: event, State: in.top().String()}
}

func (in *interpreter) BeginObject() error {
	if in.top() != stateNone {
		return in.fail("object start")
	}
	in.pop()
	in.push(stateDictObject)
	return nil
}

func (in *interpreter) EndObject(members int) error {
	if in.top() != stateDictObject {
		return in.fail("object end")
	}
	return nil
}

func (in *interpreter) Key(name string) error {
	if in.top() != stateDictObject {
		return in.fail(fmt.Sprintf("key %q", name))
	}
	in.key = name
	in.push(stateParamName)
	return nil
}

func (in *interpreter) BeginArray() error {
	switch in.top() {
	case stateList:
		in.push(stateList)
	case stateParamName:
		in.push(stateSizeTensorPair)
		in.completed = false
	case stateSizeTensorPair:
		in.push(stateTensorSize)
		in.shape = in.shape[:0]
	case stateSizeTensorPairDelim:
		in.pop()
		return in.beginData(false)
	case stateTensorValue:
		in.push(stateList)
	default:
		return in.fail("array start")
	}
	return nil
}

// beginData opens the tensor-value scope for the entry being parsed.
// bare marks the scalar shorthand, where the data is not wrapped in an
// array of its own.
func (in *interpreter) beginData(bare bool) error {
	count, err := in.shape.ElemCount()
	if err != nil {
		return err
	}
	in.push(stateTensorValue)
	in.want = count
	in.bareData = bare
	if cap(in.values) < count {
		in.values = make([]float32, 0, count)
	} else {
		in.values = in.values[:0]
	}
	return nil
}

func (in *interpreter) EndArray(elements int) error {
	switch in.top() {
	case stateList:
		in.pop()
	case stateSizeTensorPair:
		in.pop()
		return in.finishEntry()
	case stateTensorSize:
		in.pop()
		if elements == 0 {
			// Empty shape denotes a scalar: one element, and the data
			// follows bare, without a data array.
			in.shape = append(in.shape, 1)
			return in.beginData(true)
		}
		in.push(stateSizeTensorPairDelim)
	case stateTensorValue:
		in.pop()
		if err := in.finishData(); err != nil {
			return err
		}
		if in.bareData {
			// This event was the enclosing pair's close.
			if in.top() != stateSizeTensorPair {
				return in.fail("array end")
			}
			in.pop()
			return in.finishEntry()
		}
	default:
		return in.fail("array end")
	}
	return nil
}

// finishData closes the tensor-value scope: the collected values must
// match the element count implied by the shape, and the freshly built
// tensor becomes the entry's completed tensor.
func (in *interpreter) finishData() error {
	if len(in.values) != in.want {
		return &ShapeError{Shape: append(Shape{}, in.shape...), Want: in.want, Got: len(in.values)}
	}
	tensor, err := NewTensor(in.shape, in.values)
	if err != nil {
		return err
	}
	in.built = tensor
	in.completed = true
	return nil
}

// finishEntry inserts the completed tensor under the pending key. It is
// called exactly once per entry, with stateParamName on top of the
// stack.
func (in *interpreter) finishEntry() error {
	if in.top() != stateParamName {
		return in.fail("array end")
	}
	in.pop()
	if !in.completed {
		return &SchemaError{
			Event: "array end",
			State: stateSizeTensorPair.String() + " without shape and data",
		}
	}
	in.completed = false
	return in.dict.Insert(in.key, in.built)
}

func (in *interpreter) Number(num json.Number) error {
	switch in.top() {
	case stateList, stateTensorValue:
		v, err := strconv.ParseFloat(num.String(), 32)
		if err != nil {
			return in.fail(fmt.Sprintf("number %q", num))
		}
		in.values = append(in.values, float32(v))
	case stateTensorSize:
		dim, err := strconv.ParseInt(num.String(), 10, strconv.IntSize)
		if err != nil || dim < 0 {
			return in.fail(fmt.Sprintf("dimension %q", num))
		}
		in.shape = append(in.shape, int(dim))
	default:
		return in.fail(fmt.Sprintf("number %q", num))
	}
	return nil
}
