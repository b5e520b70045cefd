// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package statedict

import (
	"encoding/json"
	"fmt"
)

// The Shape of a tensor: an ordered sequence of non-negative dimensions.
// An empty (or nil) Shape denotes a scalar.
type Shape []int

// ElemCount returns the total number of elements implied by the Shape,
// that is, the product of all dimensions. The product of an empty Shape
// is 1 (a scalar).
func (s Shape) ElemCount() (int, error) {
	count := 1
	for _, dim := range s {
		var err error
		count, err = checkedMul(count, dim)
		if err != nil {
			return 0, fmt.Errorf("failed to compute num elements from shape %v: %w", s, err)
		}
	}
	return count, nil
}

// MarshalJSON prevents a nil Shape to be serialized as "null",
// preferring an empty array "[]" instead.
func (s Shape) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]int(s))
}

// A Tensor is a shaped, immutable numeric array: dimensions plus an
// owned row-major contiguous buffer of float32 values.
type Tensor struct {
	shape Shape
	data  []float32
}

// NamedTensor pairs a Tensor with its parameter name.
type NamedTensor struct {
	Name   string
	Tensor Tensor
}

// NewTensor creates a Tensor from a Shape and a flat row-major sequence
// of values, copying both. An empty shape is normalized to Shape{1}.
//
// It fails with *ShapeError if the number of values differs from the
// element count implied by the shape, or with a plain error if any
// dimension is negative.
func NewTensor(shape Shape, data []float32) (Tensor, error) {
	for _, dim := range shape {
		if dim < 0 {
			return Tensor{}, fmt.Errorf("invalid shape %v: negative dimension %d", shape, dim)
		}
	}

	count, err := shape.ElemCount()
	if err != nil {
		return Tensor{}, err
	}
	if len(data) != count {
		return Tensor{}, &ShapeError{Shape: append(Shape{}, shape...), Want: count, Got: len(data)}
	}

	if len(shape) == 0 {
		shape = Shape{1}
	}
	return Tensor{
		shape: append(Shape{}, shape...),
		data:  append([]float32{}, data...),
	}, nil
}

// Shape returns a copy of the tensor's dimensions.
func (t Tensor) Shape() Shape {
	return append(Shape{}, t.shape...)
}

// Data returns a copy of the tensor's row-major values.
func (t Tensor) Data() []float32 {
	return append([]float32{}, t.data...)
}

// ElemCount returns the number of elements in the tensor.
func (t Tensor) ElemCount() int {
	return len(t.data)
}

// At returns the value at the given multidimensional indices,
// interpreting the buffer as row-major.
func (t Tensor) At(indices ...int) (float32, error) {
	if len(indices) != len(t.shape) {
		return 0, fmt.Errorf("expected %d indices for shape %v, actual %d", len(t.shape), t.shape, len(indices))
	}
	offset := 0
	for i, index := range indices {
		if index < 0 || index >= t.shape[i] {
			return 0, fmt.Errorf("index %d out of range for dimension %d of shape %v", index, i, t.shape)
		}
		offset = offset*t.shape[i] + index
	}
	return t.data[offset], nil
}
