// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package statedict

// Dict is an insertion-ordered dictionary mapping parameter names to
// tensors. Iteration (Names, Range, Tensors) always follows insertion
// order, regardless of the names themselves.
//
// The zero value is empty and ready to use.
type Dict struct {
	tensors  []NamedTensor
	indexMap map[string]int
}

// Insert adds a named tensor at the end of the iteration order.
// A name already present is rejected with *DuplicateKeyError; existing
// entries are never overwritten.
func (d *Dict) Insert(name string, tensor Tensor) error {
	if _, ok := d.indexMap[name]; ok {
		return &DuplicateKeyError{Key: name}
	}
	if d.indexMap == nil {
		d.indexMap = make(map[string]int)
	}
	d.indexMap[name] = len(d.tensors)
	d.tensors = append(d.tensors, NamedTensor{Name: name, Tensor: tensor})
	return nil
}

// Get looks up a tensor by name. The returned boolean flag reports
// whether the name was found.
func (d *Dict) Get(name string) (Tensor, bool) {
	index, ok := d.indexMap[name]
	if !ok {
		return Tensor{}, false
	}
	return d.tensors[index].Tensor, true
}

// Names returns all parameter names in insertion order.
func (d *Dict) Names() []string {
	names := make([]string, len(d.tensors))
	for i, nt := range d.tensors {
		names[i] = nt.Name
	}
	return names
}

// Tensors returns all entries in insertion order.
func (d *Dict) Tensors() []NamedTensor {
	return append([]NamedTensor{}, d.tensors...)
}

// Range calls fn for each entry in insertion order, stopping early if
// fn returns false.
func (d *Dict) Range(fn func(name string, tensor Tensor) bool) {
	for _, nt := range d.tensors {
		if !fn(nt.Name, nt.Tensor) {
			return
		}
	}
}

// Len returns how many tensors are currently stored within the Dict.
func (d *Dict) Len() int {
	return len(d.tensors)
}

// IsEmpty reports whether the Dict contains any tensor.
func (d *Dict) IsEmpty() bool {
	return len(d.tensors) == 0
}
