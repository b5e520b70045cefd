// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package statedict

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// MarshalJSON renders the tensor as its wire-format entry value: a
// two-element array holding the shape array and the flat row-major
// data array. Scalars keep their normalized [1] shape.
func (t Tensor) MarshalJSON() ([]byte, error) {
	shape, err := json.Marshal(t.shape)
	if err != nil {
		return nil, err
	}
	data := t.data
	if data == nil {
		data = []float32{}
	}
	values, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(len(shape) + len(values) + 3)
	buf.WriteByte('[')
	buf.Write(shape)
	buf.WriteByte(',')
	buf.Write(values)
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// MarshalJSON renders the dictionary in the state-dict wire format,
// preserving insertion order. The result of serializing a Dict and
// parsing it back is a Dict with the same names, order, shapes and
// values.
func (d *Dict) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeDict(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SerializeToWriter writes the dictionary in the state-dict wire format
// to an io.Writer (such as a file), entry by entry.
//
// Compared to MarshalJSON, this procedure reduces the need to allocate
// the whole document in memory.
func SerializeToWriter(d *Dict, w io.Writer) error {
	return writeDict(w, d)
}

func writeDict(w io.Writer, d *Dict) error {
	if _, err := io.WriteString(w, "{"); err != nil {
		return err
	}
	for i, nt := range d.tensors {
		if i > 0 {
			if _, err := io.WriteString(w, ","); err != nil {
				return err
			}
		}
		name, err := json.Marshal(nt.Name)
		if err != nil {
			return fmt.Errorf("failed to JSON-marshal name %q: %w", nt.Name, err)
		}
		entry, err := nt.Tensor.MarshalJSON()
		if err != nil {
			return fmt.Errorf("failed to JSON-marshal tensor %q: %w", nt.Name, err)
		}
		if _, err = w.Write(append(append(name, ':'), entry...)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "}")
	return err
}
