// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package statedict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTensor(t *testing.T, shape Shape, data []float32) Tensor {
	t.Helper()
	tensor, err := NewTensor(shape, data)
	require.NoError(t, err)
	return tensor
}

func TestDict_InsertionOrder(t *testing.T) {
	var d Dict
	require.True(t, d.IsEmpty())

	// Names deliberately in reverse lexicographic order: iteration must
	// follow insertion, not the names.
	names := []string{"c", "b", "a"}
	for i, name := range names {
		err := d.Insert(name, mustTensor(t, Shape{1}, []float32{float32(i)}))
		require.NoError(t, err)
	}

	assert.Equal(t, 3, d.Len())
	assert.False(t, d.IsEmpty())
	assert.Equal(t, names, d.Names())

	var ranged []string
	d.Range(func(name string, tensor Tensor) bool {
		ranged = append(ranged, name)
		return true
	})
	assert.Equal(t, names, ranged)

	tensors := d.Tensors()
	require.Len(t, tensors, 3)
	for i, nt := range tensors {
		assert.Equal(t, names[i], nt.Name)
		assert.Equal(t, []float32{float32(i)}, nt.Tensor.Data())
	}
}

func TestDict_Get(t *testing.T) {
	var d Dict
	require.NoError(t, d.Insert("foo", mustTensor(t, Shape{2}, []float32{1, 2})))

	tensor, ok := d.Get("foo")
	require.True(t, ok)
	assert.Equal(t, []float32{1, 2}, tensor.Data())

	_, ok = d.Get("bar")
	assert.False(t, ok)
}

func TestDict_DuplicateKeysAreRejected(t *testing.T) {
	var d Dict
	require.NoError(t, d.Insert("foo", mustTensor(t, Shape{1}, []float32{1})))

	err := d.Insert("foo", mustTensor(t, Shape{1}, []float32{2}))
	var dupErr *DuplicateKeyError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "foo", dupErr.Key)

	// The first insertion must survive untouched.
	tensor, ok := d.Get("foo")
	require.True(t, ok)
	assert.Equal(t, []float32{1}, tensor.Data())
	assert.Equal(t, 1, d.Len())
}

func TestDict_RangeEarlyStop(t *testing.T) {
	var d Dict
	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, d.Insert(name, mustTensor(t, Shape{1}, []float32{0})))
	}

	var seen []string
	d.Range(func(name string, tensor Tensor) bool {
		seen = append(seen, name)
		return len(seen) < 2
	})
	assert.Equal(t, []string{"a", "b"}, seen)
}
