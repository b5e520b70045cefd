// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package statedict

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDict_MarshalJSON(t *testing.T) {
	var d Dict
	require.NoError(t, d.Insert("conv1.weight", mustTensor(t, Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6})))
	require.NoError(t, d.Insert("conv1.bias", mustTensor(t, nil, []float32{0.5})))

	b, err := d.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t,
		`{"conv1.weight":[[2,3],[1,2,3,4,5,6]],"conv1.bias":[[1],[0.5]]}`,
		string(b))
}

func TestDict_MarshalJSON_Empty(t *testing.T) {
	var d Dict
	b, err := d.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(b))
}

func TestSerializeToWriter(t *testing.T) {
	var d Dict
	require.NoError(t, d.Insert("a", mustTensor(t, Shape{2}, []float32{1, 2})))
	require.NoError(t, d.Insert("b", mustTensor(t, nil, []float32{3})))

	var buf bytes.Buffer
	require.NoError(t, SerializeToWriter(&d, &buf))

	marshalled, err := d.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, string(marshalled), buf.String())
}

func TestSerializeToWriter_WriterFailure(t *testing.T) {
	var d Dict
	require.NoError(t, d.Insert("a", mustTensor(t, Shape{1}, []float32{1})))

	err := SerializeToWriter(&d, failingWriter{})
	assert.Error(t, err)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestSerializeThenDecode(t *testing.T) {
	var d Dict
	require.NoError(t, d.Insert("w", mustTensor(t, Shape{2, 2}, []float32{0.25, -1, 3, 16777216})))
	require.NoError(t, d.Insert("b", mustTensor(t, nil, []float32{0.125})))

	b, err := d.MarshalJSON()
	require.NoError(t, err)

	reloaded, err := Decode(strings.NewReader(string(b)))
	require.NoError(t, err)
	assert.Equal(t, d.Names(), reloaded.Names())
	assert.Equal(t, d.Tensors(), reloaded.Tensors())
}
