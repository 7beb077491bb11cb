// Copyright 2026 The Tensorwire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensorwire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tensorwire/tensorwire/dtype"
	"github.com/tensorwire/tensorwire/float16"
)

func TestNewArray(t *testing.T) {
	t.Run("valid array", func(t *testing.T) {
		arr, err := NewArray("w", dtype.Float, []int64{2, 3}, make([]float32, 6))
		require.NoError(t, err)
		assert.Equal(t, "w", arr.Name())
		assert.Equal(t, dtype.Float, arr.DType())
		assert.Equal(t, []int64{2, 3}, arr.Shape())
		assert.Len(t, arr.Data(), 6)
	})

	t.Run("scalar with nil shape", func(t *testing.T) {
		arr, err := NewArray("", dtype.Int64, nil, []int64{7})
		require.NoError(t, err)
		assert.Nil(t, arr.Shape())
	})

	t.Run("float16 bit patterns", func(t *testing.T) {
		_, err := NewArray("", dtype.Float16, []int64{2}, []float16.F16{0x3c00, 0xc000})
		assert.NoError(t, err)
	})

	t.Run("unpacked uint4", func(t *testing.T) {
		_, err := NewArray("", dtype.Uint4, []int64{3}, []uint8{1, 2, 3})
		assert.NoError(t, err)
	})

	t.Run("nested string data counts flattened", func(t *testing.T) {
		_, err := NewArray("", dtype.String, []int64{3}, []any{[]string{"a", "b"}, "c"})
		assert.NoError(t, err)
	})

	t.Run("shape product and data length disagree", func(t *testing.T) {
		_, err := NewArray("", dtype.Float, []int64{2, 3}, make([]float32, 5))
		assert.ErrorIs(t, err, ErrShape)
	})

	t.Run("negative dimension", func(t *testing.T) {
		_, err := NewArray("", dtype.Float, []int64{-2}, []float32{})
		assert.ErrorIs(t, err, ErrShape)
	})

	t.Run("data type and slice type disagree", func(t *testing.T) {
		_, err := NewArray("", dtype.Float, []int64{2}, []float64{1, 2})
		assert.ErrorIs(t, err, ErrTypeMismatch)
	})

	t.Run("undefined data type", func(t *testing.T) {
		_, err := NewArray("", dtype.Undefined, nil, nil)
		assert.ErrorIs(t, err, ErrUnsupported)
	})

	t.Run("shape is copied", func(t *testing.T) {
		shape := []int64{2}
		arr, err := NewArray("", dtype.Bool, shape, []bool{true, false})
		require.NoError(t, err)
		shape[0] = 99
		assert.Equal(t, []int64{2}, arr.Shape())
	})
}

func TestShapeSize(t *testing.T) {
	testCases := []struct {
		name string
		dims []int64
		want int
	}{
		{"nil shape is a scalar", nil, 1},
		{"empty shape is a scalar", []int64{}, 1},
		{"vector", []int64{4}, 4},
		{"matrix", []int64{2, 3}, 6},
		{"zero-sized dimension", []int64{2, 0, 3}, 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			size, err := shapeSize(tc.dims)
			require.NoError(t, err)
			assert.Equal(t, tc.want, size)
		})
	}

	t.Run("negative dimension", func(t *testing.T) {
		_, err := shapeSize([]int64{2, -1})
		assert.ErrorIs(t, err, ErrShape)
	})

	t.Run("overflow", func(t *testing.T) {
		_, err := shapeSize([]int64{1 << 40, 1 << 40})
		assert.ErrorIs(t, err, ErrShape)
	})
}
