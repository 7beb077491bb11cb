// Copyright 2026 The Tensorwire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensorwire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tensorwire/tensorwire/dtype"
)

func TestConvertEndian(t *testing.T) {
	testCases := []struct {
		name string
		dt   dtype.DataType
		raw  []byte
		want []byte
	}{
		{
			"uint16",
			dtype.Uint16,
			[]byte{0x01, 0x02 /**/, 0x03, 0x04},
			[]byte{0x02, 0x01 /**/, 0x04, 0x03},
		},
		{
			"float",
			dtype.Float,
			[]byte{0x01, 0x02, 0x03, 0x04},
			[]byte{0x04, 0x03, 0x02, 0x01},
		},
		{
			"double",
			dtype.Double,
			[]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08},
			[]byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01},
		},
		{
			"complex64 swaps per component",
			dtype.Complex64,
			[]byte{0x01, 0x02, 0x03, 0x04 /**/, 0x05, 0x06, 0x07, 0x08},
			[]byte{0x04, 0x03, 0x02, 0x01 /**/, 0x08, 0x07, 0x06, 0x05},
		},
		{
			"uint8 is untouched",
			dtype.Uint8,
			[]byte{0x01, 0x02},
			[]byte{0x01, 0x02},
		},
		{
			"packed int4 is untouched",
			dtype.Int4,
			[]byte{0x12, 0x34},
			[]byte{0x12, 0x34},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := &TensorRecord{DataType: tc.dt, RawData: append([]byte(nil), tc.raw...)}
			require.NoError(t, ConvertEndian(rec))
			assert.Equal(t, tc.want, rec.RawData)

			// Swapping twice restores the original payload.
			require.NoError(t, ConvertEndian(rec))
			assert.Equal(t, tc.raw, rec.RawData)
		})
	}
}

func TestConvertEndianRejections(t *testing.T) {
	t.Run("string has no fixed width", func(t *testing.T) {
		rec := &TensorRecord{DataType: dtype.String}
		assert.ErrorIs(t, ConvertEndian(rec), ErrUnsupported)
	})

	t.Run("undefined data type", func(t *testing.T) {
		rec := &TensorRecord{DataType: dtype.Undefined}
		assert.ErrorIs(t, ConvertEndian(rec), ErrUnsupported)
	})

	t.Run("length not a multiple of the element size", func(t *testing.T) {
		rec := &TensorRecord{DataType: dtype.Float, RawData: []byte{0x01, 0x02}}
		assert.ErrorIs(t, ConvertEndian(rec), ErrShape)
	})
}
