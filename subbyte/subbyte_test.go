// Copyright 2026 The Tensorwire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package subbyte

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnpackUint4(t *testing.T) {
	vals, err := UnpackUint4([]byte{0x21, 0x43}, 4)
	require.NoError(t, err)
	assert.Equal(t, []uint8{1, 2, 3, 4}, vals)

	// Odd count: the final byte holds one element in its low nibble.
	vals, err = UnpackUint4([]byte{0xf0, 0x0f}, 3)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 15, 15}, vals)

	vals, err = UnpackUint4(nil, 0)
	require.NoError(t, err)
	assert.Empty(t, vals)
}

func TestUnpackInt4(t *testing.T) {
	// 0xf is -1, 0x8 is -8 after sign extension.
	vals, err := UnpackInt4([]byte{0x8f, 0x07}, 4)
	require.NoError(t, err)
	assert.Equal(t, []int8{-1, -8, 7, 0}, vals)
}

func TestUnpack_LengthMismatch(t *testing.T) {
	_, err := UnpackUint4([]byte{0x00}, 3)
	assert.Error(t, err)

	_, err = UnpackInt4([]byte{0x00, 0x00}, 1)
	assert.Error(t, err)

	_, err = UnpackUint4(nil, -1)
	assert.Error(t, err)
}

func TestPackUint4(t *testing.T) {
	assert.Equal(t, []byte{0x21, 0x43}, PackUint4([]uint8{1, 2, 3, 4}))
	assert.Equal(t, []byte{0x21, 0x03}, PackUint4([]uint8{1, 2, 3}))
	assert.Empty(t, PackUint4(nil))
}

func TestPackInt4(t *testing.T) {
	assert.Equal(t, []byte{0x8f, 0x07}, PackInt4([]int8{-1, -8, 7}))
}

func TestPackUnpack_RoundTrip(t *testing.T) {
	u := []uint8{0, 1, 7, 8, 15, 3, 9}
	gotU, err := UnpackUint4(PackUint4(u), len(u))
	require.NoError(t, err)
	assert.Equal(t, u, gotU)

	s := []int8{-8, -1, 0, 1, 7, -3}
	gotS, err := UnpackInt4(PackInt4(s), len(s))
	require.NoError(t, err)
	assert.Equal(t, s, gotS)
}
