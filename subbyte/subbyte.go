// Copyright 2026 The Tensorwire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package subbyte packs and unpacks 4-bit integer elements.
//
// Two elements share one byte, with the first element in the low
// nibble. When the element count is odd, the final byte carries a
// single element in its low nibble and a zero high nibble.
package subbyte

import "fmt"

// UnpackUint4 unpacks count unsigned 4-bit elements from data.
func UnpackUint4(data []byte, count int) ([]uint8, error) {
	if err := checkPackedLen(data, count); err != nil {
		return nil, err
	}
	out := make([]uint8, count)
	for i := range out {
		out[i] = nibble(data, i)
	}
	return out, nil
}

// UnpackInt4 unpacks count signed 4-bit elements from data,
// sign-extending each nibble to the range [-8, 7].
func UnpackInt4(data []byte, count int) ([]int8, error) {
	if err := checkPackedLen(data, count); err != nil {
		return nil, err
	}
	out := make([]int8, count)
	for i := range out {
		out[i] = int8(nibble(data, i)<<4) >> 4
	}
	return out, nil
}

// PackUint4 packs unsigned 4-bit elements two per byte.
// Values are truncated to their low 4 bits.
func PackUint4(vals []uint8) []byte {
	out := make([]byte, (len(vals)+1)/2)
	for i, v := range vals {
		setNibble(out, i, v)
	}
	return out
}

// PackInt4 packs signed 4-bit elements two per byte.
// Values are truncated to their low 4 bits (two's complement).
func PackInt4(vals []int8) []byte {
	out := make([]byte, (len(vals)+1)/2)
	for i, v := range vals {
		setNibble(out, i, uint8(v))
	}
	return out
}

func checkPackedLen(data []byte, count int) error {
	if count < 0 {
		return fmt.Errorf("negative element count %d", count)
	}
	if want := (count + 1) / 2; len(data) != want {
		return fmt.Errorf("packed buffer length %d does not hold %d elements (want %d bytes)", len(data), count, want)
	}
	return nil
}

func nibble(data []byte, i int) uint8 {
	b := data[i/2]
	if i%2 != 0 {
		return b >> 4
	}
	return b & 0x0f
}

func setNibble(data []byte, i int, v uint8) {
	if i%2 != 0 {
		data[i/2] |= (v & 0x0f) << 4
	} else {
		data[i/2] |= v & 0x0f
	}
}
