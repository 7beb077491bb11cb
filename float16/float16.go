// Copyright 2026 The Tensorwire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package float16 provides bit-pattern types for the two 16-bit
// floating-point encodings carried on the wire.
package float16

import (
	"math"

	"github.com/x448/float16"
)

// F16 is a 16-bit half-precision floating-point value (1 sign bit,
// 5 exponent bits, 10 mantissa bits), represented as raw bits.
type F16 uint16

// BF16 is a 16-bit brain floating-point value (1 sign bit, 8 exponent
// bits, 7 mantissa bits), represented as raw bits.
type BF16 uint16

// Float32 returns the value represented by the bit pattern.
func (f F16) Float32() float32 {
	return float16.Frombits(uint16(f)).Float32()
}

// F16FromFloat32 returns the nearest F16 value, using round-to-nearest-even.
func F16FromFloat32(f float32) F16 {
	return F16(float16.Fromfloat32(f).Bits())
}

// Float32 widens the bit pattern to float32. BF16 shares the float32
// sign and exponent layout with a truncated mantissa, so widening is a
// plain 16-bit left shift.
func (f BF16) Float32() float32 {
	return math.Float32frombits(uint32(f) << 16)
}

// BF16FromFloat32 returns the BF16 value obtained by truncating the
// float32 mantissa.
func BF16FromFloat32(f float32) BF16 {
	return BF16(math.Float32bits(f) >> 16)
}
