// Copyright 2026 The Tensorwire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package float8 decodes 8-bit floating-point bit patterns to float32.
//
// Two families are supported: E4M3 (1 sign bit, 4 exponent bits,
// 3 mantissa bits) and E5M2 (1 sign bit, 5 exponent bits, 2 mantissa
// bits). Each family comes in variants selected by two flags:
// fn ("finite", no infinities) and uz ("unique zero", no negative zero
// and only one NaN encoding). The exponent bias and the special-value
// codes differ per variant.
//
// Only decoding is provided; there is no float32-to-float8 conversion.
package float8

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrOutOfRange is returned when a bit pattern does not fit in 8 bits.
	ErrOutOfRange = errors.New("bit pattern out of 8-bit range")
	// ErrUnsupportedVariant is returned for a (family, fn, uz)
	// combination that has no defined encoding.
	ErrUnsupportedVariant = errors.New("unsupported float8 variant")
)

// E4M3FN is an 8-bit float with 4 exponent bits and 3 mantissa bits,
// no infinities, represented as raw bits.
type E4M3FN uint8

// E4M3FNUZ is an 8-bit float with 4 exponent bits and 3 mantissa bits,
// no infinities and no negative zero, represented as raw bits.
type E4M3FNUZ uint8

// E5M2 is an 8-bit float with 5 exponent bits and 2 mantissa bits,
// with IEEE-style infinities and NaNs, represented as raw bits.
type E5M2 uint8

// E5M2FNUZ is an 8-bit float with 5 exponent bits and 2 mantissa bits,
// no infinities and no negative zero, represented as raw bits.
type E5M2FNUZ uint8

// Float32 returns the value represented by the bit pattern.
func (f E4M3FN) Float32() float32 {
	v, _ := DecodeE4M3(int32(f), true, false)
	return v
}

// Float32 returns the value represented by the bit pattern.
func (f E4M3FNUZ) Float32() float32 {
	v, _ := DecodeE4M3(int32(f), true, true)
	return v
}

// Float32 returns the value represented by the bit pattern.
func (f E5M2) Float32() float32 {
	v, _ := DecodeE5M2(int32(f), false, false)
	return v
}

// Float32 returns the value represented by the bit pattern.
func (f E5M2FNUZ) Float32() float32 {
	v, _ := DecodeE5M2(int32(f), true, true)
	return v
}

type family uint8

const (
	familyE4M3 family = iota
	familyE5M2
)

// mantissa width in bits, per family
var familyMantBits = [...]uint32{
	familyE4M3: 3,
	familyE5M2: 2,
}

type variantKey struct {
	family family
	fn, uz bool
}

type variantSpec struct {
	bias int32
	// special reports special-value codes (NaN, infinities) that take
	// precedence over the generic bit decode.
	special func(b uint8) (float32, bool)
}

const (
	qNaNBits    = 0x7fc00000
	negQNaNBits = 0xffc00000
	infBits     = 0x7f800000
	negInfBits  = 0xff800000
)

// The four supported variants. Any other (family, fn, uz) combination
// has no defined encoding.
var variants = map[variantKey]variantSpec{
	{familyE4M3, true, false}: {bias: 7, special: e4m3Special},
	{familyE4M3, true, true}:  {bias: 8, special: uniqueZeroSpecial},
	{familyE5M2, false, false}: {bias: 15, special: e5m2Special},
	{familyE5M2, true, true}:   {bias: 16, special: uniqueZeroSpecial},
}

// e4m3Special handles the signed-NaN codes of E4M3FN: all-ones with
// full mantissa on either sign. The family has no infinities.
func e4m3Special(b uint8) (float32, bool) {
	switch b {
	case 0x7f:
		return math.Float32frombits(qNaNBits), true
	case 0xff:
		return math.Float32frombits(negQNaNBits), true
	}
	return 0, false
}

// uniqueZeroSpecial handles the single NaN code shared by the fnuz
// variants: the would-be negative zero.
func uniqueZeroSpecial(b uint8) (float32, bool) {
	if b == 0x80 {
		return math.Float32frombits(qNaNBits), true
	}
	return 0, false
}

// e5m2Special handles the IEEE-style codes of E5M2: exponent all ones
// with zero mantissa is an infinity, with non-zero mantissa a NaN of
// matching sign.
func e5m2Special(b uint8) (float32, bool) {
	switch {
	case b >= 0xfd:
		return math.Float32frombits(negQNaNBits), true
	case b >= 0x7d && b <= 0x7f:
		return math.Float32frombits(qNaNBits), true
	case b == 0xfc:
		return math.Float32frombits(negInfBits), true
	case b == 0x7c:
		return math.Float32frombits(infBits), true
	}
	return 0, false
}

// DecodeE4M3 decodes an E4M3-family bit pattern to float32.
//
// Only fn=true is defined for this family; fn=false returns
// ErrUnsupportedVariant. Patterns outside [0, 255] return ErrOutOfRange.
func DecodeE4M3(bits int32, fn, uz bool) (float32, error) {
	return decode(bits, familyE4M3, fn, uz)
}

// DecodeE5M2 decodes an E5M2-family bit pattern to float32.
//
// fn and uz must be both false or both true; mixed combinations return
// ErrUnsupportedVariant. Patterns outside [0, 255] return ErrOutOfRange.
func DecodeE5M2(bits int32, fn, uz bool) (float32, error) {
	return decode(bits, familyE5M2, fn, uz)
}

func decode(bits int32, fam family, fn, uz bool) (float32, error) {
	if bits < 0 || bits > 0xff {
		return 0, fmt.Errorf("%w: %d", ErrOutOfRange, bits)
	}
	spec, ok := variants[variantKey{fam, fn, uz}]
	if !ok {
		return 0, fmt.Errorf("%w: fn=%t uz=%t", ErrUnsupportedVariant, fn, uz)
	}

	b := uint8(bits)
	if f, ok := spec.special(b); ok {
		return f, nil
	}

	mw := familyMantBits[fam]
	sign := uint32(b&0x80) << 24
	exponent := int32(b&0x7f) >> mw
	mantissa := uint32(b) & (1<<mw - 1)

	result := sign
	if exponent == 0 {
		// Subnormal: renormalize by shifting the mantissa left until
		// its leading bit is set, decrementing the exponent per shift.
		if mantissa != 0 {
			e := 127 - spec.bias
			lead := uint32(1) << (mw - 1)
			for mantissa&lead == 0 {
				mantissa <<= 1
				e--
			}
			result |= (mantissa & (lead - 1)) << (23 - (mw - 1))
			result |= uint32(e) << 23
		}
	} else {
		result |= mantissa << (23 - mw)
		result |= uint32(exponent+127-spec.bias) << 23
	}
	return math.Float32frombits(result), nil
}
