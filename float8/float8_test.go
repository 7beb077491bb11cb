// Copyright 2026 The Tensorwire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package float8

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// refE4M3 computes the expected float32 bit pattern arithmetically,
// without any bit manipulation, so the decoder is checked against an
// independent formulation of the encoding.
func refE4M3(b uint8, uz bool) uint32 {
	if uz {
		if b == 0x80 {
			return qNaNBits
		}
	} else {
		switch b {
		case 0x7f:
			return qNaNBits
		case 0xff:
			return negQNaNBits
		}
	}
	bias := 7
	if uz {
		bias = 8
	}
	sign := float64(1)
	if b&0x80 != 0 {
		sign = -1
	}
	exponent := int(b>>3) & 0xf
	mantissa := float64(b & 0x7)
	var v float64
	if exponent == 0 {
		v = sign * (mantissa / 8) * math.Ldexp(1, 1-bias)
	} else {
		v = sign * (1 + mantissa/8) * math.Ldexp(1, exponent-bias)
	}
	return math.Float32bits(float32(v))
}

func refE5M2(b uint8, fnuz bool) uint32 {
	if fnuz {
		if b == 0x80 {
			return qNaNBits
		}
	} else {
		exponent := int(b>>2) & 0x1f
		if exponent == 0x1f {
			if b&0x3 == 0 {
				if b&0x80 != 0 {
					return negInfBits
				}
				return infBits
			}
			if b&0x80 != 0 {
				return negQNaNBits
			}
			return qNaNBits
		}
	}
	bias := 15
	if fnuz {
		bias = 16
	}
	sign := float64(1)
	if b&0x80 != 0 {
		sign = -1
	}
	exponent := int(b>>2) & 0x1f
	mantissa := float64(b & 0x3)
	var v float64
	if exponent == 0 {
		v = sign * (mantissa / 4) * math.Ldexp(1, 1-bias)
	} else {
		v = sign * (1 + mantissa/4) * math.Ldexp(1, exponent-bias)
	}
	return math.Float32bits(float32(v))
}

func TestDecodeE4M3_AllPatterns(t *testing.T) {
	for _, uz := range []bool{false, true} {
		for i := 0; i <= 0xff; i++ {
			b := uint8(i)
			got, err := DecodeE4M3(int32(i), true, uz)
			require.NoError(t, err)
			assert.Equal(t, refE4M3(b, uz), math.Float32bits(got),
				fmt.Sprintf("uz=%t bits=0x%02x got=%v", uz, b, got))
		}
	}
}

func TestDecodeE5M2_AllPatterns(t *testing.T) {
	for _, fnuz := range []bool{false, true} {
		for i := 0; i <= 0xff; i++ {
			b := uint8(i)
			got, err := DecodeE5M2(int32(i), fnuz, fnuz)
			require.NoError(t, err)
			assert.Equal(t, refE5M2(b, fnuz), math.Float32bits(got),
				fmt.Sprintf("fnuz=%t bits=0x%02x got=%v", fnuz, b, got))
		}
	}
}

func TestDecode_KnownValues(t *testing.T) {
	testCases := []struct {
		name string
		got  float32
		want float32
	}{
		{"e4m3fn one", E4M3FN(0x38).Float32(), 1},
		{"e4m3fn minus two", E4M3FN(0xc0).Float32(), -2},
		{"e4m3fn max", E4M3FN(0x7e).Float32(), 448},
		{"e4m3fn min subnormal", E4M3FN(0x01).Float32(), 0x1p-9},
		{"e4m3fnuz one", E4M3FNUZ(0x40).Float32(), 1},
		{"e4m3fnuz max", E4M3FNUZ(0x7f).Float32(), 240},
		{"e4m3fnuz min subnormal", E4M3FNUZ(0x01).Float32(), 0x1p-10},
		{"e5m2 one", E5M2(0x3c).Float32(), 1},
		{"e5m2 max", E5M2(0x7b).Float32(), 57344},
		{"e5m2 min subnormal", E5M2(0x01).Float32(), 0x1p-16},
		{"e5m2fnuz one", E5M2FNUZ(0x40).Float32(), 1},
		{"e5m2fnuz min subnormal", E5M2FNUZ(0x01).Float32(), 0x1p-17},
	}
	for _, tc := range testCases {
		assert.Equal(t, math.Float32bits(tc.want), math.Float32bits(tc.got), tc.name)
	}
}

func TestDecode_SignedZero(t *testing.T) {
	pos, err := DecodeE4M3(0x00, true, false)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), math.Float32bits(pos))

	neg, err := DecodeE4M3(0x80, true, false)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x80000000), math.Float32bits(neg))

	neg, err = DecodeE5M2(0x80, false, false)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x80000000), math.Float32bits(neg))
}

func TestDecode_NaNSign(t *testing.T) {
	pos, err := DecodeE4M3(0x7f, true, false)
	require.NoError(t, err)
	assert.Equal(t, uint32(qNaNBits), math.Float32bits(pos))

	neg, err := DecodeE4M3(0xff, true, false)
	require.NoError(t, err)
	assert.Equal(t, uint32(negQNaNBits), math.Float32bits(neg))

	for _, bits := range []int32{0xfd, 0xfe, 0xff} {
		f, err := DecodeE5M2(bits, false, false)
		require.NoError(t, err)
		assert.Equal(t, uint32(negQNaNBits), math.Float32bits(f), bits)
	}
	for _, bits := range []int32{0x7d, 0x7e, 0x7f} {
		f, err := DecodeE5M2(bits, false, false)
		require.NoError(t, err)
		assert.Equal(t, uint32(qNaNBits), math.Float32bits(f), bits)
	}
}

func TestDecode_Infinities(t *testing.T) {
	f, err := DecodeE5M2(0x7c, false, false)
	require.NoError(t, err)
	assert.True(t, math.IsInf(float64(f), 1))

	f, err = DecodeE5M2(0xfc, false, false)
	require.NoError(t, err)
	assert.True(t, math.IsInf(float64(f), -1))

	// The fnuz variant has no infinities: the same codes are finite.
	f, err = DecodeE5M2(0x7c, true, true)
	require.NoError(t, err)
	assert.False(t, math.IsInf(float64(f), 0))
}

func TestDecode_OutOfRange(t *testing.T) {
	for _, bits := range []int32{-1, 256, 1000, math.MinInt32, math.MaxInt32} {
		_, err := DecodeE4M3(bits, true, false)
		assert.ErrorIs(t, err, ErrOutOfRange, bits)

		_, err = DecodeE5M2(bits, false, false)
		assert.ErrorIs(t, err, ErrOutOfRange, bits)
	}
}

func TestDecode_UnsupportedVariants(t *testing.T) {
	_, err := DecodeE4M3(0, false, false)
	assert.ErrorIs(t, err, ErrUnsupportedVariant)

	_, err = DecodeE4M3(0, false, true)
	assert.ErrorIs(t, err, ErrUnsupportedVariant)

	_, err = DecodeE5M2(0, true, false)
	assert.ErrorIs(t, err, ErrUnsupportedVariant)

	_, err = DecodeE5M2(0, false, true)
	assert.ErrorIs(t, err, ErrUnsupportedVariant)
}
