// Copyright 2026 The Tensorwire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensorwire

import (
	"fmt"
	"math"

	"github.com/tensorwire/tensorwire/dtype"
	"github.com/tensorwire/tensorwire/float16"
	"github.com/tensorwire/tensorwire/float8"
	"github.com/tensorwire/tensorwire/subbyte"
)

// FromArray converts an Array to a tensor record.
//
// Numeric elements are serialized to the raw byte buffer in wire
// (little-endian) order, with 4-bit values packed two per byte.
// Strings become the length-prefixed string field; complex elements
// become alternating (real, imaginary) scalars in the float or double
// field, the one matching the component width.
func (c *Codec) FromArray(arr Array) (*TensorRecord, error) {
	dt := arr.dataType
	if err := dt.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	if dt == dtype.Undefined {
		return nil, fmt.Errorf("%w: array has no wire data type", ErrUnsupported)
	}

	rec := &TensorRecord{
		Dims:     copyDims(arr.shape),
		DataType: dt,
		Name:     arr.name,
	}

	if arr.data == nil {
		if dt != dtype.String && dt != dtype.Complex64 && dt != dtype.Complex128 {
			rec.RawData = []byte{}
		}
		return rec, nil
	}

	switch dt {
	case dtype.String:
		sd, err := encodeStringData(arr.data)
		if err != nil {
			return nil, err
		}
		rec.StringData = sd
		return rec, nil
	case dtype.Complex64:
		v, err := castSlice[complex64](arr.data)
		if err != nil {
			return nil, err
		}
		rec.FloatData = interleaveComplex64(v)
		return rec, nil
	case dtype.Complex128:
		v, err := castSlice[complex128](arr.data)
		if err != nil {
			return nil, err
		}
		rec.DoubleData = interleaveComplex128(v)
		return rec, nil
	}

	raw, err := c.encodeRawData(dt, arr.data)
	if err != nil {
		return nil, err
	}
	rec.RawData = raw
	if !isLittleEndian(c.order) {
		// The buffer was written in host order: swap it into the wire
		// (little-endian) layout.
		if err = ConvertEndian(rec); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

func (c *Codec) encodeRawData(dt dtype.DataType, data any) ([]byte, error) {
	switch dt {
	case dtype.Bool:
		v, err := castSlice[bool](data)
		if err != nil {
			return nil, err
		}
		out := make([]byte, len(v))
		for i, b := range v {
			if b {
				out[i] = 1
			}
		}
		return out, nil
	case dtype.Uint8:
		v, err := castSlice[uint8](data)
		if err != nil {
			return nil, err
		}
		out := make([]byte, len(v))
		copy(out, v)
		return out, nil
	case dtype.Int8:
		v, err := castSlice[int8](data)
		if err != nil {
			return nil, err
		}
		out := make([]byte, len(v))
		for i, x := range v {
			out[i] = byte(x)
		}
		return out, nil
	case dtype.Uint16:
		v, err := castSlice[uint16](data)
		if err != nil {
			return nil, err
		}
		out := make([]byte, len(v)*2)
		for i, x := range v {
			c.order.PutUint16(out[i*2:], x)
		}
		return out, nil
	case dtype.Int16:
		v, err := castSlice[int16](data)
		if err != nil {
			return nil, err
		}
		out := make([]byte, len(v)*2)
		for i, x := range v {
			c.order.PutUint16(out[i*2:], uint16(x))
		}
		return out, nil
	case dtype.Float16:
		v, err := castSlice[float16.F16](data)
		if err != nil {
			return nil, err
		}
		out := make([]byte, len(v)*2)
		for i, x := range v {
			c.order.PutUint16(out[i*2:], uint16(x))
		}
		return out, nil
	case dtype.BFloat16:
		v, err := castSlice[float16.BF16](data)
		if err != nil {
			return nil, err
		}
		out := make([]byte, len(v)*2)
		for i, x := range v {
			c.order.PutUint16(out[i*2:], uint16(x))
		}
		return out, nil
	case dtype.Uint32:
		v, err := castSlice[uint32](data)
		if err != nil {
			return nil, err
		}
		out := make([]byte, len(v)*4)
		for i, x := range v {
			c.order.PutUint32(out[i*4:], x)
		}
		return out, nil
	case dtype.Int32:
		v, err := castSlice[int32](data)
		if err != nil {
			return nil, err
		}
		out := make([]byte, len(v)*4)
		for i, x := range v {
			c.order.PutUint32(out[i*4:], uint32(x))
		}
		return out, nil
	case dtype.Float:
		v, err := castSlice[float32](data)
		if err != nil {
			return nil, err
		}
		out := make([]byte, len(v)*4)
		for i, x := range v {
			c.order.PutUint32(out[i*4:], math.Float32bits(x))
		}
		return out, nil
	case dtype.Uint64:
		v, err := castSlice[uint64](data)
		if err != nil {
			return nil, err
		}
		out := make([]byte, len(v)*8)
		for i, x := range v {
			c.order.PutUint64(out[i*8:], x)
		}
		return out, nil
	case dtype.Int64:
		v, err := castSlice[int64](data)
		if err != nil {
			return nil, err
		}
		out := make([]byte, len(v)*8)
		for i, x := range v {
			c.order.PutUint64(out[i*8:], uint64(x))
		}
		return out, nil
	case dtype.Double:
		v, err := castSlice[float64](data)
		if err != nil {
			return nil, err
		}
		out := make([]byte, len(v)*8)
		for i, x := range v {
			c.order.PutUint64(out[i*8:], math.Float64bits(x))
		}
		return out, nil
	case dtype.Float8E4M3FN:
		v, err := castSlice[float8.E4M3FN](data)
		if err != nil {
			return nil, err
		}
		return float8Bytes(v), nil
	case dtype.Float8E4M3FNUZ:
		v, err := castSlice[float8.E4M3FNUZ](data)
		if err != nil {
			return nil, err
		}
		return float8Bytes(v), nil
	case dtype.Float8E5M2:
		v, err := castSlice[float8.E5M2](data)
		if err != nil {
			return nil, err
		}
		return float8Bytes(v), nil
	case dtype.Float8E5M2FNUZ:
		v, err := castSlice[float8.E5M2FNUZ](data)
		if err != nil {
			return nil, err
		}
		return float8Bytes(v), nil
	case dtype.Uint4:
		v, err := castSlice[uint8](data)
		if err != nil {
			return nil, err
		}
		return subbyte.PackUint4(v), nil
	case dtype.Int4:
		v, err := castSlice[int8](data)
		if err != nil {
			return nil, err
		}
		return subbyte.PackInt4(v), nil
	}
	return nil, fmt.Errorf("%w: no raw-data encoding for DataType %s", ErrUnsupported, dt)
}

func encodeStringData(data any) ([][]byte, error) {
	switch v := data.(type) {
	case []string:
		out := make([][]byte, len(v))
		for i, s := range v {
			out[i] = []byte(s)
		}
		return out, nil
	case [][]byte:
		out := make([][]byte, len(v))
		for i, b := range v {
			out[i] = append([]byte(nil), b...)
		}
		return out, nil
	case []any:
		out := make([][]byte, 0, len(v))
		for _, e := range v {
			switch x := e.(type) {
			case string:
				out = append(out, []byte(x))
			case []byte:
				out = append(out, append([]byte(nil), x...))
			case []string:
				for _, s := range x {
					out = append(out, []byte(s))
				}
			case [][]byte:
				for _, b := range x {
					out = append(out, append([]byte(nil), b...))
				}
			default:
				return nil, fmt.Errorf("%w: unrecognized object %T in the string array, expected a string or byte string", ErrUnsupported, e)
			}
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: expected a string array to hold []string, [][]byte or []any, actual %T", ErrTypeMismatch, data)
}

// interleaveComplex64 flattens complex values to alternating
// (real, imaginary) scalars, in storage order.
func interleaveComplex64(v []complex64) []float32 {
	out := make([]float32, 0, len(v)*2)
	for _, x := range v {
		out = append(out, real(x), imag(x))
	}
	return out
}

func interleaveComplex128(v []complex128) []float64 {
	out := make([]float64, 0, len(v)*2)
	for _, x := range v {
		out = append(out, real(x), imag(x))
	}
	return out
}

func float8Bytes[T float8.E4M3FN | float8.E4M3FNUZ | float8.E5M2 | float8.E5M2FNUZ](v []T) []byte {
	out := make([]byte, len(v))
	for i, x := range v {
		out[i] = byte(x)
	}
	return out
}

func castSlice[T any](data any) ([]T, error) {
	v, ok := data.([]T)
	if !ok {
		return nil, fmt.Errorf("%w: expected data of type %T, actual %T", ErrTypeMismatch, v, data)
	}
	return v, nil
}
