// Copyright 2026 The Tensorwire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensorwire

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/tensorwire/tensorwire/dtype"
	"github.com/tensorwire/tensorwire/float16"
	"github.com/tensorwire/tensorwire/float8"
	"github.com/tensorwire/tensorwire/subbyte"
)

// ToArray converts a tensor record to an Array.
//
// The payload is taken from the raw byte buffer when present,
// otherwise from the typed data field selected by the record's data
// type. An externally stored payload is materialized first through the
// codec's external-data loader. Raw little-endian bytes are normalized
// to the host byte order in place on the record before interpretation.
//
// Elements carried as float8 or bfloat16 bit patterns are widened
// value by value: the returned Array holds float32 data and reports
// the Float data type for them. Packed 4-bit payloads are unpacked to
// one element per value.
func (c *Codec) ToArray(rec *TensorRecord) (Array, error) {
	if rec == nil {
		return Array{}, fmt.Errorf("%w: nil tensor record", ErrUnsupported)
	}
	if rec.Segment != nil {
		return Array{}, fmt.Errorf("%w: segmented tensor records cannot be decoded", ErrUnsupported)
	}
	if err := rec.DataType.Validate(); err != nil {
		return Array{}, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	if rec.DataType == dtype.Undefined {
		return Array{}, fmt.Errorf("%w: the element type of the tensor record is not defined", ErrUnsupported)
	}

	count, err := shapeSize(rec.Dims)
	if err != nil {
		return Array{}, err
	}

	if rec.DataType == dtype.String {
		return c.decodeStrings(rec, count)
	}

	if rec.UsesExternalData() && !rec.HasRawData() {
		if err = c.loader(rec, c.baseDir); err != nil {
			return Array{}, err
		}
	}

	var data any
	if rec.HasRawData() {
		data, err = c.decodeRawData(rec, count)
	} else {
		data, err = decodeTypedFields(rec, count)
	}
	if err != nil {
		return Array{}, err
	}

	return Array{
		name:     rec.Name,
		dataType: decodedDataType(rec.DataType),
		shape:    copyDims(rec.Dims),
		data:     data,
	}, nil
}

// decodedDataType maps the wire discriminant to the data type of the
// decoded elements: float8 and bfloat16 widen to float32, every other
// type decodes to itself.
func decodedDataType(dt dtype.DataType) dtype.DataType {
	switch dt {
	case dtype.BFloat16, dtype.Float8E4M3FN, dtype.Float8E4M3FNUZ,
		dtype.Float8E5M2, dtype.Float8E5M2FNUZ:
		return dtype.Float
	}
	return dt
}

func (c *Codec) decodeStrings(rec *TensorRecord, count int) (Array, error) {
	if err := checkElemCount(len(rec.StringData), count); err != nil {
		return Array{}, err
	}
	out := make([]string, len(rec.StringData))
	for i, b := range rec.StringData {
		if !utf8.Valid(b) {
			return Array{}, fmt.Errorf("string element %d is not valid UTF-8", i)
		}
		out[i] = string(b)
	}
	return Array{
		name:     rec.Name,
		dataType: dtype.String,
		shape:    copyDims(rec.Dims),
		data:     out,
	}, nil
}

func (c *Codec) decodeRawData(rec *TensorRecord, count int) (any, error) {
	if !isLittleEndian(c.order) {
		// The wire payload is little-endian: normalize it to the host
		// order, in place, before interpreting it.
		if err := ConvertEndian(rec); err != nil {
			return nil, err
		}
	}
	raw := rec.RawData

	switch rec.DataType {
	case dtype.BFloat16:
		if err := checkElemCount(len(raw), count*2); err != nil {
			return nil, err
		}
		out := make([]float32, count)
		for i := range out {
			out[i] = float16.BF16(c.order.Uint16(raw[i*2:])).Float32()
		}
		return out, nil
	case dtype.Float8E4M3FN:
		return decodeFloat8Raw(raw, count, func(b int32) (float32, error) {
			return float8.DecodeE4M3(b, true, false)
		})
	case dtype.Float8E4M3FNUZ:
		return decodeFloat8Raw(raw, count, func(b int32) (float32, error) {
			return float8.DecodeE4M3(b, true, true)
		})
	case dtype.Float8E5M2:
		return decodeFloat8Raw(raw, count, func(b int32) (float32, error) {
			return float8.DecodeE5M2(b, false, false)
		})
	case dtype.Float8E5M2FNUZ:
		return decodeFloat8Raw(raw, count, func(b int32) (float32, error) {
			return float8.DecodeE5M2(b, true, true)
		})
	case dtype.Uint4:
		vals, err := subbyte.UnpackUint4(raw, count)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrShape, err)
		}
		return vals, nil
	case dtype.Int4:
		vals, err := subbyte.UnpackInt4(raw, count)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrShape, err)
		}
		return vals, nil
	}
	return interpretRawData(raw, rec.DataType, count, c.order)
}

func decodeFloat8Raw(raw []byte, count int, dec func(int32) (float32, error)) ([]float32, error) {
	if err := checkElemCount(len(raw), count); err != nil {
		return nil, err
	}
	out := make([]float32, len(raw))
	for i, b := range raw {
		f, err := dec(int32(b))
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

// interpretRawData reinterprets raw bytes under the natural width of
// dt, reading multi-byte elements with the given (host) byte order.
func interpretRawData(raw []byte, dt dtype.DataType, count int, order binary.ByteOrder) (any, error) {
	if want := count * dt.Size(); len(raw) != want {
		return nil, fmt.Errorf("%w: %d raw bytes do not fit the declared dimensions (want %d)", ErrShape, len(raw), want)
	}

	switch dt {
	case dtype.Bool:
		out := make([]bool, count)
		for i, b := range raw {
			out[i] = b != 0
		}
		return out, nil
	case dtype.Uint8:
		out := make([]uint8, count)
		copy(out, raw)
		return out, nil
	case dtype.Int8:
		out := make([]int8, count)
		for i, b := range raw {
			out[i] = int8(b)
		}
		return out, nil
	case dtype.Uint16:
		return rawTo16[uint16](raw, order), nil
	case dtype.Int16:
		return rawTo16[int16](raw, order), nil
	case dtype.Float16:
		return rawTo16[float16.F16](raw, order), nil
	case dtype.Uint32:
		return rawTo32[uint32](raw, order), nil
	case dtype.Int32:
		return rawTo32[int32](raw, order), nil
	case dtype.Float:
		out := make([]float32, count)
		for i := range out {
			out[i] = math.Float32frombits(order.Uint32(raw[i*4:]))
		}
		return out, nil
	case dtype.Uint64:
		return rawTo64[uint64](raw, order), nil
	case dtype.Int64:
		return rawTo64[int64](raw, order), nil
	case dtype.Double:
		out := make([]float64, count)
		for i := range out {
			out[i] = math.Float64frombits(order.Uint64(raw[i*8:]))
		}
		return out, nil
	case dtype.Complex64:
		out := make([]complex64, count)
		for i := range out {
			re := math.Float32frombits(order.Uint32(raw[i*8:]))
			im := math.Float32frombits(order.Uint32(raw[i*8+4:]))
			out[i] = complex(re, im)
		}
		return out, nil
	case dtype.Complex128:
		out := make([]complex128, count)
		for i := range out {
			re := math.Float64frombits(order.Uint64(raw[i*16:]))
			im := math.Float64frombits(order.Uint64(raw[i*16+8:]))
			out[i] = complex(re, im)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: no raw-data decoding for DataType %s", ErrUnsupported, dt)
}

func rawTo16[T uint16 | int16 | float16.F16](raw []byte, order binary.ByteOrder) []T {
	out := make([]T, len(raw)/2)
	for i := range out {
		out[i] = T(order.Uint16(raw[i*2:]))
	}
	return out
}

func rawTo32[T uint32 | int32](raw []byte, order binary.ByteOrder) []T {
	out := make([]T, len(raw)/4)
	for i := range out {
		out[i] = T(order.Uint32(raw[i*4:]))
	}
	return out
}

func rawTo64[T uint64 | int64](raw []byte, order binary.ByteOrder) []T {
	out := make([]T, len(raw)/8)
	for i := range out {
		out[i] = T(order.Uint64(raw[i*8:]))
	}
	return out
}

// decodeTypedFields interprets the legacy typed data field selected by
// the record's data type. The 16-bit floats, bfloat16, the float8
// variants and the packed 4-bit values are all stored widened inside
// the 32-bit integer field; each stored value is narrowed to its
// natural bit width before the corresponding decoder is applied.
func decodeTypedFields(rec *TensorRecord, count int) (any, error) {
	switch rec.DataType {
	case dtype.Float16:
		if err := checkElemCount(len(rec.Int32Data), count); err != nil {
			return nil, err
		}
		out := make([]float16.F16, count)
		for i, v := range rec.Int32Data {
			out[i] = float16.F16(uint16(v))
		}
		return out, nil
	case dtype.BFloat16:
		if err := checkElemCount(len(rec.Int32Data), count); err != nil {
			return nil, err
		}
		out := make([]float32, count)
		for i, v := range rec.Int32Data {
			out[i] = float16.BF16(uint16(v)).Float32()
		}
		return out, nil
	case dtype.Float8E4M3FN:
		return decodeFloat8Field(rec.Int32Data, count, func(b int32) (float32, error) {
			return float8.DecodeE4M3(b, true, false)
		})
	case dtype.Float8E4M3FNUZ:
		return decodeFloat8Field(rec.Int32Data, count, func(b int32) (float32, error) {
			return float8.DecodeE4M3(b, true, true)
		})
	case dtype.Float8E5M2:
		return decodeFloat8Field(rec.Int32Data, count, func(b int32) (float32, error) {
			return float8.DecodeE5M2(b, false, false)
		})
	case dtype.Float8E5M2FNUZ:
		return decodeFloat8Field(rec.Int32Data, count, func(b int32) (float32, error) {
			return float8.DecodeE5M2(b, true, true)
		})
	case dtype.Uint4:
		packed, err := packedBytesFromInt32(rec.Int32Data, count)
		if err != nil {
			return nil, err
		}
		return subbyte.UnpackUint4(packed, count)
	case dtype.Int4:
		packed, err := packedBytesFromInt32(rec.Int32Data, count)
		if err != nil {
			return nil, err
		}
		return subbyte.UnpackInt4(packed, count)
	case dtype.Float:
		if err := checkElemCount(len(rec.FloatData), count); err != nil {
			return nil, err
		}
		out := make([]float32, count)
		copy(out, rec.FloatData)
		return out, nil
	case dtype.Double:
		if err := checkElemCount(len(rec.DoubleData), count); err != nil {
			return nil, err
		}
		out := make([]float64, count)
		copy(out, rec.DoubleData)
		return out, nil
	case dtype.Complex64:
		if err := checkElemCount(len(rec.FloatData), 2*count); err != nil {
			return nil, err
		}
		return combinePairsToComplex64(rec.FloatData), nil
	case dtype.Complex128:
		if err := checkElemCount(len(rec.DoubleData), 2*count); err != nil {
			return nil, err
		}
		return combinePairsToComplex128(rec.DoubleData), nil
	case dtype.Int64:
		if err := checkElemCount(len(rec.Int64Data), count); err != nil {
			return nil, err
		}
		out := make([]int64, count)
		copy(out, rec.Int64Data)
		return out, nil
	case dtype.Uint64:
		if err := checkElemCount(len(rec.Uint64Data), count); err != nil {
			return nil, err
		}
		out := make([]uint64, count)
		copy(out, rec.Uint64Data)
		return out, nil
	case dtype.Uint32:
		if err := checkElemCount(len(rec.Uint64Data), count); err != nil {
			return nil, err
		}
		return narrow64[uint32](rec.Uint64Data), nil
	case dtype.Int32:
		if err := checkElemCount(len(rec.Int32Data), count); err != nil {
			return nil, err
		}
		out := make([]int32, count)
		copy(out, rec.Int32Data)
		return out, nil
	case dtype.Int16:
		if err := checkElemCount(len(rec.Int32Data), count); err != nil {
			return nil, err
		}
		return narrow32[int16](rec.Int32Data), nil
	case dtype.Uint16:
		if err := checkElemCount(len(rec.Int32Data), count); err != nil {
			return nil, err
		}
		return narrow32[uint16](rec.Int32Data), nil
	case dtype.Int8:
		if err := checkElemCount(len(rec.Int32Data), count); err != nil {
			return nil, err
		}
		return narrow32[int8](rec.Int32Data), nil
	case dtype.Uint8:
		if err := checkElemCount(len(rec.Int32Data), count); err != nil {
			return nil, err
		}
		return narrow32[uint8](rec.Int32Data), nil
	case dtype.Bool:
		if err := checkElemCount(len(rec.Int32Data), count); err != nil {
			return nil, err
		}
		out := make([]bool, count)
		for i, v := range rec.Int32Data {
			out[i] = v != 0
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: no typed-field decoding for DataType %s", ErrUnsupported, rec.DataType)
}

func decodeFloat8Field(vals []int32, count int, dec func(int32) (float32, error)) ([]float32, error) {
	if err := checkElemCount(len(vals), count); err != nil {
		return nil, err
	}
	out := make([]float32, len(vals))
	for i, v := range vals {
		f, err := dec(v)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

func packedBytesFromInt32(vals []int32, count int) ([]byte, error) {
	if err := checkElemCount(len(vals), (count+1)/2); err != nil {
		return nil, err
	}
	out := make([]byte, len(vals))
	for i, v := range vals {
		out[i] = byte(v)
	}
	return out, nil
}

func narrow32[T int8 | uint8 | int16 | uint16](vals []int32) []T {
	out := make([]T, len(vals))
	for i, v := range vals {
		out[i] = T(v)
	}
	return out
}

func narrow64[T uint32](vals []uint64) []T {
	out := make([]T, len(vals))
	for i, v := range vals {
		out[i] = T(v)
	}
	return out
}

// combinePairsToComplex64 converts alternating (real, imaginary)
// scalars to complex values, in storage order.
func combinePairsToComplex64(vals []float32) []complex64 {
	out := make([]complex64, len(vals)/2)
	for i := range out {
		out[i] = complex(vals[i*2], vals[i*2+1])
	}
	return out
}

func combinePairsToComplex128(vals []float64) []complex128 {
	out := make([]complex128, len(vals)/2)
	for i := range out {
		out[i] = complex(vals[i*2], vals[i*2+1])
	}
	return out
}

func checkElemCount(got, want int) error {
	if got != want {
		return fmt.Errorf("%w: %d elements do not fit the declared dimensions (want %d)", ErrShape, got, want)
	}
	return nil
}
