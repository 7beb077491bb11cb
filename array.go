// Copyright 2026 The Tensorwire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensorwire

import (
	"fmt"

	"github.com/tensorwire/tensorwire/dtype"
	"github.com/tensorwire/tensorwire/float16"
	"github.com/tensorwire/tensorwire/float8"
)

// An Array is a shape-carrying, strongly-typed value fully loaded in
// memory.
//
// For a correctly formed Array, the value of DType and the type of Data
// must match each other, according to the following pairs:
//
//	DType          | Data type
//	---------------+---------------------
//	Float          | []float32
//	Uint8          | []uint8
//	Int8           | []int8
//	Uint16         | []uint16
//	Int16          | []int16
//	Int32          | []int32
//	Int64          | []int64
//	String         | []string, [][]byte or []any
//	Bool           | []bool
//	Float16        | []float16.F16
//	Double         | []float64
//	Uint32         | []uint32
//	Uint64         | []uint64
//	Complex64      | []complex64
//	Complex128     | []complex128
//	BFloat16       | []float16.BF16
//	Float8E4M3FN   | []float8.E4M3FN
//	Float8E4M3FNUZ | []float8.E4M3FNUZ
//	Float8E5M2     | []float8.E5M2
//	Float8E5M2FNUZ | []float8.E5M2FNUZ
//	Uint4          | []uint8 (unpacked, one element per value)
//	Int4           | []int8 (unpacked, one element per value)
//
// The 16-bit and 8-bit float types hold raw bit patterns; an Array
// carrying them can be encoded byte-for-byte without any float32
// conversion. For String, a []any value may mix strings, byte strings
// and one-level-nested slices of either; the nesting is flattened
// during encoding.
type Array struct {
	name     string
	dataType dtype.DataType
	shape    []int64
	data     any
}

// NewArray performs validity checks over the given properties and
// returns an Array with those properties if validation succeeds,
// otherwise an error.
//
// An empty name is allowed. A nil or empty shape implies a scalar.
// The shape must not contain negative values, the type of data must
// match dt according to the pairs listed on Array documentation, and
// the number of data elements must match the shape product.
//
// Since data can take a large amount of memory its value is NOT
// copied; accidental modifications after construction can corrupt a
// later encoding.
func NewArray(name string, dt dtype.DataType, shape []int64, data any) (Array, error) {
	dataLen, err := checkTypesAndGetDataLen(dt, data)
	if err != nil {
		return Array{}, err
	}
	size, err := shapeSize(shape)
	if err != nil {
		return Array{}, err
	}
	if size != dataLen {
		return Array{}, fmt.Errorf("%w: the size computed from shape (%d) does not match data length (%d)", ErrShape, size, dataLen)
	}
	return Array{
		name:     name,
		dataType: dt,
		shape:    copyDims(shape),
		data:     data,
	}, nil
}

// The Name of the array.
func (a Array) Name() string {
	return a.name
}

// DType returns the data type of the array.
func (a Array) DType() dtype.DataType {
	return a.dataType
}

// The Shape of the array. A nil shape implies a scalar.
//
// The value returned is a copy, to prevent tampering.
func (a Array) Shape() []int64 {
	return copyDims(a.shape)
}

// The Data of the array. Possible values are documented on the main
// Array type.
//
// The value returned is NOT a copy: any change to its content will
// affect the Array too.
func (a Array) Data() any {
	return a.data
}

func checkTypesAndGetDataLen(dt dtype.DataType, data any) (int, error) {
	switch dt {
	case dtype.Float:
		return resolveDataLen[float32](dt, data)
	case dtype.Uint8, dtype.Uint4:
		return resolveDataLen[uint8](dt, data)
	case dtype.Int8, dtype.Int4:
		return resolveDataLen[int8](dt, data)
	case dtype.Uint16:
		return resolveDataLen[uint16](dt, data)
	case dtype.Int16:
		return resolveDataLen[int16](dt, data)
	case dtype.Int32:
		return resolveDataLen[int32](dt, data)
	case dtype.Int64:
		return resolveDataLen[int64](dt, data)
	case dtype.String:
		return resolveStringDataLen(data)
	case dtype.Bool:
		return resolveDataLen[bool](dt, data)
	case dtype.Float16:
		return resolveDataLen[float16.F16](dt, data)
	case dtype.Double:
		return resolveDataLen[float64](dt, data)
	case dtype.Uint32:
		return resolveDataLen[uint32](dt, data)
	case dtype.Uint64:
		return resolveDataLen[uint64](dt, data)
	case dtype.Complex64:
		return resolveDataLen[complex64](dt, data)
	case dtype.Complex128:
		return resolveDataLen[complex128](dt, data)
	case dtype.BFloat16:
		return resolveDataLen[float16.BF16](dt, data)
	case dtype.Float8E4M3FN:
		return resolveDataLen[float8.E4M3FN](dt, data)
	case dtype.Float8E4M3FNUZ:
		return resolveDataLen[float8.E4M3FNUZ](dt, data)
	case dtype.Float8E5M2:
		return resolveDataLen[float8.E5M2](dt, data)
	case dtype.Float8E5M2FNUZ:
		return resolveDataLen[float8.E5M2FNUZ](dt, data)
	}
	return 0, fmt.Errorf("%w: invalid or undefined DataType %s", ErrUnsupported, dt)
}

func resolveDataLen[T any](dt dtype.DataType, data any) (int, error) {
	if data == nil {
		return 0, nil
	}
	y, ok := data.([]T)
	if !ok {
		return 0, fmt.Errorf("%w: expected DataType %s to match data type %T, actual data type %T", ErrTypeMismatch, dt, y, data)
	}
	return len(y), nil
}

func resolveStringDataLen(data any) (int, error) {
	switch v := data.(type) {
	case nil:
		return 0, nil
	case []string:
		return len(v), nil
	case [][]byte:
		return len(v), nil
	case []any:
		// Count one-level-nested slices by their flattened length, the
		// way encoding will store them.
		n := 0
		for _, e := range v {
			switch x := e.(type) {
			case string, []byte:
				n++
			case []string:
				n += len(x)
			case [][]byte:
				n += len(x)
			default:
				return 0, fmt.Errorf("%w: unrecognized object %T in the string array, expected a string or byte string", ErrUnsupported, e)
			}
		}
		return n, nil
	}
	return 0, fmt.Errorf("%w: expected DataType STRING to match data type []string, [][]byte or []any, actual data type %T", ErrTypeMismatch, data)
}
