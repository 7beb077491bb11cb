// Copyright 2026 The Tensorwire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dtype

import (
	"fmt"
)

// DataType is the element-type discriminant of a tensor record.
//
// The numeric values match the accepted wire schema and must not be
// reordered.
type DataType int32

const (
	// Undefined marks a record whose element type was never set.
	// Records carrying this value cannot be decoded.
	Undefined DataType = iota
	// Float represents a 32-bit IEEE floating point data type.
	Float
	// Uint8 represents an 8-bit unsigned integer data type.
	Uint8
	// Int8 represents an 8-bit signed integer data type.
	Int8
	// Uint16 represents a 16-bit unsigned integer data type.
	Uint16
	// Int16 represents a 16-bit signed integer data type.
	Int16
	// Int32 represents a 32-bit signed integer data type.
	Int32
	// Int64 represents a 64-bit signed integer data type.
	Int64
	// String represents a UTF-8 byte-string data type.
	String
	// Bool represents an 8-bit boolean data type.
	Bool
	// Float16 represents a 16-bit IEEE half-precision floating point data type.
	Float16
	// Double represents a 64-bit IEEE floating point data type.
	Double
	// Uint32 represents a 32-bit unsigned integer data type.
	Uint32
	// Uint64 represents a 64-bit unsigned integer data type.
	Uint64
	// Complex64 represents a complex data type with float32 components.
	Complex64
	// Complex128 represents a complex data type with float64 components.
	Complex128
	// BFloat16 represents a 16-bit brain floating point data type.
	BFloat16
	// Float8E4M3FN represents an 8-bit float with 4 exponent bits,
	// 3 mantissa bits, no infinities.
	Float8E4M3FN
	// Float8E4M3FNUZ represents an 8-bit float with 4 exponent bits,
	// 3 mantissa bits, no infinities and no negative zero.
	Float8E4M3FNUZ
	// Float8E5M2 represents an 8-bit float with 5 exponent bits and
	// 2 mantissa bits, following IEEE special-value conventions.
	Float8E5M2
	// Float8E5M2FNUZ represents an 8-bit float with 5 exponent bits,
	// 2 mantissa bits, no infinities and no negative zero.
	Float8E5M2FNUZ
	// Uint4 represents a 4-bit unsigned integer data type,
	// packed two elements per byte.
	Uint4
	// Int4 represents a 4-bit signed integer data type,
	// packed two elements per byte.
	Int4
)

var (
	dataTypeToString = [...]string{
		Undefined:      "UNDEFINED",
		Float:          "FLOAT",
		Uint8:          "UINT8",
		Int8:           "INT8",
		Uint16:         "UINT16",
		Int16:          "INT16",
		Int32:          "INT32",
		Int64:          "INT64",
		String:         "STRING",
		Bool:           "BOOL",
		Float16:        "FLOAT16",
		Double:         "DOUBLE",
		Uint32:         "UINT32",
		Uint64:         "UINT64",
		Complex64:      "COMPLEX64",
		Complex128:     "COMPLEX128",
		BFloat16:       "BFLOAT16",
		Float8E4M3FN:   "FLOAT8E4M3FN",
		Float8E4M3FNUZ: "FLOAT8E4M3FNUZ",
		Float8E5M2:     "FLOAT8E5M2",
		Float8E5M2FNUZ: "FLOAT8E5M2FNUZ",
		Uint4:          "UINT4",
		Int4:           "INT4",
	}

	// Size of the raw storage granule, in bytes. The sub-byte types
	// pack two elements per granule; strings have no raw encoding.
	dataTypeToSize = [...]int{
		Undefined:      0,
		Float:          4,
		Uint8:          1,
		Int8:           1,
		Uint16:         2,
		Int16:          2,
		Int32:          4,
		Int64:          8,
		String:         0,
		Bool:           1,
		Float16:        2,
		Double:         8,
		Uint32:         4,
		Uint64:         8,
		Complex64:      8,
		Complex128:     16,
		BFloat16:       2,
		Float8E4M3FN:   1,
		Float8E4M3FNUZ: 1,
		Float8E5M2:     1,
		Float8E5M2FNUZ: 1,
		Uint4:          1,
		Int4:           1,
	}

	stringToDataType = make(map[string]DataType, len(dataTypeToString))
)

func init() {
	for dt, s := range dataTypeToString {
		stringToDataType[s] = DataType(dt)
	}
}

// Validate returns an error if the DataType is not a known wire
// discriminant, otherwise nil. Undefined is a known discriminant:
// it validates successfully, although it is rejected by decoding.
func (dt DataType) Validate() error {
	if dt < Undefined || dt > Int4 {
		return fmt.Errorf("invalid DataType(%d)", dt)
	}
	return nil
}

// String returns the wire-schema name of a DataType.
func (dt DataType) String() string {
	if err := dt.Validate(); err != nil {
		return err.Error()
	}
	return dataTypeToString[dt]
}

// Size returns the size in bytes of one raw storage granule of this
// data type, or -1 if the DataType value is invalid.
//
// For Uint4 and Int4 the granule holds two elements; String and
// Undefined have no raw encoding and report zero.
func (dt DataType) Size() int {
	if err := dt.Validate(); err != nil {
		return -1
	}
	return dataTypeToSize[dt]
}

// MarshalJSON satisfies json.Marshaler interface.
func (dt DataType) MarshalJSON() ([]byte, error) {
	if err := dt.Validate(); err != nil {
		return nil, err
	}
	return []byte(`"` + dataTypeToString[dt] + `"`), nil
}

// UnmarshalJSON satisfies json.Unmarshaler interface.
func (dt *DataType) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("failed to JSON-unmarshal DataType from value %q", s)
	}
	v, ok := stringToDataType[s[1:len(s)-1]]
	if !ok {
		return fmt.Errorf("failed to JSON-unmarshal DataType from value %q", s)
	}
	*dt = v
	return nil
}

// MarshalText satisfies encoding.TextMarshaler interface.
func (dt DataType) MarshalText() ([]byte, error) {
	if err := dt.Validate(); err != nil {
		return nil, err
	}
	return []byte(dataTypeToString[dt]), nil
}

// UnmarshalText satisfies encoding.TextUnmarshaler interface.
func (dt *DataType) UnmarshalText(text []byte) error {
	v, ok := stringToDataType[string(text)]
	if !ok {
		return fmt.Errorf("failed to text-unmarshal DataType from value %q", text)
	}
	*dt = v
	return nil
}
