// Copyright 2026 The Tensorwire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensorwire

import (
	"github.com/tensorwire/tensorwire/dtype"
)

// DataLocation tells where the payload of a tensor record lives.
type DataLocation int32

const (
	// LocationDefault means the payload is carried inline by the record.
	LocationDefault DataLocation = iota
	// LocationExternal means the payload lives in an external file
	// described by the record's external-data entries.
	LocationExternal
)

// Segment describes a slice of a larger tensor. Segmented records are
// not supported by decoding; the field exists so they can be detected
// and rejected.
type Segment struct {
	Begin int64 `json:"begin,omitempty"`
	End   int64 `json:"end,omitempty"`
}

// ExternalDataEntry is one key/value pair of a record's external-data
// description. Recognized keys are "location", "offset", "length" and
// "checksum".
type ExternalDataEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// TensorRecord is the wire-level form of a tensor.
//
// The payload is carried in exactly one of: RawData (little-endian
// bytes regardless of host order), one of the typed data fields
// (FloatData, Int32Data, StringData, Int64Data, DoubleData,
// Uint64Data, selected by the storage class of DataType), or an
// external-data reference resolved before decoding.
type TensorRecord struct {
	// Dims is the shape of the tensor.
	Dims []int64 `json:"dims,omitempty"`
	// DataType is the element-type discriminant.
	DataType dtype.DataType `json:"dataType"`
	// Segment, when present, marks the record as a slice of a larger
	// tensor.
	Segment *Segment `json:"segment,omitempty"`

	// FloatData holds float32 elements, and the interleaved
	// (real, imaginary) components of complex64 elements.
	FloatData []float32 `json:"floatData,omitempty"`
	// Int32Data holds int32 elements, the widened storage of all
	// narrower integer and boolean elements, the widened bit patterns
	// of float16, bfloat16 and float8 elements, and the packed bytes
	// of 4-bit elements.
	Int32Data []int32 `json:"int32Data,omitempty"`
	// StringData holds UTF-8 byte strings.
	StringData [][]byte `json:"stringData,omitempty"`
	// Int64Data holds int64 elements.
	Int64Data []int64 `json:"int64Data,omitempty"`
	// DoubleData holds float64 elements, and the interleaved
	// (real, imaginary) components of complex128 elements.
	DoubleData []float64 `json:"doubleData,omitempty"`
	// Uint64Data holds uint32 and uint64 elements.
	Uint64Data []uint64 `json:"uint64Data,omitempty"`

	// Name is an optional label. It is carried through encoding and
	// decoding but never interpreted.
	Name string `json:"name,omitempty"`

	// RawData is the serialized payload in little-endian byte order.
	// A non-nil zero-length value counts as present.
	RawData []byte `json:"rawData,omitempty"`

	// ExternalData describes where to load the payload from when
	// DataLocation is LocationExternal.
	ExternalData []ExternalDataEntry `json:"externalData,omitempty"`
	// DataLocation tells whether the payload is inline or external.
	DataLocation DataLocation `json:"dataLocation,omitempty"`
}

// HasRawData reports whether the raw byte payload is present.
func (r *TensorRecord) HasRawData() bool {
	return r.RawData != nil
}

// UsesExternalData reports whether the payload lives in external storage.
func (r *TensorRecord) UsesExternalData() bool {
	return r.DataLocation == LocationExternal
}

// ElemKind is the element-kind discriminant of sequence and optional
// records. The numeric values match the accepted wire schema.
type ElemKind int32

const (
	// KindUndefined marks an unset element kind; in an optional record
	// it encodes the absent value.
	KindUndefined ElemKind = iota
	// KindTensor marks tensor elements.
	KindTensor
	// KindSparseTensor marks sparse tensor elements (not supported).
	KindSparseTensor
	// KindSequence marks nested sequence elements.
	KindSequence
	// KindMap marks map elements.
	KindMap
	// KindOptional marks optional elements.
	KindOptional
)

var elemKindToString = [...]string{
	KindUndefined:    "UNDEFINED",
	KindTensor:       "TENSOR",
	KindSparseTensor: "SPARSE_TENSOR",
	KindSequence:     "SEQUENCE",
	KindMap:          "MAP",
	KindOptional:     "OPTIONAL",
}

// String returns the wire-schema name of an ElemKind.
func (k ElemKind) String() string {
	if k < KindUndefined || k > KindOptional {
		return "invalid ElemKind"
	}
	return elemKindToString[k]
}

// SequenceRecord is the wire-level form of an ordered list of
// homogeneous values. Exactly one of the value fields is populated,
// selected by ElemType.
type SequenceRecord struct {
	Name     string   `json:"name,omitempty"`
	ElemType ElemKind `json:"elemType"`

	TensorValues   []*TensorRecord   `json:"tensorValues,omitempty"`
	SequenceValues []*SequenceRecord `json:"sequenceValues,omitempty"`
	MapValues      []*MapRecord      `json:"mapValues,omitempty"`
}

// MapRecord is the wire-level form of a map: two parallel ordered
// lists of keys and values. String keys live in StringKeys; keys of
// any fixed-width integer kind live widened in Keys.
type MapRecord struct {
	Name    string         `json:"name,omitempty"`
	KeyType dtype.DataType `json:"keyType"`

	Keys       []int64  `json:"keys,omitempty"`
	StringKeys []string `json:"stringKeys,omitempty"`

	Values *SequenceRecord `json:"values,omitempty"`
}

// OptionalRecord is the wire-level form of an optional value.
// ElemType KindUndefined encodes the absent value; otherwise exactly
// one of the value fields is populated.
type OptionalRecord struct {
	Name     string   `json:"name,omitempty"`
	ElemType ElemKind `json:"elemType"`

	TensorValue   *TensorRecord   `json:"tensorValue,omitempty"`
	SequenceValue *SequenceRecord `json:"sequenceValue,omitempty"`
	MapValue      *MapRecord      `json:"mapValue,omitempty"`
	OptionalValue *OptionalRecord `json:"optionalValue,omitempty"`
}
