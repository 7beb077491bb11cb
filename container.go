// Copyright 2026 The Tensorwire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensorwire

import (
	"fmt"

	"github.com/tensorwire/tensorwire/dtype"
)

// Value is a decoded container element: an Array, a Sequence, a Map or
// an Optional.
type Value interface {
	isValue()
}

func (Array) isValue() {}

// Sequence is an ordered list of homogeneous values.
type Sequence []Value

func (Sequence) isValue() {}

// Map is a decoded map record: two parallel ordered lists of keys and
// values. Keys holds string values or values of a single fixed-width
// integer type; pairing is positional. A slice pair is used instead of
// a Go map so that wire order survives a round trip.
type Map struct {
	Keys   []any
	Values Sequence
}

func (Map) isValue() {}

// Optional wraps a value that may be absent. A nil inner Value encodes
// the absent value.
type Optional struct {
	Value Value
}

func (Optional) isValue() {}

func classify(v Value) (ElemKind, error) {
	switch v.(type) {
	case Array:
		return KindTensor, nil
	case Sequence:
		return KindSequence, nil
	case Map:
		return KindMap, nil
	case Optional:
		return KindOptional, nil
	}
	return KindUndefined, fmt.Errorf("%w: cannot classify value of type %T", ErrUnsupported, v)
}

// ToList converts a sequence record to a Sequence, decoding every
// element recursively.
func (c *Codec) ToList(rec *SequenceRecord) (Sequence, error) {
	if rec == nil {
		return nil, fmt.Errorf("%w: nil sequence record", ErrUnsupported)
	}
	switch rec.ElemType {
	case KindTensor:
		out := make(Sequence, 0, len(rec.TensorValues))
		for _, tr := range rec.TensorValues {
			arr, err := c.ToArray(tr)
			if err != nil {
				return nil, err
			}
			out = append(out, arr)
		}
		return out, nil
	case KindSequence:
		out := make(Sequence, 0, len(rec.SequenceValues))
		for _, sr := range rec.SequenceValues {
			seq, err := c.ToList(sr)
			if err != nil {
				return nil, err
			}
			out = append(out, seq)
		}
		return out, nil
	case KindMap:
		out := make(Sequence, 0, len(rec.MapValues))
		for _, mr := range rec.MapValues {
			m, err := c.ToDict(mr)
			if err != nil {
				return nil, err
			}
			out = append(out, m)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: sequence element kind %s", ErrUnsupported, rec.ElemType)
}

// FromList converts a Sequence to a sequence record. When kind is
// KindUndefined the element kind is inferred from the first element;
// an empty list defaults to KindTensor. Every element must match the
// resulting kind.
func (c *Codec) FromList(list Sequence, name string, kind ElemKind) (*SequenceRecord, error) {
	if kind == KindUndefined {
		if len(list) == 0 {
			kind = KindTensor
		} else {
			var err error
			if kind, err = classify(list[0]); err != nil {
				return nil, err
			}
		}
	}

	rec := &SequenceRecord{Name: name, ElemType: kind}
	for i, v := range list {
		k, err := classify(v)
		if err != nil {
			return nil, err
		}
		if k != kind {
			return nil, fmt.Errorf("%w: sequence element %d is %s, expected %s", ErrTypeMismatch, i, k, kind)
		}
		switch x := v.(type) {
		case Array:
			tr, err := c.FromArray(x)
			if err != nil {
				return nil, err
			}
			rec.TensorValues = append(rec.TensorValues, tr)
		case Sequence:
			sr, err := c.FromList(x, "", KindUndefined)
			if err != nil {
				return nil, err
			}
			rec.SequenceValues = append(rec.SequenceValues, sr)
		case Map:
			mr, err := c.FromDict(x, "")
			if err != nil {
				return nil, err
			}
			rec.MapValues = append(rec.MapValues, mr)
		default:
			return nil, fmt.Errorf("%w: sequence element kind %s", ErrUnsupported, k)
		}
	}
	return rec, nil
}

// ToDict converts a map record to a Map. Integer keys are narrowed
// back from their widened storage to the type named by the record's
// key type; wire order is preserved.
func (c *Codec) ToDict(rec *MapRecord) (Map, error) {
	if rec == nil {
		return Map{}, fmt.Errorf("%w: nil map record", ErrUnsupported)
	}

	var keys []any
	switch rec.KeyType {
	case dtype.String:
		keys = make([]any, len(rec.StringKeys))
		for i, k := range rec.StringKeys {
			keys[i] = k
		}
	case dtype.Int8, dtype.Int16, dtype.Int32, dtype.Int64,
		dtype.Uint8, dtype.Uint16, dtype.Uint32, dtype.Uint64:
		keys = make([]any, len(rec.Keys))
		for i, k := range rec.Keys {
			keys[i] = narrowMapKey(rec.KeyType, k)
		}
	default:
		return Map{}, fmt.Errorf("%w: %s", ErrKeyType, rec.KeyType)
	}

	values, err := c.ToList(rec.Values)
	if err != nil {
		return Map{}, err
	}
	if len(keys) != len(values) {
		return Map{}, fmt.Errorf("%w: %d keys but %d values", ErrLengthMismatch, len(keys), len(values))
	}
	return Map{Keys: keys, Values: values}, nil
}

func narrowMapKey(kt dtype.DataType, k int64) any {
	switch kt {
	case dtype.Int8:
		return int8(k)
	case dtype.Int16:
		return int16(k)
	case dtype.Int32:
		return int32(k)
	case dtype.Uint8:
		return uint8(k)
	case dtype.Uint16:
		return uint16(k)
	case dtype.Uint32:
		return uint32(k)
	case dtype.Uint64:
		return uint64(k)
	}
	return k
}

// FromDict converts a Map to a map record. The key type is taken from
// the first key; all keys must share it. Integer keys are widened to
// 64 bits for storage, string keys are stored as is. An empty map
// cannot be converted, as it pins down no key type.
func (c *Codec) FromDict(m Map, name string) (*MapRecord, error) {
	if len(m.Keys) == 0 {
		return nil, fmt.Errorf("%w: cannot convert an empty map, the key type cannot be determined", ErrUnsupported)
	}

	kt, err := resolveKeyType(m.Keys[0])
	if err != nil {
		return nil, err
	}

	rec := &MapRecord{Name: name, KeyType: kt}
	for i, k := range m.Keys {
		ki, err := resolveKeyType(k)
		if err != nil {
			return nil, err
		}
		if ki != kt {
			return nil, fmt.Errorf("%w: map key %d is %s, expected %s", ErrTypeMismatch, i, ki, kt)
		}
		if kt == dtype.String {
			rec.StringKeys = append(rec.StringKeys, k.(string))
		} else {
			rec.Keys = append(rec.Keys, widenMapKey(k))
		}
	}

	if len(m.Keys) != len(m.Values) {
		return nil, fmt.Errorf("%w: %d keys but %d values", ErrLengthMismatch, len(m.Keys), len(m.Values))
	}
	values, err := c.FromList(m.Values, "", KindUndefined)
	if err != nil {
		return nil, err
	}
	rec.Values = values
	return rec, nil
}

func resolveKeyType(k any) (dtype.DataType, error) {
	switch k.(type) {
	case string:
		return dtype.String, nil
	case int8:
		return dtype.Int8, nil
	case int16:
		return dtype.Int16, nil
	case int32:
		return dtype.Int32, nil
	case int64:
		return dtype.Int64, nil
	case uint8:
		return dtype.Uint8, nil
	case uint16:
		return dtype.Uint16, nil
	case uint32:
		return dtype.Uint32, nil
	case uint64:
		return dtype.Uint64, nil
	}
	return dtype.Undefined, fmt.Errorf("%w: %T", ErrKeyType, k)
}

func widenMapKey(k any) int64 {
	switch x := k.(type) {
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return x
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		return int64(x)
	}
	return 0
}

// ToOptional converts an optional record to its inner value. The
// absent value (element kind KindUndefined) decodes to nil. A nested
// optional decodes to the value of its innermost record.
func (c *Codec) ToOptional(rec *OptionalRecord) (Value, error) {
	if rec == nil {
		return nil, fmt.Errorf("%w: nil optional record", ErrUnsupported)
	}
	switch rec.ElemType {
	case KindUndefined:
		return nil, nil
	case KindTensor:
		return c.ToArray(rec.TensorValue)
	case KindSequence:
		return c.ToList(rec.SequenceValue)
	case KindMap:
		return c.ToDict(rec.MapValue)
	case KindOptional:
		return c.ToOptional(rec.OptionalValue)
	}
	return nil, fmt.Errorf("%w: optional element kind %s", ErrUnsupported, rec.ElemType)
}

// FromOptional converts a value to an optional record. A nil value
// encodes the absent value, with kind carried through as the declared
// element kind. A non-nil value must match kind when kind is not
// KindUndefined.
func (c *Codec) FromOptional(v Value, name string, kind ElemKind) (*OptionalRecord, error) {
	rec := &OptionalRecord{Name: name, ElemType: kind}
	if v == nil {
		return rec, nil
	}

	k, err := classify(v)
	if err != nil {
		return nil, err
	}
	if kind != KindUndefined && k != kind {
		return nil, fmt.Errorf("%w: optional value is %s, expected %s", ErrTypeMismatch, k, kind)
	}
	rec.ElemType = k

	switch x := v.(type) {
	case Array:
		if rec.TensorValue, err = c.FromArray(x); err != nil {
			return nil, err
		}
	case Sequence:
		if rec.SequenceValue, err = c.FromList(x, "", KindUndefined); err != nil {
			return nil, err
		}
	case Map:
		if rec.MapValue, err = c.FromDict(x, ""); err != nil {
			return nil, err
		}
	case Optional:
		if rec.OptionalValue, err = c.FromOptional(x.Value, "", KindUndefined); err != nil {
			return nil, err
		}
	}
	return rec, nil
}
