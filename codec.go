// Copyright 2026 The Tensorwire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensorwire

import (
	"encoding/binary"
)

// ExternalDataLoader resolves an externally stored payload, populating
// rec.RawData in place. Its failure is surfaced unchanged by decoding.
type ExternalDataLoader func(rec *TensorRecord, baseDir string) error

// A Codec converts between Array/Sequence/Map/Optional values and
// their wire records. It is configuration only: every conversion is a
// pure function of its input, and a Codec is safe for concurrent use.
//
// The zero configuration (as returned by NewCodec with no options)
// detects the host byte order and loads external data from the
// current directory.
type Codec struct {
	order   binary.ByteOrder
	baseDir string
	loader  ExternalDataLoader
}

// An Option configures a Codec.
type Option func(*Codec)

// WithByteOrder sets the byte order treated as the host's native
// order. The wire format is always little-endian: under a big-endian
// order the codec byte-swaps raw payloads on both encode and decode.
//
// The default is binary.NativeEndian. Overriding it is mainly useful
// to exercise the big-endian paths on a little-endian machine.
func WithByteOrder(order binary.ByteOrder) Option {
	return func(c *Codec) {
		c.order = order
	}
}

// WithBaseDir sets the directory external-data locations are resolved
// against.
func WithBaseDir(dir string) Option {
	return func(c *Codec) {
		c.baseDir = dir
	}
}

// WithExternalDataLoader replaces the default file-based external-data
// loader.
func WithExternalDataLoader(loader ExternalDataLoader) Option {
	return func(c *Codec) {
		c.loader = loader
	}
}

// NewCodec returns a Codec configured by the given options.
func NewCodec(opts ...Option) *Codec {
	c := &Codec{
		order:  binary.NativeEndian,
		loader: LoadExternalData,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultCodec = NewCodec()

// ToArray converts a tensor record to an Array using the default codec.
func ToArray(rec *TensorRecord) (Array, error) {
	return defaultCodec.ToArray(rec)
}

// FromArray converts an Array to a tensor record using the default codec.
func FromArray(arr Array) (*TensorRecord, error) {
	return defaultCodec.FromArray(arr)
}

// ToList converts a sequence record to a Sequence using the default codec.
func ToList(rec *SequenceRecord) (Sequence, error) {
	return defaultCodec.ToList(rec)
}

// FromList converts a Sequence to a sequence record using the default
// codec. See Codec.FromList.
func FromList(list Sequence, name string, kind ElemKind) (*SequenceRecord, error) {
	return defaultCodec.FromList(list, name, kind)
}

// ToDict converts a map record to a Map using the default codec.
func ToDict(rec *MapRecord) (Map, error) {
	return defaultCodec.ToDict(rec)
}

// FromDict converts a Map to a map record using the default codec.
func FromDict(m Map, name string) (*MapRecord, error) {
	return defaultCodec.FromDict(m, name)
}

// ToOptional converts an optional record to its wrapped value using
// the default codec. See Codec.ToOptional.
func ToOptional(rec *OptionalRecord) (Value, error) {
	return defaultCodec.ToOptional(rec)
}

// FromOptional converts a value to an optional record using the
// default codec. See Codec.FromOptional.
func FromOptional(v Value, name string, kind ElemKind) (*OptionalRecord, error) {
	return defaultCodec.FromOptional(v, name, kind)
}
