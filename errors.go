// Copyright 2026 The Tensorwire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensorwire

import "errors"

var (
	// ErrUnsupported is returned when a record or array carries a value
	// that has no defined encoding or decoding: an undefined or
	// segmented tensor record, an array data type without a wire
	// discriminant, or a non-string element in a string array.
	ErrUnsupported = errors.New("unsupported value")

	// ErrTypeMismatch is returned when the data of an array does not
	// match its declared data type, or when the elements of a sequence,
	// or the keys of a map, do not all share one type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrKeyType is returned when a map key type is neither a string
	// nor one of the fixed-width integer kinds.
	ErrKeyType = errors.New("invalid map key type")

	// ErrShape is returned when an element count does not match the
	// product of the declared dimensions.
	ErrShape = errors.New("shape mismatch")

	// ErrLengthMismatch is returned when the keys and values of a map
	// differ in length.
	ErrLengthMismatch = errors.New("length mismatch")
)
