// Copyright 2026 The Tensorwire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensorwire

import (
	"encoding/binary"
	"fmt"

	"github.com/tensorwire/tensorwire/dtype"
)

// isLittleEndian probes a ByteOrder for its direction.
func isLittleEndian(order binary.ByteOrder) bool {
	var b [2]byte
	order.PutUint16(b[:], 1)
	return b[0] == 1
}

// swapWidth is the byte-swap granule of a data type's raw encoding.
// Complex types swap per component, not per element.
func swapWidth(dt dtype.DataType) int {
	switch dt {
	case dtype.Complex64:
		return 4
	case dtype.Complex128:
		return 8
	}
	return dt.Size()
}

// ConvertEndian reverses the byte order of every element of the raw
// payload of rec, in place. Single-byte types are left untouched.
func ConvertEndian(rec *TensorRecord) error {
	width := swapWidth(rec.DataType)
	if width <= 0 {
		return fmt.Errorf("%w: cannot byte-swap raw data of type %s", ErrUnsupported, rec.DataType)
	}
	if width == 1 {
		return nil
	}
	raw := rec.RawData
	if len(raw)%width != 0 {
		return fmt.Errorf("%w: raw data length %d is not a multiple of the %d-byte element size", ErrShape, len(raw), width)
	}
	for i := 0; i < len(raw); i += width {
		for l, r := i, i+width-1; l < r; l, r = l+1, r-1 {
			raw[l], raw[r] = raw[r], raw[l]
		}
	}
	return nil
}
