// Copyright 2026 The Tensorwire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tensorwire converts between typed in-memory arrays and
// their wire-level tensor records.
//
// A TensorRecord carries a tensor's shape, an element-type
// discriminant and a payload, either as raw little-endian bytes or in
// one of the typed data fields. ToArray decodes a record to an Array
// holding a Go slice of the natural element type; FromArray encodes
// an Array back to a record. Sequence, map and optional records nest
// recursively and convert through ToList, ToDict and ToOptional and
// their inverses.
//
// Float8 and bfloat16 elements are widened to float32 on decode, so
// those types do not round-trip to their original discriminant; all
// other fixed-width types do.
package tensorwire
