// Copyright 2026 The Tensorwire Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensorwire

import "fmt"

// checkedMul multiplies a and b and checks for overflow.
func checkedMul(a, b int64) (int64, error) {
	c := a * b
	if a > 1 && b > 1 && c/a != b {
		return c, fmt.Errorf("multiplication overflow: %d * %d", a, b)
	}
	return c, nil
}

// shapeSize returns the number of elements implied by dims.
// Nil or empty dims imply a scalar (one element).
func shapeSize(dims []int64) (int, error) {
	size := int64(1)
	for _, d := range dims {
		if d < 0 {
			return 0, fmt.Errorf("%w: negative dimension %d", ErrShape, d)
		}
		var err error
		if size, err = checkedMul(size, d); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrShape, err)
		}
	}
	return int(size), nil
}

func copyDims(dims []int64) []int64 {
	if len(dims) == 0 {
		return nil
	}
	out := make([]int64, len(dims))
	copy(out, dims)
	return out
}
