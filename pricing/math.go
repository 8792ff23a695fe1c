// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pricing

import (
	"fmt"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

// The helpers below surface every [smath] failure as [ErrArithmeticOverflow]
// so callers only ever see one error kind for out-of-range arithmetic.

func add(a, b uint64) (uint64, error) {
	v, err := smath.Add64(a, b)
	if err != nil {
		return 0, fmt.Errorf("%w: %d + %d", ErrArithmeticOverflow, a, b)
	}
	return v, nil
}

func sub(a, b uint64) (uint64, error) {
	v, err := smath.Sub(a, b)
	if err != nil {
		return 0, fmt.Errorf("%w: %d - %d", ErrArithmeticOverflow, a, b)
	}
	return v, nil
}

func mul(a, b uint64) (uint64, error) {
	v, err := smath.Mul64(a, b)
	if err != nil {
		return 0, fmt.Errorf("%w: %d * %d", ErrArithmeticOverflow, a, b)
	}
	return v, nil
}
