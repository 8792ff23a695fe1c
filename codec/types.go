// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

// Typed is implemented by anything with a stable wire type identifier
// (actions and their outputs).
type Typed interface {
	GetTypeID() uint8
}
