// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package controller

import "errors"

var (
	ErrUnexpectedOutput = errors.New("unexpected action output")
	ErrClosed           = errors.New("controller closed")
)
